package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// MemoryTokenStore keeps tokens in process memory with a fixed TTL.
type MemoryTokenStore struct {
	mu  sync.Mutex
	ttl time.Duration
	ids map[string]memoryToken
}

type memoryToken struct {
	id      Identity
	expires time.Time
}

func NewMemoryTokenStore(ttl time.Duration) *MemoryTokenStore {
	return &MemoryTokenStore{ttl: ttl, ids: make(map[string]memoryToken)}
}

func (s *MemoryTokenStore) Save(ctx context.Context, token string, id Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[token] = memoryToken{id: id, expires: time.Now().Add(s.ttl)}
	return nil
}

func (s *MemoryTokenStore) Load(ctx context.Context, token string) (Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.ids[token]
	if !ok || time.Now().After(t.expires) {
		delete(s.ids, token)
		return Identity{}, ErrNoSession
	}
	return t.id, nil
}

func (s *MemoryTokenStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, token)
	return nil
}

// RedisTokenStore keeps tokens in redis so sessions survive restarts.
type RedisTokenStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisTokenStore(rdb *redis.Client, ttl time.Duration) *RedisTokenStore {
	return &RedisTokenStore{rdb: rdb, ttl: ttl}
}

func tokenKey(token string) string { return "session:" + token }

func (s *RedisTokenStore) Save(ctx context.Context, token string, id Identity) error {
	body, err := json.Marshal(id)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, tokenKey(token), body, s.ttl).Err()
}

func (s *RedisTokenStore) Load(ctx context.Context, token string) (Identity, error) {
	body, err := s.rdb.Get(ctx, tokenKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Identity{}, ErrNoSession
	}
	if err != nil {
		return Identity{}, err
	}
	var id Identity
	if err := json.Unmarshal(body, &id); err != nil {
		return Identity{}, err
	}
	return id, nil
}

func (s *RedisTokenStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, tokenKey(token)).Err()
}
