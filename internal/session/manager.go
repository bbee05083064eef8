package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/MrSyr3x/catering-system/internal/cart"
)

// Manager opens, resolves and closes sessions, and tells subscribers
// about sign-in/sign-out transitions.
type Manager struct {
	mu     sync.Mutex
	tokens TokenStore
	live   map[string]*Session
	subs   []func(*Session)
}

func NewManager(tokens TokenStore) *Manager {
	return &Manager{tokens: tokens, live: make(map[string]*Session)}
}

// Subscribe registers fn to fire with the session on sign-in and with
// nil on sign-out.
func (m *Manager) Subscribe(fn func(*Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// Open starts a session for an authenticated identity: a fresh token, a
// fresh empty cart.
func (m *Manager) Open(ctx context.Context, id Identity) (*Session, error) {
	token := uuid.NewString()
	if err := m.tokens.Save(ctx, token, id); err != nil {
		return nil, err
	}
	sess := m.materialize(token, id)
	m.notify(sess)
	return sess, nil
}

// Resolve returns the session for a token, or ErrNoSession. A token that
// is valid in the store but unknown to this process (after a restart)
// gets a session with a fresh empty cart.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	m.mu.Lock()
	sess, ok := m.live[token]
	m.mu.Unlock()
	if ok {
		return sess, nil
	}
	id, err := m.tokens.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	return m.materialize(token, id), nil
}

// Close ends the session. The cart is discarded with it.
func (m *Manager) Close(ctx context.Context, token string) error {
	if err := m.tokens.Delete(ctx, token); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.live, token)
	m.mu.Unlock()
	m.notify(nil)
	return nil
}

func (m *Manager) materialize(token string, id Identity) *Session {
	sess := &Session{
		Token:    token,
		UserID:   id.UserID,
		Email:    id.Email,
		FullName: id.FullName,
		UserType: id.UserType,
		Cart:     cart.New(),
	}
	m.mu.Lock()
	// Another request may have materialized the same token concurrently;
	// keep the first one so both see the same cart.
	if existing, ok := m.live[token]; ok {
		m.mu.Unlock()
		return existing
	}
	m.live[token] = sess
	m.mu.Unlock()
	return sess
}

func (m *Manager) notify(sess *Session) {
	m.mu.Lock()
	fns := append([]func(*Session)(nil), m.subs...)
	m.mu.Unlock()
	for _, fn := range fns {
		fn(sess)
	}
}
