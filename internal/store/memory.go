package store

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process Store used by tests and local development.
// Documents are kept in insertion order per collection so listings are
// deterministic.
type Memory struct {
	mu    sync.Mutex
	docs  map[string]map[string]json.RawMessage // collection -> id -> doc
	order map[string][]string                   // collection -> ids in insertion order
}

func NewMemory() *Memory {
	return &Memory{
		docs:  make(map[string]map[string]json.RawMessage),
		order: make(map[string][]string),
	}
}

func (m *Memory) Create(ctx context.Context, collection string, doc any) (string, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs[collection] == nil {
		m.docs[collection] = make(map[string]json.RawMessage)
	}
	id := uuid.NewString()
	m.docs[collection][id] = body
	m.order[collection] = append(m.order[collection], id)
	return id, nil
}

func (m *Memory) Get(ctx context.Context, collection, id string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.docs[collection][id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return Record{ID: id, Data: append(json.RawMessage(nil), body...)}, nil
}

func (m *Memory) ListAll(ctx context.Context, collection string) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, 0, len(m.order[collection]))
	for _, id := range m.order[collection] {
		body, ok := m.docs[collection][id]
		if !ok {
			continue
		}
		out = append(out, Record{ID: id, Data: append(json.RawMessage(nil), body...)})
	}
	return out, nil
}

func (m *Memory) ListWhere(ctx context.Context, collection, field string, value any) ([]Record, error) {
	want, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Record
	for _, id := range m.order[collection] {
		body, ok := m.docs[collection][id]
		if !ok {
			continue
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			continue
		}
		if got, ok := fields[field]; ok && bytes.Equal(compact(got), want) {
			out = append(out, Record{ID: id, Data: append(json.RawMessage(nil), body...)})
		}
	}
	return out, nil
}

func (m *Memory) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.docs[collection][id]
	if !ok {
		return ErrNotFound
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return err
	}
	for k, v := range patch {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		fields[k] = raw
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	m.docs[collection][id] = merged
	return nil
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[collection][id]; !ok {
		return ErrNotFound
	}
	delete(m.docs[collection], id)
	return nil
}

func compact(raw json.RawMessage) []byte {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return buf.Bytes()
}
