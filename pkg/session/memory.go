package session

import (
	"context"
	"sync"
	"time"

	"BatiDetect/internal/entity"
)

type memoryEntry struct {
	state     entity.SessionState
	expiresAt time.Time
}

type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory keeps sessions in process. A ttl <= 0 means the default hour.
func NewMemory(ttl time.Duration) IStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &memoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *memoryStore) Name() string {
	return "memory"
}

func (m *memoryStore) Get(ctx context.Context, id string) (*entity.SessionState, error) {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if m.now().After(e.expiresAt) {
		m.mu.Lock()
		// A Save may have refreshed the entry since the read lock was released.
		if cur, ok := m.entries[id]; ok && m.now().After(cur.expiresAt) {
			delete(m.entries, id)
		}
		m.mu.Unlock()
		return nil, ErrSessionNotFound
	}

	state := e.state
	if e.state.LastClick != nil {
		click := *e.state.LastClick
		state.LastClick = &click
	}
	return &state, nil
}

func (m *memoryStore) Save(ctx context.Context, state entity.SessionState) error {
	if state.LastClick != nil {
		click := *state.LastClick
		state.LastClick = &click
	}

	m.mu.Lock()
	m.entries[state.ID] = memoryEntry{state: state, expiresAt: m.now().Add(m.ttl)}
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.entries, id)
	m.mu.Unlock()
	return nil
}
