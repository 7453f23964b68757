package session

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	data    map[string]any
	expires time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// MemoryStore implements Store in process memory. Data is lost on restart
// and is not shared between instances.
type MemoryStore struct {
	mu        sync.RWMutex
	sessions  map[string]memoryEntry
	ticker    *time.Ticker
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemoryStore creates an in-memory store. A positive cleanupInterval
// starts a goroutine that drops expired entries; stop it with Close.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		sessions: make(map[string]memoryEntry),
		done:     make(chan struct{}),
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop()
	}

	return store
}

func (m *MemoryStore) Create(ctx context.Context, data map[string]any, expires time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	for {
		if _, taken := m.sessions[id]; !taken {
			break
		}
		id = uuid.NewString()
	}

	m.sessions[id] = memoryEntry{data: maps.Clone(data), expires: expires}
	return id, nil
}

func (m *MemoryStore) Read(ctx context.Context, id string) (map[string]any, error) {
	m.mu.RLock()
	entry, exists := m.sessions[id]
	m.mu.RUnlock()

	if !exists {
		return nil, ErrSessionNotFound
	}

	if entry.expired(time.Now()) {
		m.mu.Lock()
		// An Update may have refreshed the entry since the read lock was released.
		entry, exists = m.sessions[id]
		if exists && entry.expired(time.Now()) {
			delete(m.sessions, id)
			exists = false
		}
		m.mu.Unlock()

		if !exists {
			return nil, ErrSessionNotFound
		}
	}

	data := maps.Clone(entry.data)
	if data == nil {
		data = make(map[string]any)
	}
	return data, nil
}

func (m *MemoryStore) Update(ctx context.Context, id string, data map[string]any, expires time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[id] = memoryEntry{data: maps.Clone(data), expires: expires}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}

// DeleteExpired removes every expired entry.
func (m *MemoryStore) DeleteExpired(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for id, entry := range m.sessions {
		if entry.expired(now) {
			delete(m.sessions, id)
		}
	}

	return nil
}

// Len returns the number of stored entries, expired ones included until
// they are cleaned up.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (m *MemoryStore) Close() error {
	m.closeOnce.Do(func() {
		if m.ticker != nil {
			m.ticker.Stop()
		}
		close(m.done)
	})
	return nil
}

func (m *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			_ = m.DeleteExpired(context.Background())
		case <-m.done:
			return
		}
	}
}
