package session

import (
	"context"
	"sync"
	"time"

	"souq/internal/domain/service"
)

const janitorInterval = time.Minute

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is an in-process SessionStore for development and tests.
// A background janitor sweeps expired entries; reads also check expiry so
// a stale entry is never returned between sweeps.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	done    chan struct{}
	once    sync.Once
}

// NewMemoryStore creates an in-memory session store with TTL expiry.
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		entries: make(map[string]memoryEntry),
		done:    make(chan struct{}),
	}
	go store.janitor()

	return store
}

func (s *MemoryStore) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for key, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Close stops the janitor goroutine.
func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.done) })

	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getLocked(key)
}

// getLocked returns a copy of the live value under key. Callers hold s.mu.
func (s *MemoryStore) getLocked(key string) ([]byte, error) {
	entry, ok := s.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.entries, key)

		return nil, service.ErrSessionNotFound
	}

	value := make([]byte, len(entry.value))
	copy(value, entry.value)

	return value, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{value: stored, expiresAt: time.Now().Add(ttl)}

	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)

	return nil
}

// Update runs fn under the store mutex, so the read-modify-write is a single
// critical section against every other operation on this store.
func (s *MemoryStore) Update(_ context.Context, key string, ttl time.Duration, fn func(current []byte) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.getLocked(key)
	if err != nil {
		current = nil
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	if next == nil {
		delete(s.entries, key)

		return nil
	}

	stored := make([]byte, len(next))
	copy(stored, next)
	s.entries[key] = memoryEntry{value: stored, expiresAt: time.Now().Add(ttl)}

	return nil
}
