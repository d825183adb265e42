package session

import (
	"sync"
	"time"
)

// item represents a single session entry with expiration
type item struct {
	value      any
	expiration time.Time
}

// Store is a thread-safe in-memory session store with TTL support. It holds
// wizard and scan sessions; product records are never stored here.
type Store struct {
	data  map[string]item
	ttl   time.Duration
	mutex sync.RWMutex
	stop  chan struct{}
}

// NewStore creates a session store whose entries expire after ttl.
func NewStore(ttl time.Duration) *Store {
	store := &Store{
		data: make(map[string]item),
		ttl:  ttl,
		stop: make(chan struct{}),
	}

	// Cleanup goroutine removes expired entries every minute
	go store.cleanupExpired()

	return store
}

// Get retrieves a session by id.
func (s *Store) Get(id string) (any, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	entry, exists := s.data[id]
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.expiration) {
		return nil, false
	}
	return entry.value, true
}

// Set stores a session, resetting its expiration.
func (s *Store) Set(id string, value any) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data[id] = item{
		value:      value,
		expiration: time.Now().Add(s.ttl),
	}
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.data, id)
}

// Len returns the current number of live sessions (for debugging/monitoring).
func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}

// Close stops the cleanup goroutine.
func (s *Store) Close() {
	close(s.stop)
}

// cleanupExpired removes expired entries periodically.
func (s *Store) cleanupExpired() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mutex.Lock()
			now := time.Now()
			for id, entry := range s.data {
				if now.After(entry.expiration) {
					delete(s.data, id)
				}
			}
			s.mutex.Unlock()
		case <-s.stop:
			return
		}
	}
}
