package store

import (
	"sync"
	"time"
)

// Sessions keeps one Store per client session.
type Sessions struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	newFn   func() *Store
	now     func() time.Time
}

type sessionEntry struct {
	store    *Store
	lastUsed time.Time
}

func NewSessions(newFn func() *Store) *Sessions {
	return &Sessions{
		entries: make(map[string]*sessionEntry),
		newFn:   newFn,
		now:     time.Now,
	}
}

// Get returns the session's store, creating it on first use.
func (s *Sessions) Get(id string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		entry = &sessionEntry{store: s.newFn()}
		s.entries[id] = entry
	}
	entry.lastUsed = s.now()
	return entry.store
}

// Drop discards a session's state. It reports whether the session existed.
func (s *Sessions) Drop(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[id]
	delete(s.entries, id)
	return ok
}

// Sweep drops sessions idle for longer than maxIdle and returns how many.
func (s *Sessions) Sweep(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	dropped := 0
	for id, entry := range s.entries {
		if entry.lastUsed.Before(cutoff) {
			delete(s.entries, id)
			dropped++
		}
	}
	return dropped
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
