package tokenstore

import (
	"sync"

	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

// MemoryStore keeps the token pair in process memory only. Used in
// tests and in embedding contexts whose sessions must not outlive the
// process (e.g. one store per server-side rendering request).
type MemoryStore struct {
	mu   sync.RWMutex
	pair domain.TokenPair
	set  bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the stored pair; a partial pair reads as absent.
func (s *MemoryStore) Get() (domain.TokenPair, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set || !s.pair.Valid() {
		return domain.TokenPair{}, false
	}
	return s.pair, true
}

// Set overwrites the stored pair unconditionally.
func (s *MemoryStore) Set(pair domain.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = pair
	s.set = true
	return nil
}

// Clear removes both tokens.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = domain.TokenPair{}
	s.set = false
	return nil
}
