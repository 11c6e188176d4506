// Package store holds encrypted page tokens in memory, keyed by user ID.
// All state is lost on restart.
package store

import (
	"sync"

	"github.com/alexjbarnes/page-token-broker/internal/models"
)

// Store is a concurrency-safe map of user ID to TokenRecord.
type Store struct {
	mu      sync.RWMutex
	records map[string]models.TokenRecord // user_id -> record
}

// New creates an empty store.
func New() *Store {
	return &Store{
		records: make(map[string]models.TokenRecord),
	}
}

// Upsert stores rec under rec.UserID, replacing any previous record for
// that user.
func (s *Store) Upsert(rec models.TokenRecord) {
	s.mu.Lock()
	s.records[rec.UserID] = rec
	s.mu.Unlock()
}

// Get returns the record for userID.
func (s *Store) Get(userID string) (models.TokenRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[userID]
	return rec, ok
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
