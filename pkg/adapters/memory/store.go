package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aretw0/clic/pkg/domain"
)

// Store implements ports.ConfigStore in memory.
// Records are kept as JSON so that Load behaves exactly like the file adapter.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex

	saves   int
	failErr error
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Save persists the record in memory.
func (s *Store) Save(ctx context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failErr != nil {
		return s.failErr
	}

	// Serialize to isolate the stored copy from the caller's maps.
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	s.data[key] = data
	s.saves++
	return nil
}

// Load decodes the record from memory.
func (s *Store) Load(ctx context.Context, key string, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[key]
	if !ok {
		return domain.ErrRecordNotFound
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return nil
}

// Put stores raw bytes under key, bypassing serialization.
// Useful to seed corrupt or hand-written records in tests.
func (s *Store) Put(key string, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), raw...)
}

// Raw returns the stored bytes for key.
func (s *Store) Raw(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.data[key]
	return data, ok
}

// Saves reports how many successful Save calls the store has served.
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// FailWith makes every subsequent Save return err. Pass nil to recover.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}
