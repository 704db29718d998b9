// Package memory provides an in-memory record store for testing.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ledgerworks/reclass-cli/internal/core/domain"
	"github.com/ledgerworks/reclass-cli/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
// List returns records in insertion order so query results are
// reproducible for a fixed store snapshot.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string]domain.Record
	order   []string
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[string]domain.Record),
	}
}

// Put inserts or overwrites a record.
func (s *RecordStore) Put(_ context.Context, record domain.Record) error {
	if record.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := s.records[record.ID]; ok {
		record.CreatedAt = existing.CreatedAt
	} else {
		if record.CreatedAt.IsZero() {
			record.CreatedAt = now
		}
		s.order = append(s.order, record.ID)
	}
	record.UpdatedAt = now

	s.records[record.ID] = record
	return nil
}

// Get retrieves a record by ID.
func (s *RecordStore) Get(_ context.Context, id string) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// List returns all stored records in insertion order.
func (s *RecordStore) List(_ context.Context) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.Record, 0, len(s.order))
	for _, id := range s.order {
		records = append(records, s.records[id])
	}
	return records, nil
}

// Delete removes a record by ID.
func (s *RecordStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.records, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
