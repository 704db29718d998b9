package driven

import (
	"context"

	"github.com/ledgerworks/reclass-cli/internal/core/domain"
)

// RecordStore is the durable mapping from record ID to
// (document, metadata, embedding).
//
// Every mutation replaces the full tuple atomically per ID; there are no
// field-level partial writes at this layer. Concurrent writers to the same
// ID resolve by last-write-wins.
type RecordStore interface {
	// Put inserts or overwrites the record at its ID. Idempotent:
	// repeated calls with identical arguments leave identical state.
	Put(ctx context.Context, record domain.Record) error

	// Get retrieves a record by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Record, error)

	// List returns every stored record. An empty store yields an empty
	// slice, not an error.
	List(ctx context.Context) ([]domain.Record, error)

	// Delete removes a record by ID. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id string) error
}
