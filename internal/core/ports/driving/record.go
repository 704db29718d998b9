package driving

import (
	"context"

	"github.com/ledgerworks/reclass-cli/internal/core/domain"
)

// RecordService manages the lifecycle of classification records, keeping
// document, metadata and embedding mutually consistent on every write.
type RecordService interface {
	// Upsert inserts or fully overwrites the record at id, deriving the
	// document and embedding from the supplied metadata.
	Upsert(ctx context.Context, id string, meta domain.Metadata) (*domain.Record, error)

	// Get returns the stored record or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Record, error)

	// Update merges the supplied fields over the stored metadata, then
	// re-derives document and embedding. Returns the full merged record,
	// or domain.ErrNotFound if the id is absent.
	Update(ctx context.Context, id string, partial domain.PartialMetadata) (*domain.Record, error)

	// Delete removes the record and returns its id, or domain.ErrNotFound.
	Delete(ctx context.Context, id string) (string, error)

	// List returns every stored record.
	List(ctx context.Context) ([]domain.Record, error)

	// Export returns every record without embeddings, for migration.
	// An empty or never-initialised store yields an empty slice.
	Export(ctx context.Context) ([]domain.ExportedRecord, error)

	// Stats summarises the stored records.
	Stats(ctx context.Context) (*domain.Stats, error)
}
