package services

import (
	"context"
	"fmt"

	"github.com/ledgerworks/reclass-cli/internal/core/domain"
	"github.com/ledgerworks/reclass-cli/internal/core/ports/driven"
	"github.com/ledgerworks/reclass-cli/internal/core/ports/driving"
	"github.com/ledgerworks/reclass-cli/internal/logger"
)

// Ensure RecordService implements the interface.
var _ driving.RecordService = (*RecordService)(nil)

// RecordService manages the record lifecycle. Every write path re-derives
// the document from metadata and the embedding from the document, so the
// store never holds a record whose parts are out of sync.
type RecordService struct {
	store            driven.RecordStore
	embeddingService driven.EmbeddingService
}

// NewRecordService creates a record service.
func NewRecordService(store driven.RecordStore, embeddingService driven.EmbeddingService) *RecordService {
	return &RecordService{
		store:            store,
		embeddingService: embeddingService,
	}
}

// Upsert inserts or fully overwrites the record at id.
func (s *RecordService) Upsert(ctx context.Context, id string, meta domain.Metadata) (*domain.Record, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: record id is required", domain.ErrInvalidInput)
	}

	record, err := s.buildRecord(ctx, id, meta)
	if err != nil {
		return nil, err
	}

	if err := s.store.Put(ctx, *record); err != nil {
		return nil, fmt.Errorf("storing record: %w", err)
	}

	logger.Debug("Upserted record %s (%d bytes document)", id, len(record.Document))

	// Read back so callers see the persisted state, including timestamps.
	return s.store.Get(ctx, id)
}

// Get returns the stored record or domain.ErrNotFound.
func (s *RecordService) Get(ctx context.Context, id string) (*domain.Record, error) {
	return s.store.Get(ctx, id)
}

// Update merges the supplied fields over the stored metadata and
// re-derives document and embedding from the merged result.
func (s *RecordService) Update(ctx context.Context, id string, partial domain.PartialMetadata) (*domain.Record, error) {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := partial.Apply(current.Metadata)

	record, err := s.buildRecord(ctx, id, merged)
	if err != nil {
		return nil, err
	}
	record.CreatedAt = current.CreatedAt

	if err := s.store.Put(ctx, *record); err != nil {
		return nil, fmt.Errorf("storing record: %w", err)
	}

	logger.Debug("Updated record %s", id)
	return s.store.Get(ctx, id)
}

// Delete removes the record and returns its id.
func (s *RecordService) Delete(ctx context.Context, id string) (string, error) {
	if err := s.store.Delete(ctx, id); err != nil {
		return "", err
	}
	logger.Debug("Deleted record %s", id)
	return id, nil
}

// List returns every stored record.
func (s *RecordService) List(ctx context.Context) ([]domain.Record, error) {
	return s.store.List(ctx)
}

// Export returns every record without embeddings.
func (s *RecordService) Export(ctx context.Context) ([]domain.ExportedRecord, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	exported := make([]domain.ExportedRecord, len(records))
	for i := range records {
		exported[i] = domain.ExportedRecord{
			ID:       records[i].ID,
			Document: records[i].Document,
			Metadata: records[i].Metadata,
		}
	}
	return exported, nil
}

// Stats summarises the stored records.
func (s *RecordService) Stats(ctx context.Context) (*domain.Stats, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := domain.Stats{Total: len(records)}
	stores := make(map[string]struct{})
	for i := range records {
		if records[i].Metadata.Verified {
			stats.Verified++
		}
		if name := records[i].Metadata.StoreName; name != "" {
			stores[name] = struct{}{}
		}
	}
	stats.Unverified = stats.Total - stats.Verified
	stats.StoreCount = len(stores)

	return &stats, nil
}

// buildRecord derives document and embedding for the given metadata.
func (s *RecordService) buildRecord(ctx context.Context, id string, meta domain.Metadata) (*domain.Record, error) {
	if s.embeddingService == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	document := domain.ComposeDocument(meta)

	embedding, err := s.embeddingService.Embed(ctx, document)
	if err != nil {
		return nil, fmt.Errorf("embedding document: %w", err)
	}

	return &domain.Record{
		ID:        id,
		Document:  document,
		Metadata:  meta,
		Embedding: embedding,
	}, nil
}
