package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerworks/reclass-cli/internal/adapters/driven/storage/memory"
	"github.com/ledgerworks/reclass-cli/internal/core/domain"
)

func newTestRecordService() (*RecordService, *memory.RecordStore) {
	store := memory.NewRecordStore()
	embedder := &mockEmbedder{vector: []float32{0.1, 0.2, 0.3}}
	return NewRecordService(store, embedder), store
}

func TestRecordService_UpsertRoundTrip(t *testing.T) {
	svc, _ := newTestRecordService()
	ctx := context.Background()

	meta := domain.Metadata{
		StoreName:       "Shell",
		ItemDescription: "Diesel 40L",
		Description:     "fleet refuel",
		IssueDate:       "2026-01-15",
		TotalAmount:     80.5,
		Category:        "Fuel",
		Verified:        true,
	}

	record, err := svc.Upsert(ctx, "rec-1", meta)
	require.NoError(t, err)

	assert.Equal(t, "rec-1", record.ID)
	assert.Equal(t, domain.ComposeDocument(meta), record.Document)
	assert.Equal(t, meta, record.Metadata)
	assert.NotEmpty(t, record.Embedding)
	assert.False(t, record.CreatedAt.IsZero())
	assert.False(t, record.UpdatedAt.IsZero())

	got, err := svc.Get(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, record.Document, got.Document)
}

func TestRecordService_UpsertRequiresID(t *testing.T) {
	svc, _ := newTestRecordService()

	_, err := svc.Upsert(context.Background(), "", domain.Metadata{StoreName: "Shell"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordService_UpsertOverwritePreservesCreatedAt(t *testing.T) {
	svc, _ := newTestRecordService()
	ctx := context.Background()

	first, err := svc.Upsert(ctx, "rec-1", domain.Metadata{StoreName: "Shell"})
	require.NoError(t, err)

	second, err := svc.Upsert(ctx, "rec-1", domain.Metadata{StoreName: "Esso"})
	require.NoError(t, err)

	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, "Esso", second.Metadata.StoreName)

	// Overwrite, not insert: still one record.
	records, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestRecordService_UpdateMergesFields(t *testing.T) {
	svc, _ := newTestRecordService()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "rec-1", domain.Metadata{
		StoreName:       "Shell",
		ItemDescription: "Diesel 40L",
		Category:        "Fuel",
	})
	require.NoError(t, err)

	category := "Vehicle costs"
	verified := true
	record, err := svc.Update(ctx, "rec-1", domain.PartialMetadata{
		Category: &category,
		Verified: &verified,
	})
	require.NoError(t, err)

	assert.Equal(t, "Vehicle costs", record.Metadata.Category)
	assert.True(t, record.Metadata.Verified)
	// Untouched fields survive the merge.
	assert.Equal(t, "Shell", record.Metadata.StoreName)
	assert.Equal(t, "Diesel 40L", record.Metadata.ItemDescription)
}

func TestRecordService_UpdateRederivesDocument(t *testing.T) {
	svc, _ := newTestRecordService()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "rec-1", domain.Metadata{
		StoreName:       "Shell",
		ItemDescription: "Diesel 40L",
	})
	require.NoError(t, err)

	item := "Petrol 30L"
	record, err := svc.Update(ctx, "rec-1", domain.PartialMetadata{ItemDescription: &item})
	require.NoError(t, err)

	assert.Equal(t, "Shell Petrol 30L", record.Document)
}

func TestRecordService_UpdateMissingRecord(t *testing.T) {
	svc, _ := newTestRecordService()

	category := "Fuel"
	_, err := svc.Update(context.Background(), "nope", domain.PartialMetadata{Category: &category})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordService_DeleteThenDeleteAgain(t *testing.T) {
	svc, _ := newTestRecordService()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "rec-1", domain.Metadata{StoreName: "Shell"})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, "rec-1", deleted)

	_, err = svc.Delete(ctx, "rec-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordService_ExportEmptyStore(t *testing.T) {
	svc, _ := newTestRecordService()

	exported, err := svc.Export(context.Background())

	require.NoError(t, err)
	assert.Empty(t, exported)
}

func TestRecordService_Export(t *testing.T) {
	svc, _ := newTestRecordService()
	ctx := context.Background()

	meta := domain.Metadata{StoreName: "Shell", Category: "Fuel"}
	_, err := svc.Upsert(ctx, "rec-1", meta)
	require.NoError(t, err)

	exported, err := svc.Export(ctx)
	require.NoError(t, err)

	require.Len(t, exported, 1)
	assert.Equal(t, "rec-1", exported[0].ID)
	assert.Equal(t, "Shell", exported[0].Document)
	assert.Equal(t, meta, exported[0].Metadata)
}

func TestRecordService_Stats(t *testing.T) {
	svc, _ := newTestRecordService()
	ctx := context.Background()

	fixtures := []struct {
		id   string
		meta domain.Metadata
	}{
		{"rec-1", domain.Metadata{StoreName: "Shell", Verified: true}},
		{"rec-2", domain.Metadata{StoreName: "Shell", Verified: false}},
		{"rec-3", domain.Metadata{StoreName: "REWE", Verified: true}},
		{"rec-4", domain.Metadata{Verified: false}},
	}
	for _, f := range fixtures {
		_, err := svc.Upsert(ctx, f.id, f.meta)
		require.NoError(t, err)
	}

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Verified)
	assert.Equal(t, 2, stats.Unverified)
	// Empty store names do not count as a store.
	assert.Equal(t, 2, stats.StoreCount)
}

func TestRecordService_NilEmbedder(t *testing.T) {
	svc := NewRecordService(memory.NewRecordStore(), nil)

	_, err := svc.Upsert(context.Background(), "rec-1", domain.Metadata{StoreName: "Shell"})

	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}
