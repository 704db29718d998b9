package mcp

import (
	"context"

	"github.com/ledgerworks/reclass-cli/internal/core/domain"
)

// mockClassifyService returns a canned classification.
type mockClassifyService struct {
	result    domain.Classification
	lastQuery domain.QueryInput
}

func (m *mockClassifyService) Classify(_ context.Context, query domain.QueryInput) domain.Classification {
	m.lastQuery = query
	return m.result
}

// mockRecordService is a map-backed record service with error injection.
type mockRecordService struct {
	records map[string]domain.Record
	err     error
}

func newMockRecordService() *mockRecordService {
	return &mockRecordService{records: make(map[string]domain.Record)}
}

func (m *mockRecordService) Upsert(_ context.Context, id string, meta domain.Metadata) (*domain.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	record := domain.Record{
		ID:       id,
		Document: domain.ComposeDocument(meta),
		Metadata: meta,
	}
	m.records[id] = record
	return &record, nil
}

func (m *mockRecordService) Get(_ context.Context, id string) (*domain.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	record, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

func (m *mockRecordService) Update(_ context.Context, id string, partial domain.PartialMetadata) (*domain.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	record, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	record.Metadata = partial.Apply(record.Metadata)
	record.Document = domain.ComposeDocument(record.Metadata)
	m.records[id] = record
	return &record, nil
}

func (m *mockRecordService) Delete(_ context.Context, id string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if _, ok := m.records[id]; !ok {
		return "", domain.ErrNotFound
	}
	delete(m.records, id)
	return id, nil
}

func (m *mockRecordService) List(_ context.Context) ([]domain.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	records := make([]domain.Record, 0, len(m.records))
	for _, record := range m.records {
		records = append(records, record)
	}
	return records, nil
}

func (m *mockRecordService) Export(_ context.Context) ([]domain.ExportedRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	exported := make([]domain.ExportedRecord, 0, len(m.records))
	for _, record := range m.records {
		exported = append(exported, domain.ExportedRecord{
			ID:       record.ID,
			Document: record.Document,
			Metadata: record.Metadata,
		})
	}
	return exported, nil
}

func (m *mockRecordService) Stats(_ context.Context) (*domain.Stats, error) {
	if m.err != nil {
		return nil, m.err
	}
	stats := domain.Stats{Total: len(m.records)}
	stores := make(map[string]struct{})
	for _, record := range m.records {
		if record.Metadata.Verified {
			stats.Verified++
		}
		if record.Metadata.StoreName != "" {
			stores[record.Metadata.StoreName] = struct{}{}
		}
	}
	stats.Unverified = stats.Total - stats.Verified
	stats.StoreCount = len(stores)
	return &stats, nil
}
