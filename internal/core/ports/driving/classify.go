package driving

import (
	"context"

	"github.com/ledgerworks/reclass-cli/internal/core/domain"
)

// ClassifyService classifies receipts by retrieving the most similar
// stored record and applying the confidence threshold.
type ClassifyService interface {
	// Classify runs the retrieval-and-decision pipeline for a partial
	// record. It never returns an error: every failure degrades to a
	// fallback classification so the calling pipeline is not aborted.
	Classify(ctx context.Context, query domain.QueryInput) domain.Classification
}
