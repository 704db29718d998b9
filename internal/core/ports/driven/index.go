package driven

import (
	"context"

	"github.com/ledgerworks/reclass-cli/internal/core/domain"
)

// SimilarityIndex finds stored records nearest to a query embedding.
// The distance metric is cosine distance (1 - cosine similarity) and is
// fixed for the lifetime of the store; distances are only comparable
// across results produced by the same metric and embedding space.
type SimilarityIndex interface {
	// Query returns up to k matches ordered by ascending distance
	// (most similar first). An empty store yields an empty slice.
	// Ties are broken deterministically for a fixed store snapshot.
	Query(ctx context.Context, embedding []float32, k int) ([]Match, error)
}

// Match is a single similarity query hit.
type Match struct {
	// Record is the matched stored record.
	Record domain.Record

	// Distance is the cosine distance to the query (0 = identical).
	Distance float64
}
