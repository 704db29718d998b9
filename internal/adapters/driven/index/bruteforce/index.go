// Package bruteforce provides an exact similarity index that scans every
// stored record. At the collection sizes reclass handles (one record per
// verified receipt) an exact scan is faster and simpler than maintaining
// an approximate index, and it trivially satisfies the snapshot-consistency
// guarantee: each query reads one List call.
package bruteforce

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/ledgerworks/reclass-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.SimilarityIndex = (*Index)(nil)

// Index performs exact k-nearest-neighbour search over a record store
// using cosine distance (1 - cosine similarity).
type Index struct {
	store driven.RecordStore
}

// New creates a brute-force index over the given store.
func New(store driven.RecordStore) *Index {
	return &Index{store: store}
}

// Query returns up to k matches ordered by ascending distance.
// Ties are broken by record ID so results are deterministic for a fixed
// store snapshot. Records whose embeddings are missing or not comparable
// to the query (different dimensionality, zero magnitude) are skipped.
func (idx *Index) Query(ctx context.Context, embedding []float32, k int) ([]driven.Match, error) {
	if k <= 0 {
		return nil, nil
	}

	records, err := idx.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	matches := make([]driven.Match, 0, len(records))
	for i := range records {
		similarity, ok := cosineSimilarity(embedding, records[i].Embedding)
		if !ok {
			continue
		}
		matches = append(matches, driven.Match{
			Record:   records[i],
			Distance: 1 - similarity,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Record.ID < matches[j].Record.ID
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// cosineSimilarity computes the cosine similarity of two vectors.
// The second return value is false when the vectors are not comparable:
// mismatched dimensionality, empty, or zero magnitude.
func cosineSimilarity(a, b []float32) (float64, bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}

	var dot, normA, normB float64
	for i := range a {
		va := float64(a[i])
		vb := float64(b[i])
		dot += va * vb
		normA += va * va
		normB += vb * vb
	}
	if normA == 0 || normB == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}
