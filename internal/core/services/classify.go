package services

import (
	"context"
	"fmt"
	"math"

	"github.com/ledgerworks/reclass-cli/internal/core/domain"
	"github.com/ledgerworks/reclass-cli/internal/core/ports/driven"
	"github.com/ledgerworks/reclass-cli/internal/core/ports/driving"
	"github.com/ledgerworks/reclass-cli/internal/logger"
)

// Ensure ClassifyService implements the interface.
var _ driving.ClassifyService = (*ClassifyService)(nil)

// Classification defaults.
const (
	// DefaultThreshold is the minimum similarity to accept a match.
	DefaultThreshold = 0.85

	// DefaultTopK is the number of nearest neighbours retrieved per query.
	DefaultTopK = 3
)

// ClassifyService implements the retrieval-and-decision pipeline:
// compose query text, embed it, retrieve the nearest stored records and
// convert the best match into an accept/fallback decision.
type ClassifyService struct {
	index            driven.SimilarityIndex
	embeddingService driven.EmbeddingService
	threshold        float64
	topK             int
}

// NewClassifyService creates a classify service. A non-positive threshold
// selects DefaultThreshold.
func NewClassifyService(
	index driven.SimilarityIndex,
	embeddingService driven.EmbeddingService,
	threshold float64,
) *ClassifyService {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &ClassifyService{
		index:            index,
		embeddingService: embeddingService,
		threshold:        threshold,
		topK:             DefaultTopK,
	}
}

// Classify retrieves the most similar stored record for the query and
// decides by threshold whether to reuse its category.
//
// Failures never propagate: an empty query, an unreachable embedding
// service or store all degrade to a fallback classification so the worst
// case for the caller is "no suggestion available".
func (s *ClassifyService) Classify(ctx context.Context, query domain.QueryInput) domain.Classification {
	logger.Section("Classification")

	text := query.ComposeQuery()
	if text == "" {
		// Fail fast before touching the store.
		logger.Debug("Empty query, skipping search")
		return fallbackClassification(false, domain.ErrEmptyQuery.Error())
	}
	logger.Debug("Query text: %q", text)

	if s.embeddingService == nil {
		return fallbackClassification(false, domain.ErrEmbeddingUnavailable.Error())
	}

	embedding, err := s.embeddingService.Embed(ctx, text)
	if err != nil {
		logger.Warn("Query embedding failed: %v", err)
		return fallbackClassification(false, fmt.Sprintf("embedding query: %v", err))
	}
	logger.Debug("Query embedding: %d dimensions", len(embedding))

	matches, err := s.index.Query(ctx, embedding, s.topK)
	if err != nil {
		logger.Warn("Similarity query failed: %v", err)
		return fallbackClassification(false, fmt.Sprintf("similarity query: %v", err))
	}

	if len(matches) == 0 {
		logger.Info("No stored records, falling back")
		return fallbackClassification(true, "")
	}

	best := matches[0]
	similarity := roundSimilarity(1 - best.Distance)
	logger.Info("Best match: %s (similarity %.4f, threshold %.4f)",
		best.Record.ID, similarity, s.threshold)

	if similarity < s.threshold {
		// Below the cutoff: still report the similarity for near-miss logging.
		result := fallbackClassification(true, "")
		result.Similarity = similarity
		return result
	}

	category := best.Record.Metadata.Category
	subject := best.Record.Metadata.Description
	return domain.Classification{
		Success:      true,
		Category:     &category,
		Subject:      &subject,
		Similarity:   similarity,
		Source:       domain.SourceRAG,
		MatchedStore: best.Record.Metadata.StoreName,
		MatchedItem:  best.Record.Metadata.ItemDescription,
	}
}

// fallbackClassification builds a fallback result with no category.
func fallbackClassification(success bool, errMsg string) domain.Classification {
	return domain.Classification{
		Success:    success,
		Category:   nil,
		Subject:    nil,
		Similarity: 0,
		Source:     domain.SourceFallback,
		Error:      errMsg,
	}
}

// roundSimilarity rounds to four decimal places. The threshold comparison
// uses the rounded value so reported and compared similarities agree.
func roundSimilarity(similarity float64) float64 {
	return math.Round(similarity*10000) / 10000
}
