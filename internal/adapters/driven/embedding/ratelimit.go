// Package embedding provides shared decorators for embedding service adapters.
package embedding

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/ledgerworks/reclass-cli/internal/core/ports/driven"
)

// Ensure RateLimited implements the interface.
var _ driven.EmbeddingService = (*RateLimited)(nil)

// Default rate limit configuration. Conservative enough for hosted APIs
// while staying invisible for local inference servers.
const (
	DefaultRequestsPerSecond = 5.0
	DefaultBurst             = 10
)

// RateLimited wraps an EmbeddingService with a token bucket rate limiter,
// pacing requests to the upstream API.
type RateLimited struct {
	inner   driven.EmbeddingService
	limiter *rate.Limiter
}

// NewRateLimited creates a rate-limited embedding service.
// Non-positive values select the defaults.
func NewRateLimited(inner driven.EmbeddingService, requestsPerSecond float64, burst int) *RateLimited {
	if requestsPerSecond <= 0 {
		requestsPerSecond = DefaultRequestsPerSecond
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	return &RateLimited{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Embed waits for a rate limiter token, then delegates.
func (r *RateLimited) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	return r.inner.Embed(ctx, text)
}

// EmbedBatch reserves one token per text, then delegates the whole batch.
func (r *RateLimited) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	for range texts {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}
	return r.inner.EmbedBatch(ctx, texts)
}

// Dimensions returns the wrapped service's vector size.
func (r *RateLimited) Dimensions() int {
	return r.inner.Dimensions()
}

// ModelName returns the wrapped service's model name.
func (r *RateLimited) ModelName() string {
	return r.inner.ModelName()
}

// Ping delegates without consuming a token.
func (r *RateLimited) Ping(ctx context.Context) error {
	return r.inner.Ping(ctx)
}

// Close releases the wrapped service's resources.
func (r *RateLimited) Close() error {
	return r.inner.Close()
}
