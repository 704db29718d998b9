package embedding

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEmbedder is a minimal embedding service for decorator tests.
type stubEmbedder struct {
	embedCalls int
	batchCalls int
	closed     bool
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	s.embedCalls++
	return []float32{0.1, 0.2, 0.3}, nil
}

func (s *stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	s.batchCalls++
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.1, 0.2, 0.3}
	}
	return out, nil
}

func (s *stubEmbedder) Dimensions() int { return 3 }

func (s *stubEmbedder) ModelName() string { return "stub" }

func (s *stubEmbedder) Ping(_ context.Context) error { return nil }

func (s *stubEmbedder) Close() error { s.closed = true; return nil }

func TestRateLimited_Embed(t *testing.T) {
	stub := &stubEmbedder{}
	limited := NewRateLimited(stub, 100, 10)

	embedding, err := limited.Embed(context.Background(), "coffee beans")
	require.NoError(t, err)
	assert.Len(t, embedding, 3)
	assert.Equal(t, 1, stub.embedCalls)
}

func TestRateLimited_EmbedBatch(t *testing.T) {
	stub := &stubEmbedder{}
	limited := NewRateLimited(stub, 100, 10)

	embeddings, err := limited.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Len(t, embeddings, 3)
	assert.Equal(t, 1, stub.batchCalls)
}

func TestRateLimited_CancelledContext(t *testing.T) {
	stub := &stubEmbedder{}
	// Burst of 1 so the second call has to wait for a token.
	limited := NewRateLimited(stub, 0.001, 1)

	_, err := limited.Embed(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = limited.Embed(ctx, "second")
	require.Error(t, err)
	assert.Equal(t, 1, stub.embedCalls)
}

func TestRateLimited_Defaults(t *testing.T) {
	stub := &stubEmbedder{}
	limited := NewRateLimited(stub, 0, 0)

	assert.Equal(t, 3, limited.Dimensions())
	assert.Equal(t, "stub", limited.ModelName())
	require.NoError(t, limited.Ping(context.Background()))
	require.NoError(t, limited.Close())
	assert.True(t, stub.closed)
}
