package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyQuery indicates a classification query with no usable text
	// fields. Surfaced before any store access.
	ErrEmptyQuery = errors.New("query has no searchable fields")

	// ErrStoreUnavailable indicates the record store cannot be reached.
	ErrStoreUnavailable = errors.New("record store unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or cannot be reached.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
