// Package sqlite provides the durable SQLite-backed record store.
// Embeddings are stored inline as little-endian float32 blobs so a record's
// document, metadata and vector always live in one row and are written
// atomically.
package sqlite
