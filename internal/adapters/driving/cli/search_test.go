package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerworks/reclass-cli/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search", searchCmd.Use)
}

func TestSearchCmd_HasQueryFlags(t *testing.T) {
	for _, name := range []string{"store-name", "item", "description", "issue-date", "amount"} {
		assert.NotNil(t, searchCmd.Flags().Lookup(name), "flag %s should exist", name)
	}
}

func TestSearchCmd_EmptyQueryIsEnvelopeFailure(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "search")

	// Domain-level failure: exit zero, success:false in the envelope.
	require.NoError(t, err)

	var result domain.Classification
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Success)
	assert.Equal(t, domain.SourceFallback, result.Source)
	assert.Equal(t, domain.ErrEmptyQuery.Error(), result.Error)
}

func TestSearchCmd_EmptyStoreFallsBack(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "search", "--store-name", "Shell")
	require.NoError(t, err)

	var result domain.Classification
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Success)
	assert.Equal(t, domain.SourceFallback, result.Source)
	assert.Nil(t, result.Category)
}

func TestSearchCmd_MatchesStoredRecord(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "record", "add",
		"--id", "rec-1",
		"--store-name", "Shell",
		"--item", "Diesel 40L",
		"--category", "Fuel",
		"--verified")
	require.NoError(t, err)
	resetCommandState()

	out, err := execute(t, "search", "--store-name", "Shell", "--item", "Diesel 40L")
	require.NoError(t, err)

	var result domain.Classification
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Success)
	assert.Equal(t, domain.SourceRAG, result.Source)
	require.NotNil(t, result.Category)
	assert.Equal(t, "Fuel", *result.Category)
	assert.Equal(t, 1.0, result.Similarity)
	assert.Equal(t, "Shell", result.MatchedStore)
}

func TestSearchCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	// Record service stays wired so initServices does not rebuild anything.
	classifyService = nil

	_, err := execute(t, "search", "--store-name", "Shell")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "classify service not configured")
}
