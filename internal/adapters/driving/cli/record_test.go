package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCmd_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range recordCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"add", "get", "list", "update", "delete"} {
		assert.True(t, names[want], "record %s should exist", want)
	}
}

func TestRecordAdd_RoundTrip(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "record", "add",
		"--id", "rec-1",
		"--store-name", "Shell",
		"--item", "Diesel 40L",
		"--category", "Fuel",
		"--verified")
	require.NoError(t, err)

	var result recordOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Success)
	require.NotNil(t, result.Record)
	assert.Equal(t, "rec-1", result.Record.ID)
	assert.Equal(t, "Shell Diesel 40L", result.Record.Document)
	assert.True(t, result.Record.Metadata.Verified)
}

func TestRecordAdd_GeneratesID(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "record", "add", "--store-name", "REWE")
	require.NoError(t, err)

	var result recordOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Success)
	require.NotNil(t, result.Record)
	assert.NotEmpty(t, result.Record.ID)
}

func TestRecordGet_Missing(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "record", "get", "nope")

	// Not found is a domain outcome, not a command failure.
	require.NoError(t, err)

	var result recordOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.Nil(t, result.Record)
}

func TestRecordGet_RequiresArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "record", "get")

	assert.Error(t, err)
}

func TestRecordUpdate_MergesFields(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "record", "add",
		"--id", "rec-1", "--store-name", "Shell", "--category", "Fuel")
	require.NoError(t, err)
	resetCommandState()

	out, err := execute(t, "record", "update", "rec-1", "--category", "Vehicle costs")
	require.NoError(t, err)

	var result recordOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Success)
	require.NotNil(t, result.Record)
	assert.Equal(t, "Vehicle costs", result.Record.Metadata.Category)
	assert.Equal(t, "Shell", result.Record.Metadata.StoreName)
}

func TestRecordUpdate_NoFields(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "record", "update", "rec-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no fields to update")
}

func TestRecordUpdate_Missing(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "record", "update", "nope", "--category", "Fuel")
	require.NoError(t, err)

	var result recordOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestRecordDelete(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "record", "add", "--id", "rec-1", "--store-name", "Shell")
	require.NoError(t, err)
	resetCommandState()

	out, err := execute(t, "record", "delete", "rec-1")
	require.NoError(t, err)

	var result deleteOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "rec-1", result.DeletedID)

	// Second delete reports the domain failure in the envelope.
	out, err = execute(t, "record", "delete", "rec-1")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Success)
}

func TestRecordList_JSONEmptyStore(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "record", "list", "--json")
	require.NoError(t, err)

	var result listOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Success)
	assert.NotNil(t, result.Records)
	assert.Empty(t, result.Records)
	assert.Zero(t, result.Total)
}

func TestRecordList_Table(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "record", "add",
		"--id", "rec-1", "--store-name", "Shell", "--category", "Fuel")
	require.NoError(t, err)
	resetCommandState()

	out, err := execute(t, "record", "list")
	require.NoError(t, err)

	assert.Contains(t, out, "Records (1)")
	assert.Contains(t, out, "Shell")
	assert.Contains(t, out, "rec-1")
}

func TestRecordList_TableEmpty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "record", "list")
	require.NoError(t, err)

	assert.Contains(t, out, "No records stored")
}
