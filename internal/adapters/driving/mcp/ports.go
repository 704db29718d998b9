package mcp

import (
	"github.com/ledgerworks/reclass-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Classify runs the retrieval-and-decision pipeline.
	Classify driving.ClassifyService

	// Record manages the record lifecycle.
	Record driving.RecordService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Classify == nil {
		return ErrMissingClassifyService
	}
	if p.Record == nil {
		return ErrMissingRecordService
	}
	return nil
}
