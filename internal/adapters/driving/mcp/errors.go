// Package mcp provides an MCP (Model Context Protocol) server adapter for
// reclass. It enables AI assistants like Claude to classify receipts and
// manage the record collection that backs classification.
package mcp

import "errors"

// Errors returned when required ports are not provided.
var (
	ErrMissingClassifyService = errors.New("mcp: classify service is required")
	ErrMissingRecordService   = errors.New("mcp: record service is required")
)
