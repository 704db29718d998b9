package mcp

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ledgerworks/reclass-cli/internal/core/domain"
)

// ClassifyInput is the input schema for the classify tool.
type ClassifyInput struct {
	StoreName       string  `json:"store_name,omitempty" jsonschema:"merchant name on the receipt"`
	ItemDescription string  `json:"item_description,omitempty" jsonschema:"purchased item or line items"`
	Description     string  `json:"description,omitempty" jsonschema:"free-text annotation"`
	IssueDate       string  `json:"issue_date,omitempty" jsonschema:"receipt date in YYYY-MM-DD format"`
	TotalAmount     float64 `json:"total_amount,omitempty" jsonschema:"receipt total amount"`
}

// ClassifyOutput is the output schema for the classify tool.
type ClassifyOutput struct {
	Success      bool    `json:"success"`
	Category     *string `json:"category"`
	Subject      *string `json:"subject"`
	Similarity   float64 `json:"similarity"`
	Source       string  `json:"source"`
	MatchedStore string  `json:"matched_store,omitempty"`
	MatchedItem  string  `json:"matched_item,omitempty"`
	Error        string  `json:"error,omitempty"`
}

// AddRecordInput is the input schema for the add_record tool.
type AddRecordInput struct {
	ID              string  `json:"id,omitempty" jsonschema:"record id; generated when omitted"`
	StoreName       string  `json:"store_name,omitempty" jsonschema:"merchant name"`
	ItemDescription string  `json:"item_description,omitempty" jsonschema:"purchased item description"`
	Description     string  `json:"description,omitempty" jsonschema:"free-text annotation"`
	IssueDate       string  `json:"issue_date,omitempty" jsonschema:"receipt date in YYYY-MM-DD format"`
	TotalAmount     float64 `json:"total_amount,omitempty" jsonschema:"receipt total amount"`
	Category        string  `json:"category,omitempty" jsonschema:"classification label"`
	Verified        bool    `json:"verified,omitempty" jsonschema:"whether a human confirmed the category"`
}

// GetRecordInput is the input schema for the get_record tool.
type GetRecordInput struct {
	ID string `json:"id" jsonschema:"the record id"`
}

// UpdateRecordInput is the input schema for the update_record tool.
// Omitted fields keep their stored values.
type UpdateRecordInput struct {
	ID              string   `json:"id" jsonschema:"the record id"`
	StoreName       *string  `json:"store_name,omitempty" jsonschema:"merchant name"`
	ItemDescription *string  `json:"item_description,omitempty" jsonschema:"purchased item description"`
	Description     *string  `json:"description,omitempty" jsonschema:"free-text annotation"`
	IssueDate       *string  `json:"issue_date,omitempty" jsonschema:"receipt date in YYYY-MM-DD format"`
	TotalAmount     *float64 `json:"total_amount,omitempty" jsonschema:"receipt total amount"`
	Category        *string  `json:"category,omitempty" jsonschema:"classification label"`
	Verified        *bool    `json:"verified,omitempty" jsonschema:"whether a human confirmed the category"`
}

// DeleteRecordInput is the input schema for the delete_record tool.
type DeleteRecordInput struct {
	ID string `json:"id" jsonschema:"the record id"`
}

// ListRecordsInput is the input schema for the list_records tool.
type ListRecordsInput struct{}

// ExportRecordsInput is the input schema for the export_records tool.
type ExportRecordsInput struct{}

// StatsInput is the input schema for the stats tool.
type StatsInput struct{}

// RecordOutput is the output schema for single-record tools.
type RecordOutput struct {
	Success bool           `json:"success"`
	Record  *domain.Record `json:"record,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// DeleteRecordOutput is the output schema for the delete_record tool.
type DeleteRecordOutput struct {
	Success   bool   `json:"success"`
	DeletedID string `json:"deleted_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ListRecordsOutput is the output schema for the list_records tool.
type ListRecordsOutput struct {
	Success bool            `json:"success"`
	Records []domain.Record `json:"records"`
	Total   int             `json:"total"`
}

// ExportRecordsOutput is the output schema for the export_records tool.
type ExportRecordsOutput struct {
	Success bool                    `json:"success"`
	Records []domain.ExportedRecord `json:"records"`
	Total   int                     `json:"total"`
}

// StatsOutput is the output schema for the stats tool.
type StatsOutput struct {
	Success bool          `json:"success"`
	Stats   *domain.Stats `json:"stats,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "classify",
		Description: "Classify a receipt by similarity against stored verified records",
	}, s.handleClassify)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_record",
		Description: "Add or overwrite a classification record",
	}, s.handleAddRecord)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_record",
		Description: "Get a classification record by id",
	}, s.handleGetRecord)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_records",
		Description: "List all classification records",
	}, s.handleListRecords)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_record",
		Description: "Update fields of a classification record",
	}, s.handleUpdateRecord)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_record",
		Description: "Delete a classification record by id",
	}, s.handleDeleteRecord)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "export_records",
		Description: "Export all classification records without embeddings",
	}, s.handleExportRecords)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "stats",
		Description: "Summarise the stored classification records",
	}, s.handleStats)
}

// handleClassify handles the classify tool invocation.
func (s *Server) handleClassify(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ClassifyInput,
) (*mcp.CallToolResult, ClassifyOutput, error) {
	result := s.ports.Classify.Classify(ctx, domain.QueryInput{
		StoreName:       input.StoreName,
		ItemDescription: input.ItemDescription,
		Description:     input.Description,
		IssueDate:       input.IssueDate,
		TotalAmount:     input.TotalAmount,
	})

	return nil, ClassifyOutput{
		Success:      result.Success,
		Category:     result.Category,
		Subject:      result.Subject,
		Similarity:   result.Similarity,
		Source:       result.Source,
		MatchedStore: result.MatchedStore,
		MatchedItem:  result.MatchedItem,
		Error:        result.Error,
	}, nil
}

// handleAddRecord handles the add_record tool invocation.
func (s *Server) handleAddRecord(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddRecordInput,
) (*mcp.CallToolResult, RecordOutput, error) {
	id := input.ID
	if id == "" {
		id = uuid.New().String()
	}

	record, err := s.ports.Record.Upsert(ctx, id, domain.Metadata{
		StoreName:       input.StoreName,
		ItemDescription: input.ItemDescription,
		Description:     input.Description,
		IssueDate:       input.IssueDate,
		TotalAmount:     input.TotalAmount,
		Category:        input.Category,
		Verified:        input.Verified,
	})
	if err != nil {
		if knownDomainError(err) {
			return nil, RecordOutput{Success: false, Error: err.Error()}, nil
		}
		return nil, RecordOutput{}, err
	}
	return nil, RecordOutput{Success: true, Record: record}, nil
}

// handleGetRecord handles the get_record tool invocation.
func (s *Server) handleGetRecord(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetRecordInput,
) (*mcp.CallToolResult, RecordOutput, error) {
	record, err := s.ports.Record.Get(ctx, input.ID)
	if err != nil {
		if knownDomainError(err) {
			return nil, RecordOutput{Success: false, Error: err.Error()}, nil
		}
		return nil, RecordOutput{}, err
	}
	return nil, RecordOutput{Success: true, Record: record}, nil
}

// handleListRecords handles the list_records tool invocation.
func (s *Server) handleListRecords(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListRecordsInput,
) (*mcp.CallToolResult, ListRecordsOutput, error) {
	records, err := s.ports.Record.List(ctx)
	if err != nil {
		return nil, ListRecordsOutput{}, err
	}
	if records == nil {
		records = []domain.Record{}
	}
	return nil, ListRecordsOutput{Success: true, Records: records, Total: len(records)}, nil
}

// handleUpdateRecord handles the update_record tool invocation.
func (s *Server) handleUpdateRecord(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateRecordInput,
) (*mcp.CallToolResult, RecordOutput, error) {
	partial := domain.PartialMetadata{
		StoreName:       input.StoreName,
		ItemDescription: input.ItemDescription,
		Description:     input.Description,
		IssueDate:       input.IssueDate,
		TotalAmount:     input.TotalAmount,
		Category:        input.Category,
		Verified:        input.Verified,
	}

	record, err := s.ports.Record.Update(ctx, input.ID, partial)
	if err != nil {
		if knownDomainError(err) {
			return nil, RecordOutput{Success: false, Error: err.Error()}, nil
		}
		return nil, RecordOutput{}, err
	}
	return nil, RecordOutput{Success: true, Record: record}, nil
}

// handleDeleteRecord handles the delete_record tool invocation.
func (s *Server) handleDeleteRecord(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteRecordInput,
) (*mcp.CallToolResult, DeleteRecordOutput, error) {
	deleted, err := s.ports.Record.Delete(ctx, input.ID)
	if err != nil {
		if knownDomainError(err) {
			return nil, DeleteRecordOutput{Success: false, Error: err.Error()}, nil
		}
		return nil, DeleteRecordOutput{}, err
	}
	return nil, DeleteRecordOutput{Success: true, DeletedID: deleted}, nil
}

// handleExportRecords handles the export_records tool invocation.
func (s *Server) handleExportRecords(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ExportRecordsInput,
) (*mcp.CallToolResult, ExportRecordsOutput, error) {
	records, err := s.ports.Record.Export(ctx)
	if err != nil {
		return nil, ExportRecordsOutput{}, err
	}
	if records == nil {
		records = []domain.ExportedRecord{}
	}
	return nil, ExportRecordsOutput{Success: true, Records: records, Total: len(records)}, nil
}

// handleStats handles the stats tool invocation.
func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatsInput,
) (*mcp.CallToolResult, StatsOutput, error) {
	stats, err := s.ports.Record.Stats(ctx)
	if err != nil {
		return nil, StatsOutput{}, err
	}
	return nil, StatsOutput{Success: true, Stats: stats}, nil
}

// knownDomainError reports whether err is an expected outcome that is
// reported in the tool output envelope rather than as a protocol error.
func knownDomainError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrEmptyQuery) ||
		errors.Is(err, domain.ErrStoreUnavailable) ||
		errors.Is(err, domain.ErrEmbeddingUnavailable)
}
