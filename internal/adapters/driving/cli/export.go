package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerworks/reclass-cli/internal/core/domain"
)

// exportOutput is the JSON envelope for export.
type exportOutput struct {
	Success bool                    `json:"success"`
	Records []domain.ExportedRecord `json:"records"`
	Total   int                     `json:"total"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all records as JSON",
	Long: `Exports every record without embeddings, for backup or migration.
Embeddings are derived data and are rebuilt on import by re-adding
the records.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	if recordService == nil {
		return errors.New("record service not configured")
	}

	records, err := recordService.Export(cmd.Context())
	if err != nil {
		return fmt.Errorf("exporting records: %w", err)
	}
	if records == nil {
		records = []domain.ExportedRecord{}
	}
	return printJSON(cmd, exportOutput{Success: true, Records: records, Total: len(records)})
}
