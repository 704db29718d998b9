package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ledgerworks/reclass-cli/internal/core/domain"
)

// recordOutput is the JSON envelope for single-record operations.
type recordOutput struct {
	Success bool           `json:"success"`
	Record  *domain.Record `json:"record,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// deleteOutput is the JSON envelope for record delete.
type deleteOutput struct {
	Success   bool   `json:"success"`
	DeletedID string `json:"deleted_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// listOutput is the JSON envelope for record list.
type listOutput struct {
	Success bool            `json:"success"`
	Records []domain.Record `json:"records"`
	Total   int             `json:"total"`
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Manage classification records",
	Long: `Commands for the verified records that back classification.

Every write re-derives the searchable document and its embedding from
the record's metadata, so search always sees consistent records.`,
}

var (
	addID       string
	addMetadata domain.Metadata
)

var recordAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or overwrite a record",
	Long: `Adds a record, or fully overwrites an existing one when --id matches.
Without --id a fresh UUID is generated.

  reclass record add --store-name "Shell" --item "Diesel 40L" \
      --category "Fuel" --verified`,
	RunE: runRecordAdd,
}

var recordGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a record",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordGet,
}

var recordListJSON bool

var recordListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all records",
	RunE:  runRecordList,
}

var updateFields domain.PartialMetadata

var recordUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a record",
	Long: `Updates only the supplied fields; everything else keeps its stored
value. The document and embedding are re-derived from the merged result.

  reclass record update 3f2a... --category "Vehicle costs" --verified`,
	Args: cobra.ExactArgs(1),
	RunE: runRecordUpdate,
}

var recordDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordDelete,
}

func init() {
	recordAddCmd.Flags().StringVar(&addID, "id", "", "record id (generated when omitted)")
	recordAddCmd.Flags().StringVar(&addMetadata.StoreName, "store-name", "", "merchant name")
	recordAddCmd.Flags().StringVar(&addMetadata.ItemDescription, "item", "", "purchased item description")
	recordAddCmd.Flags().StringVar(&addMetadata.Description, "description", "", "free-text annotation")
	recordAddCmd.Flags().StringVar(&addMetadata.IssueDate, "issue-date", "", "receipt date (YYYY-MM-DD)")
	recordAddCmd.Flags().Float64Var(&addMetadata.TotalAmount, "amount", 0, "receipt total")
	recordAddCmd.Flags().StringVar(&addMetadata.Category, "category", "", "classification label")
	recordAddCmd.Flags().BoolVar(&addMetadata.Verified, "verified", false, "mark the category as human-verified")

	recordListCmd.Flags().BoolVar(&recordListJSON, "json", false, "output records as JSON")

	recordUpdateCmd.Flags().String("store-name", "", "merchant name")
	recordUpdateCmd.Flags().String("item", "", "purchased item description")
	recordUpdateCmd.Flags().String("description", "", "free-text annotation")
	recordUpdateCmd.Flags().String("issue-date", "", "receipt date (YYYY-MM-DD)")
	recordUpdateCmd.Flags().Float64("amount", 0, "receipt total")
	recordUpdateCmd.Flags().String("category", "", "classification label")
	recordUpdateCmd.Flags().Bool("verified", false, "mark the category as human-verified")

	recordCmd.AddCommand(recordAddCmd)
	recordCmd.AddCommand(recordGetCmd)
	recordCmd.AddCommand(recordListCmd)
	recordCmd.AddCommand(recordUpdateCmd)
	recordCmd.AddCommand(recordDeleteCmd)
	rootCmd.AddCommand(recordCmd)
}

func runRecordAdd(cmd *cobra.Command, _ []string) error {
	if recordService == nil {
		return errors.New("record service not configured")
	}

	id := addID
	if id == "" {
		id = uuid.New().String()
	}

	record, err := recordService.Upsert(cmd.Context(), id, addMetadata)
	if err != nil {
		if knownDomainError(err) {
			return printJSON(cmd, recordOutput{Success: false, Error: err.Error()})
		}
		return fmt.Errorf("adding record: %w", err)
	}
	return printJSON(cmd, recordOutput{Success: true, Record: record})
}

func runRecordGet(cmd *cobra.Command, args []string) error {
	if recordService == nil {
		return errors.New("record service not configured")
	}

	record, err := recordService.Get(cmd.Context(), args[0])
	if err != nil {
		if knownDomainError(err) {
			return printJSON(cmd, recordOutput{Success: false, Error: err.Error()})
		}
		return fmt.Errorf("getting record: %w", err)
	}
	return printJSON(cmd, recordOutput{Success: true, Record: record})
}

func runRecordList(cmd *cobra.Command, _ []string) error {
	if recordService == nil {
		return errors.New("record service not configured")
	}

	records, err := recordService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing records: %w", err)
	}

	if recordListJSON {
		if records == nil {
			records = []domain.Record{}
		}
		return printJSON(cmd, listOutput{Success: true, Records: records, Total: len(records)})
	}
	return outputRecordTable(cmd, records)
}

func runRecordUpdate(cmd *cobra.Command, args []string) error {
	if recordService == nil {
		return errors.New("record service not configured")
	}

	partial := partialFromFlags(cmd)
	if partial.IsEmpty() {
		return errors.New("no fields to update; supply at least one field flag")
	}

	record, err := recordService.Update(cmd.Context(), args[0], partial)
	if err != nil {
		if knownDomainError(err) {
			return printJSON(cmd, recordOutput{Success: false, Error: err.Error()})
		}
		return fmt.Errorf("updating record: %w", err)
	}
	return printJSON(cmd, recordOutput{Success: true, Record: record})
}

func runRecordDelete(cmd *cobra.Command, args []string) error {
	if recordService == nil {
		return errors.New("record service not configured")
	}

	deleted, err := recordService.Delete(cmd.Context(), args[0])
	if err != nil {
		if knownDomainError(err) {
			return printJSON(cmd, deleteOutput{Success: false, Error: err.Error()})
		}
		return fmt.Errorf("deleting record: %w", err)
	}
	return printJSON(cmd, deleteOutput{Success: true, DeletedID: deleted})
}

// partialFromFlags builds a PartialMetadata from the flags the user
// actually set, so unset flags leave stored values untouched.
func partialFromFlags(cmd *cobra.Command) domain.PartialMetadata {
	var partial domain.PartialMetadata
	flags := cmd.Flags()

	if flags.Changed("store-name") {
		v, _ := flags.GetString("store-name")
		partial.StoreName = &v
	}
	if flags.Changed("item") {
		v, _ := flags.GetString("item")
		partial.ItemDescription = &v
	}
	if flags.Changed("description") {
		v, _ := flags.GetString("description")
		partial.Description = &v
	}
	if flags.Changed("issue-date") {
		v, _ := flags.GetString("issue-date")
		partial.IssueDate = &v
	}
	if flags.Changed("amount") {
		v, _ := flags.GetFloat64("amount")
		partial.TotalAmount = &v
	}
	if flags.Changed("category") {
		v, _ := flags.GetString("category")
		partial.Category = &v
	}
	if flags.Changed("verified") {
		v, _ := flags.GetBool("verified")
		partial.Verified = &v
	}
	return partial
}
