package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ledgerworks/reclass-cli/internal/core/domain"
)

// Styles for human-readable output. JSON output is never styled.
var (
	styleTitle    = lipgloss.NewStyle().Bold(true)
	styleID       = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	styleCategory = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	styleVerified = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	styleMuted    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// outputRecordTable renders records for terminal reading.
func outputRecordTable(cmd *cobra.Command, records []domain.Record) error {
	if len(records) == 0 {
		cmd.Println("No records stored.")
		return nil
	}

	cmd.Println(styleTitle.Render(fmt.Sprintf("Records (%d)", len(records))))
	cmd.Println()
	for i := range records {
		meta := records[i].Metadata

		mark := ""
		if meta.Verified {
			mark = " " + styleVerified.Render("✓")
		}
		cmd.Printf("  %s%s\n", records[i].Document, mark)
		cmd.Printf("      %s\n", styleID.Render(records[i].ID))
		if meta.Category != "" {
			cmd.Printf("      Category: %s\n", styleCategory.Render(meta.Category))
		}
		if meta.IssueDate != "" || meta.TotalAmount != 0 {
			cmd.Printf("      %s\n", styleMuted.Render(
				fmt.Sprintf("%s  %.2f", meta.IssueDate, meta.TotalAmount)))
		}
		cmd.Println()
	}
	return nil
}

// outputStatsTable renders the stats summary for terminal reading.
func outputStatsTable(cmd *cobra.Command, stats *domain.Stats) error {
	cmd.Println(styleTitle.Render("Record stats"))
	cmd.Println()
	cmd.Printf("  Total:      %d\n", stats.Total)
	cmd.Printf("  Verified:   %d\n", stats.Verified)
	cmd.Printf("  Unverified: %d\n", stats.Unverified)
	cmd.Printf("  Stores:     %d\n", stats.StoreCount)
	return nil
}
