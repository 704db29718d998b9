package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerworks/reclass-cli/internal/core/domain"
)

// statsOutput is the JSON envelope for stats.
type statsOutput struct {
	Success bool          `json:"success"`
	Stats   *domain.Stats `json:"stats"`
}

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise stored records",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output stats as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if recordService == nil {
		return errors.New("record service not configured")
	}

	stats, err := recordService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("computing stats: %w", err)
	}

	if statsJSON {
		return printJSON(cmd, statsOutput{Success: true, Stats: stats})
	}
	return outputStatsTable(cmd, stats)
}
