package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ledgerworks/reclass-cli/internal/core/domain"
)

var searchQuery domain.QueryInput

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Classify a receipt against stored records",
	Long: `Embeds the supplied receipt fields and retrieves the most similar
stored record. When the best match clears the similarity threshold its
category is suggested; otherwise the result is an explicit fallback.

The result is always printed as JSON and the command always exits
successfully. Inspect the "success" and "source" fields:

  reclass search --store-name "Shell" --item "Diesel 40L"
  reclass search --description "office chair" --amount 249.99`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchQuery.StoreName, "store-name", "", "merchant name on the receipt")
	searchCmd.Flags().StringVar(&searchQuery.ItemDescription, "item", "", "purchased item description")
	searchCmd.Flags().StringVar(&searchQuery.Description, "description", "", "free-text annotation")
	searchCmd.Flags().StringVar(&searchQuery.IssueDate, "issue-date", "", "receipt date (YYYY-MM-DD)")
	searchCmd.Flags().Float64Var(&searchQuery.TotalAmount, "amount", 0, "receipt total")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	if classifyService == nil {
		return errors.New("classify service not configured")
	}

	result := classifyService.Classify(cmd.Context(), searchQuery)
	return printJSON(cmd, result)
}
