package main

import (
	"fmt"
	"os"
	"strings"

	"openkey/internal/model"
	"openkey/internal/output"

	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank <query>",
	Short: "Rank the catalog against a query and print the results",
	Long: `Rank parses a free-text query, scores every project in the catalog and
prints the best matches with their score and rationale.

  openkey rank "2BR near the marina under 2.5M, handover 2027"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		limit, _ := cmd.Flags().GetInt("limit")
		// keep stdout for the results
		logger.SetOutput(os.Stderr)

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		resp, err := a.search.Search(cmd.Context(), &model.SearchRequest{
			Prompt: strings.Join(args, " "),
			Limit:  limit,
		})
		if err != nil {
			return err
		}

		if asJSON {
			return output.JSON(os.Stdout, resp)
		}
		if err := output.Results(os.Stdout, resp.Results); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%d results in %d ms (search %s)\n", len(resp.Results), resp.Took, resp.SearchID)
		return nil
	},
}

func init() {
	rankCmd.Flags().Bool("json", false, "print the full response as JSON")
	rankCmd.Flags().Int("limit", 0, "maximum number of results (default SEARCH_DEFAULT_LIMIT)")

	rootCmd.AddCommand(rankCmd)
}
