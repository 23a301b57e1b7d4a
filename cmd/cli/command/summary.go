package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Book summary commands",
}

var showSummaryCmd = &cobra.Command{
	Use:   "show [book_id]",
	Short: "Show the stored summary and average rating of a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bookID, err := parseID(args[0])
		if err != nil {
			return err
		}

		summary, err := newClient().GetBookSummary(bookID)
		if err != nil {
			return fmt.Errorf("failed to get summary: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Average rating: %.2f\n", summary.AverageRating)
		if summary.Summary == "" {
			fmt.Fprintln(out, "No summary yet. Run 'bookhubCLI summary generate' to create one.")
			return nil
		}
		fmt.Fprintf(out, "Summary:\n%s\n", summary.Summary)
		return nil
	},
}

var generateSummaryCmd = &cobra.Command{
	Use:   "generate [book_id]",
	Short: "Generate and store a summary from the book's text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bookID, err := parseID(args[0])
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.ErrOrStderr(), "Generating summary, this can take a while...")
		summary, err := newClient().GenerateSummary(bookID)
		if err != nil {
			return fmt.Errorf("failed to generate summary: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), summary)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.AddCommand(showSummaryCmd)
	summaryCmd.AddCommand(generateSummaryCmd)
}
