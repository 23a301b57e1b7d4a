package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend books, optionally of one genre",
	RunE: func(cmd *cobra.Command, args []string) error {
		genre, _ := cmd.Flags().GetString("genre")

		books, err := newClient().Recommend(genre)
		if err != nil {
			return fmt.Errorf("failed to get recommendations: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(books) == 0 {
			fmt.Fprintln(out, "No books found.")
			return nil
		}
		for _, b := range books {
			printBookLine(out, b)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	recommendCmd.Flags().String("genre", "", "exact genre to match (empty lists every book)")
}
