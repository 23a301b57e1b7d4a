package command

import (
	"fmt"
	"strings"

	"bookhub/cmd/cli/dto"

	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Book review commands",
}

var listReviewCmd = &cobra.Command{
	Use:   "list [book_id]",
	Short: "List the reviews of a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bookID, err := parseID(args[0])
		if err != nil {
			return err
		}

		reviews, err := newClient().ListReviews(bookID)
		if err != nil {
			return fmt.Errorf("failed to get reviews: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(reviews) == 0 {
			fmt.Fprintln(out, "No reviews yet.")
			return nil
		}
		for _, r := range reviews {
			fmt.Fprintf(out, "Review #%d by user %d: %.1f\n", r.ID, r.UserID, r.Rating)
			fmt.Fprintf(out, "%s\n", r.ReviewText)
			fmt.Fprintln(out, strings.Repeat("-", 50))
		}
		return nil
	},
}

var addReviewCmd = &cobra.Command{
	Use:   "add [book_id]",
	Short: "Add a review to a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bookID, err := parseID(args[0])
		if err != nil {
			return err
		}

		userID, _ := cmd.Flags().GetInt64("user")
		text, _ := cmd.Flags().GetString("text")
		rating, _ := cmd.Flags().GetFloat64("rating")

		review, err := newClient().AddReview(bookID, &dto.CreateReviewRequest{
			UserID:     userID,
			ReviewText: text,
			Rating:     rating,
		})
		if err != nil {
			return fmt.Errorf("failed to add review: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Review #%d added to book %d\n", review.ID, review.BookID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.AddCommand(listReviewCmd)
	reviewCmd.AddCommand(addReviewCmd)

	addReviewCmd.Flags().Int64("user", 0, "reviewer user id")
	addReviewCmd.Flags().String("text", "", "review text")
	addReviewCmd.Flags().Float64("rating", 0, "rating")
	addReviewCmd.MarkFlagRequired("user")
	addReviewCmd.MarkFlagRequired("text")
	addReviewCmd.MarkFlagRequired("rating")
}
