package command

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"bookhub/cmd/cli/dto"

	"github.com/spf13/cobra"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book management commands",
	Long:  `Manage books: list, view, create, update and delete`,
}

var listBookCmd = &cobra.Command{
	Use:   "list",
	Short: "List all books",
	RunE: func(cmd *cobra.Command, args []string) error {
		books, err := newClient().ListBooks()
		if err != nil {
			return fmt.Errorf("failed to get book list: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(books) == 0 {
			fmt.Fprintln(out, "No books found.")
			return nil
		}

		fmt.Fprintf(out, "Found %d books:\n\n", len(books))
		for _, b := range books {
			printBookLine(out, b)
		}
		return nil
	},
}

var getBookCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Get book by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		book, err := newClient().GetBook(id)
		if err != nil {
			return fmt.Errorf("failed to get book: %w", err)
		}

		printBook(cmd.OutOrStdout(), *book)
		return nil
	},
}

var createBookCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new book",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		author, _ := cmd.Flags().GetString("author")
		genre, _ := cmd.Flags().GetString("genre")
		year, _ := cmd.Flags().GetInt("year")

		request := &dto.CreateBookRequest{
			Title:         title,
			Author:        author,
			Genre:         genre,
			YearPublished: year,
		}
		text, err := textFromFlags(cmd)
		if err != nil {
			return err
		}
		request.TextContent = text

		book, err := newClient().CreateBook(request)
		if err != nil {
			return fmt.Errorf("failed to create book: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Book created successfully!")
		printBook(cmd.OutOrStdout(), *book)
		return nil
	},
}

var updateBookCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a book (only the given flags are changed)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		fields := make(map[string]interface{})
		for flag, field := range map[string]string{
			"title":   "title",
			"author":  "author",
			"genre":   "genre",
			"summary": "summary",
		} {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				fields[field] = v
			}
		}
		if cmd.Flags().Changed("year") {
			year, _ := cmd.Flags().GetInt("year")
			fields["year_published"] = year
		}
		text, err := textFromFlags(cmd)
		if err != nil {
			return err
		}
		if text != nil {
			fields["text_content"] = *text
		}
		cleared, _ := cmd.Flags().GetStringSlice("clear")
		for _, field := range cleared {
			fields[field] = nil
		}

		if len(fields) == 0 {
			return fmt.Errorf("nothing to update, pass at least one field flag")
		}

		book, err := newClient().UpdateBook(id, fields)
		if err != nil {
			return fmt.Errorf("failed to update book: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Book updated successfully!")
		printBook(cmd.OutOrStdout(), *book)
		return nil
	},
}

var deleteBookCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a book and all of its reviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		msg, err := newClient().DeleteBook(id)
		if err != nil {
			return fmt.Errorf("failed to delete book: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid book ID: %w", err)
	}
	return id, nil
}

// textFromFlags reads --text or --text-file; nil when neither is set.
func textFromFlags(cmd *cobra.Command) (*string, error) {
	if cmd.Flags().Changed("text-file") {
		path, _ := cmd.Flags().GetString("text-file")
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read text file: %w", err)
		}
		text := string(data)
		return &text, nil
	}
	if cmd.Flags().Changed("text") {
		text, _ := cmd.Flags().GetString("text")
		return &text, nil
	}
	return nil, nil
}

func printBookLine(out io.Writer, b dto.BookResponse) {
	fmt.Fprintf(out, "ID: %d\n", b.ID)
	fmt.Fprintf(out, "Title: %s\n", b.Title)
	fmt.Fprintf(out, "Author: %s\n", b.Author)
	if b.Genre != nil {
		fmt.Fprintf(out, "Genre: %s\n", *b.Genre)
	}
	fmt.Fprintln(out, strings.Repeat("-", 50))
}

func printBook(out io.Writer, b dto.BookResponse) {
	fmt.Fprintf(out, "ID: %d\n", b.ID)
	fmt.Fprintf(out, "Title: %s\n", b.Title)
	fmt.Fprintf(out, "Author: %s\n", b.Author)
	if b.Genre != nil {
		fmt.Fprintf(out, "Genre: %s\n", *b.Genre)
	}
	if b.YearPublished != nil {
		fmt.Fprintf(out, "Year: %d\n", *b.YearPublished)
	}
	if b.Summary != nil {
		fmt.Fprintf(out, "Summary: %s\n", *b.Summary)
	}
	if b.TextContent != nil {
		fmt.Fprintf(out, "Text: %d characters\n", len(*b.TextContent))
	}
}

func addBookFieldFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "book title")
	cmd.Flags().String("author", "", "book author")
	cmd.Flags().String("genre", "", "genre")
	cmd.Flags().Int("year", 0, "year published")
	cmd.Flags().String("text", "", "full text content")
	cmd.Flags().String("text-file", "", "read full text content from a file")
}

func init() {
	rootCmd.AddCommand(bookCmd)

	bookCmd.AddCommand(listBookCmd)
	bookCmd.AddCommand(getBookCmd)
	bookCmd.AddCommand(createBookCmd)
	bookCmd.AddCommand(updateBookCmd)
	bookCmd.AddCommand(deleteBookCmd)

	addBookFieldFlags(createBookCmd)
	createBookCmd.MarkFlagRequired("title")
	createBookCmd.MarkFlagRequired("author")
	createBookCmd.MarkFlagRequired("genre")
	createBookCmd.MarkFlagRequired("year")

	addBookFieldFlags(updateBookCmd)
	updateBookCmd.Flags().String("summary", "", "summary")
	updateBookCmd.Flags().StringSlice("clear", nil, "fields to set to null (genre, year_published, summary, text_content)")
}
