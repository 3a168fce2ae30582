package cmd

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"bookshelf/internal/books"
	"bookshelf/internal/config"
	"bookshelf/internal/db"
	"bookshelf/internal/isbn"
	"bookshelf/internal/models"
)

func newBooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Manage the book collection from the shell",
	}

	cmd.AddCommand(newBooksListCmd())
	cmd.AddCommand(newBooksShowCmd())
	cmd.AddCommand(newBooksAddCmd())
	cmd.AddCommand(newBooksRemoveCmd())

	return cmd
}

func openBookStore() (*books.Store, *sql.DB, error) {
	cfg := config.Load()
	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	store, err := books.NewStore(conn)
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("init book store: %w", err)
	}
	return store, conn, nil
}

func newBooksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every registered book",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, conn, err := openBookStore()
			if err != nil {
				return err
			}
			defer conn.Close()

			collection, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(collection) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "The library is empty.")
				return nil
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"ISBN", "Title", "Author", "Year", "Publisher"})
			for _, book := range collection {
				year := ""
				if book.Year != 0 {
					year = strconv.Itoa(book.Year)
				}
				tw.AppendRow(table.Row{book.ISBN, book.Title, book.Author, year, book.Publisher})
			}
			tw.Render()
			return nil
		},
	}
}

func newBooksShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <isbn>",
		Short: "Show a single book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := isbn.Normalize(args[0])
			if key == "" {
				return fmt.Errorf("%q is not a valid ISBN", args[0])
			}

			store, conn, err := openBookStore()
			if err != nil {
				return err
			}
			defer conn.Close()

			book, err := store.Get(cmd.Context(), key)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ISBN:       %s\n", book.ISBN)
			fmt.Fprintf(out, "Title:      %s\n", book.Title)
			fmt.Fprintf(out, "Author:     %s\n", book.Author)
			fmt.Fprintf(out, "Year:       %d\n", book.Year)
			fmt.Fprintf(out, "Publisher:  %s\n", book.Publisher)
			return nil
		},
	}
}

func newBooksAddCmd() *cobra.Command {
	var author string
	var publisher string
	var year int

	cmd := &cobra.Command{
		Use:   "add <isbn> <title>",
		Short: "Register a book by hand",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := isbn.Normalize(args[0])
			if key == "" {
				return fmt.Errorf("%q is not a valid ISBN", args[0])
			}

			store, conn, err := openBookStore()
			if err != nil {
				return err
			}
			defer conn.Close()

			err = store.Insert(cmd.Context(), models.Book{
				ISBN:      key,
				Title:     args[1],
				Author:    author,
				Year:      year,
				Publisher: publisher,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s.\n", key)
			return nil
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "Author name")
	cmd.Flags().StringVar(&publisher, "publisher", "", "Publisher name")
	cmd.Flags().IntVar(&year, "year", 0, "Publication year (0 for unknown)")

	return cmd
}

func newBooksRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <isbn>",
		Short: "Delete a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := isbn.Normalize(args[0])
			if key == "" {
				return fmt.Errorf("%q is not a valid ISBN", args[0])
			}

			store, conn, err := openBookStore()
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := store.Delete(cmd.Context(), key); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", key)
			return nil
		},
	}
}
