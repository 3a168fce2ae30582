package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"bookshelf/internal/books"
	"bookshelf/internal/isbn"
	"bookshelf/internal/models"
)

// importRecord is one entry in a YAML import file.
type importRecord struct {
	ISBN      string `yaml:"isbn"`
	Title     string `yaml:"title"`
	Author    string `yaml:"author"`
	Year      int    `yaml:"year"`
	Publisher string `yaml:"publisher"`
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Bulk-import books from a YAML file",
		Long: `Imports book records from a YAML list. Records with an invalid ISBN or a
missing title are skipped, as are ISBNs already registered.`,
		Example: `  bookshelf import collection.yaml

  # collection.yaml:
  # - isbn: 978-0-441-01359-3
  #   title: Dune
  #   author: Frank Herbert
  #   year: 1990
  #   publisher: Ace`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read import file: %w", err)
			}

			var records []importRecord
			if err := yaml.Unmarshal(data, &records); err != nil {
				return fmt.Errorf("failed to parse import file: %w", err)
			}
			if len(records) == 0 {
				return errors.New("import file contains no records")
			}

			store, conn, err := openBookStore()
			if err != nil {
				return err
			}
			defer conn.Close()

			out := cmd.OutOrStdout()
			imported := 0
			skipped := 0
			for i, record := range records {
				key := isbn.Normalize(record.ISBN)
				if key == "" {
					fmt.Fprintf(out, "record %d: skipped, invalid ISBN %q\n", i+1, record.ISBN)
					skipped++
					continue
				}

				err := store.Insert(cmd.Context(), models.Book{
					ISBN:      key,
					Title:     record.Title,
					Author:    record.Author,
					Year:      record.Year,
					Publisher: record.Publisher,
				})
				switch {
				case err == nil:
					imported++
				case errors.Is(err, books.ErrDuplicate), errors.Is(err, books.ErrEmptyTitle):
					fmt.Fprintf(out, "record %d (%s): skipped, %v\n", i+1, key, err)
					skipped++
				default:
					return fmt.Errorf("record %d (%s): %w", i+1, key, err)
				}
			}

			fmt.Fprintf(out, "Imported %d book(s), skipped %d.\n", imported, skipped)
			return nil
		},
	}
}
