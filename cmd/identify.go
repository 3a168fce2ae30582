package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bookshelf/internal/books"
	"bookshelf/internal/catalog"
	"bookshelf/internal/config"
	"bookshelf/internal/db"
	"bookshelf/internal/identify"
	"bookshelf/internal/isbn"
	"bookshelf/internal/models"
	"bookshelf/internal/vision"
)

func newIdentifyCmd() *cobra.Command {
	var provider string
	var model string
	var save bool

	cmd := &cobra.Command{
		Use:   "identify <image-file>",
		Short: "Identify a book from a cover photograph",
		Long: `Reads a cover photograph with a vision-capable LLM, cross-references
Google Books, and prints the merged record. With --save the record is
registered in the library after a successful identification.`,
		Example: `  # Identify a cover with the configured provider
  bookshelf identify cover.jpg

  # Use a specific provider/model and save the result
  bookshelf identify cover.jpg --provider gemini --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}

			cfg := config.Load()
			if provider == "" {
				provider = cfg.VisionProvider
			}

			visionClient, err := vision.ForProvider(provider, model)
			if err != nil {
				return err
			}
			pipeline := identify.New(visionClient, catalog.NewClient())

			record, err := pipeline.Identify(cmd.Context(), image)
			if err != nil {
				if errors.Is(err, identify.ErrVisionFailed) || errors.Is(err, identify.ErrNotIdentified) {
					fmt.Fprintln(cmd.OutOrStdout(), err.Error())
					return nil
				}
				return err
			}

			confidence := identify.Confidence(record)
			status := "partial data"
			if confidence == 3 {
				status = "identified"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Status:      %s (%d/3 fields)\n", status, confidence)
			fmt.Fprintf(out, "Title:       %s\n", record.Title)
			fmt.Fprintf(out, "Author:      %s\n", record.Author)
			fmt.Fprintf(out, "ISBN:        %s\n", record.ISBN)
			fmt.Fprintf(out, "Publisher:   %s\n", record.Publisher)
			fmt.Fprintf(out, "Year:        %d\n", record.Year)
			if record.CoverURL != "" {
				fmt.Fprintf(out, "Cover:       %s\n", record.CoverURL)
			}

			if !save {
				return nil
			}

			key := isbn.Normalize(record.ISBN)
			if key == "" {
				return errors.New("cannot save: no valid ISBN in the identified record")
			}

			conn, err := db.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			store, err := books.NewStore(conn)
			if err != nil {
				return fmt.Errorf("init book store: %w", err)
			}

			err = store.Insert(cmd.Context(), models.Book{
				ISBN:      key,
				Title:     record.Title,
				Author:    record.Author,
				Year:      record.Year,
				Publisher: record.Publisher,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Saved %s to the library.\n", key)
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "Vision provider: openai, ollama or gemini (default from config)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (default per provider)")
	cmd.Flags().BoolVar(&save, "save", false, "Register the identified book in the library")

	return cmd
}
