package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookshelf",
		Short: "Personal library manager with cover-photo book identification",
		Long: `Bookshelf manages a personal book collection stored in a local SQLite database.

Books can be registered by hand or identified from a cover photograph: a
vision-capable LLM reads the cover, Google Books corroborates and completes
the extracted fields, and the merged record is presented for confirmation.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newIdentifyCmd())
	cmd.AddCommand(newBooksCmd())
	cmd.AddCommand(newUsersCmd())
	cmd.AddCommand(newImportCmd())

	return cmd
}
