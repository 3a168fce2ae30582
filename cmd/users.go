package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bookshelf/internal/config"
	"bookshelf/internal/db"
	"bookshelf/internal/users"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}

	cmd.AddCommand(newUsersCreateCmd())

	return cmd
}

func newUsersCreateCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Create a user account",
		Long: `Creates a user account for the web API. The password comes from the
--password flag or the BOOKSHELF_PASSWORD environment variable.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("BOOKSHELF_PASSWORD")
			}
			if password == "" {
				return errors.New("a password is required (--password or BOOKSHELF_PASSWORD)")
			}

			cfg := config.Load()
			conn, err := db.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			store, err := users.NewStore(conn)
			if err != nil {
				return fmt.Errorf("init user store: %w", err)
			}

			if err := store.Create(cmd.Context(), args[0], password); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s.\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password for the new account")

	return cmd
}
