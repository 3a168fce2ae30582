package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"bookshelf/internal/books"
	"bookshelf/internal/catalog"
	"bookshelf/internal/config"
	"bookshelf/internal/db"
	"bookshelf/internal/handlers"
	"bookshelf/internal/identify"
	"bookshelf/internal/images"
	"bookshelf/internal/users"
	"bookshelf/internal/vision"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the library web API",
		Long: `Starts the Bookshelf JSON API on the specified port.

The API covers login, book CRUD and cover-photo identification. Cover
identification sends the image to a vision-capable LLM and cross-references
Google Books before returning a merged record for confirmation.`,
		Example: `  # Start server on default port 8888
  bookshelf serve

  # Start server on custom port
  bookshelf serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			conn, err := db.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			bookStore, err := books.NewStore(conn)
			if err != nil {
				return fmt.Errorf("init book store: %w", err)
			}
			userStore, err := users.NewStore(conn)
			if err != nil {
				return fmt.Errorf("init user store: %w", err)
			}

			visionClient, err := vision.ForProvider(cfg.VisionProvider, "")
			if err != nil {
				return err
			}
			pipeline := identify.New(visionClient, catalog.NewClient())

			handler := handlers.New(userStore, bookStore, pipeline, images.NewFetcher())

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/login", handler.HandleLogin)
			mux.HandleFunc("/api/logout", handler.HandleLogout)
			mux.HandleFunc("/api/register", handler.HandleRegister)
			mux.HandleFunc("/api/books", handler.HandleBooks)
			mux.HandleFunc("/api/books/", handler.HandleBookDetail)
			mux.HandleFunc("/api/identify", handler.HandleIdentify)
			mux.HandleFunc("/", handler.HandleStatic)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Bookshelf API available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")

	return cmd
}
