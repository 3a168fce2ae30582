package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"bookshelf/internal/books"
	"bookshelf/internal/models"
	"bookshelf/internal/storage"
	"bookshelf/internal/users"
)

// Identifier runs the cover identification pipeline.
type Identifier interface {
	Identify(ctx context.Context, image []byte) (*models.CombinedRecord, error)
}

// CoverFetcher downloads a cover image referenced by URL.
type CoverFetcher interface {
	FetchCover(ctx context.Context, url string) ([]byte, error)
}

type Handler struct {
	sessionStore *storage.SessionStore
	userStore    *users.Store
	bookStore    *books.Store
	pipeline     Identifier
	fetcher      CoverFetcher
}

func New(userStore *users.Store, bookStore *books.Store, pipeline Identifier, fetcher CoverFetcher) *Handler {
	return &Handler{
		sessionStore: storage.New(),
		userStore:    userStore,
		bookStore:    bookStore,
		pipeline:     pipeline,
		fetcher:      fetcher,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		slog.Error("Unable to encode error response", "err", err)
	}
}

// requireSession resolves the bearer token into an active session, writing a
// 401 when there is none.
func (h *Handler) requireSession(w http.ResponseWriter, r *http.Request) (*models.LoginSession, bool) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == "" {
		h.writeError(w, "Authentication required", http.StatusUnauthorized)
		return nil, false
	}

	session, exists := h.sessionStore.Get(token)
	if !exists {
		h.writeError(w, "Invalid or expired session", http.StatusUnauthorized)
		return nil, false
	}
	return session, true
}
