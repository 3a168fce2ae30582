package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"bookshelf/internal/books"
	"bookshelf/internal/isbn"
	"bookshelf/internal/models"
)

func (h *Handler) HandleBooks(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireSession(w, r); !ok {
		return
	}

	switch r.Method {
	case "GET":
		collection, err := h.bookStore.List(r.Context())
		if err != nil {
			h.writeError(w, "Failed to list books: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if collection == nil {
			collection = []models.Book{}
		}
		h.writeJSON(w, collection)
	case "POST":
		var book models.Book
		if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}

		// ISBNs are stored only in canonical form; anything that fails
		// normalization is rejected rather than stored as garbage.
		book.ISBN = isbn.Normalize(book.ISBN)
		if book.ISBN == "" {
			h.writeError(w, "A valid 10 or 13 character ISBN is required", http.StatusBadRequest)
			return
		}

		if err := h.bookStore.Insert(r.Context(), book); err != nil {
			switch {
			case errors.Is(err, books.ErrDuplicate):
				h.writeError(w, err.Error(), http.StatusConflict)
			case errors.Is(err, books.ErrEmptyTitle):
				h.writeError(w, err.Error(), http.StatusBadRequest)
			default:
				h.writeError(w, "Failed to register book: "+err.Error(), http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(book); err != nil {
			return
		}
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) HandleBookDetail(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireSession(w, r); !ok {
		return
	}

	key := isbn.Normalize(strings.TrimPrefix(r.URL.Path, "/api/books/"))
	if key == "" {
		h.writeError(w, "A valid 10 or 13 character ISBN is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case "GET":
		book, err := h.bookStore.Get(r.Context(), key)
		if err != nil {
			if errors.Is(err, books.ErrNotFound) {
				h.writeError(w, err.Error(), http.StatusNotFound)
				return
			}
			h.writeError(w, "Failed to fetch book: "+err.Error(), http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, book)
	case "PUT":
		var book models.Book
		if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		book.ISBN = key

		if err := h.bookStore.Update(r.Context(), book); err != nil {
			switch {
			case errors.Is(err, books.ErrNotFound):
				h.writeError(w, err.Error(), http.StatusNotFound)
			case errors.Is(err, books.ErrEmptyTitle):
				h.writeError(w, err.Error(), http.StatusBadRequest)
			default:
				h.writeError(w, "Failed to update book: "+err.Error(), http.StatusInternalServerError)
			}
			return
		}
		h.writeJSON(w, book)
	case "DELETE":
		if err := h.bookStore.Delete(r.Context(), key); err != nil {
			if errors.Is(err, books.ErrNotFound) {
				h.writeError(w, err.Error(), http.StatusNotFound)
				return
			}
			h.writeError(w, "Failed to delete book: "+err.Error(), http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, map[string]string{"message": "Book deleted"})
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
