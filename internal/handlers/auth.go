package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"bookshelf/internal/users"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.userStore.Verify(r.Context(), creds.Username, creds.Password); err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			h.writeError(w, err.Error(), http.StatusUnauthorized)
			return
		}
		h.writeError(w, "Login failed", http.StatusInternalServerError)
		return
	}

	session := h.sessionStore.Create(strings.ToLower(strings.TrimSpace(creds.Username)))
	slog.Info("User logged in", "username", session.Username)
	h.writeJSON(w, session)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	h.sessionStore.Delete(session.Token)
	h.writeJSON(w, map[string]string{"message": "Logged out"})
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.userStore.Create(r.Context(), creds.Username, creds.Password); err != nil {
		switch {
		case errors.Is(err, users.ErrExists):
			h.writeError(w, err.Error(), http.StatusConflict)
		case errors.Is(err, users.ErrUsernameTooShort), errors.Is(err, users.ErrPasswordTooShort):
			h.writeError(w, err.Error(), http.StatusBadRequest)
		default:
			h.writeError(w, "Registration failed", http.StatusInternalServerError)
		}
		return
	}

	h.writeJSON(w, map[string]string{"message": "User registered"})
}
