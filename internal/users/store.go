// Package users stores accounts with bcrypt password hashes and verifies
// credentials against them.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned on every verification failure path
	// so callers cannot tell a missing user from a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrExists means the username is already taken.
	ErrExists = errors.New("username already exists")
	// ErrUsernameTooShort rejects usernames under 3 characters.
	ErrUsernameTooShort = errors.New("username must be at least 3 characters")
	// ErrPasswordTooShort rejects passwords under 6 characters.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)

// Store manages user accounts backed by SQLite.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle, ensures the users schema exists and
// seeds a default admin account when the table is empty.
func NewStore(db *sql.DB) (*Store, error) {
	store := &Store{db: db}
	if err := store.initSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS users (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            username TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TEXT NOT NULL
        )`)
	if err != nil {
		return fmt.Errorf("create users table: %w", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash default admin password: %w", err)
		}
		_, err = s.db.ExecContext(ctx,
			"INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)",
			"admin", string(hash), time.Now().UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("seed default admin: %w", err)
		}
	}
	return nil
}

// Create registers a new account. Usernames are trimmed and lowercased.
func (s *Store) Create(ctx context.Context, username, password string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	password = strings.TrimSpace(password)

	if len(username) < 3 {
		return ErrUsernameTooShort
	}
	if len(password) < 6 {
		return ErrPasswordTooShort
	}

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM users WHERE username = ?", username).Scan(&exists)
	if err == nil {
		return ErrExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)",
		username, string(hash), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Verify checks the credentials against the stored hash. Any failure is
// reported as ErrInvalidCredentials.
func (s *Store) Verify(ctx context.Context, username, password string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	password = strings.TrimSpace(password)

	if username == "" || password == "" {
		return ErrInvalidCredentials
	}

	var storedHash string
	err := s.db.QueryRowContext(ctx,
		"SELECT password_hash FROM users WHERE username = ?", username,
	).Scan(&storedHash)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("select user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}
