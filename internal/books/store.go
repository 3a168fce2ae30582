// Package books persists confirmed book records in SQLite, keyed by
// normalized ISBN.
package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bookshelf/internal/models"
)

var (
	// ErrDuplicate means a book with the same ISBN is already registered.
	ErrDuplicate = errors.New("a book with this ISBN already exists")
	// ErrNotFound means no book with the given ISBN is registered.
	ErrNotFound = errors.New("no book found with this ISBN")
	// ErrEmptyTitle rejects a save with no title; validation belongs here,
	// not in the identification pipeline.
	ErrEmptyTitle = errors.New("title is required")
	// ErrEmptyISBN rejects a save without a canonical ISBN key.
	ErrEmptyISBN = errors.New("isbn is required")
)

// Store manages book persistence backed by SQLite.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle and ensures the books schema exists.
func NewStore(db *sql.DB) (*Store, error) {
	store := &Store{db: db}
	if err := store.initSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS books (
            isbn TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            author TEXT,
            year INTEGER,
            publisher TEXT
        )`)
	if err != nil {
		return fmt.Errorf("create books table: %w", err)
	}
	return nil
}

// Insert registers a new book. A duplicate ISBN is a recoverable failure
// reported as ErrDuplicate.
func (s *Store) Insert(ctx context.Context, book models.Book) error {
	if book.ISBN == "" {
		return ErrEmptyISBN
	}
	if strings.TrimSpace(book.Title) == "" {
		return ErrEmptyTitle
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO books (isbn, title, author, year, publisher) VALUES (?, ?, ?, ?, ?)",
		book.ISBN, book.Title, book.Author, book.Year, book.Publisher,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// Get fetches a single book by ISBN.
func (s *Store) Get(ctx context.Context, isbn string) (*models.Book, error) {
	var book models.Book
	err := s.db.QueryRowContext(ctx,
		"SELECT isbn, title, author, year, publisher FROM books WHERE isbn = ?",
		isbn,
	).Scan(&book.ISBN, &book.Title, &book.Author, &book.Year, &book.Publisher)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select book: %w", err)
	}
	return &book, nil
}

// Update rewrites the descriptive fields of an existing book.
func (s *Store) Update(ctx context.Context, book models.Book) error {
	if strings.TrimSpace(book.Title) == "" {
		return ErrEmptyTitle
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE books SET title = ?, author = ?, year = ?, publisher = ? WHERE isbn = ?",
		book.Title, book.Author, book.Year, book.Publisher, book.ISBN,
	)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	changed, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if changed == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a book by ISBN.
func (s *Store) Delete(ctx context.Context, isbn string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM books WHERE isbn = ?", isbn)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	changed, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if changed == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns the whole collection ordered by title.
func (s *Store) List(ctx context.Context) ([]models.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT isbn, title, author, year, publisher FROM books ORDER BY title ASC")
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var collection []models.Book
	for rows.Next() {
		var book models.Book
		if err := rows.Scan(&book.ISBN, &book.Title, &book.Author, &book.Year, &book.Publisher); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		collection = append(collection, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return collection, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "constraint failed")
}
