package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := &Client{
		BaseURL:    server.URL,
		httpClient: &http.Client{Timeout: 2 * time.Second},
	}
	return client, server
}

func TestLookupQueryPrecedence(t *testing.T) {
	tests := []struct {
		name      string
		isbn      string
		title     string
		author    string
		expectedQ string
	}{
		{
			name:      "isbn wins even when title and author present",
			isbn:      "9780441013593",
			title:     "Dune",
			author:    "Frank Herbert",
			expectedQ: "isbn:9780441013593",
		},
		{
			name:      "title and author",
			title:     "Dune",
			author:    "Frank Herbert",
			expectedQ: `intitle:"Dune" inauthor:"Frank Herbert"`,
		},
		{
			name:      "title alone",
			title:     "Dune",
			expectedQ: `intitle:"Dune"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQ, gotMax string
			client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				gotQ = r.URL.Query().Get("q")
				gotMax = r.URL.Query().Get("maxResults")
				w.Write([]byte(`{"items":[{"volumeInfo":{"title":"Dune"}}]}`))
			})
			defer server.Close()

			if _, err := client.Lookup(context.Background(), tt.isbn, tt.title, tt.author); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotQ != tt.expectedQ {
				t.Errorf("q = %q, expected %q", gotQ, tt.expectedQ)
			}
			if gotMax != "5" {
				t.Errorf("maxResults = %q, expected 5", gotMax)
			}
		})
	}
}

func TestLookupNothingUsable(t *testing.T) {
	called := false
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	defer server.Close()

	record, err := client.Lookup(context.Background(), "", "", "Frank Herbert")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record != nil {
		t.Errorf("expected nil record, got %+v", record)
	}
	if called {
		t.Error("expected no network call with nothing usable to query")
	}
}

func TestLookupFirstItemFields(t *testing.T) {
	body := `{
		"items": [
			{
				"volumeInfo": {
					"title": "Dune",
					"authors": ["Frank Herbert", "Brian Herbert"],
					"publisher": " Ace ",
					"publishedDate": "1990-09-01",
					"description": " A landmark of science fiction. ",
					"industryIdentifiers": [
						{"type": "OTHER", "identifier": "OCLC:1234"},
						{"type": "ISBN_10", "identifier": "0441013597"},
						{"type": "ISBN_13", "identifier": "9780441013593"}
					],
					"imageLinks": {
						"thumbnail": "http://books.google.com/thumb.jpg",
						"smallThumbnail": "http://books.google.com/small.jpg"
					}
				}
			},
			{
				"volumeInfo": {"title": "Some Other Edition"}
			}
		]
	}`
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})
	defer server.Close()

	record, err := client.Lookup(context.Background(), "9780441013593", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record == nil {
		t.Fatal("expected a record")
	}

	if record.Title != "Dune" {
		t.Errorf("Title = %q, expected Dune", record.Title)
	}
	if record.Author != "Frank Herbert, Brian Herbert" {
		t.Errorf("Author = %q, expected joined author list", record.Author)
	}
	// First ISBN-typed identifier in provider order wins, even though a 13 follows.
	if record.ISBN != "0441013597" {
		t.Errorf("ISBN = %q, expected 0441013597", record.ISBN)
	}
	if record.Publisher != "Ace" {
		t.Errorf("Publisher = %q, expected Ace (trimmed)", record.Publisher)
	}
	if record.Year != 1990 {
		t.Errorf("Year = %d, expected 1990", record.Year)
	}
	if record.Description != "A landmark of science fiction." {
		t.Errorf("Description = %q, expected trimmed description", record.Description)
	}
	if record.CoverURL != "https://books.google.com/thumb.jpg" {
		t.Errorf("CoverURL = %q, expected https thumbnail", record.CoverURL)
	}
}

func TestLookupISBNFallsBackToQuery(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"volumeInfo":{"title":"Dune"}}]}`))
	})
	defer server.Close()

	record, err := client.Lookup(context.Background(), "9780441013593", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.ISBN != "9780441013593" {
		t.Errorf("ISBN = %q, expected the query ISBN fallback", record.ISBN)
	}
}

func TestLookupNoItems(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	defer server.Close()

	record, err := client.Lookup(context.Background(), "9780441013593", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record != nil {
		t.Errorf("expected nil record for empty result set, got %+v", record)
	}
}

func TestLookupSoftFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>not json</html>"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := newTestClient(tt.handler)
			defer server.Close()

			record, err := client.Lookup(context.Background(), "9780441013593", "", "")
			if err == nil {
				t.Fatal("expected an error the caller can absorb")
			}
			if record != nil {
				t.Errorf("expected nil record on failure, got %+v", record)
			}
		})
	}
}

func TestCoverURL(t *testing.T) {
	tests := []struct {
		name     string
		info     volumeInfo
		expected string
	}{
		{
			name:     "no variants",
			info:     volumeInfo{},
			expected: "",
		},
		{
			name: "largest variant preferred",
			info: func() volumeInfo {
				var v volumeInfo
				v.ImageLinks.ExtraLarge = "https://img/xl.jpg"
				v.ImageLinks.Thumbnail = "https://img/thumb.jpg"
				return v
			}(),
			expected: "https://img/xl.jpg",
		},
		{
			name: "insecure scheme rewritten",
			info: func() volumeInfo {
				var v volumeInfo
				v.ImageLinks.Large = "http://img/large.jpg"
				return v
			}(),
			expected: "https://img/large.jpg",
		},
		{
			name: "secure scheme untouched",
			info: func() volumeInfo {
				var v volumeInfo
				v.ImageLinks.SmallThumbnail = "https://img/small.jpg"
				return v
			}(),
			expected: "https://img/small.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := coverURL(tt.info)
			if result != tt.expected {
				t.Errorf("coverURL() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func TestPublicationYear(t *testing.T) {
	tests := []struct {
		date     string
		expected int
	}{
		{"1990-09-01", 1990},
		{"2021", 2021},
		{"", 0},
		{"n.d.", 0},
		{"19", 0},
	}

	for _, tt := range tests {
		if got := publicationYear(tt.date); got != tt.expected {
			t.Errorf("publicationYear(%q) = %d, expected %d", tt.date, got, tt.expected)
		}
	}
}
