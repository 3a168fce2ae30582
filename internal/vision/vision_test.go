package vision

import (
	"context"
	"errors"
	"testing"

	"bookshelf/internal/providers"
)

// fakeProvider returns a canned response and records the config it was given.
type fakeProvider struct {
	response string
	err      error
	lastCfg  providers.Config
}

func (f *fakeProvider) ExtractText(ctx context.Context, config providers.Config) (string, error) {
	f.lastCfg = config
	return f.response, f.err
}

func TestExtractFromCover(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		wantNil    bool
		wantTitle  string
		wantAuthor string
		wantISBN   string
	}{
		{
			name:       "plain JSON",
			response:   `{"titulo":"Dune","autor":"Frank Herbert","isbn":"978-0-441-01359-3"}`,
			wantTitle:  "Dune",
			wantAuthor: "Frank Herbert",
			wantISBN:   "9780441013593",
		},
		{
			name: "fenced JSON",
			response: "```json\n" +
				`{"titulo":"Dune","autor":"Frank Herbert","isbn":""}` +
				"\n```",
			wantTitle:  "Dune",
			wantAuthor: "Frank Herbert",
			wantISBN:   "",
		},
		{
			name:       "untrimmed fields",
			response:   `{"titulo":"  Dune  ","autor":" Frank Herbert ","isbn":" 978-0-441-01359-3 "}`,
			wantTitle:  "Dune",
			wantAuthor: "Frank Herbert",
			wantISBN:   "9780441013593",
		},
		{
			name:     "not JSON at all",
			response: "I could not read the cover, sorry!",
			wantNil:  true,
		},
		{
			name:     "truncated JSON",
			response: `{"titulo":"Dun`,
			wantNil:  true,
		},
		{
			name:      "empty fields",
			response:  `{"titulo":"","autor":"","isbn":""}`,
			wantTitle: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := New(&fakeProvider{response: tt.response}, "test-model")

			record, err := client.ExtractFromCover(context.Background(), []byte("jpeg"))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.wantNil {
				if record != nil {
					t.Fatalf("expected nil record for unparseable response, got %+v", record)
				}
				return
			}

			if record == nil {
				t.Fatal("expected a record, got nil")
			}
			if record.Title != tt.wantTitle {
				t.Errorf("Title = %q, expected %q", record.Title, tt.wantTitle)
			}
			if record.Author != tt.wantAuthor {
				t.Errorf("Author = %q, expected %q", record.Author, tt.wantAuthor)
			}
			if record.ISBN != tt.wantISBN {
				t.Errorf("ISBN = %q, expected %q", record.ISBN, tt.wantISBN)
			}
		})
	}
}

func TestExtractFromCoverProviderFailure(t *testing.T) {
	client := New(&fakeProvider{err: errors.New("connection refused")}, "test-model")

	record, err := client.ExtractFromCover(context.Background(), []byte("jpeg"))
	if err == nil {
		t.Fatal("expected an error from a failing provider")
	}
	if record != nil {
		t.Errorf("expected nil record on provider failure, got %+v", record)
	}
}

func TestExtractFromCoverRequestShape(t *testing.T) {
	provider := &fakeProvider{response: `{"titulo":"","autor":"","isbn":""}`}
	client := New(provider, "test-model")

	image := []byte{0xff, 0xd8, 0xff}
	if _, err := client.ExtractFromCover(context.Background(), image); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.lastCfg.Temperature != 0 {
		t.Errorf("Temperature = %v, expected 0 for deterministic output", provider.lastCfg.Temperature)
	}
	if provider.lastCfg.Model != "test-model" {
		t.Errorf("Model = %q, expected %q", provider.lastCfg.Model, "test-model")
	}
	if string(provider.lastCfg.Image) != string(image) {
		t.Error("image bytes were not passed through to the provider")
	}
	if provider.lastCfg.Prompt == "" {
		t.Error("prompt was not set")
	}
}

func TestForProvider(t *testing.T) {
	for _, name := range []string{"openai", "ollama", "gemini"} {
		if _, err := ForProvider(name, "some-model"); err != nil {
			t.Errorf("ForProvider(%q) returned error: %v", name, err)
		}
	}

	if _, err := ForProvider("carrier-pigeon", ""); err == nil {
		t.Error("expected an error for an unsupported provider")
	}
}
