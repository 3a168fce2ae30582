// Package identify orchestrates book identification from a cover photograph:
// vision extraction, catalog corroboration, and field-precedence merging.
package identify

import (
	"context"
	"errors"
	"log/slog"

	"bookshelf/internal/models"
)

// The pipeline returns typed outcomes so callers know which stage failed
// instead of collapsing every failure into one null.
var (
	// ErrVisionFailed means the cover could not be read at all; no catalog
	// lookup was attempted.
	ErrVisionFailed = errors.New("cover could not be interpreted")
	// ErrNotIdentified means both sources came back empty for every
	// identifying field.
	ErrNotIdentified = errors.New("book not identified: no reliable data found")
)

// VisionClient proposes candidate fields from a cover photograph. A nil
// record with nil error means the model's output could not be parsed.
type VisionClient interface {
	ExtractFromCover(ctx context.Context, image []byte) (*models.CandidateRecord, error)
}

// CatalogClient corroborates and completes candidate fields. Empty string
// arguments mean the field is absent.
type CatalogClient interface {
	Lookup(ctx context.Context, isbn, title, author string) (*models.CandidateRecord, error)
}

// Pipeline is a strictly linear two-stage sequence with no retries: vision
// extraction, then a conditional catalog lookup, then the merge.
type Pipeline struct {
	vision  VisionClient
	catalog CatalogClient
}

// New returns a Pipeline over the two injected clients.
func New(vision VisionClient, catalog CatalogClient) *Pipeline {
	return &Pipeline{vision: vision, catalog: catalog}
}

// Identify runs the pipeline over raw image bytes. It returns a fully merged
// record, or ErrVisionFailed when the cover could not be read, or
// ErrNotIdentified when the merge produced no usable field. A catalog failure
// is absorbed: the pipeline proceeds on vision data alone.
func (p *Pipeline) Identify(ctx context.Context, image []byte) (*models.CombinedRecord, error) {
	seed, err := p.vision.ExtractFromCover(ctx, image)
	if err != nil {
		slog.Warn("vision extraction failed", "err", err)
		return nil, ErrVisionFailed
	}
	if seed == nil {
		return nil, ErrVisionFailed
	}

	// The raw ISBN string seeds the lookup; normalization happens at the
	// persistence surface, not here.
	found, err := p.catalog.Lookup(ctx, seed.ISBN, seed.Title, seed.Author)
	if err != nil {
		slog.Warn("catalog lookup failed, using cover data only", "err", err)
		found = nil
	}

	combined := merge(seed, found)
	if combined.Title == "" && combined.Author == "" && combined.ISBN == "" {
		return nil, ErrNotIdentified
	}
	return combined, nil
}

// merge reconciles the two candidates: for title, author and isbn the catalog
// wins wherever it returned a non-empty value; publisher, year, cover URL and
// description only ever come from the catalog.
func merge(vision, catalog *models.CandidateRecord) *models.CombinedRecord {
	combined := &models.CombinedRecord{
		Title:  vision.Title,
		Author: vision.Author,
		ISBN:   vision.ISBN,
	}
	if catalog == nil {
		return combined
	}

	if catalog.Title != "" {
		combined.Title = catalog.Title
	}
	if catalog.Author != "" {
		combined.Author = catalog.Author
	}
	if catalog.ISBN != "" {
		combined.ISBN = catalog.ISBN
	}
	combined.Publisher = catalog.Publisher
	combined.Year = catalog.Year
	combined.CoverURL = catalog.CoverURL
	combined.Description = catalog.Description
	return combined
}

// Confidence counts how many of the three identifying fields are populated.
// Callers use it only to pick a display message; it never gates saving.
func Confidence(record *models.CombinedRecord) int {
	score := 0
	for _, field := range []string{record.Title, record.Author, record.ISBN} {
		if field != "" {
			score++
		}
	}
	return score
}
