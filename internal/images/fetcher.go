// Package images downloads cover photographs referenced by URL for the
// identify-by-URL path.
package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxImageBytes caps a downloaded cover at 10MB, matching the upload limit.
const maxImageBytes = 10 * 1024 * 1024

// Fetcher retrieves cover images over HTTP.
type Fetcher struct {
	HTTPClient *http.Client
}

// NewFetcher creates a new image fetcher with a bounded timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchCover downloads the image at url and returns its bytes. Tiny responses
// are rejected as placeholders rather than real covers.
func (f *Fetcher) FetchCover(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create image request: %w", err)
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image URL returned status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("unexpected content type %q", contentType)
	}

	imageData, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	if len(imageData) < 1000 {
		return nil, fmt.Errorf("image too small (likely placeholder)")
	}

	return imageData, nil
}
