// Package catalog queries the Google Books volumes API for bibliographic
// records matching an ISBN or a title/author pair.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bookshelf/internal/models"
)

const defaultBaseURL = "https://www.googleapis.com/books/v1/volumes"

// Client is a Google Books API client.
type Client struct {
	BaseURL    string
	httpClient *http.Client
}

// NewClient creates a new catalog client with a bounded request timeout.
func NewClient() *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// volumeInfo mirrors the nested volume metadata of a Google Books item.
type volumeInfo struct {
	Title               string   `json:"title"`
	Authors             []string `json:"authors"`
	Publisher           string   `json:"publisher"`
	PublishedDate       string   `json:"publishedDate"`
	Description         string   `json:"description"`
	IndustryIdentifiers []struct {
		Type       string `json:"type"`
		Identifier string `json:"identifier"`
	} `json:"industryIdentifiers"`
	ImageLinks struct {
		ExtraLarge     string `json:"extraLarge"`
		Large          string `json:"large"`
		Medium         string `json:"medium"`
		Thumbnail      string `json:"thumbnail"`
		SmallThumbnail string `json:"smallThumbnail"`
	} `json:"imageLinks"`
}

// Lookup queries the catalog with strict precedence: ISBN alone when present,
// else title and author, else title alone. Empty strings mean the field is
// absent; with nothing usable it returns (nil, nil) without a network call.
// The first result item is taken unconditionally, relying on the provider's
// own ordering.
func (c *Client) Lookup(ctx context.Context, isbn, title, author string) (*models.CandidateRecord, error) {
	var q string
	switch {
	case isbn != "":
		q = "isbn:" + isbn
	case title != "" && author != "":
		q = fmt.Sprintf("intitle:%q inauthor:%q", title, author)
	case title != "":
		q = fmt.Sprintf("intitle:%q", title)
	default:
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("maxResults", "5")

	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var response struct {
		Items []struct {
			VolumeInfo volumeInfo `json:"volumeInfo"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	if len(response.Items) == 0 {
		return nil, nil
	}

	info := response.Items[0].VolumeInfo
	return &models.CandidateRecord{
		Title:       strings.TrimSpace(info.Title),
		Author:      strings.Join(info.Authors, ", "),
		ISBN:        extractISBN(info, isbn),
		Publisher:   strings.TrimSpace(info.Publisher),
		Year:        publicationYear(info.PublishedDate),
		CoverURL:    coverURL(info),
		Description: strings.TrimSpace(info.Description),
	}, nil
}

// extractISBN keeps the first identifier tagged as a 10- or 13-digit ISBN, in
// the order the provider lists them, falling back to the ISBN used to query.
func extractISBN(info volumeInfo, queryISBN string) string {
	for _, ident := range info.IndustryIdentifiers {
		if ident.Type == "ISBN_13" || ident.Type == "ISBN_10" {
			return strings.TrimSpace(ident.Identifier)
		}
	}
	return strings.TrimSpace(queryISBN)
}

// coverURL picks the largest available image variant and upgrades an insecure
// scheme to https with the same host and path.
func coverURL(info volumeInfo) string {
	links := info.ImageLinks
	for _, u := range []string{links.ExtraLarge, links.Large, links.Medium, links.Thumbnail, links.SmallThumbnail} {
		if u == "" {
			continue
		}
		if strings.HasPrefix(u, "http://") {
			u = "https://" + strings.TrimPrefix(u, "http://")
		}
		return u
	}
	return ""
}

// publicationYear reads the year from the first 4 characters of a published
// date string; anything unparseable yields 0 (unknown).
func publicationYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
