package models

import "time"

// CandidateRecord holds unconfirmed, possibly partial book metadata produced
// by a single data source (vision extraction or catalog lookup). Absence is
// always an empty string / zero, never a sentinel.
type CandidateRecord struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	Publisher   string `json:"publisher,omitempty"`
	Year        int    `json:"year,omitempty"`
	CoverURL    string `json:"cover_url,omitempty"`
	Description string `json:"description,omitempty"`
}

// CombinedRecord is the identification pipeline's merged output. It is always
// fully populated (with possibly empty fields); a pipeline call either yields
// one of these or a typed error, never a partial record.
type CombinedRecord struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	Publisher   string `json:"publisher"`
	Year        int    `json:"year"`
	CoverURL    string `json:"cover_url"`
	Description string `json:"description"`
}

// Book is a persisted library record, keyed by ISBN in canonical normalized
// form. Year 0 means unknown.
type Book struct {
	ISBN      string `json:"isbn"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Year      int    `json:"year"`
	Publisher string `json:"publisher"`
}

// LoginSession is an authenticated API session held in memory.
type LoginSession struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
