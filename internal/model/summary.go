// Package model holds the summary record and the request/response
// shapes exchanged over HTTP.
package model

import "time"

// PlaceholderSummary is stored as the summary of every newly created record.
const PlaceholderSummary = "test summary"

// Summary is a stored summary record.
type Summary struct {
	ID        int64     `json:"id" db:"id"`
	URL       string    `json:"url" db:"url"`
	Summary   string    `json:"summary" db:"summary"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Ref returns the short {id, url} view of the record.
func (s *Summary) Ref() *SummaryRef {
	return &SummaryRef{ID: s.ID, URL: s.URL}
}

// SummaryRef is returned by create and delete.
type SummaryRef struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}
