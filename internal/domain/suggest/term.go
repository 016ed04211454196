// Package suggest holds the query-suggestion domain model.
package suggest

import "time"

// Term is a previously committed search term with its embedding vector.
type Term struct {
	Text       string
	Vector     []float32
	RecordedAt time.Time
}

// Suggestion is a ranked related-search candidate.
type Suggestion struct {
	Term  string
	Score float64
}
