package entity

import "time"

// SearchResult is one item of an ephemeral marketplace search. ID is the
// marketplace id, not a catalog id.
type SearchResult struct {
	ID       string
	Name     string
	Price    float64
	URL      string
	ImageURL string
}

// IngestedItem is an item stored under a keyword monitor.
type IngestedItem struct {
	ID        int64
	Name      string
	URL       string
	ImageURL  string
	Price     float64
	CreatedAt time.Time
}

// KeywordIngestion is the server's summary of a keyword tracking request.
type KeywordIngestion struct {
	Keyword    string
	ItemsCount int
}
