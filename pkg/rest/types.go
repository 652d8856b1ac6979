// Wire models of the tracker API. Shared by the client and the stub server.
package rest

import jsoniter "github.com/json-iterator/go"

// Product is one item of GET /products. Keyword monitors travel in the same
// list with URL "search://<keyword>".
type Product struct {
	ID           int64     `json:"id"`
	ItemID       string    `json:"item_id"`
	Name         string    `json:"name"`
	URL          *string   `json:"url"`
	ImageURL     string    `json:"image_url"`
	CurrentPrice *float64  `json:"current_price"`
	CreatedAt    Timestamp `json:"created_at"`
}

// PriceHistory is one item of GET /products/{id}/history.
type PriceHistory struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Price     float64   `json:"price"`
	ScrapedAt Timestamp `json:"scraped_at"`
}

// SearchResult is one item of GET /search. ID is the marketplace id.
type SearchResult struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	URL      string  `json:"url"`
	ImageURL string  `json:"image_url"`
}

// StoredItem is one item of GET /products/search-results.
type StoredItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	ImageURL  string    `json:"image_url"`
	Price     float64   `json:"price"`
	CreatedAt Timestamp `json:"created_at"`
}

// TrackResponse is returned by POST /track.
type TrackResponse struct {
	Message string        `json:"message"`
	Product TrackedDetail `json:"product"`
}

type TrackedDetail struct {
	Status   string  `json:"status"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
}

// TrackKeywordResponse is returned by POST /track-keyword.
type TrackKeywordResponse struct {
	Keyword    string `json:"keyword"`
	ItemsCount int    `json:"items_count"`
}

// Error is an error body. Either Code and Message are set, or Detail, which
// FastAPI fills with a string or a list of validation problems.
type Error struct {
	Code      ErrorCode           `json:"code"`
	Message   string              `json:"message"`
	SupportID string              `json:"supportId,omitempty"`
	Detail    jsoniter.RawMessage `json:"detail,omitempty"`
}

type ErrorCode string
