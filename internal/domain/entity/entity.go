package entity

import (
	"time"

	"price_tracker/internal/domain/value"
)

// Kind discriminates the variants of Entity.
type Kind string

const (
	KindProduct Kind = "product"
	KindKeyword Kind = "keyword"
)

// RawItem is one decoded item of the catalog list before classification.
// URL is nil when the server omitted it. DecodeErr is set when the item
// could not be decoded; only ID is then filled, if it could be read.
type RawItem struct {
	ID           int64
	ExternalID   string
	Name         string
	URL          *string
	ImageURL     string
	CurrentPrice *float64
	CreatedAt    time.Time
	DecodeErr    error
}

// Entity is a classified catalog item: either a ProductWatch or a
// KeywordMonitor. The set of variants is closed.
type Entity interface {
	EntityID() int64
	Kind() Kind
	DisplayName() string

	isEntity()
}

// ProductWatch is a tracked marketplace item.
type ProductWatch struct {
	ID           int64
	ExternalID   string
	Name         string
	URL          string
	ImageURL     string
	CurrentPrice value.Price
	CreatedAt    time.Time
}

func (p ProductWatch) EntityID() int64     { return p.ID }
func (p ProductWatch) Kind() Kind          { return KindProduct }
func (p ProductWatch) DisplayName() string { return p.Name }
func (ProductWatch) isEntity()             {}

// KeywordMonitor is a persisted search condition. Keyword is its identity for
// lookup and deletion; ID is kept for display only.
type KeywordMonitor struct {
	ID        int64
	Keyword   string
	Name      string
	CreatedAt time.Time
}

func (k KeywordMonitor) EntityID() int64 { return k.ID }
func (k KeywordMonitor) Kind() Kind      { return KindKeyword }

func (k KeywordMonitor) DisplayName() string {
	if k.Name != "" {
		return k.Name
	}
	return k.Keyword
}

func (KeywordMonitor) isEntity() {}

// KeywordText is the decoded keyword.
func (k KeywordMonitor) KeywordText() string {
	return k.Keyword
}
