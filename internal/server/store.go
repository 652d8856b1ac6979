package server

import (
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"
)

type productRecord struct {
	ID           int64
	ItemID       string
	Name         string
	URL          string
	ImageURL     string
	CurrentPrice *float64
	CreatedAt    time.Time
}

type priceRecord struct {
	ID        int64
	ProductID int64
	Price     float64
	ScrapedAt time.Time
}

type storedItemRecord struct {
	ID        int64
	Keyword   string
	Name      string
	URL       string
	ImageURL  string
	Price     float64
	CreatedAt time.Time
}

// store keeps the tracker state in memory. Products are listed in insertion
// order.
type store struct {
	mu       sync.Mutex
	lastID   int64
	products []productRecord
	prices   []priceRecord
	items    []storedItemRecord
}

func newStore() *store {
	return &store{}
}

func (s *store) nextID() int64 {
	s.lastID++
	return s.lastID
}

func (s *store) Products() []productRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.products)
}

// UpsertProduct inserts p or, when a product with the same url exists,
// replaces its name, image and price. It returns the stored record and
// whether it was created.
func (s *store) UpsertProduct(p productRecord, now time.Time) (productRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, idx, found := lo.FindIndexOf(s.products, func(existing productRecord) bool {
		return existing.URL == p.URL
	})
	if found {
		existing := &s.products[idx]
		existing.Name = p.Name
		existing.ImageURL = p.ImageURL
		existing.CurrentPrice = p.CurrentPrice

		return *existing, false
	}

	p.ID = s.nextID()
	p.CreatedAt = now
	s.products = append(s.products, p)

	return p, true
}

func (s *store) AddPrice(productID int64, price float64, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prices = append(s.prices, priceRecord{
		ID:        s.nextID(),
		ProductID: productID,
		Price:     price,
		ScrapedAt: at,
	})
}

func (s *store) Product(id int64) (productRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return lo.Find(s.products, func(p productRecord) bool {
		return p.ID == id
	})
}

// DeleteProduct removes the product and its price history.
func (s *store) DeleteProduct(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.products)
	s.products = lo.Reject(s.products, func(p productRecord, _ int) bool {
		return p.ID == id
	})

	if len(s.products) == before {
		return false
	}

	s.prices = lo.Reject(s.prices, func(p priceRecord, _ int) bool {
		return p.ProductID == id
	})

	return true
}

// History returns the price points of a product, oldest first.
func (s *store) History(productID int64) []priceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := lo.Filter(s.prices, func(p priceRecord, _ int) bool {
		return p.ProductID == productID
	})

	slices.SortStableFunc(history, func(a, b priceRecord) int {
		return a.ScrapedAt.Compare(b.ScrapedAt)
	})

	return history
}

// ReplaceKeywordItems attributes items to keyword, dropping what was stored
// under it before.
func (s *store) ReplaceKeywordItems(keyword string, items []storedItemRecord, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = lo.Reject(s.items, func(item storedItemRecord, _ int) bool {
		return item.Keyword == keyword
	})

	for _, item := range items {
		item.ID = s.nextID()
		item.Keyword = keyword
		item.CreatedAt = now
		s.items = append(s.items, item)
	}

	return len(items)
}

func (s *store) KeywordItems(keyword string) []storedItemRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return lo.Filter(s.items, func(item storedItemRecord, _ int) bool {
		return item.Keyword == keyword
	})
}

// DeleteKeyword removes the monitor with monitorURL and every item stored
// under keyword. It reports whether anything was removed.
func (s *store) DeleteKeyword(keyword, monitorURL string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.products) + len(s.items)

	s.products = lo.Reject(s.products, func(p productRecord, _ int) bool {
		return p.URL == monitorURL
	})
	s.items = lo.Reject(s.items, func(item storedItemRecord, _ int) bool {
		return item.Keyword == keyword
	})

	return len(s.products)+len(s.items) < before
}
