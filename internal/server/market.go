package server

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
)

// ScrapedItem is what a scraper reports for one marketplace item. A nil
// Price means the price could not be determined yet.
type ScrapedItem struct {
	ItemID   string
	Name     string
	URL      string
	ImageURL string
	Price    *float64
}

type Scraper interface {
	Scrape(ctx context.Context, itemID string) (ScrapedItem, error)
}

type Searcher interface {
	Search(ctx context.Context, keyword string) ([]ScrapedItem, error)
}

// FakeMarket produces deterministic items so that the stub behaves the same on
// every run.
type FakeMarket struct {
	SearchResults int
}

func NewFakeMarket() FakeMarket {
	return FakeMarket{SearchResults: 5}
}

func (m FakeMarket) Scrape(_ context.Context, itemID string) (ScrapedItem, error) {
	price := fakePrice(itemID)

	return ScrapedItem{
		ItemID:   itemID,
		Name:     "Item " + itemID,
		URL:      itemURL(itemID),
		ImageURL: fmt.Sprintf("https://static.mercdn.net/item/detail/orig/photos/%s_1.jpg", itemID),
		Price:    &price,
	}, nil
}

func (m FakeMarket) Search(ctx context.Context, keyword string) ([]ScrapedItem, error) {
	items := make([]ScrapedItem, 0, m.SearchResults)

	seed := hash(strings.ToLower(keyword))

	for i := range m.SearchResults {
		itemID := fmt.Sprintf("m%011d", (uint64(seed)+uint64(i)*7919)%100_000_000_000)

		item, err := m.Scrape(ctx, itemID)
		if err != nil {
			return nil, err
		}

		item.Name = fmt.Sprintf("%s #%d", keyword, i+1)
		items = append(items, item)
	}

	return items, nil
}

func itemURL(itemID string) string {
	return "https://jp.mercari.com/item/" + itemID
}

func fakePrice(itemID string) float64 {
	const minPrice, spread, step = 300, 50_000, 10

	return float64(minPrice + (hash(itemID)%spread)/step*step)
}

func hash(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s)) //nolint:errcheck

	return h.Sum32()
}
