package server

import (
	"github.com/samber/lo"

	"price_tracker/pkg/rest"
)

func newRESTProduct(p productRecord, _ int) rest.Product {
	return rest.Product{
		ID:           p.ID,
		ItemID:       p.ItemID,
		Name:         p.Name,
		URL:          lo.ToPtr(p.URL),
		ImageURL:     p.ImageURL,
		CurrentPrice: p.CurrentPrice,
		CreatedAt:    rest.NewTimestamp(p.CreatedAt),
	}
}

func newRESTPriceHistory(p priceRecord, _ int) rest.PriceHistory {
	return rest.PriceHistory{
		ID:        p.ID,
		ProductID: p.ProductID,
		Price:     p.Price,
		ScrapedAt: rest.NewTimestamp(p.ScrapedAt),
	}
}

func newRESTSearchResult(item ScrapedItem, _ int) rest.SearchResult {
	return rest.SearchResult{
		ID:       item.ItemID,
		Name:     item.Name,
		Price:    lo.FromPtr(item.Price),
		URL:      item.URL,
		ImageURL: item.ImageURL,
	}
}

func newRESTStoredItem(item storedItemRecord, _ int) rest.StoredItem {
	return rest.StoredItem{
		ID:        item.ID,
		Name:      item.Name,
		URL:       item.URL,
		ImageURL:  item.ImageURL,
		Price:     item.Price,
		CreatedAt: rest.NewTimestamp(item.CreatedAt),
	}
}

func newStoredItem(item ScrapedItem, _ int) storedItemRecord {
	return storedItemRecord{
		Name:     item.Name,
		URL:      item.URL,
		ImageURL: item.ImageURL,
		Price:    lo.FromPtr(item.Price),
	}
}
