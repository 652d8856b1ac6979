package trackerapi

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"price_tracker/internal/domain/entity"
	"price_tracker/pkg/rest"
)

func rawItemFromRest(p rest.Product, _ int) entity.RawItem {
	return entity.RawItem{
		ID:           p.ID,
		ExternalID:   p.ItemID,
		Name:         p.Name,
		URL:          p.URL,
		ImageURL:     p.ImageURL,
		CurrentPrice: p.CurrentPrice,
		CreatedAt:    p.CreatedAt.Time,
	}
}

func rawItemFromJSON(element jsoniter.RawMessage, i int) entity.RawItem {
	var p rest.Product

	if err := json.Unmarshal(element, &p); err != nil {
		var id struct {
			ID int64 `json:"id"`
		}
		_ = json.Unmarshal(element, &id) //nolint:errcheck

		return entity.RawItem{
			ID:        id.ID,
			DecodeErr: fmt.Errorf("json.Unmarshal(product #%d): %w", i, err),
		}
	}

	return rawItemFromRest(p, i)
}

func pricePointFromRest(h rest.PriceHistory, _ int) entity.PricePoint {
	return entity.PricePoint{
		Timestamp: h.ScrapedAt.Time,
		Price:     h.Price,
	}
}

func searchResultFromRest(r rest.SearchResult, _ int) entity.SearchResult {
	return entity.SearchResult{
		ID:       r.ID,
		Name:     r.Name,
		Price:    r.Price,
		URL:      r.URL,
		ImageURL: r.ImageURL,
	}
}

func ingestedItemFromRest(i rest.StoredItem, _ int) entity.IngestedItem {
	return entity.IngestedItem{
		ID:        i.ID,
		Name:      i.Name,
		URL:       i.URL,
		ImageURL:  i.ImageURL,
		Price:     i.Price,
		CreatedAt: i.CreatedAt.Time,
	}
}

func pricePointsFromRest(history []rest.PriceHistory) []entity.PricePoint {
	return lo.Map(history, pricePointFromRest)
}

func searchResultsFromRest(results []rest.SearchResult) []entity.SearchResult {
	return lo.Map(results, searchResultFromRest)
}

func ingestedItemsFromRest(items []rest.StoredItem) []entity.IngestedItem {
	return lo.Map(items, ingestedItemFromRest)
}
