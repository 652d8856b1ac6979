package catalog

import (
	"context"
	"slices"
	"sync"

	"price_tracker/internal/domain"
	"price_tracker/internal/domain/entity"
	"price_tracker/pkg/errcodes"
)

type HistoryAPI interface {
	History(ctx context.Context, productID int64) ([]entity.PricePoint, error)
}

// Selection identifies one request to show a product's history.
type Selection struct {
	ProductID int64
	token     uint64
}

// HistoryLoader fetches price series for the product a view has selected.
// Only the most recent selection may be applied.
type HistoryLoader struct {
	api HistoryAPI

	mu     sync.Mutex
	latest uint64
}

func NewHistoryLoader(api HistoryAPI) *HistoryLoader {
	return &HistoryLoader{api: api}
}

// Select supersedes every earlier selection.
func (l *HistoryLoader) Select(productID int64) Selection {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.latest++

	return Selection{ProductID: productID, token: l.latest}
}

// Reset invalidates all outstanding selections.
func (l *HistoryLoader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.latest++
}

// Load fetches the series for sel and hands it to apply in chronological
// order. apply is not called if a newer selection was made meanwhile; Load
// then fails with StaleResponse.
func (l *HistoryLoader) Load(ctx context.Context, sel Selection, apply func(entity.History) error) error {
	points, err := l.api.History(ctx, sel.ProductID)

	if !l.current(sel) {
		return domain.NewError(errcodes.StaleResponse, "a newer history request superseded this one")
	}

	if err != nil {
		return domain.WrapError(err, errcodes.FetchFailed, "could not load the price history")
	}

	points = slices.Clone(points)
	slices.SortStableFunc(points, func(a, b entity.PricePoint) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	l.mu.Lock()
	defer l.mu.Unlock()

	if sel.token != l.latest {
		return domain.NewError(errcodes.StaleResponse, "a newer history request superseded this one")
	}

	return apply(entity.History{ProductID: sel.ProductID, Points: points})
}

func (l *HistoryLoader) current(sel Selection) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return sel.token == l.latest
}
