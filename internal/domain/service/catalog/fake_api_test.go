package catalog_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"

	"price_tracker/internal/domain/entity"
	"price_tracker/internal/domain/value"
)

var errBackend = errors.New("backend unavailable")

// fakeAPI is an in-memory tracker. Hooks run before a call returns and may
// block to force interleavings.
type fakeAPI struct {
	mu sync.Mutex

	items        []entity.RawItem
	keywordItems map[string][]entity.IngestedItem
	history      map[int64][]entity.PricePoint
	nextID       int64

	listErr    error
	trackErr   error
	deleteErr  error
	historyErr error
	itemsErr   error

	listHook    func(call int)
	historyHook func(productID int64)

	listCalls  int
	trackCalls int
	tracked    []string
	searched   []string
}

func newFakeAPI(items ...entity.RawItem) *fakeAPI {
	return &fakeAPI{
		items:        items,
		keywordItems: map[string][]entity.IngestedItem{},
		history:      map[int64][]entity.PricePoint{},
		nextID:       100,
	}
}

func (f *fakeAPI) ListProducts(context.Context) ([]entity.RawItem, error) {
	f.mu.Lock()
	f.listCalls++
	call := f.listCalls
	hook := f.listHook
	err := f.listErr
	items := slices.Clone(f.items)
	f.mu.Unlock()

	if hook != nil {
		hook(call)
	}

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (f *fakeAPI) Track(_ context.Context, itemURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.trackCalls++

	if f.trackErr != nil {
		return f.trackErr
	}

	f.tracked = append(f.tracked, itemURL)
	f.nextID++
	f.items = append(f.items, productItem(f.nextID, "tracked", itemURL, nil))

	return nil
}

func (f *fakeAPI) TrackKeyword(_ context.Context, keyword string) (entity.KeywordIngestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.trackErr != nil {
		return entity.KeywordIngestion{}, f.trackErr
	}

	f.nextID++
	f.items = append(f.items, keywordItem(f.nextID, keyword))
	f.keywordItems[keyword] = []entity.IngestedItem{
		{ID: f.nextID + 1000, Name: keyword + " #1", Price: 1000},
		{ID: f.nextID + 2000, Name: keyword + " #2", Price: 2000},
	}

	return entity.KeywordIngestion{Keyword: keyword, ItemsCount: 2}, nil
}

func (f *fakeAPI) Search(_ context.Context, keyword string) ([]entity.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.searched = append(f.searched, keyword)

	return []entity.SearchResult{{ID: "m1", Name: keyword, Price: 500}}, nil
}

func (f *fakeAPI) KeywordItems(_ context.Context, keyword string) ([]entity.IngestedItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.itemsErr != nil {
		return nil, f.itemsErr
	}

	return slices.Clone(f.keywordItems[keyword]), nil
}

func (f *fakeAPI) DeleteProduct(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteErr != nil {
		return f.deleteErr
	}

	f.items = lo.Reject(f.items, func(item entity.RawItem, _ int) bool {
		return item.ID == id
	})

	return nil
}

func (f *fakeAPI) DeleteKeyword(_ context.Context, keyword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteErr != nil {
		return f.deleteErr
	}

	f.items = lo.Reject(f.items, func(item entity.RawItem, _ int) bool {
		return item.URL != nil && *item.URL == value.KeywordURL(keyword)
	})
	delete(f.keywordItems, keyword)

	return nil
}

func (f *fakeAPI) History(_ context.Context, productID int64) ([]entity.PricePoint, error) {
	f.mu.Lock()
	hook := f.historyHook
	err := f.historyErr
	points := slices.Clone(f.history[productID])
	f.mu.Unlock()

	if hook != nil {
		hook(productID)
	}

	if err != nil {
		return nil, err
	}

	return points, nil
}

func (f *fakeAPI) set(fn func(f *fakeAPI)) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fn(f)
}

func productItem(id int64, name, itemURL string, price *float64) entity.RawItem {
	externalID := itemURL[strings.LastIndex(itemURL, "/")+1:]

	return entity.RawItem{
		ID:           id,
		ExternalID:   externalID,
		Name:         name,
		URL:          lo.ToPtr(itemURL),
		CurrentPrice: price,
	}
}

func keywordItem(id int64, keyword string) entity.RawItem {
	return entity.RawItem{
		ID:   id,
		Name: keyword,
		URL:  lo.ToPtr(value.KeywordURL(keyword)),
	}
}
