package server_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"price_tracker/internal/domain"
	"price_tracker/internal/domain/entity"
	"price_tracker/internal/domain/service/catalog"
	"price_tracker/internal/domain/value"
	"price_tracker/internal/infrastructure/trackerapi"
	"price_tracker/internal/server"
	"price_tracker/pkg/errcodes"
)

type countingSearcher struct {
	count int
}

func (s countingSearcher) Search(_ context.Context, keyword string) ([]server.ScrapedItem, error) {
	items := make([]server.ScrapedItem, 0, s.count)

	for i := range s.count {
		price := float64(1000 + i)
		itemID := fmt.Sprintf("m%011d", i+1)

		items = append(items, server.ScrapedItem{
			ItemID: itemID,
			Name:   fmt.Sprintf("%s %d", keyword, i),
			URL:    "https://jp.mercari.com/item/" + itemID,
			Price:  &price,
		})
	}

	return items, nil
}

type pendingScraper struct{}

func (pendingScraper) Scrape(_ context.Context, itemID string) (server.ScrapedItem, error) {
	return server.ScrapedItem{ItemID: itemID, Name: "Sold out soon"}, nil
}

type failingScraper struct{}

func (failingScraper) Scrape(context.Context, string) (server.ScrapedItem, error) {
	return server.ScrapedItem{}, errors.New("captcha")
}

func newSyncer(t *testing.T, scraper server.Scraper, searcher server.Searcher) (*catalog.Syncer, trackerapi.Client, server.CatalogServer) {
	t.Helper()

	catalogServer := server.NewCatalogServer(scraper, searcher)

	httpServer := httptest.NewServer(server.NewServer(catalogServer).Handler(4096))
	t.Cleanup(httpServer.Close)

	client := trackerapi.NewClient(httpServer.URL, nil)

	return catalog.NewSyncer(client), client, catalogServer
}

func TestTrackKeywordCreatesMonitor(t *testing.T) {
	rq := require.New(t)

	syncer, _, _ := newSyncer(t, server.NewFakeMarket(), countingSearcher{count: 47})

	ingestion, err := syncer.TrackKeyword(context.Background(), "DS LIGHT")
	rq.NoError(err)
	rq.Equal(entity.KeywordIngestion{Keyword: "DS LIGHT", ItemsCount: 47}, ingestion)

	keywords := syncer.Snapshot().Keywords()
	rq.Len(keywords, 1)
	rq.Equal("DS LIGHT", keywords[0].KeywordText())
	rq.Equal("search://DS LIGHT", value.KeywordURL(keywords[0].Keyword))
	rq.Empty(syncer.Snapshot().Products())

	// Tracking the same keyword again replaces its items and keeps one monitor.
	_, err = syncer.TrackKeyword(context.Background(), "DS LIGHT")
	rq.NoError(err)
	rq.Len(syncer.Snapshot().Keywords(), 1)

	items, err := syncer.KeywordItems(context.Background(), "DS LIGHT")
	rq.NoError(err)
	rq.Len(items, 47)
}

func TestTrackProduct(t *testing.T) {
	rq := require.New(t)

	ctx := context.Background()
	syncer, client, _ := newSyncer(t, server.NewFakeMarket(), server.NewFakeMarket())

	rq.NoError(syncer.Track(ctx, "https://jp.mercari.com/item/m12345678901?utm_source=share"))
	rq.NoError(syncer.Track(ctx, "https://jp.mercari.com/item/m12345678901"))

	products := syncer.Snapshot().Products()
	rq.Len(products, 1)
	rq.Equal("m12345678901", products[0].ExternalID)
	rq.Equal("https://jp.mercari.com/item/m12345678901", products[0].URL)
	rq.True(products[0].CurrentPrice.Known())

	points, err := client.History(ctx, products[0].ID)
	rq.NoError(err)
	rq.Len(points, 2)
}

func TestTrackRejectsInvalidURL(t *testing.T) {
	rq := require.New(t)

	syncer, _, _ := newSyncer(t, server.NewFakeMarket(), server.NewFakeMarket())

	// Scenario A input is cleaned but still too short for the server.
	err := syncer.Track(context.Background(), "https://jp.mercari.com/item/m12345678?ref=spam")
	rq.True(domain.HasCode(err, errcodes.TrackFailed))

	var statusErr *trackerapi.StatusError
	rq.True(errors.As(err, &statusErr))
	rq.Equal(http.StatusBadRequest, statusErr.StatusCode)
	rq.Equal(errcodes.InvalidURL.String(), statusErr.Code)
	rq.Equal("Invalid Mercari URL", statusErr.ErrorDetail())
}

func TestTrackScrapeFailure(t *testing.T) {
	rq := require.New(t)

	syncer, _, _ := newSyncer(t, failingScraper{}, server.NewFakeMarket())

	err := syncer.Track(context.Background(), "https://jp.mercari.com/item/m12345678901")
	rq.True(domain.HasCode(err, errcodes.TrackFailed))

	var statusErr *trackerapi.StatusError
	rq.True(errors.As(err, &statusErr))
	rq.Equal(http.StatusBadGateway, statusErr.StatusCode)
}

func TestPendingPrice(t *testing.T) {
	rq := require.New(t)

	ctx := context.Background()
	syncer, client, _ := newSyncer(t, pendingScraper{}, server.NewFakeMarket())

	rq.NoError(syncer.Track(ctx, "https://jp.mercari.com/item/m12345678901"))

	products := syncer.Snapshot().Products()
	rq.Len(products, 1)
	rq.False(products[0].CurrentPrice.Known())
	rq.Equal("price pending", products[0].CurrentPrice.String())

	points, err := client.History(ctx, products[0].ID)
	rq.NoError(err)
	rq.Empty(points)
}

func TestCascadingVersusSingleDelete(t *testing.T) {
	rq := require.New(t)

	ctx := context.Background()
	syncer, _, catalogServer := newSyncer(t, server.NewFakeMarket(), countingSearcher{count: 3})

	rq.NoError(catalogServer.Seed(ctx, "m10000000001", "m10000000002"))

	_, err := syncer.TrackKeyword(ctx, "camera")
	rq.NoError(err)
	_, err = syncer.TrackKeyword(ctx, "lens")
	rq.NoError(err)

	snap := syncer.Snapshot()
	rq.Len(snap.Products(), 2)
	rq.Len(snap.Keywords(), 2)

	// Single delete touches exactly one product.
	rq.NoError(syncer.DeleteProduct(ctx, snap.Products()[0].ID))
	rq.Len(syncer.Snapshot().Products(), 1)
	rq.Len(syncer.Snapshot().Keywords(), 2)

	plan, err := syncer.PlanKeywordDeletion(ctx, "camera")
	rq.NoError(err)
	rq.True(plan.AffectedKnown)
	rq.Equal(3, plan.AffectedItems)

	rq.NoError(syncer.DeleteKeyword(ctx, plan.Confirm()))

	snap = syncer.Snapshot()
	rq.Len(snap.Products(), 1)
	rq.Len(snap.Keywords(), 1)

	_, ok := snap.Keyword("camera")
	rq.False(ok)

	cameraItems, err := syncer.KeywordItems(ctx, "camera")
	rq.NoError(err)
	rq.Empty(cameraItems)

	lensItems, err := syncer.KeywordItems(ctx, "lens")
	rq.NoError(err)
	rq.Len(lensItems, 3)
}

func TestDeleteMissing(t *testing.T) {
	rq := require.New(t)

	ctx := context.Background()
	syncer, client, _ := newSyncer(t, server.NewFakeMarket(), server.NewFakeMarket())

	err := syncer.DeleteProduct(ctx, 42)
	rq.True(domain.HasCode(err, errcodes.DeleteFailed))

	err = syncer.DeleteKeyword(ctx, catalog.KeywordDeletion{Keyword: "nothing"}.Confirm())
	rq.True(domain.HasCode(err, errcodes.DeleteFailed))

	_, err = client.History(ctx, 42)

	var statusErr *trackerapi.StatusError
	rq.True(errors.As(err, &statusErr))
	rq.True(statusErr.NotFound())
}

func TestSearchPreviewDoesNotPersist(t *testing.T) {
	rq := require.New(t)

	ctx := context.Background()
	syncer, _, _ := newSyncer(t, server.NewFakeMarket(), server.NewFakeMarket())

	results, err := syncer.SearchNow(ctx, "nintendo switch")
	rq.NoError(err)
	rq.Len(results, 5)

	again, err := syncer.SearchNow(ctx, "nintendo switch")
	rq.NoError(err)
	rq.Equal(results, again)

	snap, err := syncer.LoadAll(ctx)
	rq.NoError(err)
	rq.Zero(snap.Len())
}

func TestMissingKeywordQuery(t *testing.T) {
	rq := require.New(t)

	catalogServer := server.NewCatalogServer(server.NewFakeMarket(), server.NewFakeMarket())
	handler := server.NewServer(catalogServer).Handler(4096)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/track-keyword", http.NoBody))
	rq.Equal(http.StatusBadRequest, rec.Code)
	rq.NotEmpty(rec.Header().Get("X-Trace-Id"))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/products/abc", http.NoBody))
	rq.Equal(http.StatusBadRequest, rec.Code)
	rq.Contains(rec.Body.String(), errcodes.InvalidProductID.String())
}
