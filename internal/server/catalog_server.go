package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"price_tracker/internal/domain"
	"price_tracker/internal/domain/value"
	"price_tracker/pkg/contextx"
	"price_tracker/pkg/errcodes"
	"price_tracker/pkg/httpx/reply"
	"price_tracker/pkg/httpx/req"
	"price_tracker/pkg/logx"
	"price_tracker/pkg/rest"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

//nolint:gochecknoglobals
var itemIDPattern = regexp.MustCompile(`m\d{11}`)

type trackQuery struct {
	URL string `validate:"required"`
}

type keywordQuery struct {
	Keyword string `validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// CatalogServer implements the tracker routes on top of an in-memory store.
type CatalogServer struct {
	store    *store
	scraper  Scraper
	searcher Searcher
	now      func() time.Time
}

func NewCatalogServer(scraper Scraper, searcher Searcher) CatalogServer {
	return CatalogServer{
		store:    newStore(),
		scraper:  scraper,
		searcher: searcher,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s CatalogServer) getProducts(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, lo.Map(s.store.Products(), newRESTProduct))

	return nil
}

func (s CatalogServer) postTrack(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	query := trackQuery{URL: r.URL.Query().Get("url")}
	if err := req.Validate(r, &query); err != nil {
		return fmt.Errorf("req.Validate: %w", err)
	}

	itemID := itemIDPattern.FindString(query.URL)
	if itemID == "" {
		return domain.NewError(errcodes.InvalidURL, "Invalid Mercari URL")
	}

	product, created, err := s.track(ctx, itemID)
	if err != nil {
		return err
	}

	status := lo.Ternary(created, "created", "updated")

	logger(ctx).Info("product tracked", slog.Int64(logx.FieldProductID, product.ID), slog.String("status", status))

	reply.JSON(ctx, w, http.StatusOK, rest.TrackResponse{
		Message: "Tracking started",
		Product: rest.TrackedDetail{
			Status:   status,
			Name:     product.Name,
			Price:    lo.FromPtr(product.CurrentPrice),
			ImageURL: product.ImageURL,
		},
	})

	return nil
}

func (s CatalogServer) postTrackKeyword(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	keyword, err := readKeyword(r)
	if err != nil {
		return err
	}

	found, err := s.searcher.Search(ctx, keyword)
	if err != nil {
		return domain.WrapError(err, errcodes.ScrapeFailed, "Search failed")
	}

	now := s.now()

	count := s.store.ReplaceKeywordItems(keyword, lo.Map(found, newStoredItem), now)

	s.store.UpsertProduct(productRecord{
		Name: keyword,
		URL:  value.KeywordURL(keyword),
	}, now)

	logger(ctx).Info("keyword tracked", slog.String(logx.FieldKeyword, keyword), slog.Int("items-count", count))

	reply.JSON(ctx, w, http.StatusOK, rest.TrackKeywordResponse{
		Keyword:    keyword,
		ItemsCount: count,
	})

	return nil
}

func (s CatalogServer) getSearch(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	keyword, err := readKeyword(r)
	if err != nil {
		return err
	}

	found, err := s.searcher.Search(ctx, keyword)
	if err != nil {
		return domain.WrapError(err, errcodes.ScrapeFailed, "Search failed")
	}

	reply.JSON(ctx, w, http.StatusOK, lo.Map(found, newRESTSearchResult))

	return nil
}

func (s CatalogServer) getKeywordItems(w http.ResponseWriter, r *http.Request) error {
	keyword, err := readKeyword(r)
	if err != nil {
		return err
	}

	reply.JSON(r.Context(), w, http.StatusOK, lo.Map(s.store.KeywordItems(keyword), newRESTStoredItem))

	return nil
}

func (s CatalogServer) deleteKeyword(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	keyword, err := readKeyword(r)
	if err != nil {
		return err
	}

	if !s.store.DeleteKeyword(keyword, value.KeywordURL(keyword)) {
		return domain.NewError(errcodes.NotFound, "Keyword not found")
	}

	logger(ctx).Info("keyword deleted", slog.String(logx.FieldKeyword, keyword))

	reply.JSON(ctx, w, http.StatusOK, messageResponse{Message: "Keyword deleted"})

	return nil
}

func (s CatalogServer) deleteProduct(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := productID(r)
	if err != nil {
		return err
	}

	if !s.store.DeleteProduct(id) {
		return domain.NewError(errcodes.NotFound, "Product not found")
	}

	logger(ctx).Info("product deleted", slog.Int64(logx.FieldProductID, id))

	reply.JSON(ctx, w, http.StatusOK, messageResponse{Message: "Product deleted"})

	return nil
}

func (s CatalogServer) getHistory(w http.ResponseWriter, r *http.Request) error {
	id, err := productID(r)
	if err != nil {
		return err
	}

	if _, ok := s.store.Product(id); !ok {
		return domain.NewError(errcodes.NotFound, "Product not found")
	}

	reply.JSON(r.Context(), w, http.StatusOK, lo.Map(s.store.History(id), newRESTPriceHistory))

	return nil
}

// Seed tracks itemIDs as if they were posted to /track.
func (s CatalogServer) Seed(ctx context.Context, itemIDs ...string) error {
	for _, itemID := range itemIDs {
		if _, _, err := s.track(ctx, itemID); err != nil {
			return fmt.Errorf("track %s: %w", itemID, err)
		}
	}

	return nil
}

// track scrapes the item, upserts it and records the observed price.
func (s CatalogServer) track(ctx context.Context, itemID string) (productRecord, bool, error) {
	scraped, err := s.scraper.Scrape(ctx, itemID)
	if err != nil {
		return productRecord{}, false, domain.WrapError(err, errcodes.ScrapeFailed, "Failed to scrape the item")
	}

	now := s.now()

	product, created := s.store.UpsertProduct(productRecord{
		ItemID:       itemID,
		Name:         scraped.Name,
		URL:          itemURL(itemID),
		ImageURL:     scraped.ImageURL,
		CurrentPrice: scraped.Price,
	}, now)

	if scraped.Price != nil {
		s.store.AddPrice(product.ID, *scraped.Price, now)
	}

	return product, created, nil
}

func readKeyword(r *http.Request) (string, error) {
	query := keywordQuery{Keyword: strings.TrimSpace(r.URL.Query().Get("keyword"))}
	if err := req.Validate(r, &query); err != nil {
		return "", fmt.Errorf("req.Validate: %w", err)
	}

	return query.Keyword, nil
}

func productID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewError(errcodes.InvalidProductID, "Invalid product id")
	}

	return id, nil
}
