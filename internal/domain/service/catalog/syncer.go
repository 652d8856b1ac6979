package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"price_tracker/internal/domain"
	"price_tracker/internal/domain/entity"
	"price_tracker/internal/domain/value"
	"price_tracker/pkg/errcodes"
	"price_tracker/pkg/logx"
)

// TrackerAPI is the remote tracker service.
type TrackerAPI interface {
	ListProducts(ctx context.Context) ([]entity.RawItem, error)
	Track(ctx context.Context, itemURL string) error
	TrackKeyword(ctx context.Context, keyword string) (entity.KeywordIngestion, error)
	Search(ctx context.Context, keyword string) ([]entity.SearchResult, error)
	KeywordItems(ctx context.Context, keyword string) ([]entity.IngestedItem, error)
	DeleteProduct(ctx context.Context, id int64) error
	DeleteKeyword(ctx context.Context, keyword string) error
	HistoryAPI
}

var errNotLoaded = errors.New("catalog not loaded yet")

// Syncer keeps the local catalog snapshot. Every mutation is followed by a
// full refetch; the snapshot is never patched locally.
type Syncer struct {
	api TrackerAPI
	now func() time.Time

	mu       sync.Mutex
	issued   uint64
	snapshot Snapshot
}

func NewSyncer(api TrackerAPI) *Syncer {
	return &Syncer{
		api: api,
		now: time.Now,
	}
}

// Snapshot returns the last applied snapshot.
func (s *Syncer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot
}

// Ready fails until the first snapshot has been applied.
func (s *Syncer) Ready(context.Context) error {
	if !s.Snapshot().Loaded() {
		return errNotLoaded
	}

	return nil
}

// LoadAll fetches the whole catalog and replaces the snapshot. On failure the
// previous snapshot stays in place. A response to a request issued before the
// one that produced the current snapshot is dropped and the current snapshot
// is returned instead.
func (s *Syncer) LoadAll(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	raws, err := s.api.ListProducts(ctx)
	if err != nil {
		return s.Snapshot(), domain.WrapError(err, errcodes.FetchFailed, "could not load the list")
	}

	entities, skipped := classifyAll(ctx, raws)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.snapshot.Revision {
		logger(ctx).Info(
			"dropping outdated list response",
			slog.Uint64(logx.FieldRevision, seq),
			slog.Uint64("applied-revision", s.snapshot.Revision),
		)

		return s.snapshot, nil
	}

	s.snapshot = Snapshot{
		Entities:  entities,
		Revision:  seq,
		Skipped:   skipped,
		FetchedAt: s.now(),
	}

	return s.snapshot, nil
}

// Track asks the server to track the item behind rawURL and refreshes the
// list. Pasted text is reduced to the canonical item url first.
func (s *Syncer) Track(ctx context.Context, rawURL string) error {
	cleaned := value.CleanItemURL(rawURL)
	if cleaned == "" {
		return domain.NewError(errcodes.TrackFailed, "paste an item url first")
	}

	if err := s.api.Track(ctx, cleaned); err != nil {
		return domain.WrapError(err, errcodes.TrackFailed, "could not track the item")
	}

	logger(ctx).Info("item tracked", slog.String(logx.FieldURL, cleaned))

	return s.refresh(ctx)
}

// TrackKeyword persists a keyword monitor. The call returns once the server
// has ingested the current search results.
func (s *Syncer) TrackKeyword(ctx context.Context, text string) (entity.KeywordIngestion, error) {
	keyword := value.NormalizeKeyword(text)
	if keyword == "" {
		return entity.KeywordIngestion{}, domain.NewError(errcodes.TrackFailed, "enter a keyword first")
	}

	ingestion, err := s.api.TrackKeyword(ctx, keyword)
	if err != nil {
		return entity.KeywordIngestion{}, domain.WrapError(err, errcodes.TrackFailed, "could not track the keyword")
	}

	logger(ctx).Info(
		"keyword tracked",
		slog.String(logx.FieldKeyword, keyword),
		slog.Int("items-count", ingestion.ItemsCount),
	)

	return ingestion, s.refresh(ctx)
}

// DeleteProduct removes one product watch.
func (s *Syncer) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		return domain.WrapError(err, errcodes.DeleteFailed, "could not delete the item")
	}

	logger(ctx).Info("product deleted", slog.Int64(logx.FieldProductID, id))

	return s.refresh(ctx)
}

// SearchNow previews the marketplace results for text without storing them.
func (s *Syncer) SearchNow(ctx context.Context, text string) ([]entity.SearchResult, error) {
	keyword := value.NormalizeKeyword(text)
	if keyword == "" {
		return nil, domain.NewError(errcodes.InvalidKeyword, "enter a keyword first")
	}

	results, err := s.api.Search(ctx, keyword)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.FetchFailed, "search failed")
	}

	return results, nil
}

// KeywordItems lists the items the server stored under a keyword monitor.
func (s *Syncer) KeywordItems(ctx context.Context, keyword string) ([]entity.IngestedItem, error) {
	if keyword == "" {
		return nil, domain.NewError(errcodes.InvalidKeyword, "keyword is empty")
	}

	items, err := s.api.KeywordItems(ctx, keyword)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.FetchFailed, "could not load the keyword items")
	}

	return items, nil
}

// refresh runs after a successful mutation. Its error keeps the FetchFailed
// code so that views can tell a stale list from a failed mutation.
func (s *Syncer) refresh(ctx context.Context) error {
	if _, err := s.LoadAll(ctx); err != nil {
		return fmt.Errorf("syncer.LoadAll: %w", err)
	}

	return nil
}
