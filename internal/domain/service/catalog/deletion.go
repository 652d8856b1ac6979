package catalog

import (
	"context"
	"log/slog"

	"price_tracker/internal/domain"
	"price_tracker/pkg/errcodes"
	"price_tracker/pkg/logx"
)

// KeywordDeletion describes the cascading removal of a keyword monitor. It has
// to be confirmed before DeleteKeyword accepts it.
type KeywordDeletion struct {
	Keyword string
	// AffectedItems is the number of stored items removed along with the
	// monitor. Valid only when AffectedKnown.
	AffectedItems int
	AffectedKnown bool

	confirmed bool
}

// Confirm returns a copy of d that DeleteKeyword will execute.
func (d KeywordDeletion) Confirm() KeywordDeletion {
	d.confirmed = true
	return d
}

func (d KeywordDeletion) Confirmed() bool {
	return d.confirmed
}

// PlanKeywordDeletion prepares the confirmation data for removing keyword. A
// failure to count the affected items leaves the count unknown.
func (s *Syncer) PlanKeywordDeletion(ctx context.Context, keyword string) (KeywordDeletion, error) {
	if keyword == "" {
		return KeywordDeletion{}, domain.NewError(errcodes.InvalidKeyword, "keyword is empty")
	}

	plan := KeywordDeletion{Keyword: keyword}

	items, err := s.KeywordItems(ctx, keyword)
	if err != nil {
		logger(ctx).Warn("counting keyword items", slog.String(logx.FieldKeyword, keyword), logx.Error(err))
		return plan, nil
	}

	plan.AffectedItems = len(items)
	plan.AffectedKnown = true

	return plan, nil
}

// DeleteKeyword removes the monitor and every item ingested under it.
func (s *Syncer) DeleteKeyword(ctx context.Context, d KeywordDeletion) error {
	if !d.Confirmed() {
		return domain.NewError(errcodes.DeletionNotConfirmed, "keyword deletion was not confirmed")
	}

	if err := s.api.DeleteKeyword(ctx, d.Keyword); err != nil {
		return domain.WrapError(err, errcodes.DeleteFailed, "could not delete the keyword")
	}

	logger(ctx).Info("keyword deleted", slog.String(logx.FieldKeyword, d.Keyword))

	return s.refresh(ctx)
}
