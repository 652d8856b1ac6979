package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"price_tracker/internal/domain"
	"price_tracker/internal/domain/entity"
	"price_tracker/internal/domain/value"
	"price_tracker/pkg/errcodes"
	"price_tracker/pkg/logx"
)

// Classify turns a raw list item into a ProductWatch or a KeywordMonitor by
// the sentinel prefix of its url. An undecodable item or one without url is
// malformed.
func Classify(raw entity.RawItem) (entity.Entity, error) {
	if raw.DecodeErr != nil {
		return nil, domain.WrapError(raw.DecodeErr, errcodes.MalformedEntity, fmt.Sprintf("item %d is undecodable", raw.ID))
	}

	if raw.URL == nil || *raw.URL == "" {
		return nil, domain.NewError(errcodes.MalformedEntity, fmt.Sprintf("item %d has no url", raw.ID))
	}

	ref := *raw.URL

	if value.IsKeywordURL(ref) {
		return entity.KeywordMonitor{
			ID:        raw.ID,
			Keyword:   value.StripSentinel(ref),
			Name:      raw.Name,
			CreatedAt: raw.CreatedAt,
		}, nil
	}

	return entity.ProductWatch{
		ID:           raw.ID,
		ExternalID:   raw.ExternalID,
		Name:         raw.Name,
		URL:          ref,
		ImageURL:     raw.ImageURL,
		CurrentPrice: value.PriceFromPtr(raw.CurrentPrice),
		CreatedAt:    raw.CreatedAt,
	}, nil
}

// KeywordText returns the keyword of a KeywordMonitor.
func KeywordText(e entity.Entity) (string, error) {
	switch v := e.(type) {
	case entity.KeywordMonitor:
		return v.KeywordText(), nil
	default:
		return "", domain.NewError(
			errcodes.MalformedEntity,
			fmt.Sprintf("%s %d is not a keyword monitor", e.Kind(), e.EntityID()),
		)
	}
}

// classifyAll keeps the server order and skips malformed items.
func classifyAll(ctx context.Context, raws []entity.RawItem) ([]entity.Entity, int) {
	entities := make([]entity.Entity, 0, len(raws))
	skipped := 0

	for _, raw := range raws {
		e, err := Classify(raw)
		if err != nil {
			logger(ctx).Warn("skipping catalog item", slog.Int64(logx.FieldEntityID, raw.ID), logx.Error(err))
			skipped++

			continue
		}

		entities = append(entities, e)
	}

	return entities, skipped
}
