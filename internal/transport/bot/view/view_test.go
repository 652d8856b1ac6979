package view_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"price_tracker/internal/domain"
	"price_tracker/internal/domain/entity"
	"price_tracker/internal/domain/service/catalog"
	"price_tracker/internal/domain/value"
	"price_tracker/internal/transport/bot/view"
	"price_tracker/pkg/errcodes"
)

type detailedError struct{}

func (detailedError) Error() string       { return "status 502" }
func (detailedError) ErrorDetail() string { return "scraper timed out" }

func TestErrorText(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "Domain message",
			err:  domain.NewError(errcodes.TrackFailed, "could not track the item"),
			want: "could not track the item",
		},
		{
			name: "Domain message with server detail",
			err:  domain.WrapError(detailedError{}, errcodes.TrackFailed, "could not track the item"),
			want: "could not track the item: scraper timed out",
		},
		{
			name: "Foreign error",
			err:  errors.New("boom"),
			want: "Something went wrong",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.want, view.ErrorText(tc.err))
		})
	}
}

func TestCatalogPendingPrice(t *testing.T) {
	rq := require.New(t)

	snap := catalog.Snapshot{
		Entities: []entity.Entity{
			entity.ProductWatch{ID: 7, Name: "Camera", URL: "https://jp.mercari.com/item/m12345678901"},
			entity.ProductWatch{ID: 8, Name: "Lens <50mm>", URL: "https://jp.mercari.com/item/m12345678902", CurrentPrice: value.NewPrice(12000)},
			entity.KeywordMonitor{ID: 9, Keyword: "nintendo switch"},
		},
		Revision: 1,
		Skipped:  2,
	}

	msg := view.Catalog(snap, func(string) string { return "tok" })

	rq.Contains(msg.Text, "Camera</a> · price pending")
	rq.Contains(msg.Text, "Lens &lt;50mm&gt;</a> · ¥12,000")
	rq.NotContains(msg.Text, "¥0")
	rq.Contains(msg.Text, "nintendo switch")
	rq.Contains(msg.Text, "2 malformed entries hidden")

	rq.NotNil(msg.Keyboard)
	rq.Len(msg.Keyboard.InlineKeyboard, 4)
	rq.Equal("hist:7", msg.Keyboard.InlineKeyboard[0][0].CallbackData)
	rq.Equal("del:8", msg.Keyboard.InlineKeyboard[1][1].CallbackData)
	rq.Equal("kwdel:tok", msg.Keyboard.InlineKeyboard[2][1].CallbackData)
	rq.Equal(view.RefreshData, msg.Keyboard.InlineKeyboard[3][0].CallbackData)
}

func TestCatalogEmpty(t *testing.T) {
	rq := require.New(t)

	msg := view.Catalog(catalog.Snapshot{Revision: 1}, func(string) string { return "" })

	rq.Contains(msg.Text, "Nothing is tracked yet")
	rq.Len(msg.Keyboard.InlineKeyboard, 1)
}

func products(n int, name string) []entity.Entity {
	entities := make([]entity.Entity, 0, n)

	for i := 1; i <= n; i++ {
		entities = append(entities, entity.ProductWatch{
			ID:   int64(i),
			Name: name,
			URL:  fmt.Sprintf("https://jp.mercari.com/item/m%011d", i),
		})
	}

	return entities
}

func TestCatalogKeepsButtonsInLineWithShownEntries(t *testing.T) {
	testCases := []struct {
		name      string
		entities  []entity.Entity
		wantShown int
	}{
		{
			name:      "Keyboard limit",
			entities:  products(60, "Lens"),
			wantShown: 49,
		},
		{
			name:     "Text budget",
			entities: products(40, strings.Repeat("カメラ", 20)),
		},
		{
			name:      "Everything fits",
			entities:  products(10, "Lens"),
			wantShown: 10,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			msg := view.Catalog(catalog.Snapshot{Entities: tc.entities, Revision: 1}, func(string) string { return "tok" })

			rows := msg.Keyboard.InlineKeyboard
			shown := len(rows) - 1

			rq.LessOrEqual(len(msg.Text), 4000)
			rq.LessOrEqual(len(rows), 50)
			rq.Equal(shown, strings.Count(msg.Text, "<a href"))
			rq.Equal(fmt.Sprintf("hist:%d", shown), rows[shown-1][0].CallbackData)
			rq.Equal(view.RefreshData, rows[shown][0].CallbackData)

			if tc.wantShown > 0 {
				rq.Equal(tc.wantShown, shown)
			}

			hidden := len(tc.entities) - shown
			if hidden == 0 {
				rq.NotContains(msg.Text, "more entries not shown")
				return
			}

			rq.Contains(msg.Text, fmt.Sprintf("%d more entries not shown", hidden))
		})
	}
}

func TestCatalogKeywordLabelsStayDistinct(t *testing.T) {
	rq := require.New(t)

	entities := make([]entity.Entity, 0, 28)
	for i := 0; i < 28; i++ {
		entities = append(entities, entity.KeywordMonitor{ID: int64(i + 1), Keyword: fmt.Sprintf("kw%d", i)})
	}

	msg := view.Catalog(catalog.Snapshot{Entities: entities, Revision: 1}, func(string) string { return "tok" })

	rows := msg.Keyboard.InlineKeyboard
	rq.Equal("📋 A", rows[0][0].Text)
	rq.Equal("📋 Z", rows[25][0].Text)
	rq.Equal("📋 AA", rows[26][0].Text)
	rq.Equal("🗑 AB", rows[27][1].Text)
	rq.Contains(msg.Text, "AB. kw27")
}

func TestHistory(t *testing.T) {
	rq := require.New(t)

	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	product := entity.ProductWatch{ID: 1, Name: "Camera"}

	msg := view.History(product, entity.History{
		ProductID: 1,
		Points: []entity.PricePoint{
			{Timestamp: base, Price: 1000},
			{Timestamp: base.Add(time.Hour), Price: 1500},
			{Timestamp: base.Add(2 * time.Hour), Price: 1200},
		},
	})

	rq.Contains(msg.Text, "Now ¥1,200 · min ¥1,000 · max ¥1,500")
	rq.Contains(msg.Text, "3 observations since 2025-01-01")
	rq.Less(strings.Index(msg.Text, "2025-01-01 09:00"), strings.Index(msg.Text, "2025-01-01 11:00"))

	empty := view.History(product, entity.History{ProductID: 1})
	rq.Contains(empty.Text, "No price observations yet")
}

func TestConfirmKeywordDeletion(t *testing.T) {
	rq := require.New(t)

	known := view.ConfirmKeywordDeletion(catalog.KeywordDeletion{Keyword: "switch", AffectedItems: 47, AffectedKnown: true}, "tok")
	rq.Contains(known.Text, "47 stored items")
	rq.Equal("kwdel_ok:tok", known.Keyboard.InlineKeyboard[0][0].CallbackData)
	rq.Equal("kwdel_no:tok", known.Keyboard.InlineKeyboard[0][1].CallbackData)

	unknown := view.ConfirmKeywordDeletion(catalog.KeywordDeletion{Keyword: "switch"}, "tok")
	rq.Contains(unknown.Text, "its stored items")
}

func TestParseID(t *testing.T) {
	rq := require.New(t)

	id, ok := view.ParseID("hist:42", view.PrefixHistory)
	rq.True(ok)
	rq.Equal(int64(42), id)

	_, ok = view.ParseID("hist:abc", view.PrefixHistory)
	rq.False(ok)

	_, ok = view.ParseID("del:42", view.PrefixHistory)
	rq.False(ok)

	_, ok = view.ParseID("hist:0", view.PrefixHistory)
	rq.False(ok)
}
