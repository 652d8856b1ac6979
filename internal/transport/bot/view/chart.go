package view

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
	"github.com/samber/lo"

	"price_tracker/internal/domain/entity"
	"price_tracker/internal/domain/value"
	"price_tracker/pkg/chart"
)

const recentPoints = 5

// History renders a product's price series as a sparkline with min, max and
// the latest observations. Points must be in chronological order.
func History(p entity.ProductWatch, h entity.History) Message {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📈 <b>%s</b>\n", html.EscapeString(shorten(p.Name)))

	latest, ok := h.Latest()
	if !ok {
		sb.WriteString("No price observations yet.")
		return Message{Text: sb.String(), Keyboard: historyKeyboard()}
	}

	prices := lo.Map(h.Points, func(pt entity.PricePoint, _ int) float64 { return pt.Price })

	fmt.Fprintf(&sb, "<code>%s</code>\n", chart.Sparkline(prices))
	fmt.Fprintf(&sb, "Now %s · min %s · max %s\n",
		value.FormatYen(latest.Price), value.FormatYen(lo.Min(prices)), value.FormatYen(lo.Max(prices)))
	fmt.Fprintf(&sb, "%d observations since %s\n\n", len(h.Points), h.Points[0].Timestamp.Format(time.DateOnly))

	for _, pt := range h.Points[max(0, len(h.Points)-recentPoints):] {
		fmt.Fprintf(&sb, "%s  %s\n", pt.Timestamp.Format("2006-01-02 15:04"), value.FormatYen(pt.Price))
	}

	return Message{Text: clip(sb.String()), Keyboard: historyKeyboard()}
}

func historyKeyboard() *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(tu.InlineKeyboardButton("⬅️ Back to list").WithCallbackData(RefreshData)),
	)
}
