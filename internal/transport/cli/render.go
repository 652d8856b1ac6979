package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"price_tracker/internal/domain/entity"
	"price_tracker/internal/domain/service/catalog"
	"price_tracker/internal/domain/value"
	"price_tracker/pkg/chart"
)

//nolint:gochecknoglobals
var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func printCatalog(w io.Writer, snap catalog.Snapshot) {
	products := snap.Products()
	keywords := snap.Keywords()

	if snap.Len() == 0 {
		fmt.Fprintln(w, mutedStyle.Render("Nothing is tracked yet."))
	}

	if len(products) > 0 {
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Items (%d)", len(products))))

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tPRICE\tNAME\tURL")

		for _, p := range products {
			price := p.CurrentPrice.String()
			if !p.CurrentPrice.Known() {
				price = mutedStyle.Render(price)
			}

			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, price, p.Name, p.URL)
		}

		tw.Flush() //nolint:errcheck
	}

	if len(keywords) > 0 {
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Keywords (%d)", len(keywords))))

		for _, k := range keywords {
			fmt.Fprintf(w, "  %s\n", k.Keyword)
		}
	}

	if snap.Skipped > 0 {
		fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf("%d malformed entries hidden", snap.Skipped)))
	}
}

func printSearch(w io.Writer, keyword string, results []entity.SearchResult) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s: %d results", keyword, len(results))))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", value.FormatYen(r.Price), r.Name, r.URL)
	}

	tw.Flush() //nolint:errcheck
}

func printItems(w io.Writer, keyword string, items []entity.IngestedItem) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s: %d stored items", keyword, len(items))))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", value.FormatYen(item.Price), item.Name, item.URL)
	}

	tw.Flush() //nolint:errcheck
}

// printHistory lists every observation in chronological order under a
// sparkline of the series.
func printHistory(w io.Writer, h entity.History) {
	if len(h.Points) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No price observations yet."))
		return
	}

	prices := lo.Map(h.Points, func(pt entity.PricePoint, _ int) float64 { return pt.Price })

	fmt.Fprintln(w, chart.Sparkline(prices))
	fmt.Fprintf(w, "min %s  max %s\n", value.FormatYen(lo.Min(prices)), value.FormatYen(lo.Max(prices)))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, pt := range h.Points {
		fmt.Fprintf(tw, "%s\t%s\n", pt.Timestamp.Local().Format(time.DateTime), value.FormatYen(pt.Price))
	}

	tw.Flush() //nolint:errcheck
}
