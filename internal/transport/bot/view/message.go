package view

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"price_tracker/internal/domain"
	"price_tracker/internal/domain/entity"
	"price_tracker/internal/domain/service/catalog"
	"price_tracker/internal/domain/value"
)

const (
	maxMessageLen = 4000
	maxNameLen    = 48
	maxListedHits = 20
	maxAlertLen   = 200

	// Telegram allows 100 inline buttons; each entry takes two and Refresh one.
	maxListedEntries = 49

	// Room left for the headers and footers around the entry lines.
	maxListingLen = maxMessageLen - 300
)

// Message is one rendered bot message in HTML parse mode.
type Message struct {
	Text     string
	Keyboard *telego.InlineKeyboardMarkup
}

// Text is a message without buttons. text is escaped.
func Text(text string) Message {
	return Message{Text: html.EscapeString(text)}
}

type detailer interface {
	ErrorDetail() string
}

// ErrorText explains err to the user: the domain message plus the server's
// reason when there is one.
func ErrorText(err error) string {
	text := domain.Message(err, fallbackError)

	var d detailer
	if errors.As(err, &d) && d.ErrorDetail() != "" {
		text += ": " + d.ErrorDetail()
	}

	return text
}

// Alert is err as a callback query alert, which Telegram caps at 200
// characters.
func Alert(err error) string {
	text := "❌ " + ErrorText(err)
	if utf8.RuneCountInString(text) <= maxAlertLen {
		return text
	}

	return string([]rune(text)[:maxAlertLen-1]) + "…"
}

// Failure is the reply to a failed command, offering a retry of control.
func Failure(err error, control string) Message {
	return failure(err, RetryData(control))
}

// HistoryFailure offers to load the chart of productID again.
func HistoryFailure(err error, productID int64) Message {
	return failure(err, HistoryData(productID))
}

func failure(err error, retryData string) Message {
	return Message{
		Text: "❌ " + html.EscapeString(ErrorText(err)),
		Keyboard: tu.InlineKeyboard(
			tu.InlineKeyboardRow(tu.InlineKeyboardButton("🔁 Retry").WithCallbackData(retryData)),
		),
	}
}

// Catalog renders the snapshot. keywordToken maps a keyword to the session
// token used in its buttons. Entries past the text budget or the keyboard
// limit are left out together with their buttons.
func Catalog(snap catalog.Snapshot, keywordToken func(string) string) Message {
	var l listing

	products := snap.Products()
	keywords := snap.Keywords()

	if snap.Len() == 0 {
		l.sb.WriteString("📭 Nothing is tracked yet. Paste an item link or send /keyword &lt;text&gt;.")
	}

	if len(products) > 0 {
		l.header(fmt.Sprintf("📦 <b>Items (%d)</b>\n", len(products)))

		for i, p := range products {
			l.add(
				fmt.Sprintf("%d. <a href=\"%s\">%s</a> · %s\n",
					i+1, html.EscapeString(p.URL), html.EscapeString(shorten(p.Name)), p.CurrentPrice),
				tu.InlineKeyboardRow(
					tu.InlineKeyboardButton(fmt.Sprintf("📈 %d", i+1)).WithCallbackData(HistoryData(p.ID)),
					tu.InlineKeyboardButton(fmt.Sprintf("🗑 %d", i+1)).WithCallbackData(DeleteProductData(p.ID)),
				),
			)
		}
	}

	if len(keywords) > 0 {
		sep := ""
		if len(products) > 0 {
			sep = "\n"
		}

		l.header(fmt.Sprintf("%s🔎 <b>Keywords (%d)</b>\n", sep, len(keywords)))

		for i, k := range keywords {
			label := keywordLabel(i)
			token := keywordToken(k.Keyword)

			l.add(
				fmt.Sprintf("%s. %s\n", label, html.EscapeString(shorten(k.Keyword))),
				tu.InlineKeyboardRow(
					tu.InlineKeyboardButton("📋 "+label).WithCallbackData(KeywordItemsData(token)),
					tu.InlineKeyboardButton("🗑 "+label).WithCallbackData(DeleteKeywordData(token)),
				),
			)
		}
	}

	if l.hidden > 0 {
		fmt.Fprintf(&l.sb, "\n… %d more entries not shown.", l.hidden)
	}

	if snap.Skipped > 0 {
		fmt.Fprintf(&l.sb, "\n⚠️ %d malformed entries hidden.", snap.Skipped)
	}

	rows := append(l.rows, tu.InlineKeyboardRow(
		tu.InlineKeyboardButton("🔄 Refresh").WithCallbackData(RefreshData),
	))

	return Message{
		Text:     clip(l.sb.String()),
		Keyboard: tu.InlineKeyboard(rows...),
	}
}

// listing accumulates catalog lines with one keyboard row each. Once an
// entry does not fit, it and every later one are counted as hidden.
type listing struct {
	sb     strings.Builder
	rows   [][]telego.InlineKeyboardButton
	hidden int
}

func (l *listing) header(text string) {
	if l.hidden == 0 {
		l.sb.WriteString(text)
	}
}

func (l *listing) add(line string, row []telego.InlineKeyboardButton) {
	if l.hidden > 0 || len(l.rows) == maxListedEntries || l.sb.Len()+len(line) > maxListingLen {
		l.hidden++
		return
	}

	l.sb.WriteString(line)
	l.rows = append(l.rows, row)
}

// SearchResults previews an unsaved search with a button to save it.
func SearchResults(keyword string, results []entity.SearchResult, token string) Message {
	var sb strings.Builder

	fmt.Fprintf(&sb, "🔍 <b>%s</b>: %d results\n", html.EscapeString(keyword), len(results))

	for i, r := range results {
		if i == maxListedHits {
			fmt.Fprintf(&sb, "… and %d more\n", len(results)-maxListedHits)
			break
		}

		fmt.Fprintf(&sb, "%d. <a href=\"%s\">%s</a> · %s\n",
			i+1, html.EscapeString(r.URL), html.EscapeString(shorten(r.Name)), value.FormatYen(r.Price))
	}

	return Message{
		Text: clip(sb.String()),
		Keyboard: tu.InlineKeyboard(
			tu.InlineKeyboardRow(tu.InlineKeyboardButton("⭐ Track this keyword").WithCallbackData(TrackKeywordData(token))),
		),
	}
}

// KeywordItems lists what the server stored under a keyword.
func KeywordItems(keyword string, items []entity.IngestedItem) Message {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📋 <b>%s</b>: %d stored items\n", html.EscapeString(keyword), len(items))

	for i, item := range items {
		if i == maxListedHits {
			fmt.Fprintf(&sb, "… and %d more\n", len(items)-maxListedHits)
			break
		}

		fmt.Fprintf(&sb, "%d. <a href=\"%s\">%s</a> · %s\n",
			i+1, html.EscapeString(item.URL), html.EscapeString(shorten(item.Name)), value.FormatYen(item.Price))
	}

	return Message{Text: clip(sb.String())}
}

// Tracked confirms a keyword ingestion.
func Tracked(ingestion entity.KeywordIngestion) Message {
	return Message{Text: fmt.Sprintf("✅ Keyword <b>%s</b> saved, %d items stored.",
		html.EscapeString(ingestion.Keyword), ingestion.ItemsCount)}
}

// ConfirmKeywordDeletion asks before a cascading delete.
func ConfirmKeywordDeletion(d catalog.KeywordDeletion, token string) Message {
	affected := "its stored items"
	if d.AffectedKnown {
		affected = fmt.Sprintf("%d stored items", d.AffectedItems)
	}

	return Message{
		Text: fmt.Sprintf("🗑 Delete keyword <b>%s</b> and %s?", html.EscapeString(d.Keyword), affected),
		Keyboard: tu.InlineKeyboard(tu.InlineKeyboardRow(
			tu.InlineKeyboardButton("Delete").WithCallbackData(ConfirmDeleteKeywordData(token)),
			tu.InlineKeyboardButton("Cancel").WithCallbackData(CancelDeleteKeywordData(token)),
		)),
	}
}

// StaleList tells that a mutation went through but the list is outdated.
func StaleList(err error) Message {
	return Message{
		Text: "⚠️ Done, but the list could not be refreshed: " + html.EscapeString(ErrorText(err)),
		Keyboard: tu.InlineKeyboard(
			tu.InlineKeyboardRow(tu.InlineKeyboardButton("🔄 Refresh").WithCallbackData(RefreshData)),
		),
	}
}

// keywordLabel numbers keywords A..Z, then AA, AB and so on.
func keywordLabel(i int) string {
	var label []rune

	for ; i >= 0; i = i/26 - 1 {
		label = append([]rune{rune('A' + i%26)}, label...)
	}

	return string(label)
}

func shorten(s string) string {
	if utf8.RuneCountInString(s) <= maxNameLen {
		return s
	}

	return string([]rune(s)[:maxNameLen-1]) + "…"
}

// clip keeps a message under the Telegram length limit. It cuts at a line
// boundary so that no HTML tag is split.
func clip(text string) string {
	if len(text) <= maxMessageLen {
		return text
	}

	cut := strings.LastIndex(text[:maxMessageLen], "\n")
	if cut < 0 {
		cut = maxMessageLen
	}

	return text[:cut] + "\n…"
}
