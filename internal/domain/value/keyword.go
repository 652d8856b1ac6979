package value

import (
	"net/url"
	"strings"
)

// KeywordSentinel prefixes the reference url of a keyword monitor.
const KeywordSentinel = "search://"

// IsKeywordURL reports whether a reference url denotes a keyword monitor.
func IsKeywordURL(ref string) bool {
	return strings.HasPrefix(ref, KeywordSentinel)
}

// StripSentinel removes one leading sentinel. "search://search://x" becomes
// "search://x".
func StripSentinel(ref string) string {
	text, _ := strings.CutPrefix(ref, KeywordSentinel)
	return text
}

// KeywordURL is the inverse of StripSentinel.
func KeywordURL(text string) string {
	return KeywordSentinel + text
}

// NormalizeKeyword trims the text and collapses inner whitespace runs.
func NormalizeKeyword(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// EncodeForRoute percent-encodes text for a query parameter value. Spaces
// become %20; url.QueryUnescape restores the original text.
func EncodeForRoute(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
