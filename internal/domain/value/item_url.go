package value

import (
	"regexp"
	"strings"
)

//nolint:gochecknoglobals
var itemURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`https://jp\.mercari\.com/item/m\d+`),
}

// CleanItemURL extracts a canonical item url from pasted text, dropping
// tracking parameters and surrounding words. Text without a known item url is
// returned trimmed and otherwise unchanged; the server decides whether it is
// acceptable.
func CleanItemURL(raw string) string {
	raw = strings.TrimSpace(raw)

	for _, pattern := range itemURLPatterns {
		if match := pattern.FindString(raw); match != "" {
			return match
		}
	}

	return raw
}

// ContainsItemURL reports whether text carries a canonical item url.
func ContainsItemURL(text string) bool {
	for _, pattern := range itemURLPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}

	return false
}
