package view

import (
	"strconv"
	"strings"
)

// Callback data prefixes.
const (
	PrefixHistory       = "hist:"
	PrefixDeleteProduct = "del:"
	PrefixKeywordItems  = "kwitems:"
	PrefixDeleteKeyword = "kwdel:"
	PrefixConfirmDelete = "kwdel_ok:"
	PrefixCancelDelete  = "kwdel_no:"
	PrefixTrackKeyword  = "kwtrack:"
	PrefixRetry         = "retry:"
	RefreshData         = "refresh"
)

func HistoryData(productID int64) string {
	return PrefixHistory + strconv.FormatInt(productID, 10)
}

func DeleteProductData(productID int64) string {
	return PrefixDeleteProduct + strconv.FormatInt(productID, 10)
}

func KeywordItemsData(token string) string {
	return PrefixKeywordItems + token
}

func DeleteKeywordData(token string) string {
	return PrefixDeleteKeyword + token
}

func ConfirmDeleteKeywordData(token string) string {
	return PrefixConfirmDelete + token
}

func CancelDeleteKeywordData(token string) string {
	return PrefixCancelDelete + token
}

func TrackKeywordData(token string) string {
	return PrefixTrackKeyword + token
}

func RetryData(control string) string {
	return PrefixRetry + control
}

// ParseID reads the numeric suffix of data after prefix.
func ParseID(data, prefix string) (int64, bool) {
	raw, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}
