package value

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//nolint:gochecknoglobals
var printer = message.NewPrinter(language.English)

// Price is an optional amount in yen. The zero value is a pending price,
// which is never shown as zero.
type Price struct {
	amount float64
	known  bool
}

func NewPrice(amount float64) Price {
	return Price{amount: amount, known: true}
}

// PriceFromPtr maps a nullable wire value.
func PriceFromPtr(amount *float64) Price {
	if amount == nil {
		return Price{}
	}

	return NewPrice(*amount)
}

func (p Price) Amount() (float64, bool) {
	return p.amount, p.known
}

func (p Price) Known() bool {
	return p.known
}

func (p Price) String() string {
	if !p.known {
		return "price pending"
	}

	return FormatYen(p.amount)
}

// FormatYen renders an amount as "¥12,345".
func FormatYen(amount float64) string {
	return printer.Sprintf("¥%d", int64(math.Round(amount)))
}
