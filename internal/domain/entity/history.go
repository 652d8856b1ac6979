package entity

import "time"

// PricePoint is one observation of an item's price.
type PricePoint struct {
	Timestamp time.Time
	Price     float64
}

// History is the price series of one product, ascending by Timestamp.
type History struct {
	ProductID int64
	Points    []PricePoint
}

// Latest returns the newest point.
func (h History) Latest() (PricePoint, bool) {
	if len(h.Points) == 0 {
		return PricePoint{}, false
	}

	return h.Points[len(h.Points)-1], true
}
