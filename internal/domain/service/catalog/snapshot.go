package catalog

import (
	"time"

	"github.com/samber/lo"

	"price_tracker/internal/domain/entity"
)

// Snapshot is an immutable view of the catalog as of one list response.
type Snapshot struct {
	// Entities in server order.
	Entities []entity.Entity
	// Revision is the issue number of the request that produced the
	// snapshot. Zero means nothing was loaded yet.
	Revision  uint64
	Skipped   int
	FetchedAt time.Time
}

func (s Snapshot) Loaded() bool {
	return s.Revision > 0
}

func (s Snapshot) Len() int {
	return len(s.Entities)
}

func (s Snapshot) Products() []entity.ProductWatch {
	return lo.FilterMap(s.Entities, func(e entity.Entity, _ int) (entity.ProductWatch, bool) {
		p, ok := e.(entity.ProductWatch)
		return p, ok
	})
}

func (s Snapshot) Keywords() []entity.KeywordMonitor {
	return lo.FilterMap(s.Entities, func(e entity.Entity, _ int) (entity.KeywordMonitor, bool) {
		k, ok := e.(entity.KeywordMonitor)
		return k, ok
	})
}

func (s Snapshot) Product(id int64) (entity.ProductWatch, bool) {
	return lo.Find(s.Products(), func(p entity.ProductWatch) bool {
		return p.ID == id
	})
}

func (s Snapshot) Keyword(text string) (entity.KeywordMonitor, bool) {
	return lo.Find(s.Keywords(), func(k entity.KeywordMonitor) bool {
		return k.Keyword == text
	})
}
