package session

import (
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"price_tracker/internal/domain/service/catalog"
)

// Store keeps one Session per chat. Sessions idle for longer than the TTL
// are evicted and released.
type Store struct {
	api catalog.HistoryAPI
	ttl time.Duration

	mu    sync.Mutex
	cache *cache.Cache
}

func NewStore(ttl time.Duration, api catalog.HistoryAPI) *Store {
	c := cache.New(ttl, ttl/2)
	c.OnEvicted(func(_ string, v any) {
		if s, ok := v.(*Session); ok {
			s.Release()
		}
	})

	return &Store{
		api:   api,
		ttl:   ttl,
		cache: c,
	}
}

// Get returns the live session of chatID, creating it when needed, and
// extends its lifetime.
func (st *Store) Get(chatID int64) *Session {
	key := strconv.FormatInt(chatID, 10)

	st.mu.Lock()
	defer st.mu.Unlock()

	if v, ok := st.cache.Get(key); ok {
		s := v.(*Session) //nolint:forcetypeassert
		if s.Alive() {
			st.cache.Set(key, s, st.ttl)
			return s
		}
	}

	// Release whatever expired before the janitor got to it.
	st.cache.DeleteExpired()

	s := New(chatID, catalog.NewHistoryLoader(st.api))
	st.cache.Set(key, s, st.ttl)

	return s
}

// Drop releases the session of chatID.
func (st *Store) Drop(chatID int64) {
	st.cache.Delete(strconv.FormatInt(chatID, 10))
}

func (st *Store) Len() int {
	return st.cache.ItemCount()
}
