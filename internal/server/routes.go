package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"price_tracker/pkg/httpx/reply"
	"price_tracker/pkg/logx"
	"price_tracker/pkg/middlewarex"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Post("/track", handler(s.postTrack))
	r.Post("/track-keyword", handler(s.postTrackKeyword))
	r.Get("/search", handler(s.getSearch))

	r.Route("/products", func(r chi.Router) {
		r.Get("/", handler(s.getProducts))
		r.Get("/search-results", handler(s.getKeywordItems))
		r.Delete("/search-results", handler(s.deleteKeyword))
		r.Delete("/{id}", handler(s.deleteProduct))
		r.Get("/{id}/history", handler(s.getHistory))
	})
}

// Handler returns the routes behind the usual middleware chain.
func (s Server) Handler(logFieldMaxLen int) http.Handler {
	masker := logx.NewSensitiveDataMasker()

	r := chi.NewRouter()
	r.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, logFieldMaxLen),
		middlewarex.ResponseLogging(masker, logFieldMaxLen),
	)

	s.RegisterRoutes(r)

	return r
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
