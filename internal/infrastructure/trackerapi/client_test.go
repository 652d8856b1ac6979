package trackerapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"price_tracker/internal/domain"
	"price_tracker/internal/domain/service/catalog"
	"price_tracker/internal/infrastructure/trackerapi"
	"price_tracker/pkg/errcodes"
)

type recordedRequest struct {
	method   string
	path     string
	rawQuery string
}

func newServer(t *testing.T, routes map[string]string, status map[string]int) (*httptest.Server, *[]recordedRequest) {
	t.Helper()

	var requests []recordedRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, recordedRequest{method: r.Method, path: r.URL.Path, rawQuery: r.URL.RawQuery})

		key := r.Method + " " + r.URL.Path

		w.Header().Set("Content-Type", "application/json")

		if code, ok := status[key]; ok {
			w.WriteHeader(code)
		}

		body, ok := routes[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail":"Not Found"}`))

			return
		}

		w.Write([]byte(body))
	}))

	t.Cleanup(server.Close)

	return server, &requests
}

const productsBody = `[
	{"id":1,"item_id":"m12345678901","name":"Switch","url":"https://jp.mercari.com/item/m12345678901",
	 "image_url":"https://static.mercdn.net/1.jpg","created_at":"2025-01-02T10:00:00.123456","current_price":29800},
	{"id":2,"item_id":"","name":"DS LIGHT","url":"search://DS LIGHT","image_url":"","created_at":"2025-01-03T10:00:00","current_price":null},
	{"id":3,"item_id":"m1","name":"Lens","url":"https://jp.mercari.com/item/m1","image_url":"","created_at":"2025-01-04T10:00:00"},
	{"id":4,"item_id":"","name":"broken","url":null,"image_url":"","created_at":null}
]`

func TestListProducts(t *testing.T) {
	rq := require.New(t)

	server, _ := newServer(t, map[string]string{"GET /products": productsBody}, nil)

	client := trackerapi.NewClient(server.URL+"/", nil)

	items, err := client.ListProducts(context.Background())
	rq.NoError(err)
	rq.Len(items, 4)

	rq.Equal("m12345678901", items[0].ExternalID)
	rq.NotNil(items[0].CurrentPrice)
	rq.InDelta(29800.0, *items[0].CurrentPrice, 0.001)
	rq.Equal(time.Date(2025, 1, 2, 10, 0, 0, 123456000, time.UTC), items[0].CreatedAt)
	rq.Nil(items[1].CurrentPrice)
	rq.Nil(items[2].CurrentPrice)
	rq.Nil(items[3].URL)

	syncer := catalog.NewSyncer(client)

	snap, err := syncer.LoadAll(context.Background())
	rq.NoError(err)
	rq.Len(snap.Products(), 2)
	rq.Len(snap.Keywords(), 1)
	rq.Equal(1, snap.Skipped)

	lens, ok := snap.Product(3)
	rq.True(ok)
	rq.Equal("price pending", lens.CurrentPrice.String())
}

func TestListProductsSkipsUndecodableItem(t *testing.T) {
	testCases := []struct {
		name string
		bad  string
	}{
		{
			name: "Numeric url",
			bad:  `{"id":3,"item_id":"","name":"odd","url":42,"image_url":"","created_at":null}`,
		},
		{
			name: "Garbage timestamp",
			bad:  `{"id":3,"item_id":"","name":"odd","url":"search://x","image_url":"","created_at":"yesterday"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			body := `[{"id":1,"item_id":"m12345678901","name":"Switch","url":"https://jp.mercari.com/item/m12345678901",` +
				`"image_url":"","created_at":"2025-01-02T10:00:00","current_price":29800},` + tc.bad + `]`

			server, _ := newServer(t, map[string]string{"GET /products": body}, nil)
			client := trackerapi.NewClient(server.URL, nil)

			items, err := client.ListProducts(context.Background())
			rq.NoError(err)
			rq.Len(items, 2)
			rq.NoError(items[0].DecodeErr)
			rq.Error(items[1].DecodeErr)
			rq.Equal(int64(3), items[1].ID)

			snap, err := catalog.NewSyncer(client).LoadAll(context.Background())
			rq.NoError(err)
			rq.Equal(1, snap.Len())
			rq.Equal(1, snap.Skipped)

			_, ok := snap.Product(1)
			rq.True(ok)
		})
	}
}

func TestTrackCleansURL(t *testing.T) {
	rq := require.New(t)

	server, requests := newServer(t, map[string]string{
		"POST /track":   `{"message":"Tracking started","product":{"status":"created"}}`,
		"GET /products": `[]`,
	}, nil)

	syncer := catalog.NewSyncer(trackerapi.NewClient(server.URL, nil))

	rq.NoError(syncer.Track(context.Background(), "https://jp.mercari.com/item/m12345678?ref=spam"))

	rq.Len(*requests, 2)
	rq.Equal(recordedRequest{
		method:   http.MethodPost,
		path:     "/track",
		rawQuery: "url=https%3A%2F%2Fjp.mercari.com%2Fitem%2Fm12345678",
	}, (*requests)[0])
	rq.Equal("/products", (*requests)[1].path)
}

func TestKeywordRoutesEncodeSpaces(t *testing.T) {
	rq := require.New(t)

	server, requests := newServer(t, map[string]string{
		"POST /track-keyword":             `{"keyword":"DS LIGHT","items_count":47}`,
		"GET /search":                     `[{"id":"m1","name":"DS","price":1200,"url":"https://jp.mercari.com/item/m1","image_url":""}]`,
		"GET /products/search-results":    `[{"id":7,"name":"DS","url":"https://jp.mercari.com/item/m1","image_url":"","price":1200,"created_at":"2025-01-01T00:00:00"}]`,
		"DELETE /products/search-results": `{"message":"deleted"}`,
	}, nil)

	client := trackerapi.NewClient(server.URL, nil)
	ctx := context.Background()

	ingestion, err := client.TrackKeyword(ctx, "DS LIGHT")
	rq.NoError(err)
	rq.Equal("DS LIGHT", ingestion.Keyword)
	rq.Equal(47, ingestion.ItemsCount)

	results, err := client.Search(ctx, "DS LIGHT")
	rq.NoError(err)
	rq.Len(results, 1)
	rq.Equal("m1", results[0].ID)

	items, err := client.KeywordItems(ctx, "DS LIGHT")
	rq.NoError(err)
	rq.Len(items, 1)
	rq.Equal(int64(7), items[0].ID)

	rq.NoError(client.DeleteKeyword(ctx, "DS LIGHT"))

	for _, r := range *requests {
		rq.Equal("keyword=DS%20LIGHT", r.rawQuery, r.method+" "+r.path)
	}
}

func TestHistoryAndDelete(t *testing.T) {
	rq := require.New(t)

	server, requests := newServer(t, map[string]string{
		"GET /products/5/history": `[{"id":1,"product_id":5,"price":1000,"scraped_at":"2025-01-02T00:00:00"},
			{"id":2,"product_id":5,"price":900,"scraped_at":"2025-01-01T00:00:00"}]`,
		"DELETE /products/5": `{"message":"Product deleted"}`,
	}, nil)

	client := trackerapi.NewClient(server.URL, nil)

	points, err := client.History(context.Background(), 5)
	rq.NoError(err)
	rq.Len(points, 2)
	rq.InDelta(1000.0, points[0].Price, 0.001)

	rq.NoError(client.DeleteProduct(context.Background(), 5))
	rq.Equal(http.MethodDelete, (*requests)[1].method)
	rq.Equal("/products/5", (*requests)[1].path)
}

func TestStatusErrors(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name       string
		body       string
		status     int
		wantCode   string
		wantDetail string
	}{
		{
			name:       "FastAPI detail",
			body:       `{"detail":"Invalid Mercari URL"}`,
			status:     http.StatusBadRequest,
			wantDetail: "Invalid Mercari URL",
		},
		{
			name:       "FastAPI validation list",
			body:       `{"detail":[{"loc":["query","url"],"msg":"field required"}]}`,
			status:     http.StatusUnprocessableEntity,
			wantDetail: `[{"loc":["query","url"],"msg":"field required"}]`,
		},
		{
			name:       "Coded error",
			body:       `{"code":"InvalidURL","message":"not a mercari item","supportId":"x"}`,
			status:     http.StatusBadRequest,
			wantCode:   "InvalidURL",
			wantDetail: "not a mercari item",
		},
		{
			name:       "Plain text",
			body:       `upstream exploded`,
			status:     http.StatusBadGateway,
			wantDetail: "upstream exploded",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			server, _ := newServer(t,
				map[string]string{"POST /track": tc.body},
				map[string]int{"POST /track": tc.status},
			)

			syncer := catalog.NewSyncer(trackerapi.NewClient(server.URL, nil))

			err := syncer.Track(context.Background(), "https://jp.mercari.com/item/m12345678901")
			rq.True(domain.HasCode(err, errcodes.TrackFailed))

			var statusErr *trackerapi.StatusError
			rq.True(errors.As(err, &statusErr))
			rq.Equal(tc.status, statusErr.StatusCode)
			rq.Equal(tc.wantCode, statusErr.Code)
			rq.Equal(tc.wantDetail, statusErr.ErrorDetail())
		})
	}
}

func TestTransportFailure(t *testing.T) {
	rq := require.New(t)

	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	syncer := catalog.NewSyncer(trackerapi.NewClient(server.URL, nil))

	_, err := syncer.LoadAll(context.Background())
	rq.True(domain.HasCode(err, errcodes.FetchFailed))
	rq.False(syncer.Snapshot().Loaded())
}

func TestNewHTTPClientRecordsMetrics(t *testing.T) {
	rq := require.New(t)

	server, _ := newServer(t, map[string]string{"GET /products": `[]`}, nil)

	reg := prometheus.NewRegistry()

	httpClient, err := trackerapi.NewHTTPClient(4096, reg)
	rq.NoError(err)
	rq.Zero(httpClient.Timeout)

	_, err = trackerapi.NewClient(server.URL, httpClient).ListProducts(context.Background())
	rq.NoError(err)

	rq.Equal(1, testutil.CollectAndCount(reg, "tracker_api_requests_total"))
}
