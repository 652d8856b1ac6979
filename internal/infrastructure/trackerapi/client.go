package trackerapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"

	"price_tracker/internal/domain/entity"
	"price_tracker/internal/domain/value"
	"price_tracker/pkg/httpx"
	"price_tracker/pkg/logx"
	"price_tracker/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const maxErrorBodyLen = 64 << 10

const (
	endpointListProducts  = "list_products"
	endpointTrack         = "track"
	endpointTrackKeyword  = "track_keyword"
	endpointSearch        = "search"
	endpointKeywordItems  = "keyword_items"
	endpointDeleteProduct = "delete_product"
	endpointDeleteKeyword = "delete_keyword"
	endpointHistory       = "history"
)

// Client talks to the tracker service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(
	baseURL string,
	httpClient *http.Client,
) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// NewHTTPClient wraps the default transport with request logging and metrics.
// No timeout is set; callers bound requests with their context.
func NewHTTPClient(logFieldMaxLen int, reg prometheus.Registerer) (*http.Client, error) {
	metricsRT, err := httpx.NewMetricsRoundTripper(
		httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			httpx.WithLogFieldMaxLen(logFieldMaxLen),
		),
		reg,
		"tracker_api",
	)
	if err != nil {
		return nil, fmt.Errorf("httpx.NewMetricsRoundTripper: %w", err)
	}

	return &http.Client{Transport: metricsRT}, nil
}

// ListProducts decodes the list item by item. An item that does not decode
// is returned with DecodeErr set so one bad entry does not hide the rest.
func (c Client) ListProducts(ctx context.Context) ([]entity.RawItem, error) {
	var elements []jsoniter.RawMessage

	if err := c.do(ctx, endpointListProducts, http.MethodGet, "/products", &elements); err != nil {
		return nil, err
	}

	return lo.Map(elements, rawItemFromJSON), nil
}

func (c Client) Track(ctx context.Context, itemURL string) error {
	return c.do(ctx, endpointTrack, http.MethodPost, "/track?url="+value.EncodeForRoute(itemURL), nil)
}

func (c Client) TrackKeyword(ctx context.Context, keyword string) (entity.KeywordIngestion, error) {
	var resp rest.TrackKeywordResponse

	path := "/track-keyword?keyword=" + value.EncodeForRoute(keyword)
	if err := c.do(ctx, endpointTrackKeyword, http.MethodPost, path, &resp); err != nil {
		return entity.KeywordIngestion{}, err
	}

	return entity.KeywordIngestion{
		Keyword:    resp.Keyword,
		ItemsCount: resp.ItemsCount,
	}, nil
}

func (c Client) Search(ctx context.Context, keyword string) ([]entity.SearchResult, error) {
	var results []rest.SearchResult

	path := "/search?keyword=" + value.EncodeForRoute(keyword)
	if err := c.do(ctx, endpointSearch, http.MethodGet, path, &results); err != nil {
		return nil, err
	}

	return searchResultsFromRest(results), nil
}

func (c Client) KeywordItems(ctx context.Context, keyword string) ([]entity.IngestedItem, error) {
	var items []rest.StoredItem

	path := "/products/search-results?keyword=" + value.EncodeForRoute(keyword)
	if err := c.do(ctx, endpointKeywordItems, http.MethodGet, path, &items); err != nil {
		return nil, err
	}

	return ingestedItemsFromRest(items), nil
}

func (c Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, endpointDeleteProduct, http.MethodDelete, "/products/"+strconv.FormatInt(id, 10), nil)
}

func (c Client) DeleteKeyword(ctx context.Context, keyword string) error {
	path := "/products/search-results?keyword=" + value.EncodeForRoute(keyword)
	return c.do(ctx, endpointDeleteKeyword, http.MethodDelete, path, nil)
}

func (c Client) History(ctx context.Context, productID int64) ([]entity.PricePoint, error) {
	var history []rest.PriceHistory

	path := "/products/" + strconv.FormatInt(productID, 10) + "/history"
	if err := c.do(ctx, endpointHistory, http.MethodGet, path, &history); err != nil {
		return nil, err
	}

	return pricePointsFromRest(history), nil
}

// do sends one request. A 2xx body is decoded into dest when dest is not nil;
// any other status becomes a *StatusError.
func (c Client) do(ctx context.Context, endpoint, method, path string, dest any) error {
	ctx = httpx.WithEndpoint(ctx, endpoint)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen)) //nolint:errcheck
		return newStatusError(resp.StatusCode, body)
	}

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("json.Decode(%s): %w", endpoint, err)
	}

	return nil
}
