package httpx

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsRoundTripper counts outgoing requests and observes their latency. The
// endpoint label comes from WithEndpoint.
type MetricsRoundTripper struct {
	next     http.RoundTripper
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetricsRoundTripper registers the collectors on reg. namespace prefixes
// the metric names, e.g. "tracker_api".
func NewMetricsRoundTripper(
	next http.RoundTripper,
	reg prometheus.Registerer,
	namespace string,
) (*MetricsRoundTripper, error) {
	rt := &MetricsRoundTripper{
		next: next,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Outgoing HTTP requests by endpoint, method and status code.",
		}, []string{"endpoint", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Latency of outgoing HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint", "method"}),
	}

	for _, c := range []prometheus.Collector{rt.requests, rt.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("reg.Register: %w", err)
		}
	}

	return rt, nil
}

// RoundTrip implements http.RoundTripper interface.
func (rt *MetricsRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	endpoint := EndpointFromContext(req.Context())
	start := time.Now()

	resp, err := rt.next.RoundTrip(req)

	rt.duration.WithLabelValues(endpoint, req.Method).Observe(time.Since(start).Seconds())

	code := "error"
	if err == nil {
		code = strconv.Itoa(resp.StatusCode)
	}

	rt.requests.WithLabelValues(endpoint, req.Method, code).Inc()

	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	return resp, nil
}
