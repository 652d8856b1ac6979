package httpx

import "context"

type contextKeyEndpoint struct{}

// WithEndpoint names the logical endpoint of the requests made with ctx. The
// name is used as a metrics label instead of the raw path.
func WithEndpoint(ctx context.Context, endpoint string) context.Context {
	return context.WithValue(ctx, contextKeyEndpoint{}, endpoint)
}

func EndpointFromContext(ctx context.Context) string {
	endpoint, ok := ctx.Value(contextKeyEndpoint{}).(string)
	if !ok || endpoint == "" {
		return "unknown"
	}

	return endpoint
}
