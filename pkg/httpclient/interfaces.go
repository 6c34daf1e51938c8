package httpclient

import "context"

// Response is the part of an HTTP response the API clients consume.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client performs GET requests. Implementations must be safe for concurrent use;
// tests inject fakes so nothing touches the network.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
