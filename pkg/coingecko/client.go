package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/samvad-hq/coingecko-harvester/pkg/httpclient"
)

// DefaultBaseURL is the public v3 API root.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// HTTPClient aliases the shared transport interface.
type HTTPClient = httpclient.Client

// Options configures a Client.
type Options struct {
	// BaseURL defaults to DefaultBaseURL. Set it for the pro API or a test server.
	BaseURL string
	// Headers are added to every request, e.g. an API key header.
	Headers map[string]string
}

// Client calls the CoinGecko REST API. Each method is a single GET with no
// retries and no caching; timeouts belong to the context or the transport.
// A Client is safe for concurrent use.
type Client struct {
	http    HTTPClient
	baseURL string
	headers map[string]string
}

// NewClient builds a Client. A nil client uses a resty transport with a 15s timeout.
func NewClient(client HTTPClient, opts Options) *Client {
	if client == nil {
		client = httpclient.NewRestyClient(httpclient.Options{})
	}

	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}

	headers := map[string]string{
		"Accept":       "application/json",
		"Content-Type": "application/json",
	}
	for k, v := range opts.Headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		headers[k] = v
	}

	return &Client{http: client, baseURL: base, headers: headers}
}

// Ping checks that the API is reachable.
func (c *Client) Ping(ctx context.Context) (PingResponse, error) {
	return getJSON[PingResponse](ctx, c, "ping", c.uri("/ping", ""))
}

// CoinsList lists every supported coin.
func (c *Client) CoinsList(ctx context.Context, req CoinsListRequest) ([]Coin, error) {
	return getJSON[[]Coin](ctx, c, "coins list", c.uri("/coins/list", req.Query()))
}

// CoinInfo fetches the detail document of one coin.
func (c *Client) CoinInfo(ctx context.Context, id string, req CoinInfoRequest) (CoinInfo, error) {
	path := "/coins/" + url.PathEscape(strings.TrimSpace(id))
	return getJSON[CoinInfo](ctx, c, "coin info", c.uri(path, req.Query()))
}

// Markets lists market data for coins against req.VsCurrency.
func (c *Client) Markets(ctx context.Context, req MarketRequest) ([]Market, error) {
	return getJSON[[]Market](ctx, c, "markets", c.uri("/coins/markets", req.Query()))
}

// SimplePrice looks up current prices for req.IDs in req.VsCurrencies.
func (c *Client) SimplePrice(ctx context.Context, req SimplePriceRequest) (SimplePrices, error) {
	return getJSON[SimplePrices](ctx, c, "simple price", c.uri("/simple/price", req.Query()))
}

func (c *Client) uri(path, query string) string {
	if query == "" {
		return c.baseURL + path
	}
	return c.baseURL + path + "?" + query
}

func getJSON[T any](ctx context.Context, c *Client, op, uri string) (T, error) {
	var out T

	resp, err := c.http.Get(ctx, uri, c.headers)
	if err != nil {
		return out, &Error{Kind: KindTransport, Op: op, URL: uri, Err: err}
	}

	body := resp.Body()
	if status := resp.StatusCode(); status < http.StatusOK || status >= http.StatusMultipleChoices {
		return out, &Error{
			Kind:       KindTransport,
			Op:         op,
			URL:        uri,
			StatusCode: status,
			Err:        fmt.Errorf("unexpected status: %s", apiErrorMessage(body)),
		}
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, &Error{Kind: KindDecode, Op: op, URL: uri, Err: err}
	}
	return out, nil
}

// apiErrorEnvelope covers the two error bodies the API is known to send.
type apiErrorEnvelope struct {
	Error  string `json:"error"`
	Status struct {
		ErrorCode    int    `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	} `json:"status"`
}

func apiErrorMessage(body []byte) string {
	var env apiErrorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		if msg := strings.TrimSpace(env.Status.ErrorMessage); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(env.Error); msg != "" {
			return msg
		}
	}
	return responseSnippet(body)
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
