package coingecko

import (
	"net/url"
	"strconv"
	"strings"
)

// MarketRequest holds the parameters of /coins/markets. VsCurrency is required;
// every other field is omitted from the query while it holds its zero value.
// An unset Page is omitted, the API then serves page 1.
type MarketRequest struct {
	VsCurrency            string
	IDs                   []string
	Category              string
	Order                 Order
	PerPage               int
	Page                  int
	Sparkline             *bool
	PriceChangePercentage PriceChangePercentage
}

// Query encodes the request in fixed field order.
func (r MarketRequest) Query() string {
	var q queryBuilder
	q.add("vs_currency", url.QueryEscape(strings.TrimSpace(r.VsCurrency)))
	q.addList("ids", r.IDs)
	q.addString("category", r.Category)
	q.addString("order", r.Order.String())
	q.addInt("per_page", r.PerPage)
	q.addInt("page", r.Page)
	q.addBoolPtr("sparkline", r.Sparkline)
	q.addString("price_change_percentage", r.PriceChangePercentage.String())
	return q.String()
}

// SimplePriceRequest holds the parameters of /simple/price.
type SimplePriceRequest struct {
	IDs                  []string
	VsCurrencies         []string
	IncludeMarketCap     bool
	Include24hrVol       bool
	Include24hrChange    bool
	IncludeLastUpdatedAt bool
	Precision            string
}

func (r SimplePriceRequest) Query() string {
	var q queryBuilder
	q.add("ids", joinList(r.IDs))
	q.add("vs_currencies", joinList(r.VsCurrencies))
	q.addTrue("include_market_cap", r.IncludeMarketCap)
	q.addTrue("include_24hr_vol", r.Include24hrVol)
	q.addTrue("include_24hr_change", r.Include24hrChange)
	q.addTrue("include_last_updated_at", r.IncludeLastUpdatedAt)
	q.addString("precision", r.Precision)
	return q.String()
}

// CoinsListRequest holds the parameters of /coins/list.
type CoinsListRequest struct {
	IncludePlatform bool
}

func (r CoinsListRequest) Query() string {
	var q queryBuilder
	q.addTrue("include_platform", r.IncludePlatform)
	return q.String()
}

// CoinInfoRequest holds the parameters of /coins/{id}. Nil fields are left to the API default.
type CoinInfoRequest struct {
	Localization  *bool
	Tickers       *bool
	MarketData    *bool
	CommunityData *bool
	DeveloperData *bool
	Sparkline     *bool
}

func (r CoinInfoRequest) Query() string {
	var q queryBuilder
	q.addBoolPtr("localization", r.Localization)
	q.addBoolPtr("tickers", r.Tickers)
	q.addBoolPtr("market_data", r.MarketData)
	q.addBoolPtr("community_data", r.CommunityData)
	q.addBoolPtr("developer_data", r.DeveloperData)
	q.addBoolPtr("sparkline", r.Sparkline)
	return q.String()
}

// Bool returns a pointer to v, for the optional flags of the request types.
func Bool(v bool) *bool { return &v }

// queryBuilder appends name=value pairs in call order. Values passed to add are
// already encoded.
type queryBuilder struct {
	sb strings.Builder
}

func (q *queryBuilder) add(name, value string) {
	if q.sb.Len() > 0 {
		q.sb.WriteByte('&')
	}
	q.sb.WriteString(name)
	q.sb.WriteByte('=')
	q.sb.WriteString(value)
}

func (q *queryBuilder) addString(name, value string) {
	if value = strings.TrimSpace(value); value != "" {
		q.add(name, url.QueryEscape(value))
	}
}

func (q *queryBuilder) addList(name string, values []string) {
	if joined := joinList(values); joined != "" {
		q.add(name, joined)
	}
}

func (q *queryBuilder) addInt(name string, value int) {
	if value > 0 {
		q.add(name, strconv.Itoa(value))
	}
}

func (q *queryBuilder) addBoolPtr(name string, value *bool) {
	if value != nil {
		q.add(name, strconv.FormatBool(*value))
	}
}

func (q *queryBuilder) addTrue(name string, value bool) {
	if value {
		q.add(name, "true")
	}
}

func (q *queryBuilder) String() string { return q.sb.String() }

// joinList escapes each element and joins them with a literal comma, dropping blanks.
func joinList(values []string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, url.QueryEscape(v))
		}
	}
	return strings.Join(parts, ",")
}
