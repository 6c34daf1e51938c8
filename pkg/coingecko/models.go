package coingecko

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PingResponse is the body of /ping.
type PingResponse struct {
	GeckoSays string `json:"gecko_says"`
}

func (p *PingResponse) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "ping", "gecko_says"); err != nil {
		return err
	}
	type plain PingResponse
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = PingResponse(v)
	return nil
}

// Coin is one entry of /coins/list. Platforms is only filled when include_platform was requested.
type Coin struct {
	ID        string            `json:"id"`
	Symbol    string            `json:"symbol"`
	Name      string            `json:"name"`
	Platforms map[string]string `json:"platforms,omitempty"`
}

func (c *Coin) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "coin", "id", "symbol", "name"); err != nil {
		return err
	}
	type plain Coin
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = Coin(v)
	return nil
}

// ROI is the return-on-investment block some market entries carry.
type ROI struct {
	Times      decimal.Decimal `json:"times"`
	Currency   string          `json:"currency"`
	Percentage decimal.Decimal `json:"percentage"`
}

func (r *ROI) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "roi", "times", "currency", "percentage"); err != nil {
		return err
	}
	type plain ROI
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = ROI(v)
	return nil
}

// Sparkline holds the 7 day price series returned when sparkline=true.
// Gaps in the series decode as nil points.
type Sparkline struct {
	Price []*decimal.Decimal `json:"price"`
}

// Market is one entry of /coins/markets.
type Market struct {
	ID                           string           `json:"id"`
	Symbol                       string           `json:"symbol"`
	Name                         string           `json:"name"`
	Image                        string           `json:"image"`
	CurrentPrice                 decimal.Decimal  `json:"current_price"`
	MarketCap                    decimal.Decimal  `json:"market_cap"`
	MarketCapRank                *int             `json:"market_cap_rank,omitempty"`
	FullyDilutedValuation        *decimal.Decimal `json:"fully_diluted_valuation,omitempty"`
	TotalVolume                  decimal.Decimal  `json:"total_volume"`
	High24h                      decimal.Decimal  `json:"high_24h"`
	Low24h                       decimal.Decimal  `json:"low_24h"`
	PriceChange24h               decimal.Decimal  `json:"price_change_24h"`
	PriceChangePercentage24h     decimal.Decimal  `json:"price_change_percentage_24h"`
	MarketCapChange24h           decimal.Decimal  `json:"market_cap_change_24h"`
	MarketCapChangePercentage24h decimal.Decimal  `json:"market_cap_change_percentage_24h"`
	CirculatingSupply            decimal.Decimal  `json:"circulating_supply"`
	TotalSupply                  *decimal.Decimal `json:"total_supply,omitempty"`
	MaxSupply                    *decimal.Decimal `json:"max_supply,omitempty"`
	ATH                          decimal.Decimal  `json:"ath"`
	ATHChangePercentage          decimal.Decimal  `json:"ath_change_percentage"`
	ATHDate                      time.Time        `json:"ath_date"`
	ATL                          decimal.Decimal  `json:"atl"`
	ATLChangePercentage          decimal.Decimal  `json:"atl_change_percentage"`
	ATLDate                      time.Time        `json:"atl_date"`
	ROI                          *ROI             `json:"roi,omitempty"`
	LastUpdated                  time.Time        `json:"last_updated"`
	SparklineIn7d                *Sparkline       `json:"sparkline_in_7d,omitempty"`

	PriceChangePercentage1hInCurrency   *decimal.Decimal `json:"price_change_percentage_1h_in_currency,omitempty"`
	PriceChangePercentage24hInCurrency  *decimal.Decimal `json:"price_change_percentage_24h_in_currency,omitempty"`
	PriceChangePercentage7dInCurrency   *decimal.Decimal `json:"price_change_percentage_7d_in_currency,omitempty"`
	PriceChangePercentage14dInCurrency  *decimal.Decimal `json:"price_change_percentage_14d_in_currency,omitempty"`
	PriceChangePercentage30dInCurrency  *decimal.Decimal `json:"price_change_percentage_30d_in_currency,omitempty"`
	PriceChangePercentage200dInCurrency *decimal.Decimal `json:"price_change_percentage_200d_in_currency,omitempty"`
	PriceChangePercentage1yInCurrency   *decimal.Decimal `json:"price_change_percentage_1y_in_currency,omitempty"`
}

var marketRequiredFields = []string{
	"id", "symbol", "name", "image",
	"current_price", "market_cap", "total_volume",
	"high_24h", "low_24h",
	"price_change_24h", "price_change_percentage_24h",
	"market_cap_change_24h", "market_cap_change_percentage_24h",
	"circulating_supply",
	"ath", "ath_change_percentage", "ath_date",
	"atl", "atl_change_percentage", "atl_date",
	"last_updated",
}

func (m *Market) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "market", marketRequiredFields...); err != nil {
		return err
	}
	type plain Market
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Market(v)
	return nil
}

// PriceChangeIn returns the <window>_in_currency change, present only when the
// window was requested through MarketRequest.PriceChangePercentage.
func (m Market) PriceChangeIn(window PriceChangePercentage) (decimal.Decimal, bool) {
	var v *decimal.Decimal
	switch window {
	case PriceChange1h:
		v = m.PriceChangePercentage1hInCurrency
	case PriceChange24h:
		v = m.PriceChangePercentage24hInCurrency
	case PriceChange7d:
		v = m.PriceChangePercentage7dInCurrency
	case PriceChange14d:
		v = m.PriceChangePercentage14dInCurrency
	case PriceChange30d:
		v = m.PriceChangePercentage30dInCurrency
	case PriceChange200d:
		v = m.PriceChangePercentage200dInCurrency
	case PriceChange1y:
		v = m.PriceChangePercentage1yInCurrency
	}
	if v == nil {
		return decimal.Decimal{}, false
	}
	return *v, true
}

// CoinImage holds the logo URLs of /coins/{id}.
type CoinImage struct {
	Thumb string `json:"thumb"`
	Small string `json:"small"`
	Large string `json:"large"`
}

// CoinLinks is the subset of /coins/{id} links worth keeping.
type CoinLinks struct {
	Homepage          []string `json:"homepage"`
	BlockchainSite    []string `json:"blockchain_site"`
	TwitterScreenName string   `json:"twitter_screen_name"`
	SubredditURL      string   `json:"subreddit_url"`
}

// CoinMarketData is the market_data block of /coins/{id}, keyed by currency.
// A currency the API reports as null maps to nil.
type CoinMarketData struct {
	CurrentPrice             map[string]*decimal.Decimal `json:"current_price"`
	MarketCap                map[string]*decimal.Decimal `json:"market_cap"`
	TotalVolume              map[string]*decimal.Decimal `json:"total_volume"`
	High24h                  map[string]*decimal.Decimal `json:"high_24h"`
	Low24h                   map[string]*decimal.Decimal `json:"low_24h"`
	FullyDilutedValuation    map[string]*decimal.Decimal `json:"fully_diluted_valuation,omitempty"`
	PriceChangePercentage24h *decimal.Decimal            `json:"price_change_percentage_24h,omitempty"`
	CirculatingSupply        *decimal.Decimal            `json:"circulating_supply,omitempty"`
	TotalSupply              *decimal.Decimal            `json:"total_supply,omitempty"`
	MaxSupply                *decimal.Decimal            `json:"max_supply,omitempty"`
	ROI                      *ROI                        `json:"roi,omitempty"`
	LastUpdated              *time.Time                  `json:"last_updated,omitempty"`
}

// CoinInfo is the body of /coins/{id}.
type CoinInfo struct {
	ID                 string            `json:"id"`
	Symbol             string            `json:"symbol"`
	Name               string            `json:"name"`
	AssetPlatformID    *string           `json:"asset_platform_id,omitempty"`
	Platforms          map[string]string `json:"platforms,omitempty"`
	BlockTimeInMinutes *int              `json:"block_time_in_minutes,omitempty"`
	HashingAlgorithm   *string           `json:"hashing_algorithm,omitempty"`
	Categories         []string          `json:"categories,omitempty"`
	Description        map[string]string `json:"description,omitempty"`
	Links              *CoinLinks        `json:"links,omitempty"`
	Image              *CoinImage        `json:"image,omitempty"`
	GenesisDate        *string           `json:"genesis_date,omitempty"`
	MarketCapRank      *int              `json:"market_cap_rank,omitempty"`
	MarketData         *CoinMarketData   `json:"market_data,omitempty"`
	LastUpdated        *time.Time        `json:"last_updated,omitempty"`
}

func (c *CoinInfo) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "coin info", "id", "symbol", "name"); err != nil {
		return err
	}
	type plain CoinInfo
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = CoinInfo(v)
	return nil
}

// SimplePrices is the body of /simple/price keyed by coin id.
type SimplePrices map[string]SimplePrice

// SimplePrice holds one coin's values keyed the way the API names them
// ("usd", "usd_market_cap", "usd_24h_vol", "usd_24h_change", "last_updated_at").
// Values the API sent as null are kept as nil and reported as absent by the accessors.
type SimplePrice map[string]*decimal.Decimal

func (p SimplePrice) lookup(key string) (decimal.Decimal, bool) {
	v := p[strings.ToLower(key)]
	if v == nil {
		return decimal.Decimal{}, false
	}
	return *v, true
}

// Price returns the price in currency.
func (p SimplePrice) Price(currency string) (decimal.Decimal, bool) {
	return p.lookup(currency)
}

// MarketCap requires IncludeMarketCap.
func (p SimplePrice) MarketCap(currency string) (decimal.Decimal, bool) {
	return p.lookup(currency + "_market_cap")
}

// Volume24h requires Include24hrVol.
func (p SimplePrice) Volume24h(currency string) (decimal.Decimal, bool) {
	return p.lookup(currency + "_24h_vol")
}

// Change24h requires Include24hrChange.
func (p SimplePrice) Change24h(currency string) (decimal.Decimal, bool) {
	return p.lookup(currency + "_24h_change")
}

// LastUpdatedAt requires IncludeLastUpdatedAt.
func (p SimplePrice) LastUpdatedAt() (time.Time, bool) {
	v, ok := p.lookup("last_updated_at")
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(v.IntPart(), 0).UTC(), true
}
