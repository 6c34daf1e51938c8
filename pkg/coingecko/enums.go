package coingecko

import (
	"fmt"
	"strings"
)

// Order is the sort order accepted by /coins/markets. The value is the wire string.
type Order string

const (
	OrderGeckoDesc     Order = "gecko_desc"
	OrderGeckoAsc      Order = "gecko_asc"
	OrderMarketCapAsc  Order = "market_cap_asc"
	OrderMarketCapDesc Order = "market_cap_desc"
	OrderVolumeAsc     Order = "volume_asc"
	OrderVolumeDesc    Order = "volume_desc"
	OrderIDAsc         Order = "id_asc"
	OrderIDDesc        Order = "id_desc"
)

var orders = []Order{
	OrderGeckoDesc,
	OrderGeckoAsc,
	OrderMarketCapAsc,
	OrderMarketCapDesc,
	OrderVolumeAsc,
	OrderVolumeDesc,
	OrderIDAsc,
	OrderIDDesc,
}

// Orders returns every supported sort order.
func Orders() []Order {
	return append([]Order(nil), orders...)
}

func (o Order) String() string { return string(o) }

// Valid reports whether o is one of the declared orders.
func (o Order) Valid() bool {
	for _, v := range orders {
		if v == o {
			return true
		}
	}
	return false
}

// ParseOrder resolves a wire string such as "market_cap_desc".
func ParseOrder(s string) (Order, error) {
	o := Order(strings.ToLower(strings.TrimSpace(s)))
	if !o.Valid() {
		return "", fmt.Errorf("unknown order %q", s)
	}
	return o, nil
}

// PriceChangePercentage is the window used for price_change_percentage. The value is the wire string.
type PriceChangePercentage string

const (
	PriceChange1h   PriceChangePercentage = "1h"
	PriceChange24h  PriceChangePercentage = "24h"
	PriceChange7d   PriceChangePercentage = "7d"
	PriceChange14d  PriceChangePercentage = "14d"
	PriceChange30d  PriceChangePercentage = "30d"
	PriceChange200d PriceChangePercentage = "200d"
	PriceChange1y   PriceChangePercentage = "1y"
)

var priceChangeWindows = []PriceChangePercentage{
	PriceChange1h,
	PriceChange24h,
	PriceChange7d,
	PriceChange14d,
	PriceChange30d,
	PriceChange200d,
	PriceChange1y,
}

// PriceChangePercentages returns every supported window.
func PriceChangePercentages() []PriceChangePercentage {
	return append([]PriceChangePercentage(nil), priceChangeWindows...)
}

func (p PriceChangePercentage) String() string { return string(p) }

// Valid reports whether p is one of the declared windows.
func (p PriceChangePercentage) Valid() bool {
	for _, v := range priceChangeWindows {
		if v == p {
			return true
		}
	}
	return false
}

// ParsePriceChangePercentage resolves a wire string such as "24h".
func ParsePriceChangePercentage(s string) (PriceChangePercentage, error) {
	p := PriceChangePercentage(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown price change window %q", s)
	}
	return p, nil
}
