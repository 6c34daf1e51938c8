package publishers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/samvad-hq/coingecko-harvester/internal/domain"
	"github.com/samvad-hq/coingecko-harvester/pkg/coingecko"
)

func sampleEvent() Event {
	rank := 1
	return NewEvent("Top coins", domain.Snapshot{
		WatchlistID: "top",
		VsCurrency:  "usd",
		ObservedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Market: coingecko.Market{
			ID:                       "bitcoin",
			Symbol:                   "btc",
			Name:                     "Bitcoin",
			CurrentPrice:             decimal.RequireFromString("64000.5"),
			MarketCap:                decimal.RequireFromString("1260000000000"),
			MarketCapRank:            &rank,
			PriceChangePercentage24h: decimal.RequireFromString("-1.234"),
		},
	})
}
