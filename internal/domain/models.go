package domain

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"time"

	"github.com/samvad-hq/coingecko-harvester/pkg/coingecko"
)

// Snapshot is one market entry observed for a watchlist during a harvest pass.
type Snapshot struct {
	WatchlistID string
	VsCurrency  string
	Market      coingecko.Market
	ObservedAt  time.Time
}

// Fingerprint identifies the snapshot by the market's last update, so a coin is
// published again only once CoinGecko refreshes it.
func (s Snapshot) Fingerprint() string {
	parts := []string{
		strings.ToLower(strings.TrimSpace(s.WatchlistID)),
		strings.ToLower(strings.TrimSpace(s.VsCurrency)),
		strings.ToLower(strings.TrimSpace(s.Market.ID)),
		s.Market.LastUpdated.UTC().Format(time.RFC3339Nano),
	}
	sum := sha1.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
