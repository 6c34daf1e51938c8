package publishers

import (
	"time"

	"github.com/samvad-hq/coingecko-harvester/internal/domain"
	"github.com/samvad-hq/coingecko-harvester/pkg/coingecko"
)

// Event is the payload published downstream for every new market snapshot.
type Event struct {
	WatchlistID   string           `json:"watchlist_id"`
	WatchlistName string           `json:"watchlist_name"`
	VsCurrency    string           `json:"vs_currency"`
	Market        coingecko.Market `json:"market"`
	CollectedAt   time.Time        `json:"collected_at"`
}

// NewEvent builds the Event for a snapshot taken from the named watchlist.
func NewEvent(watchlistName string, snap domain.Snapshot) Event {
	collected := snap.ObservedAt
	if collected.IsZero() {
		collected = time.Now()
	}
	return Event{
		WatchlistID:   snap.WatchlistID,
		WatchlistName: watchlistName,
		VsCurrency:    snap.VsCurrency,
		Market:        snap.Market,
		CollectedAt:   collected.UTC(),
	}
}

func (e Event) attributes() map[string]string {
	return map[string]string{
		"watchlist_id": e.WatchlistID,
		"coin_id":      e.Market.ID,
		"vs_currency":  e.VsCurrency,
	}
}
