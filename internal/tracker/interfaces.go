package tracker

import (
	"context"

	"github.com/samvad-hq/coingecko-harvester/pkg/coingecko"
	"github.com/samvad-hq/coingecko-harvester/pkg/publishers"
)

// MarketSource lists market entries; *coingecko.Client satisfies it.
type MarketSource interface {
	Markets(ctx context.Context, req coingecko.MarketRequest) ([]coingecko.Market, error)
}

// EventPublisher delivers events downstream and reports how many sinks accepted them.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Deduper remembers snapshot fingerprints between passes.
type Deduper interface {
	SeenSnapshot(ctx context.Context, key string) (bool, error)
	MarkSnapshot(ctx context.Context, key string) error
}
