package app

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/coingecko-harvester/internal/config"
	"github.com/samvad-hq/coingecko-harvester/internal/logger"
	"github.com/samvad-hq/coingecko-harvester/internal/storage"
	"github.com/samvad-hq/coingecko-harvester/internal/tracker"
	"github.com/samvad-hq/coingecko-harvester/pkg/coingecko"
	"github.com/samvad-hq/coingecko-harvester/pkg/httpclient"
	"github.com/samvad-hq/coingecko-harvester/pkg/publishers"
	"github.com/samvad-hq/coingecko-harvester/pkg/watchlists"
)

// Harvester is the market harvester runtime. It owns the poll loop and the
// resources the tracker needs: the CoinGecko client, publishers and snapshot store.
type Harvester struct {
	cfg          *config.Config
	watchlists   *watchlists.Registry
	fanout       *publishers.Fanout
	tracker      *tracker.Service
	pollInterval time.Duration
	log          logger.Logger
	store        storage.Store
}

// NewHarvester builds a harvester runtime from config files.
func NewHarvester(ctx context.Context, cfg *config.Config, log logger.Logger) (*Harvester, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	transport := httpclient.NewRestyClient(httpclient.Options{
		Timeout:   cfg.HTTPTimeout,
		UserAgent: cfg.UserAgent,
	})
	return newHarvester(ctx, cfg, log, transport)
}

func newHarvester(ctx context.Context, cfg *config.Config, log logger.Logger, transport coingecko.HTTPClient) (*Harvester, error) {
	log = logger.Ensure(log)
	if ctx == nil {
		ctx = context.Background()
	}

	client := coingecko.NewClient(transport, coingecko.Options{
		BaseURL: cfg.BaseURL,
		Headers: cfg.APIHeaders(),
	})

	wl, err := watchlists.LoadRegistry(cfg.WatchlistsFile)
	if err != nil {
		return nil, fmt.Errorf("load watchlists: %w", err)
	}
	enabledLists := wl.Enabled()
	ids := make([]string, 0, len(enabledLists))
	for _, w := range enabledLists {
		ids = append(ids, w.ID)
	}
	log.InfoObj("watchlists loaded", "watchlists_meta", map[string]any{
		"count":   len(wl.All()),
		"enabled": ids,
	})

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}
	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubs)
	summaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, p := range enabledPublishers {
		summaries = append(summaries, map[string]string{"id": p.ID, "type": p.Type})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})

	store, err := storage.NewStore(cfg.StorageType, cfg.StorageLocation(), storage.Options{
		SnapshotTTL:     cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
		RedisPassword:   cfg.RedisPassword,
		RedisDB:         cfg.RedisDB,
	})
	if err != nil {
		fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"location":                 cfg.StorageLocation(),
		"snapshot_ttl_seconds":     int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	svc := tracker.NewService(client, fanout, store, log, tracker.Options{
		MaxConcurrency:    cfg.MaxConcurrency,
		RequestsPerMinute: cfg.RequestsPerMinute,
	})

	return &Harvester{
		cfg:          cfg,
		watchlists:   wl,
		fanout:       fanout,
		tracker:      svc,
		pollInterval: cfg.PollInterval,
		log:          log,
		store:        store,
	}, nil
}

// Run polls immediately and then every poll interval until ctx is cancelled.
func (h *Harvester) Run(ctx context.Context) error {
	if h == nil || h.tracker == nil {
		return fmt.Errorf("harvester is not initialized")
	}
	defer h.close()

	lists := h.watchlists.Enabled()
	if len(lists) == 0 {
		h.log.WarnObj("no enabled watchlists; harvester idle", "watchlists_file", h.cfg.WatchlistsFile)
		<-ctx.Done()
		return nil
	}

	h.log.InfoObj("harvester loop starting", "harvester_state", map[string]any{
		"watchlists_count": len(lists),
		"publishers_count": h.fanout.Size(),
		"poll_interval":    h.pollInterval.String(),
	})

	if err := h.runOnce(ctx, lists); err != nil {
		h.log.ErrorObj("initial pass failed", "error", err.Error())
	}

	ticker := time.NewTicker(h.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.log.InfoObj("harvester loop exiting", "reason", ctx.Err().Error())
			return nil
		case <-ticker.C:
			if err := h.runOnce(ctx, lists); err != nil {
				h.log.ErrorObj("scheduled pass failed", "error", err.Error())
			}
		}
	}
}

func (h *Harvester) runOnce(ctx context.Context, lists []watchlists.Watchlist) error {
	start := time.Now()
	h.log.InfoObj("harvest pass started", "pass_meta", map[string]any{
		"watchlists_count": len(lists),
		"started_at":       start.UTC(),
	})
	if err := h.tracker.Run(ctx, lists); err != nil {
		return err
	}
	h.log.InfoObj("harvest pass completed", "pass_meta", map[string]any{
		"watchlists_count": len(lists),
		"elapsed_ms":       time.Since(start).Milliseconds(),
	})
	return nil
}

func (h *Harvester) close() {
	if err := h.fanout.Close(); err != nil {
		h.log.ErrorObj("publishers close failed", "error", err.Error())
	}
	if h.store == nil {
		return
	}
	if err := h.store.Close(); err != nil {
		h.log.ErrorObj("storage close failed", "error", err.Error())
	}
}
