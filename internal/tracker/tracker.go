package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/samvad-hq/coingecko-harvester/internal/domain"
	"github.com/samvad-hq/coingecko-harvester/internal/logger"
	"github.com/samvad-hq/coingecko-harvester/pkg/coingecko"
	"github.com/samvad-hq/coingecko-harvester/pkg/publishers"
	"github.com/samvad-hq/coingecko-harvester/pkg/watchlists"
)

const defaultMaxConcurrency = 2

// Options tunes how hard a pass hits the API.
type Options struct {
	// MaxConcurrency caps the watchlists polled at once.
	MaxConcurrency int
	// RequestsPerMinute is shared by every watchlist; zero disables limiting.
	RequestsPerMinute int
}

// Service runs harvest passes over a set of watchlists.
type Service struct {
	source    MarketSource
	publisher EventPublisher
	dedupe    Deduper
	log       logger.Logger
	limiter   *rate.Limiter
	limit     int
	now       func() time.Time
}

// Result summarizes one watchlist within a pass.
type Result struct {
	WatchlistID string
	Pages       int
	Markets     int
	Published   int
	Skipped     int
}

// NewService wires a tracker. publisher and dedupe may be nil: without a
// publisher nothing is delivered, without a deduper every snapshot is new.
func NewService(source MarketSource, publisher EventPublisher, dedupe Deduper, log logger.Logger, opts Options) *Service {
	limit := opts.MaxConcurrency
	if limit <= 0 {
		limit = defaultMaxConcurrency
	}
	return &Service{
		source:    source,
		publisher: publisher,
		dedupe:    dedupe,
		log:       logger.Ensure(log),
		limiter:   newLimiter(opts.RequestsPerMinute),
		limit:     limit,
		now:       time.Now,
	}
}

func newLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

// Run executes one pass over lists. Failures of individual watchlists do not
// stop the others and are returned joined. A cancelled ctx ends the pass without error.
func (s *Service) Run(ctx context.Context, lists []watchlists.Watchlist) error {
	if s == nil || s.source == nil {
		return fmt.Errorf("tracker service is not initialized")
	}
	if len(lists) == 0 {
		return fmt.Errorf("no watchlists configured for tracking")
	}

	var (
		mu   sync.Mutex
		errs []error
	)
	var g errgroup.Group
	g.SetLimit(s.limit)
	for _, w := range lists {
		w := w
		g.Go(func() error {
			res, err := s.runWatchlist(ctx, w)
			if err != nil {
				if ctx.Err() == nil {
					s.log.ErrorObj("watchlist harvest failed", "watchlist_error", map[string]any{
						"watchlist_id": w.ID,
						"error":        err.Error(),
					})
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
				return nil
			}
			s.log.InfoObj("watchlist harvest completed", "watchlist_result", map[string]any{
				"watchlist_id": res.WatchlistID,
				"pages":        res.Pages,
				"markets":      res.Markets,
				"published":    res.Published,
				"skipped":      res.Skipped,
			})
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		return nil
	}
	return errors.Join(errs...)
}

// runWatchlist pages through the watchlist until an empty page, a short page or its page budget.
func (s *Service) runWatchlist(ctx context.Context, w watchlists.Watchlist) (Result, error) {
	res := Result{WatchlistID: w.ID}
	pages := w.Pages
	if pages <= 0 {
		pages = 1
	}

	var errs []error
	for page := 1; page <= pages; page++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return res, err
		}
		markets, err := s.source.Markets(ctx, w.MarketRequest(page))
		if err != nil {
			errs = append(errs, fmt.Errorf("fetch markets for watchlist %s page %d: %w", w.ID, page, err))
			break
		}
		if len(markets) == 0 {
			break
		}
		res.Pages++
		res.Markets += len(markets)

		if err := s.process(ctx, w, markets, &res); err != nil {
			errs = append(errs, err)
		}
		if w.PerPage > 0 && len(markets) < w.PerPage {
			break
		}
	}
	return res, errors.Join(errs...)
}

func (s *Service) process(ctx context.Context, w watchlists.Watchlist, markets []coingecko.Market, res *Result) error {
	var errs []error
	observed := s.now().UTC()

	for _, m := range markets {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		snap := domain.Snapshot{
			WatchlistID: w.ID,
			VsCurrency:  w.VsCurrency,
			Market:      m,
			ObservedAt:  observed,
		}
		key := snap.Fingerprint()
		if s.seen(ctx, w.ID, key) {
			res.Skipped++
			continue
		}
		if s.publisher == nil {
			continue
		}

		delivered, err := s.publisher.Publish(ctx, publishers.NewEvent(w.Name, snap))
		if err != nil {
			errs = append(errs, fmt.Errorf("publish %s for watchlist %s: %w", m.ID, w.ID, err))
		}
		if delivered == 0 {
			continue
		}
		res.Published++
		s.mark(ctx, w.ID, key)
	}
	return errors.Join(errs...)
}

// seen reports false when the lookup itself fails.
func (s *Service) seen(ctx context.Context, watchlistID, key string) bool {
	if s.dedupe == nil {
		return false
	}
	ok, err := s.dedupe.SeenSnapshot(ctx, key)
	if err != nil {
		s.log.WarnObj("snapshot lookup failed", "storage_error", map[string]any{
			"watchlist_id": watchlistID,
			"fingerprint":  key,
			"error":        err.Error(),
		})
		return false
	}
	return ok
}

func (s *Service) mark(ctx context.Context, watchlistID, key string) {
	if s.dedupe == nil {
		return
	}
	if err := s.dedupe.MarkSnapshot(ctx, key); err != nil {
		s.log.WarnObj("snapshot mark failed", "storage_error", map[string]any{
			"watchlist_id": watchlistID,
			"fingerprint":  key,
			"error":        err.Error(),
		})
	}
}
