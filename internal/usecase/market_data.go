package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"MarketPulse/internal/domain/models"
	drepo "MarketPulse/internal/domain/repository"
	"MarketPulse/internal/service/options"
	"MarketPulse/internal/service/synth"
	"MarketPulse/pkg/cache"
	xhttp "MarketPulse/pkg/http"
	applogger "MarketPulse/pkg/logger"
)

const (
	quoteKeyPrefix = "stock"
	chainKeyPrefix = "options"
)

// MarketDataUsecase serves stock time series and option chains through a
// cache-first pipeline: cache hit short-circuits, misses collapse into one
// upstream flight per key, and option requests degrade to synthetic chains
// instead of failing when the upstream cannot serve real data.
type MarketDataUsecase struct {
	source  drepo.MarketDataSource
	store   cache.Store
	synth   *synth.Synthesizer
	archive drepo.QuoteArchive
	events  drepo.EventPublisher
	metrics drepo.Metrics
	logger  *applogger.Logger

	quoteTTL time.Duration
	chainTTL time.Duration

	flight singleflight.Group
	now    func() time.Time
}

// NewMarketDataUsecase wires the acquisition pipeline. archive and events may
// be nil; both are best-effort sinks.
func NewMarketDataUsecase(
	source drepo.MarketDataSource,
	store cache.Store,
	syn *synth.Synthesizer,
	archive drepo.QuoteArchive,
	events drepo.EventPublisher,
	metrics drepo.Metrics,
	l *applogger.Logger,
	quoteTTL, chainTTL time.Duration,
) *MarketDataUsecase {
	return &MarketDataUsecase{
		source:   source,
		store:    store,
		synth:    syn,
		archive:  archive,
		events:   events,
		metrics:  metrics,
		logger:   l,
		quoteTTL: quoteTTL,
		chainTTL: chainTTL,
		now:      time.Now,
	}
}

// GetTimeSeries returns the daily OHLCV series for a symbol, cache-first.
// There is no synthetic fallback on this path; upstream degradation maps to
// the corresponding API error.
func (u *MarketDataUsecase) GetTimeSeries(ctx context.Context, symbol string) (models.TimeSeries, error) {
	key := cache.Key(quoteKeyPrefix, symbol)
	if series, ok, err := cache.GetJSON[models.TimeSeries](ctx, u.store, key); err == nil && ok {
		u.metrics.RecordCache("get", "hit")
		return *series, nil
	} else if err != nil {
		u.logger.Warn("cache read failed", applogger.String("key", key), applogger.Error(err))
	}
	u.metrics.RecordCache("get", "miss")

	v, err, _ := u.flight.Do(key, func() (interface{}, error) {
		// The flight outlives the first caller so late joiners and the
		// cache write are not cut short by its disconnect.
		fctx := context.WithoutCancel(ctx)
		res := u.source.FetchTimeSeries(fctx, symbol)
		if res.Status != models.StatusSuccess {
			return nil, statusError(res.Status, symbol, res.Err)
		}

		u.cacheWrite(fctx, key, res.Series, u.quoteTTL)
		u.archiveSeries(fctx, symbol, res.Series)
		u.publish(fctx, &models.MarketEvent{
			Type:   models.EventQuoteFetched,
			Symbol: symbol,
			At:     u.now(),
		})
		return res.Series, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(models.TimeSeries), nil
}

// GetOptionChain returns the display-ready option chain for a symbol,
// cache-first. When the upstream is throttled, empty, unreachable, or not
// normalizable, a labeled synthetic chain is served and cached in its place.
// Only an invalid symbol is a hard error.
func (u *MarketDataUsecase) GetOptionChain(ctx context.Context, symbol string) (*models.OptionChain, error) {
	key := cache.Key(chainKeyPrefix, symbol)
	if chain, ok, err := cache.GetJSON[models.OptionChain](ctx, u.store, key); err == nil && ok {
		u.metrics.RecordCache("get", "hit")
		return chain, nil
	} else if err != nil {
		u.logger.Warn("cache read failed", applogger.String("key", key), applogger.Error(err))
	}
	u.metrics.RecordCache("get", "miss")

	v, err, _ := u.flight.Do(key, func() (interface{}, error) {
		fctx := context.WithoutCancel(ctx)
		res := u.source.FetchOptionChain(fctx, symbol)

		switch res.Status {
		case models.StatusInvalidSymbol:
			return nil, xhttp.InvalidSymbolError(symbol)
		case models.StatusSuccess:
			if chain, ok := options.Normalize(res.Raw, u.now()); ok {
				u.cacheWrite(fctx, key, chain, u.chainTTL)
				u.publish(fctx, &models.MarketEvent{
					Type:   models.EventChainFetched,
					Symbol: symbol,
					Price:  chain.SpotPrice,
					At:     u.now(),
				})
				return chain, nil
			}
			u.logger.Warn("chain not normalizable, synthesizing", applogger.String("symbol", symbol))
		default:
			u.logger.Info("upstream degraded, synthesizing chain",
				applogger.String("symbol", symbol),
				applogger.String("outcome", res.Status.String()),
			)
		}

		chain := u.synth.Generate(symbol)
		u.metrics.RecordSynthetic(symbol)
		u.cacheWrite(fctx, key, chain, u.chainTTL)
		u.publish(fctx, &models.MarketEvent{
			Type:     models.EventChainFetched,
			Symbol:   symbol,
			MockData: true,
			Price:    chain.SpotPrice,
			At:       u.now(),
		})
		return chain, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.OptionChain), nil
}

func (u *MarketDataUsecase) cacheWrite(ctx context.Context, key string, value any, ttl time.Duration) {
	if err := cache.SetJSON(ctx, u.store, key, value, ttl); err != nil {
		u.metrics.RecordCache("set", "error")
		u.logger.Warn("cache write failed", applogger.String("key", key), applogger.Error(err))
		return
	}
	u.metrics.RecordCache("set", "ok")
}

func (u *MarketDataUsecase) archiveSeries(ctx context.Context, symbol string, series models.TimeSeries) {
	if u.archive == nil {
		return
	}
	if err := u.archive.ArchiveSeries(ctx, symbol, series); err != nil {
		u.logger.Warn("series archive failed", applogger.String("symbol", symbol), applogger.Error(err))
	}
}

func (u *MarketDataUsecase) publish(ctx context.Context, ev *models.MarketEvent) {
	if u.events == nil {
		return
	}
	if err := u.events.Publish(ctx, ev); err != nil {
		u.logger.Warn("event publish failed", applogger.String("type", string(ev.Type)), applogger.Error(err))
	}
}

func statusError(status models.FetchStatus, symbol string, err error) error {
	switch status {
	case models.StatusRateLimited:
		return xhttp.RateLimitedError()
	case models.StatusNotFound:
		return xhttp.NotFoundError("data for symbol " + symbol)
	case models.StatusInvalidSymbol:
		return xhttp.InvalidSymbolError(symbol)
	default:
		return xhttp.UpstreamUnavailableError(err)
	}
}
