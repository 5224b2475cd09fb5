package di

import (
	"fmt"

	"github.com/google/wire"

	"MarketPulse/internal/domain/repository"
	"MarketPulse/internal/handler"
	"MarketPulse/internal/handler/api"
	"MarketPulse/internal/handler/ws"
	repoimpl "MarketPulse/internal/repository"
	"MarketPulse/internal/service/alphavantage"
	"MarketPulse/internal/service/predictor"
	"MarketPulse/internal/service/synth"
	"MarketPulse/internal/usecase"
	"MarketPulse/pkg/cache"
	"MarketPulse/pkg/clickhouse"
	"MarketPulse/pkg/config"
	xhttp "MarketPulse/pkg/http"
	"MarketPulse/pkg/kafka"
	applogger "MarketPulse/pkg/logger"
	"MarketPulse/pkg/metrics"
	"MarketPulse/pkg/postgres"
	"MarketPulse/pkg/server"
)

// ProviderSet wires the whole application graph.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	ProvideCacheStore,
	ProvideMarketSource,
	ProvideSynthesizer,
	ProvidePredictor,
	ProvidePostgresClient,
	ProvidePostgresStore,
	ProvideQuoteArchive,
	ProvideHub,
	ProvideEventPublisher,
	ProvideMarketDataUsecase,
	ProvidePredictionUsecase,
	ProvideFinancialDataUsecase,
	ProvideRootHandler,
	ProvideServer,
	ProvideApp,
	wire.Bind(new(repository.Metrics), new(*metrics.Recorder)),
	wire.Bind(new(repository.PredictionStore), new(*repoimpl.PostgresStore)),
	wire.Bind(new(repository.FinancialDataStore), new(*repoimpl.PostgresStore)),
)

func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

func ProvideCacheStore(cfg *config.Config, l *applogger.Logger) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case "redis":
		return cache.NewRedis(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)
	case "memory":
		opts := []cache.MemoryOption{}
		if cfg.Cache.MaxEntries > 0 {
			opts = append(opts, cache.WithMaxSize(cfg.Cache.MaxEntries))
		}
		return cache.NewMemory(opts...), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

func ProvideMarketSource(cfg *config.Config, l *applogger.Logger, m *metrics.Recorder) repository.MarketDataSource {
	return alphavantage.New(
		cfg.AlphaVantage.APIKey,
		cfg.AlphaVantage.BaseURL,
		cfg.AlphaVantage.QuoteTimeout,
		cfg.AlphaVantage.ChainTimeout,
		l, m,
	)
}

func ProvideSynthesizer() *synth.Synthesizer {
	return synth.New()
}

func ProvidePredictor(cfg *config.Config, l *applogger.Logger) repository.Predictor {
	return predictor.New(cfg.Predictor.URL, cfg.Predictor.Timeout, l)
}

func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, error) {
	return postgres.NewClient(
		postgres.WithDSN(cfg.Postgres.DSN),
		postgres.WithPool(cfg.Postgres.MaxOpenConns, cfg.Postgres.MaxIdleConns, cfg.Postgres.ConnMaxLifetime),
	)
}

func ProvidePostgresStore(client *postgres.Client, cfg *config.Config) (*repoimpl.PostgresStore, error) {
	return repoimpl.NewPostgresStore(client, cfg.Postgres.WriteTimeout)
}

func ProvideQuoteArchive(cfg *config.Config) (repository.QuoteArchive, error) {
	if !cfg.ClickHouse.Enabled {
		return repoimpl.NoopArchive{}, nil
	}
	client, err := clickhouse.NewClient(
		clickhouse.WithHost(cfg.ClickHouse.Host),
		clickhouse.WithPort(cfg.ClickHouse.Port),
		clickhouse.WithDatabase(cfg.ClickHouse.Database),
		clickhouse.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		clickhouse.WithAsyncInsert(cfg.ClickHouse.AsyncInsert),
		clickhouse.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
	)
	if err != nil {
		return nil, err
	}
	return repoimpl.NewClickHouseArchive(client)
}

func ProvideHub(l *applogger.Logger) *ws.Hub {
	return ws.NewHub(l)
}

func ProvideEventPublisher(cfg *config.Config, hub *ws.Hub) (repository.EventPublisher, error) {
	sinks := []repository.EventPublisher{hub}
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(
			kafka.WithBrokers(cfg.Kafka.Brokers),
			kafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
			kafka.WithCompression(cfg.Kafka.Compression),
			kafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
			kafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
			kafka.WithAsync(cfg.Kafka.Async),
			kafka.WithHashByKey(true),
		)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, repoimpl.NewKafkaPublisher(producer, cfg.Kafka.Topic))
	}
	return repoimpl.NewFanoutPublisher(sinks...), nil
}

func ProvideMarketDataUsecase(
	cfg *config.Config,
	source repository.MarketDataSource,
	store cache.Store,
	syn *synth.Synthesizer,
	archive repository.QuoteArchive,
	events repository.EventPublisher,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.MarketDataUsecase {
	return usecase.NewMarketDataUsecase(
		source, store, syn, archive, events, m, l,
		cfg.Cache.QuoteTTL, cfg.Cache.ChainTTL,
	)
}

func ProvidePredictionUsecase(
	pred repository.Predictor,
	store repository.PredictionStore,
	events repository.EventPublisher,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.PredictionUsecase {
	return usecase.NewPredictionUsecase(pred, store, events, m, l)
}

func ProvideFinancialDataUsecase(store repository.FinancialDataStore) *usecase.FinancialDataUsecase {
	return usecase.NewFinancialDataUsecase(store)
}

func ProvideRootHandler(
	market *usecase.MarketDataUsecase,
	predictions *usecase.PredictionUsecase,
	financial *usecase.FinancialDataUsecase,
	hub *ws.Hub,
	pg *postgres.Client,
) *handler.Root {
	return handler.NewRoot(
		api.NewMarketHandler(market, predictions, hub),
		api.NewFinancialHandler(financial),
		api.NewHealthHandler(map[string]api.HealthChecker{
			"postgres": pg,
		}),
	)
}

func ProvideServer(cfg *config.Config, root *handler.Root, l *applogger.Logger) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
	}
	if !cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetricsPath(""))
	} else if cfg.Metrics.Path != "" {
		opts = append(opts, xhttp.WithMetricsPath(cfg.Metrics.Path))
	}
	return xhttp.NewServer(root, l, opts...)
}

func ProvideApp(
	cfg *config.Config,
	srv *xhttp.Server,
	hub *ws.Hub,
	l *applogger.Logger,
	store cache.Store,
	pg *postgres.Client,
	archive repository.QuoteArchive,
	events repository.EventPublisher,
) *server.App {
	return server.NewApp(srv, hub, l, cfg.Server.ShutdownTimeout,
		server.Closer{Name: "events", Close: events.Close},
		server.Closer{Name: "archive", Close: archive.Close},
		server.Closer{Name: "cache", Close: store.Close},
		server.Closer{Name: "postgres", Close: pg.Close},
	)
}
