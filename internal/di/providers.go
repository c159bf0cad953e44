package di

import (
	"context"
	"fmt"
	"io"
	"time"

	"PulseBoard/internal/cache"
	domainrepo "PulseBoard/internal/domain/repository"
	"PulseBoard/internal/handler/api"
	"PulseBoard/internal/repository"
	"PulseBoard/internal/usecase"
	respcache "PulseBoard/pkg/cache"
	"PulseBoard/pkg/clickhouse"
	"PulseBoard/pkg/config"
	pkghttp "PulseBoard/pkg/http"
	"PulseBoard/pkg/kafka"
	"PulseBoard/pkg/logger"
	"PulseBoard/pkg/metrics"
	"PulseBoard/pkg/server"
)

func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

func ProvideMetrics() domainrepo.Metrics {
	return metrics.New()
}

func ProvideClickHouse(cfg *config.Config) (*clickhouse.Client, error) {
	return clickhouse.NewClient(
		clickhouse.WithHost(cfg.ClickHouse.Host),
		clickhouse.WithPort(cfg.ClickHouse.Port),
		clickhouse.WithDatabase(cfg.ClickHouse.Database),
		clickhouse.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		clickhouse.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		clickhouse.WithHTTP(cfg.ClickHouse.UseHTTP),
		clickhouse.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
}

// ProvideStateStore builds the state repository and ensures the schema
// exists before anything reads or writes.
func ProvideStateStore(client *clickhouse.Client) (domainrepo.StateStore, error) {
	repo := repository.NewStateRepository(client)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := repo.InitSchema(ctx); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return repo, nil
}

func ProvideAlertStore(client *clickhouse.Client) domainrepo.AlertStore {
	return repository.NewAlertRepository(client)
}

func ProvideSetupStore(client *clickhouse.Client) domainrepo.SetupStore {
	return repository.NewSetupRepository(client)
}

func ProvideSettingsStore(client *clickhouse.Client) domainrepo.SettingsStore {
	return repository.NewSettingsRepository(client)
}

// ProvideAlertPublisher returns a Kafka-backed publisher, or nil when the
// alert stream is disabled.
func ProvideAlertPublisher(cfg *config.Config, log *logger.Logger) (domainrepo.AlertPublisher, error) {
	if !cfg.Kafka.Enabled {
		log.Info("kafka alert stream disabled")
		return nil, nil
	}
	producer, err := kafka.NewProducer(
		kafka.WithBrokers(cfg.Kafka.Brokers),
		kafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		kafka.WithCompression(cfg.Kafka.Compression),
		kafka.WithBatchTimeout(cfg.Kafka.BatchTimeout),
		kafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return repository.NewKafkaAlertPublisher(producer, cfg.Kafka.Topic), nil
}

// ProvideSnapshotCache prefers Redis and falls back to the in-process
// cache when Redis is disabled or unreachable.
func ProvideSnapshotCache(cfg *config.Config, log *logger.Logger) respcache.Service {
	if cfg.Redis.Enabled {
		redis, err := respcache.NewRedisCache(respcache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err == nil {
			return redis
		}
		log.Warn("redis unavailable, using in-memory snapshot cache", logger.Error(err))
	}
	return respcache.NewMemoryCache()
}

func ProvideStore() *cache.Store {
	return cache.NewStore()
}

func ProvideDirtyTracker() *cache.DirtyTracker {
	return cache.NewDirtyTracker()
}

func ProvideAlertLog(cfg *config.Config) *cache.AlertLog {
	return cache.NewAlertLog(cfg.Engine.AlertLogCap)
}

func ProvideDetector(store *cache.Store, cfg *config.Config) *usecase.Detector {
	return usecase.NewDetector(store, cfg.Engine.DecayWindow)
}

func ProvideIngestor(
	store *cache.Store,
	dirty *cache.DirtyTracker,
	alerts *cache.AlertLog,
	detector *usecase.Detector,
	publisher domainrepo.AlertPublisher,
	m domainrepo.Metrics,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.Ingestor {
	return usecase.NewIngestor(store, dirty, alerts, detector, publisher, m, log, cfg.Engine.DecayWindow)
}

func ProvideSyncer(
	store *cache.Store,
	dirty *cache.DirtyTracker,
	alerts *cache.AlertLog,
	state domainrepo.StateStore,
	alertDB domainrepo.AlertStore,
	setupDB domainrepo.SetupStore,
	settings domainrepo.SettingsStore,
	m domainrepo.Metrics,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.Syncer {
	return usecase.NewSyncer(store, dirty, alerts, state, alertDB, setupDB, settings, m, log,
		cfg.Engine.SyncInterval, cfg.Engine.AlertSyncBatch)
}

func ProvideHydrator(
	store *cache.Store,
	dirty *cache.DirtyTracker,
	alerts *cache.AlertLog,
	state domainrepo.StateStore,
	alertDB domainrepo.AlertStore,
	setupDB domainrepo.SetupStore,
	settings domainrepo.SettingsStore,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.Hydrator {
	return usecase.NewHydrator(store, dirty, alerts, state, alertDB, setupDB, settings, log, cfg.Engine.AlertLogCap)
}

func ProvideFeeds(
	store *cache.Store,
	dirty *cache.DirtyTracker,
	alerts *cache.AlertLog,
	snapshots respcache.Service,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.Feeds {
	return usecase.NewFeeds(store, dirty, alerts, snapshots, cfg.Redis.SnapshotTTL, log, cfg.Engine.DecayWindow)
}

func ProvideHandlers(
	ingestor *usecase.Ingestor,
	feeds *usecase.Feeds,
	state domainrepo.StateStore,
	log *logger.Logger,
) []pkghttp.Handler {
	return []pkghttp.Handler{
		api.NewWebhookHandler(ingestor, log),
		api.NewFeedsHandler(feeds, state, log),
	}
}

func ProvideHTTPServer(handlers []pkghttp.Handler, cfg *config.Config) *pkghttp.Server {
	opts := []pkghttp.ServerOption{
		pkghttp.WithPort(cfg.Server.Port),
		pkghttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
	}
	if !cfg.Metrics.Enabled {
		opts = append(opts, pkghttp.WithMetricsPath(""))
	} else if cfg.Metrics.Path != "" {
		opts = append(opts, pkghttp.WithMetricsPath(cfg.Metrics.Path))
	}
	return pkghttp.NewServer(handlers, opts...)
}

func ProvideApp(
	log *logger.Logger,
	httpServer *pkghttp.Server,
	hydrator *usecase.Hydrator,
	ingestor *usecase.Ingestor,
	syncer *usecase.Syncer,
	client *clickhouse.Client,
	publisher domainrepo.AlertPublisher,
	snapshots respcache.Service,
	cfg *config.Config,
) *server.App {
	closers := []io.Closer{snapshots, client}
	if publisher != nil {
		closers = append(closers, publisher)
	}
	shutdown := cfg.Server.ShutdownTimeout
	if shutdown <= 0 {
		shutdown = 10 * time.Second
	}
	return server.New(log, httpServer, hydrator, ingestor, syncer, shutdown, closers)
}
