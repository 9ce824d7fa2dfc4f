package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"

	emissionservice "sulfurwatch/internal/emission/service"
	emissionstore "sulfurwatch/internal/emission/store"
	notifierservice "sulfurwatch/internal/notifier/service"
	alertstore "sulfurwatch/internal/notifier/store/alert"
	portstatestore "sulfurwatch/internal/notifier/store/portstate"
	"sulfurwatch/internal/platform/config"
	"sulfurwatch/internal/platform/kafka"
	"sulfurwatch/internal/platform/migrations"
	redisclient "sulfurwatch/internal/platform/redis"
	"sulfurwatch/internal/storage"
	httptransport "sulfurwatch/internal/transport/http"
	vesselservice "sulfurwatch/internal/vessel/service"
	vesselstore "sulfurwatch/internal/vessel/store"
	audit "sulfurwatch/pkg/platform/audit"
	"sulfurwatch/pkg/platform/audit/fallback"
	auditmemory "sulfurwatch/pkg/platform/audit/store/memory"
	auditpostgres "sulfurwatch/pkg/platform/audit/store/postgres"
	"sulfurwatch/pkg/platform/circuit"
)

// backend holds the stores selected for this process plus everything that
// must be probed by /health or released on shutdown.
type backend struct {
	vessels    vesselservice.Store
	alerts     notifierservice.AlertStore
	portStates notifierservice.PortStateStore
	readings   emissionservice.ReadingStore
	ledgerTx   emissionservice.LedgerTx
	sink       audit.Sink
	db         *sql.DB

	health  []httptransport.HealthCheck
	closers []func()
}

func (b *backend) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// newBackend picks Postgres when DATABASE_URL is set and the in-memory
// coordinator otherwise. Redis replaces the port-state store when configured.
// Events go to Kafka when brokers are set, with the local sink as fallback.
func newBackend(ctx context.Context, cfg config.Server, logger *slog.Logger) (*backend, error) {
	b := &backend{}
	if err := b.openStores(ctx, cfg, logger); err != nil {
		b.close()
		return nil, err
	}
	if err := b.openPortStates(ctx, cfg.Redis, logger); err != nil {
		b.close()
		return nil, err
	}
	if err := b.openSink(ctx, cfg.Kafka, logger); err != nil {
		b.close()
		return nil, err
	}
	return b, nil
}

func (b *backend) openStores(ctx context.Context, cfg config.Server, logger *slog.Logger) error {
	if cfg.DatabaseURL == "" {
		coord := storage.NewCoordinator()
		b.vessels = vesselstore.NewInMemory(coord)
		b.alerts = alertstore.NewInMemory(coord)
		b.portStates = portstatestore.NewInMemory(coord)
		b.readings = emissionstore.NewInMemory(coord)
		b.ledgerTx = emissionservice.NewShardedTx(coord, cfg.LedgerTxTimeout)
		logger.InfoContext(ctx, "using in-memory stores")
		return nil
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	b.closers = append(b.closers, func() { _ = db.Close() })
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	if err := migrations.Apply(ctx, db); err != nil {
		return err
	}

	b.db = db
	b.vessels = vesselstore.NewPostgres(db)
	b.alerts = alertstore.NewPostgres(db)
	b.portStates = portstatestore.NewPostgres(db)
	b.readings = emissionstore.NewPostgres(db)
	b.ledgerTx = newLedgerPostgresTx(db, cfg.LedgerTxTimeout)
	b.health = append(b.health, httptransport.HealthCheck{Name: "database", Check: db.PingContext})
	logger.InfoContext(ctx, "using postgres stores")
	return nil
}

func (b *backend) openPortStates(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) error {
	client, err := redisclient.New(ctx, cfg)
	if err != nil {
		return err
	}
	if client == nil {
		return nil
	}
	b.closers = append(b.closers, func() { _ = client.Close() })
	b.portStates = portstatestore.NewRedis(client.Client)
	b.health = append(b.health, httptransport.HealthCheck{Name: "redis", Check: client.Health})
	logger.InfoContext(ctx, "port states stored in redis")
	return nil
}

func (b *backend) openSink(ctx context.Context, cfg config.KafkaConfig, logger *slog.Logger) error {
	var local audit.Sink = auditmemory.NewInMemoryStore()
	if b.db != nil {
		local = auditpostgres.New(b.db)
	}
	if len(cfg.Brokers) == 0 {
		b.sink = local
		logger.InfoContext(ctx, "events kept locally", "postgres", b.db != nil)
		return nil
	}

	producer, err := kafka.NewProducer(cfg, logger)
	if err != nil {
		return err
	}
	b.closers = append(b.closers, producer.Close)
	if err := producer.EnsureTopics(ctx, cfg.Partitions, cfg.ReplicationFactor); err != nil {
		return err
	}
	b.sink = fallback.New(producer, local, circuit.New("kafka"), fallback.WithLogger(logger))
	b.health = append(b.health, httptransport.HealthCheck{Name: "kafka", Check: producer.Health})
	logger.InfoContext(ctx, "events published to kafka", "brokers", cfg.Brokers, "topic_prefix", cfg.TopicPrefix)
	return nil
}
