package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sulfurwatch/internal/admin"
	emissionhandler "sulfurwatch/internal/emission/handler"
	emissionservice "sulfurwatch/internal/emission/service"
	notifierhandler "sulfurwatch/internal/notifier/handler"
	notifierservice "sulfurwatch/internal/notifier/service"
	"sulfurwatch/internal/platform/config"
	"sulfurwatch/internal/platform/httpserver"
	"sulfurwatch/internal/platform/logger"
	"sulfurwatch/internal/platform/metrics"
	"sulfurwatch/internal/seed"
	httptransport "sulfurwatch/internal/transport/http"
	vesselhandler "sulfurwatch/internal/vessel/handler"
	vesselservice "sulfurwatch/internal/vessel/service"
	"sulfurwatch/pkg/platform/audit/publisher"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	b, err := newBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.close()

	m := metrics.New(prometheus.DefaultRegisterer)
	events := publisher.NewPublisher(b.sink,
		publisher.WithAsyncBuffer(cfg.EventBuffer),
		publisher.WithLogger(log),
		publisher.WithMetrics(m),
	)
	defer func() {
		if err := events.Close(); err != nil {
			log.Warn("event publisher close failed", "error", err)
		}
	}()

	gate := admin.NewGate(cfg.Admin.Identity)
	vessels := vesselservice.New(b.vessels, gate,
		vesselservice.WithLogger(log),
		vesselservice.WithEmitter(events),
		vesselservice.WithMetrics(m),
	)
	notifier := notifierservice.New(b.alerts, b.portStates, gate,
		notifierservice.WithLogger(log),
		notifierservice.WithEmitter(events),
		notifierservice.WithMetrics(m),
	)
	ledger := emissionservice.New(vessels, notifier, b.readings, b.ledgerTx,
		emissionservice.WithLogger(log),
		emissionservice.WithEmitter(events),
		emissionservice.WithMetrics(m),
	)

	if cfg.SeedFile != "" {
		f, err := seed.Load(cfg.SeedFile)
		if err != nil {
			return err
		}
		if err := seed.Apply(gate.AsAdmin(ctx), f, vessels, notifier, log); err != nil {
			return err
		}
	}

	authn := admin.NewAuthenticator(cfg.Admin.Identity, cfg.Admin.TokenHash,
		admin.NewTokenValidator(cfg.Admin.JWTSigningKey), log)
	router := httptransport.NewRouter(httptransport.Config{
		Logger:         log,
		Metrics:        m,
		Authenticate:   authn.Authenticate,
		MetricsHandler: promhttp.Handler(),
		HealthChecks:   b.health,
	},
		vesselhandler.New(vessels, log),
		notifierhandler.New(notifier, log),
		emissionhandler.New(ledger, log),
	)

	srv := httpserver.New(cfg.Addr, router)
	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting sulfurwatch", "addr", cfg.Addr, "admin", gate.Identity())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
