package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/flood-risk-engine/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/flood-risk-engine/internal/adapter/kafka"
	"github.com/couchcryptid/flood-risk-engine/internal/config"
	"github.com/couchcryptid/flood-risk-engine/internal/domain"
	"github.com/couchcryptid/flood-risk-engine/internal/history"
	"github.com/couchcryptid/flood-risk-engine/internal/observability"
	"github.com/couchcryptid/flood-risk-engine/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	metrics := observability.NewMetrics()

	models := domain.DefaultModels()

	// Historical model is feature-flagged; without a database the
	// deterministic placeholder baseline stands in.
	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg.History.DBPath)
		if err != nil {
			logger.Error("failed to open history database", "path", cfg.History.DBPath, "error", err)
			os.Exit(1)
		}
		lookup := history.NewCachedLookup(store, cfg.History.CacheSize)
		models[domain.SourceHistorical] = history.NewModel(lookup, metrics.HistoryLookups, logger)
		metrics.HistoryEnabled.Set(1)
		logger.Info("history store enabled", "path", cfg.History.DBPath, "cache_size", cfg.History.CacheSize)
	} else {
		logger.Info("history store disabled, using placeholder baseline")
	}

	engine := domain.NewEngine(models, logger)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(engine, metrics, logger)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.Pipeline.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTP.Addr, p, engine, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start assessment pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Pipeline.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Error("history store close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
