// Command viewer serves the EPEA campaign grid and campaign detail views.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/couchcryptid/epea-campaigns/internal/adapter/http"
	"github.com/couchcryptid/epea-campaigns/internal/adapter/source"
	"github.com/couchcryptid/epea-campaigns/internal/config"
	"github.com/couchcryptid/epea-campaigns/internal/layout"
	"github.com/couchcryptid/epea-campaigns/internal/loader"
	"github.com/couchcryptid/epea-campaigns/internal/observability"
	"github.com/couchcryptid/epea-campaigns/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to read .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	lay, err := layout.Load(cfg.LayoutFile)
	if err != nil {
		logger.Error("failed to load layout", "error", err, "path", cfg.LayoutFile)
		os.Exit(1)
	}

	holder := loader.NewHolder()
	fetcher := source.NewFetcher(cfg.FetchTimeout, logger)
	handler := web.NewHandler(holder, cfg.IconCacheSize, cfg.DefaultLang, metrics, logger)
	srv := httpadapter.NewServer(cfg.HTTPAddr, holder, handler, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server. Pages answer 503 until the load below completes.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Load dataset and icon template.
	go func() {
		start := time.Now()
		st, err := loader.Load(ctx, fetcher, cfg.DataSource, cfg.TemplateSource, lay, logger)
		metrics.DatasetLoadDuration.Observe(time.Since(start).Seconds())
		holder.Set(st, err)
		if err != nil {
			metrics.DatasetLoaded.Set(0)
			logger.Error("startup load failed",
				"error", err,
				"data_source", cfg.DataSource,
				"template_source", cfg.TemplateSource,
			)
			return
		}
		metrics.DatasetLoaded.Set(1)
		metrics.DatasetCampaigns.Set(float64(len(st.Dataset.Campaigns)))
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
