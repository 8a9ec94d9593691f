// Command convert regenerates the campaign dataset from the spreadsheet
// export. It keeps the registry of the existing document, rewrites
// metadata and campaigns, and publishes every campaign to Kafka when
// KAFKA_BROKERS is set.
//
// Paths come from CONVERT_CSV_PATH and CONVERT_JSON_PATH, optionally set in
// a .env file. Unset paths point at the data directory next to the binary,
// so the working directory does not matter.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	kafkaadapter "github.com/couchcryptid/epea-campaigns/internal/adapter/kafka"
	"github.com/couchcryptid/epea-campaigns/internal/config"
	"github.com/couchcryptid/epea-campaigns/internal/observability"
	"github.com/couchcryptid/epea-campaigns/internal/pipeline"
	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to read .env", "error", err)
	}

	cfg, err := config.LoadConvert()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var publisher pipeline.Publisher
	if cfg.PublishEnabled() {
		writer := kafkaadapter.NewWriter(cfg.KafkaBrokers(), cfg.Topic, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		publisher = writer
		logger.Info("kafka publishing enabled", "topic", cfg.Topic)
	}

	p := pipeline.New(
		pipeline.NewCSVExtractor(cfg.CSVPath, logger),
		pipeline.NewJSONLoader(cfg.JSONPath, logger),
		publisher,
		logger,
	)

	summary, err := p.Run(ctx)
	if err != nil {
		logger.Error("conversion failed", "error", err, "csv", cfg.CSVPath, "json", cfg.JSONPath)
		return 1
	}

	fmt.Printf("OK - generated %s\n", cfg.JSONPath)
	summary.Write(os.Stdout)
	return 0
}
