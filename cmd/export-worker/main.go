package main

import (
	"context"
	"errors"
	"os"
	"time"

	"argentvault/internal/amqp"
	"argentvault/internal/backend"
	"argentvault/internal/cli"
	applog "argentvault/internal/log"
	"argentvault/internal/worker"
)

const statsInterval = 10 * time.Minute

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), applog.ComponentWorker)
	logger.Info("Starting export-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required by the export worker",
			applog.FieldErrorType, applog.ErrorTypeConfiguration)
		os.Exit(1)
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}
	exp, err := backend.NewFactory(logger.WithComponent(applog.ComponentBackend).Logger).
		CreateExporter(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to initialize exporter", applog.FieldError, err)
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(context.Context) {
		if err := client.Close(); err != nil {
			logger.Error("AMQP close error", applog.FieldError, err)
		}
	})

	if rows, err := exp.Lister.ListExported(ctx); err != nil {
		logger.Warn("Could not read exported budgets", applog.FieldError, err, "exporter", exp.Kind)
	} else {
		logger.Info("Exporter ready", "exporter", exp.Kind, "exported_budgets", len(rows))
	}

	w := worker.NewExportWorker(exp.Exporter)
	go func() {
		ticker := time.NewTicker(statsInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s := w.Stats()
				logger.Info("Export worker stats", "exported", s.Exported, "removed", s.Removed, "failed", s.Failed)
			}
		}
	}()

	if err := client.Consume(ctx, w.HandleEvent); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", applog.FieldError, err)
		_ = client.Close()
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	s := w.Stats()
	logger.Info("Worker shutdown complete", "exported", s.Exported, "removed", s.Removed, "failed", s.Failed)
}
