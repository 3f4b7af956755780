package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"argentvault/internal/backend"
	"argentvault/internal/cache"
	"argentvault/internal/cli"
	"argentvault/internal/content"
	apphttp "argentvault/internal/http"
	applog "argentvault/internal/log"
	"argentvault/internal/services"
	"argentvault/web"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}
	res, err := backend.NewFactory(logger.WithComponent(applog.ComponentBackend).Logger).
		CreateBackend(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", applog.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	cacheManager := cache.NewManager(logger.WithComponent(applog.ComponentCache).Logger)
	if res.Cache != nil {
		cacheManager.Register("storage", res.Cache)
		cacheManager.StartCleanup(time.Minute)
	}

	var publisher services.EventPublisher
	if res.Publisher != nil {
		publisher = res.Publisher
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Budgets:            services.NewBudgetService(services.NewBudgetStore(res.Store, cfg.SeedSampleBudget), publisher),
		Visits:             services.NewVisitTracker(res.Store),
		Newsletter:         services.NewNewsletterService(res.Store, cfg.NewsletterMaxSubscriptions),
		Content:            services.NewContentService(content.NewFSSource(web.DataFS)),
		Logger:             logger,
		Registry:           registry,
		Ready:              res.Ready,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		TrustedProxies:     cfg.TrustedProxies,
	})

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cacheManager.Stop()
		if err := res.Cleanup(); err != nil {
			logger.Error("Backend cleanup error", applog.FieldError, err)
		}
	})

	go func() {
		logger.Info("Starting argentvault server",
			"port", cfg.Port,
			"backend", cfg.DataBackend,
			"amqp", res.Publisher != nil,
			"seed_sample", cfg.SeedSampleBudget)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
			os.Exit(1)
		}
	}()

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
