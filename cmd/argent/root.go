package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"argentvault/internal/backend"
	"argentvault/internal/cli"
	"argentvault/internal/config"
	applog "argentvault/internal/log"
	"argentvault/internal/services"
)

var (
	flagBackend  string
	flagLogLevel string
)

// session holds what a command needs once the backend is open.
type session struct {
	budgets    *services.BudgetService
	visits     *services.VisitTracker
	newsletter *services.NewsletterService
	cleanup    backend.CleanupFunc

	factory    backend.Factory
	backendCfg backend.Config
}

var app *session

var rootCmd = &cobra.Command{
	Use:          "argent",
	Short:        "Personal budget calculator",
	Long:         "Calculate budgets, keep saved snapshots and get savings advice from the terminal.",
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cli.LoadEnvFile()
		logCfg := applog.DefaultConfig()
		logCfg.Level = applog.ParseLevel(flagLogLevel)
		logCfg.Component = applog.ComponentCLI
		logCfg.Output = os.Stderr
		logger := applog.New(logCfg)
		applog.SetDefault(logger)

		s, err := openSession(cmd.Context(), logger)
		if err != nil {
			return err
		}
		app = s
		return nil
	},
	PersistentPostRunE: func(*cobra.Command, []string) error {
		if app == nil || app.cleanup == nil {
			return nil
		}
		return app.cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagBackend, "backend", "b", "",
		"Storage backend: "+strings.Join(backend.GetBackendTypeStrings(), ", ")+" (default $DATA_BACKEND, else bolt)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn or error")
}

func openSession(ctx context.Context, logger *applog.Logger) (*session, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.Load()
	switch {
	case flagBackend != "":
		cfg.DataBackend = flagBackend
	case os.Getenv("DATA_BACKEND") == "":
		cfg.DataBackend = string(backend.BoltBackend)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	factory := backend.NewFactory(logger.WithComponent(applog.ComponentBackend).Logger)
	res, err := factory.CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", cfg.DataBackend, err)
	}

	var publisher services.EventPublisher
	if res.Publisher != nil {
		publisher = res.Publisher
	}
	return &session{
		budgets:    services.NewBudgetService(services.NewBudgetStore(res.Store, cfg.SeedSampleBudget), publisher),
		visits:     services.NewVisitTracker(res.Store),
		newsletter: services.NewNewsletterService(res.Store, cfg.NewsletterMaxSubscriptions),
		cleanup:    res.Cleanup,
		factory:    factory,
		backendCfg: backendCfg,
	}, nil
}
