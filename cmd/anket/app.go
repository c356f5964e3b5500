package main

import (
	"context"
	"log/slog"

	"github.com/rehber-app/anket-client/internal/cache"
	"github.com/rehber-app/anket-client/internal/client"
	"github.com/rehber-app/anket-client/internal/config"
	"github.com/rehber-app/anket-client/internal/events"
	"github.com/rehber-app/anket-client/internal/repositories"
	"github.com/rehber-app/anket-client/internal/repositories/postgres"
	"github.com/rehber-app/anket-client/internal/services"
	"github.com/rehber-app/anket-client/internal/utils"
	"github.com/rehber-app/anket-client/pkg"
)

// app is everything a command needs, built once from the environment.
type app struct {
	cfg     *config.Config
	logger  utils.Logger
	slog    *slog.Logger
	manager services.ServiceManager
	journal repositories.SubmissionJournal
	closers []func() error
}

// newApp wires the backend client, the optional redis survey cache, the
// optional postgres journal and the event publisher. Redis and postgres are
// skipped when their URLs are empty; a configured but unreachable store is
// logged and skipped too, so the client keeps working against the backend.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	logger := utils.NewLogger(cfg.Environment)
	a := &app{
		cfg:     cfg,
		logger:  logger,
		slog:    utils.ToSlogLogger(logger),
		journal: repositories.NoopJournal{},
	}

	api := client.New(cfg.APIBaseURL,
		client.WithToken(cfg.APIToken),
		client.WithTimeout(cfg.HTTPTimeout),
		client.WithLogger(logger),
	)

	deps := services.Dependencies{
		API:    api,
		Logger: a.slog,
		Submission: services.SubmissionConfig{
			UseLegacyEndpoint: cfg.UseLegacySubmit(),
		},
	}

	if cfg.RedisURL != "" {
		rdb, err := pkg.NewRedisClient(ctx, cfg)
		if err != nil {
			logger.Warn("Survey cache disabled", "error", err)
		} else {
			a.closers = append(a.closers, rdb.Close)
			deps.SurveyCache = cache.NewSurveyCache(cache.NewRedisCache(rdb, logger), cfg.SurveyCacheTTL, logger)
			logger.Info("Survey cache enabled", "ttl", cfg.SurveyCacheTTL.String())
		}
	}

	if cfg.DatabaseURL != "" {
		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			logger.Warn("Submission journal disabled", "error", err)
		} else {
			a.closers = append(a.closers, func() error { return pkg.CloseDatabase(db) })
			a.journal = postgres.NewSubmissionJournalPostgreSQL(db)
			logger.Info("Submission journal enabled")
		}
	}
	deps.Journal = a.journal

	publisher, err := cfg.Events.CreateEventPublisher(a.slog)
	if err != nil {
		logger.Error("Failed to create event publisher, using mock", "error", err)
		publisher = events.NewMockEventPublisher(a.slog)
	}
	a.closers = append(a.closers, publisher.Close)
	deps.Publisher = publisher

	a.manager = services.NewServiceManager(deps)
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("Close failed", "error", err)
		}
	}
}
