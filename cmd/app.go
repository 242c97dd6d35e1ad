package cmd

import (
	"context"
	"fmt"
	"time"

	"debt-planner/config"
	"debt-planner/logging"
	"debt-planner/repository"
	"debt-planner/service"
)

// app holds the long-lived dependencies built from configuration.
type app struct {
	debts     repository.DebtRepository
	cache     repository.CacheRepository
	explainer *service.AIService
	settings  service.PlannerSettings
	closers   []func() error
}

func newApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*app, error) {
	a := &app{settings: plannerSettings(cfg)}

	debts, err := a.openStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.debts = debts

	cache, err := a.openCache(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.cache = cache

	explainer, err := newExplainer(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.explainer = explainer
	a.closers = append(a.closers, explainer.Close)
	return a, nil
}

func (a *app) openStorage(ctx context.Context, cfg *config.Config, logger logging.Logger) (repository.DebtRepository, error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		repo, err := repository.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, repo.Close)
		logger.Info("Using SQLite storage", logging.F(logging.FieldDriver, "sqlite"), logging.F(logging.FieldPath, cfg.Storage.SQLitePath))
		return repo, nil
	case "postgres":
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		repo, err := repository.OpenPostgres(connectCtx, cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, repo.Close)
		logger.Info("Using PostgreSQL storage", logging.F(logging.FieldDriver, "postgres"))
		return repo, nil
	default:
		logger.Info("Using in-memory storage", logging.F(logging.FieldDriver, "memory"))
		return repository.NewDebtRepositoryMemory(), nil
	}
}

func (a *app) openCache(ctx context.Context, cfg *config.Config, logger logging.Logger) (repository.CacheRepository, error) {
	switch cfg.Cache.Driver {
	case "redis":
		cache := repository.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB, cfg.Cache.TTL)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := cache.Ping(pingCtx); err != nil {
			_ = cache.Close()
			return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Cache.RedisAddr, err)
		}
		a.closers = append(a.closers, cache.Close)
		logger.Info("Using Redis cache", logging.F(logging.FieldDriver, "redis"), logging.F(logging.FieldAddr, cfg.Cache.RedisAddr))
		return cache, nil
	case "none":
		return repository.NopCache{}, nil
	default:
		cache := repository.NewMemoryCache(cfg.Cache.TTL)
		a.closers = append(a.closers, cache.Close)
		return cache, nil
	}
}

// newExplainer returns a Gemini-backed explainer when AI is enabled and a
// fallback-only one otherwise.
func newExplainer(ctx context.Context, cfg *config.Config, logger logging.Logger) (*service.AIService, error) {
	apiKey := ""
	if cfg.AI.Enabled {
		apiKey = cfg.AI.APIKey
	}
	return service.NewAIService(ctx, apiKey, cfg.AI.Model, cfg.AI.Timeout, logger)
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && logger != nil {
			logger.WithError(err).Warn("Error during shutdown")
		}
	}
	a.closers = nil
}

func plannerSettings(cfg *config.Config) service.PlannerSettings {
	return service.PlannerSettings{
		CapMonths: cfg.Planner.CapMonths,
		Precision: cfg.Planner.Precision,
		MaxDebts:  cfg.Planner.MaxDebts,
	}
}
