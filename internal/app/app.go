// Package app wires configuration, storage and the HTTP router into a
// runnable service.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/accounts/account-service/internal/api"
	"github.com/accounts/account-service/internal/core/ports"
	"github.com/accounts/account-service/internal/core/service"
	"github.com/accounts/account-service/internal/core/validation"
	"github.com/accounts/account-service/internal/infrastructure/db/memory"
	"github.com/accounts/account-service/internal/infrastructure/db/mongo"
	"github.com/accounts/account-service/internal/infrastructure/db/postgres"
	"github.com/accounts/account-service/internal/infrastructure/db/redis"
	"github.com/accounts/account-service/internal/infrastructure/queue"
	"github.com/accounts/account-service/internal/pkg/config"
)

type App struct {
	cfg    *config.Config
	log    zerolog.Logger
	router *echo.Echo
	audit  *queue.Dispatcher

	// closers release store connections in reverse order of opening.
	closers []func(context.Context) error
}

type stores struct {
	accounts ports.AccountRepository
	audit    ports.AuditRepository
}

func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	st, err := a.openStores(ctx)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	var tracker ports.SigninAttemptTracker
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
		tracker = redis.NewAttemptTracker(rdb, cfg.Auth.SigninFailureWindow)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("signin failure tracking enabled")
	}

	a.audit = queue.NewDispatcher(cfg.Audit.Workers, st.audit, log.With().Str("component", "audit").Logger())
	a.audit.Start()

	accounts, err := service.NewAccountService(st.accounts, validation.New(), log, service.AccountServiceOptions{
		BcryptCost:       cfg.Auth.BcryptCost,
		FailureThreshold: cfg.Auth.SigninFailureThreshold,
		Tracker:          tracker,
		Audit:            a.audit,
	})
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	tokens, err := service.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	a.router, err = api.NewRouter(api.Dependencies{
		Accounts: accounts,
		Tokens:   tokens,
		Log:      log,
	})
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	return a, nil
}

func (a *App) openStores(ctx context.Context) (stores, error) {
	switch a.cfg.Store.Driver {
	case config.DriverMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: a.cfg.Mongo.URI, Database: a.cfg.Mongo.Database})
		if err != nil {
			return stores{}, err
		}
		a.closers = append(a.closers, client.Disconnect)

		repo := mongo.NewAccountRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return stores{}, err
		}
		a.log.Info().Str("database", a.cfg.Mongo.Database).Msg("using mongo store")
		return stores{accounts: repo, audit: mongo.NewAuditRepository(db)}, nil

	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, postgres.Config{DSN: a.cfg.Postgres.DSN})
		if err != nil {
			return stores{}, err
		}
		a.closers = append(a.closers, func(context.Context) error { pool.Close(); return nil })

		if err := postgres.Migrate(ctx, pool); err != nil {
			return stores{}, err
		}
		a.log.Info().Msg("using postgres store")
		return stores{accounts: postgres.NewAccountRepository(pool), audit: postgres.NewAuditRepository(pool)}, nil

	case config.DriverMemory:
		a.log.Warn().Msg("using in-memory store, accounts are lost on restart")
		return stores{accounts: memory.NewAccountRepository(), audit: memory.NewAuditRepository()}, nil
	}
	return stores{}, fmt.Errorf("app: unknown store driver %q", a.cfg.Store.Driver)
}

func (a *App) Router() *echo.Echo {
	return a.router
}

// Close drains the audit queue, then releases connections. If the drain does
// not finish before ctx expires, connections stay open so in-flight audit
// writes are not cut off; Close may be called again to finish.
func (a *App) Close(ctx context.Context) error {
	if a.audit != nil {
		if err := a.audit.Close(ctx); err != nil {
			a.log.Warn().Err(err).Msg("audit queue not drained, leaving store connections open")
			return fmt.Errorf("audit: %w", err)
		}
	}

	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
