// Package app wires configuration, storage and the HTTP router together and
// owns the server lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/userhub/user-api/internal/api"
	"github.com/userhub/user-api/internal/api/handler"
	"github.com/userhub/user-api/internal/core/ports"
	"github.com/userhub/user-api/internal/infrastructure/db/instrumented"
	"github.com/userhub/user-api/internal/infrastructure/db/memory"
	mongostore "github.com/userhub/user-api/internal/infrastructure/db/mongo"
	redisstore "github.com/userhub/user-api/internal/infrastructure/db/redis"
	"github.com/userhub/user-api/internal/pkg/config"
)

const appName = "user-api"

// App represents the application instance.
type App struct {
	cfg     *config.Config
	log     zerolog.Logger
	server  *http.Server
	closers []func(context.Context) error
}

// store is the selected repository plus what the readiness probe and
// shutdown need to know about it.
type store struct {
	repo    ports.UserRepository
	checks  map[string]handler.Check
	closers []func(context.Context) error
}

// New connects the configured store and builds the HTTP server.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	router := api.NewRouter(api.Dependencies{
		Users:        instrumented.Wrap(cfg.Store, st.repo, log),
		Log:          log,
		ExposeErrors: !cfg.IsProduction(),
		Checks:       st.checks,
	})

	return &App{
		cfg: cfg,
		log: log,
		server: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		closers: st.closers,
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	switch cfg.Store {
	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  appName,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to mongo: %w", err)
		}
		repo := mongostore.NewUserRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo user store")
		return &store{
			repo: repo,
			checks: map[string]handler.Check{
				"mongo": func(ctx context.Context) error { return mongostore.Ping(ctx, db) },
			},
			closers: []func(context.Context) error{client.Disconnect},
		}, nil

	case config.StoreRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		log.Info().Str("addr", cfg.Redis.Addr).Str("prefix", cfg.Redis.Prefix).Msg("using redis user store")
		return &store{
			repo: redisstore.NewUserRepository(client, cfg.Redis.Prefix),
			checks: map[string]handler.Check{
				"redis": func(ctx context.Context) error { return client.Ping(ctx).Err() },
			},
			closers: []func(context.Context) error{
				func(context.Context) error { return client.Close() },
			},
		}, nil

	default:
		log.Info().Msg("using in-memory user store")
		return &store{repo: memory.NewUserRepository()}, nil
	}
}

// Handler returns the HTTP handler, for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully within
// the configured timeout.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", a.server.Addr).Str("store", a.cfg.Store).Msg("starting server")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			_ = a.closeStores(context.Background())
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	return a.Shutdown(shutdownCtx)
}

// Shutdown stops accepting requests, drains in-flight ones and releases the
// store connections.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown server: %w", err))
	}
	if err := a.closeStores(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) closeStores(ctx context.Context) error {
	var errs []error
	for _, closeFn := range a.closers {
		if err := closeFn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
