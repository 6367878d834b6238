// Package server runs the API and diagnostics listeners and owns the
// shutdown order: listeners first, then the store.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/skillshare/internal/config"
	"github.com/SergeyParamoshkin/skillshare/internal/metrics"
	"github.com/SergeyParamoshkin/skillshare/internal/store"
	"github.com/SergeyParamoshkin/skillshare/internal/store/memstore"
)

const shutdownTimeout = 5 * time.Second

// App is one running instance of the service.
type App struct {
	sugarLogger *zap.SugaredLogger
	config      config.Config
	db          store.Database
	metrics     *metrics.Metrics
}

// New opens the configured store. The caller must call Run, which closes it.
func New(ctx context.Context, cfg config.Config, logger *zap.SugaredLogger) (*App, error) {
	db, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	m, err := metrics.New(config.ServiceName)
	if err != nil {
		_ = db.Close(ctx)
		return nil, err
	}

	return &App{sugarLogger: logger, config: cfg, db: db, metrics: m}, nil
}

func OpenStore(ctx context.Context, cfg config.Config) (store.Database, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return memstore.New(), nil
	case config.StoreMongo:
		return store.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.StoreTimeout)
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	api := &http.Server{
		Addr: a.config.Addr,
		Handler: NewRouter(Deps{
			DB:             a.db,
			Logger:         a.sugarLogger,
			Metrics:        a.metrics,
			AllowedOrigins: a.config.AllowedOrigins,
		}),
	}
	diag := &http.Server{
		Addr:    a.config.DiagAddr,
		Handler: NewDiagRouter(a.metrics),
	}

	errs := make(chan error, 2)
	for _, srv := range []*http.Server{api, diag} {
		srv := srv
		go func() {
			a.sugarLogger.Infow("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs <- fmt.Errorf("listen on %s: %w", srv.Addr, err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.sugarLogger.Infow("shutting down")
	case runErr = <-errs:
		a.sugarLogger.Errorw("server failed", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, srv := range []*http.Server{api, diag} {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.sugarLogger.Errorw("shutdown", "addr", srv.Addr, "error", err)
		}
	}
	if err := a.db.Close(shutdownCtx); err != nil {
		a.sugarLogger.Errorw("problem disconnecting from store", "error", err)
	}

	return runErr
}
