package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"PulseBoard/internal/usecase"
	pkghttp "PulseBoard/pkg/http"
	"PulseBoard/pkg/logger"
)

// App owns the process lifecycle: hydrate the cache, start the sync loop
// and HTTP server, then shut everything down in reverse order on SIGINT or
// SIGTERM.
type App struct {
	log      *logger.Logger
	http     *pkghttp.Server
	hydrator *usecase.Hydrator
	ingestor *usecase.Ingestor
	syncer   *usecase.Syncer

	shutdownTimeout time.Duration
	closers         []io.Closer
}

func New(
	log *logger.Logger,
	http *pkghttp.Server,
	hydrator *usecase.Hydrator,
	ingestor *usecase.Ingestor,
	syncer *usecase.Syncer,
	shutdownTimeout time.Duration,
	closers []io.Closer,
) *App {
	return &App{
		log:             log,
		http:            http,
		hydrator:        hydrator,
		ingestor:        ingestor,
		syncer:          syncer,
		shutdownTimeout: shutdownTimeout,
		closers:         closers,
	}
}

// Run blocks until the process receives a termination signal. Hydration
// failure aborts startup: serving from an empty cache over existing data
// would present as silent data loss.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	maxAlertID, err := a.hydrator.Hydrate(ctx)
	if err != nil {
		return fmt.Errorf("hydrate: %w", err)
	}
	a.ingestor.SeedAlertID(maxAlertID + 1)

	syncDone := make(chan struct{})
	go func() {
		defer close(syncDone)
		a.syncer.Run(ctx)
	}()

	if err := a.http.Start(); err != nil {
		return fmt.Errorf("start http: %w", err)
	}
	a.log.Info("service started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer shutdownCancel()
	if err := a.http.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown failed", logger.Error(err))
	}

	// Stop the sync loop; it performs a final flush before exiting.
	cancel()
	select {
	case <-syncDone:
	case <-time.After(a.shutdownTimeout):
		a.log.Warn("final sync flush timed out")
	}

	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.log.Error("close failed", logger.Error(err))
		}
	}
	a.log.Info("service stopped")
	return nil
}
