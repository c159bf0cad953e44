package usecase

import (
	"context"
	"sync/atomic"
	"time"

	"PulseBoard/internal/cache"
	"PulseBoard/internal/domain/models"
	"PulseBoard/internal/domain/repository"
	"PulseBoard/pkg/logger"
)

// Syncer flushes dirty cache entries to durable storage on an interval.
// Each scope flushes independently; a slow flush of one scope never blocks
// another, and a scope skips a tick while its previous flush is still in
// flight. Failed writes keep their entries dirty for the next tick.
type Syncer struct {
	store  *cache.Store
	dirty  *cache.DirtyTracker
	alerts *cache.AlertLog

	state    repository.StateStore
	alertDB  repository.AlertStore
	setupDB  repository.SetupStore
	settings repository.SettingsStore

	metrics repository.Metrics
	log     *logger.Logger

	interval   time.Duration
	alertBatch int
	inflight   map[models.Kind]*atomic.Bool
}

func NewSyncer(
	store *cache.Store,
	dirty *cache.DirtyTracker,
	alerts *cache.AlertLog,
	state repository.StateStore,
	alertDB repository.AlertStore,
	setupDB repository.SetupStore,
	settings repository.SettingsStore,
	metrics repository.Metrics,
	log *logger.Logger,
	interval time.Duration,
	alertBatch int,
) *Syncer {
	s := &Syncer{
		store:      store,
		dirty:      dirty,
		alerts:     alerts,
		state:      state,
		alertDB:    alertDB,
		setupDB:    setupDB,
		settings:   settings,
		metrics:    metrics,
		log:        log,
		interval:   interval,
		alertBatch: alertBatch,
		inflight:   make(map[models.Kind]*atomic.Bool),
	}
	for _, kind := range syncScopes {
		s.inflight[kind] = &atomic.Bool{}
	}
	return s
}

var syncScopes = []models.Kind{
	models.KindStructure, models.KindMomentum, models.KindZones, models.KindMultiAlgo,
	models.KindSymbols, models.KindSetups, models.KindSettings, models.KindAlerts,
}

// Run flushes on every tick until the context is cancelled, then performs a
// final synchronous flush so a clean shutdown loses nothing.
func (s *Syncer) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.Flush(context.Background())
			return
		case <-ticker.C:
			s.SyncAll(ctx)
		}
	}
}

// Flush runs one synchronous flush of every scope, skipping scopes that are
// mid-flush elsewhere.
func (s *Syncer) Flush(ctx context.Context) {
	for _, kind := range syncScopes {
		guard := s.inflight[kind]
		if !guard.CompareAndSwap(false, true) {
			continue
		}
		s.flush(ctx, kind)
		guard.Store(false)
	}
}

// SyncAll kicks off one flush per scope. Scopes still flushing from a
// previous call are skipped.
func (s *Syncer) SyncAll(ctx context.Context) {
	for _, kind := range syncScopes {
		guard := s.inflight[kind]
		if !guard.CompareAndSwap(false, true) {
			s.log.Debug("sync still in flight, skipping", logger.String("kind", string(kind)))
			continue
		}
		go func(kind models.Kind) {
			defer guard.Store(false)
			s.flush(ctx, kind)
		}(kind)
	}
}

func (s *Syncer) flush(ctx context.Context, kind models.Kind) {
	start := time.Now()
	var failures int
	if kind == models.KindAlerts {
		failures = s.flushAlerts(ctx)
		s.metrics.SetDirtyDepth(string(kind), s.alerts.UnsyncedCount())
	} else {
		failures = s.flushDirty(ctx, kind)
		s.metrics.SetDirtyDepth(string(kind), s.dirty.Depth(kind))
	}
	s.metrics.RecordSyncBatch(string(kind), time.Since(start).Seconds(), failures)
}

// flushDirty writes every dirty entry of kind, continuing past individual
// failures. An entry is cleared only when its generation did not move while
// the write was in flight.
func (s *Syncer) flushDirty(ctx context.Context, kind models.Kind) int {
	snap := s.dirty.Snapshot(kind)
	if len(snap) == 0 {
		return 0
	}

	failures := 0
	for key, gen := range snap {
		if err := s.persist(ctx, kind, key); err != nil {
			failures++
			s.log.Error("sync write failed",
				logger.String("kind", string(kind)),
				logger.String("key", key),
				logger.Error(err),
			)
			continue
		}
		s.dirty.ClearIfUnchanged(kind, key, gen)
	}

	s.log.Debug("sync batch done",
		logger.String("kind", string(kind)),
		logger.Int("entries", len(snap)),
		logger.Int("failures", failures),
	)
	return failures
}

// persist writes the current cached value for one dirty key. A key whose
// value vanished from the cache is treated as already persisted.
func (s *Syncer) persist(ctx context.Context, kind models.Kind, key string) error {
	switch kind {
	case models.KindStructure:
		if rec := s.store.Structure(key); rec != nil {
			return s.state.UpsertStructure(ctx, rec)
		}
	case models.KindMomentum:
		if rec := s.store.Momentum(key); rec != nil {
			return s.state.UpsertMomentum(ctx, rec)
		}
	case models.KindZones:
		if rec := s.store.Zones(key); rec != nil {
			return s.state.UpsertZones(ctx, rec)
		}
	case models.KindMultiAlgo:
		if rec := s.store.Algo(key); rec != nil {
			return s.state.UpsertAlgo(ctx, rec)
		}
	case models.KindSymbols:
		if rec := s.store.Symbol(key); rec != nil {
			return s.state.UpsertSymbol(ctx, rec)
		}
	case models.KindSetups:
		if setup := s.store.Setup(key); setup != nil {
			return s.setupDB.UpsertSetup(ctx, setup)
		}
	case models.KindSettings:
		if setting, ok := s.store.Setting(key); ok {
			return s.settings.UpsertSetting(ctx, setting)
		}
	}
	return nil
}

// flushAlerts persists one bounded batch of unsynced alerts per tick.
// Inserts are idempotent by id, so a batch that partially landed before an
// error is safe to retry whole.
func (s *Syncer) flushAlerts(ctx context.Context) int {
	batch := s.alerts.Unsynced(s.alertBatch)
	if len(batch) == 0 {
		return 0
	}
	if err := s.alertDB.InsertAlerts(ctx, batch); err != nil {
		s.log.Error("alert sync failed", logger.Int("batch", len(batch)), logger.Error(err))
		return len(batch)
	}
	ids := make([]int64, len(batch))
	for n, a := range batch {
		ids[n] = a.ID
	}
	s.alerts.MarkSynced(ids)
	return 0
}
