package usecase

import (
	"context"
	"fmt"

	"PulseBoard/internal/cache"
	"PulseBoard/internal/domain/models"
	"PulseBoard/internal/domain/repository"
	"PulseBoard/pkg/logger"
)

// Hydrator rebuilds the in-memory cache from durable storage at startup.
// Hydration is all or nothing: any load error aborts startup, because
// serving from a partially hydrated cache would silently lose state.
type Hydrator struct {
	store  *cache.Store
	dirty  *cache.DirtyTracker
	alerts *cache.AlertLog

	state    repository.StateStore
	alertDB  repository.AlertStore
	setupDB  repository.SetupStore
	settings repository.SettingsStore

	log      *logger.Logger
	alertCap int
}

func NewHydrator(
	store *cache.Store,
	dirty *cache.DirtyTracker,
	alerts *cache.AlertLog,
	state repository.StateStore,
	alertDB repository.AlertStore,
	setupDB repository.SetupStore,
	settings repository.SettingsStore,
	log *logger.Logger,
	alertCap int,
) *Hydrator {
	return &Hydrator{
		store:    store,
		dirty:    dirty,
		alerts:   alerts,
		state:    state,
		alertDB:  alertDB,
		setupDB:  setupDB,
		settings: settings,
		log:      log,
		alertCap: alertCap,
	}
}

// Hydrate loads every record kind into the cache and returns the highest
// alert id seen, so the caller can seed the id counter above it. The dirty
// set stays empty except for freshly seeded default settings.
func (h *Hydrator) Hydrate(ctx context.Context) (maxAlertID int64, err error) {
	symbols, err := h.state.LoadSymbols(ctx)
	if err != nil {
		return 0, fmt.Errorf("hydrate symbols: %w", err)
	}
	for _, rec := range symbols {
		h.store.PutSymbol(rec)
	}

	structures, err := h.state.LoadStructures(ctx)
	if err != nil {
		return 0, fmt.Errorf("hydrate structures: %w", err)
	}
	for _, rec := range structures {
		h.store.PutStructure(rec)
	}

	momentums, err := h.state.LoadMomentums(ctx)
	if err != nil {
		return 0, fmt.Errorf("hydrate momentums: %w", err)
	}
	for _, rec := range momentums {
		h.store.PutMomentum(rec)
	}

	zones, err := h.state.LoadZones(ctx)
	if err != nil {
		return 0, fmt.Errorf("hydrate zones: %w", err)
	}
	for _, rec := range zones {
		h.store.PutZones(rec)
	}

	algos, err := h.state.LoadAlgos(ctx)
	if err != nil {
		return 0, fmt.Errorf("hydrate algos: %w", err)
	}
	for _, rec := range algos {
		h.store.PutAlgo(rec)
	}

	if err := h.hydrateSetups(ctx); err != nil {
		return 0, err
	}
	if err := h.hydrateSettings(ctx); err != nil {
		return 0, err
	}

	alerts, err := h.alertDB.LoadRecentAlerts(ctx, h.alertCap)
	if err != nil {
		return 0, fmt.Errorf("hydrate alerts: %w", err)
	}
	h.alerts.Hydrate(alerts)
	for _, a := range alerts {
		if a.ID > maxAlertID {
			maxAlertID = a.ID
		}
	}

	h.log.Info("cache hydrated",
		logger.Int("symbols", len(symbols)),
		logger.Int("structures", len(structures)),
		logger.Int("momentums", len(momentums)),
		logger.Int("zones", len(zones)),
		logger.Int("algos", len(algos)),
		logger.Int("alerts", len(alerts)),
	)
	return maxAlertID, nil
}

func (h *Hydrator) hydrateSetups(ctx context.Context) error {
	active, err := h.setupDB.LoadActiveSetups(ctx)
	if err != nil {
		return fmt.Errorf("hydrate active setups: %w", err)
	}
	for _, s := range active {
		h.store.PutSetup(s)
	}
	recent, err := h.setupDB.LoadRecentSetups(ctx, 200)
	if err != nil {
		return fmt.Errorf("hydrate recent setups: %w", err)
	}
	for _, s := range recent {
		if h.store.Setup(s.ID) == nil {
			h.store.PutSetup(s)
		}
	}
	return nil
}

// hydrateSettings loads stored alert settings and seeds defaults for any
// alert type that has none yet. Seeded defaults are marked dirty so the
// next sync persists them.
func (h *Hydrator) hydrateSettings(ctx context.Context) error {
	stored, err := h.settings.LoadSettings(ctx)
	if err != nil {
		return fmt.Errorf("hydrate settings: %w", err)
	}
	for _, st := range stored {
		h.store.PutSetting(st)
	}
	for _, alertType := range models.AllAlertTypes {
		if _, ok := h.store.Setting(alertType); ok {
			continue
		}
		h.store.PutSetting(models.DefaultAlertSetting(alertType))
		h.dirty.MarkDirty(models.KindSettings, alertType)
	}
	return nil
}
