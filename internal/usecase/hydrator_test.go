package usecase

import (
	"context"
	"errors"
	"testing"

	"PulseBoard/internal/cache"
	"PulseBoard/internal/domain/models"
	"PulseBoard/pkg/logger"
)

type hydratorFixture struct {
	hyd      *Hydrator
	store    *cache.Store
	dirty    *cache.DirtyTracker
	alerts   *cache.AlertLog
	state    *fakeStateStore
	alertDB  *fakeAlertStore
	setupDB  *fakeSetupStore
	settings *fakeSettingsStore
}

func newHydratorFixture(t *testing.T) *hydratorFixture {
	t.Helper()
	f := &hydratorFixture{
		store:    cache.NewStore(),
		dirty:    cache.NewDirtyTracker(),
		alerts:   cache.NewAlertLog(500),
		state:    newFakeStateStore(),
		alertDB:  &fakeAlertStore{},
		setupDB:  &fakeSetupStore{},
		settings: &fakeSettingsStore{},
	}
	f.hyd = NewHydrator(
		f.store, f.dirty, f.alerts,
		f.state, f.alertDB, f.setupDB, f.settings,
		logger.Nop(), 500,
	)
	return f
}

func TestHydrateRestoresState(t *testing.T) {
	f := newHydratorFixture(t)
	f.state.loadSymbols = []*models.SymbolRecord{{Symbol: "BTCUSDT", Price: 65000}}
	f.state.loadZones = []*models.ZoneRecord{{Symbol: "BTCUSDT"}}
	f.setupDB.active = []*models.TradeSetup{{ID: "s1", Symbol: "BTCUSDT", Status: models.SetupStatusActive}}
	f.setupDB.recent = []*models.TradeSetup{
		{ID: "s1", Symbol: "BTCUSDT", Status: models.SetupStatusActive},
		{ID: "s2", Symbol: "BTCUSDT", Status: models.SetupStatusClosed},
	}
	f.alertDB.recent = []*models.Alert{{ID: 42, Symbol: "BTCUSDT"}, {ID: 41, Symbol: "BTCUSDT"}}

	maxID, err := f.hyd.Hydrate(context.Background())
	if err != nil {
		t.Fatalf("hydrate failed: %v", err)
	}
	if maxID != 42 {
		t.Fatalf("expected max alert id 42, got %d", maxID)
	}
	if f.store.Symbol("BTCUSDT") == nil || f.store.Zones("BTCUSDT") == nil {
		t.Fatalf("records not restored")
	}
	if len(f.store.Setups()) != 2 {
		t.Fatalf("active and recent setups must be merged, got %d", len(f.store.Setups()))
	}
	if f.alerts.Len() != 2 || f.alerts.UnsyncedCount() != 0 {
		t.Fatalf("alert log must hold persisted alerts with nothing unsynced")
	}
}

func TestHydrateSeedsDefaultSettings(t *testing.T) {
	f := newHydratorFixture(t)
	f.settings.stored = []models.AlertSetting{{
		AlertType:   models.AlertMSSBullish,
		ShowInPanel: false,
		Importance:  models.ImportanceNormal,
	}}

	if _, err := f.hyd.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate failed: %v", err)
	}

	// Stored setting survives as-is.
	st, ok := f.store.Setting(models.AlertMSSBullish)
	if !ok || st.ShowInPanel {
		t.Fatalf("stored setting must not be overwritten: %+v", st)
	}
	// Every other type gets a default, and setup alerts default to high.
	st, ok = f.store.Setting(models.AlertLongSetup)
	if !ok || st.Importance != models.ImportanceHigh || !st.ShowInPanel {
		t.Fatalf("seeded setup setting wrong: %+v", st)
	}
	if got := len(f.store.Settings()); got != len(models.AllAlertTypes) {
		t.Fatalf("expected a setting per alert type, got %d", got)
	}
	// Only the seeded defaults need persisting.
	if depth := f.dirty.Depth(models.KindSettings); depth != len(models.AllAlertTypes)-1 {
		t.Fatalf("expected %d dirty settings, got %d", len(models.AllAlertTypes)-1, depth)
	}
}

func TestHydrateFailsFast(t *testing.T) {
	f := newHydratorFixture(t)
	f.state.loadErr = errors.New("storage down")

	if _, err := f.hyd.Hydrate(context.Background()); err == nil {
		t.Fatalf("hydrate must surface load errors")
	}
}

func TestHydrateLeavesRecordsClean(t *testing.T) {
	f := newHydratorFixture(t)
	f.state.loadSymbols = []*models.SymbolRecord{{Symbol: "BTCUSDT"}}

	if _, err := f.hyd.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate failed: %v", err)
	}
	if f.dirty.Depth(models.KindSymbols) != 0 {
		t.Fatalf("hydrated records are already persisted and must not be dirty")
	}
}
