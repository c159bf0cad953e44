package usecase

import (
	"context"
	"sync"
	"testing"

	"PulseBoard/internal/cache"
	"PulseBoard/internal/domain/models"
	"PulseBoard/pkg/logger"
)

type fakeMetrics struct {
	mu      sync.Mutex
	updates map[string]int
	noops   map[string]int
	alerts  map[string]int
	setups  map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		updates: map[string]int{},
		noops:   map[string]int{},
		alerts:  map[string]int{},
		setups:  map[string]int{},
	}
}

func (m *fakeMetrics) RecordUpdate(kind string) { m.mu.Lock(); m.updates[kind]++; m.mu.Unlock() }
func (m *fakeMetrics) RecordNoOp(kind string)   { m.mu.Lock(); m.noops[kind]++; m.mu.Unlock() }
func (m *fakeMetrics) SetDirtyDepth(string, int) {}
func (m *fakeMetrics) RecordSyncBatch(string, float64, int) {}
func (m *fakeMetrics) RecordAlert(category string) {
	m.mu.Lock()
	m.alerts[category]++
	m.mu.Unlock()
}
func (m *fakeMetrics) RecordSetup(direction string) {
	m.mu.Lock()
	m.setups[direction]++
	m.mu.Unlock()
}

type ingestorFixture struct {
	ing     *Ingestor
	store   *cache.Store
	dirty   *cache.DirtyTracker
	alerts  *cache.AlertLog
	metrics *fakeMetrics
	nowMs   int64
}

func newIngestorFixture(t *testing.T) *ingestorFixture {
	t.Helper()
	f := &ingestorFixture{
		store:   cache.NewStore(),
		dirty:   cache.NewDirtyTracker(),
		alerts:  cache.NewAlertLog(500),
		metrics: newFakeMetrics(),
		nowMs:   10_000_000,
	}
	detector := NewDetector(f.store, testWindow)
	f.ing = NewIngestor(f.store, f.dirty, f.alerts, detector, nil, f.metrics, logger.Nop(), testWindow)
	f.ing.now = func() int64 { return f.nowMs }
	f.ing.alertID.Store(0)
	return f
}

func TestIngestZonesUpdatesStateAndAlerts(t *testing.T) {
	f := newIngestorFixture(t)
	f.ing.IngestZones(context.Background(), "BTCUSDT", &models.ZonePayload{
		Symbol:       "BTCUSDT",
		Price:        65000,
		Exchange:     "BINANCE",
		InDemandZone: true,
	})

	if rec := f.store.Zones("BTCUSDT"); rec == nil || !rec.InDemand.Value {
		t.Fatalf("zone record not stored: %+v", rec)
	}
	if f.dirty.Depth(models.KindZones) != 1 || f.dirty.Depth(models.KindSymbols) != 1 {
		t.Fatalf("zone and symbol scopes must be dirty")
	}

	sym := f.store.Symbol("BTCUSDT")
	if sym == nil || sym.Price != 65000 || sym.Exchange != "BINANCE" || !sym.HasData {
		t.Fatalf("symbol record wrong: %+v", sym)
	}
	if sym.LastUpdated != f.nowMs {
		t.Fatalf("symbol record must carry the ingestion time")
	}

	got := f.alerts.Recent(10)
	if len(got) != 1 || got[0].AlertType != models.AlertDemandZoneEntry {
		t.Fatalf("expected a demand zone entry alert, got %v", got)
	}
	if got[0].Importance != models.ImportanceNormal || !got[0].Visible {
		t.Fatalf("alert must take default settings: %+v", got[0])
	}
}

func TestIngestSymbolCoalescesAcrossUpdates(t *testing.T) {
	f := newIngestorFixture(t)
	f.ing.IngestZones(context.Background(), "BTCUSDT", &models.ZonePayload{
		Symbol: "BTCUSDT", Price: 65000, Exchange: "BINANCE",
	})

	// Second update without exchange or price keeps the known values.
	f.nowMs += 1000
	f.ing.IngestAlgo(context.Background(), "BTCUSDT", &models.AlgoPayload{
		Symbol: "BTCUSDT", Timeframe: "4h",
	})

	sym := f.store.Symbol("BTCUSDT")
	if sym.Exchange != "BINANCE" || sym.Price != 65000 {
		t.Fatalf("known fields must be retained: %+v", sym)
	}
	if sym.LastUpdated != f.nowMs {
		t.Fatalf("last updated must advance")
	}
}

func TestIngestUnusablePayloadIsNoOp(t *testing.T) {
	f := newIngestorFixture(t)
	f.ing.IngestStructure(context.Background(), "BTCUSDT", &models.StructurePayload{Symbol: "BTCUSDT"})

	if f.store.Structure("BTCUSDT") != nil {
		t.Fatalf("unusable payload must not create a record")
	}
	if f.dirty.Depth(models.KindStructure) != 0 {
		t.Fatalf("no-op must not mark dirty")
	}
	if f.metrics.noops[string(models.KindStructure)] != 1 {
		t.Fatalf("no-op must be counted")
	}
}

func TestIngestAlertRespectsSettings(t *testing.T) {
	f := newIngestorFixture(t)
	f.store.PutSetting(models.AlertSetting{
		AlertType:   models.AlertDemandZoneEntry,
		ShowInPanel: false,
		Importance:  models.ImportanceHigh,
	})

	f.ing.IngestZones(context.Background(), "BTCUSDT", &models.ZonePayload{
		Symbol:       "BTCUSDT",
		InDemandZone: true,
	})

	got := f.alerts.Recent(1)
	if len(got) != 1 {
		t.Fatalf("alert must still be logged when hidden")
	}
	if got[0].Visible || got[0].Importance != models.ImportanceHigh {
		t.Fatalf("alert must take the stored setting: %+v", got[0])
	}
}

func TestIngestAlertIDsIncrease(t *testing.T) {
	f := newIngestorFixture(t)
	f.ing.SeedAlertID(100)

	f.ing.IngestZones(context.Background(), "BTCUSDT", &models.ZonePayload{
		Symbol: "BTCUSDT", InDemandZone: true, InSupplyZone: true,
	})

	got := f.alerts.Recent(10)
	if len(got) != 2 {
		t.Fatalf("expected two alerts, got %d", len(got))
	}
	if got[0].ID <= 100 || got[1].ID <= 100 || got[0].ID == got[1].ID {
		t.Fatalf("alert ids must be unique and above the seed: %d %d", got[0].ID, got[1].ID)
	}
}

func TestIngestTriggersSetupDetection(t *testing.T) {
	f := newIngestorFixture(t)
	ctx := context.Background()

	f.ing.IngestStructure(ctx, "BTCUSDT", &models.StructurePayload{
		Symbol: "BTCUSDT", Timeframe: "4h", Direction: "BULL",
	})
	f.ing.IngestZones(ctx, "BTCUSDT", &models.ZonePayload{
		Symbol:      "BTCUSDT",
		Price:       65000,
		DemandZones: map[string]models.FlexBool{"4h": true},
	})

	setups := f.store.Setups()
	if len(setups) != 1 || setups[0].Direction != models.DirectionBull {
		t.Fatalf("expected one long setup, got %v", setups)
	}
	if f.dirty.Depth(models.KindSetups) != 1 {
		t.Fatalf("setup scope must be dirty")
	}
	if f.metrics.setups[string(models.DirectionBull)] != 1 {
		t.Fatalf("setup metric must be recorded")
	}

	var setupAlert *models.Alert
	for _, a := range f.alerts.All() {
		if a.AlertType == models.AlertLongSetup {
			setupAlert = a
		}
	}
	if setupAlert == nil {
		t.Fatalf("setup detection must create a LONG_SETUP alert")
	}
	if setupAlert.Importance != models.ImportanceHigh {
		t.Fatalf("setup alerts default to high importance, got %s", setupAlert.Importance)
	}
}
