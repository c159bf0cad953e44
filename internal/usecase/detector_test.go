package usecase

import (
	"testing"

	"PulseBoard/internal/cache"
	"PulseBoard/internal/domain/models"
)

func setupDetector(t *testing.T) (*Detector, *cache.Store) {
	t.Helper()
	store := cache.NewStore()
	d := NewDetector(store, testWindow)
	ids := 0
	d.newID = func() string {
		ids++
		return string(rune('a' + ids - 1))
	}
	return d, store
}

func TestDetectLongSetupFullConfluence(t *testing.T) {
	d, store := setupDetector(t)
	now := int64(10_000_000)
	on := models.StickyFlag{Value: true, ActivatedAt: now}

	store.PutSymbol(&models.SymbolRecord{Symbol: "BTCUSDT", Price: 65000})
	store.PutZones(&models.ZoneRecord{
		Symbol: "BTCUSDT",
		Demand: map[string]models.StickyFlag{"4h": on, "1d": on},
	})
	store.PutStructure(&models.StructureRecord{Symbol: "BTCUSDT", Bias: models.DirectionBull})
	store.PutMomentum(&models.MomentumRecord{Symbol: "BTCUSDT", CautionCount: 1})
	store.PutAlgo(&models.AlgoRecord{
		Symbol: "BTCUSDT",
		Timeframes: map[string]models.AlgoSignals{
			"4h": {Algo1Buy: on, DotsGreen: on, SquaresGreen: on},
		},
	})

	setups := d.Detect("BTCUSDT", now)
	if len(setups) != 1 {
		t.Fatalf("expected one setup, got %d", len(setups))
	}
	s := setups[0]
	if s.Direction != models.DirectionBull || s.Status != models.SetupStatusActive {
		t.Fatalf("unexpected setup %+v", s)
	}
	// base 2 + two zone TFs + dots + squares + caution + primary algo 2 = 9
	if s.ConfluenceScore != 9 {
		t.Fatalf("expected score 9, got %d", s.ConfluenceScore)
	}
	if len(s.ZoneTimeframes) != 2 || s.ZoneTimeframes[0] != "4h" || s.ZoneTimeframes[1] != "1d" {
		t.Fatalf("unexpected zone timeframes %v", s.ZoneTimeframes)
	}
	if s.EntryPrice != 65000 {
		t.Fatalf("entry price must come from the symbol record, got %v", s.EntryPrice)
	}
	if !s.HasDots || !s.HasSquares || s.CautionCount != 1 {
		t.Fatalf("confluence inputs recorded wrong: %+v", s)
	}
}

func TestDetectMinimalLongSetup(t *testing.T) {
	d, store := setupDetector(t)
	now := int64(10_000_000)
	on := models.StickyFlag{Value: true, ActivatedAt: now}

	store.PutZones(&models.ZoneRecord{
		Symbol: "BTCUSDT",
		Price:  64000,
		Demand: map[string]models.StickyFlag{"4h": on},
	})
	store.PutStructure(&models.StructureRecord{Symbol: "BTCUSDT", Bias: models.DirectionBull})

	setups := d.Detect("BTCUSDT", now)
	if len(setups) != 1 {
		t.Fatalf("expected one setup, got %d", len(setups))
	}
	if setups[0].ConfluenceScore != 3 {
		t.Fatalf("expected minimal score 3, got %d", setups[0].ConfluenceScore)
	}
	if setups[0].EntryPrice != 64000 {
		t.Fatalf("entry price must fall back to the zone record price")
	}
}

func TestDetectShortSetup(t *testing.T) {
	d, store := setupDetector(t)
	now := int64(10_000_000)
	on := models.StickyFlag{Value: true, ActivatedAt: now}

	store.PutZones(&models.ZoneRecord{
		Symbol: "ETHUSDT",
		Supply: map[string]models.StickyFlag{"1w": on},
	})
	store.PutStructure(&models.StructureRecord{Symbol: "ETHUSDT", Bias: models.DirectionBear})

	setups := d.Detect("ETHUSDT", now)
	if len(setups) != 1 || setups[0].Direction != models.DirectionBear {
		t.Fatalf("expected one short setup, got %v", setups)
	}
}

func TestDetectRequiresBiasAndZoneAgreement(t *testing.T) {
	d, store := setupDetector(t)
	now := int64(10_000_000)
	on := models.StickyFlag{Value: true, ActivatedAt: now}

	// Demand zone but bearish bias: no setup either way.
	store.PutZones(&models.ZoneRecord{
		Symbol: "BTCUSDT",
		Demand: map[string]models.StickyFlag{"4h": on},
	})
	store.PutStructure(&models.StructureRecord{Symbol: "BTCUSDT", Bias: models.DirectionBear})

	if setups := d.Detect("BTCUSDT", now); len(setups) != 0 {
		t.Fatalf("expected no setups, got %v", setups)
	}
}

func TestDetectIgnoresLowerAndDecayedZones(t *testing.T) {
	d, store := setupDetector(t)
	now := int64(10_000_000)

	store.PutZones(&models.ZoneRecord{
		Symbol: "BTCUSDT",
		Demand: map[string]models.StickyFlag{
			"1h": {Value: true, ActivatedAt: now},
			"4h": {Value: true, ActivatedAt: now - testWindow.Milliseconds() - 1},
		},
	})
	store.PutStructure(&models.StructureRecord{Symbol: "BTCUSDT", Bias: models.DirectionBull})

	if setups := d.Detect("BTCUSDT", now); len(setups) != 0 {
		t.Fatalf("lower-timeframe and decayed zones must not qualify, got %v", setups)
	}
}

func TestDetectIdempotentWhileActive(t *testing.T) {
	d, store := setupDetector(t)
	now := int64(10_000_000)
	on := models.StickyFlag{Value: true, ActivatedAt: now}

	store.PutZones(&models.ZoneRecord{
		Symbol: "BTCUSDT",
		Demand: map[string]models.StickyFlag{"4h": on},
	})
	store.PutStructure(&models.StructureRecord{Symbol: "BTCUSDT", Bias: models.DirectionBull})

	first := d.Detect("BTCUSDT", now)
	if len(first) != 1 {
		t.Fatalf("expected one setup on first pass")
	}
	store.PutSetup(first[0])

	if again := d.Detect("BTCUSDT", now+1000); len(again) != 0 {
		t.Fatalf("active setup must suppress re-detection, got %v", again)
	}

	// A closed setup no longer suppresses.
	closed := *first[0]
	closed.Status = models.SetupStatusClosed
	store.PutSetup(&closed)
	if again := d.Detect("BTCUSDT", now+2000); len(again) != 1 {
		t.Fatalf("closed setup must allow re-detection")
	}
}
