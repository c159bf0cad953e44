package cache

import (
	"testing"

	"PulseBoard/internal/domain/models"
)

func TestStorePutAndGet(t *testing.T) {
	s := NewStore()

	if s.Structure("BTCUSDT") != nil {
		t.Fatalf("empty store must return nil")
	}

	s.PutStructure(&models.StructureRecord{Symbol: "BTCUSDT", Bias: models.DirectionBull})
	rec := s.Structure("BTCUSDT")
	if rec == nil || rec.Bias != models.DirectionBull {
		t.Fatalf("expected stored structure record back, got %+v", rec)
	}

	s.PutSymbol(&models.SymbolRecord{Symbol: "BTCUSDT", Price: 65000})
	s.PutSymbol(&models.SymbolRecord{Symbol: "ETHUSDT", Price: 3200})
	if len(s.Symbols()) != 2 {
		t.Fatalf("expected 2 symbols, got %d", len(s.Symbols()))
	}
}

func TestStoreHasActiveSetup(t *testing.T) {
	s := NewStore()
	s.PutSetup(&models.TradeSetup{
		ID:        "a",
		Symbol:    "BTCUSDT",
		Direction: models.DirectionBull,
		Status:    models.SetupStatusActive,
	})
	s.PutSetup(&models.TradeSetup{
		ID:        "b",
		Symbol:    "BTCUSDT",
		Direction: models.DirectionBear,
		Status:    models.SetupStatusClosed,
	})

	if !s.HasActiveSetup("BTCUSDT", models.DirectionBull) {
		t.Fatalf("expected active long setup to be found")
	}
	if s.HasActiveSetup("BTCUSDT", models.DirectionBear) {
		t.Fatalf("closed setup must not count as active")
	}
	if s.HasActiveSetup("ETHUSDT", models.DirectionBull) {
		t.Fatalf("unknown symbol must not have an active setup")
	}
}

func TestStoreSettings(t *testing.T) {
	s := NewStore()
	if _, ok := s.Setting(models.AlertMSSBullish); ok {
		t.Fatalf("unseeded setting must report missing")
	}

	s.PutSetting(models.AlertSetting{
		AlertType:   models.AlertMSSBullish,
		ShowInPanel: false,
		Importance:  models.ImportanceHigh,
	})
	st, ok := s.Setting(models.AlertMSSBullish)
	if !ok || st.ShowInPanel || st.Importance != models.ImportanceHigh {
		t.Fatalf("unexpected setting %+v", st)
	}
}
