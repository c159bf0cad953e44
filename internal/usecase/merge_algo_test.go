package usecase

import (
	"testing"

	"PulseBoard/internal/domain/models"
)

func TestResolveAlgoDeltaRequiresTimeframe(t *testing.T) {
	if _, ok := ResolveAlgoDelta("BTCUSDT", &models.AlgoPayload{Symbol: "BTCUSDT"}); ok {
		t.Fatalf("payload without timeframe must not resolve")
	}
	if _, ok := ResolveAlgoDelta("BTCUSDT", &models.AlgoPayload{Symbol: "BTCUSDT", Timeframe: "7h"}); ok {
		t.Fatalf("unsupported timeframe must not resolve")
	}
	d, ok := ResolveAlgoDelta("BTCUSDT", &models.AlgoPayload{Symbol: "BTCUSDT", Timeframe: "4H", Algo1Buy: true})
	if !ok || d.Timeframe != "4h" || !d.Algo1Buy {
		t.Fatalf("payload resolved wrong: %+v", d)
	}
}

func TestMergeAlgoActivationAndSignals(t *testing.T) {
	now := int64(10_000_000)
	d := &AlgoDelta{
		Symbol:    "BTCUSDT",
		Timeframe: "4h",
		Price:     65000,
		Algo1Buy:  true,
		DotsGreen: true,
		BgGreen:   true,
	}

	merged, signals := MergeAlgo(nil, d, now, testWindow)
	sig := merged.Timeframes["4h"]
	if !sig.Algo1Buy.Value || !sig.DotsGreen.Value || !sig.BgGreen.Value {
		t.Fatalf("flags not activated: %+v", sig)
	}

	types := map[string]bool{}
	for _, s := range signals {
		types[s.Type] = true
	}
	if !types[models.AlertAlgo1Buy] || !types[models.AlertDotsGreen] {
		t.Fatalf("expected algo1 buy and dots signals, got %v", signals)
	}
	// Background color changes never raise alerts.
	if len(signals) != 2 {
		t.Fatalf("expected exactly 2 signals, got %v", signals)
	}
}

func TestMergeAlgoOtherTimeframesUntouched(t *testing.T) {
	now := int64(10_000_000)
	existing := &models.AlgoRecord{
		Symbol: "BTCUSDT",
		Timeframes: map[string]models.AlgoSignals{
			"1d": {SquaresGreen: models.StickyFlag{Value: true, ActivatedAt: now - 500}},
		},
	}
	d := &AlgoDelta{Symbol: "BTCUSDT", Timeframe: "4h", Algo2Sell: true}

	merged, _ := MergeAlgo(existing, d, now, testWindow)
	if !merged.Timeframes["1d"].SquaresGreen.Value {
		t.Fatalf("untouched timeframe must be carried over")
	}
	if !merged.Timeframes["4h"].Algo2Sell.Value {
		t.Fatalf("sampled timeframe must take the update")
	}
}

func TestMergeAlgoStickyRetention(t *testing.T) {
	now := int64(10_000_000)
	first := &AlgoDelta{Symbol: "BTCUSDT", Timeframe: "4h", Algo1Buy: true}
	merged, _ := MergeAlgo(nil, first, now, testWindow)

	// All-false sample inside the window retains the buy flag.
	later := now + testWindow.Milliseconds()/2
	second := &AlgoDelta{Symbol: "BTCUSDT", Timeframe: "4h"}
	merged2, signals := MergeAlgo(merged, second, later, testWindow)
	if !merged2.Timeframes["4h"].Algo1Buy.Value {
		t.Fatalf("flag must be retained inside the window")
	}
	if len(signals) != 0 {
		t.Fatalf("retention must not signal")
	}

	// Past the window it decays.
	past := now + testWindow.Milliseconds() + 1
	merged3, _ := MergeAlgo(merged2, second, past, testWindow)
	if merged3.Timeframes["4h"].Algo1Buy.Value {
		t.Fatalf("flag must decay past the window")
	}
}

func TestAlgoRecordAnyActive(t *testing.T) {
	now := int64(10_000_000)
	d := &AlgoDelta{Symbol: "BTCUSDT", Timeframe: "1d", DotsGreen: true}
	merged, _ := MergeAlgo(nil, d, now, testWindow)

	if !merged.AnyActive(now, testWindow, func(s models.AlgoSignals) models.StickyFlag { return s.DotsGreen }) {
		t.Fatalf("AnyActive must find the active dots flag")
	}
	if merged.AnyActive(now, testWindow, func(s models.AlgoSignals) models.StickyFlag { return s.DotsRed }) {
		t.Fatalf("AnyActive must not report unset flags")
	}

	// Past the window the flag no longer counts, even though its value is
	// still stored.
	past := now + testWindow.Milliseconds() + 1
	if merged.AnyActive(past, testWindow, func(s models.AlgoSignals) models.StickyFlag { return s.DotsGreen }) {
		t.Fatalf("AnyActive must not report decayed flags")
	}

	var none *models.AlgoRecord
	if none.AnyActive(now, testWindow, func(s models.AlgoSignals) models.StickyFlag { return s.DotsGreen }) {
		t.Fatalf("nil record must report nothing")
	}
}
