package usecase

import (
	"time"

	"PulseBoard/internal/domain/models"
)

// AlgoDelta is the normalized content of a multi-algorithm webhook. All
// samples apply to one timeframe.
type AlgoDelta struct {
	Symbol    string
	Timeframe string
	Price     float64

	Algo1Buy, Algo1Sell bool
	Algo2Buy, Algo2Sell bool
	Algo3Buy, Algo3Sell bool

	DotsGreen, DotsRed       bool
	SquaresGreen, SquaresRed bool
	BgGreen, BgRed           bool
}

// ResolveAlgoDelta normalizes a multi-algorithm payload. Returns false when
// the payload names no supported timeframe, since the samples would have
// nowhere to land.
func ResolveAlgoDelta(symbol string, p *models.AlgoPayload) (*AlgoDelta, bool) {
	tf, ok := models.CanonicalTimeframe(p.Timeframe)
	if !ok {
		return nil, false
	}
	return &AlgoDelta{
		Symbol:       symbol,
		Timeframe:    tf,
		Price:        p.Price,
		Algo1Buy:     p.Algo1Buy.Bool(),
		Algo1Sell:    p.Algo1Sell.Bool(),
		Algo2Buy:     p.Algo2Buy.Bool(),
		Algo2Sell:    p.Algo2Sell.Bool(),
		Algo3Buy:     p.Algo3Buy.Bool(),
		Algo3Sell:    p.Algo3Sell.Bool(),
		DotsGreen:    p.DotsGreen.Bool(),
		DotsRed:      p.DotsRed.Bool(),
		SquaresGreen: p.SquaresGreen.Bool(),
		SquaresRed:   p.SquaresRed.Bool(),
		BgGreen:      p.BgGreen.Bool(),
		BgRed:        p.BgRed.Bool(),
	}, true
}

// algoFlagSpec wires one sampled flag to its slot in AlgoSignals and the
// alert it raises on a rising edge. An empty alert type raises nothing.
type algoFlagSpec struct {
	sample    func(*AlgoDelta) bool
	slot      func(*models.AlgoSignals) *models.StickyFlag
	alertType string
	direction models.Direction
}

var algoFlagSpecs = []algoFlagSpec{
	{func(d *AlgoDelta) bool { return d.Algo1Buy }, func(s *models.AlgoSignals) *models.StickyFlag { return &s.Algo1Buy }, models.AlertAlgo1Buy, models.DirectionBull},
	{func(d *AlgoDelta) bool { return d.Algo1Sell }, func(s *models.AlgoSignals) *models.StickyFlag { return &s.Algo1Sell }, models.AlertAlgo1Sell, models.DirectionBear},
	{func(d *AlgoDelta) bool { return d.Algo2Buy }, func(s *models.AlgoSignals) *models.StickyFlag { return &s.Algo2Buy }, models.AlertAlgo2Buy, models.DirectionBull},
	{func(d *AlgoDelta) bool { return d.Algo2Sell }, func(s *models.AlgoSignals) *models.StickyFlag { return &s.Algo2Sell }, models.AlertAlgo2Sell, models.DirectionBear},
	{func(d *AlgoDelta) bool { return d.Algo3Buy }, func(s *models.AlgoSignals) *models.StickyFlag { return &s.Algo3Buy }, models.AlertAlgo3Buy, models.DirectionBull},
	{func(d *AlgoDelta) bool { return d.Algo3Sell }, func(s *models.AlgoSignals) *models.StickyFlag { return &s.Algo3Sell }, models.AlertAlgo3Sell, models.DirectionBear},
	{func(d *AlgoDelta) bool { return d.DotsGreen }, func(s *models.AlgoSignals) *models.StickyFlag { return &s.DotsGreen }, models.AlertDotsGreen, models.DirectionBull},
	{func(d *AlgoDelta) bool { return d.DotsRed }, func(s *models.AlgoSignals) *models.StickyFlag { return &s.DotsRed }, models.AlertDotsRed, models.DirectionBear},
	{func(d *AlgoDelta) bool { return d.SquaresGreen }, func(s *models.AlgoSignals) *models.StickyFlag { return &s.SquaresGreen }, models.AlertSquaresGreen, models.DirectionBull},
	{func(d *AlgoDelta) bool { return d.SquaresRed }, func(s *models.AlgoSignals) *models.StickyFlag { return &s.SquaresRed }, models.AlertSquaresRed, models.DirectionBear},
	{func(d *AlgoDelta) bool { return d.BgGreen }, func(s *models.AlgoSignals) *models.StickyFlag { return &s.BgGreen }, "", models.DirectionBull},
	{func(d *AlgoDelta) bool { return d.BgRed }, func(s *models.AlgoSignals) *models.StickyFlag { return &s.BgRed }, "", models.DirectionBear},
}

// MergeAlgo folds a delta into the existing record. Flags on the sampled
// timeframe are re-resolved; other timeframes are carried over untouched and
// decay at read time. existing may be nil.
func MergeAlgo(existing *models.AlgoRecord, d *AlgoDelta, nowMs int64, window time.Duration) (*models.AlgoRecord, []Signal) {
	merged := &models.AlgoRecord{
		Symbol:     d.Symbol,
		Timeframes: make(map[string]models.AlgoSignals),
	}
	if existing != nil {
		merged.Price = existing.Price
		for tf, sig := range existing.Timeframes {
			merged.Timeframes[tf] = sig
		}
	}

	prev := merged.Timeframes[d.Timeframe]
	next := prev

	var signals []Signal
	for _, spec := range algoFlagSpecs {
		sample := spec.sample(d)
		slotPrev := *spec.slot(&prev)
		if spec.alertType != "" && risingEdge(sample, slotPrev, nowMs, window) {
			signals = append(signals, Signal{
				Type:      spec.alertType,
				Direction: spec.direction,
				Timeframe: d.Timeframe,
			})
		}
		*spec.slot(&next) = ResolveSticky(sample, slotPrev, nowMs, window)
	}

	merged.Timeframes[d.Timeframe] = next
	if d.Price != 0 {
		merged.Price = d.Price
	}
	merged.UpdatedAt = nowMs
	return merged, signals
}
