package usecase

import (
	"time"

	"PulseBoard/internal/domain/models"
)

// ZoneDelta is the normalized content of a supply/demand webhook.
type ZoneDelta struct {
	Symbol  string
	Price   float64
	ChartTF string

	InDemand        bool
	InSupply        bool
	DemandRejection bool
	SupplyRejection bool

	Demand map[string]bool
	Supply map[string]bool
}

// ResolveZoneDelta normalizes a zone payload. Zone payloads always carry the
// four top-level flags, so resolution cannot fail; unsupported timeframe
// keys in the bulk maps are dropped.
func ResolveZoneDelta(symbol string, p *models.ZonePayload) *ZoneDelta {
	d := &ZoneDelta{
		Symbol:          symbol,
		Price:           p.Price,
		ChartTF:         p.ChartTF,
		InDemand:        p.InDemandZone.Bool(),
		InSupply:        p.InSupplyZone.Bool(),
		DemandRejection: p.HasDemandRejection.Bool(),
		SupplyRejection: p.HasSupplyRejection.Bool(),
		Demand:          canonicalZoneMap(p.DemandZones),
		Supply:          canonicalZoneMap(p.SupplyZones),
	}
	return d
}

func canonicalZoneMap(raw map[string]models.FlexBool) map[string]bool {
	out := make(map[string]bool, len(raw))
	for key, v := range raw {
		if tf, ok := models.CanonicalTimeframe(key); ok {
			out[tf] = v.Bool()
		}
	}
	return out
}

// MergeZones folds a delta into the existing record. Every flag, top-level
// and per-timeframe, is sticky. existing may be nil.
func MergeZones(existing *models.ZoneRecord, d *ZoneDelta, nowMs int64, window time.Duration) (*models.ZoneRecord, []Signal) {
	merged := &models.ZoneRecord{Symbol: d.Symbol}
	if existing != nil {
		merged.ChartTF = existing.ChartTF
		merged.Price = existing.Price
		merged.InDemand = existing.InDemand
		merged.InSupply = existing.InSupply
		merged.DemandRejection = existing.DemandRejection
		merged.SupplyRejection = existing.SupplyRejection
	}

	var signals []Signal
	edge := func(sample bool, prev models.StickyFlag, alertType string, dir models.Direction) {
		if risingEdge(sample, prev, nowMs, window) {
			signals = append(signals, Signal{Type: alertType, Direction: dir})
		}
	}
	edge(d.InDemand, merged.InDemand, models.AlertDemandZoneEntry, models.DirectionBull)
	edge(d.InSupply, merged.InSupply, models.AlertSupplyZoneEntry, models.DirectionBear)
	edge(d.DemandRejection, merged.DemandRejection, models.AlertDemandRejection, models.DirectionBull)
	edge(d.SupplyRejection, merged.SupplyRejection, models.AlertSupplyRejection, models.DirectionBear)

	merged.InDemand = ResolveSticky(d.InDemand, merged.InDemand, nowMs, window)
	merged.InSupply = ResolveSticky(d.InSupply, merged.InSupply, nowMs, window)
	merged.DemandRejection = ResolveSticky(d.DemandRejection, merged.DemandRejection, nowMs, window)
	merged.SupplyRejection = ResolveSticky(d.SupplyRejection, merged.SupplyRejection, nowMs, window)

	var prevDemand, prevSupply map[string]models.StickyFlag
	if existing != nil {
		prevDemand, prevSupply = existing.Demand, existing.Supply
	}
	merged.Demand = mergeZoneMap(prevDemand, d.Demand, nowMs, window)
	merged.Supply = mergeZoneMap(prevSupply, d.Supply, nowMs, window)

	if d.Price != 0 {
		merged.Price = d.Price
	}
	if d.ChartTF != "" {
		merged.ChartTF = d.ChartTF
	}
	merged.UpdatedAt = nowMs
	return merged, signals
}

// mergeZoneMap resolves sticky flags over the union of previously known and
// freshly sampled timeframes, with one shared now. Timeframes without a
// fresh sample decay like a false sample.
func mergeZoneMap(prev map[string]models.StickyFlag, samples map[string]bool, nowMs int64, window time.Duration) map[string]models.StickyFlag {
	out := make(map[string]models.StickyFlag)
	for tf, flag := range prev {
		if _, sampled := samples[tf]; sampled {
			continue
		}
		if resolved := ResolveSticky(false, flag, nowMs, window); resolved.Value {
			out[tf] = resolved
		}
	}
	for tf, sample := range samples {
		if resolved := ResolveSticky(sample, prev[tf], nowMs, window); resolved.Value {
			out[tf] = resolved
		}
	}
	return out
}
