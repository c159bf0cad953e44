package usecase

import (
	"encoding/json"
	"strings"
	"time"

	"PulseBoard/internal/domain/models"
)

// MomentumDelta is the normalized content of a momentum webhook.
type MomentumDelta struct {
	Symbol    string
	Timeframe string
	Price     float64
	Trend     string
	Status    string

	HasFlags           bool
	Distribution       bool
	DistributionDrives int
	Accumulation       bool
	AccumulationDrives int

	HasCautions       bool
	Cautions          map[string]bool
	ExplicitCount     *int
	ExplicitCautionTF string
}

// ResolveMomentumDelta normalizes a momentum payload. Returns false for a
// payload with nothing usable.
func ResolveMomentumDelta(symbol string, p *models.MomentumPayload) (*MomentumDelta, bool) {
	d := &MomentumDelta{Symbol: symbol, Price: p.Close}
	if p.Price != nil && p.Price.Close != 0 {
		d.Price = p.Price.Close
	}
	if tf, ok := models.CanonicalTimeframe(p.Timeframe); ok {
		d.Timeframe = tf
	}
	if p.Structure != nil {
		d.Trend = strings.ToUpper(strings.TrimSpace(p.Structure.Trend))
	}
	if p.Momentum != nil {
		d.HasFlags = true
		d.Status = p.Momentum.Status
		d.Distribution = p.Momentum.DistributionDetected.Bool()
		d.DistributionDrives = p.Momentum.DistributionDrives
		d.Accumulation = p.Momentum.AccumulationDetected.Bool()
		d.AccumulationDrives = p.Momentum.AccumulationDrives
	}

	// The caution map mixes meta keys with per-timeframe flags.
	if p.MTFCaution != nil {
		d.HasCautions = true
		d.Cautions = make(map[string]bool)
		for key, raw := range p.MTFCaution {
			switch key {
			case "count":
				var n int
				if err := json.Unmarshal(raw, &n); err == nil {
					d.ExplicitCount = &n
				}
			case "timeframes":
				var s string
				if err := json.Unmarshal(raw, &s); err == nil {
					d.ExplicitCautionTF = s
				}
			default:
				tf, ok := models.CanonicalTimeframe(key)
				if !ok {
					continue
				}
				var b models.FlexBool
				if err := json.Unmarshal(raw, &b); err == nil {
					d.Cautions[tf] = b.Bool()
				}
			}
		}
	}

	if !d.HasFlags && !d.HasCautions && d.Trend == "" && d.Status == "" {
		return nil, false
	}
	return d, true
}

// MergeMomentum folds a delta into the existing record, re-resolving every
// sticky flag against the decay window. existing may be nil.
func MergeMomentum(existing *models.MomentumRecord, d *MomentumDelta, nowMs int64, window time.Duration) (*models.MomentumRecord, []Signal) {
	merged := &models.MomentumRecord{
		Symbol:   d.Symbol,
		Cautions: make(map[string]models.StickyFlag),
	}
	if existing != nil {
		merged.Timeframe = existing.Timeframe
		merged.Price = existing.Price
		merged.Trend = existing.Trend
		merged.Status = existing.Status
		merged.CautionCount = existing.CautionCount
		merged.CautionTimeframes = existing.CautionTimeframes
		merged.Distribution = existing.Distribution
		merged.DistributionDrives = existing.DistributionDrives
		merged.Accumulation = existing.Accumulation
		merged.AccumulationDrives = existing.AccumulationDrives
		for tf, flag := range existing.Cautions {
			merged.Cautions[tf] = flag
		}
	}

	var signals []Signal
	if d.HasCautions {
		resolved := make(map[string]models.StickyFlag)
		for tf := range merged.Cautions {
			if _, sampled := d.Cautions[tf]; sampled {
				continue
			}
			// No sample for this timeframe; the retained flag still decays.
			if flag := ResolveSticky(false, merged.Cautions[tf], nowMs, window); flag.Value {
				resolved[tf] = flag
			}
		}
		for tf, sample := range d.Cautions {
			prev := merged.Cautions[tf]
			if risingEdge(sample, prev, nowMs, window) {
				signals = append(signals, Signal{Type: models.AlertCautionSignal, Timeframe: tf})
			}
			if flag := ResolveSticky(sample, prev, nowMs, window); flag.Value {
				resolved[tf] = flag
			}
		}
		merged.Cautions = resolved

		if d.ExplicitCount != nil {
			merged.CautionCount = *d.ExplicitCount
		} else {
			merged.CautionCount = len(resolved)
		}
		if d.ExplicitCautionTF != "" {
			merged.CautionTimeframes = d.ExplicitCautionTF
		} else {
			merged.CautionTimeframes = joinCautionTimeframes(resolved)
		}
	}

	if d.HasFlags {
		if risingEdge(d.Distribution, merged.Distribution, nowMs, window) {
			signals = append(signals, Signal{Type: models.AlertDistribution, Direction: models.DirectionBear})
		}
		if risingEdge(d.Accumulation, merged.Accumulation, nowMs, window) {
			signals = append(signals, Signal{Type: models.AlertAccumulation, Direction: models.DirectionBull})
		}
		merged.Distribution = ResolveSticky(d.Distribution, merged.Distribution, nowMs, window)
		merged.Accumulation = ResolveSticky(d.Accumulation, merged.Accumulation, nowMs, window)
		merged.DistributionDrives = d.DistributionDrives
		merged.AccumulationDrives = d.AccumulationDrives
		if d.Status != "" {
			merged.Status = d.Status
		}
	}

	if d.Trend != "" {
		merged.Trend = d.Trend
	}
	if d.Timeframe != "" {
		merged.Timeframe = d.Timeframe
	}
	if d.Price != 0 {
		merged.Price = d.Price
	}

	merged.UpdatedAt = nowMs
	return merged, signals
}

// joinCautionTimeframes renders active caution timeframes in canonical
// low-to-high order.
func joinCautionTimeframes(cautions map[string]models.StickyFlag) string {
	var parts []string
	for _, tf := range models.Timeframes {
		if cautions[tf].Value {
			parts = append(parts, tf)
		}
	}
	return strings.Join(parts, ",")
}
