package usecase

import (
	"encoding/json"
	"strings"

	"PulseBoard/internal/domain/models"
)

// StructureDelta is the normalized content of a structure-bias webhook.
// Payload shape variants are resolved into this form exactly once; merging
// and alert emission both work from it.
type StructureDelta struct {
	Symbol     string
	Exchange   string
	Price      float64
	ChartTF    string
	Timeframes map[string]models.TimeframeSignal
	Confluence *models.ConfluenceBlock
}

// timeframeSignalBody is the structured per-timeframe value of the bulk
// payload form.
type timeframeSignalBody struct {
	Direction string  `json:"direction"`
	Bias      string  `json:"bias"`
	Signal    string  `json:"signal"`
	Price     float64 `json:"price"`
	Timestamp int64   `json:"timestamp"`
}

// ResolveStructureDelta normalizes a structure payload. It returns false
// when the payload carries nothing usable, which the caller treats as a
// no-op rather than an error.
func ResolveStructureDelta(symbol string, p *models.StructurePayload, nowMs int64) (*StructureDelta, bool) {
	d := &StructureDelta{
		Symbol:     symbol,
		Exchange:   p.Exchange,
		Price:      p.Price,
		ChartTF:    p.ChartTF,
		Confluence: p.Confluence,
		Timeframes: make(map[string]models.TimeframeSignal),
	}

	for raw, body := range p.Timeframes {
		tf, ok := models.CanonicalTimeframe(raw)
		if !ok {
			continue
		}
		sig, ok := parseTimeframeSignal(body)
		if !ok {
			continue
		}
		if sig.Timestamp == 0 {
			sig.Timestamp = nowMs
		}
		if sig.Price == 0 {
			sig.Price = p.Price
		}
		d.Timeframes[tf] = sig
	}

	// Flat single-timeframe form, used by older script versions.
	if len(d.Timeframes) == 0 && p.Timeframe != "" {
		if tf, ok := models.CanonicalTimeframe(p.Timeframe); ok {
			ts := p.Timestamp
			if ts == 0 {
				ts = nowMs
			}
			d.Timeframes[tf] = models.TimeframeSignal{
				Direction: normalizeDirection(firstNonEmpty(p.Direction, p.Bias)),
				Signal:    normalizeStructureSignal(p.Signal),
				Price:     p.Price,
				Timestamp: ts,
			}
		}
	}

	if len(d.Timeframes) == 0 && d.Confluence == nil {
		return nil, false
	}
	return d, true
}

func parseTimeframeSignal(body json.RawMessage) (models.TimeframeSignal, bool) {
	// Legacy primitive form: the value is just a direction string.
	var dir string
	if err := json.Unmarshal(body, &dir); err == nil {
		return models.TimeframeSignal{Direction: normalizeDirection(dir), Signal: "MSS"}, true
	}

	var obj timeframeSignalBody
	if err := json.Unmarshal(body, &obj); err != nil {
		return models.TimeframeSignal{}, false
	}
	return models.TimeframeSignal{
		Direction: normalizeDirection(firstNonEmpty(obj.Direction, obj.Bias)),
		Signal:    normalizeStructureSignal(obj.Signal),
		Price:     obj.Price,
		Timestamp: obj.Timestamp,
	}, true
}

func normalizeStructureSignal(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "BOS":
		return "BOS"
	default:
		return "MSS"
	}
}

// MergeStructure folds a delta into the existing record and reports the
// direction transitions that warrant alerts. existing may be nil.
func MergeStructure(existing *models.StructureRecord, d *StructureDelta, nowMs int64) (*models.StructureRecord, []Signal) {
	merged := &models.StructureRecord{
		Symbol:     d.Symbol,
		Timeframes: make(map[string]models.TimeframeSignal),
	}
	if existing != nil {
		merged.Exchange = existing.Exchange
		merged.Price = existing.Price
		merged.ChartTF = existing.ChartTF
		merged.Bias = existing.Bias
		merged.Strength = existing.Strength
		for tf, sig := range existing.Timeframes {
			merged.Timeframes[tf] = sig
		}
	}

	var signals []Signal
	for tf, sig := range d.Timeframes {
		prev := merged.Timeframes[tf]
		if sig.Direction != prev.Direction && sig.Direction != models.DirectionNeutral {
			signals = append(signals, Signal{
				Type:      structureAlertType(sig.Signal, sig.Direction),
				Direction: sig.Direction,
				Timeframe: tf,
			})
		}
		merged.Timeframes[tf] = sig
	}

	if d.Exchange != "" {
		merged.Exchange = d.Exchange
	}
	if d.Price != 0 {
		merged.Price = d.Price
	}
	if d.ChartTF != "" {
		merged.ChartTF = d.ChartTF
	}

	// Aggregates: explicitly supplied values win, everything else is derived
	// from the merged timeframe map.
	bull, bear := 0, 0
	for _, sig := range merged.Timeframes {
		switch sig.Direction {
		case models.DirectionBull:
			bull++
		case models.DirectionBear:
			bear++
		}
	}
	merged.BullCount, merged.BearCount = bull, bear
	merged.Bias = deriveBias(bull, bear)
	merged.Strength = max(bull, bear)

	if c := d.Confluence; c != nil {
		if c.BullCount != nil {
			merged.BullCount = *c.BullCount
		}
		if c.BearCount != nil {
			merged.BearCount = *c.BearCount
		}
		if c.Bias != "" {
			merged.Bias = normalizeDirection(c.Bias)
		}
		if c.Strength != nil {
			merged.Strength = *c.Strength
		}
	}

	merged.UpdatedAt = nowMs
	return merged, signals
}

func structureAlertType(signal string, dir models.Direction) string {
	if signal == "BOS" {
		if dir == models.DirectionBull {
			return models.AlertBOSBullish
		}
		return models.AlertBOSBearish
	}
	if dir == models.DirectionBull {
		return models.AlertMSSBullish
	}
	return models.AlertMSSBearish
}

func deriveBias(bull, bear int) models.Direction {
	switch {
	case bull > bear:
		return models.DirectionBull
	case bear > bull:
		return models.DirectionBear
	default:
		return models.DirectionNeutral
	}
}
