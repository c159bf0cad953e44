package models

import "time"

// Kind identifies a cache sub-store. The first four are the signal kinds;
// the rest are additional dirty-tracking scopes flushed by the same sync
// engine.
type Kind string

const (
	KindStructure Kind = "structure"
	KindMomentum  Kind = "momentum"
	KindZones     Kind = "zones"
	KindMultiAlgo Kind = "multialgo"

	KindSymbols  Kind = "symbols"
	KindSetups   Kind = "setups"
	KindSettings Kind = "settings"
	KindAlerts   Kind = "alerts"
)

// SignalKinds are the kinds that carry per-symbol indicator records.
var SignalKinds = []Kind{KindStructure, KindMomentum, KindZones, KindMultiAlgo}

// Direction of a market signal.
type Direction string

const (
	DirectionBull    Direction = "BULL"
	DirectionBear    Direction = "BEAR"
	DirectionNeutral Direction = "NEUTRAL"
)

// TimeframeSignal is the per-timeframe sub-state of a structure-bias record.
type TimeframeSignal struct {
	Direction Direction `json:"direction,omitempty"`
	Signal    string    `json:"signal,omitempty"` // e.g. "MSS", "BOS"
	Price     float64   `json:"price,omitempty"`
	Timestamp int64     `json:"timestamp,omitempty"`
}

// StructureRecord is the canonical merged structure-bias state for a symbol.
type StructureRecord struct {
	Symbol     string                     `json:"symbol"`
	Exchange   string                     `json:"exchange,omitempty"`
	Price      float64                    `json:"price,omitempty"`
	ChartTF    string                     `json:"chart_tf,omitempty"`
	Timeframes map[string]TimeframeSignal `json:"timeframes"`
	BullCount  int                        `json:"bull_count"`
	BearCount  int                        `json:"bear_count"`
	Bias       Direction                  `json:"bias,omitempty"`
	Strength   int                        `json:"strength,omitempty"`
	UpdatedAt  int64                      `json:"updated_at"`
}

// MomentumRecord is the canonical merged momentum state for a symbol.
type MomentumRecord struct {
	Symbol             string                `json:"symbol"`
	Timeframe          string                `json:"timeframe,omitempty"`
	Price              float64               `json:"price,omitempty"`
	Trend              string                `json:"trend,omitempty"`
	Status             string                `json:"status,omitempty"`
	Cautions           map[string]StickyFlag `json:"cautions"`
	CautionCount       int                   `json:"caution_count"`
	CautionTimeframes  string                `json:"caution_timeframes,omitempty"`
	Distribution       StickyFlag            `json:"distribution"`
	DistributionDrives int                   `json:"distribution_drives,omitempty"`
	Accumulation       StickyFlag            `json:"accumulation"`
	AccumulationDrives int                   `json:"accumulation_drives,omitempty"`
	UpdatedAt          int64                 `json:"updated_at"`
}

// ZoneRecord is the canonical merged supply/demand zone state for a symbol.
type ZoneRecord struct {
	Symbol          string                `json:"symbol"`
	ChartTF         string                `json:"chart_tf,omitempty"`
	Price           float64               `json:"price,omitempty"`
	InDemand        StickyFlag            `json:"in_demand"`
	InSupply        StickyFlag            `json:"in_supply"`
	DemandRejection StickyFlag            `json:"demand_rejection"`
	SupplyRejection StickyFlag            `json:"supply_rejection"`
	Demand          map[string]StickyFlag `json:"demand"`
	Supply          map[string]StickyFlag `json:"supply"`
	UpdatedAt       int64                 `json:"updated_at"`
}

// AlgoSignals is the per-timeframe sub-state of a multi-algorithm record.
// Every field is a sticky flag.
type AlgoSignals struct {
	Algo1Buy     StickyFlag `json:"algo1_buy"`
	Algo1Sell    StickyFlag `json:"algo1_sell"`
	Algo2Buy     StickyFlag `json:"algo2_buy"`
	Algo2Sell    StickyFlag `json:"algo2_sell"`
	Algo3Buy     StickyFlag `json:"algo3_buy"`
	Algo3Sell    StickyFlag `json:"algo3_sell"`
	DotsGreen    StickyFlag `json:"dots_green"`
	DotsRed      StickyFlag `json:"dots_red"`
	SquaresGreen StickyFlag `json:"squares_green"`
	SquaresRed   StickyFlag `json:"squares_red"`
	BgGreen      StickyFlag `json:"background_green"`
	BgRed        StickyFlag `json:"background_red"`
}

// AlgoRecord is the canonical merged multi-algorithm state for a symbol.
type AlgoRecord struct {
	Symbol     string                 `json:"symbol"`
	Price      float64                `json:"price,omitempty"`
	Timeframes map[string]AlgoSignals `json:"timeframes"`
	UpdatedAt  int64                  `json:"updated_at"`
}

// AnyActive reports whether pick(sig) is still active at nowMs on any
// timeframe of the record.
func (r *AlgoRecord) AnyActive(nowMs int64, window time.Duration, pick func(AlgoSignals) StickyFlag) bool {
	if r == nil {
		return false
	}
	for _, sig := range r.Timeframes {
		if pick(sig).Active(nowMs, window) {
			return true
		}
	}
	return false
}

// ActiveDemandTimeframes returns the higher timeframes with an active
// demand zone, in canonical order.
func (r *ZoneRecord) ActiveDemandTimeframes() []string {
	return activeHigher(r, func(z *ZoneRecord) map[string]StickyFlag { return z.Demand })
}

// ActiveSupplyTimeframes returns the higher timeframes with an active
// supply zone, in canonical order.
func (r *ZoneRecord) ActiveSupplyTimeframes() []string {
	return activeHigher(r, func(z *ZoneRecord) map[string]StickyFlag { return z.Supply })
}

func activeHigher(r *ZoneRecord, pick func(*ZoneRecord) map[string]StickyFlag) []string {
	if r == nil {
		return nil
	}
	zones := pick(r)
	var out []string
	for _, tf := range HigherTimeframes {
		if zones[tf].Value {
			out = append(out, tf)
		}
	}
	return out
}
