package models

import (
	"bytes"
	"encoding/json"
)

// Webhook payloads arrive in legacy and current shapes from several chart
// script versions. They are decoded here as loosely as possible and resolved
// into canonical deltas once, at the merger boundary.

// FlexBool accepts JSON true/false as well as legacy 0/1 numbers.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("true")):
		*b = true
	case bytes.Equal(data, []byte("false")), bytes.Equal(data, []byte("null")):
		*b = false
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			*b = false
			return nil // unrecognized value reads as false, not an error
		}
		*b = n != 0
	}
	return nil
}

// Bool converts to a plain bool.
func (b FlexBool) Bool() bool { return bool(b) }

// StructurePayload is the structure-bias (MSS/BOS) webhook body. Either the
// bulk Timeframes map or the flat Timeframe/Direction fields are set.
type StructurePayload struct {
	Symbol    string  `json:"symbol"`
	Ticker    string  `json:"ticker"`
	Exchange  string  `json:"exchange"`
	Price     float64 `json:"price"`
	Timestamp int64   `json:"timestamp"`
	ChartTF   string  `json:"chart_tf"`

	// Flat single-timeframe form.
	Timeframe string `json:"timeframe"`
	Direction string `json:"direction"`
	Bias      string `json:"bias"`
	Signal    string `json:"signal"`

	// Bulk form. A value is either a legacy primitive direction string or a
	// structured {direction, signal, price, timestamp} object.
	Timeframes map[string]json.RawMessage `json:"timeframes"`

	Confluence *ConfluenceBlock `json:"confluence"`
}

// ConfluenceBlock carries explicitly supplied structure aggregates.
type ConfluenceBlock struct {
	BullCount *int   `json:"bull_count"`
	BearCount *int   `json:"bear_count"`
	Bias      string `json:"bias"`
	Strength  *int   `json:"strength"`
}

// MomentumPayload is the momentum webhook body.
type MomentumPayload struct {
	Symbol    string  `json:"symbol"`
	Ticker    string  `json:"ticker"`
	Exchange  string  `json:"exchange"`
	Timestamp int64   `json:"timestamp"`
	Timeframe string  `json:"timeframe"`
	Close     float64 `json:"close"`

	Structure *MomentumStructureBlock `json:"structure"`
	Momentum  *MomentumFlagsBlock     `json:"momentum"`

	// Mixed map: "count" and "timeframes" meta keys plus per-timeframe
	// boolean caution flags ("1h": true, ...).
	MTFCaution map[string]json.RawMessage `json:"mtfCaution"`

	Price *PriceBlock `json:"price"`
}

type MomentumStructureBlock struct {
	Trend         string `json:"trend"`
	LastStructure string `json:"lastStructure"`
}

type MomentumFlagsBlock struct {
	Status               string   `json:"status"`
	DistributionDetected FlexBool `json:"distributionDetected"`
	DistributionDrives   int      `json:"distributionDrives"`
	AccumulationDetected FlexBool `json:"accumulationDetected"`
	AccumulationDrives   int      `json:"accumulationDrives"`
}

type PriceBlock struct {
	Close float64 `json:"close"`
}

// ZonePayload is the supply/demand webhook body.
type ZonePayload struct {
	Symbol    string  `json:"symbol"`
	Ticker    string  `json:"ticker"`
	Exchange  string  `json:"exchange"`
	Price     float64 `json:"price"`
	Timestamp int64   `json:"timestamp"`
	ChartTF   string  `json:"chart_tf"`

	InDemandZone       FlexBool `json:"in_demand_zone"`
	InSupplyZone       FlexBool `json:"in_supply_zone"`
	HasDemandRejection FlexBool `json:"has_demand_rejection"`
	HasSupplyRejection FlexBool `json:"has_supply_rejection"`

	// Bulk per-timeframe maps. Keys may be legacy upper-case ("4H").
	DemandZones map[string]FlexBool `json:"demand_zones"`
	SupplyZones map[string]FlexBool `json:"supply_zones"`
}

// AlgoPayload is the multi-algorithm webhook body.
type AlgoPayload struct {
	Symbol    string  `json:"symbol"`
	Ticker    string  `json:"ticker"`
	Exchange  string  `json:"exchange"`
	Price     float64 `json:"price"`
	Timestamp int64   `json:"timestamp"`
	Timeframe string  `json:"timeframe"`

	DotsGreen    FlexBool `json:"dots_green"`
	DotsRed      FlexBool `json:"dots_red"`
	SquaresGreen FlexBool `json:"squares_green"`
	SquaresRed   FlexBool `json:"squares_red"`
	BgGreen      FlexBool `json:"background_green"`
	BgRed        FlexBool `json:"background_red"`
	Algo1Buy     FlexBool `json:"algo1_buy"`
	Algo1Sell    FlexBool `json:"algo1_sell"`
	Algo2Buy     FlexBool `json:"algo2_buy"`
	Algo2Sell    FlexBool `json:"algo2_sell"`
	Algo3Buy     FlexBool `json:"algo3_buy"`
	Algo3Sell    FlexBool `json:"algo3_sell"`
}
