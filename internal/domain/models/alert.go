package models

// Alert type identifiers emitted by the merge and detection paths.
const (
	AlertDemandZoneEntry = "DEMAND_ZONE_ENTRY"
	AlertSupplyZoneEntry = "SUPPLY_ZONE_ENTRY"
	AlertDemandRejection = "DEMAND_REJECTION"
	AlertSupplyRejection = "SUPPLY_REJECTION"
	AlertMSSBullish      = "MSS_BULLISH"
	AlertMSSBearish      = "MSS_BEARISH"
	AlertBOSBullish      = "BOS_BULLISH"
	AlertBOSBearish      = "BOS_BEARISH"
	AlertCautionSignal   = "CAUTION_SIGNAL"
	AlertDistribution    = "DISTRIBUTION"
	AlertAccumulation    = "ACCUMULATION"
	AlertAlgo1Buy        = "ALGO1_BUY"
	AlertAlgo1Sell       = "ALGO1_SELL"
	AlertAlgo2Buy        = "ALGO2_BUY"
	AlertAlgo2Sell       = "ALGO2_SELL"
	AlertAlgo3Buy        = "ALGO3_BUY"
	AlertAlgo3Sell       = "ALGO3_SELL"
	AlertDotsGreen       = "DOTS_GREEN"
	AlertDotsRed         = "DOTS_RED"
	AlertSquaresGreen    = "SQUARES_GREEN"
	AlertSquaresRed      = "SQUARES_RED"
	AlertLongSetup       = "LONG_SETUP"
	AlertShortSetup      = "SHORT_SETUP"
)

// Alert categories.
const (
	CategoryStructure = "MSSBOS"
	CategoryMomentum  = "MOMENTUM"
	CategoryZone      = "ZONE"
	CategoryAlgo      = "ALGO"
	CategorySetup     = "SETUP"
)

// Importance levels.
const (
	ImportanceNormal = "normal"
	ImportanceHigh   = "high"
)

// AllAlertTypes enumerates every alert type for settings seeding.
var AllAlertTypes = []string{
	AlertDemandZoneEntry, AlertSupplyZoneEntry, AlertDemandRejection, AlertSupplyRejection,
	AlertMSSBullish, AlertMSSBearish, AlertBOSBullish, AlertBOSBearish,
	AlertCautionSignal, AlertDistribution, AlertAccumulation,
	AlertAlgo1Buy, AlertAlgo1Sell, AlertAlgo2Buy, AlertAlgo2Sell, AlertAlgo3Buy, AlertAlgo3Sell,
	AlertDotsGreen, AlertDotsRed, AlertSquaresGreen, AlertSquaresRed,
	AlertLongSetup, AlertShortSetup,
}

// Alert is one immutable entry in the bounded alert log.
type Alert struct {
	ID         int64     `json:"id"`
	Symbol     string    `json:"symbol"`
	AlertType  string    `json:"alert_type"`
	Category   string    `json:"alert_category"`
	Direction  Direction `json:"direction,omitempty"`
	Timeframe  string    `json:"timeframe,omitempty"`
	Price      float64   `json:"price_at_alert,omitempty"`
	Message    string    `json:"message"`
	Importance string    `json:"importance"`
	Timestamp  int64     `json:"timestamp"`
	Visible    bool      `json:"show_in_panel"`
}

// AlertSetting controls visibility and default importance per alert type.
type AlertSetting struct {
	AlertType   string `json:"alert_type"`
	ShowInPanel bool   `json:"show_in_panel"`
	Importance  string `json:"importance"`
}

// DefaultAlertSetting returns the seed setting for an alert type. Setup and
// rejection alerts default to high importance.
func DefaultAlertSetting(alertType string) AlertSetting {
	importance := ImportanceNormal
	switch alertType {
	case AlertLongSetup, AlertShortSetup, AlertDemandRejection, AlertSupplyRejection:
		importance = ImportanceHigh
	}
	return AlertSetting{AlertType: alertType, ShowInPanel: true, Importance: importance}
}
