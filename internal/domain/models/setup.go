package models

// Trade setup statuses. ACTIVE setups transition to the terminal states
// through paths outside the cache engine (manual or price-action driven).
const (
	SetupStatusActive      = "ACTIVE"
	SetupStatusInvalidated = "INVALIDATED"
	SetupStatusClosed      = "CLOSED"
)

// SetupTypeConfluence is the only setup type the detector produces.
const SetupTypeConfluence = "CONFLUENCE"

// Confluence score weights. The score starts at ScoreBase and each
// contributing condition adds its weight.
const (
	ScoreBase           = 2
	ScorePerZoneTF      = 1
	ScoreDotMarker      = 1
	ScoreSquareMarker   = 1
	ScoreCautionPresent = 1
	ScorePrimaryAlgo    = 2
)

// TradeSetup is a detected confluence trade candidate.
type TradeSetup struct {
	ID              string    `json:"id"`
	Symbol          string    `json:"symbol"`
	SetupType       string    `json:"setup_type"`
	Direction       Direction `json:"direction"`
	EntryPrice      float64   `json:"entry_price"`
	DetectedAt      int64     `json:"detected_at"`
	ZoneTimeframes  []string  `json:"zone_timeframes,omitempty"`
	StructureSignal Direction `json:"structure_signal,omitempty"`
	CautionCount    int       `json:"caution_count"`
	HasDots         bool      `json:"has_dots"`
	HasSquares      bool      `json:"has_squares"`
	ConfluenceScore int       `json:"confluence_score"`
	Status          string    `json:"status"`
	ExitPrice       float64   `json:"exit_price,omitempty"`
	ExitTimestamp   int64     `json:"exit_timestamp,omitempty"`
	UpdatedAt       int64     `json:"updated_at"`
}
