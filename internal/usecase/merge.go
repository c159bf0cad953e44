package usecase

import (
	"strings"

	"PulseBoard/internal/domain/models"
)

// Signal is a state transition surfaced by a merge, the raw material for an
// alert. The ingestor turns signals into alert log entries.
type Signal struct {
	Type      string
	Direction models.Direction
	Timeframe string
}

// normalizeDirection maps the direction spellings seen across chart script
// versions onto the canonical set.
func normalizeDirection(raw string) models.Direction {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "BULL", "BULLISH", "BUY", "LONG", "UP":
		return models.DirectionBull
	case "BEAR", "BEARISH", "SELL", "SHORT", "DOWN":
		return models.DirectionBear
	default:
		return models.DirectionNeutral
	}
}

// firstNonEmpty returns the first non-blank string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
