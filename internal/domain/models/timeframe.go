package models

import "strings"

// Timeframes supported by the indicator payloads, ordered low to high.
var Timeframes = []string{"1m", "3m", "5m", "15m", "30m", "1h", "4h", "12h", "1d", "1w"}

// HigherTimeframes qualify a zone for trade-setup confluence.
var HigherTimeframes = []string{"4h", "12h", "1d", "1w"}

var timeframeSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Timeframes))
	for _, tf := range Timeframes {
		m[tf] = struct{}{}
	}
	return m
}()

// CanonicalTimeframe lower-cases a timeframe label ("4H" -> "4h") and
// reports whether it is a supported one.
func CanonicalTimeframe(raw string) (string, bool) {
	tf := strings.ToLower(strings.TrimSpace(raw))
	_, ok := timeframeSet[tf]
	return tf, ok
}
