package util

import "strings"

// Exchange prefixes attached by charting platforms to webhook tickers.
var exchangePrefixes = []string{"BINANCE:", "BYBIT:", "COINBASE:", "KUCOIN:", "OKX:"}

// NormalizeSymbol strips a known exchange prefix and upper-cases the rest.
// Returns "" for empty input.
func NormalizeSymbol(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	for _, p := range exchangePrefixes {
		if strings.HasPrefix(s, p) {
			return strings.TrimPrefix(s, p)
		}
	}
	return s
}
