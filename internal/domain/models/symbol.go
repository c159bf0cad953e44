package models

// SymbolRecord holds per-instrument metadata and last-seen prices. Created
// on first update for a symbol, mutated on every ingestion, never deleted.
type SymbolRecord struct {
	Symbol      string  `json:"symbol"`
	Exchange    string  `json:"exchange,omitempty"`
	Label       string  `json:"label,omitempty"`
	Price       float64 `json:"price"`
	Open        float64 `json:"open,omitempty"`
	High        float64 `json:"high,omitempty"`
	Low         float64 `json:"low,omitempty"`
	Volume      float64 `json:"volume,omitempty"`
	LastUpdated int64   `json:"last_updated"`
	HasData     bool    `json:"has_data"`
	InWatchlist bool    `json:"in_watchlist"`
}
