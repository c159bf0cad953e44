package models

import "time"

// StickyFlag is a boolean signal that stays true for a grace window after
// its last true sample, to suppress flicker on the dashboard.
//
// Invariant: Value==true implies ActivatedAt is the unix-millisecond time of
// the last true sample; Value==false implies ActivatedAt==0.
type StickyFlag struct {
	Value       bool  `json:"value"`
	ActivatedAt int64 `json:"activated_at,omitempty"`
}

// Active reports the effective value at time nowMs given the decay window.
// A flag whose activation has aged past the window reads as inactive even
// before the next merge re-resolves it.
func (f StickyFlag) Active(nowMs int64, window time.Duration) bool {
	return f.Value && nowMs-f.ActivatedAt < window.Milliseconds()
}
