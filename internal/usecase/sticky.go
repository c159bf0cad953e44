package usecase

import (
	"time"

	"PulseBoard/internal/domain/models"
)

// ResolveSticky merges one boolean sample into a sticky flag. A true sample
// activates the flag and refreshes its activation time. A false sample keeps
// the flag active while the previous activation is still inside the decay
// window, and deactivates it otherwise. Absent and false samples are
// equivalent.
func ResolveSticky(sample bool, existing models.StickyFlag, nowMs int64, window time.Duration) models.StickyFlag {
	if sample {
		return models.StickyFlag{Value: true, ActivatedAt: nowMs}
	}
	if existing.Active(nowMs, window) {
		return existing
	}
	return models.StickyFlag{}
}

// risingEdge reports whether a sample turns a flag on that was not
// effectively on before. Used to decide alert emission.
func risingEdge(sample bool, existing models.StickyFlag, nowMs int64, window time.Duration) bool {
	return sample && !existing.Active(nowMs, window)
}
