package cache

import (
	"sync"

	"PulseBoard/internal/domain/models"
)

// AlertLog is the bounded in-memory alert history, newest first. It also
// tracks which entries have not reached durable storage yet so the flusher
// can batch them.
type AlertLog struct {
	mu       sync.Mutex
	capacity int
	alerts   []*models.Alert
	unsynced map[int64]struct{}
}

func NewAlertLog(capacity int) *AlertLog {
	return &AlertLog{
		capacity: capacity,
		unsynced: make(map[int64]struct{}),
	}
}

// Append inserts a freshly created alert at the head and marks it unsynced.
// When the log is full the oldest entry falls off, synced or not.
func (l *AlertLog) Append(a *models.Alert) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.alerts = append([]*models.Alert{a}, l.alerts...)
	l.unsynced[a.ID] = struct{}{}
	for len(l.alerts) > l.capacity {
		dropped := l.alerts[len(l.alerts)-1]
		l.alerts = l.alerts[:len(l.alerts)-1]
		delete(l.unsynced, dropped.ID)
	}
}

// Hydrate replaces the log contents with already-persisted alerts, expected
// newest first.
func (l *AlertLog) Hydrate(alerts []*models.Alert) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(alerts) > l.capacity {
		alerts = alerts[:l.capacity]
	}
	l.alerts = append([]*models.Alert(nil), alerts...)
	l.unsynced = make(map[int64]struct{})
}

// Recent returns up to limit alerts, newest first. limit <= 0 means all.
func (l *AlertLog) Recent(limit int) []*models.Alert {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.alerts)
	if limit > 0 && limit < n {
		n = limit
	}
	return append([]*models.Alert(nil), l.alerts[:n]...)
}

// All returns every held alert, newest first.
func (l *AlertLog) All() []*models.Alert {
	return l.Recent(0)
}

// Unsynced returns up to max unflushed alerts, oldest first so durable
// storage fills in arrival order.
func (l *AlertLog) Unsynced(max int) []*models.Alert {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*models.Alert
	for i := len(l.alerts) - 1; i >= 0; i-- {
		a := l.alerts[i]
		if _, ok := l.unsynced[a.ID]; !ok {
			continue
		}
		out = append(out, a)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

// MarkSynced clears the unsynced flag for the given alert ids.
func (l *AlertLog) MarkSynced(ids []int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, id := range ids {
		delete(l.unsynced, id)
	}
}

// UnsyncedCount reports how many held alerts still need flushing.
func (l *AlertLog) UnsyncedCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.unsynced)
}

// Len reports the number of held alerts.
func (l *AlertLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.alerts)
}
