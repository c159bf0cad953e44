package cache

import (
	"testing"

	"PulseBoard/internal/domain/models"
)

func newAlert(id int64) *models.Alert {
	return &models.Alert{
		ID:        id,
		Symbol:    "BTCUSDT",
		AlertType: models.AlertMSSBullish,
		Category:  models.CategoryStructure,
		Timestamp: id,
	}
}

func TestAlertLogNewestFirst(t *testing.T) {
	l := NewAlertLog(10)
	l.Append(newAlert(1))
	l.Append(newAlert(2))
	l.Append(newAlert(3))

	got := l.Recent(2)
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 2 {
		t.Fatalf("expected newest-first [3 2], got %v", got)
	}
}

func TestAlertLogCapEvictsOldest(t *testing.T) {
	l := NewAlertLog(3)
	for id := int64(1); id <= 5; id++ {
		l.Append(newAlert(id))
	}

	if l.Len() != 3 {
		t.Fatalf("expected log to hold 3 alerts, got %d", l.Len())
	}
	all := l.All()
	if all[0].ID != 5 || all[2].ID != 3 {
		t.Fatalf("expected ids [5 4 3], got [%d %d %d]", all[0].ID, all[1].ID, all[2].ID)
	}
	// Evicted entries no longer count as unsynced.
	if l.UnsyncedCount() != 3 {
		t.Fatalf("expected 3 unsynced after eviction, got %d", l.UnsyncedCount())
	}
}

func TestAlertLogUnsyncedBatch(t *testing.T) {
	l := NewAlertLog(10)
	for id := int64(1); id <= 4; id++ {
		l.Append(newAlert(id))
	}

	batch := l.Unsynced(2)
	if len(batch) != 2 || batch[0].ID != 1 || batch[1].ID != 2 {
		t.Fatalf("expected oldest-first batch [1 2], got %v", batch)
	}

	l.MarkSynced([]int64{1, 2})
	batch = l.Unsynced(10)
	if len(batch) != 2 || batch[0].ID != 3 {
		t.Fatalf("expected remaining batch to start at 3, got %v", batch)
	}
	if l.UnsyncedCount() != 2 {
		t.Fatalf("expected 2 unsynced, got %d", l.UnsyncedCount())
	}
}

func TestAlertLogHydrate(t *testing.T) {
	l := NewAlertLog(3)
	l.Hydrate([]*models.Alert{newAlert(9), newAlert(8), newAlert(7), newAlert(6)})

	if l.Len() != 3 {
		t.Fatalf("hydrate must respect the cap, got %d", l.Len())
	}
	if l.UnsyncedCount() != 0 {
		t.Fatalf("hydrated alerts are already persisted")
	}
	if got := l.Recent(1); got[0].ID != 9 {
		t.Fatalf("expected newest hydrated alert first, got %d", got[0].ID)
	}
}
