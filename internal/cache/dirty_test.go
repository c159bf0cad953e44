package cache

import (
	"testing"

	"PulseBoard/internal/domain/models"
)

func TestDirtyTrackerMarkAndSnapshot(t *testing.T) {
	d := NewDirtyTracker()
	d.MarkDirty(models.KindStructure, "BTCUSDT")
	d.MarkDirty(models.KindStructure, "ETHUSDT")
	d.MarkDirty(models.KindZones, "BTCUSDT")

	snap := d.Snapshot(models.KindStructure)
	if len(snap) != 2 {
		t.Fatalf("expected 2 dirty structure entries, got %d", len(snap))
	}
	if d.Depth(models.KindZones) != 1 {
		t.Fatalf("expected 1 dirty zones entry, got %d", d.Depth(models.KindZones))
	}
	if d.Depth(models.KindMomentum) != 0 {
		t.Fatalf("expected momentum scope to be clean")
	}
}

func TestDirtyTrackerSnapshotDoesNotClear(t *testing.T) {
	d := NewDirtyTracker()
	d.MarkDirty(models.KindMomentum, "BTCUSDT")

	_ = d.Snapshot(models.KindMomentum)
	if d.Depth(models.KindMomentum) != 1 {
		t.Fatalf("snapshot must not clear dirty entries")
	}
}

func TestDirtyTrackerClearIfUnchanged(t *testing.T) {
	d := NewDirtyTracker()
	d.MarkDirty(models.KindStructure, "BTCUSDT")

	snap := d.Snapshot(models.KindStructure)
	if !d.ClearIfUnchanged(models.KindStructure, "BTCUSDT", snap["BTCUSDT"]) {
		t.Fatalf("expected clear to succeed for unchanged generation")
	}
	if d.Depth(models.KindStructure) != 0 {
		t.Fatalf("entry should be clean after clear")
	}
}

func TestDirtyTrackerRemarkDuringFlushStaysDirty(t *testing.T) {
	d := NewDirtyTracker()
	d.MarkDirty(models.KindStructure, "BTCUSDT")

	snap := d.Snapshot(models.KindStructure)
	// A second update lands while the flush is in flight.
	d.MarkDirty(models.KindStructure, "BTCUSDT")

	if d.ClearIfUnchanged(models.KindStructure, "BTCUSDT", snap["BTCUSDT"]) {
		t.Fatalf("clear must fail after a concurrent re-mark")
	}
	if d.Depth(models.KindStructure) != 1 {
		t.Fatalf("re-marked entry must stay dirty")
	}
}

func TestDirtyTrackerClearUnknownKey(t *testing.T) {
	d := NewDirtyTracker()
	if d.ClearIfUnchanged(models.KindStructure, "BTCUSDT", 1) {
		t.Fatalf("clearing an unknown key must report false")
	}
}
