package usecase

import (
	"testing"
	"time"

	"PulseBoard/internal/domain/models"
)

func TestResolveSticky(t *testing.T) {
	window := time.Hour
	now := int64(10_000_000)

	cases := []struct {
		name     string
		sample   bool
		existing models.StickyFlag
		want     models.StickyFlag
	}{
		{
			name:   "true sample activates",
			sample: true,
			want:   models.StickyFlag{Value: true, ActivatedAt: now},
		},
		{
			name:     "true sample refreshes activation",
			sample:   true,
			existing: models.StickyFlag{Value: true, ActivatedAt: now - 1000},
			want:     models.StickyFlag{Value: true, ActivatedAt: now},
		},
		{
			name:     "false sample inside window retains",
			sample:   false,
			existing: models.StickyFlag{Value: true, ActivatedAt: now - window.Milliseconds()/2},
			want:     models.StickyFlag{Value: true, ActivatedAt: now - window.Milliseconds()/2},
		},
		{
			name:     "false sample past window deactivates",
			sample:   false,
			existing: models.StickyFlag{Value: true, ActivatedAt: now - window.Milliseconds()},
			want:     models.StickyFlag{},
		},
		{
			name:   "false sample on inactive flag stays inactive",
			sample: false,
			want:   models.StickyFlag{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveSticky(tc.sample, tc.existing, now, window)
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestRisingEdge(t *testing.T) {
	window := time.Hour
	now := int64(10_000_000)

	if !risingEdge(true, models.StickyFlag{}, now, window) {
		t.Fatalf("true sample on inactive flag is a rising edge")
	}
	if risingEdge(true, models.StickyFlag{Value: true, ActivatedAt: now - 1}, now, window) {
		t.Fatalf("true sample on active flag is not a rising edge")
	}
	if !risingEdge(true, models.StickyFlag{Value: true, ActivatedAt: now - window.Milliseconds() - 1}, now, window) {
		t.Fatalf("true sample on a decayed flag is a rising edge")
	}
	if risingEdge(false, models.StickyFlag{}, now, window) {
		t.Fatalf("false sample is never a rising edge")
	}
}
