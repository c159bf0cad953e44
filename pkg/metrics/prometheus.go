package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	updatesMerged *prometheus.CounterVec
	noopMerges    *prometheus.CounterVec
	dirtyDepth    *prometheus.GaugeVec
	syncDuration  *prometheus.HistogramVec
	syncFailures  *prometheus.CounterVec
	alertsCreated *prometheus.CounterVec
	setupsFound   *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		updatesMerged: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pulseboard_updates_merged_total",
				Help: "Total number of indicator updates merged into the cache",
			},
			[]string{"kind"},
		),
		noopMerges: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pulseboard_noop_merges_total",
				Help: "Total number of updates with no recognizable shape",
			},
			[]string{"kind"},
		),
		dirtyDepth: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pulseboard_dirty_symbols",
				Help: "Symbols awaiting durable write-back per kind",
			},
			[]string{"kind"},
		),
		syncDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pulseboard_sync_duration_seconds",
				Help:    "Duration of write-back sync batches in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		syncFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pulseboard_sync_failures_total",
				Help: "Total durable write failures during sync",
			},
			[]string{"kind"},
		),
		alertsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pulseboard_alerts_created_total",
				Help: "Total alerts appended to the alert log",
			},
			[]string{"category"},
		),
		setupsFound: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pulseboard_setups_detected_total",
				Help: "Total trade setups detected",
			},
			[]string{"direction"},
		),
	}
}

// RecordUpdate records a merged indicator update.
func (r *Recorder) RecordUpdate(kind string) {
	r.updatesMerged.WithLabelValues(kind).Inc()
}

// RecordNoOp records an update whose shape was not recognized.
func (r *Recorder) RecordNoOp(kind string) {
	r.noopMerges.WithLabelValues(kind).Inc()
}

// SetDirtyDepth records the current dirty-set size for a kind.
func (r *Recorder) SetDirtyDepth(kind string, n int) {
	r.dirtyDepth.WithLabelValues(kind).Set(float64(n))
}

// RecordSyncBatch records a completed sync batch for a kind.
func (r *Recorder) RecordSyncBatch(kind string, seconds float64, failures int) {
	r.syncDuration.WithLabelValues(kind).Observe(seconds)
	if failures > 0 {
		r.syncFailures.WithLabelValues(kind).Add(float64(failures))
	}
}

// RecordAlert records an alert log append.
func (r *Recorder) RecordAlert(category string) {
	r.alertsCreated.WithLabelValues(category).Inc()
}

// RecordSetup records a detected trade setup.
func (r *Recorder) RecordSetup(direction string) {
	r.setupsFound.WithLabelValues(direction).Inc()
}
