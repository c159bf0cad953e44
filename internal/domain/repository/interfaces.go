package repository

import (
	"context"

	"PulseBoard/internal/domain/models"
)

// StateStore persists canonical per-symbol records, one durable table per
// kind, keyed by symbol with upsert semantics.
type StateStore interface {
	UpsertSymbol(ctx context.Context, rec *models.SymbolRecord) error
	LoadSymbols(ctx context.Context) ([]*models.SymbolRecord, error)

	UpsertStructure(ctx context.Context, rec *models.StructureRecord) error
	LoadStructures(ctx context.Context) ([]*models.StructureRecord, error)

	UpsertMomentum(ctx context.Context, rec *models.MomentumRecord) error
	LoadMomentums(ctx context.Context) ([]*models.MomentumRecord, error)

	UpsertZones(ctx context.Context, rec *models.ZoneRecord) error
	LoadZones(ctx context.Context) ([]*models.ZoneRecord, error)

	UpsertAlgo(ctx context.Context, rec *models.AlgoRecord) error
	LoadAlgos(ctx context.Context) ([]*models.AlgoRecord, error)

	Health(ctx context.Context) error
}

// AlertStore persists the alert log. Inserts are idempotent by alert id.
type AlertStore interface {
	InsertAlerts(ctx context.Context, alerts []*models.Alert) error
	LoadRecentAlerts(ctx context.Context, limit int) ([]*models.Alert, error)
}

// SetupStore persists trade setups keyed by id.
type SetupStore interface {
	UpsertSetup(ctx context.Context, s *models.TradeSetup) error
	LoadActiveSetups(ctx context.Context) ([]*models.TradeSetup, error)
	LoadRecentSetups(ctx context.Context, limit int) ([]*models.TradeSetup, error)
}

// SettingsStore persists per-alert-type visibility settings.
type SettingsStore interface {
	UpsertSetting(ctx context.Context, s models.AlertSetting) error
	LoadSettings(ctx context.Context) ([]models.AlertSetting, error)
}

// AlertPublisher fans created alerts out to an event stream. Best-effort;
// failures must never affect ingestion.
type AlertPublisher interface {
	PublishAlert(ctx context.Context, a *models.Alert) error
	Close() error
}

// Metrics records operational counters and gauges.
type Metrics interface {
	RecordUpdate(kind string)
	RecordNoOp(kind string)
	SetDirtyDepth(kind string, n int)
	RecordSyncBatch(kind string, seconds float64, failures int)
	RecordAlert(category string)
	RecordSetup(direction string)
}
