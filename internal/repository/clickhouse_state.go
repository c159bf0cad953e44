package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"PulseBoard/internal/domain/models"
	"PulseBoard/pkg/clickhouse"
)

// StateRepository persists canonical records in ClickHouse. Signal records
// go into per-kind state tables as JSON documents keyed by symbol; the
// symbols table is fully columnar.
type StateRepository struct {
	client *clickhouse.Client
}

func NewStateRepository(client *clickhouse.Client) *StateRepository {
	return &StateRepository{client: client}
}

// InitSchema creates all tables if missing.
func (r *StateRepository) InitSchema(ctx context.Context) error {
	return r.client.InitSchema(ctx, SchemaStatements())
}

func (r *StateRepository) Health(ctx context.Context) error {
	return r.client.Health(ctx)
}

func (r *StateRepository) UpsertSymbol(ctx context.Context, rec *models.SymbolRecord) error {
	const q = `INSERT INTO symbols
		(symbol, exchange, label, price, open, high, low, volume, last_updated, has_data, in_watchlist, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.client.DB().ExecContext(ctx, q,
		rec.Symbol, rec.Exchange, rec.Label,
		rec.Price, rec.Open, rec.High, rec.Low, rec.Volume,
		rec.LastUpdated, boolToUInt8(rec.HasData), boolToUInt8(rec.InWatchlist),
		time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("upsert symbol %s: %w", rec.Symbol, err)
	}
	return nil
}

func (r *StateRepository) LoadSymbols(ctx context.Context) ([]*models.SymbolRecord, error) {
	const q = `SELECT symbol, exchange, label, price, open, high, low, volume, last_updated, has_data, in_watchlist
		FROM symbols FINAL`
	rows, err := r.client.DB().QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("load symbols: %w", err)
	}
	defer rows.Close()

	var out []*models.SymbolRecord
	for rows.Next() {
		rec := &models.SymbolRecord{}
		var hasData, inWatchlist uint8
		if err := rows.Scan(
			&rec.Symbol, &rec.Exchange, &rec.Label,
			&rec.Price, &rec.Open, &rec.High, &rec.Low, &rec.Volume,
			&rec.LastUpdated, &hasData, &inWatchlist,
		); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		rec.HasData = hasData != 0
		rec.InWatchlist = inWatchlist != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *StateRepository) UpsertStructure(ctx context.Context, rec *models.StructureRecord) error {
	return r.upsertState(ctx, "structure_state", rec.Symbol, rec, rec.UpdatedAt)
}

func (r *StateRepository) LoadStructures(ctx context.Context) ([]*models.StructureRecord, error) {
	return loadStates[models.StructureRecord](ctx, r.client.DB(), "structure_state")
}

func (r *StateRepository) UpsertMomentum(ctx context.Context, rec *models.MomentumRecord) error {
	return r.upsertState(ctx, "momentum_state", rec.Symbol, rec, rec.UpdatedAt)
}

func (r *StateRepository) LoadMomentums(ctx context.Context) ([]*models.MomentumRecord, error) {
	return loadStates[models.MomentumRecord](ctx, r.client.DB(), "momentum_state")
}

func (r *StateRepository) UpsertZones(ctx context.Context, rec *models.ZoneRecord) error {
	return r.upsertState(ctx, "zone_state", rec.Symbol, rec, rec.UpdatedAt)
}

func (r *StateRepository) LoadZones(ctx context.Context) ([]*models.ZoneRecord, error) {
	return loadStates[models.ZoneRecord](ctx, r.client.DB(), "zone_state")
}

func (r *StateRepository) UpsertAlgo(ctx context.Context, rec *models.AlgoRecord) error {
	return r.upsertState(ctx, "algo_state", rec.Symbol, rec, rec.UpdatedAt)
}

func (r *StateRepository) LoadAlgos(ctx context.Context) ([]*models.AlgoRecord, error) {
	return loadStates[models.AlgoRecord](ctx, r.client.DB(), "algo_state")
}

func (r *StateRepository) upsertState(ctx context.Context, table, symbol string, rec any, updatedAt int64) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal %s %s: %w", table, symbol, err)
	}
	if updatedAt == 0 {
		updatedAt = time.Now().UnixMilli()
	}
	q := fmt.Sprintf("INSERT INTO %s (symbol, state, updated_at) VALUES (?, ?, ?)", table)
	if _, err := r.client.DB().ExecContext(ctx, q, symbol, string(data), updatedAt); err != nil {
		return fmt.Errorf("upsert %s %s: %w", table, symbol, err)
	}
	return nil
}

func loadStates[T any](ctx context.Context, db *sql.DB, table string) ([]*T, error) {
	q := fmt.Sprintf("SELECT state FROM %s FINAL", table)
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", table, err)
	}
	defer rows.Close()

	var out []*T
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		rec := new(T)
		if err := json.Unmarshal([]byte(data), rec); err != nil {
			return nil, fmt.Errorf("decode %s: %w", table, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
