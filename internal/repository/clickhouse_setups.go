package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"PulseBoard/internal/domain/models"
	"PulseBoard/pkg/clickhouse"
)

// SetupRepository persists trade setups keyed by id.
type SetupRepository struct {
	client *clickhouse.Client
}

func NewSetupRepository(client *clickhouse.Client) *SetupRepository {
	return &SetupRepository{client: client}
}

func (r *SetupRepository) UpsertSetup(ctx context.Context, s *models.TradeSetup) error {
	zoneTFs, err := json.Marshal(s.ZoneTimeframes)
	if err != nil {
		return fmt.Errorf("marshal setup %s: %w", s.ID, err)
	}
	const q = `INSERT INTO trade_setups
		(id, symbol, setup_type, direction, entry_price, detected_at, zone_timeframes, structure_signal,
		 caution_count, has_dots, has_squares, confluence_score, status, exit_price, exit_timestamp, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.client.DB().ExecContext(ctx, q,
		s.ID, s.Symbol, s.SetupType, string(s.Direction), s.EntryPrice, s.DetectedAt,
		string(zoneTFs), string(s.StructureSignal),
		int32(s.CautionCount), boolToUInt8(s.HasDots), boolToUInt8(s.HasSquares),
		int32(s.ConfluenceScore), s.Status, s.ExitPrice, s.ExitTimestamp, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert setup %s: %w", s.ID, err)
	}
	return nil
}

func (r *SetupRepository) LoadActiveSetups(ctx context.Context) ([]*models.TradeSetup, error) {
	return r.loadSetups(ctx, `SELECT `+setupColumns+` FROM trade_setups FINAL WHERE status = ?`, models.SetupStatusActive)
}

func (r *SetupRepository) LoadRecentSetups(ctx context.Context, limit int) ([]*models.TradeSetup, error) {
	return r.loadSetups(ctx, `SELECT `+setupColumns+` FROM trade_setups FINAL ORDER BY detected_at DESC LIMIT ?`, limit)
}

const setupColumns = `id, symbol, setup_type, direction, entry_price, detected_at, zone_timeframes, structure_signal,
	caution_count, has_dots, has_squares, confluence_score, status, exit_price, exit_timestamp, updated_at`

func (r *SetupRepository) loadSetups(ctx context.Context, q string, args ...any) ([]*models.TradeSetup, error) {
	rows, err := r.client.DB().QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("load setups: %w", err)
	}
	defer rows.Close()

	var out []*models.TradeSetup
	for rows.Next() {
		s := &models.TradeSetup{}
		var direction, structureSignal, zoneTFs string
		var cautionCount, score int32
		var hasDots, hasSquares uint8
		if err := rows.Scan(
			&s.ID, &s.Symbol, &s.SetupType, &direction, &s.EntryPrice, &s.DetectedAt,
			&zoneTFs, &structureSignal,
			&cautionCount, &hasDots, &hasSquares, &score,
			&s.Status, &s.ExitPrice, &s.ExitTimestamp, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan setup: %w", err)
		}
		s.Direction = models.Direction(direction)
		s.StructureSignal = models.Direction(structureSignal)
		s.CautionCount = int(cautionCount)
		s.ConfluenceScore = int(score)
		s.HasDots = hasDots != 0
		s.HasSquares = hasSquares != 0
		if zoneTFs != "" && zoneTFs != "null" {
			if err := json.Unmarshal([]byte(zoneTFs), &s.ZoneTimeframes); err != nil {
				return nil, fmt.Errorf("decode setup %s timeframes: %w", s.ID, err)
			}
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
