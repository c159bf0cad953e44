package repository

import (
	"context"
	"fmt"
	"time"

	"PulseBoard/internal/domain/models"
	"PulseBoard/pkg/clickhouse"
)

// SettingsRepository persists per-alert-type settings.
type SettingsRepository struct {
	client *clickhouse.Client
}

func NewSettingsRepository(client *clickhouse.Client) *SettingsRepository {
	return &SettingsRepository{client: client}
}

func (r *SettingsRepository) UpsertSetting(ctx context.Context, s models.AlertSetting) error {
	const q = `INSERT INTO alert_settings (alert_type, show_in_panel, importance, updated_at) VALUES (?, ?, ?, ?)`
	_, err := r.client.DB().ExecContext(ctx, q,
		s.AlertType, boolToUInt8(s.ShowInPanel), s.Importance, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("upsert setting %s: %w", s.AlertType, err)
	}
	return nil
}

func (r *SettingsRepository) LoadSettings(ctx context.Context) ([]models.AlertSetting, error) {
	const q = `SELECT alert_type, show_in_panel, importance FROM alert_settings FINAL`
	rows, err := r.client.DB().QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	defer rows.Close()

	var out []models.AlertSetting
	for rows.Next() {
		var s models.AlertSetting
		var show uint8
		if err := rows.Scan(&s.AlertType, &show, &s.Importance); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		s.ShowInPanel = show != 0
		out = append(out, s)
	}
	return out, rows.Err()
}
