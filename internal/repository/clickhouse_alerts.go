package repository

import (
	"context"
	"fmt"
	"strings"

	"PulseBoard/internal/domain/models"
	"PulseBoard/pkg/clickhouse"
)

// AlertRepository persists the alert log. The table collapses duplicate ids,
// so retrying a partially written batch is harmless.
type AlertRepository struct {
	client *clickhouse.Client
}

func NewAlertRepository(client *clickhouse.Client) *AlertRepository {
	return &AlertRepository{client: client}
}

func (r *AlertRepository) InsertAlerts(ctx context.Context, alerts []*models.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO alerts
		(id, symbol, alert_type, alert_category, direction, timeframe, price_at_alert, message, importance, timestamp, show_in_panel)
		VALUES `)
	args := make([]any, 0, len(alerts)*11)
	for n, a := range alerts {
		if n > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			a.ID, a.Symbol, a.AlertType, a.Category, string(a.Direction), a.Timeframe,
			a.Price, a.Message, a.Importance, a.Timestamp, boolToUInt8(a.Visible),
		)
	}

	if _, err := r.client.DB().ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("insert %d alerts: %w", len(alerts), err)
	}
	return nil
}

func (r *AlertRepository) LoadRecentAlerts(ctx context.Context, limit int) ([]*models.Alert, error) {
	const q = `SELECT id, symbol, alert_type, alert_category, direction, timeframe, price_at_alert, message, importance, timestamp, show_in_panel
		FROM alerts FINAL
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`
	rows, err := r.client.DB().QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("load alerts: %w", err)
	}
	defer rows.Close()

	var out []*models.Alert
	for rows.Next() {
		a := &models.Alert{}
		var direction string
		var visible uint8
		if err := rows.Scan(
			&a.ID, &a.Symbol, &a.AlertType, &a.Category, &direction, &a.Timeframe,
			&a.Price, &a.Message, &a.Importance, &a.Timestamp, &visible,
		); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		a.Direction = models.Direction(direction)
		a.Visible = visible != 0
		out = append(out, a)
	}
	return out, rows.Err()
}
