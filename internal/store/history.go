package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgHistory answers the reconciliation engine's baseline queries from the
// persisted revenue entries. Shared by the upload pipeline and the cron
// audit so both reconcile against the same view of history.
type PgHistory struct {
	Pool *pgxpool.Pool
}

func (h *PgHistory) ReportingDates(ctx context.Context) ([]time.Time, error) {
	rows, err := h.Pool.Query(ctx, `SELECT DISTINCT report_date FROM revenue_entries ORDER BY report_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (h *PgHistory) ClosingDifferentials(ctx context.Context, date time.Time) (map[string]float64, error) {
	rows, err := h.Pool.Query(ctx,
		`SELECT engagement_id, diferencial_final FROM revenue_entries WHERE report_date = $1`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]float64)
	for rows.Next() {
		var id string
		var diff *float64
		if err := rows.Scan(&id, &diff); err != nil {
			return nil, err
		}
		if diff != nil {
			out[id] = *diff
		}
	}
	return out, rows.Err()
}
