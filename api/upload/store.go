package upload

import (
	"context"
	"time"

	"RevenueTracker/internal/revenue"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var entryColumns = []string{
	"report_date", "batch_id", "engagement_id", "engagement", "client",
	"engagement_partner", "engagement_manager", "service_line", "sub_service_line",
	"fytd_charged_hours", "fytd_direct_cost_amt", "fytd_ansr_amt",
	"mtd_charged_hours", "mtd_direct_cost_amt", "mtd_ansr_amt", "cp_ansr_amt",
	"perdida_monitor", "dif_div", "duplicate_engagement_id", "periodo_fiscal",
	"diferencial_final", "diferencial_mtd", "fytd_ansr_sintetico", "revenue_days_cp",
}

// ReplaceEntries persists a reporting date as a full replace: delete the
// date's rows, then bulk-insert the freshly computed set, inside one
// transaction so readers never observe a partially replaced date.
func ReplaceEntries(ctx context.Context, pool *pgxpool.Pool, date time.Time, batchID string, rows []revenue.EngagementRow) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM revenue_entries WHERE report_date = $1`, date); err != nil {
		return err
	}

	copyRows := make([][]interface{}, len(rows))
	for i := range rows {
		r := &rows[i]
		copyRows[i] = []interface{}{
			r.ReportDate, batchID, r.EngagementID, r.Engagement, r.Client,
			r.Partner, r.Manager, r.ServiceLine, r.SubServiceLine,
			r.FYTDChargedHours, r.FYTDDirectCost, r.FYTDANSRAmt,
			r.MTDChargedHours, r.MTDDirectCost, r.MTDANSRAmt, r.CPANSRAmt,
			r.PerdidaMonitor, r.DifDiv, r.DuplicateEngagementID, r.PeriodoFiscal,
			r.DiferencialFinal, r.DiferencialMTD, r.ANSRSintetico, r.RevenueDaysCP,
		}
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"revenue_entries"},
		entryColumns,
		pgx.CopyFromRows(copyRows),
	); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
