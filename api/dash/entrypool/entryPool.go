package entrypool

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"RevenueTracker/api/constants"
	"RevenueTracker/internal/revenue"
)

// ErrNoReportingDates is returned when nothing has been uploaded yet.
var ErrNoReportingDates = errors.New(constants.ErrNoReportingDates)

// LatestDate returns the most recent reporting date with stored entries.
func LatestDate(db *sql.DB) (time.Time, error) {
	var d sql.NullTime
	if err := db.QueryRow(`SELECT MAX(report_date) FROM revenue_entries`).Scan(&d); err != nil {
		return time.Time{}, err
	}
	return latestFromScan(d)
}

// MAX over zero rows yields NULL, not an error.
func latestFromScan(d sql.NullTime) (time.Time, error) {
	if !d.Valid {
		return time.Time{}, ErrNoReportingDates
	}
	return d.Time, nil
}

// ResolveDate picks the reporting date for a dashboard request: explicit
// ?date=YYYY-MM-DD or the latest stored one.
func ResolveDate(r *http.Request, db *sql.DB) (time.Time, error) {
	if q := r.URL.Query().Get("date"); q != "" {
		return time.Parse("2006-01-02", q)
	}
	return LatestDate(db)
}

// LoadEntries reads the reconciled rows for one reporting date.
func LoadEntries(db *sql.DB, date time.Time) ([]revenue.EngagementRow, error) {
	rows, err := db.Query(`
		SELECT report_date, engagement_id, engagement, client,
		       engagement_partner, engagement_manager, service_line, sub_service_line,
		       fytd_charged_hours, fytd_direct_cost_amt, fytd_ansr_amt,
		       mtd_charged_hours, mtd_direct_cost_amt, mtd_ansr_amt, cp_ansr_amt,
		       perdida_monitor, dif_div, duplicate_engagement_id, periodo_fiscal,
		       diferencial_final, diferencial_mtd, fytd_ansr_sintetico, revenue_days_cp
		FROM revenue_entries
		WHERE report_date = $1
		ORDER BY engagement_id`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []revenue.EngagementRow
	for rows.Next() {
		var e revenue.EngagementRow
		if err := rows.Scan(
			&e.ReportDate, &e.EngagementID, &e.Engagement, &e.Client,
			&e.Partner, &e.Manager, &e.ServiceLine, &e.SubServiceLine,
			&e.FYTDChargedHours, &e.FYTDDirectCost, &e.FYTDANSRAmt,
			&e.MTDChargedHours, &e.MTDDirectCost, &e.MTDANSRAmt, &e.CPANSRAmt,
			&e.PerdidaMonitor, &e.DifDiv, &e.DuplicateEngagementID, &e.PeriodoFiscal,
			&e.DiferencialFinal, &e.DiferencialMTD, &e.ANSRSintetico, &e.RevenueDaysCP,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
