package jobs

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"RevenueTracker/internal/config"
	"RevenueTracker/internal/fiscal"
	"RevenueTracker/internal/logger"
	"RevenueTracker/internal/revenue"
	"RevenueTracker/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

type AuditConfig struct {
	Schedule string
}

func NewDefaultAuditConfig() *AuditConfig {
	return &AuditConfig{Schedule: config.DefaultAuditSchedule}
}

// RunReconciliationAuditScheduler schedules the periodic data-quality pass
// over the stored history. The audit recomputes every date's MTD deltas
// from the raw baselines and reports what diverges; it fixes nothing in
// place. Repairs happen by re-running the pipeline for the offending date.
func RunReconciliationAuditScheduler(cfg *AuditConfig, db *pgxpool.Pool) error {
	c := cron.New()
	_, err := c.AddFunc(cfg.Schedule, func() {
		if err := RunReconciliationAudit(context.Background(), db); err != nil {
			log.Printf("[Audit] run failed: %v", err)
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}

type storedEntry struct {
	engagementID string
	final        *float64
	mtd          *float64
}

// RunReconciliationAudit walks every stored reporting date, recomputes the
// expected MTD per engagement against the previous fiscal month's closing
// and reports rows diverging beyond tolerance, plus the opening-month sum
// invariant.
func RunReconciliationAudit(ctx context.Context, db *pgxpool.Pool) error {
	hist := &store.PgHistory{Pool: db}
	dates, err := hist.ReportingDates(ctx)
	if err != nil {
		return err
	}

	total := 0
	for _, date := range dates {
		entries, err := loadStoredEntries(ctx, db, date)
		if err != nil {
			return err
		}

		baseline := map[string]float64{}
		var closing time.Time
		found := false
		for _, d := range dates {
			if !d.Before(date) {
				break
			}
			if !fiscal.SamePeriod(d, date) {
				closing = d
				found = true
			}
		}
		if found && !fiscal.IsOpeningMonth(date) {
			baseline, err = hist.ClosingDifferentials(ctx, closing)
			if err != nil {
				return err
			}
		}

		findings := auditEntries(entries, baseline, found, date)
		total += len(findings)
		for _, f := range findings {
			auditLog("[Audit] " + f)
		}
	}

	auditLog(fmt.Sprintf("[Audit] completed over %d dates, %d findings", len(dates), total))
	return nil
}

// auditEntries checks one reporting date's stored rows: per-engagement MTD
// against the recomputed expectation, and for opening-month dates the
// MTD-sum-equals-FYTD-sum invariant.
func auditEntries(entries []storedEntry, baseline map[string]float64, hasBaseline bool, date time.Time) []string {
	opening := fiscal.IsOpeningMonth(date)
	var findings []string
	rows := make([]revenue.EngagementRow, len(entries))
	for i, e := range entries {
		rows[i] = revenue.EngagementRow{
			EngagementID:     e.engagementID,
			DiferencialFinal: e.final,
			DiferencialMTD:   e.mtd,
		}
		curr := deref(e.final)
		expected := curr
		if hasBaseline && !opening {
			expected = curr - baseline[e.engagementID]
		}
		got := deref(e.mtd)
		if math.Abs(got-expected) > revenue.Tolerance {
			findings = append(findings, fmt.Sprintf("%s engagement %s: stored MTD %.2f, expected %.2f",
				date.Format("2006-01-02"), e.engagementID, got, expected))
		}
	}

	if opening {
		if err := revenue.AuditOpeningMonth(rows, date); err != nil {
			findings = append(findings, err.Error())
		}
	}
	return findings
}

func loadStoredEntries(ctx context.Context, db *pgxpool.Pool, date time.Time) ([]storedEntry, error) {
	rows, err := db.Query(ctx,
		`SELECT engagement_id, diferencial_final, diferencial_mtd FROM revenue_entries WHERE report_date = $1`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []storedEntry
	for rows.Next() {
		var e storedEntry
		if err := rows.Scan(&e.engagementID, &e.final, &e.mtd); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func auditLog(msg string) {
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(msg)
		return
	}
	log.Println(msg)
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
