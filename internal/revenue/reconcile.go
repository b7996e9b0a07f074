package revenue

import (
	"context"
	"math"
	"time"

	"RevenueTracker/internal/fiscal"
)

// Tolerance under which two differential figures are treated as reconciled.
const Tolerance = 0.01

// History is the queryable archive of prior reporting dates. Losses are
// reported cumulatively (fiscal-year-to-date), so month-to-date deltas are
// derived by subtracting the previous fiscal month's closing snapshot.
type History interface {
	// ReportingDates returns every distinct reporting date, ascending.
	ReportingDates(ctx context.Context) ([]time.Time, error)
	// ClosingDifferentials returns EngagementID -> DiferencialFinal for
	// the rows stored on the given date.
	ClosingDifferentials(ctx context.Context, date time.Time) (map[string]float64, error)
}

// ComputeMTD fills DiferencialMTD for every row.
//
// Opening fiscal month (Julio): no prior baseline exists, so MTD equals the
// allocated FYTD figure, with null forced to zero so downstream sums never
// see NULL. Otherwise the baseline is the last prior reporting date whose
// fiscal period differs from the current one; engagements absent from that
// closing are new this month and baseline at zero. A missing closing
// altogether degrades to first-month semantics and returns a gap instead of
// failing, so the week's dashboard still renders.
func ComputeMTD(ctx context.Context, rows []EngagementRow, date time.Time, hist History) (*ReconciliationGap, error) {
	if fiscal.IsOpeningMonth(date) {
		applyFirstMonth(rows)
		return nil, nil
	}

	dates, err := hist.ReportingDates(ctx)
	if err != nil {
		return nil, err
	}
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

	if !found {
		applyFirstMonth(rows)
		return &ReconciliationGap{Date: date, Period: fiscal.Label(date)}, nil
	}

	baseline, err := hist.ClosingDifferentials(ctx, closing)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		curr := fval(rows[i].DiferencialFinal)
		prev := baseline[rows[i].EngagementID]
		rows[i].DiferencialMTD = fptr(curr - prev)
	}
	return nil, nil
}

func applyFirstMonth(rows []EngagementRow) {
	for i := range rows {
		if rows[i].DiferencialFinal == nil {
			rows[i].DiferencialMTD = fptr(0)
			continue
		}
		rows[i].DiferencialMTD = fptr(*rows[i].DiferencialFinal)
	}
}

// AuditOpeningMonth checks the opening-month invariant: the MTD total must
// equal the FYTD total within tolerance. Larger gaps are a data error that
// has to surface, not be corrected in place.
func AuditOpeningMonth(rows []EngagementRow, date time.Time) error {
	var mtdSum, finalSum float64
	for i := range rows {
		mtdSum += fval(rows[i].DiferencialMTD)
		finalSum += fval(rows[i].DiferencialFinal)
	}
	if math.Abs(mtdSum-finalSum) > Tolerance {
		return &ReconciliationMismatchError{Date: date, MTDSum: mtdSum, FinalSum: finalSum}
	}
	return nil
}

// ApplySynthetic derives the adjusted revenue figure every dashboard metric
// is built on: reported FYTD ANSR minus the allocated currency loss, with
// null operands treated as zero. Raw FYTD_ANSRAmt is not trusted for
// decision-making once the currency loss is known.
func ApplySynthetic(rows []EngagementRow) {
	for i := range rows {
		rows[i].ANSRSintetico = fptr(fval(rows[i].FYTDANSRAmt) - fval(rows[i].DiferencialFinal))
	}
}
