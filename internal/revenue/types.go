package revenue

import (
	"fmt"
	"time"
)

// Canonical engagement export columns. The header row is located dynamically
// (see internal/tabular); these names are the contract with the upstream
// monitor export.
var EngagementRequiredColumns = []string{
	"EngagementID", "Engagement", "EngagementPartner", "EngagementManager",
	"Client", "EngagementServiceLine", "EngagementSubServiceLine",
	"FYTD_ChargedHours", "FYTD_DirectCostAmt", "FYTD_ANSRAmt",
	"MTD_ChargedHours", "MTD_DirectCostAmt", "MTD_ANSRAmt", "CP_ANSRAmt",
}

// ColPerdida is the exact currency-loss header when the export carries one.
const ColPerdida = "Perdida Dif. Camb."

// Revenue-days export key columns.
var RevenueDaysRequiredColumns = []string{
	"Employee Country/Region", "Employee",
}

// EngagementRow is one reconciled record per (EngagementID, partner, manager)
// for a reporting date. Raw reported fields are read from the export; the
// pipeline owns the derived ones (DiferencialFinal, DiferencialMTD,
// ANSRSintetico). Nullable figures are pointers so absent cells survive the
// round trip to Postgres without being conflated with zero.
type EngagementRow struct {
	ReportDate     time.Time
	EngagementID   string
	Engagement     string
	Client         string
	Partner        string
	Manager        string
	ServiceLine    string
	SubServiceLine string

	FYTDChargedHours *float64
	FYTDDirectCost   *float64
	FYTDANSRAmt      *float64
	MTDChargedHours  *float64
	MTDDirectCost    *float64
	MTDANSRAmt       *float64
	CPANSRAmt        *float64

	// Raw reported FX loss (stored positive by the monitor) and the
	// optional split fraction for shared engagements.
	PerdidaMonitor *float64
	DifDiv         *float64

	DuplicateEngagementID bool
	PeriodoFiscal         string

	// Derived by the pipeline.
	DiferencialFinal *float64
	DiferencialMTD   *float64
	ANSRSintetico    *float64

	// Partner revenue days for the current period, merged from the
	// revenue-days export.
	RevenueDaysCP *float64
}

// AllocationAmbiguity flags a duplicate-EngagementID group whose split row
// was absent, so the loss could not be partitioned. The group is left at the
// unallocated values and must be reviewed manually, never dropped.
type AllocationAmbiguity struct {
	EngagementID string
	RowCount     int
}

func (a AllocationAmbiguity) String() string {
	return fmt.Sprintf("engagement %s: %d rows share the ID but no split fraction is present; loss left unallocated",
		a.EngagementID, a.RowCount)
}

// ReconciliationGap flags a reporting date with no prior fiscal-month closing
// to baseline against. The engine degrades to first-month semantics.
type ReconciliationGap struct {
	Date   time.Time
	Period string
}

func (g ReconciliationGap) String() string {
	return fmt.Sprintf("no prior fiscal-month closing before %s (period %s); MTD degraded to first-month semantics",
		g.Date.Format("2006-01-02"), g.Period)
}

// ReconciliationMismatchError is a data-quality finding from the audit pass:
// the opening fiscal month's MTD total must equal its FYTD total.
type ReconciliationMismatchError struct {
	Date     time.Time
	MTDSum   float64
	FinalSum float64
}

func (e *ReconciliationMismatchError) Error() string {
	return fmt.Sprintf("reconciliation mismatch for %s: MTD sum %.2f vs FYTD sum %.2f (tolerance %.2f)",
		e.Date.Format("2006-01-02"), e.MTDSum, e.FinalSum, Tolerance)
}

func fval(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func fptr(v float64) *float64 { return &v }
