package revenue

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"RevenueTracker/internal/fiscal"
	"RevenueTracker/internal/tabular"
)

// Fatal ingestion errors. Structural problems abort the run before any
// persistence write; data-quality issues come back as warnings instead.
var (
	ErrEmptyTable  = errors.New("engagement export has no data rows")
	ErrMissingDate = errors.New("reporting date is required")
)

// CountryFilter keeps only the practice's own employees from the firm-wide
// revenue-days export.
const CountryFilter = "Venezuela"

// Input is one weekly upload: the located engagement table, the optional
// revenue-days table and the reporting date that keys everything derived.
type Input struct {
	Engagement  *tabular.Table
	RevenueDays *tabular.Table
	ReportDate  time.Time
}

// Result carries the reconciled rows plus everything the caller reports
// back: warnings raised along the way and the partner -> revenue-days map.
type Result struct {
	Rows               []EngagementRow
	PartnerRevenueDays map[string]float64
	Warnings           []string
	Degraded           bool
}

// Pipeline is the weekly reconciliation run. It is a pure function of its
// inputs and the history lookup: re-running it for a date reproduces the
// same derived fields, so fixing bad data means re-running, never editing
// stored derived values.
type Pipeline struct {
	Overrides Overrides
}

// NewPipeline returns a pipeline with the seeded business exceptions.
func NewPipeline() Pipeline {
	return Pipeline{Overrides: DefaultOverrides()}
}

// Run transforms one upload into reconciled EngagementRows.
func (p Pipeline) Run(ctx context.Context, in Input, hist History) (*Result, error) {
	if in.ReportDate.IsZero() {
		return nil, ErrMissingDate
	}
	if in.Engagement == nil || len(in.Engagement.Rows) == 0 {
		return nil, ErrEmptyTable
	}

	rows := buildRows(in.Engagement, in.ReportDate)
	if len(rows) == 0 {
		return nil, ErrEmptyTable
	}

	res := &Result{}

	ambiguous := AllocateLoss(rows, in.ReportDate, p.Overrides)
	for _, a := range ambiguous {
		res.Warnings = append(res.Warnings, a.String())
	}

	gap, err := ComputeMTD(ctx, rows, in.ReportDate, hist)
	if err != nil {
		return nil, err
	}
	if gap != nil {
		res.Degraded = true
		res.Warnings = append(res.Warnings, gap.String())
	}

	ApplySynthetic(rows)

	res.PartnerRevenueDays = mergeRevenueDays(rows, in.RevenueDays)

	res.Rows = rows
	return res, nil
}

// buildRows re-keys the located table into typed records. Column resolution
// happens once here, at the ingestion boundary; nothing downstream touches
// raw headers again.
func buildRows(t *tabular.Table, date time.Time) []EngagementRow {
	perdidaCol := ColPerdida
	if t.Col(perdidaCol) < 0 {
		// Older exports name the loss column loosely; fall back to a
		// fragment match before giving up and defaulting to zero loss.
		perdidaCol = t.FindColumn("Perdida", "Dif")
		if perdidaCol == "" {
			perdidaCol = t.FindColumn("Perdida", "Camb")
		}
	}

	period := fiscal.Label(date)
	rows := make([]EngagementRow, 0, len(t.Rows))
	for _, raw := range t.Rows {
		id := t.Cell(raw, "EngagementID")
		if id == "" {
			continue
		}
		row := EngagementRow{
			ReportDate:       date,
			EngagementID:     id,
			Engagement:       t.Cell(raw, "Engagement"),
			Client:           t.Cell(raw, "Client"),
			Partner:          t.Cell(raw, "EngagementPartner"),
			Manager:          t.Cell(raw, "EngagementManager"),
			ServiceLine:      t.Cell(raw, "EngagementServiceLine"),
			SubServiceLine:   t.Cell(raw, "EngagementSubServiceLine"),
			FYTDChargedHours: parseNumber(t.Cell(raw, "FYTD_ChargedHours")),
			FYTDDirectCost:   parseNumber(t.Cell(raw, "FYTD_DirectCostAmt")),
			FYTDANSRAmt:      parseNumber(t.Cell(raw, "FYTD_ANSRAmt")),
			MTDChargedHours:  parseNumber(t.Cell(raw, "MTD_ChargedHours")),
			MTDDirectCost:    parseNumber(t.Cell(raw, "MTD_DirectCostAmt")),
			MTDANSRAmt:       parseNumber(t.Cell(raw, "MTD_ANSRAmt")),
			CPANSRAmt:        parseNumber(t.Cell(raw, "CP_ANSRAmt")),
			DifDiv:           parseNumber(t.Cell(raw, "Dif_Div")),
			PeriodoFiscal:    period,
		}
		if perdidaCol != "" {
			row.PerdidaMonitor = parseNumber(t.Cell(raw, perdidaCol))
		}
		rows = append(rows, row)
	}
	return rows
}

// mergeRevenueDays filters the revenue-days export to the practice country
// and carries each matched partner's total revenue days onto their rows.
func mergeRevenueDays(rows []EngagementRow, t *tabular.Table) map[string]float64 {
	byPartner := map[string]float64{}
	if t == nil {
		return byPartner
	}

	countryCol := t.FindColumn("Employee Country/Region")
	employeeCol := "Employee"
	if t.Col(employeeCol) < 0 {
		employeeCol = t.FindColumn("Employee")
	}
	daysCol := t.FindColumn("Total Revenue Days")
	if countryCol == "" || employeeCol == "" || daysCol == "" {
		return byPartner
	}

	for _, raw := range t.Rows {
		if !strings.Contains(strings.ToLower(t.Cell(raw, countryCol)), strings.ToLower(CountryFilter)) {
			continue
		}
		employee := t.Cell(raw, employeeCol)
		days := parseNumber(t.Cell(raw, daysCol))
		if employee == "" || days == nil {
			continue
		}
		byPartner[employee] = *days
	}

	for i := range rows {
		if days, ok := byPartner[rows[i].Partner]; ok {
			rows[i].RevenueDaysCP = fptr(days)
		}
	}
	return byPartner
}

// parseNumber coerces an export cell to a float, nil when blank or not
// numeric. Exports carry thousands separators and stray whitespace.
func parseNumber(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
