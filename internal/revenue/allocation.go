package revenue

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// SplitRule assigns the contractual split fraction for a shared engagement
// to the named partner's row. The other partner on the same EngagementID
// receives the remainder.
type SplitRule struct {
	Partner  string
	Fraction float64
}

// Overrides is the versioned exceptions table consulted by the allocator:
// reporting dates whose export lacked the loss column entirely (forced to
// zero) and engagement-level split fractions. Business exceptions live here,
// not in code paths.
type Overrides struct {
	ForcedZeroDates map[string]bool
	Splits          map[string]SplitRule
}

// DefaultOverrides seeds the known exceptions. The 2025-07-11 export shipped
// without the Perdida column, so that week's losses are forced to zero
// rather than failing the run.
func DefaultOverrides() Overrides {
	return Overrides{
		ForcedZeroDates: map[string]bool{
			"2025-07-11": true,
		},
		Splits: map[string]SplitRule{},
	}
}

// ForcedZero reports whether every row on the date must carry a zero loss.
func (o Overrides) ForcedZero(date time.Time) bool {
	return o.ForcedZeroDates[date.Format("2006-01-02")]
}

// AllocateLoss computes DiferencialFinal for every row. Reported losses are
// stored positive by the monitor; the dashboard-facing figure is negated.
//
// Duplicate EngagementIDs shared by exactly two partner rows where exactly
// one carries a split fraction p are partitioned: -(orig*p) on the p-row and
// -(orig*(1-p)) on the other, exact to the cent via decimal arithmetic.
// Any other duplicated shape is flagged for manual review and left at the
// unallocated per-row values.
func AllocateLoss(rows []EngagementRow, date time.Time, ov Overrides) []AllocationAmbiguity {
	if ov.ForcedZero(date) {
		for i := range rows {
			rows[i].DiferencialFinal = fptr(0)
		}
		return nil
	}

	// Stamp configured split fractions onto the matching partner rows.
	for i := range rows {
		if rows[i].DifDiv != nil {
			continue
		}
		if rule, ok := ov.Splits[rows[i].EngagementID]; ok && rule.Partner == rows[i].Partner {
			rows[i].DifDiv = fptr(rule.Fraction)
		}
	}

	byID := make(map[string][]int)
	for i := range rows {
		byID[rows[i].EngagementID] = append(byID[rows[i].EngagementID], i)
	}

	var ambiguous []AllocationAmbiguity
	for id, idxs := range byID {
		if len(idxs) == 1 {
			i := idxs[0]
			rows[i].DiferencialFinal = fptr(-fval(rows[i].PerdidaMonitor))
			continue
		}

		for _, i := range idxs {
			rows[i].DuplicateEngagementID = true
		}

		withPct, withoutPct := -1, -1
		pctCount := 0
		for _, i := range idxs {
			if p := rows[i].DifDiv; p != nil && *p > 0 && *p < 1 {
				withPct = i
				pctCount++
			} else {
				withoutPct = i
			}
		}

		if len(idxs) == 2 && pctCount == 1 {
			p := decimal.NewFromFloat(*rows[withPct].DifDiv)
			original := decimal.NewFromFloat(fval(rows[withPct].PerdidaMonitor))
			transformed := original.Mul(p)
			remaining := original.Sub(transformed)
			tf, _ := transformed.Float64()
			rf, _ := remaining.Float64()
			rows[withPct].DiferencialFinal = fptr(-tf)
			rows[withoutPct].DiferencialFinal = fptr(-rf)
			continue
		}

		// Split row missing (or a shape the business has never defined,
		// e.g. three-way duplicates): keep the raw per-row values and
		// surface the group.
		for _, i := range idxs {
			rows[i].DiferencialFinal = fptr(-fval(rows[i].PerdidaMonitor))
		}
		ambiguous = append(ambiguous, AllocationAmbiguity{EngagementID: id, RowCount: len(idxs)})
	}
	sort.Slice(ambiguous, func(i, j int) bool { return ambiguous[i].EngagementID < ambiguous[j].EngagementID })
	return ambiguous
}
