package revenue

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"RevenueTracker/internal/fiscal"
)

// Goal is one monthly (or yearly "Total") target for a group label.
type Goal struct {
	ANSR  float64
	Hours float64
}

// GoalSchema names the columns of a goal CSV. The goal books differ per
// grouping (partner, manager, service line) but share the layout: a label
// column, a "Mes" column holding "{Month} {yy}" labels plus a literal
// "Total" row, and ANSR/hours goal columns.
type GoalSchema struct {
	Label string
	Month string
	ANSR  string
	Hours string
}

// GoalBook holds the monthly targets for one grouping, keyed by normalized
// label and fiscal-month label. Read-only input; the pipeline never writes
// goals.
type GoalBook struct {
	entries map[string]map[string]Goal
}

// LoadGoals reads a goal CSV into a GoalBook. Labels are matched
// case-insensitively with surrounding whitespace ignored, mirroring how the
// goal spreadsheets are maintained by hand.
func LoadGoals(r io.Reader, schema GoalSchema) (*GoalBook, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("goal table has no data rows")
	}

	header := records[0]
	idx := func(name string) int {
		for i, h := range header {
			if strings.TrimSpace(h) == name {
				return i
			}
		}
		return -1
	}
	labelIdx, monthIdx := idx(schema.Label), idx(schema.Month)
	ansrIdx, hoursIdx := idx(schema.ANSR), idx(schema.Hours)
	if labelIdx < 0 || monthIdx < 0 || ansrIdx < 0 || hoursIdx < 0 {
		return nil, fmt.Errorf("goal table missing required columns %q/%q/%q/%q",
			schema.Label, schema.Month, schema.ANSR, schema.Hours)
	}

	book := &GoalBook{entries: make(map[string]map[string]Goal)}
	for _, rec := range records[1:] {
		if labelIdx >= len(rec) || monthIdx >= len(rec) {
			continue
		}
		label := normalizeLabel(rec[labelIdx])
		month := strings.TrimSpace(rec[monthIdx])
		if label == "" || month == "" {
			continue
		}
		g := Goal{
			ANSR:  parseGoalNumber(rec, ansrIdx),
			Hours: parseGoalNumber(rec, hoursIdx),
		}
		if book.entries[label] == nil {
			book.entries[label] = make(map[string]Goal)
		}
		existing := book.entries[label][month]
		existing.ANSR += g.ANSR
		existing.Hours += g.Hours
		book.entries[label][month] = existing
	}
	return book, nil
}

// Monthly returns the goal for a label in one fiscal month.
func (b *GoalBook) Monthly(label, monthLabel string) (Goal, bool) {
	months, ok := b.entries[normalizeLabel(label)]
	if !ok {
		return Goal{}, false
	}
	g, ok := months[monthLabel]
	return g, ok
}

// Yearly returns the label's "Total" row.
func (b *GoalBook) Yearly(label string) (Goal, bool) {
	return b.Monthly(label, "Total")
}

// CumulativeThrough sums the monthly goals from the fiscal year's opening
// month through the date's fiscal month, inclusive. This is the denominator
// for FYTD goal completion.
func (b *GoalBook) CumulativeThrough(label string, date time.Time) Goal {
	var total Goal
	for _, monthLabel := range fiscal.LabelsThrough(date) {
		if g, ok := b.Monthly(label, monthLabel); ok {
			total.ANSR += g.ANSR
			total.Hours += g.Hours
		}
	}
	return total
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func parseGoalNumber(rec []string, idx int) float64 {
	if idx < 0 || idx >= len(rec) {
		return 0
	}
	s := strings.TrimSpace(strings.ReplaceAll(rec[idx], ",", ""))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
