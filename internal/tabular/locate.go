package tabular

import (
	"fmt"
	"strings"
)

// Table is a located export table: the matched header row plus everything
// below it, re-keyed by the trimmed header names.
type Table struct {
	Sheet     string
	HeaderRow int
	Columns   []string
	Rows      [][]string

	colIndex map[string]int
}

// SchemaNotFoundError reports that no candidate sheet contained a header row
// covering the required column set within the scan window.
type SchemaNotFoundError struct {
	Missing     []string
	SheetsTried []string
	MaxScan     int
}

func (e *SchemaNotFoundError) Error() string {
	return fmt.Sprintf("no header row with required columns within first %d rows; missing %v; sheets tried %v",
		e.MaxScan, e.Missing, e.SheetsTried)
}

// Locate scans each candidate sheet for the first row whose trimmed cell set
// covers every required column, and returns that row as the header with all
// subsequent rows as data. Upstream exports carry title rows, merged-cell
// preambles and varying sheet names, so the header is never at a fixed
// offset. preferredSheet, when non-empty and present, is tried first.
func Locate(sheets []Sheet, required []string, maxScan int, preferredSheet string) (*Table, error) {
	ordered := make([]Sheet, 0, len(sheets))
	for _, s := range sheets {
		if s.Name == preferredSheet {
			ordered = append([]Sheet{s}, ordered...)
		} else {
			ordered = append(ordered, s)
		}
	}

	tried := make([]string, 0, len(ordered))
	var bestMissing []string
	for _, sheet := range ordered {
		tried = append(tried, sheet.Name)
		limit := maxScan
		if limit > len(sheet.Rows) {
			limit = len(sheet.Rows)
		}
		for i := 0; i < limit; i++ {
			missing := missingColumns(sheet.Rows[i], required)
			if len(missing) == 0 {
				return buildTable(sheet, i), nil
			}
			if bestMissing == nil || len(missing) < len(bestMissing) {
				bestMissing = missing
			}
		}
	}
	if bestMissing == nil {
		bestMissing = append([]string{}, required...)
	}
	return nil, &SchemaNotFoundError{Missing: bestMissing, SheetsTried: tried, MaxScan: maxScan}
}

// Col returns the index of a column by its (possibly suffixed) name, or -1.
func (t *Table) Col(name string) int {
	if idx, ok := t.colIndex[name]; ok {
		return idx
	}
	return -1
}

// Cell returns the value of the named column in a data row, or "" when the
// row is ragged and does not reach that column.
func (t *Table) Cell(row []string, name string) string {
	idx := t.Col(name)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// FindColumn returns the first column whose name contains all the given
// fragments. Used only at the ingestion boundary for loosely-named columns
// like the Perdida currency-loss header.
func (t *Table) FindColumn(fragments ...string) string {
	for _, col := range t.Columns {
		ok := true
		for _, frag := range fragments {
			if !strings.Contains(col, frag) {
				ok = false
				break
			}
		}
		if ok {
			return col
		}
	}
	return ""
}

func missingColumns(row []string, required []string) []string {
	present := make(map[string]bool, len(row))
	for _, cell := range row {
		present[strings.TrimSpace(cell)] = true
	}
	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

func buildTable(sheet Sheet, headerRow int) *Table {
	raw := sheet.Rows[headerRow]
	columns := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, cell := range raw {
		name := strings.TrimSpace(cell)
		seen[name]++
		// Duplicate headers get a _N suffix so no column is silently
		// dropped when rows are re-keyed.
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s_%d", name, n)
		}
		columns[i] = name
	}
	colIndex := make(map[string]int, len(columns))
	for i, c := range columns {
		colIndex[c] = i
	}
	return &Table{
		Sheet:     sheet.Name,
		HeaderRow: headerRow,
		Columns:   columns,
		Rows:      sheet.Rows[headerRow+1:],
		colIndex:  colIndex,
	}
}
