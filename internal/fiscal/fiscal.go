package fiscal

import (
	"fmt"
	"time"
)

// Spanish month names, indexed 1-12 to match time.Month.
var monthNames = [13]string{
	"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// OpeningMonth is the first month of the fiscal year.
const OpeningMonth = "Julio"

// Period maps a report date to its fiscal month name and two-digit year.
// Reports landing in the first week of a calendar month (day <= 7) are still
// attributed to the previous month's close.
func Period(date time.Time) (string, int) {
	month := int(date.Month())
	year := date.Year()
	if date.Day() <= 7 {
		month--
		if month == 0 {
			month = 12
			year--
		}
	}
	return monthNames[month], year % 100
}

// Label returns the fiscal period in the "{Month} {yy}" form used by the
// goal tables, e.g. "Julio 25".
func Label(date time.Time) string {
	name, yy := Period(date)
	return fmt.Sprintf("%s %02d", name, yy)
}

// SamePeriod reports whether two dates fall in the same fiscal month.
func SamePeriod(a, b time.Time) bool {
	return Label(a) == Label(b)
}

// IsOpeningMonth reports whether the date resolves to the fiscal year's
// opening month (Julio). The opening month has no prior baseline to
// reconcile against.
func IsOpeningMonth(date time.Time) bool {
	name, _ := Period(date)
	return name == OpeningMonth
}

// LabelsThrough returns the ordered fiscal-month labels from the opening
// month of the current fiscal year through the date's fiscal month,
// inclusive. Used to accumulate monthly goals into a fiscal-year-to-date
// goal. The year digit rolls over at Enero.
func LabelsThrough(date time.Time) []string {
	name, yy := Period(date)

	// Fiscal year start: the Julio at or before the resolved period.
	startYY := yy
	monthNum := monthIndex(name)
	if monthNum < 7 {
		startYY = yy - 1
	}

	labels := []string{}
	m, y := 7, startYY
	for {
		labels = append(labels, fmt.Sprintf("%s %02d", monthNames[m], y))
		if monthNames[m] == name && y == yy {
			break
		}
		m++
		if m == 13 {
			m = 1
			y++
		}
	}
	return labels
}

func monthIndex(name string) int {
	for i := 1; i <= 12; i++ {
		if monthNames[i] == name {
			return i
		}
	}
	return 0
}
