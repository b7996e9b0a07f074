package fiscal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriod(t *testing.T) {
	tests := []struct {
		name      string
		date      time.Time
		wantMonth string
		wantYear  int
	}{
		{"mid month stays", date(2025, time.July, 15), "Julio", 25},
		{"day seven belongs to previous month", date(2025, time.August, 7), "Julio", 25},
		{"day eight stays", date(2025, time.August, 8), "Agosto", 25},
		{"first of month rolls back", date(2025, time.October, 1), "Septiembre", 25},
		{"january first week wraps year", date(2026, time.January, 5), "Diciembre", 25},
		{"january after first week", date(2026, time.January, 8), "Enero", 26},
		{"report on the eleventh", date(2025, time.July, 11), "Julio", 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			month, year := Period(tt.date)
			assert.Equal(t, tt.wantMonth, month)
			assert.Equal(t, tt.wantYear, year)
		})
	}
}

func TestPeriodIsStable(t *testing.T) {
	d := date(2025, time.August, 3)
	m1, y1 := Period(d)
	m2, y2 := Period(d)
	assert.Equal(t, m1, m2)
	assert.Equal(t, y1, y2)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Julio 25", Label(date(2025, time.July, 15)))
	assert.Equal(t, "Diciembre 25", Label(date(2026, time.January, 3)))
}

func TestSamePeriod(t *testing.T) {
	// Both resolve to Julio 25 even though one is an August calendar date.
	assert.True(t, SamePeriod(date(2025, time.July, 15), date(2025, time.August, 5)))
	assert.False(t, SamePeriod(date(2025, time.July, 15), date(2025, time.August, 15)))
}

func TestIsOpeningMonth(t *testing.T) {
	assert.True(t, IsOpeningMonth(date(2025, time.July, 15)))
	assert.True(t, IsOpeningMonth(date(2025, time.August, 5)))
	assert.False(t, IsOpeningMonth(date(2025, time.August, 15)))
	assert.False(t, IsOpeningMonth(date(2026, time.June, 20)))
}

func TestLabelsThrough(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want []string
	}{
		{
			"opening month alone",
			date(2025, time.July, 20),
			[]string{"Julio 25"},
		},
		{
			"third month of fiscal year",
			date(2025, time.September, 15),
			[]string{"Julio 25", "Agosto 25", "Septiembre 25"},
		},
		{
			"crosses calendar year",
			date(2026, time.February, 10),
			[]string{
				"Julio 25", "Agosto 25", "Septiembre 25", "Octubre 25",
				"Noviembre 25", "Diciembre 25", "Enero 26", "Febrero 26",
			},
		},
		{
			"fiscal year end",
			date(2026, time.June, 15),
			[]string{
				"Julio 25", "Agosto 25", "Septiembre 25", "Octubre 25",
				"Noviembre 25", "Diciembre 25", "Enero 26", "Febrero 26",
				"Marzo 26", "Abril 26", "Mayo 26", "Junio 26",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LabelsThrough(tt.date))
		})
	}
}
