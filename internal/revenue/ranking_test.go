package revenue

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const partnerGoalsCSV = `Partner,Mes,ANSR Goal PPED,Horas Goal PPED
Ana Gomez,Julio 25,"10,000",500
Ana Gomez,Agosto 25,"12,000",550
Ana Gomez,Total,"120,000","6,000"
Luis Rios,Julio 25,8000,400
Luis Rios,Agosto 25,8000,400
`

func partnerSchema() GoalSchema {
	return GoalSchema{Label: "Partner", Month: "Mes", ANSR: "ANSR Goal PPED", Hours: "Horas Goal PPED"}
}

func TestLoadGoals(t *testing.T) {
	book, err := LoadGoals(strings.NewReader(partnerGoalsCSV), partnerSchema())
	require.NoError(t, err)

	g, ok := book.Monthly("Ana Gomez", "Julio 25")
	require.True(t, ok)
	assert.InDelta(t, 10000, g.ANSR, 1e-6)
	assert.InDelta(t, 500, g.Hours, 1e-6)

	// Labels match case-insensitively, spreadsheets are hand-maintained.
	_, ok = book.Monthly("  ANA GOMEZ ", "Agosto 25")
	assert.True(t, ok)

	yearly, ok := book.Yearly("Ana Gomez")
	require.True(t, ok)
	assert.InDelta(t, 120000, yearly.ANSR, 1e-6)

	_, ok = book.Monthly("Nadie", "Julio 25")
	assert.False(t, ok)
}

func TestLoadGoalsMissingColumns(t *testing.T) {
	_, err := LoadGoals(strings.NewReader("Partner,Mes\nAna,Julio 25\n"), partnerSchema())
	assert.Error(t, err)
}

func TestCumulativeThrough(t *testing.T) {
	book, err := LoadGoals(strings.NewReader(partnerGoalsCSV), partnerSchema())
	require.NoError(t, err)

	// August date past the first week covers Julio and Agosto; the Total
	// row is never part of the cumulative sum.
	total := book.CumulativeThrough("Ana Gomez", testDate(2025, time.August, 15))
	assert.InDelta(t, 22000, total.ANSR, 1e-6)
	assert.InDelta(t, 1050, total.Hours, 1e-6)

	// August 5 still belongs to Julio fiscally.
	total = book.CumulativeThrough("Ana Gomez", testDate(2025, time.August, 5))
	assert.InDelta(t, 10000, total.ANSR, 1e-6)
}

func TestRankByOrdersAndAggregates(t *testing.T) {
	rows := []EngagementRow{
		{Partner: "Luis Rios", ANSRSintetico: fptr(3000), FYTDChargedHours: fptr(100), FYTDDirectCost: fptr(500), MTDANSRAmt: fptr(300)},
		{Partner: "Ana Gomez", ANSRSintetico: fptr(9000), FYTDChargedHours: fptr(300), FYTDDirectCost: fptr(2000), MTDANSRAmt: fptr(900)},
		{Partner: "Ana Gomez", ANSRSintetico: fptr(4000), FYTDChargedHours: fptr(100), FYTDDirectCost: fptr(1000), MTDANSRAmt: fptr(400)},
		{Partner: ""},
	}
	ranking := RankBy(rows, ByPartner, nil, testDate(2025, time.August, 15))

	require.Len(t, ranking, 2)
	assert.Equal(t, "Ana Gomez", ranking[0].Label)
	assert.InDelta(t, 13000, ranking[0].FYTDANSR, 1e-6)
	assert.InDelta(t, 1300, ranking[0].MTDANSR, 1e-6)
	assert.InDelta(t, 400, ranking[0].FYTDHours, 1e-6)
	assert.InDelta(t, 10000, ranking[0].Margin, 1e-6)
	assert.InDelta(t, 32.5, ranking[0].RPH, 1e-6)
	// No goal book: completion stays unset.
	assert.Nil(t, ranking[0].CompletionPct)
	assert.Empty(t, ranking[0].Color)
}

func TestRankByZeroHoursRPH(t *testing.T) {
	rows := []EngagementRow{{Partner: "Ana Gomez", ANSRSintetico: fptr(5000)}}
	ranking := RankBy(rows, ByPartner, nil, testDate(2025, time.August, 15))
	require.Len(t, ranking, 1)
	assert.Zero(t, ranking[0].RPH)
}

func TestRankByGoalCompletion(t *testing.T) {
	book, err := LoadGoals(strings.NewReader(partnerGoalsCSV), partnerSchema())
	require.NoError(t, err)

	rows := []EngagementRow{
		{Partner: "Ana Gomez", ANSRSintetico: fptr(11000)},
		{Partner: "Luis Rios", ANSRSintetico: fptr(8000)},
		{Partner: "Sin Meta", ANSRSintetico: fptr(100)},
	}
	ranking := RankBy(rows, ByPartner, book, testDate(2025, time.August, 15))
	require.Len(t, ranking, 3)

	ana := ranking[0]
	require.NotNil(t, ana.CompletionPct)
	assert.InDelta(t, 50, *ana.CompletionPct, 1e-6) // 11000 of 22000
	assert.Equal(t, ColorYellow, ana.Color)
	assert.InDelta(t, 22000, ana.Goal, 1e-6)
	assert.InDelta(t, 120000, ana.YearlyGoal, 1e-6)

	luis := ranking[1]
	require.NotNil(t, luis.CompletionPct)
	assert.InDelta(t, 50, *luis.CompletionPct, 1e-6)
	// No "Total" row in the goal book for this partner.
	assert.Zero(t, luis.YearlyGoal)

	// No goal row for this label: percentage stays nil, not zero.
	assert.Nil(t, ranking[2].CompletionPct)
}

func TestCompletionColor(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{0, ColorRed},
		{49.99, ColorRed},
		{50, ColorYellow},
		{94.99, ColorYellow},
		{95, ColorGreen},
		{120, ColorGreen},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompletionColor(tt.pct), "pct %v", tt.pct)
	}
}

func TestTop5(t *testing.T) {
	ranking := make([]GroupMetrics, 7)
	for i := range ranking {
		ranking[i].Label = string(rune('A' + i))
	}
	assert.Len(t, Top5(ranking), 5)
	assert.Len(t, Top5(ranking[:3]), 3)
}
