package revenue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAllocateLossSingleEngagement(t *testing.T) {
	rows := []EngagementRow{
		{EngagementID: "E1", Partner: "P1", PerdidaMonitor: fptr(100)},
	}
	ambiguous := AllocateLoss(rows, testDate(2025, time.August, 15), DefaultOverrides())

	assert.Empty(t, ambiguous)
	require.NotNil(t, rows[0].DiferencialFinal)
	assert.InDelta(t, -100, *rows[0].DiferencialFinal, 1e-6)
	assert.False(t, rows[0].DuplicateEngagementID)
}

func TestAllocateLossNilRawBecomesZero(t *testing.T) {
	rows := []EngagementRow{{EngagementID: "E1", Partner: "P1"}}
	AllocateLoss(rows, testDate(2025, time.August, 15), DefaultOverrides())
	require.NotNil(t, rows[0].DiferencialFinal)
	assert.Zero(t, *rows[0].DiferencialFinal)
}

func TestAllocateLossSplitsDuplicateGroup(t *testing.T) {
	rows := []EngagementRow{
		{EngagementID: "E2", Partner: "P1", PerdidaMonitor: fptr(1000), DifDiv: fptr(0.7)},
		{EngagementID: "E2", Partner: "P2", PerdidaMonitor: fptr(1000)},
	}
	ambiguous := AllocateLoss(rows, testDate(2025, time.August, 15), DefaultOverrides())

	assert.Empty(t, ambiguous)
	require.NotNil(t, rows[0].DiferencialFinal)
	require.NotNil(t, rows[1].DiferencialFinal)
	assert.InDelta(t, -700, *rows[0].DiferencialFinal, 1e-6)
	assert.InDelta(t, -300, *rows[1].DiferencialFinal, 1e-6)
	assert.True(t, rows[0].DuplicateEngagementID)
	assert.True(t, rows[1].DuplicateEngagementID)

	// The split partitions the original exactly.
	total := *rows[0].DiferencialFinal + *rows[1].DiferencialFinal
	assert.InDelta(t, -1000, total, 0.01)
}

func TestAllocateLossSplitFromOverridesTable(t *testing.T) {
	rows := []EngagementRow{
		{EngagementID: "E9", Partner: "P1", PerdidaMonitor: fptr(200)},
		{EngagementID: "E9", Partner: "P2", PerdidaMonitor: fptr(200)},
	}
	ov := DefaultOverrides()
	ov.Splits["E9"] = SplitRule{Partner: "P1", Fraction: 0.25}

	ambiguous := AllocateLoss(rows, testDate(2025, time.August, 15), ov)

	assert.Empty(t, ambiguous)
	assert.InDelta(t, -50, *rows[0].DiferencialFinal, 1e-6)
	assert.InDelta(t, -150, *rows[1].DiferencialFinal, 1e-6)
}

func TestAllocateLossForcedZeroDate(t *testing.T) {
	rows := []EngagementRow{
		{EngagementID: "E1", Partner: "P1", PerdidaMonitor: fptr(100)},
		{EngagementID: "E2", Partner: "P2", PerdidaMonitor: fptr(500), DifDiv: fptr(0.5)},
		{EngagementID: "E2", Partner: "P3", PerdidaMonitor: fptr(500)},
	}
	ambiguous := AllocateLoss(rows, testDate(2025, time.July, 11), DefaultOverrides())

	assert.Empty(t, ambiguous)
	for i := range rows {
		require.NotNil(t, rows[i].DiferencialFinal)
		assert.Zero(t, *rows[i].DiferencialFinal)
	}
}

func TestAllocateLossMissingSplitRowFlagsGroup(t *testing.T) {
	rows := []EngagementRow{
		{EngagementID: "E3", Partner: "P1", PerdidaMonitor: fptr(400)},
		{EngagementID: "E3", Partner: "P2", PerdidaMonitor: fptr(400)},
	}
	ambiguous := AllocateLoss(rows, testDate(2025, time.August, 15), DefaultOverrides())

	require.Len(t, ambiguous, 1)
	assert.Equal(t, "E3", ambiguous[0].EngagementID)
	assert.Equal(t, 2, ambiguous[0].RowCount)
	// Unallocated values are kept, not dropped.
	assert.InDelta(t, -400, *rows[0].DiferencialFinal, 1e-6)
	assert.InDelta(t, -400, *rows[1].DiferencialFinal, 1e-6)
}

func TestAllocateLossThreeWayDuplicateFlagged(t *testing.T) {
	rows := []EngagementRow{
		{EngagementID: "E4", Partner: "P1", PerdidaMonitor: fptr(300), DifDiv: fptr(0.5)},
		{EngagementID: "E4", Partner: "P2", PerdidaMonitor: fptr(300)},
		{EngagementID: "E4", Partner: "P3", PerdidaMonitor: fptr(300)},
	}
	ambiguous := AllocateLoss(rows, testDate(2025, time.August, 15), DefaultOverrides())

	require.Len(t, ambiguous, 1)
	assert.Equal(t, 3, ambiguous[0].RowCount)
}

func TestAllocateLossSplitPartitionIsExact(t *testing.T) {
	// 0.1 is not representable in binary floating point; the decimal
	// partition must still sum back to the original.
	rows := []EngagementRow{
		{EngagementID: "E5", Partner: "P1", PerdidaMonitor: fptr(123.45), DifDiv: fptr(0.1)},
		{EngagementID: "E5", Partner: "P2", PerdidaMonitor: fptr(123.45)},
	}
	AllocateLoss(rows, testDate(2025, time.August, 15), DefaultOverrides())

	total := *rows[0].DiferencialFinal + *rows[1].DiferencialFinal
	assert.InDelta(t, -123.45, total, 0.01)
}
