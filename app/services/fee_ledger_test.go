package services

import (
	"math"
	"testing"
	"time"

	"github.com/javedansari81/sunrise-school-management-sub001/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMonthlySchedule(t *testing.T) {
	periods := BuildMonthlySchedule(60000, 4, 2025, 10)

	require.Len(t, periods, 12)

	// April through December 2025, then January through March 2026
	assert.Equal(t, 4, periods[0].Month)
	assert.Equal(t, 2025, periods[0].Year)
	assert.Equal(t, 12, periods[8].Month)
	assert.Equal(t, 2025, periods[8].Year)
	assert.Equal(t, 1, periods[9].Month)
	assert.Equal(t, 2026, periods[9].Year)
	assert.Equal(t, 3, periods[11].Month)
	assert.Equal(t, 2026, periods[11].Year)

	for _, p := range periods {
		assert.Equal(t, 5000.0, p.Amount)
		assert.Equal(t, 10, p.DueDate.Day())
		assert.Equal(t, time.Month(p.Month), p.DueDate.Month())
		assert.Equal(t, p.Year, p.DueDate.Year())
	}
}

func TestBuildMonthlyScheduleSumTolerance(t *testing.T) {
	// 50000 does not divide evenly by 12; the schedule may drift by rounding
	// but never more than a paisa.
	periods := BuildMonthlySchedule(50000, 4, 2025, 10)

	var sum float64
	for _, p := range periods {
		sum += p.Amount
	}
	assert.InDelta(t, 50000, sum, 0.01)
}

func TestStatusForAmounts(t *testing.T) {
	assert.Equal(t, models.PaymentPaid, StatusForAmounts(5000, 5000, models.PaymentPending))
	assert.Equal(t, models.PaymentPaid, StatusForAmounts(6000, 5000, models.PaymentPending))
	assert.Equal(t, models.PaymentPartial, StatusForAmounts(100, 5000, models.PaymentPending))

	// Untouched entries keep their previous status
	assert.Equal(t, models.PaymentPending, StatusForAmounts(0, 5000, models.PaymentPending))
	assert.Equal(t, models.PaymentOverdue, StatusForAmounts(0, 5000, models.PaymentOverdue))
}

func TestApplyAllocation(t *testing.T) {
	entry := &models.MonthlyFeeTracking{
		MonthlyAmount: 1000,
		PaymentStatus: models.PaymentPending,
	}

	applied := ApplyAllocation(entry, 400)
	assert.Equal(t, 400.0, applied)
	assert.Equal(t, 400.0, entry.PaidAmount)
	assert.Equal(t, models.PaymentPartial, entry.PaymentStatus)

	// 600 more settles the month exactly
	applied = ApplyAllocation(entry, 600)
	assert.Equal(t, 600.0, applied)
	assert.Equal(t, 1000.0, entry.PaidAmount)
	assert.Equal(t, models.PaymentPaid, entry.PaymentStatus)

	// A settled entry absorbs nothing more
	applied = ApplyAllocation(entry, 500)
	assert.Equal(t, 0.0, applied)
	assert.Equal(t, 1000.0, entry.PaidAmount)
	assert.Equal(t, models.PaymentPaid, entry.PaymentStatus)
}

func TestApplyAllocationClampsOverpayment(t *testing.T) {
	entry := &models.MonthlyFeeTracking{
		MonthlyAmount: 1000,
		PaymentStatus: models.PaymentPending,
	}

	applied := ApplyAllocation(entry, 1500)
	assert.Equal(t, 1000.0, applied)
	assert.Equal(t, 1000.0, entry.PaidAmount)
	assert.Equal(t, models.PaymentPaid, entry.PaymentStatus)
	assert.Equal(t, 0.0, entry.Balance())
}

func TestApplyAllocationIgnoresNonPositiveAmounts(t *testing.T) {
	entry := &models.MonthlyFeeTracking{
		MonthlyAmount: 1000,
		PaidAmount:    200,
		PaymentStatus: models.PaymentPartial,
	}

	assert.Equal(t, 0.0, ApplyAllocation(entry, 0))
	assert.Equal(t, 0.0, ApplyAllocation(entry, -50))
	assert.Equal(t, 200.0, entry.PaidAmount)
}

func TestCollectionPercentage(t *testing.T) {
	assert.Equal(t, 50.0, CollectionPercentage(25000, 50000))
	assert.Equal(t, 0.0, CollectionPercentage(1000, 0))
	assert.Equal(t, 0.0, CollectionPercentage(0, -5))
	assert.True(t, math.Abs(CollectionPercentage(1, 3)-33.333) < 0.01)
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "April", MonthName(4))
	assert.Equal(t, "December", MonthName(12))
	assert.Equal(t, "", MonthName(0))
	assert.Equal(t, "", MonthName(13))
}

func ledgerEntry(id string, month, year int, monthly, paid float64, status models.PaymentStatus, due time.Time) *models.MonthlyFeeTracking {
	return &models.MonthlyFeeTracking{
		ID:            id,
		AcademicMonth: month,
		AcademicYear:  year,
		MonthlyAmount: monthly,
		PaidAmount:    paid,
		PaymentStatus: status,
		DueDate:       due,
	}
}

func TestSummarizeLedger(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local)

	entries := []*models.MonthlyFeeTracking{
		ledgerEntry("a", 4, 2025, 1000, 1000, models.PaymentPaid, time.Date(2025, 4, 10, 0, 0, 0, 0, time.Local)),
		ledgerEntry("b", 5, 2025, 1000, 400, models.PaymentPartial, time.Date(2025, 5, 10, 0, 0, 0, 0, time.Local)),
		ledgerEntry("c", 6, 2025, 1000, 0, models.PaymentPending, time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)),
		ledgerEntry("d", 8, 2025, 1000, 0, models.PaymentPending, time.Date(2025, 8, 10, 0, 0, 0, 0, time.Local)),
	}

	summary := SummarizeLedger(entries, now)

	assert.Equal(t, 1, summary.MonthsPaid)
	assert.Equal(t, 2, summary.MonthsOverdue) // b and c are past due
	assert.Equal(t, 1, summary.MonthsPending)
	assert.Equal(t, 2600.0, summary.TotalBalance)
	require.Len(t, summary.Entries, 4)
	assert.Equal(t, "April", summary.Entries[0].MonthName)
	assert.True(t, summary.Entries[1].IsOverdue)
	assert.False(t, summary.Entries[3].IsOverdue)
}

func TestSummarizeLedgerClampsNegativeBalances(t *testing.T) {
	now := time.Now()
	entries := []*models.MonthlyFeeTracking{
		ledgerEntry("a", 4, 2025, 1000, 1000, models.PaymentPaid, now),
	}

	// Simulate drift where paid exceeds owed
	entries[0].PaidAmount = 1200

	summary := SummarizeLedger(entries, now)
	assert.Equal(t, 0.0, summary.TotalBalance)
}

func TestSplitOldestFirst(t *testing.T) {
	entries := []*models.MonthlyFeeTracking{
		ledgerEntry("apr", 4, 2025, 1000, 600, models.PaymentPartial, time.Time{}),
		ledgerEntry("may", 5, 2025, 1000, 0, models.PaymentPending, time.Time{}),
		ledgerEntry("jun", 6, 2025, 1000, 0, models.PaymentPending, time.Time{}),
	}

	requests, remainder := SplitOldestFirst(entries, 1200)

	require.Len(t, requests, 2)
	assert.Equal(t, "apr", requests[0].MonthlyTrackingID)
	assert.Equal(t, 400.0, requests[0].Amount)
	assert.Equal(t, "may", requests[1].MonthlyTrackingID)
	assert.Equal(t, 800.0, requests[1].Amount)
	assert.Equal(t, 0.0, remainder)
}

func TestSplitOldestFirstSkipsSettledAndReturnsRemainder(t *testing.T) {
	entries := []*models.MonthlyFeeTracking{
		ledgerEntry("apr", 4, 2025, 1000, 1000, models.PaymentPaid, time.Time{}),
		ledgerEntry("may", 5, 2025, 1000, 0, models.PaymentPending, time.Time{}),
	}

	requests, remainder := SplitOldestFirst(entries, 1500)

	require.Len(t, requests, 1)
	assert.Equal(t, "may", requests[0].MonthlyTrackingID)
	assert.Equal(t, 1000.0, requests[0].Amount)
	assert.Equal(t, 500.0, remainder)
}

func TestSplitOldestFirstEmptyLedger(t *testing.T) {
	requests, remainder := SplitOldestFirst(nil, 700)
	assert.Empty(t, requests)
	assert.Equal(t, 700.0, remainder)
}
