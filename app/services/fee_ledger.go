package services

import (
	"time"

	"github.com/javedansari81/sunrise-school-management-sub001/app/models"
)

// SchedulePeriod is one month of a fee record's amortization schedule.
type SchedulePeriod struct {
	Month   int
	Year    int
	Amount  float64
	DueDate time.Time
}

// BuildMonthlySchedule amortizes an annual fee into 12 consecutive monthly
// periods starting at (startMonth, startYear), wrapping December into January
// of the next year. Each period is due on dueDay of its month.
//
// The monthly amount is a plain total/12 division; the schedule does not
// redistribute the rounding remainder, so the periods may sum a few paise off
// the annual total. Callers compare against a tolerance, not exact equality.
func BuildMonthlySchedule(total float64, startMonth, startYear, dueDay int) []SchedulePeriod {
	monthly := total / 12

	periods := make([]SchedulePeriod, 0, 12)
	month, year := startMonth, startYear
	for i := 0; i < 12; i++ {
		periods = append(periods, SchedulePeriod{
			Month:   month,
			Year:    year,
			Amount:  monthly,
			DueDate: time.Date(year, time.Month(month), dueDay, 0, 0, 0, 0, time.Local),
		})
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return periods
}

// StatusForAmounts derives a ledger entry's payment status after an
// allocation. A fully covered entry is paid, a partially covered one is
// partial, and an untouched entry keeps its previous status so that overdue
// entries are not silently reset to pending.
func StatusForAmounts(paid, monthly float64, previous models.PaymentStatus) models.PaymentStatus {
	switch {
	case paid >= monthly:
		return models.PaymentPaid
	case paid > 0:
		return models.PaymentPartial
	default:
		return previous
	}
}

// ApplyAllocation applies an amount to a ledger entry, clamping so the entry
// never shows more paid than owed, and returns the amount actually applied.
// Excess is not redistributed to other periods; that is a caller concern.
func ApplyAllocation(entry *models.MonthlyFeeTracking, amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	applied := amount
	if entry.PaidAmount+applied > entry.MonthlyAmount {
		applied = entry.MonthlyAmount - entry.PaidAmount
	}
	if applied < 0 {
		applied = 0
	}
	entry.PaidAmount += applied
	entry.PaymentStatus = StatusForAmounts(entry.PaidAmount, entry.MonthlyAmount, entry.PaymentStatus)
	return applied
}

// CollectionPercentage returns paid/total as a percentage, guarding against a
// zero annual fee.
func CollectionPercentage(paid, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return paid / total * 100
}

// MonthName returns the English month name for a 1-12 academic month number.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return time.Month(month).String()
}

// LedgerSummary holds the aggregate figures derived from a fee record's
// ledger entries.
type LedgerSummary struct {
	TotalBalance  float64
	MonthsPaid    int
	MonthsPending int
	MonthsOverdue int
	Entries       []models.MonthlyLedgerView
}

// SummarizeLedger folds a fee record's ledger entries into display views and
// aggregate counts. Balances are clamped at zero per entry; the headline
// "total paid" figure is NOT derived here; it comes from the raw payment
// rows so it stays consistent with the payment history view.
func SummarizeLedger(entries []*models.MonthlyFeeTracking, now time.Time) LedgerSummary {
	summary := LedgerSummary{Entries: make([]models.MonthlyLedgerView, 0, len(entries))}

	for _, e := range entries {
		balance := e.Balance()
		overdue := e.IsOverdueAt(now)

		switch {
		case e.PaymentStatus == models.PaymentPaid:
			summary.MonthsPaid++
		case overdue:
			summary.MonthsOverdue++
		default:
			summary.MonthsPending++
		}
		summary.TotalBalance += balance

		summary.Entries = append(summary.Entries, models.MonthlyLedgerView{
			ID:             e.ID,
			AcademicMonth:  e.AcademicMonth,
			AcademicYear:   e.AcademicYear,
			MonthName:      MonthName(e.AcademicMonth),
			MonthlyAmount:  e.MonthlyAmount,
			PaidAmount:     e.PaidAmount,
			Balance:        balance,
			DueDate:        e.DueDate,
			PaymentStatus:  e.PaymentStatus,
			LateFee:        e.LateFee,
			DiscountAmount: e.DiscountAmount,
			IsOverdue:      overdue,
		})
	}
	return summary
}

// AllocationRequest targets one ledger entry with a slice of a payment.
type AllocationRequest struct {
	MonthlyTrackingID string  `json:"monthly_tracking_id" validate:"required,uuid"`
	Amount            float64 `json:"amount" validate:"required,gt=0"`
}

// SplitOldestFirst distributes a payment amount across unpaid entries in the
// order given (callers pass entries sorted by academic year then month). Each
// entry receives at most its outstanding balance; anything left after the
// last entry is returned as remainder.
func SplitOldestFirst(entries []*models.MonthlyFeeTracking, amount float64) ([]AllocationRequest, float64) {
	var requests []AllocationRequest
	remaining := amount
	for _, e := range entries {
		if remaining <= 0 {
			break
		}
		outstanding := e.Balance()
		if outstanding <= 0 {
			continue
		}
		slice := outstanding
		if remaining < slice {
			slice = remaining
		}
		requests = append(requests, AllocationRequest{MonthlyTrackingID: e.ID, Amount: slice})
		remaining -= slice
	}
	return requests, remaining
}
