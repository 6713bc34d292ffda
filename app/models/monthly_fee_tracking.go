package models

import "time"

// MonthlyFeeTracking is one month's amortized slice of a fee record's total
// amount. One row exists per (fee_record, academic_month, academic_year);
// rows are created once by the initializer and mutated only by the payment
// allocator. Invariant: 0 <= paid_amount <= monthly_amount.
type MonthlyFeeTracking struct {
	ID             string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	FeeRecordID    string        `json:"fee_record_id" gorm:"not null;index;uniqueIndex:uniq_record_period,priority:1;type:uuid" validate:"required,uuid"`
	AcademicMonth  int           `json:"academic_month" gorm:"not null;uniqueIndex:uniq_record_period,priority:2" validate:"required,min=1,max=12"`
	AcademicYear   int           `json:"academic_year" gorm:"not null;uniqueIndex:uniq_record_period,priority:3" validate:"required"`
	MonthlyAmount  float64       `json:"monthly_amount" gorm:"not null;type:decimal(10,2)" validate:"gte=0"`
	PaidAmount     float64       `json:"paid_amount" gorm:"type:decimal(10,2);default:0" validate:"gte=0"`
	DueDate        time.Time     `json:"due_date" gorm:"not null;type:date;index"`
	PaymentStatus  PaymentStatus `json:"payment_status" gorm:"not null;default:'pending';index;type:varchar(10)"`
	LateFee        float64       `json:"late_fee" gorm:"type:decimal(10,2);default:0"`
	DiscountAmount float64       `json:"discount_amount" gorm:"type:decimal(10,2);default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	FeeRecord   *FeeRecord           `json:"fee_record,omitempty" gorm:"foreignKey:FeeRecordID;references:ID"`
	Allocations []*PaymentAllocation `json:"allocations,omitempty" gorm:"foreignKey:MonthlyTrackingID;references:ID"`
}

// Balance returns the outstanding amount on this entry, clamped at zero so
// rounding differences between the ledger and raw payment sums never surface
// as a negative balance.
func (m *MonthlyFeeTracking) Balance() float64 {
	if b := m.MonthlyAmount - m.PaidAmount; b > 0 {
		return b
	}
	return 0
}

// IsOverdueAt reports whether the entry is unpaid past its due date.
func (m *MonthlyFeeTracking) IsOverdueAt(now time.Time) bool {
	if m.PaymentStatus == PaymentPaid {
		return false
	}
	return m.DueDate.Before(now)
}
