package models

import "time"

// PaymentAllocation links a single payment to one monthly ledger entry it was
// applied to. Rows are immutable once written; for a given payment the sum of
// its allocations never exceeds the payment amount.
type PaymentAllocation struct {
	ID                string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	PaymentID         string    `json:"payment_id" gorm:"not null;index;uniqueIndex:uniq_payment_entry,priority:1;type:uuid" validate:"required,uuid"`
	MonthlyTrackingID string    `json:"monthly_tracking_id" gorm:"not null;index;uniqueIndex:uniq_payment_entry,priority:2;type:uuid" validate:"required,uuid"`
	AllocatedAmount   float64   `json:"allocated_amount" gorm:"not null;type:decimal(10,2)" validate:"required,gt=0"`
	CreatedAt         time.Time `json:"created_at" gorm:"autoCreateTime"`

	Payment *Payment            `json:"payment,omitempty" gorm:"foreignKey:PaymentID;references:ID"`
	Entry   *MonthlyFeeTracking `json:"entry,omitempty" gorm:"foreignKey:MonthlyTrackingID;references:ID"`
}
