package models

import "time"

// Payment represents an amount received against a student's fee record.
type Payment struct {
	ID            string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	FeeRecordID   string        `json:"fee_record_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Amount        float64       `json:"amount" gorm:"not null;type:decimal(10,2)" validate:"required,gt=0"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"not null;type:varchar(20)" validate:"required"`
	PaymentDate   time.Time     `json:"payment_date" gorm:"not null;index"`
	ReceiptNo     string        `json:"receipt_no" gorm:"uniqueIndex;not null"`
	ReceivedBy    *string       `json:"received_by,omitempty" gorm:"index;type:uuid"`
	Notes         *string       `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`

	FeeRecord   *FeeRecord           `json:"fee_record,omitempty" gorm:"foreignKey:FeeRecordID;references:ID"`
	Allocations []*PaymentAllocation `json:"allocations,omitempty" gorm:"foreignKey:PaymentID;references:ID"`
}
