package models

// PaymentStatus defines the status of a monthly ledger entry.
// Stored as text, never as bare integer codes.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
	PaymentOverdue PaymentStatus = "overdue"
)

// IsSettled reports whether no further amount can be applied to an entry in this status.
func (s PaymentStatus) IsSettled() bool {
	return s == PaymentPaid
}

// PaymentMethod defines how a payment was received.
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "cash"
	MethodCheque PaymentMethod = "cheque"
	MethodOnline PaymentMethod = "online"
	MethodUPI    PaymentMethod = "upi"
)

// Gender defines the possible gender values for a student.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

// RelationshipType defines the relationship of a guardian to a student.
type RelationshipType string

const (
	Father   RelationshipType = "father"
	Mother   RelationshipType = "mother"
	Guardian RelationshipType = "guardian"
	OtherRel RelationshipType = "other"
)
