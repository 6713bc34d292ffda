package models

import "time"

// FeeRecord is the annual billing record for one student in one session year.
// Once monthly tracking is enabled the ledger rows become authoritative;
// the paid/balance figures here are advisory roll-ups.
type FeeRecord struct {
	ID               string  `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID        string  `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	SessionYearID    string  `json:"session_year_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	FeeStructureID   *string `json:"fee_structure_id,omitempty" gorm:"index;type:uuid"`
	TotalAmount      float64 `json:"total_amount" gorm:"not null;type:decimal(10,2)" validate:"gte=0"`
	PaidAmount       float64 `json:"paid_amount" gorm:"type:decimal(10,2);default:0" validate:"gte=0"`
	BalanceAmount    float64 `json:"balance_amount" gorm:"type:decimal(10,2);default:0" validate:"gte=0"`
	IsMonthlyTracked bool    `json:"is_monthly_tracked" gorm:"default:false;index"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Student      *Student              `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	SessionYear  *SessionYear          `json:"session_year,omitempty" gorm:"foreignKey:SessionYearID;references:ID"`
	FeeStructure *FeeStructure         `json:"fee_structure,omitempty" gorm:"foreignKey:FeeStructureID;references:ID"`
	Ledger       []*MonthlyFeeTracking `json:"ledger,omitempty" gorm:"foreignKey:FeeRecordID;references:ID"`
}

// FeeStructure defines the annual fee for a class within a session year.
type FeeStructure struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	ClassID       string     `json:"class_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	SessionYearID string     `json:"session_year_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AnnualFee     float64    `json:"annual_fee" gorm:"not null;type:decimal(10,2)" validate:"required,gt=0"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Class       *Class       `json:"class,omitempty" gorm:"foreignKey:ClassID;references:ID"`
	SessionYear *SessionYear `json:"session_year,omitempty" gorm:"foreignKey:SessionYearID;references:ID"`
}
