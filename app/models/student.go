package models

import "time"

// Student represents an admitted student within a session year.
type Student struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	AdmissionNo   string     `json:"admission_no" gorm:"uniqueIndex;not null" validate:"required"`
	FirstName     string     `json:"first_name" gorm:"not null" validate:"required"`
	LastName      string     `json:"last_name" gorm:"not null" validate:"required"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty" gorm:"type:date;index"`
	Gender        Gender     `json:"gender" gorm:"type:varchar(10)"`
	Address       *string    `json:"address,omitempty" gorm:"type:text"`
	ClassID       *string    `json:"class_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	SessionYearID *string    `json:"session_year_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`

	// Guardian details used for sibling detection
	FatherName  string  `json:"father_name" gorm:"not null;index"`
	FatherPhone string  `json:"father_phone" gorm:"index;type:varchar(20)"`
	MotherName  *string `json:"mother_name,omitempty"`

	// Sibling waiver assignment, recomputed whenever the family set changes
	BirthOrder           int     `json:"birth_order" gorm:"default:0"`
	SiblingWaiverPercent float64 `json:"sibling_waiver_percent" gorm:"type:decimal(5,2);default:0"`
	SiblingWaiverReason  *string `json:"sibling_waiver_reason,omitempty"`

	IsActive  bool       `json:"is_active" gorm:"default:true;index"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Class       *Class       `json:"class,omitempty" gorm:"foreignKey:ClassID;references:ID"`
	SessionYear *SessionYear `json:"session_year,omitempty" gorm:"foreignKey:SessionYearID;references:ID"`
	FeeRecords  []*FeeRecord `json:"fee_records,omitempty" gorm:"foreignKey:StudentID;references:ID"`
}

// FullName returns the student's display name.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
