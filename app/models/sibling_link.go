package models

import "time"

// SiblingLink records that two students belong to the same family. Links are
// bidirectional: linking A to B writes both (A,B) and (B,A) rows so family
// lookups are a single indexed query from either side.
type SiblingLink struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	StudentID string    `json:"student_id" gorm:"not null;index;uniqueIndex:uniq_sibling_pair,priority:1;type:uuid"`
	SiblingID string    `json:"sibling_id" gorm:"not null;index;uniqueIndex:uniq_sibling_pair,priority:2;type:uuid"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	Sibling *Student `json:"sibling,omitempty" gorm:"foreignKey:SiblingID;references:ID"`
}
