package models

import "time"

// Subject represents a tracked employee.
type Subject struct {
	ID        int64   `json:"id" db:"subject_id"`
	FullName  string  `json:"full_name" db:"full_name"`
	IsAdmin   bool    `json:"is_admin" db:"is_admin"`
	CreatedAt *string `json:"created_at,omitempty" db:"created_at"`
}

// SubjectStatus pairs a subject with their most recent declared status, used
// by the admin overview. Status is empty when the subject has never reported.
type SubjectStatus struct {
	SubjectID int64      `json:"subject_id"`
	FullName  string     `json:"full_name"`
	Status    string     `json:"status,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}
