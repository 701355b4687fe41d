package models

import "time"

// Timeoff request status constants
const (
	TimeoffPending  = "pending"
	TimeoffApproved = "approved"
	TimeoffRejected = "rejected"
)

// TimeoffRequest represents one absence request made through the bot.
type TimeoffRequest struct {
	ID           int64      `json:"id" db:"id"`
	SubjectID    int64      `json:"subject_id" db:"subject_id"`
	Username     string     `json:"username" db:"username"`
	Reason       string     `json:"reason" db:"reason"`
	Status       string     `json:"status" db:"status"`
	RequestTime  time.Time  `json:"request_time" db:"request_time"`
	ResponseTime *time.Time `json:"response_time,omitempty" db:"response_time"`
	AdminID      *int64     `json:"admin_id,omitempty" db:"admin_id"`
}

// TimeoffStats aggregates request counts for one subject.
type TimeoffStats struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Pending  int `json:"pending"`
}
