package models

import "time"

// ReportRow is one chronological entry of the tabular activity report.
// IDs are assigned sequentially after the final time sort.
type ReportRow struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	SubjectID int64     `json:"subject_id"`
	EventType string    `json:"event_type"`
	Value     string    `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}
