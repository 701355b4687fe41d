package models

import "time"

// Declared status constants
const (
	StatusOffice    = "office"
	StatusHome      = "home"
	StatusSick      = "sick"
	StatusVacation  = "vacation"
	StatusToNight   = "to_night"
	StatusFromNight = "from_night"

	// StatusUnknown is the implicit status before the first recorded event.
	StatusUnknown = "unknown"
)

// StatusLabels maps status codes to their human-readable display form.
var StatusLabels = map[string]string{
	StatusOffice:    "🏢 In office",
	StatusHome:      "🏠 Heading home",
	StatusSick:      "🏥 Sick leave",
	StatusVacation:  "🏖 On vacation",
	StatusToNight:   "🌃 Night shift start",
	StatusFromNight: "🌙 Night shift end",
}

// StatusLabel returns the display form of a status code, or the code itself
// for statuses without a registered label.
func StatusLabel(status string) string {
	if label, ok := StatusLabels[status]; ok {
		return label
	}
	return status
}

// StatusEvent represents one append-only declared-status change. The status
// holds from its timestamp until the subject's next event (step function).
type StatusEvent struct {
	SubjectID int64     `json:"subject_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// RawStatusRow is the storage-boundary shape of a status_history row; the
// timestamp may come back as TEXT or as a native time value.
type RawStatusRow struct {
	SubjectID int64
	Status    string
	Timestamp any
}

// StatusFilter selects status rows for a subject. Date ("2006-01-02") wins
// over Days when both are set.
type StatusFilter struct {
	Date string `form:"date"`
	Days int    `form:"days"`
}
