package models

import (
	"database/sql"
	"time"
)

// Point kind constants
const (
	PointStart        = "start"
	PointIntermediate = "intermediate"
	PointEnd          = "end"
	PointStationary   = "stationary"
	PointMoving       = "moving"
)

// LocationSample represents a single validated geolocation fix for a subject.
// Latitude and longitude are guaranteed to be finite and within range once a
// sample exists; rows that fail validation are dropped during normalization.
type LocationSample struct {
	SubjectID int64     `json:"subject_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	Kind      string    `json:"kind"`
}

// RawLocationRow is the storage-boundary shape of a location row. The
// location_history table has gone through several schema revisions, so
// latitude, longitude and timestamp may come back as REAL or TEXT and the
// session/kind columns may be absent on old rows. The normalizer converts
// these into LocationSample values.
type RawLocationRow struct {
	SubjectID int64
	Latitude  any
	Longitude any
	Timestamp any
	SessionID sql.NullString
	Kind      sql.NullString
}

// LocationFilter selects location rows for a subject. Exactly one of
// SessionID, Date or HoursLimit is normally set; Date takes the form
// "2006-01-02". When nothing is set the repository falls back to HoursLimit
// with the configured default.
type LocationFilter struct {
	SessionID  string `form:"session_id"`
	Date       string `form:"date"`
	HoursLimit int    `form:"hours"`
}
