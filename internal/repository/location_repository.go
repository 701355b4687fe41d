package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/worktrack/tracker-backend-go/internal/database"
	"github.com/worktrack/tracker-backend-go/internal/models"
)

const timeLayout = "2006-01-02 15:04:05"

// LocationRepository handles database operations for location history.
type LocationRepository struct {
	db  *sql.DB
	loc *time.Location
}

// NewLocationRepository creates a new location repository operating in the
// given display timezone.
func NewLocationRepository(db *sql.DB, loc *time.Location) *LocationRepository {
	return &LocationRepository{db: db, loc: loc}
}

// GetLocations retrieves raw location rows for a subject. Exactly one of the
// filter fields is honored, in order: SessionID, Date, HoursLimit. Rows are
// returned in ascending timestamp order; coordinate and timestamp columns
// are returned untyped because old rows may store them as TEXT.
func (r *LocationRepository) GetLocations(subjectID int64, filter models.LocationFilter) ([]models.RawLocationRow, error) {
	var (
		rows *sql.Rows
		err  error
	)

	const selectCols = `SELECT latitude, longitude, timestamp, session_id, location_type
		FROM location_history`

	switch {
	case filter.SessionID != "":
		rows, err = r.db.Query(selectCols+`
			WHERE subject_id = ? AND session_id = ?
			ORDER BY timestamp`, subjectID, filter.SessionID)
	case filter.Date != "":
		rows, err = r.db.Query(selectCols+`
			WHERE subject_id = ? AND timestamp BETWEEN ? AND ?
			ORDER BY timestamp`, subjectID, filter.Date+" 00:00:00", filter.Date+" 23:59:59")
	default:
		hours := filter.HoursLimit
		if hours <= 0 {
			hours = 24
		}
		limit := time.Now().In(r.loc).Add(-time.Duration(hours) * time.Hour).Format(timeLayout)
		rows, err = r.db.Query(selectCols+`
			WHERE subject_id = ? AND timestamp > ?
			ORDER BY timestamp`, subjectID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var result []models.RawLocationRow
	for rows.Next() {
		row := models.RawLocationRow{SubjectID: subjectID}
		if err := rows.Scan(&row.Latitude, &row.Longitude, &row.Timestamp, &row.SessionID, &row.Kind); err != nil {
			return nil, fmt.Errorf("failed to scan location row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// SaveLocation persists a new location sample. When sessionID is empty the
// subject's open session from today is reused if one exists, otherwise a new
// session id is generated. Returns the session id the sample was filed under.
func (r *LocationRepository) SaveLocation(subjectID int64, lat, lon float64, sessionID, kind string) (string, error) {
	now := time.Now().In(r.loc)

	if sessionID == "" {
		today := now.Format("2006-01-02")
		err := r.db.QueryRow(`
			SELECT session_id FROM location_history
			WHERE subject_id = ? AND timestamp LIKE ? AND session_id IS NOT NULL
				AND session_id NOT IN (
					SELECT session_id FROM location_history
					WHERE subject_id = ? AND location_type = 'end' AND session_id IS NOT NULL
				)
			ORDER BY timestamp DESC LIMIT 1`, subjectID, today+"%", subjectID).Scan(&sessionID)
		if err == sql.ErrNoRows {
			sessionID = fmt.Sprintf("session_%d_%s", subjectID, uuid.NewString())
		} else if err != nil {
			return "", fmt.Errorf("failed to look up open session: %w", err)
		}
	}

	if kind == "" {
		kind = models.PointIntermediate
	}

	_, err := r.db.Exec(`
		INSERT INTO location_history (subject_id, latitude, longitude, timestamp, session_id, location_type)
		VALUES (?, ?, ?, ?, ?, ?)`,
		subjectID, lat, lon, now.Format(timeLayout), sessionID, kind)
	if err != nil {
		return "", fmt.Errorf("failed to save location: %w", err)
	}
	return sessionID, nil
}

// CloseSession ends a location session. With coordinates it appends a final
// end point; without them it relabels the session's most recent point as the
// end marker. Returns whether a previously open session was actually closed,
// so closing an unknown or already-ended session is a no-op.
func (r *LocationRepository) CloseSession(sessionID string, subjectID int64, lat, lon *float64) (bool, error) {
	if lat != nil && lon != nil {
		now := time.Now().In(r.loc)
		_, err := r.db.Exec(`
			INSERT INTO location_history (subject_id, latitude, longitude, timestamp, session_id, location_type)
			VALUES (?, ?, ?, ?, ?, 'end')`,
			subjectID, *lat, *lon, now.Format(timeLayout), sessionID)
		if err != nil {
			return false, fmt.Errorf("failed to append end point for session %s: %w", sessionID, err)
		}
		return true, nil
	}

	// The existence check and the relabel must see the same rows, so both run
	// inside one transaction.
	closed := false
	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		var total, ended int
		if err := tx.QueryRow(`
			SELECT COUNT(*), COALESCE(SUM(location_type = 'end'), 0)
			FROM location_history
			WHERE subject_id = ? AND session_id = ?`, subjectID, sessionID).Scan(&total, &ended); err != nil {
			return fmt.Errorf("failed to check session %s: %w", sessionID, err)
		}
		if total == 0 {
			log.Warnf("[LocationRepository] No locations found for session %s, subject %d", sessionID, subjectID)
			return nil
		}
		if ended > 0 {
			return nil
		}

		if _, err := tx.Exec(`
			UPDATE location_history
			SET location_type = 'end'
			WHERE id = (
				SELECT id FROM location_history
				WHERE subject_id = ? AND session_id = ?
				ORDER BY timestamp DESC, id DESC LIMIT 1
			)`, subjectID, sessionID); err != nil {
			return fmt.Errorf("failed to mark session %s ended: %w", sessionID, err)
		}
		closed = true
		return nil
	})
	return closed, err
}

// ListOpenSessions returns the session ids for the given date that have no
// end point yet. Multiple open sessions per day are possible and tolerated.
func (r *LocationRepository) ListOpenSessions(subjectID int64, date string) ([]string, error) {
	if date == "" {
		date = time.Now().In(r.loc).Format("2006-01-02")
	}

	rows, err := r.db.Query(`
		SELECT session_id
		FROM location_history
		WHERE subject_id = ? AND timestamp LIKE ? AND session_id IS NOT NULL
			AND session_id NOT IN (
				SELECT session_id FROM location_history
				WHERE subject_id = ? AND location_type = 'end' AND session_id IS NOT NULL
			)
		GROUP BY session_id
		ORDER BY MAX(timestamp) DESC`, subjectID, date+"%", subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query open sessions: %w", err)
	}
	defer rows.Close()

	var sessions []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan session id: %w", err)
		}
		sessions = append(sessions, id)
	}
	return sessions, rows.Err()
}

// LatestLocation returns the most recent raw location row for a subject, or
// nil when none exists.
func (r *LocationRepository) LatestLocation(subjectID int64) (*models.RawLocationRow, error) {
	row := models.RawLocationRow{SubjectID: subjectID}
	err := r.db.QueryRow(`
		SELECT latitude, longitude, timestamp, session_id, location_type
		FROM location_history
		WHERE subject_id = ?
		ORDER BY timestamp DESC, id DESC LIMIT 1`, subjectID).
		Scan(&row.Latitude, &row.Longitude, &row.Timestamp, &row.SessionID, &row.Kind)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest location: %w", err)
	}
	return &row, nil
}
