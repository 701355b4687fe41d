package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/worktrack/tracker-backend-go/internal/models"
)

// StatusRepository handles database operations for status history.
type StatusRepository struct {
	db  *sql.DB
	loc *time.Location
}

// NewStatusRepository creates a new status repository.
func NewStatusRepository(db *sql.DB, loc *time.Location) *StatusRepository {
	return &StatusRepository{db: db, loc: loc}
}

// SaveStatus appends a status event for a subject. Status history is
// append-only; events are never updated or deleted.
func (r *StatusRepository) SaveStatus(subjectID int64, status string) error {
	now := time.Now().In(r.loc)
	_, err := r.db.Exec(`
		INSERT INTO status_history (subject_id, status, timestamp)
		VALUES (?, ?, ?)`, subjectID, status, now.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to save status: %w", err)
	}
	return nil
}

// GetStatusHistory retrieves raw status rows for a subject in ascending
// timestamp order. Date ("2006-01-02") wins over Days when both are set;
// with neither, the last day is returned.
func (r *StatusRepository) GetStatusHistory(subjectID int64, filter models.StatusFilter) ([]models.RawStatusRow, error) {
	var (
		rows *sql.Rows
		err  error
	)

	if filter.Date != "" {
		rows, err = r.db.Query(`
			SELECT status, timestamp
			FROM status_history
			WHERE subject_id = ? AND timestamp BETWEEN ? AND ?
			ORDER BY timestamp ASC`, subjectID, filter.Date+" 00:00:00", filter.Date+" 23:59:59")
	} else {
		days := filter.Days
		if days <= 0 {
			days = 1
		}
		limit := time.Now().In(r.loc).AddDate(0, 0, -days).Format(timeLayout)
		rows, err = r.db.Query(`
			SELECT status, timestamp
			FROM status_history
			WHERE subject_id = ? AND timestamp > ?
			ORDER BY timestamp ASC`, subjectID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query status history: %w", err)
	}
	defer rows.Close()

	var result []models.RawStatusRow
	for rows.Next() {
		row := models.RawStatusRow{SubjectID: subjectID}
		if err := rows.Scan(&row.Status, &row.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan status row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// GetLatestStatus returns the subject's most recent raw status row, or nil
// when the subject has never reported.
func (r *StatusRepository) GetLatestStatus(subjectID int64) (*models.RawStatusRow, error) {
	row := models.RawStatusRow{SubjectID: subjectID}
	err := r.db.QueryRow(`
		SELECT status, timestamp
		FROM status_history
		WHERE subject_id = ?
		ORDER BY timestamp DESC, id DESC LIMIT 1`, subjectID).
		Scan(&row.Status, &row.Timestamp)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest status: %w", err)
	}
	return &row, nil
}

// AllSubjectsWithLatestStatus returns every registered subject joined with
// their most recent status event, ordered by name.
func (r *StatusRepository) AllSubjectsWithLatestStatus() ([]models.SubjectStatus, error) {
	rows, err := r.db.Query(`
		SELECT um.subject_id, um.full_name, sh.status, sh.timestamp
		FROM user_mapping um
		LEFT JOIN (
			SELECT subject_id, status, timestamp,
				ROW_NUMBER() OVER (PARTITION BY subject_id ORDER BY timestamp DESC, id DESC) AS rn
			FROM status_history
		) sh ON um.subject_id = sh.subject_id AND sh.rn = 1
		ORDER BY um.full_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query subject statuses: %w", err)
	}
	defer rows.Close()

	var result []models.SubjectStatus
	for rows.Next() {
		var (
			s      models.SubjectStatus
			status sql.NullString
			ts     sql.NullString
		)
		if err := rows.Scan(&s.SubjectID, &s.FullName, &status, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan subject status: %w", err)
		}
		if status.Valid {
			s.Status = status.String
		}
		if ts.Valid {
			if t, err := time.ParseInLocation(timeLayout, ts.String, r.loc); err == nil {
				s.Timestamp = &t
			}
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
