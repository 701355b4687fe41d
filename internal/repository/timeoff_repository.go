package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/worktrack/tracker-backend-go/internal/models"
)

// TimeoffRepository handles database operations for absence requests.
type TimeoffRepository struct {
	db  *sql.DB
	loc *time.Location
}

// NewTimeoffRepository creates a new timeoff repository.
func NewTimeoffRepository(db *sql.DB, loc *time.Location) *TimeoffRepository {
	return &TimeoffRepository{db: db, loc: loc}
}

// Create records a new pending request and returns its id.
func (r *TimeoffRepository) Create(subjectID int64, username, reason string) (int64, error) {
	now := time.Now().In(r.loc)
	res, err := r.db.Exec(`
		INSERT INTO timeoff_requests (subject_id, username, reason, status, request_time)
		VALUES (?, ?, ?, 'pending', ?)`, subjectID, username, reason, now.Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to create timeoff request: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read timeoff request id: %w", err)
	}
	return id, nil
}

// Respond resolves a pending request with approved/rejected.
func (r *TimeoffRepository) Respond(requestID, adminID int64, status string) error {
	now := time.Now().In(r.loc)
	res, err := r.db.Exec(`
		UPDATE timeoff_requests
		SET status = ?, response_time = ?, admin_id = ?
		WHERE id = ? AND status = 'pending'`,
		status, now.Format(timeLayout), adminID, requestID)
	if err != nil {
		return fmt.Errorf("failed to respond to timeoff request %d: %w", requestID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check timeoff update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("timeoff request %d not found or already resolved", requestID)
	}
	return nil
}

// ListForSubject returns a subject's requests, newest first.
func (r *TimeoffRepository) ListForSubject(subjectID int64) ([]models.TimeoffRequest, error) {
	rows, err := r.db.Query(`
		SELECT id, subject_id, username, reason, status, request_time, response_time, admin_id
		FROM timeoff_requests
		WHERE subject_id = ?
		ORDER BY request_time DESC`, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query timeoff requests: %w", err)
	}
	defer rows.Close()
	return r.scanRequests(rows)
}

// ListPending returns all unresolved requests, oldest first.
func (r *TimeoffRepository) ListPending() ([]models.TimeoffRequest, error) {
	rows, err := r.db.Query(`
		SELECT id, subject_id, username, reason, status, request_time, response_time, admin_id
		FROM timeoff_requests
		WHERE status = 'pending'
		ORDER BY request_time ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending timeoff requests: %w", err)
	}
	defer rows.Close()
	return r.scanRequests(rows)
}

// StatsForSubject aggregates request counts for a subject.
func (r *TimeoffRepository) StatsForSubject(subjectID int64) (models.TimeoffStats, error) {
	var stats models.TimeoffStats
	rows, err := r.db.Query(`
		SELECT status, COUNT(*)
		FROM timeoff_requests
		WHERE subject_id = ?
		GROUP BY status`, subjectID)
	if err != nil {
		return stats, fmt.Errorf("failed to query timeoff stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return stats, fmt.Errorf("failed to scan timeoff stat: %w", err)
		}
		stats.Total += count
		switch status {
		case models.TimeoffApproved:
			stats.Approved = count
		case models.TimeoffRejected:
			stats.Rejected = count
		case models.TimeoffPending:
			stats.Pending = count
		}
	}
	return stats, rows.Err()
}

func (r *TimeoffRepository) scanRequests(rows *sql.Rows) ([]models.TimeoffRequest, error) {
	var requests []models.TimeoffRequest
	for rows.Next() {
		var (
			req          models.TimeoffRequest
			requestTime  string
			responseTime sql.NullString
			adminID      sql.NullInt64
		)
		if err := rows.Scan(&req.ID, &req.SubjectID, &req.Username, &req.Reason, &req.Status,
			&requestTime, &responseTime, &adminID); err != nil {
			return nil, fmt.Errorf("failed to scan timeoff request: %w", err)
		}
		if t, err := time.ParseInLocation(timeLayout, requestTime, r.loc); err == nil {
			req.RequestTime = t
		}
		if responseTime.Valid {
			if t, err := time.ParseInLocation(timeLayout, responseTime.String, r.loc); err == nil {
				req.ResponseTime = &t
			}
		}
		if adminID.Valid {
			id := adminID.Int64
			req.AdminID = &id
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
