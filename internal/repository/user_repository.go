package repository

import (
	"database/sql"
	"fmt"

	"github.com/worktrack/tracker-backend-go/internal/models"
)

// UserRepository handles database operations for the subject registry.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetName returns the subject's full name, or a "User_<id>" placeholder for
// unregistered subjects.
func (r *UserRepository) GetName(subjectID int64) (string, error) {
	var name string
	err := r.db.QueryRow(`SELECT full_name FROM user_mapping WHERE subject_id = ?`, subjectID).Scan(&name)
	if err == sql.ErrNoRows {
		return fmt.Sprintf("User_%d", subjectID), nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query subject name: %w", err)
	}
	return name, nil
}

// Upsert registers or renames a subject.
func (r *UserRepository) Upsert(subjectID int64, fullName string, isAdmin bool) error {
	_, err := r.db.Exec(`
		INSERT INTO user_mapping (subject_id, full_name, is_admin)
		VALUES (?, ?, ?)
		ON CONFLICT(subject_id) DO UPDATE SET
			full_name = excluded.full_name,
			is_admin = excluded.is_admin`, subjectID, fullName, isAdmin)
	if err != nil {
		return fmt.Errorf("failed to upsert subject %d: %w", subjectID, err)
	}
	return nil
}

// List returns all registered subjects ordered by name.
func (r *UserRepository) List() ([]models.Subject, error) {
	rows, err := r.db.Query(`
		SELECT subject_id, full_name, is_admin, created_at
		FROM user_mapping ORDER BY full_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query subjects: %w", err)
	}
	defer rows.Close()

	var subjects []models.Subject
	for rows.Next() {
		var s models.Subject
		if err := rows.Scan(&s.ID, &s.FullName, &s.IsAdmin, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}
