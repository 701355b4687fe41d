package database

import (
	"database/sql"
	"fmt"
)

// schemaStatements creates the tracker tables. Statements are idempotent so
// startup can run them unconditionally.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS user_mapping (
		subject_id INTEGER PRIMARY KEY,
		full_name TEXT NOT NULL,
		is_admin BOOLEAN DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS status_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		subject_id INTEGER,
		status TEXT,
		timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (subject_id) REFERENCES user_mapping(subject_id)
	)`,
	`CREATE TABLE IF NOT EXISTS location_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		subject_id INTEGER,
		latitude REAL,
		longitude REAL,
		timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		session_id TEXT,
		location_type TEXT DEFAULT 'intermediate',
		FOREIGN KEY (subject_id) REFERENCES user_mapping(subject_id)
	)`,
	`CREATE TABLE IF NOT EXISTS timeoff_requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		subject_id INTEGER,
		username TEXT,
		reason TEXT,
		status TEXT DEFAULT 'pending',
		request_time TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		response_time TIMESTAMP,
		admin_id INTEGER,
		FOREIGN KEY (subject_id) REFERENCES user_mapping(subject_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_location_history_subject_time
		ON location_history(subject_id, timestamp)`,
	`CREATE INDEX IF NOT EXISTS idx_status_history_subject_time
		ON status_history(subject_id, timestamp)`,
	`CREATE INDEX IF NOT EXISTS idx_location_history_session
		ON location_history(session_id)`,
}

// ApplySchema creates all tracker tables and indexes if they do not exist.
func ApplySchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
