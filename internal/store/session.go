package store

import (
	"database/sql"
	"errors"
	"time"
)

// Session represents one recognition run from start to stop.
type Session struct {
	ID             string     `json:"id"`
	StartedAt      time.Time  `json:"started_at"`
	EndedAt        *time.Time `json:"ended_at,omitempty"`
	FrameCount     int64      `json:"frame_count"`
	DetectionCount int64      `json:"detection_count"`
}

// SessionRepository provides CRUD operations for recognition sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Create inserts a new session. The caller assigns the ID.
func (r *SessionRepository) Create(session *Session) error {
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, started_at, frame_count, detection_count) VALUES (?, ?, ?, ?)`,
		session.ID, session.StartedAt, session.FrameCount, session.DetectionCount,
	)
	return err
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	row := r.db.QueryRow(
		`SELECT id, started_at, ended_at, frame_count, detection_count FROM sessions WHERE id = ?`,
		id,
	)
	return scanSession(row)
}

// List retrieves all sessions, newest first.
func (r *SessionRepository) List() ([]*Session, error) {
	rows, err := r.db.Query(
		`SELECT id, started_at, ended_at, frame_count, detection_count
		 FROM sessions ORDER BY started_at DESC, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// End marks a session finished and records its final counters.
func (r *SessionRepository) End(id string, frameCount, detectionCount int64) error {
	result, err := r.db.Exec(
		`UPDATE sessions SET ended_at = ?, frame_count = ?, detection_count = ? WHERE id = ?`,
		time.Now(), frameCount, detectionCount, id,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a session and, through the foreign key, its events.
func (r *SessionRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func scanSession(row scanner) (*Session, error) {
	var session Session
	var ended sql.NullTime
	err := row.Scan(&session.ID, &session.StartedAt, &ended, &session.FrameCount, &session.DetectionCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if ended.Valid {
		t := ended.Time
		session.EndedAt = &t
	}

	return &session, nil
}
