package store

import (
	"database/sql"
	"errors"
	"time"
)

// Event represents one stable letter recognized during a session.
type Event struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	Letter     string    `json:"letter"`
	Confidence float64   `json:"confidence"`
	At         time.Time `json:"at"`
}

// EventRepository provides operations for stable-letter events.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Create inserts a new event. The caller assigns the ID. A zero At is
// replaced with the current time.
func (r *EventRepository) Create(event *Event) error {
	if event.At.IsZero() {
		event.At = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO events (id, session_id, letter, confidence, at) VALUES (?, ?, ?, ?, ?)`,
		event.ID, event.SessionID, event.Letter, event.Confidence, event.At,
	)
	return err
}

// ListBySession retrieves all events for a session in chronological order.
func (r *EventRepository) ListBySession(sessionID string) ([]*Event, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, letter, confidence, at
		 FROM events WHERE session_id = ? ORDER BY at, id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// ConfidencesByLetter collects the confidence values of every recorded event,
// grouped by letter and ordered by time within each group.
func (r *EventRepository) ConfidencesByLetter() (map[string][]float64, error) {
	rows, err := r.db.Query(`SELECT letter, confidence FROM events ORDER BY letter, at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	series := make(map[string][]float64)
	for rows.Next() {
		var letter string
		var confidence float64
		if err := rows.Scan(&letter, &confidence); err != nil {
			return nil, err
		}
		series[letter] = append(series[letter], confidence)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return series, nil
}

func scanEvent(row scanner) (*Event, error) {
	var event Event
	err := row.Scan(&event.ID, &event.SessionID, &event.Letter, &event.Confidence, &event.At)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &event, nil
}
