package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Point is a normalized fingertip position recorded with a sample.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sample represents one captured training example for a letter.
type Sample struct {
	ID          string    `json:"id"`
	Letter      string    `json:"letter"`
	FingerCount int       `json:"finger_count"`
	Tips        []Point   `json:"tips"`
	FrameWidth  int       `json:"frame_width"`
	FrameHeight int       `json:"frame_height"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at"`
}

// SampleStats summarizes the training set.
type SampleStats struct {
	Total         int            `json:"total"`
	ByLetter      map[string]int `json:"by_letter"`
	ByFingerCount map[int]int    `json:"by_finger_count"`
}

// SampleRepository provides CRUD operations for training samples.
type SampleRepository struct {
	db *sql.DB
}

// Samples returns the sample repository for this store.
func (s *Store) Samples() *SampleRepository {
	return &SampleRepository{db: s.db}
}

// Create inserts a new sample. The caller assigns the ID.
func (r *SampleRepository) Create(sample *Sample) error {
	sample.CreatedAt = time.Now()

	tips := sample.Tips
	if tips == nil {
		tips = []Point{}
	}
	data, err := json.Marshal(tips)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(
		`INSERT INTO samples (id, letter, finger_count, tips, frame_width, frame_height, source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sample.ID, sample.Letter, sample.FingerCount, string(data),
		sample.FrameWidth, sample.FrameHeight, sample.Source, sample.CreatedAt,
	)
	return err
}

// GetByID retrieves a sample by its ID.
func (r *SampleRepository) GetByID(id string) (*Sample, error) {
	row := r.db.QueryRow(
		`SELECT id, letter, finger_count, tips, frame_width, frame_height, source, created_at
		 FROM samples WHERE id = ?`,
		id,
	)
	return scanSample(row)
}

// List retrieves samples ordered newest first. An empty letter matches all
// letters. A non-positive limit returns every matching sample.
func (r *SampleRepository) List(letter string, limit int) ([]*Sample, error) {
	if limit <= 0 {
		limit = -1
	}

	var rows *sql.Rows
	var err error
	if letter == "" {
		rows, err = r.db.Query(
			`SELECT id, letter, finger_count, tips, frame_width, frame_height, source, created_at
			 FROM samples ORDER BY created_at DESC, id LIMIT ?`,
			limit,
		)
	} else {
		rows, err = r.db.Query(
			`SELECT id, letter, finger_count, tips, frame_width, frame_height, source, created_at
			 FROM samples WHERE letter = ? ORDER BY created_at DESC, id LIMIT ?`,
			letter, limit,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []*Sample
	for rows.Next() {
		sample, err := scanSample(rows)
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return samples, nil
}

// Delete removes a sample by its ID.
func (r *SampleRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM samples WHERE id = ?`, id)
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

// Stats aggregates the training set by letter and by finger count.
func (r *SampleRepository) Stats() (*SampleStats, error) {
	stats := &SampleStats{
		ByLetter:      make(map[string]int),
		ByFingerCount: make(map[int]int),
	}

	rows, err := r.db.Query(`SELECT letter, COUNT(*) FROM samples GROUP BY letter`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var letter string
		var count int
		if err := rows.Scan(&letter, &count); err != nil {
			return nil, err
		}
		stats.ByLetter[letter] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	fingerRows, err := r.db.Query(`SELECT finger_count, COUNT(*) FROM samples GROUP BY finger_count`)
	if err != nil {
		return nil, err
	}
	defer fingerRows.Close()

	for fingerRows.Next() {
		var fingers, count int
		if err := fingerRows.Scan(&fingers, &count); err != nil {
			return nil, err
		}
		stats.ByFingerCount[fingers] = count
	}
	if err := fingerRows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

// scanner abstracts sql.Row and sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanSample(row scanner) (*Sample, error) {
	var sample Sample
	var tips string
	err := row.Scan(
		&sample.ID, &sample.Letter, &sample.FingerCount, &tips,
		&sample.FrameWidth, &sample.FrameHeight, &sample.Source, &sample.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(tips), &sample.Tips); err != nil {
		return nil, err
	}

	return &sample, nil
}
