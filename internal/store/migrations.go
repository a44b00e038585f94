package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Samples table - stores captured training examples per letter
		`CREATE TABLE IF NOT EXISTS samples (
			id TEXT PRIMARY KEY,
			letter TEXT NOT NULL,
			finger_count INTEGER NOT NULL CHECK(finger_count BETWEEN 0 AND 5),
			tips TEXT NOT NULL DEFAULT '[]',
			frame_width INTEGER NOT NULL DEFAULT 0,
			frame_height INTEGER NOT NULL DEFAULT 0,
			source TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Sessions table - one row per recognition run
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at DATETIME NOT NULL,
			ended_at DATETIME,
			frame_count INTEGER NOT NULL DEFAULT 0,
			detection_count INTEGER NOT NULL DEFAULT 0
		)`,

		// Events table - stable letter transitions observed during a session
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			letter TEXT NOT NULL,
			confidence REAL NOT NULL CHECK(confidence >= 0.0 AND confidence <= 1.0),
			at DATETIME NOT NULL
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_samples_letter ON samples(letter)`,
		`CREATE INDEX IF NOT EXISTS idx_events_session_id ON events(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_at ON events(at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
