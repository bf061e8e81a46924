package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Tuning profiles table - stores named sets of classifier thresholds
		`CREATE TABLE IF NOT EXISTS tuning_profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			closed_reference REAL NOT NULL,
			open_reference REAL NOT NULL,
			finger_extended_min REAL NOT NULL,
			pinch_distance_max REAL NOT NULL,
			palm_deadband REAL NOT NULL,
			peace_tension_max REAL NOT NULL,
			point_tension_min REAL NOT NULL,
			pinch_tension_min REAL NOT NULL,
			palm_tension_max REAL NOT NULL,
			stable_run_length INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - stores application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_tuning_profiles_name ON tuning_profiles(name)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
