package store

import "database/sql"

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS session_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			dataset_path TEXT NOT NULL,
			filters TEXT NOT NULL DEFAULT '[]'
		);

		CREATE TABLE IF NOT EXISTS filter_sets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			dataset TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			UNIQUE(dataset, name)
		);

		CREATE TABLE IF NOT EXISTS set_filters (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			set_id INTEGER NOT NULL REFERENCES filter_sets(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			column_name TEXT NOT NULL,
			op TEXT NOT NULL,
			value TEXT NOT NULL DEFAULT '{}',
			enabled INTEGER NOT NULL DEFAULT 1,
			UNIQUE(set_id, position)
		);

		CREATE INDEX IF NOT EXISTS idx_filter_sets_dataset ON filter_sets(dataset);
		CREATE INDEX IF NOT EXISTS idx_set_filters_set ON set_filters(set_id, position);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
