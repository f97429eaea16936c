package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const SchemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY,
    run_id TEXT,
    project TEXT,
    started_at TEXT,
    duration_ms INTEGER,
    word_count INTEGER,
    echo_count INTEGER,
    policy TEXT,
    preset TEXT
);

CREATE TABLE IF NOT EXISTS echoes (
    id INTEGER PRIMARY KEY,
    run_id INTEGER,
    phrase TEXT,
    words INTEGER,
    count INTEGER,
    first_start INTEGER,
    first_end INTEGER
);
`

func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(SchemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}
