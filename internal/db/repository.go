package db

import (
	"database/sql"
	"fmt"
	"time"

	"echofinder/internal/echo"
)

// RunRecord is one persisted analysis run.
type RunRecord struct {
	RunID      string
	Project    string
	StartedAt  string
	DurationMs int64
	WordCount  int
	EchoCount  int
	Policy     string
	Preset     string
}

// SaveRun replaces the project's previous run history with this run and its
// echoes, in one transaction.
func SaveRun(dbPath string, rec RunRecord, results []echo.Result) error {
	conn, err := Open(dbPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM echoes WHERE run_id IN (SELECT id FROM runs WHERE project = ?)`,
		rec.Project,
	); err != nil {
		return fmt.Errorf("clear echoes: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM runs WHERE project = ?`, rec.Project); err != nil {
		return fmt.Errorf("clear runs: %w", err)
	}

	if rec.StartedAt == "" {
		rec.StartedAt = time.Now().Format(time.RFC3339)
	}
	res, err := tx.Exec(
		`INSERT INTO runs(run_id, project, started_at, duration_ms, word_count, echo_count, policy, preset)
		 VALUES(?,?,?,?,?,?,?,?)`,
		rec.RunID,
		rec.Project,
		rec.StartedAt,
		rec.DurationMs,
		rec.WordCount,
		rec.EchoCount,
		rec.Policy,
		rec.Preset,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runRow, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run last insert id: %w", err)
	}

	for _, r := range results {
		firstStart, firstEnd := 0, 0
		if len(r.Occurrences) > 0 {
			firstStart = r.Occurrences[0].Start
			firstEnd = r.Occurrences[0].End
		}
		if _, err := tx.Exec(
			`INSERT INTO echoes(run_id, phrase, words, count, first_start, first_end) VALUES(?,?,?,?,?,?)`,
			runRow,
			r.Phrase,
			r.Words,
			r.Count,
			firstStart,
			firstEnd,
		); err != nil {
			return fmt.Errorf("insert echo: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func RecentRuns(dbPath string, limit int) ([]RunRecord, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.Query(
		`SELECT run_id, project, started_at, duration_ms, word_count, echo_count, policy, preset
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(
			&rec.RunID, &rec.Project, &rec.StartedAt, &rec.DurationMs,
			&rec.WordCount, &rec.EchoCount, &rec.Policy, &rec.Preset,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func CountRows(dbPath, table string) (int, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer conn.Close()
	return countRowsConn(conn, table)
}

func countRowsConn(conn *sql.DB, table string) (int, error) {
	row := conn.QueryRow(`SELECT COUNT(*) FROM ` + table)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan count: %w", err)
	}
	return count, nil
}
