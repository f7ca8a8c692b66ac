// Package audit persists an execution journal in SQLite: one record per
// attempted operation, successful or not, so every mutation of the
// document can be traced back to the operation and plan that caused it.
// The journal is append-only and survives across store lifecycles.
package audit

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// JournalFile is the name of the journal database inside the data
// directory.
const JournalFile = "audit.db"

// Entry is one journal record. PlanID is empty for operations executed
// outside a plan. Revision is the document revision observed after the
// attempt.
type Entry struct {
	ExecutionID string
	PlanID      string
	OpType      string
	Category    string
	Status      string
	Detail      string
	Revision    int64
	CreatedAt   time.Time
}

// Journal is an open execution journal.
type Journal struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal database in the given data
// directory.
func Open(dataDir string) (*Journal, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, JournalFile))
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close releases the journal database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends one entry to the journal.
func (j *Journal) Record(e Entry) error {
	_, err := j.db.Exec(`
		INSERT INTO executions (execution_id, plan_id, op_type, category, status, detail, revision, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ExecutionID, e.PlanID, e.OpType, e.Category, e.Status, e.Detail,
		e.Revision, e.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("inserting execution: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	rows, err := j.db.Query(`
		SELECT execution_id, plan_id, op_type, category, status, detail, revision, created_at
		FROM executions ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying executions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.ExecutionID, &e.PlanID, &e.OpType, &e.Category,
			&e.Status, &e.Detail, &e.Revision, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning execution: %w", err)
		}
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing execution created_at: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountForPlan returns the number of journal entries recorded for a plan.
func (j *Journal) CountForPlan(planID string) (int, error) {
	var n int
	err := j.db.QueryRow(
		"SELECT COUNT(*) FROM executions WHERE plan_id = ?", planID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting plan executions: %w", err)
	}
	return n, nil
}
