// Package transcript persists executed conversation turns to SQLite so
// a failing sequence can be inspected after the fact. Recording is
// opt-in; the harness itself keeps no state between runs.
package transcript

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/voxkit/skilltest/harness"
)

//go:embed schema.sql
var schemaSQL string

// Recorder writes turns to a SQLite transcript database. It implements
// harness.TurnRecorder.
type Recorder struct {
	db *sql.DB
}

// Open creates or opens a transcript database at the given path
// (":memory:" for an in-memory transcript). Idempotent: the schema is
// applied only when missing.
func Open(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("transcript: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("transcript: connect: %w", err)
	}

	// One writer; transcripts are append-mostly.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("transcript: execute %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("transcript: apply schema: %w", err)
	}

	return &Recorder{db: db}, nil
}

// Close closes the underlying database.
func (r *Recorder) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Record appends one executed turn.
func (r *Recorder) Record(ctx context.Context, turn harness.Turn) error {
	var speech sql.NullString
	if turn.Speech != nil {
		speech = sql.NullString{String: *turn.Speech, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO turns (step_index, kind, locale, request_json, response_json, speech, ends_session, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		turn.Index, turn.Kind, turn.Locale,
		string(turn.Request), string(turn.Response),
		speech, turn.EndsSession,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("transcript: insert turn: %w", err)
	}
	return nil
}

// Turns returns all recorded turns in execution order.
func (r *Recorder) Turns(ctx context.Context) ([]harness.Turn, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT step_index, kind, locale, request_json, response_json, speech, ends_session
		FROM turns ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("transcript: query turns: %w", err)
	}
	defer rows.Close()

	var turns []harness.Turn
	for rows.Next() {
		var t harness.Turn
		var reqJSON, respJSON string
		var speech sql.NullString
		if err := rows.Scan(&t.Index, &t.Kind, &t.Locale, &reqJSON, &respJSON, &speech, &t.EndsSession); err != nil {
			return nil, fmt.Errorf("transcript: scan turn: %w", err)
		}
		t.Request = []byte(reqJSON)
		t.Response = []byte(respJSON)
		if speech.Valid {
			s := speech.String
			t.Speech = &s
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}
