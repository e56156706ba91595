package resultstore

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"

	"github.com/lunapnr/pnrcore/pipeline"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS stage_events (
	run_id      TEXT NOT NULL,
	stage       TEXT NOT NULL,
	state       TEXT NOT NULL,
	progress    INTEGER NOT NULL,
	error       TEXT NOT NULL DEFAULT '',
	recorded_at TEXT NOT NULL
);
`

// Record is one stored stage event, as returned by History.
type Record struct {
	RunID    pipeline.RunID
	Stage    string
	State    string
	Progress int
	Err      string
	Recorded time.Time
}

// Store persists pipeline stage events to a sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) a sqlite database at path and
// ensures the stage_events table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("resultstore: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("resultstore: open: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("resultstore: open: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// RecordEvent appends one pipeline stage event to the run history.
func (s *Store) RecordEvent(ev pipeline.Event) error {
	errText := ""
	if ev.Err != nil {
		errText = ev.Err.Error()
	}
	_, err := s.db.Exec(
		`INSERT INTO stage_events (run_id, stage, state, progress, error, recorded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		ev.RunID.String(), ev.Stage, ev.State.String(), ev.Progress, errText,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("resultstore: record event: %w", err)
	}
	return nil
}

// History returns every event recorded for runID, oldest first.
func (s *Store) History(runID pipeline.RunID) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT run_id, stage, state, progress, error, recorded_at
		 FROM stage_events WHERE run_id = ? ORDER BY rowid ASC`,
		runID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("resultstore: history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			runIDText, stage, state, errText, recordedText string
			progress                                       int
		)
		if err := rows.Scan(&runIDText, &stage, &state, &progress, &errText, &recordedText); err != nil {
			return nil, fmt.Errorf("resultstore: history: scan: %w", err)
		}
		parsedID, err := xid.FromString(runIDText)
		if err != nil {
			return nil, fmt.Errorf("resultstore: history: run id %q: %w", runIDText, err)
		}
		recordedAt, err := time.Parse(time.RFC3339Nano, recordedText)
		if err != nil {
			return nil, fmt.Errorf("resultstore: history: recorded_at %q: %w", recordedText, err)
		}
		records = append(records, Record{
			RunID:    parsedID,
			Stage:    stage,
			State:    state,
			Progress: progress,
			Err:      errText,
			Recorded: recordedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("resultstore: history: %w", err)
	}
	return records, nil
}
