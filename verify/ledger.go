// ledger.go
//
// SQLite persistence for verification runs.  One table, append-only: the
// demo command records every run so regressions across machines or
// toolchains can be compared after the fact.

package verify

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const ledgerSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at  TEXT    NOT NULL,
	variant     TEXT    NOT NULL,
	iterations  INTEGER NOT NULL,
	frame_len   INTEGER NOT NULL,
	completed   INTEGER NOT NULL,
	ok          INTEGER NOT NULL,
	failure     TEXT    NOT NULL DEFAULT '',
	push_digest TEXT    NOT NULL,
	pop_digest  TEXT    NOT NULL,
	elapsed_ns  INTEGER NOT NULL
)`

// Ledger is an append-only run history backed by SQLite.
type Ledger struct {
	db *sql.DB
}

// OpenLedger opens (creating if needed) the run ledger at path.  Use
// ":memory:" for an ephemeral ledger.
func OpenLedger(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(ledgerSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &Ledger{db: db}, nil
}

// Record appends one report to the ledger.
func (l *Ledger) Record(r Report) error {
	_, err := l.db.Exec(`
		INSERT INTO runs (started_at, variant, iterations, frame_len,
			completed, ok, failure, push_digest, pop_digest, elapsed_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.StartedAt.UTC().Format(time.RFC3339Nano),
		r.Variant, r.Iterations, r.FrameLen,
		r.Completed, boolToInt(r.OK), r.Failure,
		r.PushDigest, r.PopDigest, r.ElapsedNs,
	)
	return err
}

// Recent returns up to n reports, newest first.  Non-positive n yields
// nothing; SQLite would read a negative LIMIT as "unlimited".
func (l *Ledger) Recent(n int) ([]Report, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := l.db.Query(`
		SELECT started_at, variant, iterations, frame_len,
			completed, ok, failure, push_digest, pop_digest, elapsed_ns
		FROM runs ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Report
	for rows.Next() {
		var (
			r       Report
			started string
			ok      int
		)
		if err := rows.Scan(&started, &r.Variant, &r.Iterations, &r.FrameLen,
			&r.Completed, &ok, &r.Failure, &r.PushDigest, &r.PopDigest,
			&r.ElapsedNs); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		r.OK = ok != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (l *Ledger) Close() error { return l.db.Close() }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
