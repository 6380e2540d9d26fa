package tradelog

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

var _ Log = (*SQLite)(nil)

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// Upsert writes a trade record under its symbol_day key, replacing any
// previous record for the same key.
func (l *SQLite) Upsert(r Record) error {
	_, err := l.db.Exec(`
		INSERT OR REPLACE INTO trades
		(key, symbol, day, action, quantity, price)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.Key(), r.Symbol, r.Day, r.Action, r.Quantity, r.Price,
	)
	return err
}

// Delete removes the record for symbol and day. Deleting a missing key is
// not an error.
func (l *SQLite) Delete(symbol, day string) error {
	_, err := l.db.Exec(`DELETE FROM trades WHERE key = ?`,
		Record{Symbol: symbol, Day: day}.Key())
	return err
}

// List returns every trade record, oldest day first. There is no
// server-side filtering; callers narrow the full listing themselves.
func (l *SQLite) List() ([]Record, error) {
	rows, err := l.db.Query(`
		SELECT symbol, day, action, quantity, price
		FROM trades
		ORDER BY day ASC, symbol ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Symbol, &r.Day, &r.Action, &r.Quantity, &r.Price); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// RecordRun appends one ingestion run to the audit table.
func (l *SQLite) RecordRun(r RunRecord) error {
	_, err := l.db.Exec(`
		INSERT INTO ingest_runs
		(run_id, symbol, source, points, skipped, started)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Symbol, r.Source, r.Points, r.Skipped, r.Started,
	)
	return err
}

// RunsBetween returns ingestion runs started within [start, end), oldest
// first.
func (l *SQLite) RunsBetween(start, end time.Time) ([]RunRecord, error) {
	rows, err := l.db.Query(`
		SELECT run_id, symbol, source, points, skipped, started
		FROM ingest_runs
		WHERE started >= ? AND started < ?
		ORDER BY started ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.RunID, &r.Symbol, &r.Source, &r.Points, &r.Skipped, &r.Started); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *SQLite) Close() error {
	return l.db.Close()
}
