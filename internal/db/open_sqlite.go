package db

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Get(ctx context.Context, name string) (string, error) {
	var v string
	row := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE name=?`, name)
	if err := row.Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return v, nil
}

func (s *sqliteStore) Set(ctx context.Context, name, value string) error {
	_, err := s.db.ExecContext(ctx, upsertSetting, name, value, nowText())
	return err
}

// SetMany writes all values in one transaction.
func (s *sqliteStore) SetMany(ctx context.Context, values map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	now := nowText()
	for k, v := range values {
		if _, err := tx.ExecContext(ctx, upsertSetting, k, v, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *sqliteStore) Delete(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE name=?`, name)
	return err
}

func (s *sqliteStore) AppendEvent(ctx context.Context, ev Event) error {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO usage_events(time, type, name, detail) VALUES(?,?,?,?)`,
		ev.Time.UTC().Format(tsLayout), string(ev.Type), ev.Name, ev.Detail)
	return err
}

// ListEvents returns events after since in chronological order. With a
// positive limit only the most recent limit events are returned.
func (s *sqliteStore) ListEvents(ctx context.Context, since time.Time, limit int) ([]Event, error) {
	q := `SELECT time, type, name, detail FROM usage_events`
	args := []any{}
	if !since.IsZero() {
		q += ` WHERE time > ?`
		args = append(args, since.UTC().Format(tsLayout))
	}
	q += ` ORDER BY time DESC, seq DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Event
	for rows.Next() {
		var ts, typ, name string
		var detail sql.NullString
		if err := rows.Scan(&ts, &typ, &name, &detail); err != nil {
			return nil, err
		}
		t, _ := time.Parse(tsLayout, ts)
		out = append(out, Event{Time: t, Type: EventType(typ), Name: name, Detail: detail.String})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (s *sqliteStore) Close() error { return s.db.Close() }

const upsertSetting = `INSERT INTO settings(name, value, updated_at) VALUES(?,?,?)
ON CONFLICT(name) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`

// tsLayout is fixed width so stored timestamps sort lexically.
const tsLayout = "2006-01-02T15:04:05.000000000Z07:00"

func nowText() string { return time.Now().UTC().Format(tsLayout) }

// openSQLite opens (creating if needed) the SQLite file and applies migrations.
func openSQLite(ctx context.Context, path string) (*sqliteStore, error) {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	dbh, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// set WAL mode
	if _, err := dbh.ExecContext(ctx, `PRAGMA journal_mode=WAL;`); err != nil {
		_ = dbh.Close()
		return nil, err
	}
	if err := migrate(ctx, dbh); err != nil {
		_ = dbh.Close()
		return nil, err
	}
	return &sqliteStore{db: dbh}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS settings (
  name TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS usage_events (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  time TEXT NOT NULL,
  type TEXT NOT NULL,
  name TEXT NOT NULL,
  detail TEXT
);
CREATE INDEX IF NOT EXISTS idx_usage_events_time ON usage_events(time);
`)
	return err
}
