package metastore

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS layouts (
	table_name TEXT NOT NULL,
	layout_id  INTEGER NOT NULL,
	layout     BLOB NOT NULL,
	PRIMARY KEY (table_name, layout_id)
);
CREATE TABLE IF NOT EXISTS schemas (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	schema TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS system (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

type sqliteBackend struct {
	db *sqlx.DB
	mu sync.Mutex
}

func openSQLite(path string) (*sqliteBackend, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &sqliteBackend{db: db}, nil
}

func (s *sqliteBackend) appendLayout(ctx context.Context, table string, id uint64,
	data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var latest sql.NullInt64
	if err := tx.GetContext(ctx, &latest,
		`SELECT MAX(layout_id) FROM layouts WHERE table_name = ?`, table); err != nil {
		return err
	}
	if latest.Valid && uint64(latest.Int64) >= id {
		return staleLayout(table, id, uint64(latest.Int64))
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO layouts (table_name, layout_id, layout) VALUES (?, ?, ?)`,
		table, int64(id), data); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *sqliteBackend) layouts(ctx context.Context, table string, limit int) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit == 0 {
		limit = -1
	}
	var out [][]byte
	err := s.db.SelectContext(ctx, &out,
		`SELECT layout FROM layouts WHERE table_name = ? ORDER BY layout_id DESC LIMIT ?`,
		table, limit)
	return out, err
}

func (s *sqliteBackend) tables(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	err := s.db.SelectContext(ctx, &out,
		`SELECT DISTINCT table_name FROM layouts ORDER BY table_name`)
	return out, err
}

func (s *sqliteBackend) deleteTable(ctx context.Context, table string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM layouts WHERE table_name = ?`, table)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *sqliteBackend) registerSchema(ctx context.Context, schema string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO schemas (schema) VALUES (?)`, schema); err != nil {
		return 0, err
	}
	var id int64
	if err := s.db.GetContext(ctx, &id, `SELECT id FROM schemas WHERE schema = ?`,
		schema); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s *sqliteBackend) schema(ctx context.Context, id uint64) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var schema string
	err := s.db.GetContext(ctx, &schema, `SELECT schema FROM schemas WHERE id = ?`, int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return schema, true, nil
}

func (s *sqliteBackend) property(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM system WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *sqliteBackend) setProperty(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO system (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func (s *sqliteBackend) close() error {
	return s.db.Close()
}
