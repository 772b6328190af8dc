package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/setterboard/internal/domain/model"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

const schema = `CREATE TABLE IF NOT EXISTS offers (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	api_key     TEXT NOT NULL DEFAULT '',
	base_id     TEXT NOT NULL DEFAULT '',
	table_name  TEXT NOT NULL DEFAULT '',
	mapping     TEXT NOT NULL DEFAULT '{}',
	created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at  DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteStore keeps offers in a sqlite database file.
type SQLiteStore struct {
	db          *sql.DB
	path        string
	busyTimeout time.Duration
}

// NewSQLiteStore opens (creating if needed) the database at path and applies
// the schema. Use MemoryDSN for a throwaway database.
func NewSQLiteStore(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	s := &SQLiteStore{path: path, busyTimeout: defaultBusyTimeout}
	for _, opt := range opts {
		opt(s)
	}

	if path != MemoryDSN {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("%w: creating db directory: %w", ErrStore, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %w", ErrStore, err)
	}
	if path == MemoryDSN {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: pinging database: %w", ErrStore, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		fmt.Sprintf("PRAGMA busy_timeout=%d", s.busyTimeout.Milliseconds()),
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: setting pragma %q: %w", ErrStore, p, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: migrating: %w", ErrStore, err)
	}

	s.db = db
	return s, nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, id string) (model.Offer, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, api_key, base_id, table_name, mapping FROM offers WHERE id = ?`, id)
	o, err := scanOffer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Offer{}, ErrNotFound
	}
	if err != nil {
		return model.Offer{}, fmt.Errorf("%w: get %s: %w", ErrStore, id, err)
	}
	return o, nil
}

// List implements Store.
func (s *SQLiteStore) List(ctx context.Context) ([]model.Offer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, api_key, base_id, table_name, mapping FROM offers ORDER BY lower(name), id`)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %w", ErrStore, err)
	}
	defer rows.Close()

	out := []model.Offer{}
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: list: %w", ErrStore, err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list: %w", ErrStore, err)
	}
	return out, nil
}

// Put implements Store.
func (s *SQLiteStore) Put(ctx context.Context, offer model.Offer) error {
	mapping, err := json.Marshal(offer.Mapping)
	if err != nil {
		return fmt.Errorf("%w: encoding mapping: %w", ErrStore, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO offers (id, name, api_key, base_id, table_name, mapping)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			api_key = excluded.api_key,
			base_id = excluded.base_id,
			table_name = excluded.table_name,
			mapping = excluded.mapping,
			updated_at = CURRENT_TIMESTAMP`,
		offer.ID, offer.Name, offer.APIKey, offer.BaseID, offer.TableName, string(mapping))
	if err != nil {
		return fmt.Errorf("%w: put %s: %w", ErrStore, offer.ID, err)
	}
	return nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM offers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: delete %s: %w", ErrStore, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: delete %s: %w", ErrStore, id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count implements Store. Errors count as zero.
func (s *SQLiteStore) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM offers`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOffer(sc scanner) (model.Offer, error) {
	var o model.Offer
	var mapping string
	if err := sc.Scan(&o.ID, &o.Name, &o.APIKey, &o.BaseID, &o.TableName, &mapping); err != nil {
		return model.Offer{}, err
	}
	if mapping != "" {
		if err := json.Unmarshal([]byte(mapping), &o.Mapping); err != nil {
			return model.Offer{}, fmt.Errorf("decoding mapping: %w", err)
		}
	}
	return o, nil
}
