// Package store keeps ledger snapshots in a SQL table, one row per save.
package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

//go:embed migrations
var migrations embed.FS

// Dialect selects the migration set for a database engine.
type Dialect struct {
	Name  string
	goose goose.Dialect
	dir   string
}

var (
	Postgres = Dialect{Name: "postgres", goose: goose.DialectPostgres, dir: "migrations/postgres"}
	SQLite   = Dialect{Name: "sqlite", goose: goose.DialectSQLite3, dir: "migrations/sqlite"}
)

// Placeholders are rebound to the driver's bindvar style.
const (
	insertSnapshot = `INSERT INTO ledger_snapshots (id, payload, created_at) VALUES (?, ?, ?)`
	newestSnapshot = `SELECT payload FROM ledger_snapshots ORDER BY seq DESC LIMIT 1`
	countSnapshots = `SELECT COUNT(*) FROM ledger_snapshots`
)

type Store struct {
	db      *sqlx.DB
	dialect Dialect
	now     func() time.Time
}

func New(db *sqlx.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect, now: time.Now}
}

// Migrate applies every pending schema migration for the store's dialect.
func (s *Store) Migrate(ctx context.Context) error {
	fsys, err := fs.Sub(migrations, s.dialect.dir)
	if err != nil {
		return fmt.Errorf("opening %s migrations: %w", s.dialect.Name, err)
	}

	provider, err := goose.NewProvider(s.dialect.goose, s.db.DB, fsys)
	if err != nil {
		return fmt.Errorf("creating migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrating %s schema: %w", s.dialect.Name, err)
	}

	if len(results) > 0 {
		slog.Info("applied migrations", "dialect", s.dialect.Name, "count", len(results))
	}

	return nil
}

// Load returns the newest snapshot, or an empty document when none was saved.
func (s *Store) Load(ctx context.Context) (ledger.Document, error) {
	var payload []byte

	err := s.db.GetContext(ctx, &payload, newestSnapshot)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Document{}, nil
	}

	if err != nil {
		return ledger.Document{}, fmt.Errorf("selecting snapshot: %w", err)
	}

	var doc ledger.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return ledger.Document{}, fmt.Errorf("decoding snapshot: %w", err)
	}

	return doc, nil
}

// Save appends doc as a new snapshot row.
func (s *Store) Save(ctx context.Context, doc ledger.Document) error {
	payload, err := json.Marshal(doc.Clone())
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx, s.db.Rebind(insertSnapshot), uuid.New().String(), string(payload), s.now().UTC())
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}

	return nil
}

// Count returns how many snapshots have been stored.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, countSnapshots); err != nil {
		return 0, fmt.Errorf("counting snapshots: %w", err)
	}

	return n, nil
}
