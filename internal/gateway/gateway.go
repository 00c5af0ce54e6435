// Package gateway builds the ledger persistence backend selected by
// STORE_BACKEND.
package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/MrJamesThe3rd/tenderbook/internal/config"
	"github.com/MrJamesThe3rd/tenderbook/internal/database"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger/docstore"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger/memory"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger/objectstore"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger/store"
)

// Open returns the configured gateway and a close function for any resources
// it holds.
func Open(ctx context.Context, cfg *config.Config) (ledger.Gateway, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Backend {
	case config.BackendDocstore:
		slog.Info("using document store", "url", cfg.Docstore.URL)
		return docstore.New(cfg.Docstore.URL, cfg.Docstore.Timeout), noop, nil

	case config.BackendMemory:
		slog.Warn("using in-memory store, data is lost on exit")
		return memory.New(), noop, nil

	case config.BackendS3:
		s, err := objectstore.New(ctx, objectstore.Config{
			Bucket:    cfg.S3.Bucket,
			Key:       cfg.S3.Key,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			PathStyle: cfg.S3.PathStyle,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("creating s3 store: %w", err)
		}

		slog.Info("using s3 store", "bucket", cfg.S3.Bucket, "key", cfg.S3.Key)

		return s, noop, nil

	case config.BackendPostgres:
		db, err := database.Postgres(cfg.ConnectionString())
		if err != nil {
			return nil, nil, err
		}

		return sqlStore(ctx, db, store.Postgres)

	case config.BackendSQLite:
		db, err := database.SQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}

		return sqlStore(ctx, db, store.SQLite)
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

func sqlStore(ctx context.Context, db *sqlx.DB, dialect store.Dialect) (ledger.Gateway, func() error, error) {
	s := store.New(db, dialect)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}

	slog.Info("using sql store", "dialect", dialect.Name)

	return s, db.Close, nil
}
