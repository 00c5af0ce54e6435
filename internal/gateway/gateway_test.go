package gateway

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tenderbook/internal/config"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger/docstore"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger/memory"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger/store"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Store.Backend = config.BackendMemory

		gw, closeFn, err := Open(ctx, cfg)
		require.NoError(t, err)
		assert.IsType(t, &memory.Store{}, gw)
		assert.NoError(t, closeFn())
	})

	t.Run("Docstore", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Store.Backend = config.BackendDocstore
		cfg.Docstore.URL = "http://localhost:1/exec"

		gw, _, err := Open(ctx, cfg)
		require.NoError(t, err)
		assert.IsType(t, &docstore.Client{}, gw)
	})

	t.Run("SQLite", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Store.Backend = config.BackendSQLite
		cfg.SQLite.Path = filepath.Join(t.TempDir(), "nested", "ledger.db")

		gw, closeFn, err := Open(ctx, cfg)
		require.NoError(t, err)
		assert.IsType(t, &store.Store{}, gw)

		doc, err := gw.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, doc.Tenders)
		assert.NoError(t, closeFn())
	})

	t.Run("Unknown", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Store.Backend = "tape"

		_, _, err := Open(ctx, cfg)
		assert.EqualError(t, err, `unknown store backend "tape"`)
	})
}
