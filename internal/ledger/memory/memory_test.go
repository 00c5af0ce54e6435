package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger/ledgertest"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger/memory"
)

func TestStore_LoadEmpty(t *testing.T) {
	doc, err := memory.New().Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Tenders)
	assert.Empty(t, doc.Transactions)
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	want := ledgertest.SampleDocument()

	s := memory.New()
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	ledgertest.AssertSameDocument(t, want, got)
}

func TestService_StateSurvivesReload(t *testing.T) {
	ctx := context.Background()

	gw, err := memory.NewFromDocument(ledgertest.SampleDocument())
	require.NoError(t, err)

	svc := ledger.NewService(gw)
	require.NoError(t, svc.Load(ctx))

	_, res, err := svc.SaveTender(ctx, ledger.Tender{Name: "Bridge", Pincode: "600001"}, "")
	require.NoError(t, err)
	require.True(t, res.Saved())

	res, err = svc.DeleteTender(ctx, "TD-002")
	require.NoError(t, err)
	require.True(t, res.Saved())

	reloaded := ledger.NewService(gw)
	require.NoError(t, reloaded.Load(ctx))

	ledgertest.AssertSameDocument(t, svc.Snapshot(), reloaded.Snapshot())
}
