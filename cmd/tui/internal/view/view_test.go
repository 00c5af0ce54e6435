package view

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger/ledgertest"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger/memory"
)

func newLedger(t *testing.T) *ledger.Service {
	t.Helper()

	store, err := memory.NewFromDocument(ledgertest.SampleDocument())
	require.NoError(t, err)

	svc := ledger.NewService(store)
	require.NoError(t, svc.Load(context.Background()))

	return svc
}

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// step applies msg and then feeds the message produced by the returned
// command back into the model.
func step[M tea.Model](t *testing.T, m M, msg tea.Msg) M {
	t.Helper()

	next, cmd := m.Update(msg)
	if cmd != nil {
		next, _ = next.Update(cmd())
	}

	out, ok := next.(M)
	require.True(t, ok)

	return out
}

func TestTransactionsModel_FilterAndPaginate(t *testing.T) {
	m := NewTransactionsModel(newLedger(t), 2)
	m = step(t, m, m.Init()())

	assert.Equal(t, []string{ledger.AllTenders, "TD-001", "TD-002"}, m.tenders)
	assert.Equal(t, 3, m.page.Total)
	assert.Equal(t, 2, m.page.PageCount)
	assert.Len(t, m.page.Items, 2)

	m = step(t, m, key("right"))
	assert.Equal(t, 2, m.page.Page)
	require.Len(t, m.page.Items, 1)
	assert.Equal(t, "TD-002-TX001", m.page.Items[0].ID)

	// Already on the last page.
	m = step(t, m, key("right"))
	assert.Equal(t, 2, m.page.Page)

	m = step(t, m, key("t"))
	assert.Equal(t, "TD-001", m.cursor.TenderID)
	assert.Equal(t, 1, m.page.Page)
	assert.Equal(t, 2, m.page.Total)

	m = step(t, m, key("t"))
	m = step(t, m, key("t"))
	assert.Equal(t, ledger.AllTenders, m.cursor.TenderID)
	assert.Equal(t, 3, m.page.Total)
}

func TestTransactionsModel_Search(t *testing.T) {
	m := NewTransactionsModel(newLedger(t), 5)
	m = step(t, m, m.Init()())

	m.cursor.SetSearch("acme")
	m = step(t, m, m.loadCmd()())

	require.Len(t, m.page.Items, 1)
	assert.Equal(t, "TD-001-TX002", m.page.Items[0].ID)
}

func TestTransactionsModel_SaveAndDelete(t *testing.T) {
	svc := newLedger(t)
	m := NewTransactionsModel(svc, 5)
	m = step(t, m, m.Init()())

	*m.fields = txFields{id: "TD-002-TX002", tenderID: "TD-002", desc: "Pipes", txnType: "Debit", amount: "250", date: "2025-09-01 10:00"}
	m = step(t, m, m.saveCmd()())

	assert.Contains(t, m.status, "Created transaction TD-002-TX002")
	assert.Equal(t, 4, m.page.Total)

	tx, err := svc.Transaction("TD-002-TX002")
	require.NoError(t, err)
	assert.Equal(t, "2025-09-01 10:00", tx.Date.Display())

	m = step(t, m, m.deleteCmd("TD-002-TX002")())
	assert.Contains(t, m.status, "Deleted transaction TD-002-TX002")
	assert.Equal(t, 3, m.page.Total)
}

func TestTransactionsModel_SaveValidationError(t *testing.T) {
	m := NewTransactionsModel(newLedger(t), 5)
	m = step(t, m, m.Init()())

	*m.fields = txFields{id: "TD-001-TX001", tenderID: "TD-001"}
	next, _ := m.Update(m.saveCmd()())
	m = next.(TransactionsModel)

	assert.Contains(t, m.status, "TD-001-TX001")
	assert.Equal(t, 3, m.page.Total)
}

func TestTendersModel_SearchAndDelete(t *testing.T) {
	svc := newLedger(t)
	m := NewTendersModel(svc)
	m = step(t, m, m.Init()())
	require.Len(t, m.tenders, 2)

	m.search.SetValue("water")
	m = step(t, m, m.loadCmd()())
	require.Len(t, m.tenders, 1)
	assert.Equal(t, "TD-002", m.tenders[0].ID)

	m.search.SetValue("")
	m = step(t, m, m.deleteCmd("TD-002")())
	assert.Contains(t, m.status, "Deleted tender TD-002")
	assert.Len(t, m.tenders, 1)
	assert.Len(t, svc.Snapshot().Transactions, 2)
}

func TestTendersModel_Create(t *testing.T) {
	svc := newLedger(t)
	m := NewTendersModel(svc)
	m = step(t, m, m.Init()())

	*m.fields = tenderFields{id: svc.NextTenderID(), name: "Bridge", pincode: "411002", value: "900000", date: "2025-10-01"}
	m = step(t, m, m.saveCmd()())

	assert.Contains(t, m.status, "Created tender TD-003")
	require.Len(t, m.tenders, 3)
	assert.Equal(t, "2025-10-01 00:00", m.tenders[2].Date.Display())
}

func TestSummaryModel_Paginates(t *testing.T) {
	m := NewSummaryModel(newLedger(t), 1)
	m = step(t, m, m.Init()())

	assert.Equal(t, 2, m.page.PageCount)
	require.Len(t, m.page.Items, 1)
	assert.Equal(t, "TD-001", m.page.Items[0].TenderID)
	assert.Equal(t, "59.5", m.totals.NetAmount.String())

	m = step(t, m, key("right"))
	require.Len(t, m.page.Items, 1)
	assert.Equal(t, "TD-002", m.page.Items[0].TenderID)

	m = step(t, m, key("t"))
	assert.Equal(t, "TD-001", m.tenderID)
	assert.Equal(t, 1, m.page.PageCount)
	assert.Equal(t, 1, m.page.Page)
}

func TestEscGoesBack(t *testing.T) {
	m := NewSummaryModel(newLedger(t), 10)

	_, cmd := m.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, BackMsg{}, cmd())
}

func TestWindowSizeResizesTable(t *testing.T) {
	m := NewTendersModel(newLedger(t))

	m = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.Width)
	assert.Equal(t, 28, m.table.Height())

	m = step(t, m, tea.WindowSizeMsg{Width: 80, Height: 10})
	assert.Equal(t, 5, m.table.Height())
}
