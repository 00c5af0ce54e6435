package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger/ledgertest"
)

func TestBuildReport(t *testing.T) {
	doc := ledgertest.SampleDocument()
	doc.Tenders = append(doc.Tenders, ledger.Tender{ID: "TD-003", Name: "Idle"})

	t.Run("AllSkipsTendersWithoutRows", func(t *testing.T) {
		report := ledger.BuildReport(doc.Tenders, doc.Transactions, ledger.AllTenders)
		require.Len(t, report.Groups, 2)

		assert.Equal(t, "TD-001", report.Groups[0].Tender.ID)
		assert.Len(t, report.Groups[0].Transactions, 2)
		assert.Equal(t, "59.5", report.Groups[0].Summary.NetAmount.String())
		assert.Equal(t, "TD-002", report.Groups[1].Tender.ID)
	})

	t.Run("AllWithFilteredRows", func(t *testing.T) {
		filtered := ledger.SearchTransactions(doc.Transactions, "cement")
		report := ledger.BuildReport(doc.Tenders, filtered, ledger.AllTenders)
		require.Len(t, report.Groups, 1)
		assert.Equal(t, "TD-001-TX002", report.Groups[0].Transactions[0].ID)
	})

	t.Run("SelectedTenderWithoutRows", func(t *testing.T) {
		report := ledger.BuildReport(doc.Tenders, nil, "TD-003")
		require.Len(t, report.Groups, 1)
		assert.Equal(t, "Idle", report.Groups[0].Tender.Name)
		assert.Empty(t, report.Groups[0].Transactions)
	})

	t.Run("UnknownTender", func(t *testing.T) {
		report := ledger.BuildReport(doc.Tenders, doc.Transactions, "TD-404")
		assert.Empty(t, report.Groups)
	})
}

func TestService_Report(t *testing.T) {
	svc, _ := newLoadedService(t, ledgertest.SampleDocument())

	t.Run("AllWithSearch", func(t *testing.T) {
		report := svc.Report(ledger.AllTenders, "survey")
		require.Len(t, report.Groups, 1)
		assert.Equal(t, "TD-002", report.Groups[0].Tender.ID)
	})

	t.Run("SelectedTender", func(t *testing.T) {
		report := svc.Report("TD-001", "")
		require.Len(t, report.Groups, 1)
		assert.Len(t, report.Groups[0].Transactions, 2)
		assert.Equal(t, "100", report.Groups[0].Summary.TotalCredit.String())
	})

	t.Run("Summary", func(t *testing.T) {
		rows := svc.Summary(ledger.AllTenders)
		require.Len(t, rows, 2)
		assert.Equal(t, ledger.StatusProfit, rows[1].Status)
	})
}
