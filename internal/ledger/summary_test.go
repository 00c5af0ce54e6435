package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger/ledgertest"
)

func TestComputeSummary_IgnoresOtherTypes(t *testing.T) {
	tenders := []ledger.Tender{{ID: "X", Name: "Tender X"}}
	txs := []ledger.Transaction{
		{ID: "X-TX001", TenderID: "X", Type: "Credit", Amount: ledger.AmountFromInt(100)},
		{ID: "X-TX002", TenderID: "X", Type: "Debit", Amount: ledger.AmountFromInt(40)},
		{ID: "X-TX003", TenderID: "X", Type: "Other", Amount: ledger.AmountFromInt(1000)},
	}

	rows := ledger.ComputeSummary(tenders, txs, "X")
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "X", row.TenderID)
	assert.Equal(t, "100", row.TotalCredit.String())
	assert.Equal(t, "40", row.TotalDebit.String())
	assert.Equal(t, "60", row.NetAmount.String())
	assert.Equal(t, ledger.StatusProfit, row.Status)
}

func TestComputeSummary(t *testing.T) {
	doc := ledgertest.SampleDocument()
	doc.Transactions = append(doc.Transactions,
		ledger.Transaction{ID: "TD-002-TX002", TenderID: "TD-002", Type: " DEBIT ", Amount: ledger.AmountFromInt(30)},
		ledger.Transaction{ID: "TD-002-TX003", TenderID: "TD-002", Type: "credit"},
	)

	tests := []struct {
		name     string
		tenderID string
		want     []ledger.SummaryRow
	}{
		{
			name:     "All",
			tenderID: ledger.AllTenders,
			want: []ledger.SummaryRow{
				{TenderID: "TD-001", Status: ledger.StatusProfit},
				{TenderID: "TD-002", Status: ledger.StatusLoss},
			},
		},
		{
			name:     "Single",
			tenderID: "TD-002",
			want:     []ledger.SummaryRow{{TenderID: "TD-002", Status: ledger.StatusLoss}},
		},
		{
			name:     "Unknown",
			tenderID: "TD-404",
			want:     []ledger.SummaryRow{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := ledger.ComputeSummary(doc.Tenders, doc.Transactions, tt.tenderID)
			require.Len(t, rows, len(tt.want))

			for i, w := range tt.want {
				assert.Equal(t, w.TenderID, rows[i].TenderID)
				assert.Equal(t, w.Status, rows[i].Status)
			}
		})
	}

	rows := ledger.ComputeSummary(doc.Tenders, doc.Transactions, ledger.AllTenders)
	assert.Equal(t, "59.5", rows[0].NetAmount.String())
	assert.Equal(t, "0", rows[1].TotalCredit.String())
	assert.Equal(t, "-30", rows[1].NetAmount.String())
}

func TestComputeSummary_ZeroNetIsProfit(t *testing.T) {
	rows := ledger.ComputeSummary([]ledger.Tender{{ID: "A"}}, nil, ledger.AllTenders)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].NetAmount.IsZero())
	assert.Equal(t, ledger.StatusProfit, rows[0].Status)
}

func TestSummaryTotals(t *testing.T) {
	doc := ledgertest.SampleDocument()
	doc.Transactions = append(doc.Transactions,
		ledger.Transaction{ID: "TD-002-TX002", TenderID: "TD-002", Type: "Debit", Amount: ledger.AmountFromInt(100)},
	)

	total := ledger.SummaryTotals(ledger.ComputeSummary(doc.Tenders, doc.Transactions, ledger.AllTenders))
	assert.Equal(t, "100", total.TotalCredit.String())
	assert.Equal(t, "140.5", total.TotalDebit.String())
	assert.Equal(t, "-40.5", total.NetAmount.String())
	assert.Equal(t, ledger.StatusLoss, total.Status)
}
