package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusProfit Status = "Profit"
	StatusLoss   Status = "Loss"
)

const (
	typeCredit = "credit"
	typeDebit  = "debit"
)

// SummaryRow aggregates the transactions of one tender.
type SummaryRow struct {
	TenderID    string          `json:"tenderId"`
	TenderName  string          `json:"tenderName"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	NetAmount   decimal.Decimal `json:"netAmount"`
	Status      Status          `json:"status"`
}

// ComputeSummary returns one row per selected tender in collection order:
// every tender for AllTenders, otherwise only the matching one.
//
// Transactions whose type is neither credit nor debit (case-insensitive) count
// toward neither total. Unset amounts count as zero.
func ComputeSummary(tenders []Tender, transactions []Transaction, tenderID string) []SummaryRow {
	rows := make([]SummaryRow, 0, len(tenders))

	for _, t := range tenders {
		if tenderID != AllTenders && t.ID != tenderID {
			continue
		}

		credit, debit := decimal.Zero, decimal.Zero

		for _, tx := range transactions {
			if tx.TenderID != t.ID {
				continue
			}

			switch strings.ToLower(strings.TrimSpace(tx.Type)) {
			case typeCredit:
				credit = credit.Add(tx.Amount.Value())
			case typeDebit:
				debit = debit.Add(tx.Amount.Value())
			}
		}

		rows = append(rows, newSummaryRow(t.ID, t.Name, credit, debit))
	}

	return rows
}

// SummaryTotals folds rows into a single grand-total row with an empty
// tender id.
func SummaryTotals(rows []SummaryRow) SummaryRow {
	credit, debit := decimal.Zero, decimal.Zero

	for _, r := range rows {
		credit = credit.Add(r.TotalCredit)
		debit = debit.Add(r.TotalDebit)
	}

	return newSummaryRow("", "Total", credit, debit)
}

func newSummaryRow(id, name string, credit, debit decimal.Decimal) SummaryRow {
	net := credit.Sub(debit)

	status := StatusProfit
	if net.IsNegative() {
		status = StatusLoss
	}

	return SummaryRow{
		TenderID:    id,
		TenderName:  name,
		TotalCredit: credit,
		TotalDebit:  debit,
		NetAmount:   net,
		Status:      status,
	}
}
