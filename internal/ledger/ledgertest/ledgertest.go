// Package ledgertest holds fixtures shared by the ledger and gateway tests.
package ledgertest

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

// SampleDocument returns two tenders with a mix of credit, debit and untyped
// transactions, including unset optional fields.
func SampleDocument() ledger.Document {
	date := ledger.NewInstant(time.Date(2025, 8, 15, 8, 0, 0, 0, time.UTC))

	return ledger.Document{
		Tenders: []ledger.Tender{
			{
				ID:      "TD-001",
				Name:    "Sample Road Work",
				Desc:    "Resurfacing of ring road",
				City:    "Pune",
				Pincode: "411001",
				Value:   ledger.AmountFromInt(500000),
				Date:    date,
			},
			{
				ID:   "TD-002",
				Name: "Water Tank",
				City: "Nashik",
			},
		},
		Transactions: []ledger.Transaction{
			{ID: "TD-001-TX001", TenderID: "TD-001", Desc: "Advance", Type: "Credit", Vendor: "PWD", Amount: ledger.AmountFromInt(100), Date: date},
			{ID: "TD-001-TX002", TenderID: "TD-001", Desc: "Cement", Type: "Debit", Vendor: "ACME", Amount: ledger.NewAmount(decimal.RequireFromString("40.5"))},
			{ID: "TD-002-TX001", TenderID: "TD-002", Desc: "Survey", Type: "Other", Amount: ledger.AmountFromInt(1000)},
		},
	}
}

// AssertSameDocument compares documents field by field using value equality
// for amounts and instants.
func AssertSameDocument(t *testing.T, want, got ledger.Document) {
	t.Helper()

	require.Len(t, got.Tenders, len(want.Tenders))
	require.Len(t, got.Transactions, len(want.Transactions))

	for i, w := range want.Tenders {
		g := got.Tenders[i]
		assert.Equal(t, w.ID, g.ID)
		assert.Equal(t, w.Name, g.Name)
		assert.Equal(t, w.Desc, g.Desc)
		assert.Equal(t, w.City, g.City)
		assert.Equal(t, w.Pincode, g.Pincode)
		assert.True(t, w.Value.Equal(g.Value), "tender %s value: want %q, got %q", w.ID, w.Value, g.Value)
		assert.True(t, w.Date.Equal(g.Date), "tender %s date: want %q, got %q", w.ID, w.Date, g.Date)
	}

	for i, w := range want.Transactions {
		g := got.Transactions[i]
		assert.Equal(t, w.ID, g.ID)
		assert.Equal(t, w.TenderID, g.TenderID)
		assert.Equal(t, w.Desc, g.Desc)
		assert.Equal(t, w.Type, g.Type)
		assert.Equal(t, w.Vendor, g.Vendor)
		assert.True(t, w.Amount.Equal(g.Amount), "transaction %s amount: want %q, got %q", w.ID, w.Amount, g.Amount)
		assert.True(t, w.Date.Equal(g.Date), "transaction %s date: want %q, got %q", w.ID, w.Date, g.Date)
	}
}
