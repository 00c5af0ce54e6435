package view

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name string
		in   ledger.Amount
		want string
	}{
		{name: "Unset", in: ledger.Amount{}, want: "-"},
		{name: "Whole", in: ledger.AmountFromInt(1500), want: "1500.00"},
		{name: "Fraction", in: ledger.NewAmount(decimal.RequireFromString("40.5")), want: "40.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.in))
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "-", FormatDate(ledger.Instant{}))
	assert.Equal(t, "2025-08-15 13:30",
		FormatDate(ledger.NewInstant(time.Date(2025, 8, 15, 8, 0, 0, 0, time.UTC))))
}

func TestNextOption(t *testing.T) {
	opts := []string{ledger.AllTenders, "TD-001", "TD-002"}

	assert.Equal(t, "TD-001", nextOption(opts, ledger.AllTenders))
	assert.Equal(t, ledger.AllTenders, nextOption(opts, "TD-002"))
	assert.Equal(t, ledger.AllTenders, nextOption(opts, "TD-404"))
	assert.Equal(t, "TD-001", nextOption(nil, "TD-001"))
}

func TestTenderOptions(t *testing.T) {
	got := tenderOptions([]ledger.Tender{{ID: "TD-001"}, {ID: "TD-002"}})

	assert.Equal(t, []string{ledger.AllTenders, "TD-001", "TD-002"}, got)
}
