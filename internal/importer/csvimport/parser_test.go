package csvimport_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/tenderbook/internal/importer/csvimport"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

func istDate(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.FixedZone("IST", 19800))
}

func TestParser_Ledger(t *testing.T) {
	csv := `Date,Type,Vendor,Description,Amount
2025-08-15,Credit,PWD Pune,Mobilisation advance,"1,00,000"
16/08/2025,debit,ACME Cement,Cement bags,₹40.50
`

	txs, err := csvimport.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.True(t, txs[0].Date.Equal(ledger.NewInstant(istDate(2025, 8, 15))))
	assert.Equal(t, "2025-08-14T18:30:00Z", txs[0].Date.String())
	assert.Equal(t, "Credit", txs[0].Type)
	assert.Equal(t, "PWD Pune", txs[0].Vendor)
	assert.Equal(t, "Mobilisation advance", txs[0].Desc)
	assert.Equal(t, "100000", txs[0].Amount.String())

	assert.True(t, txs[1].Date.Equal(ledger.NewInstant(istDate(2025, 8, 16))))
	assert.Equal(t, "debit", txs[1].Type)
	assert.Equal(t, "40.5", txs[1].Amount.String())
	assert.Empty(t, txs[0].ID)
	assert.Empty(t, txs[0].TenderID)
}

func TestParser_SignDecidesTypeWithoutTypeColumn(t *testing.T) {
	csv := `amount;DESCRIPTION;date
-250.75;Diesel;01-09-2025
1200;Running bill;2025-09-02T10:00:00+05:30
`

	txs, err := csvimport.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, "Debit", txs[0].Type)
	assert.Equal(t, "250.75", txs[0].Amount.String())
	assert.Equal(t, "Diesel", txs[0].Desc)

	assert.Equal(t, "Credit", txs[1].Type)
	assert.Equal(t, "2025-09-02T04:30:00Z", txs[1].Date.String())
}

func TestParser_Statement(t *testing.T) {
	csv := `Account statement for 01-09-2025 to 30-09-2025
Date,Narration,Party,Debit,Credit,Balance
03/09/2025,NEFT transfer,Shree Traders,"12,500.00",,87500.00
05/09/2025,RTGS receipt,PWD,,"50,000.00",137500.00
06/09/2025,Reversal,,0,0,137500.00
`

	txs, err := csvimport.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, "Debit", txs[0].Type)
	assert.Equal(t, "12500", txs[0].Amount.String())
	assert.Equal(t, "Shree Traders", txs[0].Vendor)
	assert.Equal(t, "NEFT transfer", txs[0].Desc)

	assert.Equal(t, "Credit", txs[1].Type)
	assert.Equal(t, "50000", txs[1].Amount.String())
}

func TestParser_SkipsInvalidRows(t *testing.T) {
	csv := `Date,Amount,Description
not-a-date,10,Header noise
2025-01-10,abc,Bad amount
2025-01-11,,Missing amount
,5,Missing date
2025-01-12,(75.25),Refund
Total,,
`

	txs, err := csvimport.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, "Refund", txs[0].Desc)
	assert.Equal(t, "Debit", txs[0].Type)
	assert.Equal(t, "75.25", txs[0].Amount.String())
}

func TestParser_Windows1252(t *testing.T) {
	src := "Date;Vendor;Amount\n2025-02-01;Café Sahyadri;-90\n"

	encoded, err := charmap.Windows1252.NewEncoder().String(src)
	require.NoError(t, err)

	txs, err := csvimport.NewParser().Parse(bytes.NewReader([]byte(encoded)))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, "Café Sahyadri", txs[0].Vendor)
}

func TestParser_EdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantLen int
		wantErr bool
	}{
		{name: "Empty File", csv: "", wantLen: 0},
		{name: "Header Only", csv: "Date,Type,Vendor,Description,Amount", wantLen: 0},
		{name: "No Recognised Header", csv: "When,How much\n2025-01-01,10\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := csvimport.NewParser().Parse(strings.NewReader(tt.csv))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}
