package ledger_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger/ledgertest"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		want      string
	}{
		{name: "Number", input: `500000`, wantValid: true, want: "500000"},
		{name: "Fraction", input: `12.5`, wantValid: true, want: "12.5"},
		{name: "NumericString", input: `"40"`, wantValid: true, want: "40"},
		{name: "EmptyString", input: `""`, wantValid: false},
		{name: "Null", input: `null`, wantValid: false},
		{name: "Garbage", input: `"twelve"`, wantValid: false},
		{name: "Bool", input: `true`, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a ledger.Amount
			require.NoError(t, json.Unmarshal([]byte(tt.input), &a))

			assert.Equal(t, tt.wantValid, a.Valid)
			assert.Equal(t, tt.want, a.String())

			if !tt.wantValid {
				assert.True(t, a.Value().IsZero())
			}
		})
	}
}

func TestAmount_MarshalJSON(t *testing.T) {
	got, err := json.Marshal(ledger.NewAmount(decimal.RequireFromString("1234.56")))
	require.NoError(t, err)
	assert.Equal(t, `1234.56`, string(got))

	got, err = json.Marshal(ledger.Amount{})
	require.NoError(t, err)
	assert.Equal(t, `""`, string(got))
}

func TestInstant_RoundTrip(t *testing.T) {
	ist := time.FixedZone("IST", 5*60*60+30*60)

	instants := []time.Time{
		time.Date(2025, 8, 15, 13, 30, 0, 0, ist),
		time.Date(2024, 2, 29, 23, 59, 59, 999999999, time.UTC),
		time.Unix(0, 1).UTC(),
	}

	for _, want := range instants {
		data, err := json.Marshal(ledger.NewInstant(want))
		require.NoError(t, err)

		var got ledger.Instant
		require.NoError(t, json.Unmarshal(data, &got))

		assert.True(t, got.Valid)
		assert.True(t, got.Time.Equal(want), "want %s, got %s", want, got.Time)
		assert.Equal(t, time.UTC, got.Time.Location())
	}
}

func TestInstant_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
	}{
		{name: "BrowserISO", input: `"2025-08-15T08:00:00.000Z"`, wantValid: true},
		{name: "Offset", input: `"2025-08-15T13:30:00+05:30"`, wantValid: true},
		{name: "OffsetPastYear9999", input: `"9999-12-31T23:00:00-05:00"`, wantValid: true},
		{name: "Empty", input: `""`, wantValid: false},
		{name: "Null", input: `null`, wantValid: false},
		{name: "Garbage", input: `"yesterday"`, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var i ledger.Instant
			require.NoError(t, json.Unmarshal([]byte(tt.input), &i))
			assert.Equal(t, tt.wantValid, i.Valid)
		})
	}
}

func TestInstant_OutOfRange(t *testing.T) {
	const raw = "9999-12-31T23:00:00-05:00"

	_, err := ledger.ParseInstant(raw)
	assert.ErrorIs(t, err, ledger.ErrInstantRange)

	var tender ledger.Tender
	require.NoError(t, json.Unmarshal([]byte(`{"tenderDate":"`+raw+`"}`), &tender))
	require.True(t, tender.Date.Valid)
	assert.False(t, tender.Date.InRange())

	_, err = json.Marshal(tender)
	assert.ErrorIs(t, err, ledger.ErrInstantRange)

	edge, err := ledger.ParseInstant("9999-12-31T18:59:59-05:00")
	require.NoError(t, err)

	data, err := json.Marshal(edge)
	require.NoError(t, err)

	var back ledger.Instant
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(edge))

	assert.True(t, ledger.Instant{}.InRange())
}

func TestParseDisplay_OutOfRange(t *testing.T) {
	_, err := ledger.ParseDisplay("0000-01-01 00:00")
	assert.ErrorIs(t, err, ledger.ErrInstantRange)

	got, err := ledger.ParseDisplay("0000-01-01 05:30")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Time.Year())
}

func TestDocument_JSONRoundTrip(t *testing.T) {
	doc := ledgertest.SampleDocument()

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var got ledger.Document
	require.NoError(t, json.Unmarshal(data, &got))

	ledgertest.AssertSameDocument(t, doc, got)

	again, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestDocument_DecodesBrowserShape(t *testing.T) {
	raw := `{
		"tenders": [{"tenderId":"TD-001","tenderName":"Road","tenderDesc":"","tenderCity":"Pune",
			"tenderPincode":"411001","tenderValue":"","tenderDate":""}],
		"transactions": [{"txnId":"TD-001-TX001","tenderId":"TD-001","txnDesc":"Cement",
			"txnType":"Debit","vendorName":"ACME","amount":40,"txnDate":"2025-08-15T08:00:00.000Z"}]
	}`

	var doc ledger.Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	require.Len(t, doc.Tenders, 1)
	assert.False(t, doc.Tenders[0].Value.Valid)
	assert.False(t, doc.Tenders[0].Date.Valid)

	require.Len(t, doc.Transactions, 1)
	assert.Equal(t, "40", doc.Transactions[0].Amount.String())
	assert.True(t, doc.Transactions[0].Date.Time.Equal(time.Date(2025, 8, 15, 8, 0, 0, 0, time.UTC)))
}
