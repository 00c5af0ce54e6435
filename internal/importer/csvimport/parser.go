package csvimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/tenderbook/internal/encoding"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

const (
	typeCredit = "Credit"
	typeDebit  = "Debit"
)

var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2006-01-02 15:04",
}

// Parser reads transaction CSV exports. It picks the layout by matching column
// headers against known profiles and accepts either ',' or ';' separators.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]ledger.Transaction, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	sample, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek csv: %w", err)
	}

	reader := csv.NewReader(br)
	reader.Comma = detectSeparator(sample)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return []ledger.Transaction{}, nil
	}

	profile, colMap, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching CSV layout found: expected at least Date and Amount columns")
	}

	return parseRows(profile, colMap, rows[headerIdx+1:]), nil
}

// detectSeparator prefers ';' when it occurs more often than ','.
func detectSeparator(sample []byte) rune {
	if bytes.Count(sample, []byte(";")) > bytes.Count(sample, []byte(",")) {
		return ';'
	}

	return ','
}

// colIndex maps lower-cased column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if _, seen := cols[name]; name != "" && !seen {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts transactions from data rows, skipping rows without a
// usable date or amount.
func parseRows(p *Profile, cols colIndex, rows [][]string) []ledger.Transaction {
	txs := []ledger.Transaction{}

	for _, row := range rows {
		date, ok := parseDate(cellValue(row, lookup(cols, p.DateCol)))
		if !ok {
			continue
		}

		amount, txType, ok := parseRowAmount(p, cols, row)
		if !ok {
			continue
		}

		txs = append(txs, ledger.Transaction{
			Desc:   cellValue(row, lookup(cols, p.DescCol)),
			Vendor: cellValue(row, lookup(cols, p.VendorCol)),
			Type:   txType,
			Amount: ledger.NewAmount(amount),
			Date:   ledger.NewInstant(date),
		})
	}

	return txs
}

// parseDate accepts RFC 3339 or one of the day-first and ISO layouts in IST.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, ledger.IST); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseRowAmount extracts the absolute amount and the transaction type.
func parseRowAmount(p *Profile, cols colIndex, row []string) (decimal.Decimal, string, bool) {
	switch p.AmountMode {
	case amountSingle:
		return parseSingleAmount(row, lookup(cols, p.AmountCol), cellValue(row, lookup(cols, p.TypeCol)))
	case amountSplit:
		return parseSplitAmount(row, lookup(cols, p.DebitCol), lookup(cols, p.CreditCol))
	}

	return decimal.Zero, "", false
}

// parseSingleAmount handles a single signed amount column. An explicit type
// wins over the sign.
func parseSingleAmount(row []string, idx int, explicitType string) (decimal.Decimal, string, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return decimal.Zero, "", false
	}

	d, err := parseAmount(s)
	if err != nil {
		return decimal.Zero, "", false
	}

	if explicitType != "" {
		return d.Abs(), explicitType, true
	}

	if d.IsNegative() {
		return d.Abs(), typeDebit, true
	}

	return d, typeCredit, true
}

// parseSplitAmount handles separate debit/credit columns.
func parseSplitAmount(row []string, debitIdx, creditIdx int) (decimal.Decimal, string, bool) {
	if s := cellValue(row, debitIdx); s != "" {
		d, err := parseAmount(s)
		if err == nil && !d.IsZero() {
			return d.Abs(), typeDebit, true
		}
	}

	if s := cellValue(row, creditIdx); s != "" {
		d, err := parseAmount(s)
		if err == nil && !d.IsZero() {
			return d.Abs(), typeCredit, true
		}
	}

	return decimal.Zero, "", false
}

func lookup(cols colIndex, name string) int {
	if name == "" {
		return -1
	}

	idx, ok := cols[name]
	if !ok {
		return -1
	}

	return idx
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
