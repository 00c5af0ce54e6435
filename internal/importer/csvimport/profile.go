package csvimport

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column (e.g. "Amount" with value "-40.50").
	amountSingle amountMode = iota
	// amountSplit means separate debit and credit columns.
	amountSplit
)

// Profile describes the column layout of a supported CSV export. Header names
// are matched case-insensitively.
type Profile struct {
	Name       string
	DateCol    string
	DescCol    string
	VendorCol  string
	TypeCol    string // optional; when absent the type follows the amount sign
	AmountMode amountMode
	AmountCol  string // used when AmountMode == amountSingle
	DebitCol   string // used when AmountMode == amountSplit
	CreditCol  string // used when AmountMode == amountSplit
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles is the ordered list of layouts to try during auto-detection.
// More specific profiles should come first to avoid false matches.
var profiles = []Profile{
	{
		Name:       "statement",
		DateCol:    "date",
		DescCol:    "narration",
		VendorCol:  "party",
		AmountMode: amountSplit,
		DebitCol:   "debit",
		CreditCol:  "credit",
	},
	{
		Name:       "ledger",
		DateCol:    "date",
		DescCol:    "description",
		VendorCol:  "vendor",
		TypeCol:    "type",
		AmountMode: amountSingle,
		AmountCol:  "amount",
	},
}
