package csvimport

import (
	"strings"

	"github.com/shopspring/decimal"
)

var currencyMarks = []string{"₹", "INR", "Rs.", "Rs"}

// parseAmount parses an Indian-formatted amount string.
// Format examples: "1,234.50", "₹1234.5", "(40.50)" -> -40.50, "-1,00,000".
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)

	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		negative = true
		clean = clean[1 : len(clean)-1]
	}

	for _, mark := range currencyMarks {
		clean = strings.ReplaceAll(clean, mark, "")
	}

	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.ReplaceAll(clean, " ", "")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, err
	}

	if negative {
		d = d.Neg()
	}

	return d, nil
}
