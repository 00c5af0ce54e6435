package ledger

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	tenderIDPattern = regexp.MustCompile(`(?i)^TD-(\d+)$`)
	txnIDPattern    = regexp.MustCompile(`(?i)-TX(\d+)$`)
)

// NextTenderID returns the identifier following the highest TD-<n> among
// tenders. IDs outside that pattern are ignored.
//
// Only the current maximum is considered, so deleting the highest tender makes
// its number available again.
func NextTenderID(tenders []Tender) string {
	highest := 0

	for _, t := range tenders {
		if n, ok := suffixNumber(tenderIDPattern, t.ID); ok && n > highest {
			highest = n
		}
	}

	return fmt.Sprintf("TD-%03d", highest+1)
}

// NextTxnID returns the next <tenderID>-TX<n> identifier for the tender, or ""
// when tenderID is empty. Numbering has the same reuse policy as NextTenderID.
func NextTxnID(transactions []Transaction, tenderID string) string {
	if tenderID == "" {
		return ""
	}

	highest := 0

	for _, tx := range transactions {
		if tx.TenderID != tenderID {
			continue
		}

		if n, ok := suffixNumber(txnIDPattern, tx.ID); ok && n > highest {
			highest = n
		}
	}

	return fmt.Sprintf("%s-TX%03d", tenderID, highest+1)
}

func suffixNumber(pattern *regexp.Regexp, id string) (int, bool) {
	m := pattern.FindStringSubmatch(id)
	if m == nil {
		return 0, false
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		// More digits than an int holds.
		return 0, false
	}

	return n, true
}
