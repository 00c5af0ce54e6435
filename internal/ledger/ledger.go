package ledger

// AllTenders selects every tender in filters, summaries and reports.
const AllTenders = "all"

// Tender represents a procurement contract. It is the aggregation root for
// transactions.
type Tender struct {
	ID      string  `json:"tenderId"`
	Name    string  `json:"tenderName"`
	Desc    string  `json:"tenderDesc"`
	City    string  `json:"tenderCity"`
	Pincode string  `json:"tenderPincode"`
	Value   Amount  `json:"tenderValue"`
	Date    Instant `json:"tenderDate"`
}

// Transaction represents a financial movement linked to exactly one tender.
type Transaction struct {
	ID       string  `json:"txnId"`
	TenderID string  `json:"tenderId"`
	Desc     string  `json:"txnDesc"`
	Type     string  `json:"txnType"`
	Vendor   string  `json:"vendorName"`
	Amount   Amount  `json:"amount"`
	Date     Instant `json:"txnDate"`
}

// Document is the whole persisted state. It is always loaded and saved as one
// unit.
type Document struct {
	Tenders      []Tender      `json:"tenders"`
	Transactions []Transaction `json:"transactions"`
}

// Clone returns a deep copy of the document with non-nil slices.
func (d Document) Clone() Document {
	out := Document{
		Tenders:      make([]Tender, len(d.Tenders)),
		Transactions: make([]Transaction, len(d.Transactions)),
	}

	copy(out.Tenders, d.Tenders)
	copy(out.Transactions, d.Transactions)

	return out
}

// clearOutOfRangeDates unsets dates that could not be encoded again, the same
// way malformed dates decode as unset.
func (d *Document) clearOutOfRangeDates() {
	for i := range d.Tenders {
		if !d.Tenders[i].Date.InRange() {
			d.Tenders[i].Date = Instant{}
		}
	}

	for i := range d.Transactions {
		if !d.Transactions[i].Date.InRange() {
			d.Transactions[i].Date = Instant{}
		}
	}
}
