package ledger

// ReportGroup is one tender header with its matching transactions in
// collection order.
type ReportGroup struct {
	Tender       Tender        `json:"tender"`
	Transactions []Transaction `json:"transactions"`
	Summary      SummaryRow    `json:"summary"`
}

// Report is the grouped view handed to report renderers.
type Report struct {
	TenderID string        `json:"tenderId"`
	Groups   []ReportGroup `json:"groups"`
}

// BuildReport groups filtered transactions by tender. For AllTenders only
// tenders with at least one transaction are included; otherwise the selected
// tender is included even when it has none.
func BuildReport(tenders []Tender, filtered []Transaction, tenderID string) Report {
	report := Report{TenderID: tenderID, Groups: []ReportGroup{}}

	for _, t := range tenders {
		if tenderID != AllTenders && t.ID != tenderID {
			continue
		}

		rows := linkedTo(filtered, t.ID)
		if tenderID == AllTenders && len(rows) == 0 {
			continue
		}

		summary := ComputeSummary([]Tender{t}, rows, t.ID)[0]
		report.Groups = append(report.Groups, ReportGroup{Tender: t, Transactions: rows, Summary: summary})
	}

	return report
}

// Report builds the report for the transactions of tenderID (or every tender)
// that match the search query, from the current collections.
func (s *Service) Report(tenderID, query string) Report {
	doc := s.Snapshot()
	filtered := SearchTransactions(FilterByTender(doc.Transactions, tenderID), query)

	return BuildReport(doc.Tenders, filtered, tenderID)
}

// Summary computes the summary rows for tenderID from the current collections.
func (s *Service) Summary(tenderID string) []SummaryRow {
	doc := s.Snapshot()

	return ComputeSummary(doc.Tenders, doc.Transactions, tenderID)
}

func linkedTo(transactions []Transaction, tenderID string) []Transaction {
	out := []Transaction{}

	for _, tx := range transactions {
		if tx.TenderID == tenderID {
			out = append(out, tx)
		}
	}

	return out
}
