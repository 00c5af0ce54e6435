package ledger

import (
	"strings"
)

// SearchTenders returns the tenders with any field containing query,
// case-insensitively. An empty query returns every tender. The input is never
// modified and order is preserved.
func SearchTenders(tenders []Tender, query string) []Tender {
	return search(tenders, query, tenderFields)
}

// SearchTransactions is SearchTenders for transactions.
func SearchTransactions(transactions []Transaction, query string) []Transaction {
	return search(transactions, query, transactionFields)
}

// FilterByTender returns the transactions linked to tenderID, or all of them
// for AllTenders.
func FilterByTender(transactions []Transaction, tenderID string) []Transaction {
	out := make([]Transaction, 0, len(transactions))

	for _, tx := range transactions {
		if tenderID == AllTenders || tx.TenderID == tenderID {
			out = append(out, tx)
		}
	}

	return out
}

// Page is one page of a paginated list.
type Page[T any] struct {
	Items     []T `json:"items"`
	Page      int `json:"page"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a following page exists.
func (p Page[T]) HasNext() bool { return p.Page < p.PageCount }

// Paginate slices items into pages of size and returns the requested one.
// There is always at least one page. A page outside [1, PageCount] falls back
// to page 1, which covers a list that shrank under the caller. A size below 1
// puts everything on a single page.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size < 1 {
		size = max(len(items), 1)
	}

	pageCount := max(1, (len(items)+size-1)/size)
	if page < 1 || page > pageCount {
		page = 1
	}

	start := (page - 1) * size
	end := min(start+size, len(items))

	return Page[T]{
		Items:     append([]T{}, items[start:end]...),
		Page:      page,
		PageCount: pageCount,
		Total:     len(items),
	}
}

// TransactionQuery selects the transactions shown in a paginated table.
type TransactionQuery struct {
	TenderID string
	Search   string
	Page     int
	PageSize int
}

// QueryTransactions filters by tender, then searches, then paginates.
func QueryTransactions(transactions []Transaction, q TransactionQuery) Page[Transaction] {
	tenderID := q.TenderID
	if tenderID == "" {
		tenderID = AllTenders
	}

	filtered := SearchTransactions(FilterByTender(transactions, tenderID), q.Search)

	return Paginate(filtered, q.Page, q.PageSize)
}

// Cursor tracks the filter and page of an interactive table. Changing the
// filter always returns to the first page.
type Cursor struct {
	TenderID string
	Search   string
	Page     int
}

// NewCursor returns a cursor on the first page of all tenders.
func NewCursor() Cursor {
	return Cursor{TenderID: AllTenders, Page: 1}
}

func (c *Cursor) SetTender(id string) {
	c.TenderID = id
	c.Page = 1
}

func (c *Cursor) SetSearch(query string) {
	c.Search = query
	c.Page = 1
}

// Next moves forward unless already on the last page.
func (c *Cursor) Next(pageCount int) {
	if c.Page < pageCount {
		c.Page++
	}
}

// Prev moves back unless already on the first page.
func (c *Cursor) Prev() {
	if c.Page > 1 {
		c.Page--
	}
}

// Query builds the TransactionQuery for this cursor.
func (c Cursor) Query(pageSize int) TransactionQuery {
	return TransactionQuery{TenderID: c.TenderID, Search: c.Search, Page: c.Page, PageSize: pageSize}
}

func search[T any](items []T, query string, fields func(T) []string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]T, 0, len(items))

	for _, item := range items {
		if q == "" || matchesAny(fields(item), q) {
			out = append(out, item)
		}
	}

	return out
}

func matchesAny(values []string, q string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}

	return false
}

func tenderFields(t Tender) []string {
	return []string{t.ID, t.Name, t.Desc, t.City, t.Pincode, t.Value.String(), t.Date.String()}
}

func transactionFields(tx Transaction) []string {
	return []string{tx.ID, tx.TenderID, tx.Desc, tx.Type, tx.Vendor, tx.Amount.String(), tx.Date.String()}
}
