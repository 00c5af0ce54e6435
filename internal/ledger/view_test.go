package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger/ledgertest"
)

func TestSearchTenders(t *testing.T) {
	doc := ledgertest.SampleDocument()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "Empty", query: "", want: []string{"TD-001", "TD-002"}},
		{name: "Whitespace", query: "   ", want: []string{"TD-001", "TD-002"}},
		{name: "CaseInsensitiveName", query: "WATER", want: []string{"TD-002"}},
		{name: "City", query: "pune", want: []string{"TD-001"}},
		{name: "Value", query: "5000", want: []string{"TD-001"}},
		{name: "Date", query: "2025-08", want: []string{"TD-001"}},
		{name: "SharedPrefix", query: "td-00", want: []string{"TD-001", "TD-002"}},
		{name: "NoMatch", query: "bridge", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.SearchTenders(doc.Tenders, tt.query)

			ids := make([]string, 0, len(got))
			for _, tender := range got {
				ids = append(ids, tender.ID)
			}

			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSearchTransactions(t *testing.T) {
	doc := ledgertest.SampleDocument()

	got := ledger.SearchTransactions(doc.Transactions, "acme")
	require.Len(t, got, 1)
	assert.Equal(t, "TD-001-TX002", got[0].ID)

	got = ledger.SearchTransactions(doc.Transactions, "40.5")
	require.Len(t, got, 1)

	got = ledger.SearchTransactions(doc.Transactions, "td-002")
	require.Len(t, got, 1)
	assert.Equal(t, "TD-002-TX001", got[0].ID)
}

func TestSearch_DoesNotMutate(t *testing.T) {
	doc := ledgertest.SampleDocument()
	before := doc.Clone()

	all := ledger.SearchTransactions(doc.Transactions, "")
	require.Len(t, all, len(doc.Transactions))

	for i := range all {
		assert.Equal(t, doc.Transactions[i].ID, all[i].ID)
	}

	all[0].ID = "changed"
	_ = ledger.SearchTenders(doc.Tenders, "road")

	ledgertest.AssertSameDocument(t, before, doc)
}

func TestFilterByTender(t *testing.T) {
	doc := ledgertest.SampleDocument()

	assert.Len(t, ledger.FilterByTender(doc.Transactions, ledger.AllTenders), 3)
	assert.Len(t, ledger.FilterByTender(doc.Transactions, "TD-001"), 2)
	assert.Empty(t, ledger.FilterByTender(doc.Transactions, "TD-404"))
}

func TestPaginate(t *testing.T) {
	items := make([]int, 12)
	for i := range items {
		items[i] = i + 1
	}

	tests := []struct {
		name          string
		items         []int
		page          int
		size          int
		wantPage      int
		wantPageCount int
		wantItems     []int
	}{
		{name: "First", items: items, page: 1, size: 5, wantPage: 1, wantPageCount: 3, wantItems: []int{1, 2, 3, 4, 5}},
		{name: "Last", items: items, page: 3, size: 5, wantPage: 3, wantPageCount: 3, wantItems: []int{11, 12}},
		{name: "PastEndResets", items: items, page: 4, size: 5, wantPage: 1, wantPageCount: 3, wantItems: []int{1, 2, 3, 4, 5}},
		{name: "BelowOneResets", items: items, page: 0, size: 5, wantPage: 1, wantPageCount: 3, wantItems: []int{1, 2, 3, 4, 5}},
		{name: "Empty", items: nil, page: 1, size: 5, wantPage: 1, wantPageCount: 1, wantItems: []int{}},
		{name: "ExactMultiple", items: items[:10], page: 2, size: 5, wantPage: 2, wantPageCount: 2, wantItems: []int{6, 7, 8, 9, 10}},
		{name: "NoSize", items: items, page: 2, size: 0, wantPage: 1, wantPageCount: 1, wantItems: items},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.Paginate(tt.items, tt.page, tt.size)

			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantPageCount, got.PageCount)
			assert.Equal(t, tt.wantItems, got.Items)
			assert.Equal(t, len(tt.items), got.Total)
		})
	}
}

func TestPaginate_Navigation(t *testing.T) {
	p := ledger.Paginate(make([]int, 12), 1, 5)
	assert.False(t, p.HasPrev())
	assert.True(t, p.HasNext())

	p = ledger.Paginate(make([]int, 12), 3, 5)
	assert.True(t, p.HasPrev())
	assert.False(t, p.HasNext())
}

func TestCursor(t *testing.T) {
	doc := ledgertest.SampleDocument()

	c := ledger.NewCursor()
	page := ledger.QueryTransactions(doc.Transactions, c.Query(2))
	assert.Equal(t, 2, page.PageCount)

	c.Next(page.PageCount)
	c.Next(page.PageCount)
	assert.Equal(t, 2, c.Page)

	page = ledger.QueryTransactions(doc.Transactions, c.Query(2))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "TD-002-TX001", page.Items[0].ID)

	c.SetTender("TD-001")
	assert.Equal(t, 1, c.Page)

	page = ledger.QueryTransactions(doc.Transactions, c.Query(2))
	assert.Len(t, page.Items, 2)

	c.SetSearch("cement")
	page = ledger.QueryTransactions(doc.Transactions, c.Query(2))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "TD-001-TX002", page.Items[0].ID)

	c.Prev()
	assert.Equal(t, 1, c.Page)
}

func TestQueryTransactions_ShrunkListFallsBackToFirstPage(t *testing.T) {
	doc := ledgertest.SampleDocument()

	page := ledger.QueryTransactions(doc.Transactions, ledger.TransactionQuery{TenderID: "TD-404", Page: 3, PageSize: 5})
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.PageCount)
	assert.Empty(t, page.Items)
}
