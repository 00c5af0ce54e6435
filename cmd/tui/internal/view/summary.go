package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

type SummaryModel struct {
	CommonModel
	ledger   *ledger.Service
	pageSize int

	table    table.Model
	tenderID string
	tenders  []string
	page     ledger.Page[ledger.SummaryRow]
	totals   ledger.SummaryRow
	pageNum  int
}

func NewSummaryModel(l *ledger.Service, pageSize int) SummaryModel {
	columns := []table.Column{
		{Title: "Tender", Width: 10},
		{Title: "Name", Width: 24},
		{Title: "Credit", Width: 14},
		{Title: "Debit", Width: 14},
		{Title: "Net", Width: 14},
		{Title: "Status", Width: 8},
	}

	return SummaryModel{
		ledger:   l,
		pageSize: pageSize,
		table:    newTable(columns),
		tenderID: ledger.AllTenders,
		pageNum:  1,
	}
}

func (m SummaryModel) Title() string { return "Summary" }

func (m SummaryModel) ShortHelp() string {
	return "Esc: back | t: tender filter | ←/→: page | r: refresh"
}

func (m SummaryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSummaryMsg:
		m.tenders = msg.tenders
		m.page = msg.page
		m.totals = msg.totals
		m.pageNum = msg.page.Page
		m.refreshTable()
		return m, nil

	case tea.WindowSizeMsg:
		m.SetSize(msg)
		m.table.SetHeight(m.bodyHeight(14))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "t":
			m.tenderID = nextOption(m.tenders, m.tenderID)
			m.pageNum = 1
			return m, m.loadCmd()
		case "right", "l":
			if m.page.HasNext() {
				m.pageNum++
			}
			return m, m.loadCmd()
		case "left", "h":
			if m.page.HasPrev() {
				m.pageNum--
			}
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *SummaryModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.page.Items))
	for _, r := range m.page.Items {
		rows = append(rows, summaryRow(r))
	}

	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func summaryRow(r ledger.SummaryRow) table.Row {
	return table.Row{
		r.TenderID,
		r.TenderName,
		FormatDecimal(r.TotalCredit),
		FormatDecimal(r.TotalDebit),
		FormatDecimal(r.NetAmount),
		string(r.Status),
	}
}

func (m SummaryModel) View() string {
	header := fmt.Sprintf("Filter: [t] Tender: %s", activeStyle(tenderLabel(m.tenderID)))

	status := okStyle(string(m.totals.Status))
	if m.totals.Status == ledger.StatusLoss {
		status = errorStyle(string(m.totals.Status))
	}

	totals := fmt.Sprintf("Total  Credit: %s | Debit: %s | Net: %s (%s)",
		FormatDecimal(m.totals.TotalCredit),
		FormatDecimal(m.totals.TotalDebit),
		FormatDecimal(m.totals.NetAmount),
		status,
	)

	footer := fmt.Sprintf("Page %d of %d | %d tender(s)", m.page.Page, m.page.PageCount, m.page.Total)

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			boxed(m.table.View()),
			lipgloss.NewStyle().Bold(true).Render(totals),
			lipgloss.NewStyle().Faint(true).Render(footer),
		),
	)
}

// Messages

type loadSummaryMsg struct {
	tenders []string
	page    ledger.Page[ledger.SummaryRow]
	totals  ledger.SummaryRow
}

func (m SummaryModel) loadCmd() tea.Cmd {
	tenderID := m.tenderID
	pageNum := m.pageNum

	return func() tea.Msg {
		doc := m.ledger.Snapshot()
		rows := ledger.ComputeSummary(doc.Tenders, doc.Transactions, tenderID)

		return loadSummaryMsg{
			tenders: tenderOptions(doc.Tenders),
			page:    ledger.Paginate(rows, pageNum, m.pageSize),
			totals:  ledger.SummaryTotals(rows),
		}
	}
}
