package view

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

type txState int

const (
	txStateBrowse txState = iota
	txStateSearch
	txStateEdit
	txStateDelete
)

const defaultTxnType = "Payment"

type txFields struct {
	id       string
	tenderID string
	desc     string
	txnType  string
	vendor   string
	amount   string
	date     string
	confirm  bool
}

type TransactionsModel struct {
	CommonModel
	ledger   *ledger.Service
	pageSize int

	state  txState
	table  table.Model
	search textinput.Model
	cursor ledger.Cursor
	page   ledger.Page[ledger.Transaction]
	// tenders is the filter cycle: AllTenders followed by every tender id.
	tenders []string
	form    *huh.Form
	fields  *txFields

	editingID string
	status    string
}

func NewTransactionsModel(l *ledger.Service, pageSize int) TransactionsModel {
	columns := []table.Column{
		{Title: "Txn ID", Width: 12},
		{Title: "Tender", Width: 10},
		{Title: "Description", Width: 26},
		{Title: "Type", Width: 9},
		{Title: "Vendor", Width: 16},
		{Title: "Amount", Width: 12},
		{Title: "Date", Width: 17},
	}

	search := textinput.New()
	search.Placeholder = "search transactions"
	search.Prompt = "/ "

	return TransactionsModel{
		ledger:   l,
		pageSize: pageSize,
		table:    newTable(columns),
		search:   search,
		cursor:   ledger.NewCursor(),
		fields:   &txFields{},
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStateSearch:
		return "Enter: apply | Esc: clear"
	case txStateEdit:
		return "Navigate form | Esc: cancel"
	case txStateDelete:
		return "Confirm deletion | Esc: cancel"
	}

	return "Esc: back | t: tender filter | /: search | ←/→: page | n: new | e: edit | d: delete"
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTxsMsg:
		m.tenders = msg.tenders
		m.page = msg.page
		m.cursor.Page = msg.page.Page
		m.refreshTable()
		return m, nil

	case txSaveMsg:
		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Error: %v", msg.err))
			if m.state == txStateEdit {
				m.form = m.buildForm()
				return m, m.form.Init()
			}
		} else {
			m.status = saveStatus(msg.action, msg.result)
		}

		m.closeForm()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.SetSize(msg)
		m.table.SetHeight(m.bodyHeight(12))
		return m, nil
	}

	switch m.state {
	case txStateSearch:
		return m.updateSearch(msg)
	case txStateEdit, txStateDelete:
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m TransactionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "t":
			m.cursor.SetTender(nextOption(m.tenders, m.cursor.TenderID))
			return m, m.loadCmd()
		case "/":
			m.state = txStateSearch
			m.table.Blur()
			return m, m.search.Focus()
		case "right", "l":
			m.cursor.Next(m.page.PageCount)
			return m, m.loadCmd()
		case "left", "h":
			m.cursor.Prev()
			return m, m.loadCmd()
		case "n":
			return m.enterEdit(nil)
		case "e":
			if tx, ok := m.selected(); ok {
				return m.enterEdit(&tx)
			}
			return m, nil
		case "d":
			if tx, ok := m.selected(); ok {
				return m.enterDelete(tx)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m TransactionsModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.search.SetValue("")
			fallthrough
		case tea.KeyEnter:
			m.cursor.SetSearch(m.search.Value())
			m.state = txStateBrowse
			m.search.Blur()
			m.table.Focus()
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m TransactionsModel) enterEdit(tx *ledger.Transaction) (tea.Model, tea.Cmd) {
	m.editingID = ""

	if tx == nil {
		tenderID := ""
		if m.cursor.TenderID != ledger.AllTenders {
			tenderID = m.cursor.TenderID
		} else if len(m.tenders) > 1 {
			tenderID = m.tenders[1]
		}

		*m.fields = txFields{
			id:       m.ledger.NextTxnID(tenderID),
			tenderID: tenderID,
			txnType:  defaultTxnType,
		}
	} else {
		m.editingID = tx.ID
		*m.fields = txFields{
			id:       tx.ID,
			tenderID: tx.TenderID,
			desc:     tx.Desc,
			txnType:  tx.Type,
			vendor:   tx.Vendor,
			amount:   tx.Amount.String(),
			date:     tx.Date.Display(),
		}
	}

	m.form = m.buildForm()
	m.state = txStateEdit
	m.status = ""
	m.table.Blur()
	return m, m.form.Init()
}

func (m TransactionsModel) buildForm() *huh.Form {
	f := m.fields

	idField := huh.NewInput().Key("id").Title("Transaction ID").Value(&f.id)
	if m.editingID != "" {
		idField = idField.Description("Cannot be changed")
	}

	return huh.NewForm(
		huh.NewGroup(
			idField,
			m.tenderField(),
			huh.NewInput().Key("desc").Title("Description").Value(&f.desc),
			huh.NewInput().Key("type").Title("Type").
				Suggestions([]string{"Credit", "Debit", defaultTxnType}).
				Value(&f.txnType),
			huh.NewInput().Key("vendor").Title("Vendor").Value(&f.vendor),
			huh.NewInput().Key("amount").Title("Amount").Value(&f.amount).Validate(validAmount),
			huh.NewInput().Key("date").Title("Date (IST)").Placeholder(ledger.DisplayLayout).
				Value(&f.date).Validate(validDate),
		),
	).WithWidth(48).WithShowHelp(false)
}

// tenderField offers the known tenders as a select. A transaction pointing at
// a tender that no longer exists keeps its id as an extra option.
func (m TransactionsModel) tenderField() huh.Field {
	ids := slices.Clone(m.tenders)
	if len(ids) > 0 && ids[0] == ledger.AllTenders {
		ids = ids[1:]
	}

	if len(ids) == 0 {
		return huh.NewInput().Key("tender").Title("Linked Tender ID").Value(&m.fields.tenderID)
	}

	if m.fields.tenderID != "" && !slices.Contains(ids, m.fields.tenderID) {
		ids = append(ids, m.fields.tenderID)
	}

	return huh.NewSelect[string]().
		Key("tender").
		Title("Linked Tender ID").
		Options(huh.NewOptions(ids...)...).
		Value(&m.fields.tenderID)
}

func (m TransactionsModel) enterDelete(tx ledger.Transaction) (tea.Model, tea.Cmd) {
	*m.fields = txFields{id: tx.ID}
	m.editingID = tx.ID

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete transaction %s?", tx.ID)).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&m.fields.confirm),
		),
	).WithWidth(48).WithShowHelp(false)

	m.state = txStateDelete
	m.status = ""
	m.table.Blur()
	return m, m.form.Init()
}

func (m TransactionsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == txStateDelete {
		if !m.fields.confirm {
			m.closeForm()
			return m, nil
		}

		return m, m.deleteCmd(m.editingID)
	}

	return m, m.saveCmd()
}

func (m *TransactionsModel) closeForm() {
	m.state = txStateBrowse
	m.form = nil
	m.editingID = ""
	m.table.Focus()
}

func (m TransactionsModel) selected() (ledger.Transaction, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.page.Items) {
		return ledger.Transaction{}, false
	}

	return m.page.Items[idx], true
}

func (m *TransactionsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.page.Items))
	for _, tx := range m.page.Items {
		rows = append(rows, table.Row{
			tx.ID,
			tx.TenderID,
			tx.Desc,
			tx.Type,
			tx.Vendor,
			FormatAmount(tx.Amount),
			FormatDate(tx.Date),
		})
	}

	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func (m TransactionsModel) View() string {
	header := fmt.Sprintf(
		"Filter: [t] Tender: %s | [/] Search: %s",
		activeStyle(tenderLabel(m.cursor.TenderID)),
		activeStyle(orAll(m.cursor.Search)),
	)
	if m.state == txStateSearch {
		header = m.search.View()
	}

	footer := fmt.Sprintf("Page %d of %d | %d transaction(s)", m.page.Page, m.page.PageCount, m.page.Total)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxed(m.table.View()),
		lipgloss.NewStyle().Faint(true).Render(footer),
	)

	if m.form != nil {
		title := "New Transaction"
		switch {
		case m.state == txStateDelete:
			title = "Delete Transaction"
		case m.editingID != "":
			title = "Edit Transaction " + m.editingID
		}

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(title, m.form.View()))
	}

	if m.status != "" {
		content = m.status + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type loadTxsMsg struct {
	tenders []string
	page    ledger.Page[ledger.Transaction]
}

func (m TransactionsModel) loadCmd() tea.Cmd {
	query := m.cursor.Query(m.pageSize)

	return func() tea.Msg {
		doc := m.ledger.Snapshot()

		return loadTxsMsg{
			tenders: tenderOptions(doc.Tenders),
			page:    ledger.QueryTransactions(doc.Transactions, query),
		}
	}
}

type txSaveMsg struct {
	action string
	result ledger.SaveResult
	err    error
}

func (m TransactionsModel) saveCmd() tea.Cmd {
	f := *m.fields
	editingID := m.editingID

	return func() tea.Msg {
		amount, err := ledger.ParseAmount(f.amount)
		if err != nil {
			return txSaveMsg{err: fmt.Errorf("parse amount: %w", err)}
		}

		date, err := ledger.ParseDisplay(f.date)
		if err != nil {
			return txSaveMsg{err: fmt.Errorf("parse date: %w", err)}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		tx, res, err := m.ledger.SaveTransaction(ctx, ledger.Transaction{
			ID:       f.id,
			TenderID: f.tenderID,
			Desc:     f.desc,
			Type:     f.txnType,
			Vendor:   f.vendor,
			Amount:   amount,
			Date:     date,
		}, editingID)
		if err != nil {
			return txSaveMsg{err: err}
		}

		action := "Created transaction " + tx.ID
		if editingID != "" {
			action = "Updated transaction " + tx.ID
		}

		return txSaveMsg{action: action, result: res}
	}
}

func (m TransactionsModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		res, err := m.ledger.DeleteTransaction(ctx, id)
		if err != nil {
			return txSaveMsg{err: err}
		}

		return txSaveMsg{action: "Deleted transaction " + id, result: res}
	}
}
