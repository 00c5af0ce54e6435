package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

type tenderState int

const (
	tenderStateBrowse tenderState = iota
	tenderStateSearch
	tenderStateEdit
	tenderStateDelete
)

// tenderFields backs the huh form. It lives behind a pointer so the form keeps
// writing to the same values while the model is copied between updates.
type tenderFields struct {
	id      string
	name    string
	desc    string
	city    string
	pincode string
	value   string
	date    string
	confirm bool
}

type TendersModel struct {
	CommonModel
	ledger *ledger.Service

	state   tenderState
	table   table.Model
	search  textinput.Model
	tenders []ledger.Tender
	form    *huh.Form
	fields  *tenderFields

	editingID string
	status    string
}

func NewTendersModel(l *ledger.Service) TendersModel {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Name", Width: 24},
		{Title: "City", Width: 14},
		{Title: "Pincode", Width: 8},
		{Title: "Value", Width: 14},
		{Title: "Date", Width: 17},
	}

	search := textinput.New()
	search.Placeholder = "search tenders"
	search.Prompt = "/ "

	return TendersModel{
		ledger: l,
		table:  newTable(columns),
		search: search,
		fields: &tenderFields{},
	}
}

func (m TendersModel) Title() string { return "Tenders" }

func (m TendersModel) ShortHelp() string {
	switch m.state {
	case tenderStateSearch:
		return "Enter: apply | Esc: clear"
	case tenderStateEdit:
		return "Navigate form | Esc: cancel"
	case tenderStateDelete:
		return "Confirm deletion | Esc: cancel"
	}

	return "Esc: back | /: search | n: new | e: edit | d: delete"
}

func (m TendersModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TendersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTendersMsg:
		m.tenders = msg.tenders
		m.refreshTable()
		return m, nil

	case tenderSaveMsg:
		switch {
		case msg.err != nil:
			m.status = errorStyle(fmt.Sprintf("Error: %v", msg.err))
			if m.state == tenderStateEdit {
				// Keep the form open so the input can be corrected.
				m.form = m.buildForm()
				return m, m.form.Init()
			}
		default:
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
	case tenderStateSearch:
		return m.updateSearch(msg)
	case tenderStateEdit, tenderStateDelete:
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m TendersModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "/":
			m.state = tenderStateSearch
			m.table.Blur()
			return m, m.search.Focus()
		case "n":
			return m.enterEdit(nil)
		case "e":
			if t, ok := m.selected(); ok {
				return m.enterEdit(&t)
			}
			return m, nil
		case "d":
			if t, ok := m.selected(); ok {
				return m.enterDelete(t)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m TendersModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.search.SetValue("")
			fallthrough
		case tea.KeyEnter:
			m.state = tenderStateBrowse
			m.search.Blur()
			m.table.Focus()
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m TendersModel) enterEdit(t *ledger.Tender) (tea.Model, tea.Cmd) {
	*m.fields = tenderFields{id: m.ledger.NextTenderID()}
	m.editingID = ""

	if t != nil {
		m.editingID = t.ID
		*m.fields = tenderFields{
			id:      t.ID,
			name:    t.Name,
			desc:    t.Desc,
			city:    t.City,
			pincode: t.Pincode,
			value:   t.Value.String(),
			date:    t.Date.Display(),
		}
	}

	m.form = m.buildForm()
	m.state = tenderStateEdit
	m.status = ""
	m.table.Blur()
	return m, m.form.Init()
}

func (m TendersModel) buildForm() *huh.Form {
	f := m.fields

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("id").Title("Tender ID").Value(&f.id),
			huh.NewInput().Key("name").Title("Tender Name").Value(&f.name),
			huh.NewText().Key("desc").Title("Description").Lines(3).Value(&f.desc),
			huh.NewInput().Key("city").Title("City").Value(&f.city),
			huh.NewInput().Key("pincode").Title("Pincode").Placeholder("6 digits").Value(&f.pincode),
			huh.NewInput().Key("value").Title("Value").Value(&f.value).Validate(validAmount),
			huh.NewInput().Key("date").Title("Date (IST)").Placeholder(ledger.DisplayLayout).
				Value(&f.date).Validate(validDate),
		),
	).WithWidth(48).WithShowHelp(false)
}

func (m TendersModel) enterDelete(t ledger.Tender) (tea.Model, tea.Cmd) {
	*m.fields = tenderFields{id: t.ID}
	m.editingID = t.ID

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete tender %s?", t.ID)).
				Description("All of its transactions are deleted too.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&m.fields.confirm),
		),
	).WithWidth(48).WithShowHelp(false)

	m.state = tenderStateDelete
	m.status = ""
	m.table.Blur()
	return m, m.form.Init()
}

func (m TendersModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	if m.state == tenderStateDelete {
		if !m.fields.confirm {
			m.closeForm()
			return m, nil
		}

		return m, m.deleteCmd(m.editingID)
	}

	return m, m.saveCmd()
}

func (m *TendersModel) closeForm() {
	m.state = tenderStateBrowse
	m.form = nil
	m.editingID = ""
	m.table.Focus()
}

func (m TendersModel) selected() (ledger.Tender, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.tenders) {
		return ledger.Tender{}, false
	}

	return m.tenders[idx], true
}

func (m *TendersModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.tenders))
	for _, t := range m.tenders {
		rows = append(rows, table.Row{
			t.ID,
			t.Name,
			t.City,
			t.Pincode,
			FormatAmount(t.Value),
			FormatDate(t.Date),
		})
	}

	m.table.SetRows(rows)
}

func (m TendersModel) View() string {
	header := fmt.Sprintf("Search: %s | %d tender(s)", activeStyle(orAll(m.search.Value())), len(m.tenders))
	if m.state == tenderStateSearch {
		header = m.search.View()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxed(m.table.View()),
	)

	if m.form != nil {
		title := "New Tender"
		switch {
		case m.state == tenderStateDelete:
			title = "Delete Tender"
		case m.editingID != "":
			title = "Edit Tender " + m.editingID
		}

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(title, m.form.View()))
	}

	if m.status != "" {
		content = m.status + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func orAll(query string) string {
	if strings.TrimSpace(query) == "" {
		return "(all)"
	}

	return query
}

func validAmount(s string) error {
	if _, err := ledger.ParseAmount(s); err != nil {
		return fmt.Errorf("not a number")
	}

	return nil
}

func validDate(s string) error {
	if _, err := ledger.ParseDisplay(s); err != nil {
		return fmt.Errorf("use %s", ledger.DisplayLayout)
	}

	return nil
}

// Messages

type loadTendersMsg struct {
	tenders []ledger.Tender
}

func (m TendersModel) loadCmd() tea.Cmd {
	query := m.search.Value()

	return func() tea.Msg {
		return loadTendersMsg{tenders: ledger.SearchTenders(m.ledger.Snapshot().Tenders, query)}
	}
}

type tenderSaveMsg struct {
	action string
	result ledger.SaveResult
	err    error
}

func (m TendersModel) saveCmd() tea.Cmd {
	f := *m.fields
	editingID := m.editingID

	return func() tea.Msg {
		value, err := ledger.ParseAmount(f.value)
		if err != nil {
			return tenderSaveMsg{err: fmt.Errorf("parse value: %w", err)}
		}

		date, err := ledger.ParseDisplay(f.date)
		if err != nil {
			return tenderSaveMsg{err: fmt.Errorf("parse date: %w", err)}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		t, res, err := m.ledger.SaveTender(ctx, ledger.Tender{
			ID:      f.id,
			Name:    f.name,
			Desc:    f.desc,
			City:    f.city,
			Pincode: f.pincode,
			Value:   value,
			Date:    date,
		}, editingID)
		if err != nil {
			return tenderSaveMsg{err: err}
		}

		action := "Created tender " + t.ID
		if editingID != "" {
			action = "Updated tender " + t.ID
		}

		return tenderSaveMsg{action: action, result: res}
	}
}

func (m TendersModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		res, err := m.ledger.DeleteTender(ctx, id)
		if err != nil {
			return tenderSaveMsg{err: err}
		}

		return tenderSaveMsg{action: "Deleted tender " + id, result: res}
	}
}
