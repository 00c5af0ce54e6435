package view

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tenderbook/internal/importer"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateTenderSelect importState = iota
	importStateFilePick
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	ledger        *ledger.Service
	importService *importer.Service

	state        importState
	filePicker   filepicker.Model
	tenders      []ledger.Tender
	tenderCursor int

	status string
	err    error
}

func NewImportModel(l *ledger.Service, impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		ledger:        l,
		importService: impSvc,
		filePicker:    fp,
		tenders:       l.Snapshot().Tenders,
	}
}

func (m ImportModel) Title() string { return "Import Transactions" }

func (m ImportModel) ShortHelp() string {
	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg)
		m.filePicker.SetHeight(m.bodyHeight(10))

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateTenderSelect {
			return m.updateTenderSelect(msg)
		}

	case importResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d transactions into %s.", msg.count, m.selectedTender().ID)
		if !msg.result.Saved() {
			m.err = msg.result.Err
			m.status += fmt.Sprintf("\nSaving failed: %v", msg.result.Err)
		}

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(m.selectedTender().ID, path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick:
		m.state = importStateTenderSelect
		return m, nil
	case importStateResult:
		m.state = importStateTenderSelect
		m.err = nil
		m.status = ""

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateTenderSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.tenderCursor > 0 {
			m.tenderCursor--
		}
	case tea.KeyDown:
		if m.tenderCursor < len(m.tenders)-1 {
			m.tenderCursor++
		}
	case tea.KeyEnter:
		if len(m.tenders) == 0 {
			return m, nil
		}

		m.state = importStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) selectedTender() ledger.Tender {
	if m.tenderCursor < 0 || m.tenderCursor >= len(m.tenders) {
		return ledger.Tender{}
	}

	return m.tenders[m.tenderCursor]
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateTenderSelect:
		return m.viewTenderSelect()
	case importStateFilePick:
		return m.viewFilePick()
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewTenderSelect() string {
	if len(m.tenders) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("No tenders yet. Create one first.\n\n(Esc to go back)")
	}

	s := "Import into tender:\n\n"

	for i, t := range m.tenders {
		cursor := " "
		if i == m.tenderCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s  %s\n", cursor, t.ID, t.Name)
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m ImportModel) viewFilePick() string {
	return lipgloss.NewStyle().Padding(1).Render(
		fmt.Sprintf("Select CSV to import into %s:\n\n%s", m.selectedTender().ID, m.filePicker.View()),
	)
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errorStyle(m.status) + "\n\n(Esc to go back)")
	}

	return style.Render(okStyle(m.status) + "\n\n(Esc to go back)")
}

// Messages

type importResultMsg struct {
	count  int
	result ledger.SaveResult
	err    error
}

func (m ImportModel) importCmd(tenderID, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		rows, err := m.importService.Import(importer.FormatAuto, f)
		if err != nil {
			return importResultMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		txs, res, err := m.ledger.ImportTransactions(ctx, tenderID, rows)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{count: len(txs), result: res}
	}
}
