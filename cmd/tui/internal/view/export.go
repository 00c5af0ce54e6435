package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tenderbook/internal/export"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

type exportState int

const (
	exportStateForm exportState = iota
	exportStateExporting
	exportStateResult
)

type exportFields struct {
	tenderID string
	query    string
	path     string
}

type ExportModel struct {
	CommonModel
	ledger        *ledger.Service
	exportService *export.Service

	state   exportState
	form    *huh.Form
	fields  *exportFields
	spinner spinner.Model

	err   error
	files []string
}

func NewExportModel(l *ledger.Service, svc *export.Service, dir string) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := ExportModel{
		ledger:        l,
		exportService: svc,
		state:         exportStateForm,
		fields:        &exportFields{tenderID: ledger.AllTenders, path: dir},
		spinner:       s,
	}
	m.form = m.buildForm()

	return m
}

func (m ExportModel) Title() string { return "Export Report" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu | Enter: export again"
	case exportStateExporting:
		return "Exporting..."
	}
	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case exportStateForm:
		return m.updateForm(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ExportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil
	return m, tea.Batch(m.spinner.Tick, m.runExportCmd())
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.files = result.files
		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m ExportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyEnter:
			m.state = exportStateForm
			m.form = m.buildForm()
			return m, m.form.Init()
		}
	}
	return m, nil
}

func (m ExportModel) buildForm() *huh.Form {
	tenders := m.ledger.Snapshot().Tenders

	opts := make([]huh.Option[string], 0, len(tenders)+1)
	opts = append(opts, huh.NewOption("All Tenders", ledger.AllTenders))
	for _, t := range tenders {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s  %s", t.ID, t.Name), t.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("tender").
				Title("Tender").
				Options(opts...).
				Value(&m.fields.tenderID),
			huh.NewInput().
				Key("query").
				Title("Search").
				Description("Only matching transactions are exported").
				Value(&m.fields.query),
			huh.NewInput().
				Key("path").
				Title("Output Path").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports").
				Value(&m.fields.path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("output path cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Writing report for %s...", m.spinner.View(), tenderLabel(m.fields.tenderID)),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Export Complete!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			"Files:",
			"",
			strings.Join(m.files, "\n"),
		),
	)
}

type exportResultMsg struct {
	files []string
	err   error
}

func (m ExportModel) runExportCmd() tea.Cmd {
	f := *m.fields

	return func() tea.Msg {
		files, err := m.exportService.ExportToDir(f.tenderID, f.query, strings.TrimSpace(f.path))
		return exportResultMsg{files: files, err: err}
	}
}
