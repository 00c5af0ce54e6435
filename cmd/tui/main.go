package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tenderbook/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/tenderbook/internal/config"
	"github.com/MrJamesThe3rd/tenderbook/internal/events"
	"github.com/MrJamesThe3rd/tenderbook/internal/export"
	"github.com/MrJamesThe3rd/tenderbook/internal/gateway"
	"github.com/MrJamesThe3rd/tenderbook/internal/importer"
	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

type model struct {
	cfg           *config.Config
	ledger        *ledger.Service
	importService *importer.Service
	exportService *export.Service

	currentView View

	tendersView view.TendersModel
	txView      view.TransactionsModel
	summaryView view.SummaryModel
	importView  view.ImportModel
	exportView  view.ExportModel
}

type View int

const (
	ViewMenu         View = 0
	ViewTenders      View = 1
	ViewTransactions View = 2
	ViewSummary      View = 3
	ViewImport       View = 4
	ViewExport       View = 5
)

func initialModel(cfg *config.Config, l *ledger.Service) model {
	impSvc := importer.NewService()
	expSvc := export.NewService(l)

	return model{
		cfg:           cfg,
		ledger:        l,
		importService: impSvc,
		exportService: expSvc,
		currentView:   ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewTenders
				m.tendersView = view.NewTendersModel(m.ledger)

				return m, m.tendersView.Init()
			case "2":
				m.currentView = ViewTransactions
				m.txView = view.NewTransactionsModel(m.ledger, m.cfg.View.TxnPageSize)

				return m, m.txView.Init()
			case "3":
				m.currentView = ViewSummary
				m.summaryView = view.NewSummaryModel(m.ledger, m.cfg.View.SummaryPageSize)

				return m, m.summaryView.Init()
			case "4":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.ledger, m.importService)

				return m, m.importView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.ledger, m.exportService, m.cfg.Export.Dir)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewTenders:
		var newModel tea.Model
		newModel, cmd = m.tendersView.Update(msg)
		m.tendersView = newModel.(view.TendersModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.txView.Update(msg)
		m.txView = newModel.(view.TransactionsModel)
	case ViewSummary:
		var newModel tea.Model
		newModel, cmd = m.summaryView.Update(msg)
		m.summaryView = newModel.(view.SummaryModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return m.menu()
	case ViewTenders:
		return titled(m.tendersView)
	case ViewTransactions:
		return titled(m.txView)
	case ViewSummary:
		return titled(m.summaryView)
	case ViewImport:
		return titled(m.importView)
	case ViewExport:
		return titled(m.exportView)
	}

	return "Unknown View"
}

func (m model) menu() string {
	s := m.cfg.App.Name + " TUI\n\n" +
		"1. Tenders\n" +
		"2. Transactions\n" +
		"3. Summary\n" +
		"4. Import Transactions\n" +
		"5. Export Report\n\n" +
		"q. Quit"

	if err := m.ledger.LoadError(); err != nil {
		s += "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).
			Render("Could not load saved data: "+err.Error())
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func titled(v view.View) string {
	title := lipgloss.NewStyle().Bold(true).PaddingLeft(1).Render(v.Title())
	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(v.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, title, v.View(), help)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logFile, err := tea.LogToFile(cfg.App.TUILogFile, "tui")
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	slog.SetLogLoggerLevel(cfg.SlogLevel())

	ctx := context.Background()

	gw, closeGateway, err := gateway.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closeGateway()

	if cfg.Events.AMQPURL != "" {
		pub, err := events.NewClient(cfg.Events.AMQPURL, cfg.Events.Exchange, cfg.Events.RoutingKey)
		if err != nil {
			slog.Error("failed to connect to message broker", "error", err)
			os.Exit(1)
		}
		defer pub.Close()

		gw = events.Notify(gw, pub)
	}

	l := ledger.NewService(gw)

	// A failed load leaves the ledger empty; the menu shows the error.
	loadCtx, cancel := context.WithTimeout(ctx, cfg.Server.Timeout)
	_ = l.Load(loadCtx)

	cancel()

	p := tea.NewProgram(initialModel(cfg, l), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
