package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

const dbTimeout = 5 * time.Second

// FormatAmount renders an amount with two decimals, or "-" when unset.
func FormatAmount(a ledger.Amount) string {
	if !a.Valid {
		return "-"
	}

	return FormatDecimal(a.Decimal)
}

func FormatDecimal(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatDate renders an instant in IST, or "-" when unset.
func FormatDate(i ledger.Instant) string {
	if s := i.Display(); s != "" {
		return s
	}

	return "-"
}

// DbCtx returns a context with a standard timeout for gateway operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func errorStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(s)
}

func okStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(s)
}

func boxed(s string) string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(s)
}

func panel(title, body string) string {
	return lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(52).
		Render(title + "\n\n" + body)
}

// saveStatus describes the persistence outcome of a mutation.
func saveStatus(action string, res ledger.SaveResult) string {
	if res.Saved() {
		return okStyle(action + " and saved.")
	}

	return errorStyle(fmt.Sprintf("%s, but saving failed: %v", action, res.Err))
}

// tenderOptions lists the tender filter choices: everything first, then every
// tender in collection order.
func tenderOptions(tenders []ledger.Tender) []string {
	opts := make([]string, 0, len(tenders)+1)
	opts = append(opts, ledger.AllTenders)

	for _, t := range tenders {
		opts = append(opts, t.ID)
	}

	return opts
}

// nextOption returns the option after current, wrapping around. An unknown
// current value restarts at the first option.
func nextOption(opts []string, current string) string {
	if len(opts) == 0 {
		return current
	}

	for i, o := range opts {
		if o == current {
			return opts[(i+1)%len(opts)]
		}
	}

	return opts[0]
}

func tenderLabel(id string) string {
	if id == ledger.AllTenders {
		return "All Tenders"
	}

	return id
}
