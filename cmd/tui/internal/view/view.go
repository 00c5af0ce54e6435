package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// View is a screen reachable from the menu: tenders, transactions, summary,
// import or export. The menu draws Title above it and ShortHelp below.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel holds the terminal size last reported to a screen.
type CommonModel struct {
	Width  int
	Height int
}

func (c *CommonModel) SetSize(msg tea.WindowSizeMsg) {
	c.Width = msg.Width
	c.Height = msg.Height
}

// bodyHeight is the height left after reserved rows of chrome, never below 5.
func (c CommonModel) bodyHeight(reserved int) int {
	return max(c.Height-reserved, 5)
}

// BackMsg returns control from a screen to the menu.
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}
