package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/acquire/internal/game"
)

// Styles holds the lipgloss styles for the TUI.
type Styles struct {
	Header    lipgloss.Style
	BoardPane lipgloss.Style
	LogPane   lipgloss.Style
	Prompt    lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
}

// DefaultStyles returns the standard color scheme.
func DefaultStyles() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#204088")).
			Padding(0, 1).
			Bold(true),
		BoardPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1),
		LogPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// ChainStyle returns a style in the chain's color.
func ChainStyle(chain game.Chain) lipgloss.Style {
	red, green, blue := chain.Color()
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", red, green, blue))).
		Bold(true)
}
