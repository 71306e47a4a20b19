package notebook

import "github.com/charmbracelet/lipgloss"

var (
	toggleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Faint(true)
	nameStyle     = lipgloss.NewStyle().Bold(true)
	statusStyle   = lipgloss.NewStyle().Faint(true)
	staleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	erroredStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	codeGutter    = lipgloss.NewStyle().Faint(true)
	consoleGutter = lipgloss.NewStyle().Faint(true)
)
