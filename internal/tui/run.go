package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run 封装 Bubble Tea 入口，直到用户退出或出错。
func Run(opts Options) error {
	program := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
