package render

import (
	"github.com/charmbracelet/lipgloss"

	"nbterm/internal/outputs"
)

var (
	dimStyle       = lipgloss.NewStyle().Faint(true)
	stderrStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	stdinStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	keyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	numberStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	stringStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	headerStyle    = lipgloss.NewStyle().Bold(true)
	mediaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	fallbackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// channelStyle 按消息来源选择文本样式。
func channelStyle(ch outputs.Channel) lipgloss.Style {
	switch ch {
	case outputs.ChannelStderr, outputs.ChannelError:
		return stderrStyle
	case outputs.ChannelStdin:
		return stdinStyle
	default:
		return lipgloss.Style{}
	}
}
