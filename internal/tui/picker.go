package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"nbterm/internal/cells"
	"nbterm/internal/notebook"
)

// pickerState 是“跳转到 cell”的模糊选择器：在状态行位置内联展开，
// 输入过滤、上下选择、回车跳转。
type pickerState struct {
	input    textinput.Model
	matches  []notebook.PickerMatch
	selected int
}

func (m *Model) openPicker() {
	input := textinput.New()
	input.Prompt = "go to cell: "
	input.Focus()
	m.picker = &pickerState{
		input:   input,
		matches: m.opts.Renderer.MatchCells(""),
	}
}

func (m *Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.picker
	switch msg.String() {
	case "esc", "ctrl+c":
		m.picker = nil
		return m, nil
	case "enter":
		if p.selected < len(p.matches) {
			m.jumpToCell(p.matches[p.selected].ID)
		}
		m.picker = nil
		return m, nil
	case "up", "ctrl+p":
		if p.selected > 0 {
			p.selected--
		}
		return m, nil
	case "down", "ctrl+n":
		if p.selected < len(p.matches)-1 {
			p.selected++
		}
		return m, nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.matches = m.opts.Renderer.MatchCells(p.input.Value())
	if p.selected >= len(p.matches) {
		p.selected = 0
	}
	return m, cmd
}

func (m *Model) jumpToCell(id cells.CellID) {
	for i, existing := range m.opts.Renderer.CellIDs() {
		if existing == id {
			m.focus = i
			m.scrollToFocus()
			return
		}
	}
}

func (m *Model) pickerLine() string {
	p := m.picker
	names := make([]string, 0, len(p.matches))
	for i, match := range p.matches {
		name := match.Name
		if i == p.selected {
			name = focusStyle.Render("[" + name + "]")
		}
		names = append(names, name)
		if i >= 7 {
			names = append(names, "…")
			break
		}
	}
	return p.input.View() + "  " + statusBarSty.Render(strings.Join(names, " "))
}
