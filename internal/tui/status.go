package tui

import (
	"fmt"
	"strings"

	"nbterm/internal/cells"
)

// statusLine 汇总全笔记本的执行状态：运行/排队/过期计数 + 聚焦 cell。
func (m *Model) statusLine() string {
	running, queued, stale, errored := 0, 0, 0, 0
	total := 0
	for _, id := range m.opts.Renderer.CellIDs() {
		state, ok := m.opts.Renderer.RuntimeState(id)
		if !ok {
			continue
		}
		total++
		switch state.Status {
		case cells.StatusRunning:
			running++
		case cells.StatusQueued:
			queued++
		}
		if state.StaleInputs {
			stale++
		}
		if state.Errored {
			errored++
		}
	}

	parts := []string{fmt.Sprintf("%d cells", total)}
	if running > 0 {
		parts = append(parts, fmt.Sprintf("%s %d running", m.spin.View(), running))
	}
	if queued > 0 {
		parts = append(parts, fmt.Sprintf("%d queued", queued))
	}
	if stale > 0 {
		parts = append(parts, fmt.Sprintf("%d stale", stale))
	}
	if errored > 0 {
		parts = append(parts, fmt.Sprintf("%d errored", errored))
	}
	if m.closed {
		parts = append(parts, "session closed")
	}
	if id, ok := m.focusedCell(); ok {
		parts = append(parts, focusStyle.Render("▸ "+m.opts.Renderer.CellName(id)))
	}
	parts = append(parts, "e expand · / go to cell · y copy · q quit")
	return statusBarSty.Render(strings.Join(parts, "  ·  "))
}
