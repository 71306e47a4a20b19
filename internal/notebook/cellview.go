package notebook

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"nbterm/internal/cells"
	tuirender "nbterm/internal/tui/render"
)

// cellView 把一个 cell 的静态定义和运行期状态组合成终端行：
// 头部（名字 + 状态 + 耗时）、代码（除非 hide_code）、主输出容器、
// 控制台输出。输出本身经由渲染边界产出，这里只做拼装。
type cellView struct {
	data      *cells.CellData
	state     *cells.RuntimeState
	container *Container
	boundary  *tuirender.Boundary
}

func (v *cellView) renderLines(width int) []tuirender.Line {
	lines := make([]tuirender.Line, 0, 16)
	lines = append(lines, v.headerLine())

	if !v.data.Config.HideCode && v.data.Code != "" {
		for _, l := range tuirender.HighlightCodeToLines(v.data.Code) {
			lines = append(lines, prefixLine("│ ", codeGutter, l))
		}
	}

	if v.state.Output != nil {
		block := v.boundary.Render(*v.state.Output, width)
		v.container.SetContent(block.Lines)
		lines = append(lines, v.container.View()...)
	} else {
		v.container.SetContent(nil)
	}

	for _, console := range v.state.ConsoleOutputs {
		block := v.boundary.Render(console.Message, width-2)
		for _, l := range block.Lines {
			lines = append(lines, prefixLine("· ", consoleGutter, l))
		}
		if console.Response != "" {
			lines = append(lines, prefixLine("· ", consoleGutter,
				tuirender.Line{Spans: []tuirender.Span{{Text: "> " + console.Response, Style: consoleGutter}}}))
		}
	}
	return lines
}

func (v *cellView) headerLine() tuirender.Line {
	spans := []tuirender.Span{
		{Text: v.data.Name, Style: nameStyle},
		{Text: "  "},
		{Text: statusGlyph(v.state.Status), Style: statusStyle},
		{Text: " " + v.state.Status.String(), Style: statusStyle},
	}
	if v.state.StaleInputs {
		spans = append(spans, tuirender.Span{Text: "  stale", Style: staleStyle})
	}
	if v.state.Errored {
		spans = append(spans, tuirender.Span{Text: "  errored", Style: erroredStyle})
	}
	if v.state.Interrupted {
		spans = append(spans, tuirender.Span{Text: "  interrupted", Style: erroredStyle})
	}
	if v.state.RunElapsedTime != nil {
		spans = append(spans, tuirender.Span{
			Text:  "  " + formatElapsed(*v.state.RunElapsedTime),
			Style: statusStyle,
		})
	}
	return tuirender.Line{Spans: spans}
}

func statusGlyph(status cells.RunStatus) string {
	switch status {
	case cells.StatusRunning:
		return "●"
	case cells.StatusQueued:
		return "◍"
	case cells.StatusDisabled:
		return "⊘"
	default:
		return "○"
	}
}

func formatElapsed(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func prefixLine(prefix string, style lipgloss.Style, line tuirender.Line) tuirender.Line {
	spans := make([]tuirender.Span, 0, len(line.Spans)+1)
	spans = append(spans, tuirender.Span{Text: prefix, Style: style})
	spans = append(spans, line.Spans...)
	return tuirender.Line{Spans: spans, Style: line.Style}
}
