package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Span 表示一段文本及其样式。
type Span struct {
	Text  string
	Style lipgloss.Style
}

// Line 由多个 Span 组成，可选整体样式。
type Line struct {
	Spans []Span
	Style lipgloss.Style
}

// plainLine 构造单 Span 无样式行。
func plainLine(text string) Line {
	return Line{Spans: []Span{{Text: text}}}
}

// styledLine 构造单 Span 带样式行。
func styledLine(text string, style lipgloss.Style) Line {
	return Line{Spans: []Span{{Text: text, Style: style}}}
}

// LinesToStrings 将样式化的行转换为终端字符串列表。
func LinesToStrings(lines []Line) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		segments := make([]string, 0, len(line.Spans))
		for _, sp := range line.Spans {
			segments = append(segments, sp.Style.Render(sp.Text))
		}
		text := strings.Join(segments, "")
		text = line.Style.Render(text)
		out = append(out, text)
	}
	return out
}

// LinesToText 丢弃样式，仅拼接文本（剪贴板等场景使用）。
func LinesToText(lines []Line) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, sp := range line.Spans {
			b.WriteString(sp.Text)
		}
	}
	return b.String()
}

// PrefixLines 为首行/续行添加不同前缀（用于缩进 traceback 等场景）。
func PrefixLines(lines []Line, initial Span, subsequent Span) []Line {
	out := make([]Line, 0, len(lines))
	for i, l := range lines {
		spans := make([]Span, 0, len(l.Spans)+1)
		if i == 0 {
			spans = append(spans, initial)
		} else {
			spans = append(spans, subsequent)
		}
		spans = append(spans, l.Spans...)
		out = append(out, Line{Spans: spans, Style: l.Style})
	}
	return out
}
