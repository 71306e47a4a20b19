package render

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"nbterm/internal/outputs"
)

// csvColumnCap 限制单列显示宽度，超出部分截断加省略号。
const csvColumnCap = 24

// csvRenderer 将 text/csv 解析为对齐的表格视图：首行作表头加粗，
// 其下画分隔线。
type csvRenderer struct{}

func (csvRenderer) Mimes() []outputs.MimeType {
	return []outputs.MimeType{outputs.MimeCSV}
}

func (csvRenderer) Render(msg outputs.Message, width int) (*Block, error) {
	text, err := outputs.TextData(msg)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid csv text: %v", outputs.ErrParse, err)
	}
	if len(records) == 0 {
		return &Block{Kind: KindTable, Lines: []Line{styledLine("(empty table)", dimStyle)}}, nil
	}

	widths := columnWidths(records)
	lines := make([]Line, 0, len(records)+1)
	lines = append(lines, tableRow(records[0], widths, headerStyle))
	lines = append(lines, tableRule(widths))
	for _, row := range records[1:] {
		lines = append(lines, tableRow(row, widths, lipgloss.Style{}))
	}
	return &Block{Kind: KindTable, Lines: lines}, nil
}

func columnWidths(records [][]string) []int {
	widths := []int{}
	for _, row := range records {
		for i, cell := range row {
			w := runewidth.StringWidth(cell)
			if w > csvColumnCap {
				w = csvColumnCap
			}
			if i >= len(widths) {
				widths = append(widths, w)
				continue
			}
			if w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func tableRow(row []string, widths []int, style lipgloss.Style) Line {
	spans := make([]Span, 0, len(widths)*2)
	for i, w := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		cell = runewidth.Truncate(cell, w, "…")
		cell = runewidth.FillRight(cell, w)
		spans = append(spans, Span{Text: cell, Style: style})
		if i < len(widths)-1 {
			spans = append(spans, Span{Text: "  │  ", Style: dimStyle})
		}
	}
	return Line{Spans: spans}
}

func tableRule(widths []int) Line {
	parts := make([]string, 0, len(widths))
	for _, w := range widths {
		parts = append(parts, strings.Repeat("─", w))
	}
	return styledLine(strings.Join(parts, "──┼──"), dimStyle)
}
