package render

import (
	"nbterm/internal/outputs"
)

// errorRenderer 将 application/vnd.marimo+error 的有序错误记录逐条
// 渲染：标题行（类型 + 消息）高亮，traceback 缩进置灰。
type errorRenderer struct{}

func (errorRenderer) Mimes() []outputs.MimeType {
	return []outputs.MimeType{outputs.MimeError}
}

func (errorRenderer) Render(msg outputs.Message, width int) (*Block, error) {
	records, err := outputs.ErrorData(msg)
	if err != nil {
		return nil, err
	}
	lines := make([]Line, 0, len(records)*2)
	for i, rec := range records {
		if i > 0 {
			lines = append(lines, Line{})
		}
		lines = append(lines, errorHeader(rec, width)...)
		for _, frame := range rec.Traceback {
			for _, l := range wrapText(frame, width-2) {
				lines = append(lines, Line{Spans: []Span{
					{Text: "  "},
					{Text: l, Style: dimStyle},
				}})
			}
		}
	}
	if len(lines) == 0 {
		lines = append(lines, styledLine("(no error details)", dimStyle))
	}
	return &Block{Kind: KindErrorList, Lines: lines}, nil
}

func errorHeader(rec outputs.ErrorRecord, width int) []Line {
	head := rec.Type
	if head == "" {
		head = "error"
	}
	text := head
	if rec.Msg != "" {
		text += ": " + rec.Msg
	}
	out := make([]Line, 0, 2)
	for _, l := range wrapText(text, width) {
		out = append(out, styledLine(l, errHeaderStyle))
	}
	return out
}
