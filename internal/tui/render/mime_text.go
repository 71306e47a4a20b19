package render

import (
	"html"
	"strings"

	"nbterm/internal/outputs"
)

// plainRenderer 逐字渲染 text/plain，按 channel 上色。
type plainRenderer struct{}

func (plainRenderer) Mimes() []outputs.MimeType {
	return []outputs.MimeType{outputs.MimePlain}
}

func (plainRenderer) Render(msg outputs.Message, width int) (*Block, error) {
	text, err := outputs.TextData(msg)
	if err != nil {
		return nil, err
	}
	style := channelStyle(msg.Channel)
	lines := make([]Line, 0, 8)
	for _, l := range wrapText(text, width) {
		lines = append(lines, styledLine(l, style))
	}
	return &Block{Kind: KindText, Lines: lines}, nil
}

// htmlRenderer 将 text/html 解释为文本：剥离标签、块级标签转换行、
// 还原实体，按 channel 上色。终端里不执行脚本/样式，天然已消毒。
type htmlRenderer struct{}

func (htmlRenderer) Mimes() []outputs.MimeType {
	return []outputs.MimeType{outputs.MimeHTML}
}

func (htmlRenderer) Render(msg outputs.Message, width int) (*Block, error) {
	raw, err := outputs.TextData(msg)
	if err != nil {
		return nil, err
	}
	text := flattenHTML(raw)
	style := channelStyle(msg.Channel)
	lines := make([]Line, 0, 8)
	for _, l := range wrapText(text, width) {
		lines = append(lines, styledLine(l, style))
	}
	return &Block{Kind: KindHTML, Lines: lines}, nil
}

// 块级结束标签映射为换行，保持段落结构。
var htmlBreakTags = map[string]bool{
	"br": true, "/p": true, "/div": true, "/li": true, "/tr": true,
	"/h1": true, "/h2": true, "/h3": true, "/h4": true, "/h5": true, "/h6": true,
	"/pre": true, "hr": true,
}

func flattenHTML(raw string) string {
	var b strings.Builder
	var tag strings.Builder
	inTag := false
	for _, r := range raw {
		switch {
		case inTag:
			if r == '>' {
				inTag = false
				name := strings.ToLower(tag.String())
				if i := strings.IndexAny(name, " \t\n"); i >= 0 {
					name = name[:i]
				}
				name = strings.TrimSuffix(name, "/")
				if htmlBreakTags[name] {
					b.WriteByte('\n')
				}
				tag.Reset()
				continue
			}
			tag.WriteRune(r)
		case r == '<':
			inTag = true
		default:
			b.WriteRune(r)
		}
	}
	text := html.UnescapeString(b.String())
	// 折叠标签间残留的多余空行。
	out := make([]string, 0, 8)
	blank := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, trimmed)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
