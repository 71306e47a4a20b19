package render

import "strings"

// HighlightCodeToLines 使用轻量规则高亮 cell 代码（Python 习惯）。
// 注释与字符串被 dim，异常时回退为纯文本。
func HighlightCodeToLines(code string) []Line {
	lines := []Line{}
	for _, rawLine := range strings.Split(code, "\n") {
		if rawLine == "" {
			lines = append(lines, Line{})
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(rawLine), "#") {
			lines = append(lines, styledLine(rawLine, dimStyle))
			continue
		}
		spans := []Span{}
		rest := rawLine
		for _, tok := range strings.Fields(rawLine) {
			idx := strings.Index(rest, tok)
			if idx > 0 {
				spans = append(spans, Span{Text: rest[:idx]})
			}
			span := Span{Text: tok}
			switch {
			case isStringToken(tok):
				span.Style = stringStyle
			case isKeywordToken(tok):
				span.Style = keyStyle
			}
			spans = append(spans, span)
			rest = rest[idx+len(tok):]
		}
		if rest != "" {
			spans = append(spans, Span{Text: rest})
		}
		lines = append(lines, Line{Spans: spans})
	}
	if len(lines) == 0 {
		return []Line{{}}
	}
	return lines
}

func isKeywordToken(tok string) bool {
	switch strings.TrimSuffix(tok, ":") {
	case "def", "return", "import", "from", "for", "while", "if", "elif",
		"else", "class", "with", "as", "lambda", "yield", "async", "await":
		return true
	default:
		return false
	}
}

func isStringToken(tok string) bool {
	for _, q := range []string{`"`, "'"} {
		if strings.HasPrefix(tok, q) && strings.HasSuffix(tok, q) && len(tok) >= 2 {
			return true
		}
	}
	return false
}
