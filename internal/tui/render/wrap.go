package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText 按显示宽度折行，宽字符计两格。原始空白原样保留：
// text/plain 等逐字输出折行后各段拼接仍等于原文。
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	lines := []string{}
	for _, raw := range strings.Split(text, "\n") {
		if raw == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, wrapLine(raw, width)...)
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}

// wrapLine 优先在窗口内最后一个空格之后折行，窗口内没有空格时硬切。
// 折行点上的空格留在上一段末尾，不丢字符也不折叠连续空白。
func wrapLine(line string, width int) []string {
	if width <= 0 || runewidth.StringWidth(line) <= width {
		return []string{line}
	}
	runes := []rune(line)
	out := []string{}
	start := 0
	for start < len(runes) {
		w := 0
		end := start
		lastBreak := -1
		for end < len(runes) {
			rw := runewidth.RuneWidth(runes[end])
			if w+rw > width {
				break
			}
			if runes[end] == ' ' {
				lastBreak = end + 1
			}
			w += rw
			end++
		}
		if end == len(runes) {
			out = append(out, string(runes[start:]))
			break
		}
		cut := end
		if lastBreak > start {
			cut = lastBreak
		}
		if cut == start {
			// 单个字符宽于窗口（width=1 遇到宽字符），强制推进。
			cut = start + 1
		}
		out = append(out, string(runes[start:cut]))
		start = cut
	}
	return out
}
