package notebook

import (
	"fmt"
	"io"
	"os"

	tuirender "nbterm/internal/tui/render"
)

// Scrollback 把完成的渲染块按自然滚动方式追加写入终端（或任意
// io.Writer）。只负责输出策略，不负责持久化；非交互（--print）
// 模式下整本笔记本经由它输出。
type Scrollback struct {
	w     io.Writer
	width int
}

type ScrollbackOptions struct {
	Writer io.Writer
	Width  int
}

func NewScrollback(opts ScrollbackOptions) *Scrollback {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	width := opts.Width
	if width <= 0 {
		width = 80
	}
	return &Scrollback{w: w, width: width}
}

func (s *Scrollback) SetWidth(width int) {
	if s == nil || width <= 0 {
		return
	}
	s.width = width
}

// AppendLines 将样式化的行写入输出。
func (s *Scrollback) AppendLines(lines []tuirender.Line) {
	if s == nil || s.w == nil {
		return
	}
	for _, line := range tuirender.LinesToStrings(lines) {
		fmt.Fprintln(s.w, line)
	}
}
