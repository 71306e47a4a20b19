package notebook

import (
	"fmt"
	"sync"

	"nbterm/internal/cells"
	tuirender "nbterm/internal/tui/render"
)

// SizeObserver 把尺寸变化广播给所有注册的回调（持续观察，不是一次性）。
// Observe 返回释放函数；容器移除时必须调用，否则回调泄漏。
type SizeObserver struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(width, height int)
	width  int
	height int
}

func NewSizeObserver() *SizeObserver {
	return &SizeObserver{subs: map[int]func(width, height int){}}
}

// Observe 注册回调并立即用当前已知尺寸补一次通知。
func (o *SizeObserver) Observe(fn func(width, height int)) (release func()) {
	if o == nil || fn == nil {
		return func() {}
	}
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.subs[id] = fn
	width, height := o.width, o.height
	o.mu.Unlock()

	if width > 0 || height > 0 {
		fn(width, height)
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.subs, id)
			o.mu.Unlock()
		})
	}
}

// Notify 记录新尺寸并同步调用全部回调。
func (o *SizeObserver) Notify(width, height int) {
	if o == nil {
		return
	}
	o.mu.Lock()
	o.width, o.height = width, height
	fns := make([]func(int, int), 0, len(o.subs))
	for _, fn := range o.subs {
		fns = append(fns, fn)
	}
	o.mu.Unlock()
	for _, fn := range fns {
		fn(width, height)
	}
}

// Observers 返回当前注册的回调数（测试用）。
func (o *SizeObserver) Observers() int {
	if o == nil {
		return 0
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.subs)
}

// DefaultCollapsedHeight 是折叠态输出的默认可见行数。
const DefaultCollapsedHeight = 12

// Container 包裹一个 cell 的渲染输出：内容超过可见高度即视为溢出，
// 溢出或已展开时显示切换提示行；展开去掉高度上限。展开标志存放在
// 外部拥有的 UIState 里，按 cell 标识索引。
type Container struct {
	id        cells.CellID
	ui        *UIState
	maxHeight int
	visible   int
	content   []tuirender.Line
	release   func()
}

// NewContainer 创建容器并向尺寸源注册持续观察。
func NewContainer(id cells.CellID, ui *UIState, obs *SizeObserver, maxHeight int) *Container {
	if maxHeight <= 0 {
		maxHeight = DefaultCollapsedHeight
	}
	c := &Container{id: id, ui: ui, maxHeight: maxHeight}
	if obs != nil {
		c.release = obs.Observe(c.onResize)
	}
	return c
}

// onResize 重新评估可见高度。终端变矮时折叠上限跟着收紧。
func (c *Container) onResize(width, height int) {
	if c == nil {
		return
	}
	c.visible = height
}

// SetContent 整体替换容器内容（输出按执行周期整体覆盖）。
func (c *Container) SetContent(lines []tuirender.Line) {
	if c == nil {
		return
	}
	c.content = lines
}

// capHeight 返回折叠态下的可见行数上限。
func (c *Container) capHeight() int {
	capped := c.maxHeight
	// 预留切换提示行与状态行的空间。
	if c.visible > 0 && c.visible-4 < capped {
		capped = c.visible - 4
	}
	if capped < 1 {
		capped = 1
	}
	return capped
}

// Overflowing 报告内容是否超过折叠高度。
func (c *Container) Overflowing() bool {
	if c == nil {
		return false
	}
	return len(c.content) > c.capHeight()
}

// Expanded 返回容器当前的展开标志。
func (c *Container) Expanded() bool {
	if c == nil {
		return false
	}
	return c.ui.Expanded(c.id)
}

// Toggle 翻转展开标志（用户显式动作）。
func (c *Container) Toggle() bool {
	if c == nil {
		return false
	}
	return c.ui.Toggle(c.id)
}

// View 返回容器的当前视图。溢出且未展开时截断到上限；溢出或已
// 展开时末尾附带切换提示行。
func (c *Container) View() []tuirender.Line {
	if c == nil {
		return nil
	}
	expanded := c.Expanded()
	overflowing := c.Overflowing()
	out := c.content
	if overflowing && !expanded {
		out = c.content[:c.capHeight()]
	}
	view := make([]tuirender.Line, 0, len(out)+1)
	view = append(view, out...)
	if overflowing || expanded {
		view = append(view, c.toggleLine(expanded))
	}
	return view
}

func (c *Container) toggleLine(expanded bool) tuirender.Line {
	if expanded {
		return tuirender.Line{Spans: []tuirender.Span{
			{Text: "▴ collapse output", Style: toggleStyle},
		}}
	}
	hidden := len(c.content) - c.capHeight()
	return tuirender.Line{Spans: []tuirender.Span{
		{Text: fmt.Sprintf("▾ expand output (%d more lines)", hidden), Style: toggleStyle},
	}}
}

// Close 释放尺寸观察。容器移除后必须调用。
func (c *Container) Close() {
	if c == nil || c.release == nil {
		return
	}
	c.release()
	c.release = nil
}
