package notebook

import (
	"sync"

	"nbterm/internal/cells"
	"nbterm/internal/events"
	"nbterm/internal/logger"
	tuirender "nbterm/internal/tui/render"
)

// EventCellRenderer 处理一类会话事件并更新对应 cell 的运行期状态。
type EventCellRenderer interface {
	Type() events.EventType
	Handle(r *Renderer, evt events.Event)
}

type RendererOptions struct {
	Width           int
	CollapsedHeight int
	Defaults        cells.RuntimeDefaults
	Boundary        *tuirender.Boundary
	UI              *UIState
	Sizes           *SizeObserver
}

// Renderer 监听内核会话事件并维护整本笔记本的视图：
// 每个 cell 一份静态数据 + 一份运行期状态 + 一个可展开容器。
// 事件整体覆盖状态，视图在需要时整体重算（不做增量更新）。
type Renderer struct {
	mu sync.Mutex

	width           int
	collapsedHeight int
	defaults        cells.RuntimeDefaults
	boundary        *tuirender.Boundary
	ui              *UIState
	sizes           *SizeObserver
	log             *logger.LogEntry

	handlers map[events.EventType]EventCellRenderer
	order    []cells.CellID
	views    map[cells.CellID]*cellView
}

func NewRenderer(opts RendererOptions) *Renderer {
	width := opts.Width
	if width <= 0 {
		width = 80
	}
	ui := opts.UI
	if ui == nil {
		ui = NewUIState()
	}
	boundary := opts.Boundary
	if boundary == nil {
		boundary = tuirender.NewBoundary(nil)
	}
	sizes := opts.Sizes
	if sizes == nil {
		sizes = NewSizeObserver()
	}
	r := &Renderer{
		width:           width,
		collapsedHeight: opts.CollapsedHeight,
		defaults:        opts.Defaults,
		boundary:        boundary,
		ui:              ui,
		sizes:           sizes,
		log:             logger.Named("notebook"),
		handlers:        map[events.EventType]EventCellRenderer{},
		views:           map[cells.CellID]*cellView{},
	}
	for _, h := range defaultEventHandlers() {
		r.handlers[h.Type()] = h
	}
	return r
}

// RegisterHandler 注册或覆盖事件处理器。
func (r *Renderer) RegisterHandler(h EventCellRenderer) {
	if h == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[h.Type()] = h
}

// RegisterCell 把一个 cell 纳入视图，运行期状态按默认值创建。
func (r *Renderer) RegisterCell(data cells.CellData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registerLocked(data)
}

func (r *Renderer) registerLocked(data cells.CellData) {
	if _, ok := r.views[data.ID]; ok {
		return
	}
	state := cells.NewRuntimeState(r.defaults)
	r.views[data.ID] = &cellView{
		data:      &data,
		state:     &state,
		container: NewContainer(data.ID, r.ui, r.sizes, r.collapsedHeight),
		boundary:  r.boundary,
	}
	r.order = append(r.order, data.ID)
}

// RemoveCell 移除 cell：释放容器观察、丢弃运行期状态、清理 UI 状态。
func (r *Renderer) RemoveCell(id cells.CellID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(id)
}

func (r *Renderer) removeLocked(id cells.CellID) {
	view, ok := r.views[id]
	if !ok {
		return
	}
	view.container.Close()
	delete(r.views, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.ui.Forget(id)
}

// Handle 分发一条会话事件。未知事件类型仅记日志（事件流是开放的，
// 与输出 MimeType 的封闭枚举不同）。
func (r *Renderer) Handle(evt events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.handlers[evt.Type]
	if h == nil {
		r.log.WithField("type", string(evt.Type)).Warn("unhandled session event")
		return
	}
	h.Handle(r, evt)
}

// SetWidth 更新渲染宽度。
func (r *Renderer) SetWidth(width int) {
	if width <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width = width
}

// Lines 重算整本笔记本的视图。
func (r *Renderer) Lines() []tuirender.Line {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := make([]tuirender.Line, 0, 64)
	for i, id := range r.order {
		if i > 0 {
			lines = append(lines, tuirender.Line{})
		}
		lines = append(lines, r.views[id].renderLines(r.width)...)
	}
	return lines
}

// CellLines 重算单个 cell 的视图。
func (r *Renderer) CellLines(id cells.CellID) []tuirender.Line {
	r.mu.Lock()
	defer r.mu.Unlock()
	view, ok := r.views[id]
	if !ok {
		return nil
	}
	return view.renderLines(r.width)
}

// CellIDs 按笔记本顺序返回全部 cell 标识。
func (r *Renderer) CellIDs() []cells.CellID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]cells.CellID(nil), r.order...)
}

// CellName 返回 cell 的显示名。
func (r *Renderer) CellName(id cells.CellID) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if view, ok := r.views[id]; ok {
		return view.data.Name
	}
	return ""
}

// ToggleExpanded 翻转 cell 输出容器的展开标志。
func (r *Renderer) ToggleExpanded(id cells.CellID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if view, ok := r.views[id]; ok {
		view.container.Toggle()
	}
}

// OutputText 返回 cell 主输出的纯文本（复制到剪贴板用）。
func (r *Renderer) OutputText(id cells.CellID) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	view, ok := r.views[id]
	if !ok || view.state.Output == nil {
		return ""
	}
	return r.boundary.Render(*view.state.Output, r.width).Text()
}

// RuntimeState 返回 cell 运行期状态的副本（测试与状态栏使用）。
func (r *Renderer) RuntimeState(id cells.CellID) (cells.RuntimeState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	view, ok := r.views[id]
	if !ok {
		return cells.RuntimeState{}, false
	}
	return *view.state, true
}

// Reset 丢弃所有运行期状态（内核会话重置），静态数据与 UI 状态保留。
func (r *Renderer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetLocked()
}

func (r *Renderer) resetLocked() {
	for _, view := range r.views {
		state := cells.NewRuntimeState(r.defaults)
		*view.state = state
	}
}

// Close 释放全部容器的尺寸观察。
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, view := range r.views {
		view.container.Close()
	}
}

func (r *Renderer) stateOf(id cells.CellID) *cells.RuntimeState {
	if view, ok := r.views[id]; ok {
		return view.state
	}
	return nil
}
