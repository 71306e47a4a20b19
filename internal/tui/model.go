package tui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nbterm/internal/cells"
	"nbterm/internal/events"
	"nbterm/internal/logger"
	"nbterm/internal/notebook"
	"nbterm/internal/tui/render"
)

// chromeHeight 是视口之外的固定行数：标题行 + 状态行。
const chromeHeight = 2

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	statusBarSty = lipgloss.NewStyle().Faint(true)
)

type Options struct {
	Title    string
	Renderer *notebook.Renderer
	Sizes    *notebook.SizeObserver
	Events   <-chan events.Event
}

// sessionEventMsg 把会话事件送进 Bubble Tea 的单线程 Update 循环。
type sessionEventMsg struct {
	evt events.Event
}

type eventsClosedMsg struct{}

// Model 是笔记本视图的 Bubble Tea 模型：上方标题、中间滚动视口、
// 下方状态行；事件到达时整体重算受影响内容。
type Model struct {
	opts Options
	log  *logger.LogEntry

	viewport render.NotebookViewport
	ready    bool
	width    int
	height   int

	// focus 是当前聚焦 cell 在笔记本顺序中的下标。
	focus       int
	cellOffsets map[cells.CellID]int

	picker  *pickerState
	spin    spinner.Model
	running bool
	closed  bool
}

func New(opts Options) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	return &Model{
		opts:        opts,
		log:         logger.Named("tui"),
		spin:        sp,
		cellOffsets: map[cells.CellID]int{},
	}
}

func (m *Model) Init() tea.Cmd {
	return m.waitForEvent()
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-m.opts.Events
		if !ok {
			return eventsClosedMsg{}
		}
		return sessionEventMsg{evt: evt}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		contentHeight := msg.Height - chromeHeight
		if contentHeight < 1 {
			contentHeight = 1
		}
		if !m.ready {
			m.viewport = render.NewNotebookViewport(msg.Width, contentHeight)
			m.ready = true
		} else {
			m.viewport.Resize(msg.Width, contentHeight)
		}
		m.opts.Renderer.SetWidth(msg.Width)
		// 尺寸变化广播给所有输出容器，溢出检测随之重估。
		m.opts.Sizes.Notify(msg.Width, contentHeight)
		m.refreshContent()
		return m, nil

	case sessionEventMsg:
		m.opts.Renderer.Handle(msg.evt)
		m.refreshContent()
		cmds := []tea.Cmd{m.waitForEvent()}
		if running := m.anyRunning(); running && !m.running {
			m.running = true
			cmds = append(cmds, m.spin.Tick)
		} else if !running {
			m.running = false
		}
		return m, tea.Batch(cmds...)

	case eventsClosedMsg:
		m.closed = true
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.ready {
		cmd := m.viewport.HandleUpdate(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.picker != nil {
		return m.updatePicker(msg)
	}
	switch msg.String() {
	case "q", "ctrl+c":
		m.opts.Renderer.Close()
		return m, tea.Quit
	case "e", "enter":
		if id, ok := m.focusedCell(); ok {
			m.opts.Renderer.ToggleExpanded(id)
			m.refreshContent()
		}
		return m, nil
	case "tab", "n":
		m.moveFocus(1)
		return m, nil
	case "shift+tab", "p":
		m.moveFocus(-1)
		return m, nil
	case "/":
		m.openPicker()
		return m, nil
	case "y":
		m.copyFocusedOutput()
		return m, nil
	case "g":
		m.viewport.GotoTop()
		return m, nil
	case "G":
		m.viewport.GotoBottom()
		return m, nil
	}
	if m.ready {
		cmd := m.viewport.HandleUpdate(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) focusedCell() (cells.CellID, bool) {
	ids := m.opts.Renderer.CellIDs()
	if len(ids) == 0 {
		return "", false
	}
	if m.focus >= len(ids) {
		m.focus = len(ids) - 1
	}
	if m.focus < 0 {
		m.focus = 0
	}
	return ids[m.focus], true
}

func (m *Model) moveFocus(delta int) {
	ids := m.opts.Renderer.CellIDs()
	if len(ids) == 0 {
		return
	}
	m.focus = (m.focus + delta + len(ids)) % len(ids)
	m.scrollToFocus()
}

func (m *Model) scrollToFocus() {
	id, ok := m.focusedCell()
	if !ok {
		return
	}
	if offset, ok := m.cellOffsets[id]; ok && m.ready {
		m.viewport.SetYOffset(offset)
	}
}

func (m *Model) copyFocusedOutput() {
	id, ok := m.focusedCell()
	if !ok {
		return
	}
	text := m.opts.Renderer.OutputText(id)
	if text == "" {
		return
	}
	if err := clipboard.WriteAll(text); err != nil {
		m.log.Warnf("clipboard write failed: %v", err)
	}
}

func (m *Model) anyRunning() bool {
	for _, id := range m.opts.Renderer.CellIDs() {
		if state, ok := m.opts.Renderer.RuntimeState(id); ok && state.Status == cells.StatusRunning {
			return true
		}
	}
	return false
}

// refreshContent 整体重算视口内容，并记录每个 cell 的起始行偏移
// 供焦点跳转使用。
func (m *Model) refreshContent() {
	if !m.ready {
		return
	}
	lines := make([]render.Line, 0, 64)
	offsets := map[cells.CellID]int{}
	for i, id := range m.opts.Renderer.CellIDs() {
		if i > 0 {
			lines = append(lines, render.Line{})
		}
		offsets[id] = len(lines)
		lines = append(lines, m.opts.Renderer.CellLines(id)...)
	}
	m.cellOffsets = offsets
	m.viewport.SetLines(render.LinesToStrings(lines))
}

func (m *Model) View() string {
	if !m.ready {
		return "loading notebook…"
	}
	title := m.opts.Title
	if title == "" {
		title = "nbterm"
	}
	header := titleStyle.Render(title)
	bottom := m.statusLine()
	if m.picker != nil {
		bottom = m.pickerLine()
	}
	return header + "\n" + m.viewport.View() + "\n" + bottom
}
