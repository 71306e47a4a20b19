package render

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// NotebookViewport 包装 bubbles viewport：内容整体重绘时做差分短路，
// 贴底状态下自动跟随新输出。
type NotebookViewport struct {
	viewport.Model
	lastLines []string
}

func NewNotebookViewport(width, height int) NotebookViewport {
	return NotebookViewport{Model: viewport.New(width, height)}
}

// Resize 更新宽高；宽度变化使缓存失效，强制全量重设内容。
func (v *NotebookViewport) Resize(width, height int) {
	if v == nil {
		return
	}
	if v.Width != width {
		v.lastLines = nil
	}
	v.Width = width
	v.Height = height
}

// HandleUpdate 代理 bubbles 的 Update，保持滚动状态。
func (v *NotebookViewport) HandleUpdate(msg tea.Msg) tea.Cmd {
	if v == nil {
		return nil
	}
	var cmd tea.Cmd
	v.Model, cmd = v.Model.Update(msg)
	return cmd
}

// SetLines 更新内容；与上次相同则跳过，贴底时跟随到底部。
func (v *NotebookViewport) SetLines(lines []string) {
	if v == nil {
		return
	}
	if slices.Equal(lines, v.lastLines) {
		return
	}
	stickToBottom := v.AtBottom()
	v.lastLines = append([]string(nil), lines...)
	v.SetContent(strings.Join(lines, "\n"))
	if stickToBottom {
		v.GotoBottom()
	}
}
