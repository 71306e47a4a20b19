package notebook

import (
	"sync"

	"nbterm/internal/cells"
)

// UIState 持有纯界面侧的 per-cell 状态（目前只有展开标志），
// 由外层拥有、按 cell 标识索引。与运行期状态分离：会话重置
// 不影响用户手动展开的偏好，cell 删除时才清理。
type UIState struct {
	mu       sync.Mutex
	expanded map[cells.CellID]bool
}

func NewUIState() *UIState {
	return &UIState{expanded: map[cells.CellID]bool{}}
}

// Expanded 返回 cell 当前的展开标志。
func (s *UIState) Expanded(id cells.CellID) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded[id]
}

// Toggle 翻转展开标志并返回新值。
func (s *UIState) Toggle(id cells.CellID) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expanded[id] = !s.expanded[id]
	return s.expanded[id]
}

// SetExpanded 显式设置展开标志。
func (s *UIState) SetExpanded(id cells.CellID, expanded bool) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expanded[id] = expanded
}

// Forget 在 cell 被删除时清理其界面状态。
func (s *UIState) Forget(id cells.CellID) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.expanded, id)
}
