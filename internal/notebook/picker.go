package notebook

import (
	"github.com/sahilm/fuzzy"

	"nbterm/internal/cells"
)

// PickerMatch 是一次模糊匹配命中。
type PickerMatch struct {
	ID   cells.CellID
	Name string
}

// MatchCells 按名字模糊匹配 cell，供“跳转到 cell”选择器使用。
// 空查询返回全部 cell（笔记本顺序）。
func (r *Renderer) MatchCells(query string) []PickerMatch {
	r.mu.Lock()
	names := make([]string, 0, len(r.order))
	ids := make([]cells.CellID, 0, len(r.order))
	for _, id := range r.order {
		names = append(names, r.views[id].data.Name)
		ids = append(ids, id)
	}
	r.mu.Unlock()

	if query == "" {
		out := make([]PickerMatch, 0, len(ids))
		for i, id := range ids {
			out = append(out, PickerMatch{ID: id, Name: names[i]})
		}
		return out
	}
	matches := fuzzy.Find(query, names)
	out := make([]PickerMatch, 0, len(matches))
	for _, m := range matches {
		out = append(out, PickerMatch{ID: ids[m.Index], Name: names[m.Index]})
	}
	return out
}
