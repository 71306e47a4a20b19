package cells

import (
	"time"

	"github.com/google/uuid"
)

// CellID 是 cell 的稳定标识，同时充当 UI 状态表的键。
type CellID string

// NewCellID returns a fresh random id for a newly authored cell.
func NewCellID() CellID {
	return CellID(uuid.NewString())
}

// DefaultCellName 是未命名 cell 的占位名。
const DefaultCellName = "_"

// CellConfig 是随 cell 持久化的用户配置。
type CellConfig struct {
	HideCode bool `json:"hide_code"`
	Disabled bool `json:"disabled"`
}

// CellData 是 cell 的静态（用户书写）部分：由编辑层拥有，随笔记本持久化。
// 与运行期派生的 RuntimeState 严格分离。
type CellData struct {
	ID   CellID `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
	// Edited 表示 Code 相对上次运行（LastCodeRun）已被修改。
	Edited      bool   `json:"edited"`
	LastCodeRun string `json:"last_code_run,omitempty"`
	// LastExecutionTime 为 nil 表示尚未运行过。
	LastExecutionTime *time.Duration `json:"last_execution_time,omitempty"`
	Config            CellConfig     `json:"config"`
	// SerializedEditorState 由编辑器组件序列化，空串表示没有保存的状态。
	SerializedEditorState string `json:"serialized_editor_state,omitempty"`
}

// CellOption 逐字段覆盖 NewCell 的默认值。
type CellOption func(*CellData)

func WithName(name string) CellOption {
	return func(c *CellData) { c.Name = name }
}

func WithCode(code string) CellOption {
	return func(c *CellData) { c.Code = code }
}

func WithEdited(edited bool) CellOption {
	return func(c *CellData) { c.Edited = edited }
}

func WithLastCodeRun(code string) CellOption {
	return func(c *CellData) { c.LastCodeRun = code }
}

func WithLastExecutionTime(d time.Duration) CellOption {
	return func(c *CellData) { c.LastExecutionTime = &d }
}

func WithConfig(cfg CellConfig) CellOption {
	return func(c *CellData) { c.Config = cfg }
}

func WithSerializedEditorState(state string) CellOption {
	return func(c *CellData) { c.SerializedEditorState = state }
}

// NewCell 构造一个 CellData。除 ID 外所有字段取默认值：
// 空代码、未编辑、默认名、config = {hide_code:false, disabled:false}。
func NewCell(id CellID, opts ...CellOption) CellData {
	cell := CellData{
		ID:   id,
		Name: DefaultCellName,
	}
	for _, opt := range opts {
		opt(&cell)
	}
	return cell
}
