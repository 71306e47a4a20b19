package events

import (
	"time"

	"nbterm/internal/cells"
	"nbterm/internal/outputs"
)

// EventType 描述内核会话事件流中分发的事件类型。
type EventType string

const (
	// EventCellRegistered 表示一个 cell 被注册进会话（携带静态定义）。
	EventCellRegistered EventType = "cell.registered"
	// EventCellRemoved 表示 cell 被删除，其全部状态作废。
	EventCellRemoved EventType = "cell.removed"
	// EventCellOutput 表示 cell 的主输出被整体替换。
	EventCellOutput EventType = "cell.output"
	// EventCellConsole 表示追加一条控制台输出（或补一个 stdin 应答）。
	EventCellConsole EventType = "cell.console"
	// EventCellStatus 表示 cell 执行状态/标志位变更。
	EventCellStatus EventType = "cell.status"
	// EventRunTiming 在一次运行结束时上报起止时间。
	EventRunTiming EventType = "cell.run-timing"
	// EventSessionReset 表示内核会话重置，所有运行期状态作废。
	EventSessionReset EventType = "session.reset"
)

// Event 是会话事件流中传递的唯一消息格式。
// Payload 的具体结构由 Type 决定。
type Event struct {
	Type      EventType
	CellID    cells.CellID
	Timestamp time.Time
	Payload   any
}

// CellRegistered 是 EventCellRegistered 的载荷。
type CellRegistered struct {
	Cell cells.CellData
}

// CellOutput 是 EventCellOutput 的载荷。
type CellOutput struct {
	Output outputs.Message
}

// CellConsole 是 EventCellConsole 的载荷。
// Response 非空时表示这是对此前 stdin 输出的后到应答，追加到
// 最近一条 stdin 控制台输出上。
type CellConsole struct {
	Output   outputs.Message
	Response string
}

// CellStatus 是 EventCellStatus 的载荷。指针字段为 nil 表示不变。
type CellStatus struct {
	Status         *cells.RunStatus
	StaleInputs    *bool
	Interrupted    *bool
	Stopped        *bool
	Errored        *bool
	DebuggerActive *bool
}

// RunTiming 是 EventRunTiming 的载荷。
type RunTiming struct {
	Start   time.Time
	Elapsed time.Duration
}
