package cells

import (
	"time"

	"nbterm/internal/outputs"
)

// RunStatus 枚举了 cell 的执行状态。
type RunStatus string

const (
	// StatusIdle 表示空闲（默认态）。
	StatusIdle RunStatus = "idle"
	// StatusQueued 表示已进入内核队列等待执行。
	StatusQueued RunStatus = "queued"
	// StatusRunning 表示正在执行。
	StatusRunning RunStatus = "running"
	// StatusDisabled 表示因自身或祖先被禁用而不会执行。
	StatusDisabled RunStatus = "disabled-transitively"
)

func (s RunStatus) String() string { return string(s) }

// Valid reports whether the status is one of the known states.
func (s RunStatus) Valid() bool {
	switch s {
	case StatusIdle, StatusQueued, StatusRunning, StatusDisabled:
		return true
	default:
		return false
	}
}

// OutlineItem 是输出目录（table of contents）中的一项。
type OutlineItem struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// Outline 汇总一个 cell 输出的目录结构。
type Outline struct {
	Items []OutlineItem `json:"items"`
}

// ConsoleOutput 是 cell 运行期间产生的一条控制台输出。
// Response 是 stdin 请求的后到应答，仅存在于会话内，从不持久化。
type ConsoleOutput struct {
	outputs.Message
	Response string `json:"-"`
}

// RuntimeState 是 cell 的运行期派生状态：由执行层拥有，在每个执行周期
// 被整体覆盖，cell 移除或会话重置时丢弃。不持久化。
type RuntimeState struct {
	Output         *outputs.Message
	Outline        *Outline
	ConsoleOutputs []ConsoleOutput
	Status         RunStatus
	StaleInputs    bool
	Interrupted    bool
	Stopped        bool
	Errored        bool
	DebuggerActive bool
	// RunStartTimestamp 为零值表示本周期尚未开始运行。
	RunStartTimestamp time.Time
	// RunElapsedTime 为 nil 表示本周期还没有完成的运行。
	RunElapsedTime *time.Duration
}

// RuntimeDefaults 承载创建运行期状态所需的外部配置。
// auto_instantiate 显式传入而不是读取进程级全局状态。
type RuntimeDefaults struct {
	AutoInstantiate bool
}

// RuntimeOption 逐字段覆盖 NewRuntimeState 的默认值。
type RuntimeOption func(*RuntimeState)

func WithOutput(msg *outputs.Message) RuntimeOption {
	return func(st *RuntimeState) { st.Output = msg }
}

func WithOutline(outline *Outline) RuntimeOption {
	return func(st *RuntimeState) { st.Outline = outline }
}

func WithConsoleOutputs(outs []ConsoleOutput) RuntimeOption {
	return func(st *RuntimeState) { st.ConsoleOutputs = outs }
}

func WithStatus(status RunStatus) RuntimeOption {
	return func(st *RuntimeState) { st.Status = status }
}

func WithStaleInputs(stale bool) RuntimeOption {
	return func(st *RuntimeState) { st.StaleInputs = stale }
}

func WithInterrupted(interrupted bool) RuntimeOption {
	return func(st *RuntimeState) { st.Interrupted = interrupted }
}

func WithErrored(errored bool) RuntimeOption {
	return func(st *RuntimeState) { st.Errored = errored }
}

func WithRunTiming(start time.Time, elapsed time.Duration) RuntimeOption {
	return func(st *RuntimeState) {
		st.RunStartTimestamp = start
		st.RunElapsedTime = &elapsed
	}
}

// NewRuntimeState 构造运行期状态。未自动实例化的笔记本里，新注册的
// cell 输入即为 stale：StaleInputs = !AutoInstantiate。其余字段默认
// 空/idle/false。
func NewRuntimeState(defaults RuntimeDefaults, opts ...RuntimeOption) RuntimeState {
	st := RuntimeState{
		Status:         StatusIdle,
		ConsoleOutputs: []ConsoleOutput{},
		StaleInputs:    !defaults.AutoInstantiate,
	}
	for _, opt := range opts {
		opt(&st)
	}
	return st
}
