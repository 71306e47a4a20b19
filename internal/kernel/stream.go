package kernel

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"nbterm/internal/cells"
	"nbterm/internal/events"
	"nbterm/internal/logger"
	"nbterm/internal/outputs"
)

// maxLineBytes 允许内核发送较大的输出（data URI 图片等）。
const maxLineBytes = 8 << 20

// Stream 把内核会话的 JSONL 消息流解码成会话事件并发布到 Bus。
// 执行引擎本身在进程外，这里只是传输适配。
type Stream struct {
	bus *events.Bus
	log *logger.LogEntry
}

func NewStream(bus *events.Bus) *Stream {
	return &Stream{bus: bus, log: logger.Named("kernel")}
}

// Run 逐行解码 r 直到 EOF 或 ctx 取消。坏行记日志后跳过，
// 单条消息不拖垮整个会话。
func (s *Stream) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64<<10), maxLineBytes)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var msg wireMessage
		if err := json.Unmarshal([]byte(line), &msg); err != nil {
			s.log.Warnf("skipping undecodable kernel message: %v", err)
			continue
		}
		for _, evt := range s.translate(msg) {
			s.bus.Publish(evt)
		}
	}
	return scanner.Err()
}

// wireMessage 是内核侧一条 JSONL 消息。一条 cell-op 可能同时携带
// 输出、控制台输出与状态变化，翻译成多个事件。
type wireMessage struct {
	Op     string `json:"op"`
	CellID string `json:"cell_id,omitempty"`

	// register-cell
	Name     string `json:"name,omitempty"`
	Code     string `json:"code,omitempty"`
	HideCode bool   `json:"hide_code,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`

	// cell-op
	Output         *wireOutput `json:"output,omitempty"`
	Console        *wireOutput `json:"console,omitempty"`
	Response       string      `json:"response,omitempty"`
	Status         string      `json:"status,omitempty"`
	StaleInputs    *bool       `json:"stale_inputs,omitempty"`
	Interrupted    *bool       `json:"interrupted,omitempty"`
	Stopped        *bool       `json:"stopped,omitempty"`
	Errored        *bool       `json:"errored,omitempty"`
	DebuggerActive *bool       `json:"debugger_active,omitempty"`

	// run-timing
	RunStartMs int64 `json:"run_start_ms,omitempty"`
	ElapsedMs  int64 `json:"elapsed_ms,omitempty"`

	TimestampMs int64 `json:"timestamp_ms,omitempty"`
}

type wireOutput struct {
	MimeType string          `json:"mimetype"`
	Channel  string          `json:"channel"`
	Data     json.RawMessage `json:"data"`
}

func (s *Stream) translate(msg wireMessage) []events.Event {
	ts := time.Now()
	if msg.TimestampMs > 0 {
		ts = time.UnixMilli(msg.TimestampMs)
	}
	id := cells.CellID(msg.CellID)

	switch msg.Op {
	case "register-cell":
		cell := cells.NewCell(id,
			cells.WithName(nonEmpty(msg.Name, cells.DefaultCellName)),
			cells.WithCode(msg.Code),
			cells.WithConfig(cells.CellConfig{HideCode: msg.HideCode, Disabled: msg.Disabled}),
		)
		return []events.Event{{
			Type: events.EventCellRegistered, CellID: id, Timestamp: ts,
			Payload: events.CellRegistered{Cell: cell},
		}}
	case "remove-cell":
		return []events.Event{{Type: events.EventCellRemoved, CellID: id, Timestamp: ts}}
	case "reset":
		return []events.Event{{Type: events.EventSessionReset, Timestamp: ts}}
	case "run-timing":
		return []events.Event{{
			Type: events.EventRunTiming, CellID: id, Timestamp: ts,
			Payload: events.RunTiming{
				Start:   time.UnixMilli(msg.RunStartMs),
				Elapsed: time.Duration(msg.ElapsedMs) * time.Millisecond,
			},
		}}
	case "cell-op":
		return s.translateCellOp(msg, id, ts)
	default:
		s.log.WithField("op", msg.Op).Warn("unknown kernel op")
		return nil
	}
}

func (s *Stream) translateCellOp(msg wireMessage, id cells.CellID, ts time.Time) []events.Event {
	out := make([]events.Event, 0, 4)
	if msg.Output != nil {
		decoded, err := decodeOutput(*msg.Output, ts)
		if err != nil {
			s.log.Warnf("dropping cell output: %v", err)
		} else {
			out = append(out, events.Event{
				Type: events.EventCellOutput, CellID: id, Timestamp: ts,
				Payload: events.CellOutput{Output: decoded},
			})
		}
	}
	if msg.Console != nil {
		decoded, err := decodeOutput(*msg.Console, ts)
		if err != nil {
			s.log.Warnf("dropping console output: %v", err)
		} else {
			out = append(out, events.Event{
				Type: events.EventCellConsole, CellID: id, Timestamp: ts,
				Payload: events.CellConsole{Output: decoded},
			})
		}
	}
	// 应答独立成事件：同一条 cell-op 可以先带一条 stdin 控制台输出，
	// 应答随后补到该条目上，两者都不能丢。
	if msg.Response != "" {
		out = append(out, events.Event{
			Type: events.EventCellConsole, CellID: id, Timestamp: ts,
			Payload: events.CellConsole{Response: msg.Response},
		})
	}
	status := events.CellStatus{
		StaleInputs:    msg.StaleInputs,
		Interrupted:    msg.Interrupted,
		Stopped:        msg.Stopped,
		Errored:        msg.Errored,
		DebuggerActive: msg.DebuggerActive,
	}
	hasStatus := msg.StaleInputs != nil || msg.Interrupted != nil || msg.Stopped != nil ||
		msg.Errored != nil || msg.DebuggerActive != nil
	if msg.Status != "" {
		parsed := cells.RunStatus(msg.Status)
		if parsed.Valid() {
			status.Status = &parsed
			hasStatus = true
		} else {
			s.log.WithField("status", msg.Status).Warn("unknown cell status")
		}
	}
	if hasStatus {
		out = append(out, events.Event{
			Type: events.EventCellStatus, CellID: id, Timestamp: ts,
			Payload: status,
		})
	}
	return out
}

// decodeOutput 把 wire 输出转成 Message。data 保持 JSON 值的原生形态：
// 字符串载荷解码为 string，结构化载荷（application/json 预解析、错误
// 记录序列）解码为 any，后续由各渲染器做形状断言。
func decodeOutput(w wireOutput, ts time.Time) (outputs.Message, error) {
	mime := outputs.MimeType(w.MimeType)
	if !mime.Known() {
		return outputs.Message{}, fmt.Errorf("unknown mimetype %q", w.MimeType)
	}
	var data any
	if len(w.Data) > 0 {
		if err := json.Unmarshal(w.Data, &data); err != nil {
			return outputs.Message{}, fmt.Errorf("undecodable data for %s: %v", mime, err)
		}
	}
	channel := outputs.Channel(w.Channel)
	if channel == "" {
		channel = outputs.ChannelOutput
	}
	return outputs.Message{MimeType: mime, Channel: channel, Data: data, Timestamp: ts}, nil
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
