package outputs

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MimeType 是内核输出使用的封闭媒体类型枚举。
// 新增类型时必须同步扩展 render 包中的分发表，否则分发会以
// ErrUnhandledMime 失败（见 render.Registry）。
type MimeType string

const (
	MimeHTML     MimeType = "text/html"
	MimePlain    MimeType = "text/plain"
	MimeJSON     MimeType = "application/json"
	MimePNG      MimeType = "image/png"
	MimeJPEG     MimeType = "image/jpeg"
	MimeGIF      MimeType = "image/gif"
	MimeSVG      MimeType = "image/svg+xml"
	MimeMP4      MimeType = "video/mp4"
	MimeMPEG     MimeType = "video/mpeg"
	MimeError    MimeType = "application/vnd.marimo+error"
	MimeCSV      MimeType = "text/csv"
	MimeMarkdown MimeType = "text/markdown"
)

// Known reports whether the tag belongs to the closed enumeration.
func (m MimeType) Known() bool {
	switch m {
	case MimeHTML, MimePlain, MimeJSON, MimePNG, MimeJPEG, MimeGIF, MimeSVG,
		MimeMP4, MimeMPEG, MimeError, MimeCSV, MimeMarkdown:
		return true
	default:
		return false
	}
}

// IsImage reports whether the tag is an image subtype.
func (m MimeType) IsImage() bool {
	return strings.HasPrefix(string(m), "image/")
}

// IsVideo reports whether the tag is a video subtype.
func (m MimeType) IsVideo() bool {
	return strings.HasPrefix(string(m), "video/")
}

// Channel 标记一条输出的来源/用途，透传给部分渲染器用于样式区分。
type Channel string

const (
	ChannelOutput Channel = "output"
	ChannelStdout Channel = "stdout"
	ChannelStderr Channel = "stderr"
	ChannelStdin  Channel = "stdin"
	ChannelError  Channel = "marimo-error"
	ChannelMedia  Channel = "media"
)

// Message 是内核发往前端的一条输出。Data 的具体形状由 MimeType 决定：
// 文本/媒体类标签为 string，application/json 为 string 或已解析的结构化值,
// 错误标签为有序的 ErrorRecord 序列（或其 JSON 编码）。
//
// 形状与标签不匹配属于契约违反，由 TextData/ErrorData 在分发时报告。
type Message struct {
	MimeType  MimeType  `json:"mimetype"`
	Channel   Channel   `json:"channel"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// ErrorRecord 是错误输出中的单条结构化记录。
type ErrorRecord struct {
	Type      string   `json:"type"`
	Msg       string   `json:"msg"`
	Traceback []string `json:"traceback,omitempty"`
}

// ExceptionError builds the record shape the kernel uses for raised exceptions.
func ExceptionError(excType, msg string, traceback []string) ErrorRecord {
	return ErrorRecord{Type: excType, Msg: msg, Traceback: traceback}
}

// InterruptionError builds the record emitted when a run is interrupted.
func InterruptionError() ErrorRecord {
	return ErrorRecord{Type: "interruption", Msg: "execution was interrupted"}
}

// TextData 断言 Data 是字符串载荷。失败返回包装 ErrShape 的契约违反错误，
// 调用方不应在本地恢复（由渲染边界兜底）。
func TextData(msg Message) (string, error) {
	s, ok := msg.Data.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s expects string data, got %T", ErrShape, msg.MimeType, msg.Data)
	}
	return s, nil
}

// ErrorData 断言 Data 是错误记录序列。接受三种编码：已解码的
// []ErrorRecord、[]any（逐条二次解码）、或整体的 JSON 文本。
func ErrorData(msg Message) ([]ErrorRecord, error) {
	switch v := msg.Data.(type) {
	case []ErrorRecord:
		return v, nil
	case []any:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s carries undecodable records: %v", ErrShape, msg.MimeType, err)
		}
		return decodeErrorRecords(msg.MimeType, raw)
	case string:
		return decodeErrorRecords(msg.MimeType, []byte(v))
	case json.RawMessage:
		return decodeErrorRecords(msg.MimeType, v)
	default:
		return nil, fmt.Errorf("%w: %s expects error records, got %T", ErrShape, msg.MimeType, msg.Data)
	}
}

func decodeErrorRecords(mime MimeType, raw []byte) ([]ErrorRecord, error) {
	var records []ErrorRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %s expects a sequence of error records: %v", ErrShape, mime, err)
	}
	return records, nil
}
