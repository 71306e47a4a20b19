package outputs

import "errors"

// 两类确定性的数据错误；重试无意义，由渲染边界统一兜底展示。
var (
	// ErrShape 表示载荷形状与声明的 MimeType 不匹配（契约违反）。
	ErrShape = errors.New("output data shape mismatch")
	// ErrUnhandledMime 表示枚举中出现了没有对应渲染分支的标签
	//（穷尽性被破坏），必须显式失败而不是静默丢弃。
	ErrUnhandledMime = errors.New("unhandled output mimetype")
	// ErrParse 表示文本载荷无法按声明的格式解析（例如坏 JSON/CSV）。
	ErrParse = errors.New("malformed output payload")
)
