package render

// Kind 标识一个输出块由哪类渲染器产生。
type Kind string

const (
	KindText      Kind = "text"
	KindHTML      Kind = "html"
	KindJSONTree  Kind = "json-tree"
	KindTable     Kind = "table"
	KindMarkdown  Kind = "markdown"
	KindImage     Kind = "image"
	KindVideo     Kind = "video"
	KindErrorList Kind = "error-list"
	// KindFallback 仅由渲染边界在下游渲染失败时产生。
	KindFallback Kind = "fallback"
)

// Block 是一条输出消息渲染后的终端视图：类型标记加样式化的行。
type Block struct {
	Kind  Kind
	Lines []Line
}

// Text 返回块的纯文本内容。
func (b *Block) Text() string {
	if b == nil {
		return ""
	}
	return LinesToText(b.Lines)
}
