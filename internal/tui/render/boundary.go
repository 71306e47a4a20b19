package render

import (
	"nbterm/internal/logger"
	"nbterm/internal/outputs"
)

// Boundary 是渲染错误的唯一兜底点：契约违反、解析失败与穷尽性
// 破坏都在这里转成一个受限的 fallback 块，隔离到单个输出区域，
// 不让一个 cell 的坏输出拖垮整个视图。确定性的数据错误，不重试。
type Boundary struct {
	registry *Registry
	log      *logger.LogEntry
}

func NewBoundary(registry *Registry) *Boundary {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Boundary{
		registry: registry,
		log:      logger.Named("render"),
	}
}

// Render 分发消息；失败时记录日志并返回 fallback 块，永不返回 nil。
func (b *Boundary) Render(msg outputs.Message, width int) *Block {
	block, err := b.registry.Render(msg, width)
	if err != nil {
		b.log.WithField("mimetype", string(msg.MimeType)).
			WithField("channel", string(msg.Channel)).
			Errorf("output render failed: %v", err)
		return FallbackBlock(err, width)
	}
	return block
}

// FallbackBlock 构造渲染失败的占位视图。
func FallbackBlock(err error, width int) *Block {
	text := "output failed to render"
	if err != nil {
		text += ": " + err.Error()
	}
	lines := make([]Line, 0, 2)
	for _, l := range wrapText(text, width) {
		lines = append(lines, styledLine(l, fallbackStyle))
	}
	return &Block{Kind: KindFallback, Lines: lines}
}
