package render

import (
	"fmt"

	"nbterm/internal/outputs"
)

// OutputRenderer 将一类 MimeType 的消息渲染为终端块。
// 渲染必须是纯函数：相同输入重复调用产生结构相同的块。
type OutputRenderer interface {
	// Mimes 返回该渲染器负责的标签（媒体类渲染器覆盖多个子类型）。
	Mimes() []outputs.MimeType
	Render(msg outputs.Message, width int) (*Block, error)
}

// Registry 按 MimeType 分发输出消息。封闭枚举中的每个标签都必须
// 注册对应的渲染器；查不到即穷尽性被破坏，以 ErrUnhandledMime 失败。
type Registry struct {
	renderers map[outputs.MimeType]OutputRenderer
}

// NewRegistry 创建带全部内建渲染器的分发表。
func NewRegistry() *Registry {
	r := &Registry{renderers: map[outputs.MimeType]OutputRenderer{}}
	for _, rr := range defaultOutputRenderers() {
		r.Register(rr)
	}
	return r
}

// Register 注册或覆盖渲染器。
func (r *Registry) Register(renderer OutputRenderer) {
	if renderer == nil {
		return
	}
	for _, mime := range renderer.Mimes() {
		r.renderers[mime] = renderer
	}
}

// Render 将消息分发给匹配的渲染器。
// 未注册的标签返回包装 ErrUnhandledMime 的错误；载荷形状不符返回
// 包装 ErrShape 的错误。两者都属于编程错误信号，由调用方的渲染
// 边界兜底，这里不做本地恢复。
func (r *Registry) Render(msg outputs.Message, width int) (*Block, error) {
	renderer := r.renderers[msg.MimeType]
	if renderer == nil {
		return nil, fmt.Errorf("%w: %q", outputs.ErrUnhandledMime, msg.MimeType)
	}
	return renderer.Render(msg, width)
}

func defaultOutputRenderers() []OutputRenderer {
	return []OutputRenderer{
		plainRenderer{},
		htmlRenderer{},
		newJSONRenderer(),
		csvRenderer{},
		newMarkdownRenderer(),
		mediaRenderer{},
		errorRenderer{},
	}
}
