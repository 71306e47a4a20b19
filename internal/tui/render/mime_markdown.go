package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"nbterm/internal/outputs"
)

const glamourGutter = 2

// markdownRenderer 通过 glamour 渲染 text/markdown。
// glamour 的 TermRenderer 绑定换行宽度，因此按宽度缓存实例。
type markdownRenderer struct {
	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
}

func newMarkdownRenderer() *markdownRenderer {
	return &markdownRenderer{renderers: map[int]*glamour.TermRenderer{}}
}

func (*markdownRenderer) Mimes() []outputs.MimeType {
	return []outputs.MimeType{outputs.MimeMarkdown}
}

func (r *markdownRenderer) Render(msg outputs.Message, width int) (*Block, error) {
	text, err := outputs.TextData(msg)
	if err != nil {
		return nil, err
	}
	tr, err := r.rendererFor(width)
	if err != nil {
		return nil, fmt.Errorf("markdown renderer: %v", err)
	}
	rendered, err := tr.Render(text)
	if err != nil {
		return nil, fmt.Errorf("%w: markdown: %v", outputs.ErrParse, err)
	}
	rendered = strings.Trim(rendered, "\n")
	lines := make([]Line, 0, 8)
	for _, l := range strings.Split(rendered, "\n") {
		// glamour 已经内联了 ANSI 样式，整行作为预渲染 Span 传递。
		lines = append(lines, plainLine(l))
	}
	return &Block{Kind: KindMarkdown, Lines: lines}, nil
}

func (r *markdownRenderer) rendererFor(width int) (*glamour.TermRenderer, error) {
	wrap := width - glamourGutter
	if wrap < 20 {
		wrap = 20
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if tr, ok := r.renderers[wrap]; ok {
		return tr, nil
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil, err
	}
	r.renderers[wrap] = tr
	return tr, nil
}
