package render

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/tidwall/gjson"

	"nbterm/internal/outputs"
)

// jsonMemoLimit 限制解析缓存的条目数，超限整体清空（解析结果很小，
// 简单策略即可避免无关重绘上的重复解析）。
const jsonMemoLimit = 128

// jsonRenderer 将 application/json 渲染为缩进树。
// 载荷允许两种形态：JSON 文本（先解析，坏文本报解析错误）或已解析的
// 结构化值（经规范化走同一棵树）。文本解析按载荷记忆化。
type jsonRenderer struct {
	mu   sync.Mutex
	memo map[string]gjson.Result
}

func newJSONRenderer() *jsonRenderer {
	return &jsonRenderer{memo: map[string]gjson.Result{}}
}

func (*jsonRenderer) Mimes() []outputs.MimeType {
	return []outputs.MimeType{outputs.MimeJSON}
}

func (r *jsonRenderer) Render(msg outputs.Message, width int) (*Block, error) {
	parsed, err := r.parse(msg)
	if err != nil {
		return nil, err
	}
	lines := make([]Line, 0, 16)
	jsonTreeLines(parsed, "", 0, &lines)
	return &Block{Kind: KindJSONTree, Lines: lines}, nil
}

func (r *jsonRenderer) parse(msg outputs.Message) (gjson.Result, error) {
	switch data := msg.Data.(type) {
	case string:
		return r.parseText(data)
	case json.RawMessage:
		return r.parseText(string(data))
	default:
		// 结构化值：经标准编码规范化（键序确定），走同一棵树。
		raw, err := json.Marshal(data)
		if err != nil {
			return gjson.Result{}, fmt.Errorf("%w: %s carries non-JSON value %T", outputs.ErrShape, msg.MimeType, msg.Data)
		}
		return gjson.ParseBytes(raw), nil
	}
}

func (r *jsonRenderer) parseText(text string) (gjson.Result, error) {
	r.mu.Lock()
	if cached, ok := r.memo[text]; ok {
		r.mu.Unlock()
		return cached, nil
	}
	r.mu.Unlock()

	if !gjson.Valid(text) {
		return gjson.Result{}, fmt.Errorf("%w: invalid json text", outputs.ErrParse)
	}
	parsed := gjson.Parse(text)

	r.mu.Lock()
	if len(r.memo) >= jsonMemoLimit {
		r.memo = map[string]gjson.Result{}
	}
	r.memo[text] = parsed
	r.mu.Unlock()
	return parsed, nil
}

// jsonTreeLines 深度优先展开 JSON 值。容器节点一行头部（含子项数），
// 叶子节点按类型上色。
func jsonTreeLines(v gjson.Result, key string, depth int, out *[]Line) {
	indent := Span{Text: indentOf(depth)}
	label := []Span{indent}
	if key != "" {
		label = append(label, Span{Text: key, Style: keyStyle}, Span{Text: ": "})
	}

	switch {
	case v.IsObject():
		n := 0
		v.ForEach(func(_, _ gjson.Result) bool { n++; return true })
		*out = append(*out, Line{Spans: append(label, Span{Text: fmt.Sprintf("{%d}", n), Style: dimStyle})})
		v.ForEach(func(k, child gjson.Result) bool {
			jsonTreeLines(child, k.String(), depth+1, out)
			return true
		})
	case v.IsArray():
		items := v.Array()
		*out = append(*out, Line{Spans: append(label, Span{Text: fmt.Sprintf("[%d]", len(items)), Style: dimStyle})})
		for i, child := range items {
			jsonTreeLines(child, fmt.Sprintf("%d", i), depth+1, out)
		}
	default:
		*out = append(*out, Line{Spans: append(label, jsonLeafSpan(v))})
	}
}

func jsonLeafSpan(v gjson.Result) Span {
	switch v.Type {
	case gjson.String:
		return Span{Text: fmt.Sprintf("%q", v.String()), Style: stringStyle}
	case gjson.Number:
		return Span{Text: v.Raw, Style: numberStyle}
	case gjson.True, gjson.False:
		return Span{Text: v.Raw, Style: numberStyle}
	case gjson.Null:
		return Span{Text: "null", Style: dimStyle}
	default:
		return Span{Text: v.Raw}
	}
}

func indentOf(depth int) string {
	const step = "  "
	s := ""
	for i := 0; i < depth; i++ {
		s += step
	}
	return s
}
