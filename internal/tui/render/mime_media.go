package render

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"nbterm/internal/outputs"
)

// mediaRenderer 覆盖全部图片/视频子类型。终端内不解码媒体内容，
// 渲染为指向数据源的占位块（data URI 或 URL），无替代文本。
type mediaRenderer struct{}

func (mediaRenderer) Mimes() []outputs.MimeType {
	return []outputs.MimeType{
		outputs.MimePNG, outputs.MimeJPEG, outputs.MimeGIF, outputs.MimeSVG,
		outputs.MimeMP4, outputs.MimeMPEG,
	}
}

func (m mediaRenderer) Render(msg outputs.Message, width int) (*Block, error) {
	src, err := outputs.TextData(msg)
	if err != nil {
		return nil, err
	}
	kind := KindImage
	label := "image"
	if msg.MimeType.IsVideo() {
		kind = KindVideo
		label = "video"
	}
	display := describeMediaSource(src)
	maxSrc := width - runewidth.StringWidth(label) - 6
	if maxSrc > 8 {
		display = runewidth.Truncate(display, maxSrc, "…")
	}
	line := Line{Spans: []Span{
		{Text: "⬚ ", Style: mediaStyle},
		{Text: label, Style: mediaStyle},
		{Text: " · ", Style: dimStyle},
		{Text: display, Style: dimStyle},
	}}
	return &Block{Kind: kind, Lines: []Line{line}}, nil
}

// describeMediaSource 对 data URI 只保留媒体类型与编码长度，URL 原样。
func describeMediaSource(src string) string {
	if !strings.HasPrefix(src, "data:") {
		return src
	}
	head, payload, ok := strings.Cut(src, ",")
	if !ok {
		return src
	}
	return head + ", " + sizeOf(len(payload))
}

func sizeOf(n int) string {
	switch {
	case n >= 1<<20:
		return strconv.Itoa(n>>20) + " MiB"
	case n >= 1<<10:
		return strconv.Itoa(n>>10) + " KiB"
	default:
		return strconv.Itoa(n) + " B"
	}
}
