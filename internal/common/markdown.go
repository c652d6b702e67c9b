package common

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
)

// RenderMarkdown converts markdown source to HTML. External links open in a
// new tab.
func RenderMarkdown(md string) string {
	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	opts := html.RendererOptions{Flags: htmlFlags}
	renderer := html.NewRenderer(opts)

	return string(markdown.ToHTML([]byte(md), nil, renderer))
}
