package view

import (
	"bytes"
	"sync"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// The goldmark instance is configured once and safe to share.
var (
	markdownOnce sync.Once
	markdownMD   goldmark.Markdown
)

func markdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownMD = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		)
	})
	return markdownMD
}

// RenderMarkdown converts a ticket description to HTML. Raw HTML in the
// source is dropped by the renderer.
func RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown().Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Markdown renders src as a preview block. On conversion failure the
// source is shown escaped.
func Markdown(src string) templ.Component {
	return component(func(h *html) {
		if src == "" {
			return
		}
		out, err := RenderMarkdown(src)
		h.raw(`<div class="markdown">`)
		if err != nil {
			h.raw("<pre>")
			h.text(src)
			h.raw("</pre>")
		} else {
			h.raw(out)
		}
		h.raw(`</div>`)
	})
}
