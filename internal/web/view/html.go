// Package view renders the desk's HTML pages as templ components.
package view

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// html accumulates the first write error so components can emit markup
// without checking every call.
type html struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *html) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text writes s escaped for element content and attribute values.
func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *html) render(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// component wraps a render function into a templ.Component.
func component(fn func(h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}

func itoa(n int) string { return strconv.Itoa(n) }

// PriorityClass returns the CSS class of a priority marker.
// Unknown priorities share the low styling.
func PriorityClass(priority string) string {
	switch priority {
	case "High":
		return "prio-high"
	case "Medium":
		return "prio-medium"
	default:
		return "prio-low"
	}
}

// StatusClass returns the CSS class of a status badge, e.g. "In Progress"
// -> "status-in-progress".
func StatusClass(status string) string {
	return "status-" + strings.Join(strings.Fields(strings.ToLower(status)), "-")
}
