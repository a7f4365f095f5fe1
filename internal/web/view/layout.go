package view

import (
	"github.com/JonMunkholm/ticketdesk/internal/settings"
	"github.com/a-h/templ"
)

// Navigation sections.
const (
	NavDashboard = "dashboard"
	NavSettings  = "settings"
)

// Page carries what every page needs from the request and the settings.
type Page struct {
	Title  string
	Theme  string // resolved: light or dark
	Lang   string
	User   string
	Active string
	Flash  string
	T      settings.Translator
}

// Layout wraps body in the document shell: header, navigation and user
// badge.
func Layout(p Page, body templ.Component) templ.Component {
	return component(func(h *html) {
		h.raw(`<!DOCTYPE html><html lang="`)
		h.text(p.Lang)
		h.raw(`"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(p.Title)
		h.raw(` | `)
		h.text(p.T.Text("app.title", "Ticket Desk"))
		h.raw(`</title><link rel="stylesheet" href="/static/desk.css"></head>`)

		h.raw(`<body class="`)
		if p.Theme == settings.ThemeDark {
			h.raw(`dark-theme`)
		}
		h.raw(`"><aside class="sidebar"><div class="brand">`)
		h.text(p.T.Text("app.title", "Ticket Desk"))
		h.raw(`</div><nav>`)
		navLink(h, "/", p.T.Text("nav.dashboard", "Dashboard"), p.Active == NavDashboard)
		navLink(h, "/settings", p.T.Text("nav.settings", "Settings"), p.Active == NavSettings)
		h.raw(`</nav></aside>`)

		h.raw(`<main><header class="topbar"><div class="user-profile"><span class="avatar">`)
		h.text(settings.Initials(p.User))
		h.raw(`</span><span>`)
		h.text(p.User)
		h.raw(`</span></div></header>`)

		if p.Flash != "" {
			h.raw(`<div class="flash" role="status">`)
			h.text(p.Flash)
			h.raw(`</div>`)
		}

		h.render(body)
		h.raw(`</main></body></html>`)
	})
}

func navLink(h *html, href, label string, active bool) {
	h.raw(`<a href="`)
	h.text(href)
	h.raw(`"`)
	if active {
		h.raw(` class="active"`)
	}
	h.raw(`>`)
	h.text(label)
	h.raw(`</a>`)
}

// Message renders a standalone notice, used for stubs and error pages.
func Message(p Page, heading, text, code string) templ.Component {
	return Layout(p, component(func(h *html) {
		h.raw(`<section class="notice"><h1>`)
		h.text(heading)
		h.raw(`</h1><p>`)
		h.text(text)
		h.raw(`</p>`)
		if code != "" {
			h.raw(`<p class="code">`)
			h.text(p.T.Text("error.code", "Code"))
			h.raw(`: `)
			h.text(code)
			h.raw(`</p>`)
		}
		h.raw(`<a class="btn" href="/">`)
		h.text(p.T.Text("detail.back", "Back to list"))
		h.raw(`</a></section>`)
	}))
}
