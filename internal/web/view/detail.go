package view

import (
	"slices"

	"github.com/JonMunkholm/ticketdesk/internal/ticket"
	"github.com/a-h/templ"
)

// DetailData is the ticket editor model.
type DetailData struct {
	Page
	Ticket   ticket.Ticket
	Statuses []string
}

var priorities = []string{ticket.PriorityHigh, ticket.PriorityMedium, ticket.PriorityLow}

// Detail renders the editor of one ticket. Saving posts back to the same
// URL and downloads the updated ticket file.
func Detail(d DetailData) templ.Component {
	return Layout(d.Page, component(func(h *html) {
		t, tk := d.T, d.Ticket

		h.raw(`<section id="detailView"><div class="toolbar"><a class="btn" href="/">`)
		h.text(t.Text("detail.back", "Back to list"))
		h.raw(`</a><h1>`)
		h.text(tk.Title)
		h.raw(` <span class="mono muted">#`)
		h.text(tk.ID)
		h.raw(`</span></h1></div>`)

		h.raw(`<form method="post" action="`)
		h.text(TicketURL(tk.ID))
		h.raw(`" class="detail">`)

		h.raw(`<label for="detailDesc">`)
		h.text(t.Text("detail.description", "Description"))
		h.raw(`</label><textarea id="detailDesc" name="description" rows="8">`)
		h.text(tk.Description)
		h.raw(`</textarea>`)

		h.raw(`<div class="grid">`)
		selectField(h, "detailStatus", "status", t.Text("col.status", "Status"), withCurrent(d.Statuses, tk.Status), tk.Status)
		selectField(h, "detailPriority", "priority", t.Text("col.priority", "Priority"), withCurrent(priorities, tk.Priority), tk.Priority)
		inputField(h, "detailAssigned", "assignedTo", t.Text("col.assignedTo", "Assigned to"), tk.AssignedTo, false)
		inputField(h, "detailRequester", "", t.Text("col.requester", "Requester"), tk.Requester, true)
		inputField(h, "detailDate", "", t.Text("col.date", "Date"), tk.Date, true)

		h.raw(`<div class="field"><label for="detailProgress">`)
		h.text(t.Text("col.progress", "Progress"))
		h.raw(`</label><input id="detailProgress" name="progress" type="range" min="0" max="100" value="`)
		h.text(itoa(tk.ProgressPercent()))
		h.raw(`" oninput="document.getElementById('detailProgressValue').textContent=this.value+'%'">`)
		h.raw(`<span id="detailProgressValue">`)
		h.text(itoa(tk.ProgressPercent()))
		h.raw(`%</span></div></div>`)

		h.raw(`<button id="btnSave" class="btn primary" type="submit">`)
		h.text(t.Text("detail.save", "Save and download"))
		h.raw(`</button></form>`)

		if tk.Description != "" {
			h.raw(`<h2>`)
			h.text(t.Text("detail.preview", "Preview"))
			h.raw(`</h2>`)
			h.render(Markdown(tk.Description))
		}
		h.raw(`</section>`)
	}))
}

// withCurrent returns options with current appended when it is missing,
// so an unusual stored value is still selectable.
func withCurrent(options []string, current string) []string {
	if current == "" || slices.Contains(options, current) {
		return options
	}
	return append(slices.Clone(options), current)
}

func selectField(h *html, id, name, label string, options []string, selected string) {
	h.raw(`<div class="field"><label for="`)
	h.text(id)
	h.raw(`">`)
	h.text(label)
	h.raw(`</label><select id="`)
	h.text(id)
	h.raw(`" name="`)
	h.text(name)
	h.raw(`">`)
	for _, o := range options {
		option(h, o, o, o == selected)
	}
	h.raw(`</select></div>`)
}

func inputField(h *html, id, name, label, value string, readonly bool) {
	h.raw(`<div class="field"><label for="`)
	h.text(id)
	h.raw(`">`)
	h.text(label)
	h.raw(`</label><input id="`)
	h.text(id)
	h.raw(`"`)
	if name != "" {
		h.raw(` name="`)
		h.text(name)
		h.raw(`"`)
	}
	h.raw(` value="`)
	h.text(value)
	h.raw(`"`)
	if readonly {
		h.raw(` readonly`)
	}
	h.raw(`></div>`)
}
