package view

import (
	"net/url"

	"github.com/JonMunkholm/ticketdesk/internal/core"
	"github.com/JonMunkholm/ticketdesk/internal/ticket"
	"github.com/a-h/templ"
)

// ListData is the dashboard model.
type ListData struct {
	Page
	Tickets  []ticket.Ticket
	Statuses []string
	Filter   string
	Sort     ticket.SortState
	Err      *core.UserMessage // set when the ticket file failed to load
}

type column struct {
	field string
	key   string
	label string
}

// listColumns are the sortable table columns, in display order.
var listColumns = []column{
	{ticket.FieldID, "col.id", "ID"},
	{ticket.FieldTitle, "col.title", "Title"},
	{ticket.FieldRequester, "col.requester", "Requester"},
	{ticket.FieldStatus, "col.status", "Status"},
	{ticket.FieldPriority, "col.priority", "Priority"},
	{ticket.FieldDate, "col.date", "Date"},
	{ticket.FieldProgress, "col.progress", "Progress"},
}

// TicketURL is the detail page of a ticket.
func TicketURL(id string) string {
	return "/tickets/" + url.PathEscape(id)
}

// List renders the dashboard: toolbar, filter and the ticket table.
func List(d ListData) templ.Component {
	return Layout(d.Page, component(func(h *html) {
		t := d.T
		h.raw(`<section id="listView"><div class="toolbar"><h1>`)
		h.text(t.Text("tickets.title", "Tickets"))
		h.raw(`</h1>`)

		h.raw(`<form method="get" action="/" class="filter"><label for="statusFilter">`)
		h.text(t.Text("filter.label", "Status"))
		h.raw(`</label><select id="statusFilter" name="status" onchange="this.form.submit()">`)
		option(h, ticket.FilterAll, t.Text("filter.all", "All"), d.Filter == ticket.FilterAll)
		for _, st := range d.Statuses {
			option(h, st, st, d.Filter == st)
		}
		h.raw(`</select><noscript><button type="submit">`)
		h.text(t.Text("filter.apply", "Apply"))
		h.raw(`</button></noscript></form>`)

		h.raw(`<form method="post" action="/tickets/new"><button class="btn primary" type="submit">`)
		h.text(t.Text("tickets.new", "New ticket"))
		h.raw(`</button></form></div>`)

		h.raw(`<table class="tickets"><thead><tr>`)
		for _, c := range listColumns {
			sortHeader(h, c, d)
		}
		h.raw(`</tr></thead><tbody id="ticketTableBody">`)

		switch {
		case d.Err != nil:
			h.raw(`<tr class="error-row"><td colspan="`)
			h.text(itoa(len(listColumns)))
			h.raw(`">`)
			h.text(d.Err.Message)
			h.raw(` (`)
			h.text(d.Err.Code)
			h.raw(`). `)
			h.text(d.Err.Action)
			h.raw(`</td></tr>`)
		case len(d.Tickets) == 0:
			h.raw(`<tr class="empty-row"><td colspan="`)
			h.text(itoa(len(listColumns)))
			h.raw(`">`)
			h.text(t.Text("tickets.empty", "No tickets found"))
			h.raw(`</td></tr>`)
		default:
			for _, tk := range d.Tickets {
				ticketRow(h, tk)
			}
		}

		h.raw(`</tbody></table></section>`)
	}))
}

func option(h *html, value, label string, selected bool) {
	h.raw(`<option value="`)
	h.text(value)
	h.raw(`"`)
	if selected {
		h.raw(` selected`)
	}
	h.raw(`>`)
	h.text(label)
	h.raw(`</option>`)
}

// sortHeader renders a column header as a sort button. The active column
// carries its direction as a class.
func sortHeader(h *html, c column, d ListData) {
	h.raw(`<th data-sort="`)
	h.text(c.field)
	h.raw(`"`)
	if d.Sort.Field == c.field {
		h.raw(` class="`)
		h.text(string(d.Sort.Direction))
		h.raw(`"`)
	}
	h.raw(`><form method="post" action="/sort/`)
	h.text(c.field)
	h.raw(`"><input type="hidden" name="status" value="`)
	h.text(d.Filter)
	h.raw(`"><button type="submit">`)
	h.text(d.T.Text(c.key, c.label))
	h.raw(`</button></form></th>`)
}

func ticketRow(h *html, tk ticket.Ticket) {
	h.raw(`<tr><td class="mono"><a href="`)
	h.text(TicketURL(tk.ID))
	h.raw(`">#`)
	h.text(tk.ID)
	h.raw(`</a></td><td class="title"><a href="`)
	h.text(TicketURL(tk.ID))
	h.raw(`">`)
	h.text(tk.Title)
	h.raw(`</a></td><td>`)
	h.text(tk.Requester)
	h.raw(`</td><td><span class="badge `)
	h.text(StatusClass(tk.Status))
	h.raw(`">`)
	h.text(tk.Status)
	h.raw(`</span></td><td><span class="priority-dot `)
	h.text(PriorityClass(tk.Priority))
	h.raw(`"></span>`)
	h.text(tk.Priority)
	h.raw(`</td><td class="muted">`)
	h.text(tk.Date)
	h.raw(`</td><td>`)
	progress(h, tk.ProgressPercent())
	h.raw(`</td></tr>`)
}

func progress(h *html, pct int) {
	h.raw(`<progress value="`)
	h.text(itoa(pct))
	h.raw(`" max="100"></progress> <span class="pct">`)
	h.text(itoa(pct))
	h.raw(`%</span>`)
}
