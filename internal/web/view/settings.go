package view

import (
	"github.com/JonMunkholm/ticketdesk/internal/settings"
	"github.com/a-h/templ"
)

// SettingsData is the preferences form model.
type SettingsData struct {
	Page
	Settings  settings.Settings
	Languages []string
}

type choice struct {
	value, key, label string
}

var (
	dateFormats = []choice{
		{"dmy", "settings.date.dmy", "DD/MM/YYYY"},
		{"mdy", "settings.date.mdy", "MM/DD/YYYY"},
		{"ymd", "settings.date.ymd", "YYYY-MM-DD"},
	}
	numberFormats = []choice{
		{"eu", "settings.number.eu", "1.234,56"},
		{"us", "settings.number.us", "1,234.56"},
	}
	timezones = []choice{
		{"rome", "settings.tz.rome", "Europe/Rome"},
		{"london", "settings.tz.london", "Europe/London"},
		{"newyork", "settings.tz.newyork", "America/New_York"},
		{"utc", "settings.tz.utc", "UTC"},
	}
	themes = []choice{
		{settings.ThemeLight, "settings.theme.light", "Light"},
		{settings.ThemeDark, "settings.theme.dark", "Dark"},
		{settings.ThemeAuto, "settings.theme.auto", "System"},
	}
)

// Settings renders the preferences form. Submitting it downloads the
// resulting settings document.
func Settings(d SettingsData) templ.Component {
	return Layout(d.Page, component(func(h *html) {
		t, s := d.T, d.Settings

		langs := make([]choice, 0, len(d.Languages)+1)
		for _, l := range withCurrent(d.Languages, s.Language) {
			langs = append(langs, choice{l, "lang." + l, l})
		}

		h.raw(`<section id="settingsView"><h1>`)
		h.text(t.Text("nav.settings", "Settings"))
		h.raw(`</h1><form method="post" action="/settings" class="settings"><div class="grid">`)
		choiceField(h, t, "setLang", "language", t.Text("settings.language", "Language"), langs, s.Language)
		choiceField(h, t, "setDate", "dateFormat", t.Text("settings.dateFormat", "Date format"), dateFormats, s.DateFormat)
		choiceField(h, t, "setNum", "numberFormat", t.Text("settings.numberFormat", "Number format"), numberFormats, s.NumberFormat)
		choiceField(h, t, "setTimezone", "timezone", t.Text("settings.timezone", "Time zone"), withChoice(timezones, s.Timezone), s.Timezone)
		choiceField(h, t, "setTheme", "theme", t.Text("settings.theme", "Theme"), themes, s.Theme)
		h.raw(`</div><fieldset><legend>`)
		h.text(t.Text("settings.notifications", "Notifications"))
		h.raw(`</legend>`)
		checkbox(h, "notifEmail", "notifEmail", t.Text("settings.notifEmail", "Email notifications"), s.Notifications.Email)
		checkbox(h, "notifStatus", "notifStatus", t.Text("settings.notifStatus", "Status change alerts"), s.Notifications.StatusChange)
		h.raw(`</fieldset><button id="btnSaveSettings" class="btn primary" type="submit">`)
		h.text(t.Text("settings.save", "Save settings"))
		h.raw(`</button></form></section>`)
	}))
}

func withChoice(choices []choice, current string) []choice {
	for _, c := range choices {
		if c.value == current {
			return choices
		}
	}
	if current == "" {
		return choices
	}
	return append(append([]choice(nil), choices...), choice{current, "", current})
}

func choiceField(h *html, t settings.Translator, id, name, label string, choices []choice, selected string) {
	h.raw(`<div class="field"><label for="`)
	h.text(id)
	h.raw(`">`)
	h.text(label)
	h.raw(`</label><select id="`)
	h.text(id)
	h.raw(`" name="`)
	h.text(name)
	h.raw(`">`)
	for _, c := range choices {
		option(h, c.value, t.Text(c.key, c.label), c.value == selected)
	}
	h.raw(`</select></div>`)
}

func checkbox(h *html, id, name, label string, checked bool) {
	h.raw(`<label class="check"><input type="checkbox" id="`)
	h.text(id)
	h.raw(`" name="`)
	h.text(name)
	h.raw(`" value="on"`)
	if checked {
		h.raw(` checked`)
	}
	h.raw(`> `)
	h.text(label)
	h.raw(`</label>`)
}
