// Package settings holds the desk's user preferences and translation
// catalogs. Both documents are JSON; comments and trailing commas are
// tolerated.
package settings

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/tidwall/jsonc"
)

// FileName is the download name of saved settings.
const FileName = "settings.json"

// Theme values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeAuto  = "auto"
)

// Notifications toggles.
type Notifications struct {
	Email        bool `json:"email"`
	StatusChange bool `json:"statusChange"`
}

// Settings is the preference document.
type Settings struct {
	Language      string        `json:"language"`
	DateFormat    string        `json:"dateFormat"`
	NumberFormat  string        `json:"numberFormat"`
	Timezone      string        `json:"timezone"`
	Theme         string        `json:"theme"`
	Notifications Notifications `json:"notifications"`
}

// Defaults returns the settings used when no document is available.
func Defaults() Settings {
	return Settings{
		Language:     "it",
		DateFormat:   "dmy",
		NumberFormat: "eu",
		Timezone:     "rome",
		Theme:        ThemeLight,
		Notifications: Notifications{
			Email:        true,
			StatusChange: true,
		},
	}
}

// document mirrors Settings with optional notification flags so an absent
// flag can fall back to its default while an explicit false is kept.
type document struct {
	Language      string `json:"language"`
	DateFormat    string `json:"dateFormat"`
	NumberFormat  string `json:"numberFormat"`
	Timezone      string `json:"timezone"`
	Theme         string `json:"theme"`
	Notifications *struct {
		Email        *bool `json:"email"`
		StatusChange *bool `json:"statusChange"`
	} `json:"notifications"`
}

// Parse decodes a settings document. Missing or empty fields take their
// default value.
func Parse(data []byte) (Settings, error) {
	var doc document
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return Defaults(), fmt.Errorf("parse settings: %w", err)
	}

	s := Defaults()
	setIfPresent(&s.Language, doc.Language)
	setIfPresent(&s.DateFormat, doc.DateFormat)
	setIfPresent(&s.NumberFormat, doc.NumberFormat)
	setIfPresent(&s.Timezone, doc.Timezone)
	setIfPresent(&s.Theme, doc.Theme)

	if n := doc.Notifications; n != nil {
		if n.Email != nil {
			s.Notifications.Email = *n.Email
		}
		if n.StatusChange != nil {
			s.Notifications.StatusChange = *n.StatusChange
		}
	}

	return s, nil
}

func setIfPresent(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

// Marshal renders the settings as the downloadable document, indented by
// two spaces.
func (s Settings) Marshal() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// ResolveTheme returns the concrete theme to render: "dark" or "light".
// For "auto" the client's dark-mode preference decides.
func ResolveTheme(theme string, prefersDark bool) string {
	switch theme {
	case ThemeDark:
		return ThemeDark
	case ThemeAuto:
		if prefersDark {
			return ThemeDark
		}
	}
	return ThemeLight
}

// Initials returns up to two upper-case initials of a display name,
// e.g. "Mario Rossi" -> "MR".
func Initials(name string) string {
	initials := make([]rune, 0, 2)
	for _, word := range strings.Fields(name) {
		if len(initials) == 2 {
			break
		}
		initials = append(initials, unicode.ToUpper([]rune(word)[0]))
	}
	return string(initials)
}
