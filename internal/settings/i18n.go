package settings

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tidwall/jsonc"
	"golang.org/x/text/language"
)

// Catalog maps a language code to its key -> text table.
type Catalog map[string]map[string]string

// ParseCatalog decodes a translations document.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(jsonc.ToJSON(data), &c); err != nil {
		return nil, fmt.Errorf("parse translations: %w", err)
	}
	if c == nil {
		c = Catalog{}
	}
	return c, nil
}

// Languages returns the catalog's language codes in sorted order.
func (c Catalog) Languages() []string {
	langs := make([]string, 0, len(c))
	for lang := range c {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Translator returns the table best matching lang. "it-IT" resolves to an
// "it" catalog; a language with no acceptable match yields a Translator
// that leaves every key untranslated.
func (c Catalog) Translator(lang string) Translator {
	if table, ok := c[lang]; ok {
		return Translator{lang: lang, messages: table}
	}

	want, err := language.Parse(lang)
	if err != nil {
		return Translator{lang: lang}
	}

	var (
		codes []string
		tags  []language.Tag
	)
	for _, code := range c.Languages() {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		codes = append(codes, code)
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return Translator{lang: lang}
	}

	_, idx, conf := language.NewMatcher(tags).Match(want)
	if conf == language.No {
		return Translator{lang: lang}
	}
	return Translator{lang: codes[idx], messages: c[codes[idx]]}
}

// Translator looks up texts for one language.
type Translator struct {
	lang     string
	messages map[string]string
}

// Lang is the catalog language in use.
func (t Translator) Lang() string { return t.lang }

// T returns the text for key, or key itself when untranslated.
func (t Translator) T(key string) string {
	return t.Text(key, key)
}

// Text returns the text for key, or fallback when untranslated.
func (t Translator) Text(key, fallback string) string {
	if s, ok := t.messages[key]; ok && s != "" {
		return s
	}
	return fallback
}
