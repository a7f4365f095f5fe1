package settings

import (
	"reflect"
	"testing"
)

const catalogJSON = `{
	"it": {"dashboard": "Cruscotto", "save": "Salva"},
	"en": {"dashboard": "Dashboard", "save": ""},
	// unfinished
	"de": {},
}`

func TestParseCatalog(t *testing.T) {
	c, err := ParseCatalog([]byte(catalogJSON))
	if err != nil {
		t.Fatalf("ParseCatalog() error = %v", err)
	}

	if got, want := c.Languages(), []string{"de", "en", "it"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Languages() = %v, want %v", got, want)
	}
}

func TestParseCatalog_Invalid(t *testing.T) {
	if _, err := ParseCatalog([]byte(`["it"]`)); err == nil {
		t.Fatal("ParseCatalog() expected error for non-object document")
	}
}

func TestTranslator(t *testing.T) {
	c, err := ParseCatalog([]byte(catalogJSON))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		lang     string
		key      string
		wantLang string
		want     string
	}{
		{"exact", "it", "dashboard", "it", "Cruscotto"},
		{"regional variant", "it-IT", "save", "it", "Salva"},
		{"empty text falls back to key", "en", "save", "en", "save"},
		{"missing key falls back to key", "it", "logout", "it", "logout"},
		{"unknown language", "ja", "dashboard", "ja", "dashboard"},
		{"unparsable language", "??", "dashboard", "??", "dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := c.Translator(tt.lang)
			if tr.Lang() != tt.wantLang {
				t.Errorf("Lang() = %q, want %q", tr.Lang(), tt.wantLang)
			}
			if got := tr.T(tt.key); got != tt.want {
				t.Errorf("T(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestTranslator_TextFallback(t *testing.T) {
	var c Catalog
	tr := c.Translator("it")
	if got := tr.Text("dashboard", "Dashboard"); got != "Dashboard" {
		t.Errorf("Text() = %q, want fallback", got)
	}
}
