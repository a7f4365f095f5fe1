package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ----------------------------------------------------------------------------
// New
// ----------------------------------------------------------------------------

func TestNew_ChoosesTransport(t *testing.T) {
	tests := []struct {
		base     string
		wantHTTP bool
	}{
		{"./data", false},
		{"/srv/desk", false},
		{"http://localhost:9000/desk", true},
		{"https://example.com", true},
	}

	for _, tt := range tests {
		f, err := New(tt.base, time.Second, 0)
		if err != nil {
			t.Fatalf("New(%q) error = %v", tt.base, err)
		}
		_, isHTTP := f.(*HTTP)
		if isHTTP != tt.wantHTTP {
			t.Errorf("New(%q) HTTP = %v, want %v", tt.base, isHTTP, tt.wantHTTP)
		}
	}
}

// ----------------------------------------------------------------------------
// Dir
// ----------------------------------------------------------------------------

func TestDir_Fetch(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "tickets.csv"), []byte("id,title\n1,a"), 0o600); err != nil {
		t.Fatal(err)
	}

	d := &Dir{Root: root}
	data, err := d.Fetch(context.Background(), "tickets.csv")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != "id,title\n1,a" {
		t.Errorf("Fetch() = %q", data)
	}
}

func TestDir_FetchMissing(t *testing.T) {
	d := &Dir{Root: t.TempDir()}

	_, err := d.Fetch(context.Background(), "tickets.csv")
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("error = %v, want ErrFetch", err)
	}

	var fe *FetchError
	if !errors.As(err, &fe) || fe.Name != "tickets.csv" {
		t.Errorf("expected FetchError naming tickets.csv, got %v", err)
	}
}

func TestDir_RejectsEscape(t *testing.T) {
	d := &Dir{Root: t.TempDir()}

	for _, name := range []string{"../secret", "/etc/passwd"} {
		if _, err := d.Fetch(context.Background(), name); !errors.Is(err, ErrFetch) {
			t.Errorf("Fetch(%q) error = %v, want ErrFetch", name, err)
		}
	}
}

func TestDir_TooLarge(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "big.csv"), []byte(strings.Repeat("x", 64)), 0o600); err != nil {
		t.Fatal(err)
	}

	d := &Dir{Root: root, MaxBytes: 16}
	_, err := d.Fetch(context.Background(), "big.csv")
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("error = %v, want ErrFetch", err)
	}
	if !strings.Contains(err.Error(), "too large") {
		t.Errorf("error should mention size: %v", err)
	}
}

// ----------------------------------------------------------------------------
// HTTP
// ----------------------------------------------------------------------------

func TestHTTP_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/desk/settings.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"theme":"dark"}`))
	}))
	defer srv.Close()

	f, err := New(srv.URL+"/desk", time.Second, 0)
	if err != nil {
		t.Fatal(err)
	}

	data, err := f.Fetch(context.Background(), "settings.json")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != `{"theme":"dark"}` {
		t.Errorf("Fetch() = %q", data)
	}
}

func TestHTTP_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f, err := New(srv.URL, time.Second, 0)
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.Fetch(context.Background(), "tickets.csv")
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("error = %v, want ErrFetch", err)
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T", err)
	}
	if fe.Status != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want 503", fe.Status)
	}
}

func TestHTTP_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f, err := New(srv.URL, time.Second, 0)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := f.Fetch(ctx, "tickets.csv"); !errors.Is(err, ErrFetch) {
		t.Errorf("error = %v, want ErrFetch", err)
	}
}

// ----------------------------------------------------------------------------
// Text
// ----------------------------------------------------------------------------

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"plain", []byte("id,title"), "id,title"},
		{"bom", append([]byte{0xEF, 0xBB, 0xBF}, "id,title"...), "id,title"},
		{"invalid byte", []byte("caf\xe9"), "caf?"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.in); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}
