// Package source fetches the desk's static documents (ticket file,
// settings, translations) from a local directory or an HTTP base URL.
//
// A fetch either returns the whole document or fails; there is no retry.
// Every failure wraps ErrFetch so callers can tell transport problems from
// anything else.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrFetch marks every transport failure.
var ErrFetch = errors.New("fetch failed")

// DefaultMaxBytes caps a fetched document when no limit is configured.
const DefaultMaxBytes = 10 << 20

// FetchError describes a failed fetch of one named document.
type FetchError struct {
	Name   string
	Status int // HTTP status, 0 for non-HTTP failures
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch failed: %s: status %d", e.Name, e.Status)
	}
	return fmt.Sprintf("fetch failed: %s: %v", e.Name, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// Fetcher retrieves a named document.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// New returns an HTTP fetcher when base is an http(s) URL and a directory
// fetcher otherwise.
func New(base string, timeout time.Duration, maxBytes int64) (Fetcher, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	if strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://") {
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid source URL %q: %w", base, err)
		}
		return &HTTP{
			Base:     u,
			Client:   &http.Client{Timeout: timeout},
			MaxBytes: maxBytes,
		}, nil
	}

	return &Dir{Root: base, MaxBytes: maxBytes}, nil
}

// Dir reads documents from a directory.
type Dir struct {
	Root     string
	MaxBytes int64
}

// Fetch reads Root/name. Names may not escape Root.
func (d *Dir) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Name: name, Err: err}
	}

	clean := filepath.Clean(name)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return nil, &FetchError{Name: name, Err: errors.New("invalid document name")}
	}

	f, err := os.Open(filepath.Join(d.Root, clean))
	if err != nil {
		return nil, &FetchError{Name: name, Err: err}
	}
	defer f.Close()

	data, err := readLimited(f, d.MaxBytes)
	if err != nil {
		return nil, &FetchError{Name: name, Err: err}
	}
	return data, nil
}

// HTTP fetches documents relative to a base URL. Any non-2xx status is a
// failure.
type HTTP struct {
	Base     *url.URL
	Client   *http.Client
	MaxBytes int64
}

// Fetch GETs Base/name.
func (h *HTTP) Fetch(ctx context.Context, name string) ([]byte, error) {
	u := *h.Base
	u.Path = path.Join("/", u.Path, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &FetchError{Name: name, Err: err}
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Name: name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &FetchError{Name: name, Status: resp.StatusCode}
	}

	data, err := readLimited(resp.Body, h.MaxBytes)
	if err != nil {
		return nil, &FetchError{Name: name, Err: err}
	}
	return data, nil
}

func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("document too large: exceeds %d bytes", maxBytes)
	}
	return data, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Text decodes a fetched document: a UTF-8 BOM (common in files saved by
// Windows spreadsheet tools) is dropped and invalid byte sequences become
// '?'.
func Text(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data)
	}
	return string(bytes.ToValidUTF8(data, []byte("?")))
}
