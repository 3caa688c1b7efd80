package descriptor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Source yields the raw bytes of a descriptor document. Implementations
// cover local files and HTTP locations so callers can point a run at either.
type Source interface {
	// Location identifies the source for error messages and logging.
	Location() string

	// Fetch returns the document payload.
	Fetch(ctx context.Context) ([]byte, error)
}

type fileSource struct {
	path string
}

// SourceFromFile builds a source reading a local file.
func SourceFromFile(path string) Source {
	return fileSource{path: path}
}

func (s fileSource) Location() string { return s.path }

func (s fileSource) Fetch(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("descriptor: read %s: %w", s.path, err)
	}
	return data, nil
}

type httpSource struct {
	url     string
	client  *http.Client
	timeout time.Duration
}

// SourceFromURL builds a source fetching a document over HTTP.
func SourceFromURL(url string) Source {
	return httpSource{
		url:     url,
		client:  http.DefaultClient,
		timeout: 30 * time.Second,
	}
}

func (s httpSource) Location() string { return s.url }

func (s httpSource) Fetch(ctx context.Context) ([]byte, error) {
	reqCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("descriptor: build request for %s: %w", s.url, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("descriptor: fetch %s: %w", s.url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("descriptor: fetch %s: unexpected status %s", s.url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("descriptor: read response from %s: %w", s.url, err)
	}
	return data, nil
}

// ParseSource maps a raw input string to a source: HTTP locations become
// remote sources, anything else is treated as a file path. Empty input
// yields nil.
func ParseSource(raw string) Source {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return SourceFromURL(trimmed)
	}
	return SourceFromFile(trimmed)
}

// LoadSource fetches and parses a descriptor document from a source.
func LoadSource(ctx context.Context, src Source) ([]Class, error) {
	if src == nil {
		return nil, fmt.Errorf("descriptor: source is required")
	}
	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
