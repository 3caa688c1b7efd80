package descriptor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const minimalDocument = "classes:\n  - name: User\n"

func TestParseSource(t *testing.T) {
	if ParseSource("") != nil {
		t.Fatal("empty input should yield no source")
	}
	if got := ParseSource("models.yaml").Location(); got != "models.yaml" {
		t.Fatalf("file source location = %q", got)
	}
	if got := ParseSource("https://example.com/models.yaml").Location(); got != "https://example.com/models.yaml" {
		t.Fatalf("url source location = %q", got)
	}
}

func TestLoadSourceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	if err := os.WriteFile(path, []byte(minimalDocument), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	classes, err := LoadSource(context.Background(), SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(classes) != 1 || classes[0].Name != "User" {
		t.Fatalf("classes = %+v", classes)
	}
}

func TestLoadSourceFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(minimalDocument))
	}))
	defer server.Close()

	classes, err := LoadSource(context.Background(), SourceFromURL(server.URL))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(classes) != 1 || classes[0].Name != "User" {
		t.Fatalf("classes = %+v", classes)
	}
}

func TestLoadSourceHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := LoadSource(context.Background(), SourceFromURL(server.URL)); err == nil {
		t.Fatal("expected error for failing status")
	}
}

func TestLoadSourceNil(t *testing.T) {
	if _, err := LoadSource(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil source")
	}
}
