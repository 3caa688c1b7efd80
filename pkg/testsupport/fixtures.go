package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgdescriptor "github.com/goliatone/go-extmodel/pkg/descriptor"
)

// LoadClasses reads a descriptor fixture and returns its classes. Testing
// helpers fail the test on error to keep table-driven tests concise.
func LoadClasses(t *testing.T, path string) []pkgdescriptor.Class {
	t.Helper()

	classes, err := LoadClassesFromPath(path)
	if err != nil {
		t.Fatalf("load classes: %v", err)
	}
	return classes
}

// LoadClassesFromPath returns the fixture classes without requiring
// testing.T, so callers can wire fixtures from setup functions.
func LoadClassesFromPath(path string) ([]pkgdescriptor.Class, error) {
	if path == "" {
		return nil, errors.New("testsupport: descriptor path is required")
	}

	classes, err := pkgdescriptor.Load(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: load descriptor: %w", err)
	}
	return classes, nil
}

// MustClass returns the named class from a descriptor fixture.
func MustClass(t *testing.T, path, name string) pkgdescriptor.Class {
	t.Helper()

	for _, class := range LoadClasses(t, path) {
		if class.Name == name {
			return class
		}
	}
	t.Fatalf("class %q not in %s", name, path)
	return pkgdescriptor.Class{}
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
