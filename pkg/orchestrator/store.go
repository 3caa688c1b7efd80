package orchestrator

import (
	"fmt"
	"os"
	"path/filepath"
)

// ArtifactStore persists generated artifacts. Names are slash-separated
// paths relative to the store root.
type ArtifactStore interface {
	// Exists probes for an artifact. The probe is best effort: nothing
	// prevents another writer from creating the artifact between a probe
	// and a subsequent Write.
	Exists(name string) bool

	// Write persists an artifact, replacing any previous content. A
	// partially written artifact must never be observable.
	Write(name string, data []byte) error
}

// DirStore writes artifacts under a directory root. Writes go to a
// temporary file first and are renamed into place, so readers only ever see
// complete artifacts.
type DirStore struct {
	root string
}

// NewDirStore creates a store rooted at dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{root: dir}
}

func (s *DirStore) Exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}

func (s *DirStore) Write(name string, data []byte) error {
	target := s.path(name)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("orchestrator: create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), filepath.Base(target)+".*")
	if err != nil {
		return fmt.Errorf("orchestrator: create temp artifact: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("orchestrator: write artifact %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("orchestrator: close artifact %s: %w", name, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("orchestrator: publish artifact %s: %w", name, err)
	}
	return nil
}

func (s *DirStore) path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}
