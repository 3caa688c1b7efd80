package descriptor

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the YAML document shape holding one or more class descriptors.
type File struct {
	Classes []Class `yaml:"classes"`
}

// Parse decodes a YAML descriptor document.
func Parse(data []byte) ([]Class, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("descriptor: document is empty")
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("descriptor: decode document: %w", err)
	}
	if len(file.Classes) == 0 {
		return nil, fmt.Errorf("descriptor: document declares no classes")
	}
	for i, class := range file.Classes {
		if class.Name == "" {
			return nil, fmt.Errorf("descriptor: class %d is missing a name", i)
		}
	}
	return file.Classes, nil
}

// Load reads and parses a descriptor file from disk.
func Load(path string) ([]Class, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("descriptor: read %s: %w", path, err)
	}
	return Parse(data)
}

// LoadFS reads and parses a descriptor file from an fs.FS.
func LoadFS(fsys fs.FS, name string) ([]Class, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("descriptor: read %s: %w", name, err)
	}
	return Parse(data)
}
