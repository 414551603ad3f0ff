package fixture

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// Loader handles loading fixtures from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new fixture loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all fixture files.
// Returns fixtures sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Fixture, error) {
	var fixtures []Fixture

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		f, err := LoadFile(path)
		if err != nil {
			return err
		}
		fixtures = append(fixtures, f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(fixtures, func(i, j int) bool {
		return fixtures[i].ID < fixtures[j].ID
	})
	return fixtures, nil
}

// LoadByID loads a specific fixture by ID.
func (l *Loader) LoadByID(id string) (Fixture, error) {
	fixtures, err := l.LoadAll()
	if err != nil {
		return Fixture{}, err
	}
	for _, f := range fixtures {
		if f.ID == id {
			return f, nil
		}
	}
	return Fixture{}, fmt.Errorf("fixture not found: %s", id)
}

// LoadFile loads a single fixture file.
func LoadFile(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return Fixture{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	f.FilePath = path
	return f, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	return slices.Contains(FormatExtensions(), strings.ToLower(ext))
}
