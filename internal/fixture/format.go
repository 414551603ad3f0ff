package fixture

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLFixture represents the YAML structure for a fixture file.
type YAMLFixture struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name"`
	Size      YAMLSize          `yaml:"size"`
	Rows      []string          `yaml:"rows"` // bottom-aligned
	Piece     YAMLPiece         `yaml:"piece"`
	Direction string            `yaml:"direction"`
	Expect    *YAMLExpect       `yaml:"expect,omitempty"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLPiece represents the piece under test.
type YAMLPiece struct {
	ID          string `yaml:"id"`
	Orientation int    `yaml:"orientation"`
	Col         int    `yaml:"col"`
	Row         int    `yaml:"row"`
}

// YAMLExpect is the expected rotation outcome.
type YAMLExpect struct {
	Success bool          `yaml:"success"`
	Kicks   int           `yaml:"kicks,omitempty"`  // attempts made, 0 = unchecked
	Reason  string        `yaml:"reason,omitempty"` // failure reason
	Piece   *YAMLPosition `yaml:"piece,omitempty"`  // resulting placement
}

// YAMLPosition is a resulting orientation and anchor.
type YAMLPosition struct {
	Orientation int `yaml:"orientation"`
	Col         int `yaml:"col"`
	Row         int `yaml:"row"`
}

// ParseYAML decodes a fixture file without interpreting it.
func ParseYAML(data []byte) (YAMLFixture, error) {
	var yf YAMLFixture
	if err := yaml.Unmarshal(data, &yf); err != nil {
		return YAMLFixture{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return yf, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
