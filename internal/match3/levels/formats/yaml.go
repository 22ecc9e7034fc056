// Package formats provides pluggable preset file format parsers.
package formats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-match3/internal/match3"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a preset file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Palette  []string          `yaml:"palette,omitempty"`
	Seed     uint64            `yaml:"seed,omitempty"`
	Rows     []string          `yaml:"rows"` // Top row first
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// Level represents a parsed preset ready for use.
type Level struct {
	ID       string
	Name     string
	Palette  []match3.PieceType
	Seed     uint64
	Rows     [][]string
	Metadata map[string]string
}

// ParseYAML parses a YAML preset file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("missing id")
	}
	if len(yl.Rows) == 0 {
		return Level{}, fmt.Errorf("level %s: no rows", yl.ID)
	}

	level := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Seed:     yl.Seed,
		Metadata: yl.Metadata,
	}
	if level.Name == "" {
		level.Name = yl.ID
	}

	for _, row := range yl.Rows {
		level.Rows = append(level.Rows, strings.Fields(row))
	}

	for _, name := range yl.Palette {
		t, ok := match3.ParsePieceType(name)
		if !ok {
			return Level{}, fmt.Errorf("level %s: unknown palette colour %q", yl.ID, name)
		}
		level.Palette = append(level.Palette, t)
	}

	return level, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
