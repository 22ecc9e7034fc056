// Package levels provides preset board loading for match3.
// This package depends on match3 but match3 does not depend on levels.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-match3/internal/match3"
	"github.com/vovakirdan/tui-match3/internal/match3/levels/formats"
)

//go:embed presets/*.yaml
var presetFS embed.FS

// Level represents a complete preset board definition.
type Level struct {
	ID       string
	Name     string
	Width    int
	Height   int
	Palette  []match3.PieceType
	Seed     uint64
	Layout   *match3.Grid
	Metadata map[string]string
	FilePath string
}

// Grid returns a copy of the preset layout.
func (l *Level) Grid() *match3.Grid {
	return l.Layout.Clone()
}

// Start loads the preset into b. A zero seed uses the preset's own seed.
func (l *Level) Start(b *match3.Board, seed uint64) (match3.InitResult, error) {
	if seed == 0 {
		seed = l.Seed
	}
	return b.Load(l.Grid(), l.Palette, seed)
}

// Loader handles loading presets from a file system.
type Loader struct {
	FS   fs.FS
	Root string
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{FS: os.DirFS(root), Root: root}
}

// Builtin returns a loader over the presets compiled into the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(presetFS, "presets")
	if err != nil {
		panic(err)
	}
	return &Loader{FS: sub, Root: "builtin"}
}

// LoadAll recursively scans and loads all preset files.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single preset file, relative to the loader root.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	ext := strings.ToLower(path.Ext(p))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	grid, err := match3.ParseRows(parsed.Rows)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	palette := parsed.Palette
	if len(palette) == 0 {
		palette = paletteOf(grid)
	}

	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Width:    grid.W,
		Height:   grid.H,
		Palette:  palette,
		Seed:     parsed.Seed,
		Layout:   grid,
		Metadata: parsed.Metadata,
		FilePath: filepath.Join(l.Root, filepath.FromSlash(p)),
	}, nil
}

// LoadByID loads a specific preset by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all preset IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// paletteOf returns the distinct types on g in palette order.
func paletteOf(g *match3.Grid) []match3.PieceType {
	counts := g.CountByType()
	palette := make([]match3.PieceType, 0, len(counts))
	for t := match3.PieceType(0); t < match3.TypeCount; t++ {
		if counts[t] > 0 {
			palette = append(palette, t)
		}
	}
	return palette
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
