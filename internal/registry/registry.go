// Package registry provides a global registry of board variants.
// Variants register themselves in init() functions, allowing the CLI and
// menus to discover them without hardcoded lists.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/match3"
)

// Variant describes a named board setup.
type Variant struct {
	// ID returns a unique identifier (e.g., "classic").
	// Used for CLI arguments and session storage.
	ID string

	// Title is a human-readable name for display.
	Title string

	Width  int
	Height int
	Types  int // Number of piece types drawn from the default palette

	Description string
}

// Palette returns the piece types the variant plays with.
func (v Variant) Palette() []match3.PieceType {
	return match3.DefaultPalette(v.Types)
}

// Apply overrides the board section of cfg with the variant.
func (v Variant) Apply(cfg *config.Match3Config) {
	cfg.Board.Width = v.Width
	cfg.Board.Height = v.Height
	names := make([]string, 0, v.Types)
	for _, t := range v.Palette() {
		names = append(names, t.String())
	}
	cfg.Board.Palette = names
}

// Start initializes a new board for the variant.
func (v Variant) Start(seed uint64, opts ...match3.Option) (*match3.Board, match3.InitResult, error) {
	b := match3.NewBoard(opts...)
	res, err := b.Initialize(v.Width, v.Height, v.Palette(), seed)
	return b, res, err
}

// VariantInfo contains summary data about a registered variant.
type VariantInfo struct {
	ID    string
	Title string
}

var (
	variants = make(map[string]Variant)
	mu       sync.RWMutex
)

// Register adds a variant to the registry.
// Typically called from an init() function.
// Panics if a variant with the same ID is already registered.
func Register(v Variant) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := variants[v.ID]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", v.ID))
	}
	if v.Width < 1 || v.Height < 1 || v.Types < 1 {
		panic(fmt.Sprintf("registry: variant %q has invalid shape %dx%d/%d", v.ID, v.Width, v.Height, v.Types))
	}

	variants[v.ID] = v
}

// List returns information about all registered variants, sorted by ID.
func List() []VariantInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]VariantInfo, 0, len(variants))
	for id, v := range variants {
		result = append(result, VariantInfo{
			ID:    id,
			Title: v.Title,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns a variant by its ID.
// Returns an error if the variant ID is not registered.
func Get(id string) (Variant, error) {
	mu.RLock()
	defer mu.RUnlock()

	v, ok := variants[id]
	if !ok {
		return Variant{}, fmt.Errorf("registry: unknown variant %q", id)
	}

	return v, nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := variants[id]
	return ok
}
