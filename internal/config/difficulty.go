package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

// ParsePreset converts a flag value to a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyFixed, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", s)
	}
}

// PaletteSizeForPreset returns the number of piece types for a preset.
// Fewer types mean more matches. Zero keeps the configured palette.
func PaletteSizeForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 4
	case DifficultyNormal:
		return 5
	case DifficultyHard:
		return 6
	default:
		return 0
	}
}

// IsFixedPreset returns true if the preset keeps the file's values.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Match3Config, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		return
	}

	palette := match3.DefaultPalette(PaletteSizeForPreset(preset))
	names := make([]string, 0, len(palette))
	for _, t := range palette {
		names = append(names, t.String())
	}
	cfg.Board.Palette = names

	// Adjust pacing based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Playback.BatchTicks = 6
	case DifficultyHard:
		cfg.Playback.BatchTicks = 3
	}
}
