package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the default match-3 configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: BoardConfig{
			Width:   8,
			Height:  8,
			Palette: []string{"red", "green", "blue", "yellow", "purple", "orange"},
		},
		Rules: RulesConfig{
			MaxShuffleAttempts:  match3.DefaultMaxShuffleAttempts,
			AvoidInitialMatches: true,
			ResampleLimit:       match3.DefaultResampleLimit,
			MaxCascades:         0,
		},
		Playback: PlaybackConfig{
			BatchTicks: 4,
			TickRate:   30,
		},
	}
}
