// Package config provides YAML-based board configuration loading and
// difficulty presets for the match-3 front end.
package config

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

// Match3Config contains all configuration for a match-3 session.
type Match3Config struct {
	Board    BoardConfig    `yaml:"board"`
	Rules    RulesConfig    `yaml:"rules"`
	Playback PlaybackConfig `yaml:"playback"`
}

// BoardConfig defines board dimensions and piece types.
type BoardConfig struct {
	Width   int      `yaml:"width"`
	Height  int      `yaml:"height"`
	Palette []string `yaml:"palette"` // Colour names or letters
}

// RulesConfig defines engine bounds.
type RulesConfig struct {
	MaxShuffleAttempts  int  `yaml:"max_shuffle_attempts"`
	AvoidInitialMatches bool `yaml:"avoid_initial_matches"`
	ResampleLimit       int  `yaml:"resample_limit"`
	MaxCascades         int  `yaml:"max_cascades"`
}

// PlaybackConfig defines how the terminal front end animates events.
type PlaybackConfig struct {
	BatchTicks int `yaml:"batch_ticks"` // Ticks each event batch stays on screen
	TickRate   int `yaml:"tick_rate"`   // Ticks per second
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Palette resolves the configured colour names.
func (c Match3Config) Palette() ([]match3.PieceType, error) {
	if len(c.Board.Palette) == 0 {
		return nil, fmt.Errorf("config: empty palette")
	}
	palette := make([]match3.PieceType, 0, len(c.Board.Palette))
	for _, name := range c.Board.Palette {
		t, ok := match3.ParsePieceType(name)
		if !ok {
			return nil, fmt.Errorf("config: unknown colour %q", name)
		}
		palette = append(palette, t)
	}
	return palette, nil
}

// Validate checks the values the engine cannot default.
func (c Match3Config) Validate() error {
	if c.Board.Width < 1 || c.Board.Height < 1 {
		return fmt.Errorf("config: board size %dx%d", c.Board.Width, c.Board.Height)
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	if c.Playback.BatchTicks < 0 || c.Playback.TickRate < 0 {
		return fmt.Errorf("config: negative playback timing")
	}
	if c.Rules.MaxCascades < 0 {
		return fmt.Errorf("config: max_cascades %d, use 0 to scale with the board", c.Rules.MaxCascades)
	}
	return nil
}

// BoardOptions converts the rules into engine options.
func (c Match3Config) BoardOptions(logger *log.Logger) []match3.Option {
	return []match3.Option{
		match3.WithMaxShuffleAttempts(c.Rules.MaxShuffleAttempts),
		match3.WithAvoidInitialMatches(c.Rules.AvoidInitialMatches),
		match3.WithResampleLimit(c.Rules.ResampleLimit),
		match3.WithMaxCascades(c.Rules.MaxCascades),
		match3.WithLogger(logger),
	}
}
