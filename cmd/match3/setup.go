package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// customBoard is the board ID that plays the configured board section.
const customBoard = "custom"

// settings holds the configuration resolved from the global flags.
type settings struct {
	config config.Match3Config
	preset config.DifficultyPreset
	logger *log.Logger
	close  func()
}

func loadSettings() (settings, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return settings{}, err
	}
	cfg, err := config.LoadWithPreset(flagConfig, preset)
	if err != nil {
		return settings{}, err
	}
	logger, closeLog, err := openLogger(flagLogFile)
	if err != nil {
		return settings{}, err
	}
	return settings{config: cfg, preset: preset, logger: logger, close: closeLog}, nil
}

// mustLoadSettings exits the process when the flags cannot be resolved.
func mustLoadSettings() settings {
	s, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return s
}

// openLogger returns a debug logger writing to path, or a discarding one.
// The terminal belongs to the TUI, so board logs never go to stderr.
func openLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "match3",
	})
	return logger, func() { f.Close() }, nil
}

// runtime builds the TUI runtime config from the terminal and the flags.
func (s settings) runtime() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	tickRate := s.config.Playback.TickRate
	if flagFPS > 0 {
		tickRate = flagFPS
	}

	return core.RuntimeConfig{
		ScreenW:    width,
		ScreenH:    height,
		TickRate:   tickRate,
		BatchTicks: s.config.Playback.BatchTicks,
		Seed:       flagSeed,
	}
}

func (s settings) gameOptions(store *storage.Store) tui.GameOptions {
	return tui.GameOptions{
		Store:  store,
		Logger: s.logger,
		Board:  s.config.BoardOptions(s.logger),
	}
}

// variantSetup returns the setup of v with the difficulty preset's palette.
func (s settings) variantSetup(v registry.Variant) (tui.Setup, error) {
	setup := tui.VariantSetup(v)
	if config.IsFixedPreset(s.preset) {
		return setup, nil
	}

	cfg := s.config
	v.Apply(&cfg)
	config.ApplyPreset(&cfg, s.preset)
	palette, err := cfg.Palette()
	if err != nil {
		return setup, err
	}
	setup.Palette = palette
	return setup, nil
}

// customSetup plays the board section of the loaded config.
func (s settings) customSetup() (tui.Setup, error) {
	palette, err := s.config.Palette()
	if err != nil {
		return tui.Setup{}, err
	}
	return tui.Setup{
		ID:      customBoard,
		Title:   "Custom",
		Width:   s.config.Board.Width,
		Height:  s.config.Board.Height,
		Palette: palette,
	}, nil
}

func presetLoader() *levels.Loader {
	if flagLevelsDir != "" {
		return levels.NewLoader(flagLevelsDir)
	}
	return levels.Builtin()
}

// resolveSetup finds a board by variant ID, preset ID or "custom".
func (s settings) resolveSetup(id string) (tui.Setup, error) {
	if id == customBoard {
		return s.customSetup()
	}
	if v, err := registry.Get(id); err == nil {
		return s.variantSetup(v)
	}
	lvl, err := presetLoader().LoadByID(id)
	if err != nil {
		return tui.Setup{}, fmt.Errorf("unknown board %q", id)
	}
	return tui.LevelSetup(lvl), nil
}

// menuItems lists variants, presets and the custom board.
func (s settings) menuItems() []tui.MenuItem {
	presets, err := presetLoader().LoadAll()
	if err != nil {
		s.logger.Warn("cannot load presets", "err", err)
	}

	items := tui.MenuItems(presets)
	for i, item := range items {
		if item.Setup.Layout != nil {
			continue
		}
		v, err := registry.Get(item.Setup.ID)
		if err != nil {
			continue
		}
		setup, err := s.variantSetup(v)
		if err != nil {
			continue
		}
		items[i].Setup = setup
		items[i].Detail = fmt.Sprintf("%dx%d, %d colours", setup.Width, setup.Height, len(setup.Palette))
	}

	if custom, err := s.customSetup(); err == nil {
		items = append(items, tui.MenuItem{
			Setup:  custom,
			Detail: fmt.Sprintf("config %dx%d, %d colours", custom.Width, custom.Height, len(custom.Palette)),
		})
	}
	return items
}

// openStore opens the session database, or returns nil with a warning.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open session database: %v\n", err)
		return nil
	}
	return store
}
