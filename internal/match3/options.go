package match3

import (
	"io"

	"github.com/charmbracelet/log"
)

// CascadesPerCell scales the cascade cycle bound with the board area when
// MaxCascades is unset. Real cascades on small palettes run to a few cycles
// per cell; only a spawn source that keeps re-creating matches gets near it.
const CascadesPerCell = 16

// Options configures a Board. Zero values fall back to the defaults.
type Options struct {
	MaxShuffleAttempts  int  // Shuffle attempts before Unshuffleable
	AvoidInitialMatches bool // Use SpawnAvoiding when filling a new board
	ResampleLimit       int  // Draws per cell for SpawnAvoiding
	MaxCascades         int  // Cycles per transition before ErrCascadeLimit; 0 scales with the board
	Logger              *log.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the options a Board uses when none are given.
func DefaultOptions() Options {
	return Options{
		MaxShuffleAttempts:  DefaultMaxShuffleAttempts,
		AvoidInitialMatches: true,
		ResampleLimit:       DefaultResampleLimit,
		Logger:              log.New(io.Discard),
	}
}

// WithMaxShuffleAttempts sets the shuffle retry bound.
func WithMaxShuffleAttempts(n int) Option {
	return func(o *Options) { o.MaxShuffleAttempts = n }
}

// WithAvoidInitialMatches toggles match-avoiding spawns during Initialize.
func WithAvoidInitialMatches(on bool) Option {
	return func(o *Options) { o.AvoidInitialMatches = on }
}

// WithResampleLimit sets the SpawnAvoiding resample bound.
func WithResampleLimit(n int) Option {
	return func(o *Options) { o.ResampleLimit = n }
}

// WithMaxCascades sets the cascade cycle bound.
func WithMaxCascades(n int) Option {
	return func(o *Options) { o.MaxCascades = n }
}

// WithLogger routes board diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func (o *Options) normalize() {
	d := DefaultOptions()
	if o.MaxShuffleAttempts <= 0 {
		o.MaxShuffleAttempts = d.MaxShuffleAttempts
	}
	if o.ResampleLimit <= 0 {
		o.ResampleLimit = d.ResampleLimit
	}
	if o.MaxCascades < 0 {
		o.MaxCascades = 0
	}
	if o.Logger == nil {
		o.Logger = d.Logger
	}
}

// CascadeLimit returns the cycle bound for a w x h board.
func (o Options) CascadeLimit(w, h int) int {
	if o.MaxCascades > 0 {
		return o.MaxCascades
	}
	return CascadesPerCell * w * h
}
