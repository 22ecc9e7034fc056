package match3_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

func TestShuffleEscapesDeadlock(t *testing.T) {
	g := layout(t, `
		R G B Y
		B Y R G
		R G B Y
		B Y R G`)
	require.False(t, match3.HasAvailableMove(g))
	before := g.Clone()

	events, err := match3.Shuffle(g, match3.NewRNG(3), 100)
	require.NoError(t, err)

	assert.Equal(t, before.CountByType(), g.CountByType())
	assert.Empty(t, match3.FindMatches(g))
	assert.True(t, match3.HasAvailableMove(g))

	last := events[len(events)-1]
	assert.Equal(t, match3.EventShuffled, last.Kind)
	for _, e := range events[:len(events)-1] {
		assert.Equal(t, match3.EventPieceMoved, e.Kind)
		assert.Equal(t, 0, e.Batch)
	}

	replayed := before.Clone()
	require.NoError(t, match3.ApplyEvents(replayed, events))
	assert.True(t, replayed.Equal(g))
}

func TestShuffleIsDeterministic(t *testing.T) {
	g1 := layout(t, `
		R G B Y
		B Y R G
		R G B Y
		B Y R G`)
	g2 := g1.Clone()

	ev1, err1 := match3.Shuffle(g1, match3.NewRNG(11), 100)
	ev2, err2 := match3.Shuffle(g2, match3.NewRNG(11), 100)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, ev1, ev2)
	assert.True(t, g1.Equal(g2))
}

func TestShuffleTwoTypes3x3IsUnshuffleable(t *testing.T) {
	// Seven reds cannot be spread over three rows without a run of three.
	g := layout(t, `
		R G R
		R R G
		R R R`)
	before := g.Clone()

	events, err := match3.Shuffle(g, match3.NewRNG(1), 25)
	require.ErrorIs(t, err, match3.ErrUnshuffleable)
	assert.Equal(t, []match3.Event{{Kind: match3.EventUnshuffleable}}, events)
	assert.True(t, before.Equal(g), "board must be untouched")
}

func TestShuffleZeroAttempts(t *testing.T) {
	g := layout(t, `
		R G B Y
		B Y R G
		R G B Y
		B Y R G`)

	_, err := match3.Shuffle(g, match3.NewRNG(1), 0)
	assert.ErrorIs(t, err, match3.ErrUnshuffleable)
}
