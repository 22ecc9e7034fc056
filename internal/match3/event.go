package match3

import (
	"fmt"
	"sort"
)

// EventKind identifies a board mutation.
type EventKind uint8

const (
	EventPieceCreated EventKind = iota
	EventPieceMoved
	EventPieceRemoved
	EventPiecePromoted
	EventCycleSettled
	EventShuffled
	EventUnshuffleable
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventPieceCreated:
		return "PieceCreated"
	case EventPieceMoved:
		return "PieceMoved"
	case EventPieceRemoved:
		return "PieceRemoved"
	case EventPiecePromoted:
		return "PiecePromoted"
	case EventCycleSettled:
		return "CycleSettled"
	case EventShuffled:
		return "Shuffled"
	case EventUnshuffleable:
		return "Unshuffleable"
	default:
		return "Unknown"
	}
}

// Event is one entry of the mutation stream a transition produces.
//
// Events sharing a Batch happen simultaneously: a consumer lifts every
// source piece of the batch before placing any of them. Batch numbers are
// non-decreasing within one result.
type Event struct {
	Kind  EventKind
	Batch int
	Cell  Coord // Target cell (created, moved-to, removed, promoted)
	From  Coord // Source cell, PieceMoved only
	Piece Piece // Piece involved; for PiecePromoted the upgraded piece
}

// String returns a readable representation of the event.
func (e Event) String() string {
	switch e.Kind {
	case EventPieceCreated, EventPiecePromoted:
		return fmt.Sprintf("#%d %s %v %v", e.Batch, e.Kind, e.Cell, e.Piece)
	case EventPieceMoved:
		return fmt.Sprintf("#%d %s %v->%v", e.Batch, e.Kind, e.From, e.Cell)
	case EventPieceRemoved:
		return fmt.Sprintf("#%d %s %v", e.Batch, e.Kind, e.Cell)
	default:
		return fmt.Sprintf("#%d %s", e.Batch, e.Kind)
	}
}

func created(batch int, c Coord, p Piece) Event {
	return Event{Kind: EventPieceCreated, Batch: batch, Cell: c, Piece: p}
}

func moved(batch int, from, to Coord, p Piece) Event {
	return Event{Kind: EventPieceMoved, Batch: batch, From: from, Cell: to, Piece: p}
}

func removed(batch int, c Coord, p Piece) Event {
	return Event{Kind: EventPieceRemoved, Batch: batch, Cell: c, Piece: p}
}

func promoted(batch int, c Coord, p Piece) Event {
	return Event{Kind: EventPiecePromoted, Batch: batch, Cell: c, Piece: p}
}

func marker(batch int, k EventKind) Event {
	return Event{Kind: k, Batch: batch}
}

// nextBatch returns the first batch number after the events in evs.
func nextBatch(evs []Event) int {
	if len(evs) == 0 {
		return 0
	}
	return evs[len(evs)-1].Batch + 1
}

// appendBatches appends src to dst, shifting src batches past the end of dst.
func appendBatches(dst, src []Event) []Event {
	base := nextBatch(dst)
	for _, e := range src {
		e.Batch += base
		dst = append(dst, e)
	}
	return dst
}

// compactBatches orders events by batch (stable) and renumbers batches
// consecutively from zero.
func compactBatches(evs []Event) []Event {
	sort.SliceStable(evs, func(i, j int) bool {
		return evs[i].Batch < evs[j].Batch
	})
	next, last := -1, 0
	for i := range evs {
		if next < 0 || evs[i].Batch != last {
			last = evs[i].Batch
			next++
		}
		evs[i].Batch = next
	}
	return evs
}

// SplitBatches groups a stream into its simultaneous batches.
func SplitBatches(evs []Event) [][]Event {
	var out [][]Event
	start := 0
	for i := 1; i <= len(evs); i++ {
		if i == len(evs) || evs[i].Batch != evs[start].Batch {
			out = append(out, evs[start:i])
			start = i
		}
	}
	return out
}
