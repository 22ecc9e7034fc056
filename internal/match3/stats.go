package match3

// Stats counts the events of one or more results.
type Stats struct {
	Created       int
	Moved         int
	Removed       int
	Promoted      int
	Cycles        int
	Shuffles      int
	Unshuffleable bool
	Batches       int
}

// Tally counts the events in evs.
func Tally(evs []Event) Stats {
	var s Stats
	for _, e := range evs {
		switch e.Kind {
		case EventPieceCreated:
			s.Created++
		case EventPieceMoved:
			s.Moved++
		case EventPieceRemoved:
			s.Removed++
		case EventPiecePromoted:
			s.Promoted++
		case EventCycleSettled:
			s.Cycles++
		case EventShuffled:
			s.Shuffles++
		case EventUnshuffleable:
			s.Unshuffleable = true
		}
	}
	s.Batches = len(SplitBatches(evs))
	return s
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Created += other.Created
	s.Moved += other.Moved
	s.Removed += other.Removed
	s.Promoted += other.Promoted
	s.Cycles += other.Cycles
	s.Shuffles += other.Shuffles
	s.Unshuffleable = s.Unshuffleable || other.Unshuffleable
	s.Batches += other.Batches
}
