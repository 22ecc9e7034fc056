package match3

// Settle compacts every column toward y = 0 and fills the vacated top cells
// with pieces from s. Surviving pieces keep their column order.
//
// All moves of existing pieces share the first batch. Each new piece then
// appears at the top of its column in one batch and drops to its target in
// the next; the drop is omitted when the target is the top cell.
func Settle(g *Grid, s Spawner) ([]Event, error) {
	var events []Event
	for x := 0; x < g.W; x++ {
		write := 0
		for y := 0; y < g.H; y++ {
			from := C(x, y)
			if !g.At(from).Filled {
				continue
			}
			if y != write {
				p, err := g.Take(from)
				if err != nil {
					return nil, err
				}
				to := C(x, write)
				if err := g.Place(to, p); err != nil {
					return nil, err
				}
				events = append(events, moved(0, from, to, p))
			}
			write++
		}

		top := C(x, g.H-1)
		for j, y := 0, write; y < g.H; j, y = j+1, y+1 {
			p := s.Spawn()
			to := C(x, y)
			if err := g.Place(to, p); err != nil {
				return nil, err
			}
			events = append(events, created(1+2*j, top, p))
			if to != top {
				events = append(events, moved(2+2*j, top, to, p))
			}
		}
	}
	return compactBatches(events), nil
}
