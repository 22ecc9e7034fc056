package match3

import "sort"

// MinRun is the shortest run that counts as a match.
const MinRun = 3

// MatchGroup is the union of qualifying runs that share at least one cell.
// Cells are deduplicated and sorted row-major.
type MatchGroup struct {
	Cells []Coord
	Type  PieceType
	Axis  Axis // Axis of the longest run; horizontal on ties
}

// Size returns the number of cells in the group.
func (m MatchGroup) Size() int {
	return len(m.Cells)
}

// Contains reports whether c is a member of the group.
func (m MatchGroup) Contains(c Coord) bool {
	for _, mc := range m.Cells {
		if mc == c {
			return true
		}
	}
	return false
}

// run is one maximal same-type line of cells.
type run struct {
	cells []Coord
	axis  Axis
}

// FindMatches returns every match-group on the grid, ordered by each
// group's first cell. Groups never share a coordinate.
func FindMatches(g *Grid) []MatchGroup {
	runs := findRuns(g)
	if len(runs) == 0 {
		return nil
	}

	// Union runs that share a cell.
	ds := newDisjointSet(len(runs))
	owner := make([]int, len(g.Cells))
	for i := range owner {
		owner[i] = -1
	}
	for ri, r := range runs {
		for _, c := range r.cells {
			i := g.index(c)
			if owner[i] >= 0 {
				ds.union(owner[i], ri)
			} else {
				owner[i] = ri
			}
		}
	}

	byRoot := make(map[int][]int)
	var roots []int
	for ri := range runs {
		root := ds.find(ri)
		if _, ok := byRoot[root]; !ok {
			roots = append(roots, root)
		}
		byRoot[root] = append(byRoot[root], ri)
	}

	groups := make([]MatchGroup, 0, len(roots))
	for _, root := range roots {
		groups = append(groups, buildGroup(g, runs, byRoot[root]))
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Cells[0].Less(groups[j].Cells[0])
	})
	return groups
}

// findRuns scans row-major and returns every maximal run of length >= MinRun.
// Each axis keeps its own visited set so a cell is the member of at most one
// run per axis.
func findRuns(g *Grid) []run {
	hVisited := make([]bool, len(g.Cells))
	vVisited := make([]bool, len(g.Cells))
	var runs []run

	for _, c := range g.AllCoords() {
		p, ok := g.PieceAt(c)
		if !ok {
			continue
		}
		if !hVisited[g.index(c)] {
			cells := extendRun(g, c, p.Type, DirLeft, DirRight)
			for _, rc := range cells {
				hVisited[g.index(rc)] = true
			}
			if len(cells) >= MinRun {
				runs = append(runs, run{cells: cells, axis: AxisHorizontal})
			}
		}
		if !vVisited[g.index(c)] {
			cells := extendRun(g, c, p.Type, DirDown, DirUp)
			for _, rc := range cells {
				vVisited[g.index(rc)] = true
			}
			if len(cells) >= MinRun {
				runs = append(runs, run{cells: cells, axis: AxisVertical})
			}
		}
	}
	return runs
}

// extendRun walks from anchor toward back and then toward fwd while the
// cells hold type t. The result is ordered from the back end.
func extendRun(g *Grid, anchor Coord, t PieceType, back, fwd Dir) []Coord {
	start := anchor
	for {
		n := start.Step(back, 1)
		if !g.sameType(n, t) {
			break
		}
		start = n
	}
	cells := []Coord{start}
	for c := start.Step(fwd, 1); g.sameType(c, t); c = c.Step(fwd, 1) {
		cells = append(cells, c)
	}
	return cells
}

func buildGroup(g *Grid, runs []run, members []int) MatchGroup {
	seen := make(map[Coord]bool)
	var cells []Coord
	longest := -1
	axis := AxisHorizontal
	for _, ri := range members {
		r := runs[ri]
		if len(r.cells) > longest || (len(r.cells) == longest && r.axis == AxisHorizontal) {
			longest = len(r.cells)
			axis = r.axis
		}
		for _, c := range r.cells {
			if !seen[c] {
				seen[c] = true
				cells = append(cells, c)
			}
		}
	}
	sort.Slice(cells, func(i, j int) bool {
		return cells[i].Less(cells[j])
	})
	p, _ := g.PieceAt(cells[0])
	return MatchGroup{Cells: cells, Type: p.Type, Axis: axis}
}

// disjointSet is a union-find over run indices.
type disjointSet struct {
	parent []int
}

func newDisjointSet(n int) *disjointSet {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &disjointSet{parent: parent}
}

func (d *disjointSet) find(i int) int {
	for d.parent[i] != i {
		d.parent[i] = d.parent[d.parent[i]]
		i = d.parent[i]
	}
	return i
}

func (d *disjointSet) union(a, b int) {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return
	}
	if ra < rb {
		d.parent[rb] = ra
	} else {
		d.parent[ra] = rb
	}
}
