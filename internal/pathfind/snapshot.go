package pathfind

import "github.com/samdwyer/overland/internal/grid"

// Snapshot is a copy of the search frontier for debug overlays.
type Snapshot struct {
	Open   []grid.Point
	Closed []grid.Point
}

// Snapshot copies the current open and closed sets. Open is in expansion
// order; Closed has no particular order.
func (p *Pathfinder) Snapshot() Snapshot {
	s := Snapshot{
		Open:   make([]grid.Point, len(p.open)),
		Closed: make([]grid.Point, 0, p.closed.Size()),
	}
	copy(s.Open, p.open)
	p.closed.Each(func(k grid.Key) {
		s.Closed = append(s.Closed, k.Point())
	})
	return s
}

// Score returns the g and f scores recorded for pt.
func (p *Pathfinder) Score(pt grid.Point) (g, f float64, ok bool) {
	k := pt.Key()
	g, ok = p.gScore[k]
	if !ok {
		return 0, 0, false
	}
	return g, p.fScore[k], true
}
