package geom

// Projection describes where a point projects onto a polyline: the segment
// it falls on, the parametric position within that segment, and the
// projected coordinate itself (which need not equal any input vertex).
type Projection struct {
	SegmentIndex int // index i such that the projection lies on cs[i]-cs[i+1]
	T            float64
	Point        Coordinate
	Distance     float64
}

// Project finds the closest point on polyline cs to c.
func Project(cs []Coordinate, c Coordinate) Projection {
	best := Projection{Distance: -1}
	for i := 0; i+1 < len(cs); i++ {
		dx := cs[i+1].X - cs[i].X
		dy := cs[i+1].Y - cs[i].Y
		lenSq := dx*dx + dy*dy

		var t float64
		var proj Coordinate
		if lenSq == 0 {
			t, proj = 0, cs[i]
		} else {
			t = ((c.X-cs[i].X)*dx + (c.Y-cs[i].Y)*dy) / lenSq
			if t < 0 {
				t = 0
			} else if t > 1 {
				t = 1
			}
			proj = Coordinate{X: cs[i].X + t*dx, Y: cs[i].Y + t*dy}
		}

		d := distancePoints(c, proj)
		if best.Distance < 0 || d < best.Distance {
			best = Projection{SegmentIndex: i, T: t, Point: proj, Distance: d}
		}
	}
	return best
}

// IsInterior reports whether a projection falls strictly between the two
// endpoints of the polyline it was computed against — neither coincident
// with the first coordinate nor the last.
func (p Projection) IsInterior(cs []Coordinate) bool {
	if len(cs) < 2 {
		return false
	}
	return !p.Point.Equal(cs[0]) && !p.Point.Equal(cs[len(cs)-1])
}

// Split divides polyline cs at the projection of c, returning the two
// halves. The shared joining coordinate is the projected point, which is
// not necessarily c itself (spec §4.2).
func Split(cs []Coordinate, c Coordinate) (first, second []Coordinate) {
	p := Project(cs, c)

	first = make([]Coordinate, 0, p.SegmentIndex+2)
	first = append(first, cs[:p.SegmentIndex+1]...)
	if !p.Point.Equal(first[len(first)-1]) {
		first = append(first, p.Point)
	}

	second = make([]Coordinate, 0, len(cs)-p.SegmentIndex+1)
	if !p.Point.Equal(cs[p.SegmentIndex+1]) {
		second = append(second, p.Point)
	}
	second = append(second, cs[p.SegmentIndex+1:]...)

	return first, second
}
