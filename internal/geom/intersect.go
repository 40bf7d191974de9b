package geom

// segmentRelation classifies how two line segments relate to each other.
// It is the unexported building block that Relate, Intersects and the
// ring-insertion preconditions in pkg/topology are built from.
type segmentRelation struct {
	// Intersects is true whenever the segments share at least one point.
	Intersects bool
	// Proper is true when the segments cross transversally at a single
	// point interior to both (spec's "Crossing").
	Proper bool
	// CollinearOverlap is true when the segments are collinear and share
	// more than a single point (spec's "Coincidence").
	CollinearOverlap bool
	// Touches is true when the segments meet at a single point that is an
	// endpoint of at least one of them, without properly crossing.
	Touches bool
}

// relateSegments implements the standard orientation-based segment
// intersection test (Cormen et al., "Introduction to Algorithms", the
// SEGMENTS-INTERSECT routine), extended to report collinear overlap.
func relateSegments(p1, p2, q1, q2 Coordinate) segmentRelation {
	d1 := Orientation(q1, q2, p1)
	d2 := Orientation(q1, q2, p2)
	d3 := Orientation(p1, p2, q1)
	d4 := Orientation(p1, p2, q2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return segmentRelation{Intersects: true, Proper: true}
	}

	if d1 == 0 && onSegment(q1, q2, p1) {
		return collinearOrTouch(p1, p2, q1, q2, p1)
	}
	if d2 == 0 && onSegment(q1, q2, p2) {
		return collinearOrTouch(p1, p2, q1, q2, p2)
	}
	if d3 == 0 && onSegment(p1, p2, q1) {
		return collinearOrTouch(p1, p2, q1, q2, q1)
	}
	if d4 == 0 && onSegment(p1, p2, q2) {
		return collinearOrTouch(p1, p2, q1, q2, q2)
	}

	return segmentRelation{}
}

// collinearOrTouch decides, once we already know at least one endpoint of
// one segment lies on the other, whether the two segments merely touch at
// that point or overlap along a shared sub-segment.
func collinearOrTouch(p1, p2, q1, q2, touchPoint Coordinate) segmentRelation {
	if Orientation(p1, p2, q1) != 0 || Orientation(p1, p2, q2) != 0 {
		return segmentRelation{Intersects: true, Touches: true}
	}

	// All four points are collinear. The segments overlap (rather than
	// merely touch at `touchPoint`) if either endpoint of one segment lies
	// strictly inside the other.
	overlap := strictlyBetween(p1, p2, q1) || strictlyBetween(p1, p2, q2) ||
		strictlyBetween(q1, q2, p1) || strictlyBetween(q1, q2, p2)
	if overlap {
		return segmentRelation{Intersects: true, CollinearOverlap: true}
	}
	return segmentRelation{Intersects: true, Touches: true}
}

// onSegment reports whether point r, known to be collinear with segment
// (p, q), lies within its bounding box (i.e. on the closed segment).
func onSegment(p, q, r Coordinate) bool {
	return minf(p.X, q.X) <= r.X && r.X <= maxf(p.X, q.X) &&
		minf(p.Y, q.Y) <= r.Y && r.Y <= maxf(p.Y, q.Y)
}

// strictlyBetween reports whether r lies on segment (p,q) strictly between
// its endpoints (collinearity of r is assumed by the caller).
func strictlyBetween(p, q, r Coordinate) bool {
	if r.Equal(p) || r.Equal(q) {
		return false
	}
	return onSegment(p, q, r)
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Intersects reports whether polylines cs1 and cs2 share at least one
// point, checking every pair of segments.
func Intersects(cs1, cs2 []Coordinate) bool {
	for i := 0; i+1 < len(cs1); i++ {
		for j := 0; j+1 < len(cs2); j++ {
			if relateSegments(cs1[i], cs1[i+1], cs2[j], cs2[j+1]).Intersects {
				return true
			}
		}
	}
	return false
}

// Relation is the subset of the DE-9IM intersection matrix the kernel
// consults (spec §9's "named-field struct" redesign of the generic
// 9-cell matrix): whether the two curves coincide along a sub-segment,
// cross transversally, or merely touch.
type Relation struct {
	// Coincident is true if the curves overlap along a shared sub-segment.
	Coincident bool
	// Crosses is true if the curves cross transversally at an interior
	// point of both.
	Crosses bool
	// Touches is true if the curves meet only at points that are an
	// endpoint of at least one segment involved, without crossing or
	// overlapping.
	Touches bool
}

// Relate computes the coincidence/crossing/touching relation between two
// coordinate sequences.
func Relate(cs1, cs2 []Coordinate) Relation {
	var rel Relation
	for i := 0; i+1 < len(cs1); i++ {
		for j := 0; j+1 < len(cs2); j++ {
			r := relateSegments(cs1[i], cs1[i+1], cs2[j], cs2[j+1])
			if r.Proper {
				rel.Crosses = true
			}
			if r.CollinearOverlap {
				rel.Coincident = true
			}
			if r.Touches {
				rel.Touches = true
			}
		}
	}
	return rel
}
