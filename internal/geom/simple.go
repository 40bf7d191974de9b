package geom

// IsSimple reports whether the polyline cs has no self-intersection other
// than the closing vertex of a ring (cs[0] == cs[len(cs)-1]).
//
// Adjacent segments are expected to touch at their shared vertex; any
// other intersection — proper crossing, collinear overlap, or an
// unexpected touch between non-adjacent segments — makes the curve
// non-simple.
func IsSimple(cs []Coordinate) bool {
	n := len(cs)
	if n < 2 {
		return true
	}
	numSegs := n - 1
	isRing := n > 3 && cs[0].Equal(cs[n-1])

	for i := 0; i < numSegs; i++ {
		for j := i + 1; j < numSegs; j++ {
			rel := relateSegments(cs[i], cs[i+1], cs[j], cs[j+1])
			if !rel.Intersects {
				continue
			}

			if adjacentSegments(i, j, numSegs, isRing) {
				// Expected to touch at exactly the shared vertex; anything
				// more (a proper crossing or collinear overlap) is a
				// self-intersection.
				if rel.Proper || rel.CollinearOverlap {
					return false
				}
				continue
			}

			return false
		}
	}
	return true
}

// adjacentSegments reports whether segment i and segment j share an
// endpoint by construction: consecutive segments always do, and for a
// closed ring the first and last segment also share the closing vertex.
func adjacentSegments(i, j, numSegs int, isRing bool) bool {
	if j == i+1 {
		return true
	}
	if isRing && i == 0 && j == numSegs-1 {
		return true
	}
	return false
}
