package ring

import (
	"github.com/planargraph/topology/internal/geom"
	"github.com/planargraph/topology/internal/store"
)

// SplitFace implements the face splitter of spec §4.5: given the directed
// edge whose insertion may have closed a new ring on this side, it walks
// the ring and, only once the walk has confirmed a genuine counter-clockwise
// close, calls alloc to mint the id for the ring's bounded interior — the
// id is never spent on a walk that turns out not to be a split, so a caller
// chaining several of these across one edit never burns an id it didn't
// use. Returns 0, false, nil when the walk did not close a genuine new
// ring — the caller should leave the topology as it was passed in.
func SplitFace(s *store.Store, start store.DirectedEdge, alloc func() store.FaceID) (store.FaceID, bool, error) {
	ringEdges := WalkRing(s, start)
	rev := store.DirectedEdge{Edge: start.Edge, Forward: !start.Forward}
	for _, de := range ringEdges {
		if de == rev {
			return 0, false, nil
		}
	}

	coords := Coordinates(s, ringEdges)
	if len(coords) < 4 || !coords[0].Equal(coords[len(coords)-1]) {
		return 0, false, nil
	}

	if geom.SignedArea(coords) > 0 {
		// Clockwise: this ring bounds the plane outside itself rather
		// than a new interior, which this single-shell-per-face model
		// has no slot for (see DESIGN.md); treat as no split.
		return 0, false, nil
	}

	faceID := alloc()
	oldFace := start.Face(s.Edge(start.Edge))
	bound := geom.BoundsOfCoordinates(coords)

	ringSet := make(map[store.EdgeID]bool, len(ringEdges))
	for _, de := range ringEdges {
		ringSet[de.Edge] = true
	}
	for _, de := range ringEdges {
		de.SetFace(s.Edge(de.Edge), faceID)
	}

	s.AddFace(&store.Face{ID: faceID}, bound)

	for _, e := range s.SearchEdges(bound) {
		if ringSet[e.ID] {
			continue
		}
		if !geom.PointInPolygon(interiorPoint(e), coords) {
			continue
		}
		if e.LeftFace == oldFace {
			e.LeftFace = faceID
		}
		if e.RightFace == oldFace {
			e.RightFace = faceID
		}
	}

	for _, n := range s.SearchNodes(bound) {
		if n.Face == nil || *n.Face != oldFace {
			continue
		}
		if geom.PointInPolygon(n.Coordinate, coords) {
			f := faceID
			n.Face = &f
		}
	}

	return faceID, true, nil
}

// interiorPoint picks a coordinate on e guaranteed to lie on its polyline,
// used as the representative point for a containment test against a
// candidate new face's ring.
func interiorPoint(e *store.Edge) geom.Coordinate {
	cs := e.Coordinates
	if len(cs) == 2 {
		return geom.Coordinate{X: (cs[0].X + cs[1].X) / 2, Y: (cs[0].Y + cs[1].Y) / 2}
	}
	return cs[len(cs)/2]
}

// RenameFace reassigns every edge and node currently referencing from to
// reference to instead. Used by new-face-mode edits to retire a face id
// once a split or heal gives its remaining territory a fresh identity, and
// by the face healer to fold a merged face's references into the
// survivor.
func RenameFace(s *store.Store, from, to store.FaceID) {
	for _, e := range s.AllEdges() {
		if e.LeftFace == from {
			e.LeftFace = to
		}
		if e.RightFace == from {
			e.RightFace = to
		}
	}
	for _, n := range s.AllNodes() {
		if n.Face != nil && *n.Face == from {
			f := to
			n.Face = &f
		}
	}
}
