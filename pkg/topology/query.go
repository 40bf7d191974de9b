package topology

import (
	"fmt"

	"github.com/planargraph/topology/internal/geom"
	"github.com/planargraph/topology/internal/ring"
	"github.com/planargraph/topology/internal/store"
)

// GetNodeByPoint returns the unique node at c. More than one node occupying
// the same coordinate is reported as a CorruptTopologyError rather than an
// ambiguous result, since AddIsoNode never allows that state to arise
// honestly.
func (t *Topology) GetNodeByPoint(c Coordinate) (NodeID, bool, error) {
	var found []NodeID
	for _, n := range t.store.SearchNodes(geom.BoundsOfCoordinate(c)) {
		if n.Coordinate.Equal(c) {
			found = append(found, n.ID)
		}
	}
	switch len(found) {
	case 0:
		return 0, false, nil
	case 1:
		return found[0], true, nil
	default:
		return 0, false, &CorruptTopologyError{Message: fmt.Sprintf("%d nodes coincide at %v", len(found), c)}
	}
}

// GetEdgeByPoint returns every edge whose polyline lies within tol of c.
func (t *Topology) GetEdgeByPoint(c Coordinate, tol float64) []EdgeID {
	search := geom.Bounds{MinX: c.X - tol, MaxX: c.X + tol, MinY: c.Y - tol, MaxY: c.Y + tol}
	var out []EdgeID
	for _, e := range t.store.SearchEdges(search) {
		if geom.Distance(c, e.Coordinates) <= tol {
			out = append(out, e.ID)
		}
	}
	return out
}

// GetEdgesByLine returns every edge whose polyline intersects the given
// polyline.
func (t *Topology) GetEdgesByLine(coords []Coordinate) []EdgeID {
	var out []EdgeID
	for _, e := range t.store.SearchEdges(geom.BoundsOfCoordinates(coords)) {
		if geom.Intersects(coords, e.Coordinates) {
			out = append(out, e.ID)
		}
	}
	return out
}

// GetFaceByPoint returns every non-universe face whose bounding box covers
// c and whose recovered shell contains it.
func (t *Topology) GetFaceByPoint(c Coordinate, tol float64) ([]FaceID, error) {
	search := geom.Bounds{MinX: c.X - tol, MaxX: c.X + tol, MinY: c.Y - tol, MaxY: c.Y + tol}
	var out []FaceID
	for _, f := range t.store.SearchFaces(search) {
		shell, err := t.faceShell(f.ID)
		if err != nil {
			return nil, err
		}
		if geom.PointInPolygon(c, shell) {
			out = append(out, f.ID)
		}
	}
	return out, nil
}

// EdgeRef names one directed traversal of an edge.
type EdgeRef struct {
	Edge    EdgeID
	Forward bool
}

// GetRingEdges returns the ordered sequence of directed edges bounding the
// face on the given side of edge (forward true follows nextLeft, false
// follows nextRight).
func (t *Topology) GetRingEdges(edge EdgeID, forward bool) ([]EdgeRef, error) {
	if t.store.Edge(edge) == nil {
		return nil, errNotFound("edge")
	}
	walked := ring.WalkRing(t.store, store.DirectedEdge{Edge: edge, Forward: forward})
	out := make([]EdgeRef, len(walked))
	for i, de := range walked {
		out[i] = EdgeRef{Edge: de.Edge, Forward: de.Forward}
	}
	return out, nil
}

// GetFaceGeometry returns the polygonized shell of face, collecting every
// edge with that face on either side and invoking the polygonizer.
func (t *Topology) GetFaceGeometry(face FaceID) ([]Coordinate, error) {
	if face == UniverseFace {
		return nil, &SpatialError{Kind: KindNotFound, Message: "universe face has no finite shell"}
	}
	if !t.store.FaceExists(face) {
		return nil, errNotFound("face")
	}

	var segments [][]Coordinate
	for _, e := range t.store.AllEdges() {
		if e.LeftFace == face || e.RightFace == face {
			segments = append(segments, e.Coordinates)
		}
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("topology: face %d has no bounding edge", face)
	}
	return geom.Polygonize(segments)
}

// faceShell finds any directed edge bounding face and walks its ring,
// used internally where a shell is needed for point location (AddIsoNode's
// face lookup and GetFaceByPoint) rather than exposed to callers as a named
// query — GetFaceGeometry polygonizes instead, per spec.
func (t *Topology) faceShell(face store.FaceID) ([]geom.Coordinate, error) {
	for _, e := range t.store.AllEdges() {
		var start store.DirectedEdge
		switch {
		case e.LeftFace == face:
			start = store.DirectedEdge{Edge: e.ID, Forward: true}
		case e.RightFace == face:
			start = store.DirectedEdge{Edge: e.ID, Forward: false}
		default:
			continue
		}
		walked := ring.WalkRing(t.store, start)
		coords := ring.Coordinates(t.store, walked)
		if len(coords) < 4 || !coords[0].Equal(coords[len(coords)-1]) {
			return nil, &CorruptTopologyError{Message: fmt.Sprintf("face %d: bounding ring does not close", face)}
		}
		return coords, nil
	}
	return nil, fmt.Errorf("topology: face %d has no bounding edge", face)
}

// GetNode returns a snapshot of a node's current state.
func (t *Topology) GetNode(id NodeID) (NodeSnapshot, bool) {
	n := t.store.Node(id)
	if n == nil {
		return NodeSnapshot{}, false
	}
	return nodeSnapshot(n), true
}

// GetEdge returns a snapshot of an edge's current state.
func (t *Topology) GetEdge(id EdgeID) (EdgeSnapshot, bool) {
	e := t.store.Edge(id)
	if e == nil {
		return EdgeSnapshot{}, false
	}
	return edgeSnapshot(e), true
}

// GetFace returns a snapshot of a face's identity.
func (t *Topology) GetFace(id FaceID) (FaceSnapshot, bool) {
	if !t.store.FaceExists(id) {
		return FaceSnapshot{}, false
	}
	return FaceSnapshot{ID: id}, true
}

// AllNodes returns a snapshot of every node currently stored.
func (t *Topology) AllNodes() []NodeSnapshot {
	all := t.store.AllNodes()
	out := make([]NodeSnapshot, len(all))
	for i, n := range all {
		out[i] = nodeSnapshot(n)
	}
	return out
}

// AllEdges returns a snapshot of every edge currently stored.
func (t *Topology) AllEdges() []EdgeSnapshot {
	all := t.store.AllEdges()
	out := make([]EdgeSnapshot, len(all))
	for i, e := range all {
		out[i] = edgeSnapshot(e)
	}
	return out
}

// AllFaces returns a snapshot of every face currently stored, including
// the universe.
func (t *Topology) AllFaces() []FaceSnapshot {
	all := t.store.AllFaces()
	out := make([]FaceSnapshot, len(all))
	for i, f := range all {
		out[i] = FaceSnapshot{ID: f.ID}
	}
	return out
}
