// Package store holds the arena-plus-id entity collections for a planar
// topology: nodes, edges, and faces live in maps keyed by their stable id,
// and every inter-entity reference is an id rather than a pointer, the
// way the teacher keeps a flat ChartEntry array behind its R-tree rather
// than a pointer-chasing tree.
package store

import "github.com/planargraph/topology/internal/geom"

// NodeID, EdgeID, and FaceID are stable identifiers assigned by a Store.
// Zero is never a valid NodeID or EdgeID (ids start at 1); zero IS a valid
// FaceID — it names the universe face, which exists for the lifetime of
// the topology.
type NodeID int
type EdgeID int
type FaceID int

// UniverseFace is the id of the unbounded exterior face created with every
// new topology.
const UniverseFace FaceID = 0

// Node is an isolated point or the endpoint of one or more edges.
type Node struct {
	ID         NodeID
	Coordinate geom.Coordinate

	// Face names the containing face when the node is isolated (no
	// incident edge). A nil Face is the authoritative record that the
	// node has at least one incident edge; it is never used to mean
	// "face zero" — when a node is isolated in the universe, Face
	// points at a FaceID holding UniverseFace.
	Face *FaceID
}

// Isolated reports whether n currently has no incident edge.
func (n *Node) Isolated() bool {
	return n.Face != nil
}

// Edge is a directed polyline between two nodes (possibly the same node)
// carrying the two faces it separates and the ring-continuation links on
// each side.
type Edge struct {
	ID          EdgeID
	Start, End  NodeID
	Coordinates []geom.Coordinate

	LeftFace  FaceID
	RightFace FaceID

	// NextLeft/NextLeftDir is the directed edge continuing the ring
	// bounding LeftFace after this edge is traversed start->end.
	NextLeft    EdgeID
	NextLeftDir bool

	// NextRight/NextRightDir is the directed edge continuing the ring
	// bounding RightFace after this edge is traversed end->start.
	NextRight    EdgeID
	NextRightDir bool
}

// StartCoordinate and EndCoordinate return the first and last vertex of
// the edge's polyline, which by invariant equal its Start/End nodes'
// coordinates.
func (e *Edge) StartCoordinate() geom.Coordinate { return e.Coordinates[0] }
func (e *Edge) EndCoordinate() geom.Coordinate   { return e.Coordinates[len(e.Coordinates)-1] }

// Face is a region of the plane. It carries no pointers to its bounding
// edges or contained nodes; membership is recovered by traversal.
type Face struct {
	ID FaceID
}

// DirectedEdge names one side of an edge: Forward is the "dir" flag from
// spec — true follows NextLeft (the side bounding LeftFace), false follows
// NextRight (the side bounding RightFace).
type DirectedEdge struct {
	Edge    EdgeID
	Forward bool
}

// Face returns the face on the interior side named by d (LeftFace when
// Forward, RightFace otherwise).
func (d DirectedEdge) Face(e *Edge) FaceID {
	if d.Forward {
		return e.LeftFace
	}
	return e.RightFace
}

// OppositeFace returns the face on the side of e opposite the one named by
// d (RightFace when Forward, LeftFace otherwise).
func (d DirectedEdge) OppositeFace(e *Edge) FaceID {
	if d.Forward {
		return e.RightFace
	}
	return e.LeftFace
}

// Next returns the directed edge that continues the ring after d.
func (d DirectedEdge) Next(e *Edge) DirectedEdge {
	if d.Forward {
		return DirectedEdge{Edge: e.NextLeft, Forward: e.NextLeftDir}
	}
	return DirectedEdge{Edge: e.NextRight, Forward: e.NextRightDir}
}

// SetNext rewrites the ring-continuation link named by d on e.
func (d DirectedEdge) SetNext(e *Edge, next DirectedEdge) {
	if d.Forward {
		e.NextLeft, e.NextLeftDir = next.Edge, next.Forward
	} else {
		e.NextRight, e.NextRightDir = next.Edge, next.Forward
	}
}

// SetFace rewrites the face named by d on e.
func (d DirectedEdge) SetFace(e *Edge, f FaceID) {
	if d.Forward {
		e.LeftFace = f
	} else {
		e.RightFace = f
	}
}
