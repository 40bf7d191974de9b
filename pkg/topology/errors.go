package topology

import "fmt"

// SpatialError is the single error kind raised by every precondition check
// in the edit API (spec §7). Kind discriminates the taxonomy; Message is a
// human-readable description built by the constructor that raised it.
type SpatialError struct {
	Kind    string
	Message string
}

func (e *SpatialError) Error() string {
	return e.Message
}

const (
	KindCoincidence  = "coincidence"
	KindCrossing     = "crossing"
	KindIntersection = "intersection"
	KindEndpoint     = "endpoint-mismatch"
	KindIsolation    = "isolation-violation"
	KindContainment  = "containment-violation"
	KindNotSimple    = "non-simple-geometry"
	KindDegenerate   = "degenerate-edge"
	KindSideConflict = "side-location-conflict"
	KindNotFound     = "not-found"
)

func errCoincidentNode() *SpatialError {
	return &SpatialError{Kind: KindCoincidence, Message: "coincident node"}
}

func errCoincidentEdge(id int) *SpatialError {
	return &SpatialError{Kind: KindCoincidence, Message: fmt.Sprintf("coincident edge %d", id)}
}

func errCrosses(id int) *SpatialError {
	return &SpatialError{Kind: KindCrossing, Message: fmt.Sprintf("geometry crosses edge %d", id)}
}

func errIntersects(id int) *SpatialError {
	return &SpatialError{Kind: KindIntersection, Message: fmt.Sprintf("geometry intersects edge %d", id)}
}

func errEndpointMismatch(which string) *SpatialError {
	return &SpatialError{Kind: KindEndpoint, Message: fmt.Sprintf("%s coordinate does not match declared node", which)}
}

func errNotIsolated(id int) *SpatialError {
	return &SpatialError{Kind: KindIsolation, Message: fmt.Sprintf("node %d is not isolated", id)}
}

func errDifferentFaces(a, b int) *SpatialError {
	return &SpatialError{
		Kind:    KindContainment,
		Message: fmt.Sprintf("geometry crosses an edge (endnodes in faces %d and %d)", a, b),
	}
}

func errNotSimple() *SpatialError {
	return &SpatialError{Kind: KindNotSimple, Message: "curve not simple"}
}

func errDegenerateEdge() *SpatialError {
	return &SpatialError{
		Kind:    KindDegenerate,
		Message: "start and end node cannot be the same for an isolated edge",
	}
}

func errSideConflict() *SpatialError {
	return &SpatialError{Kind: KindSideConflict, Message: "new edge's two ends disagree on the face to split"}
}

func errNotFound(what string) *SpatialError {
	return &SpatialError{Kind: KindNotFound, Message: what + " not found"}
}

// CorruptTopologyError is raised, never as a *SpatialError, when a
// mutation discovers a structural contradiction that must predate the
// current edit — e.g. an adjacency resolution where the clockwise and
// counter-clockwise faces disagree (spec §4.4). It signals a bug in a
// prior edit, not a precondition violation by the caller.
type CorruptTopologyError struct {
	Message string
}

func (e *CorruptTopologyError) Error() string {
	return "corrupt topology: " + e.Message
}
