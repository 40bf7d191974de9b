// Package topology provides a clean public API over an in-memory planar
// topology: a graph of nodes, edges, and faces partitioning the plane, edited
// through a small set of primitives that preserve its invariants through
// every mutation.
package topology

import (
	"github.com/planargraph/topology/internal/geom"
	"github.com/planargraph/topology/internal/store"
)

// Coordinate is an ordered pair of finite floating-point numbers.
type Coordinate = geom.Coordinate

// NodeID, EdgeID, and FaceID name entities within a Topology. They remain
// valid only for the Topology that issued them.
type NodeID = store.NodeID
type EdgeID = store.EdgeID
type FaceID = store.FaceID

// UniverseFace is the id of the unbounded exterior face present in every
// Topology for its entire lifetime.
const UniverseFace = store.UniverseFace

// DefaultTolerance is the tolerance CreateTopology uses when the caller has
// no snapping requirement of its own, following the teacher's
// DefaultParseOptions()-style naming for a zero-knob default.
const DefaultTolerance = 0.0

// Topology owns the entity store, its spatial indexes (by way of the
// store), and the event bus. It is not safe for concurrent use — see spec
// §5: a single topology instance is edited by exactly one goroutine at a
// time.
type Topology struct {
	name      string
	srid      int
	tolerance float64

	store *store.Store
	bus   *eventBus
}

// CreateTopology returns a Topology containing only the universe face,
// empty node/edge collections, and empty spatial indexes. name, srid, and
// tolerance are stored verbatim; tolerance is not consulted by any
// precondition in this package — it exists for a caller performing
// point-snapping above this kernel (spec §9, "Tolerance semantics").
func CreateTopology(name string, srid int, tolerance float64) *Topology {
	return &Topology{
		name:      name,
		srid:      srid,
		tolerance: tolerance,
		store:     store.New(),
		bus:       newEventBus(),
	}
}

// Name returns the topology's name, as given to CreateTopology.
func (t *Topology) Name() string { return t.name }

// SRID returns the topology's spatial reference id, as given to CreateTopology.
func (t *Topology) SRID() int { return t.srid }

// Tolerance returns the stored tolerance, as given to CreateTopology.
func (t *Topology) Tolerance() float64 { return t.tolerance }

// On subscribes fn to the named event channel (one of the Event* constants)
// and returns a handle that can later be passed to Un. Per spec §4.8,
// emission is synchronous in registration order and subscribers must not
// mutate the topology from inside fn.
func (t *Topology) On(name string, fn func(Event)) int {
	return t.bus.on(name, fn)
}

// Un removes the subscription identified by handle (as returned from On).
func (t *Topology) Un(name string, handle int) {
	t.bus.un(name, handle)
}

// NodeSnapshot is a read-only copy of a node's state at the time it was
// taken; it does not track later mutations of the topology.
type NodeSnapshot struct {
	ID         NodeID
	Coordinate Coordinate
	Isolated   bool
	Face       FaceID // valid only when Isolated
}

// EdgeSnapshot is a read-only copy of an edge's state.
type EdgeSnapshot struct {
	ID          EdgeID
	Start, End  NodeID
	Coordinates []Coordinate
	LeftFace    FaceID
	RightFace   FaceID
}

// FaceSnapshot is a read-only copy of a face's identity (faces carry no
// geometry of their own; use GetFaceGeometry for the recovered shell).
type FaceSnapshot struct {
	ID FaceID
}

func nodeSnapshot(n *store.Node) NodeSnapshot {
	snap := NodeSnapshot{ID: n.ID, Coordinate: n.Coordinate, Isolated: n.Isolated()}
	if n.Face != nil {
		snap.Face = *n.Face
	}
	return snap
}

func edgeSnapshot(e *store.Edge) EdgeSnapshot {
	coords := make([]Coordinate, len(e.Coordinates))
	copy(coords, e.Coordinates)
	return EdgeSnapshot{
		ID:          e.ID,
		Start:       e.Start,
		End:         e.End,
		Coordinates: coords,
		LeftFace:    e.LeftFace,
		RightFace:   e.RightFace,
	}
}
