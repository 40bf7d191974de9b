package topology

import (
	"fmt"

	"github.com/planargraph/topology/internal/geom"
	"github.com/planargraph/topology/internal/ring"
	"github.com/planargraph/topology/internal/store"
)

// AddIsoNode inserts an isolated node at c and returns its id (P1).
//
// Precondition: no existing node or edge lies exactly at c. The face the
// node is recorded as belonging to is located by a point-in-polygon test
// against every candidate face whose bounding box covers c; the universe
// face is the result when no bounded face contains it.
func (t *Topology) AddIsoNode(c Coordinate) (NodeID, error) {
	bound := geom.BoundsOfCoordinate(c)
	for _, n := range t.store.SearchNodes(bound) {
		if n.Coordinate.Equal(c) {
			return 0, errCoincidentNode()
		}
	}
	for _, e := range t.store.SearchEdges(bound) {
		if geom.Distance(c, e.Coordinates) == 0 {
			return 0, errCoincidentEdge(int(e.ID))
		}
	}

	face, err := t.locateFace(c)
	if err != nil {
		return 0, err
	}

	id := t.store.NewNodeID()
	f := face
	t.store.AddNode(&store.Node{ID: id, Coordinate: c, Face: &f})

	t.bus.emit(Event{Name: EventAddNode, Node: id})
	return id, nil
}

// RemoveIsoNode deletes an isolated node (P2).
//
// Precondition: the node exists and is isolated.
func (t *Topology) RemoveIsoNode(id NodeID) error {
	n := t.store.Node(id)
	if n == nil {
		return errNotFound("node")
	}
	if !n.Isolated() {
		return errNotIsolated(int(id))
	}

	t.store.RemoveNode(id)
	t.bus.emit(Event{Name: EventRemoveNode, Node: id})
	return nil
}

// AddIsoEdge inserts an edge between two isolated nodes in the same face
// (P3). Both nodes lose their isolation; the new edge's nextLeft/nextRight
// both retrace the edge itself, per the hardcoded dangling-edge convention
// (spec scenario 2) — this is not derived from the general adjacency
// resolver, which would instead bounce each arriving stub back onto the
// leaving stub at the same endpoint.
func (t *Topology) AddIsoEdge(start, end NodeID, coords []Coordinate) (EdgeID, error) {
	if start == end {
		return 0, errDegenerateEdge()
	}

	sn := t.store.Node(start)
	en := t.store.Node(end)
	if sn == nil {
		return 0, errNotFound("start node")
	}
	if en == nil {
		return 0, errNotFound("end node")
	}
	if !sn.Isolated() {
		return 0, errNotIsolated(int(start))
	}
	if !en.Isolated() {
		return 0, errNotIsolated(int(end))
	}
	if *sn.Face != *en.Face {
		return 0, errDifferentFaces(int(*sn.Face), int(*en.Face))
	}
	if err := checkEndpoints(coords, sn.Coordinate, en.Coordinate); err != nil {
		return 0, err
	}
	if !geom.IsSimple(coords) {
		return 0, errNotSimple()
	}
	if err := t.checkNoConflict(coords, start, end, 0); err != nil {
		return 0, err
	}

	face := *sn.Face
	id := t.store.NewEdgeID()
	e := &store.Edge{
		ID:          id,
		Start:       start,
		End:         end,
		Coordinates: cloneCoords(coords),
		LeftFace:    face,
		RightFace:   face,
	}
	fwd := store.DirectedEdge{Edge: id, Forward: true}
	rev := store.DirectedEdge{Edge: id, Forward: false}
	fwd.SetNext(e, fwd)
	rev.SetNext(e, rev)

	t.store.AddEdge(e)
	sn.Face = nil
	en.Face = nil

	t.bus.emit(Event{Name: EventAddEdge, Edge: id})
	return id, nil
}

// AddEdgeNewFaces inserts a connecting edge (P4), destroying any face it
// splits and replacing it with freshly allocated faces.
func (t *Topology) AddEdgeNewFaces(start, end NodeID, coords []Coordinate) (EdgeID, error) {
	return t.addEdge(start, end, coords, true)
}

// AddEdgeModFace inserts a connecting edge (P4), recycling the id of the
// face it splits for whichever portion the face splitter leaves behind.
func (t *Topology) AddEdgeModFace(start, end NodeID, coords []Coordinate) (EdgeID, error) {
	return t.addEdge(start, end, coords, false)
}

func (t *Topology) addEdge(start, end NodeID, coords []Coordinate, newFace bool) (EdgeID, error) {
	sn := t.store.Node(start)
	en := t.store.Node(end)
	if sn == nil {
		return 0, errNotFound("start node")
	}
	if en == nil {
		return 0, errNotFound("end node")
	}
	if err := checkEndpoints(coords, sn.Coordinate, en.Coordinate); err != nil {
		return 0, err
	}
	if !geom.IsSimple(coords) {
		return 0, errNotSimple()
	}
	if err := t.checkNoConflict(coords, start, end, 0); err != nil {
		return 0, err
	}

	startAz, err := geom.Azimuth(coords[0], coords[1])
	if err != nil {
		return 0, fmt.Errorf("topology: degenerate segment at start of new edge: %w", err)
	}
	endAz, err := geom.Azimuth(coords[len(coords)-1], coords[len(coords)-2])
	if err != nil {
		return 0, fmt.Errorf("topology: degenerate segment at end of new edge: %w", err)
	}

	startFace, err := t.faceAtEndpoint(start, startAz)
	if err != nil {
		return 0, err
	}
	endFace, err := t.faceAtEndpoint(end, endAz)
	if err != nil {
		return 0, err
	}
	if startFace != endFace {
		return 0, errSideConflict()
	}
	oldFace := startFace

	id := t.store.NewEdgeID()
	e := &store.Edge{
		ID:          id,
		Start:       start,
		End:         end,
		Coordinates: cloneCoords(coords),
		LeftFace:    oldFace,
		RightFace:   oldFace,
	}

	if err := ring.LinkNewEdge(t.store, e); err != nil {
		return 0, err
	}

	t.store.AddEdge(e)
	if sn.Isolated() {
		sn.Face = nil
	}
	if en.Isolated() {
		en.Face = nil
	}

	t.bus.emit(Event{Name: EventAddEdge, Edge: id})

	// The face splitter always mints a fresh id for a newly enclosed
	// interior, on both the new-face and mod-face paths — only the old
	// face's *remaining* territory is a candidate for id reuse, and only
	// in mod-face mode does id reuse happen at all (see DESIGN.md). The id
	// itself is allocated lazily, inside SplitFace, so a side that turns
	// out not to close never spends one.
	leftFaceID, leftSplit, err := ring.SplitFace(t.store, store.DirectedEdge{Edge: id, Forward: true}, t.store.NewFaceID)
	if err != nil {
		return 0, err
	}
	if leftSplit {
		t.bus.emit(Event{Name: EventAddFace, Face: leftFaceID})
	}

	rightFaceID, rightSplit, err := ring.SplitFace(t.store, store.DirectedEdge{Edge: id, Forward: false}, t.store.NewFaceID)
	if err != nil {
		return 0, err
	}
	if rightSplit {
		t.bus.emit(Event{Name: EventAddFace, Face: rightFaceID})
	}

	if newFace && oldFace != store.UniverseFace && leftSplit && rightSplit {
		// Both sides took fresh faces, so no territory of the old face is
		// left over: it is removed without a remainder face.
		t.store.RemoveFace(oldFace)
		t.bus.emit(Event{Name: EventRemoveFace, Face: oldFace})
	} else if newFace && oldFace != store.UniverseFace && (leftSplit || rightSplit) {
		remainder := t.store.NewFaceID()
		bound, _ := t.store.FaceBounds(oldFace)
		t.store.AddFace(&store.Face{ID: remainder}, bound)
		ring.RenameFace(t.store, oldFace, remainder)
		t.store.RemoveFace(oldFace)
		t.bus.emit(Event{Name: EventAddFace, Face: remainder})
		t.bus.emit(Event{Name: EventRemoveFace, Face: oldFace})
	}

	return id, nil
}

// RemEdgeNewFace deletes edge and heals any resulting face merge by
// replacing both sides with a freshly allocated face (P5).
func (t *Topology) RemEdgeNewFace(id EdgeID) error {
	return t.remEdge(id, true)
}

// RemEdgeModFace deletes edge and heals any resulting face merge by
// recycling the right-hand face, preserving the floodface bias noted in
// spec §9 rather than "fixing" it (P5).
func (t *Topology) RemEdgeModFace(id EdgeID) error {
	return t.remEdge(id, false)
}

func (t *Topology) remEdge(id EdgeID, newFace bool) error {
	e := t.store.Edge(id)
	if e == nil {
		return errNotFound("edge")
	}

	left, right := e.LeftFace, e.RightFace
	startIsolates := willBecomeIsolated(t.store, e, e.Start)
	endIsolates := willBecomeIsolated(t.store, e, e.End)

	if err := ring.UnlinkEdge(t.store, e); err != nil {
		return err
	}

	sn := t.store.Node(e.Start)
	en := t.store.Node(e.End)

	t.store.RemoveEdge(id)
	t.bus.emit(Event{Name: EventRemoveEdge, Edge: id})

	result := ring.HealFace(t.store, left, right, newFace)
	if result.Created {
		t.bus.emit(Event{Name: EventAddFace, Face: result.Survivor})
	}
	for _, d := range result.Destroyed {
		t.bus.emit(Event{Name: EventRemoveFace, Face: d})
	}

	survivor := left
	if result.Merged {
		survivor = result.Survivor
	}

	if startIsolates {
		f := survivor
		sn.Face = &f
	}
	if endIsolates {
		f := survivor
		en.Face = &f
	}

	return nil
}

// willBecomeIsolated reports whether node v has no other incident edge
// besides e. Must run before e is removed from the store.
func willBecomeIsolated(s *store.Store, e *store.Edge, v store.NodeID) bool {
	for _, other := range s.AllEdges() {
		if other.ID == e.ID {
			continue
		}
		if other.Start == v || other.End == v {
			return false
		}
	}
	return true
}

// ModEdgeSplit splits edge at the projection of c, creating a new node
// there and a new trailing edge carrying the same face references (P6).
//
// Precondition: c projects strictly onto the interior of edge's polyline
// (not at either endpoint).
func (t *Topology) ModEdgeSplit(id EdgeID, c Coordinate) (NodeID, error) {
	e := t.store.Edge(id)
	if e == nil {
		return 0, errNotFound("edge")
	}

	proj := geom.Project(e.Coordinates, c)
	if !proj.IsInterior(e.Coordinates) {
		return 0, &SpatialError{Kind: KindDegenerate, Message: "split point does not project onto the edge's interior"}
	}

	first, second := geom.Split(e.Coordinates, c)

	nodeID := t.store.NewNodeID()
	t.store.AddNode(&store.Node{ID: nodeID, Coordinate: proj.Point})

	originalEnd := e.End
	originalNextLeft, originalNextLeftDir := e.NextLeft, e.NextLeftDir

	newID := t.store.NewEdgeID()

	// e keeps its id as the near half (start -> split point); newID is the
	// far half (split point -> original end). The rotation at the
	// original start and at the original end is untouched; only the link
	// that used to continue the ring by retracing e from its far end
	// needs to move onto the new half.
	e.Coordinates = first
	e.End = nodeID
	e.NextLeft, e.NextLeftDir = newID, true

	newEdge := &store.Edge{
		ID:           newID,
		Start:        nodeID,
		End:          originalEnd,
		Coordinates:  second,
		LeftFace:     e.LeftFace,
		RightFace:    e.RightFace,
		NextLeft:     originalNextLeft,
		NextLeftDir:  originalNextLeftDir,
		NextRight:    id,
		NextRightDir: false,
	}
	t.store.AddEdge(newEdge)
	t.store.ReindexEdge(id, geom.BoundsOfCoordinates(first))

	retargetFarEndLinks(t.store, id, newID)

	t.bus.emit(Event{Name: EventAddNode, Node: nodeID})
	t.bus.emit(Event{Name: EventAddEdge, Edge: newID})
	t.bus.emit(Event{Name: EventModEdge, Edge: id})

	return nodeID, nil
}

// retargetFarEndLinks fixes up every other edge whose ring continuation
// pointed at the pre-split edge's far-end (reverse) stub — the only stub
// whose identity moved, from oldID's reverse to newID's reverse, when the
// edge was shortened.
func retargetFarEndLinks(s *store.Store, oldID, newID store.EdgeID) {
	oldFar := store.DirectedEdge{Edge: oldID, Forward: false}
	newFar := store.DirectedEdge{Edge: newID, Forward: false}

	for _, other := range s.AllEdges() {
		if other.ID == oldID || other.ID == newID {
			continue
		}
		if other.NextLeft == oldFar.Edge && other.NextLeftDir == oldFar.Forward {
			other.NextLeft, other.NextLeftDir = newFar.Edge, newFar.Forward
		}
		if other.NextRight == oldFar.Edge && other.NextRightDir == oldFar.Forward {
			other.NextRight, other.NextRightDir = newFar.Edge, newFar.Forward
		}
	}
}

// ModEdgeHeal merges e1 and e2 at their one shared, otherwise-unconnected
// node, keeping e1's id and deleting e2 (P7).
func (t *Topology) ModEdgeHeal(e1, e2 EdgeID) (NodeID, error) {
	return t.healEdges(e1, e2, false)
}

// NewEdgeHeal merges e1 and e2 at their one shared, otherwise-unconnected
// node, allocating a fresh edge id for the merged result and deleting both
// originals (P7, "new" variant per spec §9's symmetry instruction).
func (t *Topology) NewEdgeHeal(e1, e2 EdgeID) (NodeID, error) {
	return t.healEdges(e1, e2, true)
}

func (t *Topology) healEdges(e1ID, e2ID EdgeID, newEdge bool) (NodeID, error) {
	s := t.store
	e1 := s.Edge(e1ID)
	e2 := s.Edge(e2ID)
	if e1 == nil || e2 == nil {
		return 0, errNotFound("edge")
	}

	shared, ok := sharedEndpoint(e1, e2)
	if !ok {
		return 0, &SpatialError{Kind: KindEndpoint, Message: "edges do not share exactly one endpoint"}
	}
	n := s.Node(shared)
	if n == nil || n.Isolated() {
		return 0, errNotFound("shared node")
	}
	for _, other := range s.AllEdges() {
		if other.ID == e1ID || other.ID == e2ID {
			continue
		}
		if other.Start == shared || other.End == shared {
			return 0, errNotIsolated(int(shared))
		}
	}
	// Each edge contributes its left/right faces to the merged edge as
	// traversed in the surviving direction (far1 -> shared -> far2), which
	// means swapping an edge's own Left/Right whenever its stored
	// Start/End runs the other way.
	flip1 := e1.Start == shared
	flip2 := e2.End == shared
	adjLeft1, adjRight1 := e1.LeftFace, e1.RightFace
	if flip1 {
		adjLeft1, adjRight1 = e1.RightFace, e1.LeftFace
	}
	adjLeft2, adjRight2 := e2.LeftFace, e2.RightFace
	if flip2 {
		adjLeft2, adjRight2 = e2.RightFace, e2.LeftFace
	}
	if adjLeft1 != adjLeft2 || adjRight1 != adjRight2 {
		return 0, errSideConflict()
	}

	far1 := otherEnd(e1, shared)
	far2 := otherEnd(e2, shared)

	c1 := orientEndingAt(e1, shared)
	c2 := orientStartingAt(e2, shared)
	coords := make([]Coordinate, 0, len(c1)+len(c2)-1)
	coords = append(coords, c1...)
	coords = append(coords, c2[1:]...)

	departFar1 := store.DirectedEdge{Edge: e1ID, Forward: e1.Start == far1}
	arriveFar1 := store.DirectedEdge{Edge: e1ID, Forward: e1.End == far1}
	departFar2 := store.DirectedEdge{Edge: e2ID, Forward: e2.Start == far2}
	arriveFar2 := store.DirectedEdge{Edge: e2ID, Forward: e2.End == far2}

	survivorID := e1ID
	if newEdge {
		survivorID = s.NewEdgeID()
	}
	survDepartFar1 := store.DirectedEdge{Edge: survivorID, Forward: true}
	survDepartFar2 := store.DirectedEdge{Edge: survivorID, Forward: false}

	remap := func(d store.DirectedEdge) store.DirectedEdge {
		switch d {
		case departFar1:
			return survDepartFar1
		case departFar2:
			return survDepartFar2
		default:
			return d
		}
	}

	survivor := &store.Edge{
		ID:          survivorID,
		Start:       far1,
		End:         far2,
		Coordinates: coords,
		LeftFace:    adjLeft1,
		RightFace:   adjRight1,
	}
	nl := remap(arriveFar2.Next(e2))
	survivor.NextLeft, survivor.NextLeftDir = nl.Edge, nl.Forward
	nr := remap(arriveFar1.Next(e1))
	survivor.NextRight, survivor.NextRightDir = nr.Edge, nr.Forward

	for _, other := range s.AllEdges() {
		if other.ID == e1ID || other.ID == e2ID {
			continue
		}
		cur := store.DirectedEdge{Edge: other.NextLeft, Forward: other.NextLeftDir}
		if nd := remap(cur); nd != cur {
			other.NextLeft, other.NextLeftDir = nd.Edge, nd.Forward
		}
		cur = store.DirectedEdge{Edge: other.NextRight, Forward: other.NextRightDir}
		if nd := remap(cur); nd != cur {
			other.NextRight, other.NextRightDir = nd.Edge, nd.Forward
		}
	}

	s.RemoveEdge(e1ID)
	s.RemoveEdge(e2ID)
	s.RemoveNode(shared)
	s.AddEdge(survivor)

	t.bus.emit(Event{Name: EventRemoveNode, Node: shared})
	if newEdge {
		t.bus.emit(Event{Name: EventRemoveEdge, Edge: e1ID})
		t.bus.emit(Event{Name: EventRemoveEdge, Edge: e2ID})
		t.bus.emit(Event{Name: EventAddEdge, Edge: survivorID})
	} else {
		t.bus.emit(Event{Name: EventRemoveEdge, Edge: e2ID})
		t.bus.emit(Event{Name: EventModEdge, Edge: survivorID})
	}

	return shared, nil
}

func otherEnd(e *store.Edge, shared store.NodeID) store.NodeID {
	if e.Start == shared {
		return e.End
	}
	return e.Start
}

// orientEndingAt returns e's coordinates ordered so the sequence ends at
// node.
func orientEndingAt(e *store.Edge, node store.NodeID) []Coordinate {
	if e.End == node {
		return e.Coordinates
	}
	return reversedCoords(e.Coordinates)
}

// orientStartingAt returns e's coordinates ordered so the sequence starts
// at node.
func orientStartingAt(e *store.Edge, node store.NodeID) []Coordinate {
	if e.Start == node {
		return e.Coordinates
	}
	return reversedCoords(e.Coordinates)
}

func reversedCoords(cs []Coordinate) []Coordinate {
	out := make([]Coordinate, len(cs))
	for i, c := range cs {
		out[len(cs)-1-i] = c
	}
	return out
}

func sharedEndpoint(e1, e2 *store.Edge) (store.NodeID, bool) {
	ends1 := [2]store.NodeID{e1.Start, e1.End}
	ends2 := [2]store.NodeID{e2.Start, e2.End}
	var shared []store.NodeID
	for _, a := range ends1 {
		for _, b := range ends2 {
			if a == b {
				shared = append(shared, a)
			}
		}
	}
	if len(shared) != 1 {
		return 0, false
	}
	return shared[0], true
}

// faceAtEndpoint returns the single face occupying node v's angular
// neighborhood at azimuth az: the node's own recorded face when isolated,
// or the resolved adjacent face when connected (erroring if the clockwise
// and counter-clockwise resolutions disagree, which indicates a
// pre-existing structural contradiction rather than a precondition this
// caller violated).
func (t *Topology) faceAtEndpoint(v store.NodeID, az float64) (store.FaceID, error) {
	n := t.store.Node(v)
	if n.Isolated() {
		return *n.Face, nil
	}
	res, err := ring.Resolve(t.store, v, az)
	if err != nil {
		return 0, err
	}
	if !res.HasNeighbors {
		return 0, &CorruptTopologyError{Message: fmt.Sprintf("node %d: not isolated but has no incident stubs", v)}
	}
	if res.CWFace != res.CCWFace {
		return 0, &CorruptTopologyError{
			Message: fmt.Sprintf("node %d: adjacent faces disagree (%d vs %d)", v, res.CWFace, res.CCWFace),
		}
	}
	return res.CWFace, nil
}

// locateFace finds the face whose recovered shell contains c, falling back
// to the universe when no bounded face does.
func (t *Topology) locateFace(c Coordinate) (store.FaceID, error) {
	bound := geom.BoundsOfCoordinate(c)
	found := store.FaceID(store.UniverseFace)
	for _, f := range t.store.SearchFaces(bound) {
		shell, err := t.faceShell(f.ID)
		if err != nil {
			continue
		}
		if geom.PointInPolygon(c, shell) {
			found = f.ID
		}
	}
	return found, nil
}

// checkNoConflict rejects a new edge's geometry if it coincides with,
// properly crosses, or improperly touches any existing edge. A touch is
// tolerated when the touching edge shares one of the new edge's declared
// endpoint nodes — that is the ordinary, expected way edges connect.
func (t *Topology) checkNoConflict(coords []Coordinate, startNode, endNode store.NodeID, exclude store.EdgeID) error {
	bound := geom.BoundsOfCoordinates(coords)
	for _, e := range t.store.SearchEdges(bound) {
		if e.ID == exclude {
			continue
		}
		rel := geom.Relate(coords, e.Coordinates)
		if rel.Coincident {
			return errCoincidentEdge(int(e.ID))
		}
		if rel.Crosses {
			return errCrosses(int(e.ID))
		}
		if rel.Touches {
			sharesEndpoint := e.Start == startNode || e.Start == endNode ||
				e.End == startNode || e.End == endNode
			if !sharesEndpoint {
				return errIntersects(int(e.ID))
			}
		}
	}
	return nil
}

func checkEndpoints(coords []Coordinate, start, end Coordinate) error {
	if len(coords) < 2 {
		return errNotSimple()
	}
	if !coords[0].Equal(start) {
		return errEndpointMismatch("start")
	}
	if !coords[len(coords)-1].Equal(end) {
		return errEndpointMismatch("end")
	}
	return nil
}

func cloneCoords(cs []Coordinate) []Coordinate {
	out := make([]Coordinate, len(cs))
	copy(out, cs)
	return out
}
