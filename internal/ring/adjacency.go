package ring

import (
	"fmt"
	"math"

	"github.com/planargraph/topology/internal/geom"
	"github.com/planargraph/topology/internal/store"
)

// AdjacencyResult carries the output of resolving where a new directed
// stub at azimuth az sits in the rotational order of edges already
// incident to a node.
type AdjacencyResult struct {
	HasNeighbors bool
	NextCW       store.DirectedEdge
	NextCCW      store.DirectedEdge
	CWFace       store.FaceID
	CCWFace      store.FaceID
}

// IncidentStubs returns every directed-edge stub leaving node n: for each
// edge with Start == n the forward stub, for each edge with End == n the
// reverse stub (a loop edge with Start == End == n contributes both).
func IncidentStubs(s *store.Store, n store.NodeID) []store.DirectedEdge {
	var stubs []store.DirectedEdge
	for _, e := range s.AllEdges() {
		if e.Start == n {
			stubs = append(stubs, store.DirectedEdge{Edge: e.ID, Forward: true})
		}
		if e.End == n {
			stubs = append(stubs, store.DirectedEdge{Edge: e.ID, Forward: false})
		}
	}
	return stubs
}

// EdgeAzimuth returns the azimuth of edge e's first segment as traversed
// starting at its Start node (forward) or its End node (!forward).
func EdgeAzimuth(e *store.Edge, forward bool) (float64, error) {
	cs := e.Coordinates
	if forward {
		return geom.Azimuth(cs[0], cs[1])
	}
	return geom.Azimuth(cs[len(cs)-1], cs[len(cs)-2])
}

// StubAzimuth is EdgeAzimuth for a stub already resolved against a store.
func StubAzimuth(s *store.Store, d store.DirectedEdge) (float64, error) {
	return EdgeAzimuth(s.Edge(d.Edge), d.Forward)
}

// Resolve finds, among the stubs already incident to node n, the one
// immediately clockwise (NextCW, smallest positive azimuth difference from
// az) and immediately counter-clockwise (NextCCW, largest azimuth
// difference) of a hypothetical new stub leaving n at azimuth az. Per
// spec, the faces named are the face left of NextCW in its direction and
// the face right of NextCCW in its direction; if those disagree, the
// topology already has a structural contradiction.
func Resolve(s *store.Store, n store.NodeID, az float64) (AdjacencyResult, error) {
	stubs := IncidentStubs(s, n)
	if len(stubs) == 0 {
		return AdjacencyResult{}, nil
	}

	var cw, ccw store.DirectedEdge
	cwDiff, ccwDiff := math.Inf(1), math.Inf(-1)

	for _, st := range stubs {
		stAz, err := StubAzimuth(s, st)
		if err != nil {
			return AdjacencyResult{}, err
		}
		diff := math.Mod(stAz-az+2*math.Pi, 2*math.Pi)
		if diff == 0 {
			diff = 2 * math.Pi
		}
		if diff < cwDiff {
			cwDiff, cw = diff, st
		}
		if diff > ccwDiff {
			ccwDiff, ccw = diff, st
		}
	}

	cwEdge := s.Edge(cw.Edge)
	ccwEdge := s.Edge(ccw.Edge)
	cwFace := cw.Face(cwEdge)
	ccwFace := ccw.OppositeFace(ccwEdge)

	return AdjacencyResult{
		HasNeighbors: true,
		NextCW:       cw,
		NextCCW:      ccw,
		CWFace:       cwFace,
		CCWFace:      ccwFace,
	}, nil
}

// LinkNewEdge wires e's NextLeft/NextRight links (and redirects whichever
// existing directed edges previously continued into e's insertion point)
// so that e is spliced into the rotational order at both of its
// endpoints. e must already have Start, End, and Coordinates populated but
// must NOT yet be present in s (the resolver must see only the edges
// already stored). Does not touch e.LeftFace/RightFace.
func LinkNewEdge(s *store.Store, e *store.Edge) error {
	leavingStart := store.DirectedEdge{Edge: e.ID, Forward: true}
	arrivingStart := store.DirectedEdge{Edge: e.ID, Forward: false}
	if err := linkEndpoint(s, e, e.Start, leavingStart, arrivingStart); err != nil {
		return fmt.Errorf("ring: linking start endpoint: %w", err)
	}

	leavingEnd := store.DirectedEdge{Edge: e.ID, Forward: false}
	arrivingEnd := store.DirectedEdge{Edge: e.ID, Forward: true}
	if err := linkEndpoint(s, e, e.End, leavingEnd, arrivingEnd); err != nil {
		return fmt.Errorf("ring: linking end endpoint: %w", err)
	}

	return nil
}

// linkEndpoint wires the link for one endpoint of e. e is passed explicitly
// rather than looked up via s.Edge(leaving.Edge), since LinkNewEdge's
// contract requires e to not yet be present in the store when this runs.
func linkEndpoint(s *store.Store, e *store.Edge, v store.NodeID, leaving, arriving store.DirectedEdge) error {
	stubs := IncidentStubs(s, v)
	if len(stubs) == 0 {
		// v was isolated: e curls back on itself here, so the ring
		// bounding either face reaches this dangling tip and retraces
		// e in the opposite direction rather than stopping.
		arriving.SetNext(e, leaving)
		return nil
	}

	az, err := EdgeAzimuth(e, leaving.Forward)
	if err != nil {
		return err
	}

	result, err := Resolve(s, v, az)
	if err != nil {
		return err
	}

	arriving.SetNext(e, result.NextCW)

	predecessor := reverseStub(result.NextCCW)
	predecessorEdge := s.Edge(predecessor.Edge)
	predecessor.SetNext(predecessorEdge, leaving)

	return nil
}

func reverseStub(d store.DirectedEdge) store.DirectedEdge {
	return store.DirectedEdge{Edge: d.Edge, Forward: !d.Forward}
}

// UnlinkEdge reverses LinkNewEdge: it removes e's two stubs from the
// rotational order at its endpoints, redirecting whichever directed edges
// previously continued into e so that they skip straight to e's
// successors. Must be called while e is still present in s (so the
// search can find e's current neighbors); the caller removes e from the
// store afterward.
func UnlinkEdge(s *store.Store, e *store.Edge) error {
	leavingStart := store.DirectedEdge{Edge: e.ID, Forward: true}
	arrivingStart := store.DirectedEdge{Edge: e.ID, Forward: false}
	unlinkEndpoint(s, e.Start, leavingStart, arrivingStart)

	leavingEnd := store.DirectedEdge{Edge: e.ID, Forward: false}
	arrivingEnd := store.DirectedEdge{Edge: e.ID, Forward: true}
	unlinkEndpoint(s, e.End, leavingEnd, arrivingEnd)

	return nil
}

func unlinkEndpoint(s *store.Store, v store.NodeID, leaving, arriving store.DirectedEdge) {
	e := s.Edge(leaving.Edge)
	successor := arriving.Next(e)
	if successor == leaving {
		// e was the only edge at v; nothing else references it.
		return
	}

	for _, st := range IncidentStubs(s, v) {
		cand := reverseStub(st)
		if cand == arriving {
			continue
		}
		candEdge := s.Edge(cand.Edge)
		if cand.Next(candEdge) == leaving {
			cand.SetNext(candEdge, successor)
			break
		}
	}
}
