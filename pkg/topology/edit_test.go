package topology

import (
	"errors"
	"testing"

	"github.com/planargraph/topology/internal/geom"
)

func mustAddNode(t *testing.T, top *Topology, c Coordinate) NodeID {
	t.Helper()
	id, err := top.AddIsoNode(c)
	if err != nil {
		t.Fatalf("AddIsoNode(%v): %v", c, err)
	}
	return id
}

func TestAddIsoNode(t *testing.T) {
	top := CreateTopology("t", 0, DefaultTolerance)

	n1 := mustAddNode(t, top, Coordinate{X: 0, Y: 0})
	snap, ok := top.GetNode(n1)
	if !ok {
		t.Fatal("expected the new node to exist")
	}
	if !snap.Isolated {
		t.Error("expected a freshly added node to be isolated")
	}
	if snap.Face != UniverseFace {
		t.Errorf("expected an isolated node in an empty topology to belong to the universe, got %d", snap.Face)
	}

	if _, err := top.AddIsoNode(Coordinate{X: 0, Y: 0}); err == nil {
		t.Fatal("expected an error adding a node coincident with an existing node")
	} else {
		var se *SpatialError
		if !errors.As(err, &se) || se.Kind != KindCoincidence {
			t.Errorf("expected a KindCoincidence SpatialError, got %v", err)
		}
	}
}

func TestAddIsoNodeOnEdge(t *testing.T) {
	top := CreateTopology("t", 0, DefaultTolerance)
	n1 := mustAddNode(t, top, Coordinate{X: 0, Y: 0})
	n2 := mustAddNode(t, top, Coordinate{X: 10, Y: 0})
	if _, err := top.AddIsoEdge(n1, n2, []Coordinate{{X: 0, Y: 0}, {X: 10, Y: 0}}); err != nil {
		t.Fatalf("AddIsoEdge: %v", err)
	}

	if _, err := top.AddIsoNode(Coordinate{X: 5, Y: 0}); err == nil {
		t.Fatal("expected an error adding a node that lies exactly on an existing edge")
	} else {
		var se *SpatialError
		if !errors.As(err, &se) || se.Kind != KindCoincidence {
			t.Errorf("expected a KindCoincidence SpatialError, got %v", err)
		}
	}
}

func TestRemoveIsoNode(t *testing.T) {
	top := CreateTopology("t", 0, DefaultTolerance)
	n1 := mustAddNode(t, top, Coordinate{X: 0, Y: 0})

	if err := top.RemoveIsoNode(n1); err != nil {
		t.Fatalf("RemoveIsoNode: %v", err)
	}
	if _, ok := top.GetNode(n1); ok {
		t.Error("expected the node to be gone")
	}

	if err := top.RemoveIsoNode(n1); err == nil {
		t.Fatal("expected an error removing an already-removed node")
	} else {
		var se *SpatialError
		if !errors.As(err, &se) || se.Kind != KindNotFound {
			t.Errorf("expected a KindNotFound SpatialError, got %v", err)
		}
	}
}

func TestRemoveIsoNodeNotIsolated(t *testing.T) {
	top := CreateTopology("t", 0, DefaultTolerance)
	n1 := mustAddNode(t, top, Coordinate{X: 0, Y: 0})
	n2 := mustAddNode(t, top, Coordinate{X: 10, Y: 0})
	if _, err := top.AddIsoEdge(n1, n2, []Coordinate{{X: 0, Y: 0}, {X: 10, Y: 0}}); err != nil {
		t.Fatalf("AddIsoEdge: %v", err)
	}

	if err := top.RemoveIsoNode(n1); err == nil {
		t.Fatal("expected an error removing a node with an incident edge")
	} else {
		var se *SpatialError
		if !errors.As(err, &se) || se.Kind != KindIsolation {
			t.Errorf("expected a KindIsolation SpatialError, got %v", err)
		}
	}
}

func TestAddIsoEdge(t *testing.T) {
	top := CreateTopology("t", 0, DefaultTolerance)
	n1 := mustAddNode(t, top, Coordinate{X: 0, Y: 0})
	n2 := mustAddNode(t, top, Coordinate{X: 10, Y: 0})
	coords := []Coordinate{{X: 0, Y: 0}, {X: 10, Y: 0}}

	e, err := top.AddIsoEdge(n1, n2, coords)
	if err != nil {
		t.Fatalf("AddIsoEdge: %v", err)
	}

	esnap, ok := top.GetEdge(e)
	if !ok {
		t.Fatal("expected the new edge to exist")
	}
	if esnap.Start != n1 || esnap.End != n2 {
		t.Errorf("got Start=%d End=%d, want Start=%d End=%d", esnap.Start, esnap.End, n1, n2)
	}
	if esnap.LeftFace != UniverseFace || esnap.RightFace != UniverseFace {
		t.Errorf("expected both sides to be the universe, got Left=%d Right=%d", esnap.LeftFace, esnap.RightFace)
	}

	n1snap, _ := top.GetNode(n1)
	n2snap, _ := top.GetNode(n2)
	if n1snap.Isolated || n2snap.Isolated {
		t.Error("expected both endpoints to lose their isolation")
	}

	// A dangling edge's own ring retraces itself on both sides.
	fwd, err := top.GetRingEdges(e, true)
	if err != nil {
		t.Fatalf("GetRingEdges(forward): %v", err)
	}
	if len(fwd) != 1 || fwd[0] != (EdgeRef{Edge: e, Forward: true}) {
		t.Errorf("expected the forward ring to be a single self-loop, got %v", fwd)
	}
	rev, err := top.GetRingEdges(e, false)
	if err != nil {
		t.Fatalf("GetRingEdges(reverse): %v", err)
	}
	if len(rev) != 1 || rev[0] != (EdgeRef{Edge: e, Forward: false}) {
		t.Errorf("expected the reverse ring to be a single self-loop, got %v", rev)
	}
}

func TestAddIsoEdgeDegenerate(t *testing.T) {
	top := CreateTopology("t", 0, DefaultTolerance)
	n1 := mustAddNode(t, top, Coordinate{X: 0, Y: 0})

	if _, err := top.AddIsoEdge(n1, n1, []Coordinate{{X: 0, Y: 0}, {X: 0, Y: 0}}); err == nil {
		t.Fatal("expected an error for an edge whose start and end are the same node")
	} else {
		var se *SpatialError
		if !errors.As(err, &se) || se.Kind != KindDegenerate {
			t.Errorf("expected a KindDegenerate SpatialError, got %v", err)
		}
	}
}

func TestAddIsoEdgeNotIsolated(t *testing.T) {
	top := CreateTopology("t", 0, DefaultTolerance)
	n1 := mustAddNode(t, top, Coordinate{X: 0, Y: 0})
	n2 := mustAddNode(t, top, Coordinate{X: 10, Y: 0})
	n3 := mustAddNode(t, top, Coordinate{X: 20, Y: 0})
	if _, err := top.AddIsoEdge(n1, n2, []Coordinate{{X: 0, Y: 0}, {X: 10, Y: 0}}); err != nil {
		t.Fatalf("AddIsoEdge: %v", err)
	}

	if _, err := top.AddIsoEdge(n1, n3, []Coordinate{{X: 0, Y: 0}, {X: 20, Y: 0}}); err == nil {
		t.Fatal("expected an error reusing an endpoint that is no longer isolated")
	} else {
		var se *SpatialError
		if !errors.As(err, &se) || se.Kind != KindIsolation {
			t.Errorf("expected a KindIsolation SpatialError, got %v", err)
		}
	}
}

func TestAddIsoEdgeCrossing(t *testing.T) {
	top := CreateTopology("t", 0, DefaultTolerance)
	n1 := mustAddNode(t, top, Coordinate{X: 0, Y: 0})
	n2 := mustAddNode(t, top, Coordinate{X: 10, Y: 0})
	if _, err := top.AddIsoEdge(n1, n2, []Coordinate{{X: 0, Y: 0}, {X: 10, Y: 0}}); err != nil {
		t.Fatalf("AddIsoEdge: %v", err)
	}

	n3 := mustAddNode(t, top, Coordinate{X: 5, Y: -5})
	n4 := mustAddNode(t, top, Coordinate{X: 5, Y: 5})
	if _, err := top.AddIsoEdge(n3, n4, []Coordinate{{X: 5, Y: -5}, {X: 5, Y: 5}}); err == nil {
		t.Fatal("expected an error for an edge crossing an existing one")
	} else {
		var se *SpatialError
		if !errors.As(err, &se) || se.Kind != KindCrossing {
			t.Errorf("expected a KindCrossing SpatialError, got %v", err)
		}
	}
}

func TestAddIsoEdgeNotSimple(t *testing.T) {
	top := CreateTopology("t", 0, DefaultTolerance)
	a := mustAddNode(t, top, Coordinate{X: 0, Y: 0})
	b := mustAddNode(t, top, Coordinate{X: 0, Y: 10})
	selfCrossing := []Coordinate{
		{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 10},
	}

	if _, err := top.AddIsoEdge(a, b, selfCrossing); err == nil {
		t.Fatal("expected an error for a self-intersecting curve")
	} else {
		var se *SpatialError
		if !errors.As(err, &se) || se.Kind != KindNotSimple {
			t.Errorf("expected a KindNotSimple SpatialError, got %v", err)
		}
	}
}

func TestAddEdgeGrowsATreeWithoutSplitting(t *testing.T) {
	top := CreateTopology("t", 0, DefaultTolerance)
	n1 := mustAddNode(t, top, Coordinate{X: 0, Y: 0})
	n2 := mustAddNode(t, top, Coordinate{X: 0, Y: 10})
	n3 := mustAddNode(t, top, Coordinate{X: 10, Y: 10})

	e1, err := top.AddIsoEdge(n1, n2, []Coordinate{{X: 0, Y: 0}, {X: 0, Y: 10}})
	if err != nil {
		t.Fatalf("AddIsoEdge: %v", err)
	}

	e2, err := top.AddEdgeModFace(n2, n3, []Coordinate{{X: 0, Y: 10}, {X: 10, Y: 10}})
	if err != nil {
		t.Fatalf("AddEdgeModFace: %v", err)
	}

	if faces := top.AllFaces(); len(faces) != 1 {
		t.Errorf("expected a non-closing edge to never create a face, got %v", faces)
	}

	e1snap, _ := top.GetEdge(e1)
	e2snap, _ := top.GetEdge(e2)
	if e1snap.LeftFace != UniverseFace || e1snap.RightFace != UniverseFace {
		t.Errorf("expected e1 to still bound the universe on both sides, got %+v", e1snap)
	}
	if e2snap.LeftFace != UniverseFace || e2snap.RightFace != UniverseFace {
		t.Errorf("expected e2 to bound the universe on both sides, got %+v", e2snap)
	}

	n3snap, _ := top.GetNode(n3)
	if n3snap.Isolated {
		t.Error("expected n3 to lose its isolation once connected")
	}
}

func TestModEdgeSplitAndHealRoundTrip(t *testing.T) {
	top := CreateTopology("t", 0, DefaultTolerance)
	n1 := mustAddNode(t, top, Coordinate{X: 0, Y: 0})
	n2 := mustAddNode(t, top, Coordinate{X: 10, Y: 0})
	coords := []Coordinate{{X: 0, Y: 0}, {X: 10, Y: 0}}

	e, err := top.AddIsoEdge(n1, n2, coords)
	if err != nil {
		t.Fatalf("AddIsoEdge: %v", err)
	}

	mid, err := top.ModEdgeSplit(e, Coordinate{X: 5, Y: 0})
	if err != nil {
		t.Fatalf("ModEdgeSplit: %v", err)
	}

	if len(top.AllNodes()) != 3 || len(top.AllEdges()) != 2 {
		t.Fatalf("expected 3 nodes and 2 edges after a split, got %d nodes and %d edges",
			len(top.AllNodes()), len(top.AllEdges()))
	}

	firstHalf, _ := top.GetEdge(e)
	if firstHalf.Start != n1 || firstHalf.End != mid {
		t.Errorf("expected the near half to run n1->mid, got Start=%d End=%d", firstHalf.Start, firstHalf.End)
	}

	var secondID EdgeID
	for _, es := range top.AllEdges() {
		if es.ID != e {
			secondID = es.ID
		}
	}
	secondHalf, _ := top.GetEdge(secondID)
	if secondHalf.Start != mid || secondHalf.End != n2 {
		t.Errorf("expected the far half to run mid->n2, got Start=%d End=%d", secondHalf.Start, secondHalf.End)
	}

	healedAt, err := top.ModEdgeHeal(e, secondID)
	if err != nil {
		t.Fatalf("ModEdgeHeal: %v", err)
	}
	if healedAt != mid {
		t.Errorf("expected the heal to report the shared node %d, got %d", mid, healedAt)
	}

	if len(top.AllNodes()) != 2 || len(top.AllEdges()) != 1 {
		t.Fatalf("expected the heal to restore 2 nodes and 1 edge, got %d nodes and %d edges",
			len(top.AllNodes()), len(top.AllEdges()))
	}

	restored, ok := top.GetEdge(e)
	if !ok {
		t.Fatal("expected the surviving edge to keep e's id")
	}
	if restored.Start != n1 || restored.End != n2 {
		t.Errorf("expected the healed edge to run n1->n2, got Start=%d End=%d", restored.Start, restored.End)
	}
	if len(restored.Coordinates) != len(coords) {
		t.Errorf("expected the healed edge's coordinates to match the original, got %v want %v",
			restored.Coordinates, coords)
	}
	for i := range coords {
		if !restored.Coordinates[i].Equal(coords[i]) {
			t.Errorf("coordinate %d: got %v, want %v", i, restored.Coordinates[i], coords[i])
		}
	}

	fwd, err := top.GetRingEdges(e, true)
	if err != nil {
		t.Fatalf("GetRingEdges: %v", err)
	}
	if len(fwd) != 1 || fwd[0] != (EdgeRef{Edge: e, Forward: true}) {
		t.Errorf("expected the healed edge's ring to be a self-loop again, got %v", fwd)
	}
}

func TestModEdgeSplitRejectsEndpointProjection(t *testing.T) {
	top := CreateTopology("t", 0, DefaultTolerance)
	n1 := mustAddNode(t, top, Coordinate{X: 0, Y: 0})
	n2 := mustAddNode(t, top, Coordinate{X: 10, Y: 0})
	e, err := top.AddIsoEdge(n1, n2, []Coordinate{{X: 0, Y: 0}, {X: 10, Y: 0}})
	if err != nil {
		t.Fatalf("AddIsoEdge: %v", err)
	}

	if _, err := top.ModEdgeSplit(e, Coordinate{X: 0, Y: 0}); err == nil {
		t.Fatal("expected an error splitting at an edge's own endpoint")
	}
}

func TestRemEdgeModFaceRoundTrip(t *testing.T) {
	top := CreateTopology("t", 0, DefaultTolerance)
	n1 := mustAddNode(t, top, Coordinate{X: 0, Y: 0})
	n2 := mustAddNode(t, top, Coordinate{X: 10, Y: 0})
	e, err := top.AddIsoEdge(n1, n2, []Coordinate{{X: 0, Y: 0}, {X: 10, Y: 0}})
	if err != nil {
		t.Fatalf("AddIsoEdge: %v", err)
	}

	if err := top.RemEdgeModFace(e); err != nil {
		t.Fatalf("RemEdgeModFace: %v", err)
	}

	if _, ok := top.GetEdge(e); ok {
		t.Error("expected the edge to be gone")
	}
	n1snap, _ := top.GetNode(n1)
	n2snap, _ := top.GetNode(n2)
	if !n1snap.Isolated || !n2snap.Isolated {
		t.Error("expected both endpoints to become isolated again")
	}
	if n1snap.Face != UniverseFace || n2snap.Face != UniverseFace {
		t.Errorf("expected both endpoints to fall back to the universe, got %d and %d", n1snap.Face, n2snap.Face)
	}
	if faces := top.AllFaces(); len(faces) != 1 {
		t.Errorf("expected no face to survive removing an edge that never split anything, got %v", faces)
	}
}

func containsCoordinate(cs []Coordinate, want Coordinate) bool {
	for _, c := range cs {
		if c.Equal(want) {
			return true
		}
	}
	return false
}

// TestAddEdgeModFaceClosesASquare drives the public API through spec
// scenario 3: four addEdgeModFace calls around a square, the last of which
// closes the ring. The first three never close anything and must not
// spend a face id; the closing edge must allocate exactly one, and it must
// be id 1.
func TestAddEdgeModFaceClosesASquare(t *testing.T) {
	top := CreateTopology("t", 0, DefaultTolerance)
	n1 := mustAddNode(t, top, Coordinate{X: 0, Y: 0})
	n2 := mustAddNode(t, top, Coordinate{X: 10, Y: 0})
	n3 := mustAddNode(t, top, Coordinate{X: 10, Y: 10})
	n4 := mustAddNode(t, top, Coordinate{X: 0, Y: 10})

	if _, err := top.AddEdgeModFace(n1, n2, []Coordinate{{X: 0, Y: 0}, {X: 10, Y: 0}}); err != nil {
		t.Fatalf("AddEdgeModFace(n1,n2): %v", err)
	}
	if _, err := top.AddEdgeModFace(n2, n3, []Coordinate{{X: 10, Y: 0}, {X: 10, Y: 10}}); err != nil {
		t.Fatalf("AddEdgeModFace(n2,n3): %v", err)
	}
	if _, err := top.AddEdgeModFace(n3, n4, []Coordinate{{X: 10, Y: 10}, {X: 0, Y: 10}}); err != nil {
		t.Fatalf("AddEdgeModFace(n3,n4): %v", err)
	}
	if faces := top.AllFaces(); len(faces) != 1 {
		t.Fatalf("expected only the universe before the ring closes, got %v", faces)
	}

	e4, err := top.AddEdgeModFace(n4, n1, []Coordinate{{X: 0, Y: 10}, {X: 0, Y: 0}})
	if err != nil {
		t.Fatalf("AddEdgeModFace(n4,n1): %v", err)
	}

	if faces := top.AllFaces(); len(faces) != 2 {
		t.Fatalf("expected the universe plus exactly one new face, got %v", faces)
	}

	e4snap, _ := top.GetEdge(e4)
	newFace := e4snap.LeftFace
	if newFace == UniverseFace {
		newFace = e4snap.RightFace
	}
	if newFace != 1 {
		t.Errorf("expected closing the square to allocate face id 1, got %d", newFace)
	}

	located, err := top.GetFaceByPoint(Coordinate{X: 5, Y: 5}, 0)
	if err != nil {
		t.Fatalf("GetFaceByPoint: %v", err)
	}
	if len(located) != 1 || located[0] != newFace {
		t.Errorf("expected (5,5) to resolve to face %d, got %v", newFace, located)
	}

	shell, err := top.GetFaceGeometry(newFace)
	if err != nil {
		t.Fatalf("GetFaceGeometry: %v", err)
	}
	if !geom.PointInPolygon(Coordinate{X: 5, Y: 5}, shell) {
		t.Errorf("expected the polygonized shell to contain (5,5), got %v", shell)
	}
	for _, corner := range []Coordinate{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}} {
		if !containsCoordinate(shell, corner) {
			t.Errorf("expected the square's shell to pass through %v, got %v", corner, shell)
		}
	}
}

// TestAddEdgeNewFacesSplitsThenRemEdgeModFaceMerges extends scenario 3 with
// scenario 5: a diagonal split via addEdgeNewFaces (exercising addEdge's
// new-face path for a bounded face: both sides of the diagonal take fresh
// faces and the square's original face is removed), then
// addEdgeModFace's removal counterpart merging the two triangles back into
// one face via the right-face floodface bias.
func TestAddEdgeNewFacesSplitsThenRemEdgeModFaceMerges(t *testing.T) {
	top := CreateTopology("t", 0, DefaultTolerance)
	n1 := mustAddNode(t, top, Coordinate{X: 0, Y: 0})
	n2 := mustAddNode(t, top, Coordinate{X: 10, Y: 0})
	n3 := mustAddNode(t, top, Coordinate{X: 10, Y: 10})
	n4 := mustAddNode(t, top, Coordinate{X: 0, Y: 10})

	edges := []struct {
		a, b   NodeID
		coords []Coordinate
	}{
		{n1, n2, []Coordinate{{X: 0, Y: 0}, {X: 10, Y: 0}}},
		{n2, n3, []Coordinate{{X: 10, Y: 0}, {X: 10, Y: 10}}},
		{n3, n4, []Coordinate{{X: 10, Y: 10}, {X: 0, Y: 10}}},
		{n4, n1, []Coordinate{{X: 0, Y: 10}, {X: 0, Y: 0}}},
	}
	for _, seg := range edges {
		if _, err := top.AddEdgeModFace(seg.a, seg.b, seg.coords); err != nil {
			t.Fatalf("AddEdgeModFace(%d,%d): %v", seg.a, seg.b, err)
		}
	}
	if faces := top.AllFaces(); len(faces) != 2 {
		t.Fatalf("expected the universe plus one new face after closing the square, got %v", faces)
	}

	e5, err := top.AddEdgeNewFaces(n1, n3, []Coordinate{{X: 0, Y: 0}, {X: 10, Y: 10}})
	if err != nil {
		t.Fatalf("AddEdgeNewFaces: %v", err)
	}

	diag, ok := top.GetEdge(e5)
	if !ok {
		t.Fatal("expected the diagonal edge to exist")
	}
	upperLeft, lowerRight := diag.LeftFace, diag.RightFace
	if upperLeft == lowerRight || upperLeft == UniverseFace || lowerRight == UniverseFace {
		t.Fatalf("expected the diagonal to separate two distinct bounded faces, got Left=%d Right=%d", upperLeft, lowerRight)
	}

	located, err := top.GetFaceByPoint(Coordinate{X: 2, Y: 7}, 0)
	if err != nil {
		t.Fatalf("GetFaceByPoint: %v", err)
	}
	if len(located) != 1 || located[0] != upperLeft {
		t.Errorf("expected (2,7) to resolve to the diagonal's left face %d, got %v", upperLeft, located)
	}

	located, err = top.GetFaceByPoint(Coordinate{X: 7, Y: 2}, 0)
	if err != nil {
		t.Fatalf("GetFaceByPoint: %v", err)
	}
	if len(located) != 1 || located[0] != lowerRight {
		t.Errorf("expected (7,2) to resolve to the diagonal's right face %d, got %v", lowerRight, located)
	}

	if err := top.RemEdgeModFace(e5); err != nil {
		t.Fatalf("RemEdgeModFace: %v", err)
	}

	if _, ok := top.GetFace(upperLeft); ok {
		t.Errorf("expected face %d (the diagonal's left face) to be deleted by the merge", upperLeft)
	}
	if _, ok := top.GetFace(lowerRight); !ok {
		t.Fatalf("expected face %d (the right-face floodface survivor) to still exist", lowerRight)
	}

	located, err = top.GetFaceByPoint(Coordinate{X: 5, Y: 5}, 0)
	if err != nil {
		t.Fatalf("GetFaceByPoint: %v", err)
	}
	if len(located) != 1 || located[0] != lowerRight {
		t.Errorf("expected the merged square to resolve to the surviving right face %d, got %v", lowerRight, located)
	}

	shell, err := top.GetFaceGeometry(lowerRight)
	if err != nil {
		t.Fatalf("GetFaceGeometry: %v", err)
	}
	for _, corner := range []Coordinate{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}} {
		if !containsCoordinate(shell, corner) {
			t.Errorf("expected the remerged square's shell to pass through %v, got %v", corner, shell)
		}
	}
}

func TestModEdgeHealRejectsUnsharedEdges(t *testing.T) {
	top := CreateTopology("t", 0, DefaultTolerance)
	n1 := mustAddNode(t, top, Coordinate{X: 0, Y: 0})
	n2 := mustAddNode(t, top, Coordinate{X: 10, Y: 0})
	n3 := mustAddNode(t, top, Coordinate{X: 0, Y: 10})
	n4 := mustAddNode(t, top, Coordinate{X: 10, Y: 10})

	e1, err := top.AddIsoEdge(n1, n2, []Coordinate{{X: 0, Y: 0}, {X: 10, Y: 0}})
	if err != nil {
		t.Fatalf("AddIsoEdge: %v", err)
	}
	e2, err := top.AddIsoEdge(n3, n4, []Coordinate{{X: 0, Y: 10}, {X: 10, Y: 10}})
	if err != nil {
		t.Fatalf("AddIsoEdge: %v", err)
	}

	if _, err := top.ModEdgeHeal(e1, e2); err == nil {
		t.Fatal("expected an error healing two edges that share no endpoint")
	}
}
