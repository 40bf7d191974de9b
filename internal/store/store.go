package store

import (
	"github.com/dhconnelly/rtreego"

	"github.com/planargraph/topology/internal/geom"
)

// boundsEpsilon widens degenerate (zero-area) boxes before handing them to
// rtreego, which requires strictly positive side lengths for every
// dimension. Mirrors the teacher's indexedFeature.Bounds() epsilon trick
// in pkg/s57/s57.go for point geometries.
const boundsEpsilon = 1e-9

// Store owns the three entity collections (nodes, edges, faces), their id
// counters, and the three R-tree spatial indexes keyed by bounding box.
// It is the "entity store" of the component table: a flat array-plus-index
// layer, not a pointer-chasing tree.
type Store struct {
	nodes map[NodeID]*Node
	edges map[EdgeID]*Edge
	faces map[FaceID]*Face

	nextNodeID NodeID
	nextEdgeID EdgeID
	nextFaceID FaceID

	nodeIndex *rtreego.Rtree
	edgeIndex *rtreego.Rtree
	faceIndex *rtreego.Rtree

	nodeSpatials map[NodeID]*nodeSpatial
	edgeSpatials map[EdgeID]*edgeSpatial
	faceSpatials map[FaceID]*faceSpatial
}

// New returns a Store containing only the universe face (id 0) and empty
// node/edge collections and indexes.
func New() *Store {
	s := &Store{
		nodes:        make(map[NodeID]*Node),
		edges:        make(map[EdgeID]*Edge),
		faces:        make(map[FaceID]*Face),
		nextNodeID:   1,
		nextEdgeID:   1,
		nextFaceID:   1,
		nodeIndex:    rtreego.NewTree(2, 25, 50),
		edgeIndex:    rtreego.NewTree(2, 25, 50),
		faceIndex:    rtreego.NewTree(2, 25, 50),
		nodeSpatials: make(map[NodeID]*nodeSpatial),
		edgeSpatials: make(map[EdgeID]*edgeSpatial),
		faceSpatials: make(map[FaceID]*faceSpatial),
	}
	s.faces[UniverseFace] = &Face{ID: UniverseFace}
	return s
}

// --- rtreego wrapper types, one per entity kind, the way ChartEntry wraps
// a chart for the teacher's ChartIndex. ---

type nodeSpatial struct {
	id    NodeID
	bound geom.Bounds
}

func (n *nodeSpatial) Bounds() rtreego.Rect { return toRect(n.bound) }

type edgeSpatial struct {
	id    EdgeID
	bound geom.Bounds
}

func (e *edgeSpatial) Bounds() rtreego.Rect { return toRect(e.bound) }

type faceSpatial struct {
	id    FaceID
	bound geom.Bounds
}

func (f *faceSpatial) Bounds() rtreego.Rect { return toRect(f.bound) }

func toRect(b geom.Bounds) rtreego.Rect {
	w := b.MaxX - b.MinX
	h := b.MaxY - b.MinY
	if w < boundsEpsilon {
		w = boundsEpsilon
	}
	if h < boundsEpsilon {
		h = boundsEpsilon
	}
	rect, _ := rtreego.NewRect(rtreego.Point{b.MinX, b.MinY}, []float64{w, h})
	return rect
}

// --- node collection ---

// AddNode inserts n (already assigned a fresh id by NewNodeID) into the
// collection and its spatial index.
func (s *Store) AddNode(n *Node) {
	s.nodes[n.ID] = n
	sp := &nodeSpatial{id: n.ID, bound: geom.BoundsOfCoordinate(n.Coordinate)}
	s.nodeSpatials[n.ID] = sp
	s.nodeIndex.Insert(sp)
}

// RemoveNode deletes the node and its spatial index entry.
func (s *Store) RemoveNode(id NodeID) {
	if sp, ok := s.nodeSpatials[id]; ok {
		s.nodeIndex.Delete(sp)
		delete(s.nodeSpatials, id)
	}
	delete(s.nodes, id)
}

// Node returns the node with the given id, or nil.
func (s *Store) Node(id NodeID) *Node { return s.nodes[id] }

// NewNodeID allocates the next monotonic node id without creating a node.
func (s *Store) NewNodeID() NodeID {
	id := s.nextNodeID
	s.nextNodeID++
	return id
}

// SearchNodes returns every node whose degenerate box intersects b.
func (s *Store) SearchNodes(b geom.Bounds) []*Node {
	var out []*Node
	for _, sp := range s.nodeIndex.SearchIntersect(toRect(b)) {
		out = append(out, s.nodes[sp.(*nodeSpatial).id])
	}
	return out
}

// AllNodes returns every node currently stored, in no particular order.
func (s *Store) AllNodes() []*Node {
	out := make([]*Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, n)
	}
	return out
}

// --- edge collection ---

// AddEdge inserts e (already assigned a fresh id by NewEdgeID) into the
// collection and its spatial index.
func (s *Store) AddEdge(e *Edge) {
	s.edges[e.ID] = e
	sp := &edgeSpatial{id: e.ID, bound: geom.BoundsOfCoordinates(e.Coordinates)}
	s.edgeSpatials[e.ID] = sp
	s.edgeIndex.Insert(sp)
}

// RemoveEdge deletes the edge and its spatial index entry.
func (s *Store) RemoveEdge(id EdgeID) {
	if sp, ok := s.edgeSpatials[id]; ok {
		s.edgeIndex.Delete(sp)
		delete(s.edgeSpatials, id)
	}
	delete(s.edges, id)
}

// ReindexEdge updates the spatial index entry for an existing edge whose
// polyline changed shape (used by the edge splitter, which shortens an
// edge in place rather than replacing it).
func (s *Store) ReindexEdge(id EdgeID, bound geom.Bounds) {
	if sp, ok := s.edgeSpatials[id]; ok {
		s.edgeIndex.Delete(sp)
		delete(s.edgeSpatials, id)
	}
	sp := &edgeSpatial{id: id, bound: bound}
	s.edgeSpatials[id] = sp
	s.edgeIndex.Insert(sp)
}

// Edge returns the edge with the given id, or nil.
func (s *Store) Edge(id EdgeID) *Edge { return s.edges[id] }

// NewEdgeID allocates the next monotonic edge id without creating an edge.
func (s *Store) NewEdgeID() EdgeID {
	id := s.nextEdgeID
	s.nextEdgeID++
	return id
}

// SearchEdges returns every edge whose bounding box intersects b.
func (s *Store) SearchEdges(b geom.Bounds) []*Edge {
	var out []*Edge
	for _, sp := range s.edgeIndex.SearchIntersect(toRect(b)) {
		out = append(out, s.edges[sp.(*edgeSpatial).id])
	}
	return out
}

// AllEdges returns every edge currently stored, in no particular order.
func (s *Store) AllEdges() []*Edge {
	out := make([]*Edge, 0, len(s.edges))
	for _, e := range s.edges {
		out = append(out, e)
	}
	return out
}

// --- face collection ---

// AddFace inserts f (already assigned a fresh id by NewFaceID) into the
// collection. bound is the face's outer-shell bounding box; the universe
// face is never indexed spatially (it has no finite shell).
func (s *Store) AddFace(f *Face, bound geom.Bounds) {
	s.faces[f.ID] = f
	if f.ID == UniverseFace {
		return
	}
	sp := &faceSpatial{id: f.ID, bound: bound}
	s.faceSpatials[f.ID] = sp
	s.faceIndex.Insert(sp)
}

// RemoveFace deletes a non-universe face and its spatial index entry.
func (s *Store) RemoveFace(id FaceID) {
	if id == UniverseFace {
		return
	}
	if sp, ok := s.faceSpatials[id]; ok {
		s.faceIndex.Delete(sp)
		delete(s.faceSpatials, id)
	}
	delete(s.faces, id)
}

// ReindexFace updates the spatial index entry for an existing face whose
// shell has changed shape (reused via mod-face edits).
func (s *Store) ReindexFace(id FaceID, bound geom.Bounds) {
	if id == UniverseFace {
		return
	}
	if sp, ok := s.faceSpatials[id]; ok {
		s.faceIndex.Delete(sp)
		delete(s.faceSpatials, id)
	}
	sp := &faceSpatial{id: id, bound: bound}
	s.faceSpatials[id] = sp
	s.faceIndex.Insert(sp)
}

// Face returns the face with the given id, or nil.
func (s *Store) Face(id FaceID) *Face { return s.faces[id] }

// FaceExists reports whether id names a face still present in the store.
func (s *Store) FaceExists(id FaceID) bool {
	_, ok := s.faces[id]
	return ok
}

// NewFaceID allocates the next monotonic non-universe face id without
// creating a face.
func (s *Store) NewFaceID() FaceID {
	id := s.nextFaceID
	s.nextFaceID++
	return id
}

// SearchFaces returns every non-universe face whose bounding box
// intersects b.
func (s *Store) SearchFaces(b geom.Bounds) []*Face {
	var out []*Face
	for _, sp := range s.faceIndex.SearchIntersect(toRect(b)) {
		out = append(out, s.faces[sp.(*faceSpatial).id])
	}
	return out
}

// FaceBounds returns the last-indexed bounding box for a non-universe
// face, if it has one.
func (s *Store) FaceBounds(id FaceID) (geom.Bounds, bool) {
	sp, ok := s.faceSpatials[id]
	if !ok {
		return geom.Bounds{}, false
	}
	return sp.bound, true
}

// AllFaces returns every face currently stored, including the universe.
func (s *Store) AllFaces() []*Face {
	out := make([]*Face, 0, len(s.faces))
	for _, f := range s.faces {
		out = append(out, f)
	}
	return out
}
