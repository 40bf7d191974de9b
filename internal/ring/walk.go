// Package ring implements the pure-read ring walker and adjacency resolver,
// and the face splitter/healer that mutate face ownership after an edge
// insertion or removal. It is generalized from the teacher's
// buildRingsWithOrientation, which assembled polygon rings from an
// already-ordered FSPT pointer sequence; a live topology editor has no such
// luxury and must discover ring order itself via the next*/adjacency links.
package ring

import (
	"github.com/planargraph/topology/internal/geom"
	"github.com/planargraph/topology/internal/store"
)

// WalkRing returns the ordered list of directed edges bounding the face on
// start's side, obtained by repeatedly following the ring-continuation
// link (NextLeft/NextLeftDir when start.Forward, NextRight/NextRightDir
// otherwise) until a directed edge already in the list is revisited
// (normally the starting one). It performs no mutation.
func WalkRing(s *store.Store, start store.DirectedEdge) []store.DirectedEdge {
	var edges []store.DirectedEdge
	visited := make(map[store.DirectedEdge]bool)

	cur := start
	for {
		if visited[cur] {
			break
		}
		visited[cur] = true
		edges = append(edges, cur)

		e := s.Edge(cur.Edge)
		cur = cur.Next(e)
	}
	return edges
}

// Coordinates concatenates the polylines of a walked ring into a single
// closed coordinate sequence, reversing each edge's coordinates when it is
// traversed backward.
func Coordinates(s *store.Store, edges []store.DirectedEdge) []geom.Coordinate {
	var cs []geom.Coordinate
	for _, de := range edges {
		e := s.Edge(de.Edge)
		seg := e.Coordinates
		if !de.Forward {
			seg = reversed(seg)
		}
		if len(cs) > 0 {
			seg = seg[1:]
		}
		cs = append(cs, seg...)
	}
	return cs
}

func reversed(cs []geom.Coordinate) []geom.Coordinate {
	out := make([]geom.Coordinate, len(cs))
	for i, c := range cs {
		out[len(cs)-1-i] = c
	}
	return out
}
