package geom

import (
	"errors"
	"fmt"
)

// ErrNotPolygonal is returned by Polygonize when the given linestrings do
// not assemble into a single closed ring.
var ErrNotPolygonal = errors.New("geom: linestrings do not form a valid polygon boundary")

// Polygonize assembles a set of noded linestrings into the boundary of the
// single ring they enclose.
//
// Unlike the teacher algorithm this is generalized from — which consumed
// edges already listed in ring order via an S-57 feature's FSPT — the
// linestrings here arrive in arbitrary order (the order edges happen to be
// stored in the topology), so this implementation chains them by matching
// shared endpoint coordinates rather than trusting input order, the way a
// general-purpose polygonizer must.
func Polygonize(css [][]Coordinate) ([]Coordinate, error) {
	if len(css) == 0 {
		return nil, fmt.Errorf("%w: no input linestrings", ErrNotPolygonal)
	}
	for _, cs := range css {
		if len(cs) < 2 {
			return nil, fmt.Errorf("%w: degenerate linestring", ErrNotPolygonal)
		}
	}

	used := make([]bool, len(css))
	ring := make([]Coordinate, len(css[0]))
	copy(ring, css[0])
	used[0] = true
	remaining := len(css) - 1

	for remaining > 0 {
		tail := ring[len(ring)-1]
		found := false

		for i, cs := range css {
			if used[i] {
				continue
			}
			switch {
			case cs[0].Equal(tail):
				ring = append(ring, cs[1:]...)
			case cs[len(cs)-1].Equal(tail):
				ring = append(ring, reversed(cs)[1:]...)
			default:
				continue
			}
			used[i] = true
			remaining--
			found = true
			break
		}

		if !found {
			return nil, fmt.Errorf("%w: no linestring continues the ring at %v", ErrNotPolygonal, tail)
		}
	}

	if !ring[0].Equal(ring[len(ring)-1]) {
		return nil, fmt.Errorf("%w: assembled ring does not close", ErrNotPolygonal)
	}

	return ring, nil
}

func reversed(cs []Coordinate) []Coordinate {
	out := make([]Coordinate, len(cs))
	for i, c := range cs {
		out[len(cs)-1-i] = c
	}
	return out
}
