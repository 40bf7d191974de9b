// Package geom provides the computational-geometry primitives the topology
// kernel relies on directly: orientation, segment intersection, azimuth,
// ring containment, simplicity testing, polygonization and linear
// referencing. It knows nothing about nodes, edges or faces — it operates
// on bare coordinates and coordinate sequences, the way internal/parser
// operates on raw S-57 records independent of the public Chart API.
package geom

import "fmt"

// Coordinate is an ordered pair of finite floating-point numbers.
//
// Equality is bitwise on both components, per the data model: two
// coordinates are the same point only if X and Y match exactly, with no
// tolerance applied by this layer.
type Coordinate struct {
	X, Y float64
}

// Equal reports whether c and o have bitwise-identical components.
func (c Coordinate) Equal(o Coordinate) bool {
	return c.X == o.X && c.Y == o.Y
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%g %g)", c.X, c.Y)
}

// Bounds is an axis-aligned bounding box.
//
// An empty Bounds (as returned by EmptyBounds) has Min > Max on both axes
// and is treated as containing nothing. The zero value is not empty: it is
// the degenerate box at the origin. Build boxes with BoundsOfCoordinate,
// BoundsOfCoordinates or ExpandToInclude.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// EmptyBounds returns a Bounds that contains no points.
func EmptyBounds() Bounds {
	return Bounds{MinX: 1, MaxX: 0, MinY: 1, MaxY: 0}
}

// IsEmpty reports whether b contains no points.
func (b Bounds) IsEmpty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// BoundsOfCoordinate returns the degenerate box at a single point.
func BoundsOfCoordinate(c Coordinate) Bounds {
	return Bounds{MinX: c.X, MaxX: c.X, MinY: c.Y, MaxY: c.Y}
}

// BoundsOfCoordinates returns the box covering every coordinate in cs.
// Panics if cs is empty — callers (edges always have >= 2 coordinates)
// guarantee this never happens.
func BoundsOfCoordinates(cs []Coordinate) Bounds {
	b := BoundsOfCoordinate(cs[0])
	for _, c := range cs[1:] {
		b = b.ExpandToInclude(c)
	}
	return b
}

// ExpandToInclude returns a new Bounds large enough to contain b and c.
func (b Bounds) ExpandToInclude(c Coordinate) Bounds {
	if b.IsEmpty() {
		return BoundsOfCoordinate(c)
	}
	r := b
	if c.X < r.MinX {
		r.MinX = c.X
	}
	if c.X > r.MaxX {
		r.MaxX = c.X
	}
	if c.Y < r.MinY {
		r.MinY = c.Y
	}
	if c.Y > r.MaxY {
		r.MaxY = c.Y
	}
	return r
}

// Union returns the smallest Bounds covering both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return Bounds{
		MinX: min(b.MinX, o.MinX),
		MinY: min(b.MinY, o.MinY),
		MaxX: max(b.MaxX, o.MaxX),
		MaxY: max(b.MaxY, o.MaxY),
	}
}

// Intersects reports whether b and o share at least one point.
func (b Bounds) Intersects(o Bounds) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return false
	}
	return !(o.MaxX < b.MinX || o.MinX > b.MaxX || o.MaxY < b.MinY || o.MinY > b.MaxY)
}

// ContainsCoordinate reports whether c falls within b, inclusive of the
// boundary.
func (b Bounds) ContainsCoordinate(c Coordinate) bool {
	return c.X >= b.MinX && c.X <= b.MaxX && c.Y >= b.MinY && c.Y <= b.MaxY
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
