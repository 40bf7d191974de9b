package geom

import (
	"errors"
	"math"
)

// ErrDegenerateSegment is returned by Azimuth when asked for the direction
// of a zero-length segment.
var ErrDegenerateSegment = errors.New("geom: azimuth of a zero-length segment is undefined")

// Azimuth returns the angle of the directed segment a->b, measured
// clockwise from north (the +Y axis), in [0, 2*pi).
func Azimuth(a, b Coordinate) (float64, error) {
	if a.Equal(b) {
		return 0, ErrDegenerateSegment
	}

	dx := b.X - a.X
	dy := b.Y - a.Y

	angle := math.Atan2(dx, dy)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle, nil
}

// AzimuthDifference returns (to - from), normalized into (0, 2*pi]: the
// clockwise angle swept from the `from` azimuth to the `to` azimuth. This
// is the quantity the adjacency resolver (spec §4.4) calls `azdif`, and it
// is deliberately never exactly 0 — a full revolution is returned as 2*pi
// rather than 0, since the resolver needs to distinguish "no other edges"
// from "an edge at the same azimuth", and wrapping to zero would collapse
// that distinction at the one self-comparison it never performs for other
// edges but must support for a ring of exactly two incident edges.
func AzimuthDifference(from, to float64) float64 {
	diff := math.Mod(to-from+2*math.Pi, 2*math.Pi)
	if diff == 0 {
		return 2 * math.Pi
	}
	return diff
}
