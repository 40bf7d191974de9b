package geom

import "math/big"

// ccwErrorBoundCoefficient bounds the relative rounding error of the naive
// double-precision determinant below, following the error analysis used by
// Shewchuk's robust orientation predicate: the computed determinant is
// trustworthy whenever its magnitude exceeds this coefficient times the
// sum of the magnitudes of its terms.
const ccwErrorBoundCoefficient = 1e-12

// Orientation returns the sign of the signed area of triangle (p1, p2, q):
// +1 if the turn p1->p2->q is counter-clockwise (q lies left of the
// directed line p1->p2), -1 if clockwise (q lies right), 0 if the three
// points are collinear.
//
// The naive floating-point determinant is used only when its own magnitude
// proves the sign is not an artifact of rounding; otherwise the computation
// is redone with arbitrary-precision arithmetic. This mirrors how the
// kernel is specified to behave (spec §4.2): "naive floating-point
// evaluation is permitted only when its error bound proves the sign".
func Orientation(p1, p2, q Coordinate) int {
	detsum, det := signedAreaDet(p1, p2, q)

	errBound := ccwErrorBoundCoefficient * detsum
	if det > errBound || det < -errBound {
		return sign(det)
	}

	return orientationExact(p1, p2, q)
}

func signedAreaDet(p1, p2, q Coordinate) (detsum, det float64) {
	dx1 := p2.X - p1.X
	dy1 := p2.Y - p1.Y
	dx2 := q.X - p1.X
	dy2 := q.Y - p1.Y

	det = dx1*dy2 - dy1*dx2
	detsum = abs(dx1*dy2) + abs(dy1*dx2)
	return detsum, det
}

// orientationExact recomputes the determinant with big.Float arithmetic at
// a precision far beyond float64, for the rare cases where double-precision
// rounding could flip the sign of a near-collinear triple.
func orientationExact(p1, p2, q Coordinate) int {
	const prec = 256

	bf := func(f float64) *big.Float { return new(big.Float).SetPrec(prec).SetFloat64(f) }

	dx1 := new(big.Float).Sub(bf(p2.X), bf(p1.X))
	dy1 := new(big.Float).Sub(bf(p2.Y), bf(p1.Y))
	dx2 := new(big.Float).Sub(bf(q.X), bf(p1.X))
	dy2 := new(big.Float).Sub(bf(q.Y), bf(p1.Y))

	t1 := new(big.Float).Mul(dx1, dy2)
	t2 := new(big.Float).Mul(dy1, dx2)
	det := new(big.Float).Sub(t1, t2)

	switch det.Sign() {
	case 1:
		return 1
	case -1:
		return -1
	default:
		return 0
	}
}

func sign(f float64) int {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// Collinear reports whether the three points lie on a common line.
func Collinear(p1, p2, q Coordinate) bool {
	return Orientation(p1, p2, q) == 0
}
