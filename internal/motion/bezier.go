package motion

import "math"

// buildCurve samples a single composite Bezier curve through the given
// control points (start, interior knots, end) into exactly count points.
// The Bernstein weights use binomial coefficients from the engine-owned
// cache; with start and end plus k knots the curve has degree k+1.
//
// The first and last output points are set to the first and last control
// points exactly, independent of floating point error in the sampling.
func buildCurve(ctrl []Vector2D, count int, cache *binomialCache) []Vector2D {
	if count < 2 || len(ctrl) < 2 {
		if len(ctrl) == 0 {
			return nil
		}
		return []Vector2D{ctrl[len(ctrl)-1]}
	}

	degree := len(ctrl) - 1
	coeffs := cache.row(degree)

	pts := make([]Vector2D, count)
	for i := 0; i < count; i++ {
		t := float64(i) / float64(count-1)
		pts[i] = bezierAt(ctrl, coeffs, degree, t)
	}

	pts[0] = ctrl[0]
	pts[count-1] = ctrl[degree]
	return pts
}

// bezierAt evaluates the Bernstein-weighted sum at parameter t.
func bezierAt(ctrl []Vector2D, coeffs []float64, degree int, t float64) Vector2D {
	omt := 1.0 - t
	var x, y float64
	for i, p := range ctrl {
		w := coeffs[i] * intPow(t, i) * intPow(omt, degree-i)
		x += p.X * w
		y += p.Y * w
	}
	return Vector2D{X: x, Y: y}
}

// intPow avoids math.Pow for the small integer exponents the curve degrees
// produce.
func intPow(base float64, exp int) float64 {
	switch exp {
	case 0:
		return 1
	case 1:
		return base
	}
	if exp < 0 {
		return math.Pow(base, float64(exp))
	}
	r := 1.0
	for i := 0; i < exp; i++ {
		r *= base
	}
	return r
}
