package motion

import (
	"math"
	"math/rand"
)

// Distance bands for knot selection. The band edges themselves are
// randomized per request inside these windows so repeated movements of the
// same length do not share a fixed shape fingerprint.
const (
	shortBandMin = 80.0
	shortBandMax = 120.0
	longBandMin  = 400.0
	longBandMax  = 600.0

	minKnots = 1
	maxKnots = 6

	minPoints = 30
	maxPoints = 250

	// Minimum side length of a knot boundary after normalization.
	boundaryEps = 1.0
)

// curveParams is the sampled shape configuration for a single movement
// request. It is generated once and threaded through every pipeline stage;
// nothing re-samples mid-trajectory.
type curveParams struct {
	knotCount  int
	boundary   Rect
	pointCount int
	edgeFactor float64

	distortStdDev float64
	distortFreq   float64
	perlinAmp     float64

	steady bool
}

// pointCountFor maps Euclidean distance to a target point count using the
// tiered logarithmic profile. Short hops grow linearly, everything past
// 100px grows with log2, and the result is always within [30, 250].
func pointCountFor(d float64) int {
	var n float64
	switch {
	case d < 100:
		n = 0.6 * d
	case d <= 500:
		n = 60 + 40*math.Log2(d/100)
	default:
		n = 100 + 50*math.Log2(d/500)
	}
	return int(clamp(math.Round(n), minPoints, maxPoints))
}

// knotCountFor picks the interior knot count for a movement of the given
// distance: 1-2 for short, 2-4 for medium, 3-6 for long, with per-call
// randomized band thresholds and an independent +/-1 jitter, clamped to
// [1, 6].
func knotCountFor(d float64, rng *rand.Rand) int {
	shortMax := shortBandMin + rng.Float64()*(shortBandMax-shortBandMin)
	longMin := longBandMin + rng.Float64()*(longBandMax-longBandMin)

	var knots int
	switch {
	case d < shortMax:
		knots = 1 + rng.Intn(2)
	case d < longMin:
		knots = 2 + rng.Intn(3)
	default:
		knots = 3 + rng.Intn(4)
	}
	knots += rng.Intn(3) - 1
	if knots < minKnots {
		knots = minKnots
	}
	if knots > maxKnots {
		knots = maxKnots
	}
	return knots
}

// knotBoundaryFor derives the knot placement box from the start-end
// bounding rectangle, each side scaled by an independent factor in
// [0.95, 1.05] about its midpoint.
func knotBoundaryFor(start, end Vector2D, rng *rand.Rand) Rect {
	r := Rect{
		MinX: math.Min(start.X, end.X),
		MinY: math.Min(start.Y, end.Y),
		MaxX: math.Max(start.X, end.X),
		MaxY: math.Max(start.Y, end.Y),
	}
	scaleX := 0.95 + rng.Float64()*0.10
	scaleY := 0.95 + rng.Float64()*0.10
	cx, cy := (r.MinX+r.MaxX)/2, (r.MinY+r.MaxY)/2
	hw, hh := r.Width()/2*scaleX, r.Height()/2*scaleY
	return Rect{MinX: cx - hw, MinY: cy - hh, MaxX: cx + hw, MaxY: cy + hh}.normalized(boundaryEps)
}

// edgeFactorFor measures how close the movement midpoint sits to the
// viewport edges: 0 at the exact center, 1 at (or beyond) an edge. The
// humanizer tapers its transforms with this factor so edge movements stay
// curved instead of collapsing into straight lines.
func edgeFactorFor(mid Vector2D, viewportW, viewportH float64) float64 {
	if viewportW <= 0 || viewportH <= 0 {
		return 0
	}
	fx := math.Abs(mid.X-viewportW/2) / (viewportW / 2)
	fy := math.Abs(mid.Y-viewportH/2) / (viewportH / 2)
	return clamp(math.Max(fx, fy), 0, 1)
}

// sampleCurveParams draws the complete per-request shape configuration.
// Callers must hold the engine lock; rng is the engine's source.
func (e *Engine) sampleCurveParams(start, end Vector2D, boundary *Rect, steady bool, rng *rand.Rand) curveParams {
	d := start.Dist(end)

	p := curveParams{
		knotCount:     knotCountFor(d, rng),
		pointCount:    pointCountFor(d),
		edgeFactor:    edgeFactorFor(start.Lerp(end, 0.5), e.cfg.ViewportWidth, e.cfg.ViewportHeight),
		distortStdDev: e.cfg.DistortionStdDevMin + rng.Float64()*(e.cfg.DistortionStdDevMax-e.cfg.DistortionStdDevMin),
		distortFreq:   e.cfg.DistortionFreqMin + rng.Float64()*(e.cfg.DistortionFreqMax-e.cfg.DistortionFreqMin),
		perlinAmp:     e.cfg.PerlinAmplitude,
		steady:        steady,
	}

	if boundary != nil {
		p.boundary = (*boundary).normalized(boundaryEps)
	} else {
		p.boundary = knotBoundaryFor(start, end, rng)
	}

	if steady {
		// Steady mode suppresses curvature but keeps reduced, non-zero
		// jitter.
		p.knotCount = minKnots
		p.distortStdDev *= e.cfg.SteadyJitterScale
		p.perlinAmp *= e.cfg.SteadyJitterScale
	}

	return p
}

// sampleKnots places the interior control points uniformly inside the
// boundary box.
func sampleKnots(p curveParams, rng *rand.Rand) []Vector2D {
	knots := make([]Vector2D, p.knotCount)
	for i := range knots {
		knots[i] = Vector2D{
			X: p.boundary.MinX + rng.Float64()*p.boundary.Width(),
			Y: p.boundary.MinY + rng.Float64()*p.boundary.Height(),
		}
	}
	return knots
}
