package motion

import (
	"math"
	"math/rand"
	"time"

	"github.com/xkilldash9x/humanmotion/api/schemas"
)

// Humanizer pipeline constants. Velocity scaling and overshoot geometry
// follow measured hand-motion behavior: tremor grows with speed, and
// overshoots land a few percent past the target before correcting.
const (
	velocityScaleDiv = 50.0
	velocityScaleMax = 2.5

	// Edge tapers: distortion drops by up to 70% and knot influence by up
	// to 50% as the movement approaches a viewport edge.
	edgeDistortionTaper = 0.70
	edgeKnotTaper       = 0.50

	overshootMinFactor   = 1.03
	overshootMaxFactor   = 1.08
	overshootMinProgress = 0.80
	overshootMaxProgress = 0.90

	pauseMinDistance = 300.0
	endSmoothWindow  = 3
)

// humanized is the outcome of the post-processing pipeline: the transformed
// point sequence plus the annotations the duration model and the caller
// consume.
type humanized struct {
	points    []Vector2D
	pauses    []schemas.Pause
	dominance schemas.Axis
	overshot  bool
}

// humanize applies the post-generation transforms in order: velocity-scaled
// tremor with edge taper, knot-influence taper, probabilistic overshoot,
// directional dominance tagging, end-jerk smoothing, and pause annotation.
// The first and last points of the result always equal start and end
// exactly. Callers must hold the engine lock.
func (e *Engine) humanize(pts []Vector2D, start, end Vector2D, targetW float64, p curveParams, rng *rand.Rand) humanized {
	d := start.Dist(end)

	e.distort(pts, p, rng)
	taperKnotInfluence(pts, start, end, p.edgeFactor)

	h := humanized{points: pts}
	if !p.steady {
		h.points, h.overshot = e.applyOvershoot(h.points, start, end, d, targetW, rng)
	}

	h.dominance = dominanceFor(start, end)
	smoothEnds(h.points, start, end)
	h.pauses = e.annotatePauses(len(h.points), d, rng)

	// Endpoints are contractual regardless of what the transforms did.
	h.points[0] = start
	h.points[len(h.points)-1] = end
	return h
}

// distort adds tremor to the interior points: a continuous low-frequency
// 1/f drift plus Gaussian jitter on both axes, with the jitter standard
// deviation scaled 1x-2.5x by normalized local velocity. The first and
// last two points are left exact.
func (e *Engine) distort(pts []Vector2D, p curveParams, rng *rand.Rand) {
	if len(pts) < 5 {
		return
	}
	taper := 1.0 - edgeDistortionTaper*p.edgeFactor
	// A fresh phase per trajectory keeps the drift pattern from repeating
	// across movements.
	phase := rng.Float64() * 1000.0

	for i := 2; i < len(pts)-2; i++ {
		t := float64(i) / float64(len(pts)-1)

		drift := Vector2D{
			X: e.noiseX.Noise1D(phase + t*perlinFrequency),
			Y: e.noiseY.Noise1D(phase + t*perlinFrequency),
		}.Mul(p.perlinAmp * taper)
		pts[i] = pts[i].Add(drift)

		if rng.Float64() >= p.distortFreq {
			continue
		}
		velocity := pts[i].Dist(pts[i-1])
		vf := math.Min(1.0+velocity/velocityScaleDiv, velocityScaleMax)
		sigma := p.distortStdDev * vf * taper
		pts[i].X += rng.NormFloat64() * sigma
		pts[i].Y += rng.NormFloat64() * sigma
	}
}

// taperKnotInfluence pulls interior points toward the straight start-end
// chord by up to half their curvature as the edge-proximity factor
// approaches one. Movements near an edge stay visibly curved but stop
// wandering outside the usable area.
func taperKnotInfluence(pts []Vector2D, start, end Vector2D, edgeFactor float64) {
	if edgeFactor <= 0 || len(pts) < 5 {
		return
	}
	blend := edgeKnotTaper * edgeFactor
	for i := 2; i < len(pts)-2; i++ {
		t := float64(i) / float64(len(pts)-1)
		chord := start.Lerp(end, t)
		pts[i] = pts[i].Lerp(chord, blend)
	}
}

// applyOvershoot inserts, at most once per trajectory, an excursion 3-8%
// beyond the true endpoint at 80-90% of the trajectory's progress. The
// points after the insertion form the corrective return; the declared
// final point is never changed. Probability grows with distance, shrinks
// with target size, and is capped by configuration.
func (e *Engine) applyOvershoot(pts []Vector2D, start, end Vector2D, d, targetW float64, rng *rand.Rand) ([]Vector2D, bool) {
	if len(pts) < 10 {
		return pts, false
	}
	distanceFactor := math.Min(d/1000.0, 1.0)
	targetFactor := math.Max(0, (50.0-targetW)/50.0)
	prob := math.Min(e.cfg.MaxOvershootProbability, (distanceFactor+targetFactor)/2)
	if rng.Float64() >= prob {
		return pts, false
	}

	factor := overshootMinFactor + rng.Float64()*(overshootMaxFactor-overshootMinFactor)
	progress := overshootMinProgress + rng.Float64()*(overshootMaxProgress-overshootMinProgress)
	idx := int(float64(len(pts)) * progress)
	if idx >= len(pts)-1 {
		idx = len(pts) - 2
	}

	excursion := end.Add(end.Sub(start).Mul(factor - 1.0))
	out := make([]Vector2D, 0, len(pts)+1)
	out = append(out, pts[:idx]...)
	out = append(out, excursion)
	out = append(out, pts[idx:]...)
	return out, true
}

// dominanceFor tags the movement by its larger absolute displacement axis.
// The duration model turns the tag into a +/-5% timing bias.
func dominanceFor(start, end Vector2D) schemas.Axis {
	if math.Abs(end.X-start.X) >= math.Abs(end.Y-start.Y) {
		return schemas.AxisHorizontal
	}
	return schemas.AxisVertical
}

// smoothEnds applies cubic easing to the first and last three points so the
// motion has no discontinuous acceleration at start or stop. Points inside
// the window are pulled toward the nearest endpoint with a cubic falloff;
// the endpoints themselves stay exact.
func smoothEnds(pts []Vector2D, start, end Vector2D) {
	n := len(pts)
	if n < 2*endSmoothWindow+2 {
		return
	}
	for i := 1; i <= endSmoothWindow; i++ {
		f := math.Pow(float64(i)/float64(endSmoothWindow+1), 3)
		pts[i] = start.Lerp(pts[i], f)

		j := n - 1 - i
		pts[j] = end.Lerp(pts[j], f)
	}
}

// annotatePauses selects one or two pause insertion points for trajectories
// spanning more than 300px, each within the 10-80% progress range with a
// 20-40ms delay. Pauses are metadata only; the point sequence is untouched.
func (e *Engine) annotatePauses(n int, d float64, rng *rand.Rand) []schemas.Pause {
	if d <= pauseMinDistance || n < 10 {
		return nil
	}

	count := 1 + rng.Intn(2)

	lo := int(float64(n) * 0.10)
	hi := int(float64(n) * 0.80)
	if hi <= lo {
		return nil
	}

	pauses := make([]schemas.Pause, 0, count)
	seen := make(map[int]bool, count)
	for len(pauses) < count {
		idx := lo + rng.Intn(hi-lo)
		if seen[idx] {
			continue
		}
		seen[idx] = true
		delayMs := e.cfg.PauseMinMs + rng.Intn(e.cfg.PauseMaxMs-e.cfg.PauseMinMs+1)
		pauses = append(pauses, schemas.Pause{
			Index: idx,
			Delay: time.Duration(delayMs) * time.Millisecond,
		})
	}
	return pauses
}
