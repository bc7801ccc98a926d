package motion

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/humanmotion/api/schemas"
)

// runHumanize builds a raw curve and runs the full humanizer pipeline over
// it, the same way PlanMove composes the two stages.
func runHumanize(t *testing.T, e *Engine, seed int64, start, end Vector2D, targetW float64, steady bool) humanized {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	p := e.sampleCurveParams(start, end, nil, steady, rng)
	ctrl := append(append([]Vector2D{start}, sampleKnots(p, rng)...), end)
	raw := buildCurve(ctrl, p.pointCount, e.binomials)
	return e.humanize(raw, start, end, targetW, p, rng)
}

func TestHumanize_EndpointsExact(t *testing.T) {
	e := NewTestEngine(99)
	start := Vector2D{X: 120.5, Y: 310.25}
	end := Vector2D{X: 1500.75, Y: 880.5}

	for seed := int64(0); seed < 50; seed++ {
		h := runHumanize(t, e, seed, start, end, 20, false)
		require.GreaterOrEqual(t, len(h.points), minPoints)
		assert.Equal(t, start, h.points[0], "seed %d: start drifted", seed)
		assert.Equal(t, end, h.points[len(h.points)-1], "seed %d: end drifted", seed)
	}
}

func TestHumanize_OvershootPreservesFinalPoint(t *testing.T) {
	e := NewTestEngine(7)
	start := Vector2D{X: 0, Y: 0}
	end := Vector2D{X: 1400, Y: 100}

	overshot := 0
	for seed := int64(0); seed < 200; seed++ {
		// Long distance and tiny target push the overshoot probability to
		// its cap, so a couple hundred runs will include plenty.
		h := runHumanize(t, e, seed, start, end, 5, false)
		if h.overshot {
			overshot++
			// The excursion adds a point past the target somewhere in the
			// final stretch, but never displaces the declared endpoint.
			assert.Equal(t, end, h.points[len(h.points)-1], "seed %d", seed)
		}
	}
	assert.Greater(t, overshot, 10, "expected the overshoot branch to trigger regularly")
	assert.Less(t, overshot, 120, "overshoot probability must stay capped")
}

func TestHumanize_SteadySuppressesOvershoot(t *testing.T) {
	e := NewTestEngine(21)
	for seed := int64(0); seed < 100; seed++ {
		h := runHumanize(t, e, seed, Vector2D{X: 0, Y: 0}, Vector2D{X: 1400, Y: 100}, 5, true)
		assert.False(t, h.overshot, "seed %d: steady trajectories never overshoot", seed)
	}
}

func TestHumanize_PauseAnnotations(t *testing.T) {
	e := NewTestEngine(33)
	start := Vector2D{X: 50, Y: 50}

	t.Run("short movements carry no pauses", func(t *testing.T) {
		for seed := int64(0); seed < 30; seed++ {
			h := runHumanize(t, e, seed, start, Vector2D{X: 250, Y: 100}, 20, false)
			assert.Empty(t, h.pauses, "seed %d", seed)
		}
	})

	t.Run("medium movements pause at least once", func(t *testing.T) {
		for seed := int64(0); seed < 30; seed++ {
			h := runHumanize(t, e, seed, start, Vector2D{X: 400, Y: 200}, 20, false)
			require.GreaterOrEqual(t, len(h.pauses), 1, "seed %d", seed)
			require.LessOrEqual(t, len(h.pauses), 2, "seed %d", seed)
		}
	})

	t.Run("long movements pause once or twice inside the safe window", func(t *testing.T) {
		sawPause := false
		for seed := int64(0); seed < 50; seed++ {
			h := runHumanize(t, e, seed, start, Vector2D{X: 1200, Y: 700}, 20, false)
			require.LessOrEqual(t, len(h.pauses), 2, "seed %d", seed)
			require.GreaterOrEqual(t, len(h.pauses), 1, "seed %d: d>500 always pauses at least once", seed)
			sawPause = true
			n := len(h.points)
			for _, p := range h.pauses {
				assert.GreaterOrEqual(t, p.Index, int(float64(n)*0.10)-1, "seed %d", seed)
				assert.Less(t, p.Index, int(float64(n)*0.80)+1, "seed %d", seed)
				assert.GreaterOrEqual(t, p.Delay, 20*time.Millisecond)
				assert.LessOrEqual(t, p.Delay, 40*time.Millisecond)
			}
		}
		assert.True(t, sawPause)
	})
}

func TestHumanize_OvershootAndPausesCompose(t *testing.T) {
	// Overshoot and pause annotation are independent transforms on the
	// same trajectory; neither suppresses the other when both trigger.
	e := NewTestEngine(55)
	start := Vector2D{X: 0, Y: 0}
	end := Vector2D{X: 1600, Y: 300}

	both := 0
	for seed := int64(0); seed < 300; seed++ {
		h := runHumanize(t, e, seed, start, end, 5, false)
		if h.overshot && len(h.pauses) > 0 {
			both++
			assert.Equal(t, end, h.points[len(h.points)-1], "seed %d", seed)
			for _, p := range h.pauses {
				assert.Less(t, p.Index, len(h.points), "seed %d: pause index out of range", seed)
			}
		}
	}
	assert.Greater(t, both, 0, "expected overshoot and pauses to co-occur")
}

func TestHumanize_SteadyStillJitters(t *testing.T) {
	// Steady mode is near-linear but not a ruler line: some interior point
	// must deviate from the exact chord.
	e := NewTestEngine(77)
	start := Vector2D{X: 0, Y: 0}
	end := Vector2D{X: 600, Y: 0}

	h := runHumanize(t, e, 1, start, end, 20, true)
	deviated := false
	for _, p := range h.points[2 : len(h.points)-2] {
		if p.Y != 0 {
			deviated = true
			break
		}
	}
	assert.True(t, deviated, "steady trajectories keep non-zero tremor")
}

func TestDominanceFor(t *testing.T) {
	assert.Equal(t, schemas.AxisHorizontal, dominanceFor(Vector2D{}, Vector2D{X: 100, Y: 40}))
	assert.Equal(t, schemas.AxisVertical, dominanceFor(Vector2D{}, Vector2D{X: 40, Y: 100}))
	// Ties go to horizontal.
	assert.Equal(t, schemas.AxisHorizontal, dominanceFor(Vector2D{}, Vector2D{X: 50, Y: 50}))
}

func TestSmoothEnds_KeepsEndpoints(t *testing.T) {
	start := Vector2D{X: 0, Y: 0}
	end := Vector2D{X: 90, Y: 90}
	pts := make([]Vector2D, 10)
	for i := range pts {
		pts[i] = Vector2D{X: float64(i * 10), Y: float64(i * 10)}
	}

	smoothEnds(pts, start, end)
	assert.Equal(t, start, pts[0])
	assert.Equal(t, end, pts[9])

	// The smoothed leading points collapse toward the start, easing the
	// initial acceleration.
	assert.Less(t, pts[1].Mag(), 10.0)
}

func TestTaperKnotInfluence_PullsTowardChord(t *testing.T) {
	start := Vector2D{X: 0, Y: 0}
	end := Vector2D{X: 100, Y: 0}
	pts := make([]Vector2D, 11)
	for i := range pts {
		pts[i] = Vector2D{X: float64(i * 10), Y: 40} // well off the chord
	}
	pts[0], pts[10] = start, end

	taperKnotInfluence(pts, start, end, 1.0)
	for i := 2; i < 9; i++ {
		assert.InDelta(t, 20, pts[i].Y, 1e-9, "full edge factor halves curvature at index %d", i)
	}

	// Zero edge factor leaves the curve alone.
	before := pts[5]
	taperKnotInfluence(pts, start, end, 0)
	assert.Equal(t, before, pts[5])
}
