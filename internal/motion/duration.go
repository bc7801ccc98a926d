package motion

import (
	"math"
	"math/rand"
	"time"

	"github.com/xkilldash9x/humanmotion/api/schemas"
)

// Duration model constants. Directional bias and the repetition window
// follow observed pointing behavior: horizontal sweeps run slightly faster
// than vertical ones, and a short streak of similar movements speeds up
// until the pattern breaks or goes stale.
const (
	horizontalBias = 0.95
	verticalBias   = 1.05

	smallTargetRef   = 50.0
	smallTargetBoost = 0.30

	fatigueRatePerMin = 0.01
	fatigueCap        = 0.15

	repetitionMinCut = 0.08
	repetitionMaxCut = 0.15
	repetitionStreak = 2
	repetitionWindow = 5

	// Similarity tolerances for the repetition streak.
	similarDistanceRatio = 0.25
	similarAngleRad      = 0.35
)

// MovementContext is the per-session state the duration model consults for
// fatigue and repetition effects. It is an immutable snapshot: the engine
// never mutates the value it receives and instead returns the successor
// snapshot, so callers can run parallel sessions without interference.
type MovementContext struct {
	// SessionStart anchors the fatigue clock.
	SessionStart time.Time
	// MoveCount counts consecutive movements since the last window reset.
	MoveCount int
	// Streak counts consecutive movements similar to their predecessor.
	Streak int

	// Signature of the previous movement, used for similarity checks.
	LastDistance float64
	LastAngle    float64
	hasLast      bool
}

// NewMovementContext starts a fresh session clock.
func NewMovementContext(now time.Time) MovementContext {
	return MovementContext{SessionStart: now}
}

// similarTo reports whether a movement of the given distance and direction
// repeats the previous one within tolerance.
func (mc MovementContext) similarTo(d, angle float64) bool {
	if !mc.hasLast {
		return false
	}
	ref := math.Max(mc.LastDistance, d)
	if ref > 0 && math.Abs(mc.LastDistance-d)/ref > similarDistanceRatio {
		return false
	}
	diff := math.Abs(angleDiff(mc.LastAngle, angle))
	return diff <= similarAngleRad
}

func angleDiff(a, b float64) float64 {
	d := math.Mod(b-a, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	}
	if d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// fittsTime is the base Fitts' law movement time in seconds:
// MT = a + b*log2(d/W + 1). For d == 0 the log term vanishes and MT == a.
func fittsTime(d, w, a, b float64) float64 {
	if w <= 0 {
		w = 1
	}
	return a + b*math.Log2(d/w+1.0)
}

// computeDuration produces the total movement time for one trajectory. The
// Fitts coefficients are drawn fresh per call from the configured ranges;
// the contextual multipliers (direction, target size, fatigue, repetition)
// apply multiplicatively on top. Callers must hold the engine lock.
func (e *Engine) computeDuration(d, targetW float64, dominance schemas.Axis, mc MovementContext, now time.Time, rng *rand.Rand) time.Duration {
	a := e.cfg.FittsAMin + rng.Float64()*(e.cfg.FittsAMax-e.cfg.FittsAMin)
	b := e.cfg.FittsBMin + rng.Float64()*(e.cfg.FittsBMax-e.cfg.FittsBMin)
	if targetW <= 0 {
		targetW = e.cfg.DefaultTargetWidth
	}

	mt := fittsTime(d, targetW, a, b)

	if dominance == schemas.AxisHorizontal {
		mt *= horizontalBias
	} else {
		mt *= verticalBias
	}

	// Small targets demand extra precision, up to +30% as width approaches
	// zero.
	if targetW < smallTargetRef {
		mt *= 1.0 + smallTargetBoost*(smallTargetRef-targetW)/smallTargetRef
	}

	if mc.SessionStart.IsZero() {
		mc.SessionStart = now
	}
	elapsedMin := now.Sub(mc.SessionStart).Minutes()
	if elapsedMin > 0 {
		mt *= 1.0 + math.Min(fatigueRatePerMin*elapsedMin/2, fatigueCap)
	}

	if mc.Streak >= repetitionStreak {
		cut := repetitionMinCut + rng.Float64()*(repetitionMaxCut-repetitionMinCut)
		mt *= 1.0 - cut
	}

	return time.Duration(mt * float64(time.Second))
}

// advanceContext folds the movement just planned into the context,
// returning the snapshot for the next request. The repetition window
// resets unconditionally after five consecutive movements.
func advanceContext(mc MovementContext, d, angle float64, now time.Time) MovementContext {
	next := mc
	if next.SessionStart.IsZero() {
		next.SessionStart = now
	}

	if mc.similarTo(d, angle) {
		next.Streak = mc.Streak + 1
	} else {
		next.Streak = 0
	}

	next.MoveCount = mc.MoveCount + 1
	if next.MoveCount >= repetitionWindow {
		next.MoveCount = 0
		next.Streak = 0
	}

	next.LastDistance = d
	next.LastAngle = angle
	next.hasLast = true
	return next
}

// samplePreActionPause draws the 50-150ms settling delay taken before a
// click is dispatched. Additive on top of the Fitts base term.
func (e *Engine) samplePreActionPause(rng *rand.Rand) time.Duration {
	ms := e.cfg.PreActionMinMs + rng.Intn(e.cfg.PreActionMaxMs-e.cfg.PreActionMinMs+1)
	return time.Duration(ms) * time.Millisecond
}
