package motion

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/xkilldash9x/humanmotion/api/schemas"
)

// Beta shape bounds for click placement. Smaller boxes get a higher,
// tighter shape parameter so clicks cluster near the center; the
// distribution is symmetric (alpha == beta) with its mode at 0.5.
const (
	betaShapeMin = 2.0
	betaShapeMax = 5.0
	betaAreaRef  = 10000.0
)

// betaShapeFor maps box area to the shared alpha/beta shape parameter,
// inversely: area 0 yields 5 (tight center bias), areas at or beyond the
// reference yield 2 (looser spread).
func betaShapeFor(area float64) float64 {
	if area < 0 {
		area = 0
	}
	return betaShapeMax - (betaShapeMax-betaShapeMin)*math.Min(area/betaAreaRef, 1.0)
}

// SampleClickPoint draws a click destination inside the target box from a
// center-biased symmetric Beta distribution. The result always lies within
// the box; out-of-range samples are clamped rather than rejected, since
// this is cosmetic jitter. A zero-area box degenerates to its origin
// corner, which is valid input.
func (e *Engine) SampleClickPoint(region schemas.TargetRegion) (Vector2D, error) {
	if err := validateRegion(region); err != nil {
		return Vector2D{}, err
	}
	if region.W == 0 && region.H == 0 {
		return Vector2D{X: region.X, Y: region.Y}, nil
	}

	shape := betaShapeFor(region.Area())

	e.mu.Lock()
	dist := distuv.Beta{Alpha: shape, Beta: shape, Src: e.betaSrc}
	fx := dist.Rand()
	fy := dist.Rand()
	e.mu.Unlock()

	return Vector2D{
		X: region.X + clamp(fx, 0, 1)*region.W,
		Y: region.Y + clamp(fy, 0, 1)*region.H,
	}, nil
}

func validateRegion(region schemas.TargetRegion) error {
	for _, f := range []float64{region.X, region.Y, region.W, region.H} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return invalidf("target region", "non-finite geometry")
		}
	}
	if region.W < 0 || region.H < 0 {
		return invalidf("target region", "negative dimensions %gx%g", region.W, region.H)
	}
	return nil
}
