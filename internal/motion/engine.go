// Package motion generates synthetic, statistically human-like cursor
// trajectories and timing profiles. It is a pure in-memory computation:
// callers resolve logical targets into coordinates and bounding boxes
// before planning, and play the resulting point sequence back through
// whatever input API they drive.
package motion

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/aquilax/go-perlin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	exprand "golang.org/x/exp/rand"

	"github.com/xkilldash9x/humanmotion/api/schemas"
)

// perlinFrequency controls how quickly the 1/f drift evolves along a
// trajectory's progress parameter.
const perlinFrequency = 0.8

// MoveRequest describes one movement to plan. Start and End are resolved
// pixel coordinates; Target, Boundary and Steady are optional refinements.
type MoveRequest struct {
	Start Vector2D
	End   Vector2D

	// Target, when present, supplies the width term of the duration model.
	// Free moves without a resolved bounding box leave it nil and get the
	// configured nominal width.
	Target *schemas.TargetRegion

	// Boundary overrides the knot placement box derived from the start-end
	// rectangle.
	Boundary *Rect

	// Steady requests suppressed curvature: knot count forced to minimum
	// and reduced (but non-zero) jitter.
	Steady bool
}

// Engine plans trajectories. It is safe for concurrent use: the random
// sources are guarded by the engine mutex and the binomial cache carries
// its own lock. MovementContext values are owned by callers, one chain per
// logical session.
type Engine struct {
	mu      sync.Mutex
	cfg     Config
	logger  *zap.Logger
	rng     *rand.Rand
	betaSrc exprand.Source
	noiseX  *perlin.Perlin
	noiseY  *perlin.Perlin

	binomials *binomialCache

	// now is injectable for deterministic fatigue tests.
	now func() time.Time
}

// New creates an engine with the given configuration. A nil logger is
// replaced with a no-op one.
func New(cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.sanitize()

	seed := time.Now().UnixNano()
	rng := cfg.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(seed))
	}

	// Standard Perlin parameters; separate seeds per axis so x and y drift
	// independently.
	const alpha, beta, n = 2.0, 2.0, int32(3)

	return &Engine{
		cfg:       cfg,
		logger:    logger,
		rng:       rng,
		betaSrc:   exprand.NewSource(uint64(seed) ^ 0x9e3779b97f4a7c15),
		noiseX:    perlin.NewPerlin(alpha, beta, n, seed),
		noiseY:    perlin.NewPerlin(alpha, beta, n, seed+1),
		binomials: newBinomialCache(),
		now:       time.Now,
	}
}

// NewTestEngine creates an engine with fully deterministic dependencies:
// seeded random sources, seeded noise, and a fixed clock.
func NewTestEngine(seed int64) *Engine {
	cfg := DefaultConfig()
	cfg.Rng = rand.New(rand.NewSource(seed))

	e := New(cfg, zap.NewNop())
	e.betaSrc = exprand.NewSource(uint64(seed))
	e.noiseX = perlin.NewPerlin(2, 2, 3, seed)
	e.noiseY = perlin.NewPerlin(2, 2, 3, seed+1)
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return fixed }
	return e
}

// PlanMove generates a trajectory from req.Start to req.End together with
// its duration profile, and returns the successor movement-context
// snapshot. start == end is a valid degenerate case and yields a
// single-point, zero-duration trajectory.
func (e *Engine) PlanMove(req MoveRequest, mc MovementContext) (*schemas.Trajectory, MovementContext, error) {
	if err := validateRequest(req); err != nil {
		return nil, mc, err
	}

	d := req.Start.Dist(req.End)
	now := e.now()

	if d == 0 {
		traj := &schemas.Trajectory{
			ID:        uuid.NewString(),
			Points:    []schemas.Point{roundPoint(req.End)},
			Duration:  0,
			Dominance: dominanceFor(req.Start, req.End),
		}
		return traj, advanceContext(mc, 0, 0, now), nil
	}

	targetW := e.targetWidth(req.Target)

	e.mu.Lock()
	params := e.sampleCurveParams(req.Start, req.End, req.Boundary, req.Steady, e.rng)
	ctrl := append(append([]Vector2D{req.Start}, sampleKnots(params, e.rng)...), req.End)
	raw := buildCurve(ctrl, params.pointCount, e.binomials)
	h := e.humanize(raw, req.Start, req.End, targetW, params, e.rng)
	duration := e.computeDuration(d, targetW, h.dominance, mc, now, e.rng)
	e.mu.Unlock()

	traj := &schemas.Trajectory{
		ID:        uuid.NewString(),
		Points:    roundPoints(h.points),
		Duration:  duration,
		Pauses:    h.pauses,
		Dominance: h.dominance,
	}
	// Rounding must not disturb the contractual endpoints.
	traj.Points[0] = roundPoint(req.Start)
	traj.Points[len(traj.Points)-1] = roundPoint(req.End)

	angle := req.End.Sub(req.Start).Angle()
	next := advanceContext(mc, d, angle, now)

	e.logger.Debug("planned movement",
		zap.String("trajectory_id", traj.ID),
		zap.Float64("distance", d),
		zap.Int("points", len(traj.Points)),
		zap.Duration("duration", duration),
		zap.Bool("overshot", h.overshot),
		zap.String("dominance", string(h.dominance)),
	)
	return traj, next, nil
}

// PlanClick plans a movement from start into the target box: the precise
// destination is drawn from the center-biased click sampler, the duration
// model uses the box width, and the trajectory carries a 50-150ms
// pre-action delay to take before dispatching the click.
func (e *Engine) PlanClick(start Vector2D, target schemas.TargetRegion, mc MovementContext, steady bool) (*schemas.Trajectory, MovementContext, error) {
	dest, err := e.SampleClickPoint(target)
	if err != nil {
		return nil, mc, err
	}

	req := MoveRequest{Start: start, End: dest, Target: &target, Steady: steady}
	traj, next, err := e.PlanMove(req, mc)
	if err != nil {
		return nil, mc, err
	}

	e.mu.Lock()
	traj.PreActionDelay = e.samplePreActionPause(e.rng)
	e.mu.Unlock()
	return traj, next, nil
}

func (e *Engine) targetWidth(target *schemas.TargetRegion) float64 {
	if target == nil || target.W <= 0 {
		return e.cfg.DefaultTargetWidth
	}
	return target.W
}

func validateRequest(req MoveRequest) error {
	if !req.Start.IsFinite() {
		return invalidf("start", "non-finite coordinates (%g, %g)", req.Start.X, req.Start.Y)
	}
	if !req.End.IsFinite() {
		return invalidf("end", "non-finite coordinates (%g, %g)", req.End.X, req.End.Y)
	}
	// Both endpoints can be finite while their distance overflows, which
	// would poison every downstream computation.
	if math.IsInf(req.Start.Dist(req.End), 0) {
		return invalidf("end", "start-end distance overflows")
	}
	if req.Boundary != nil && !req.Boundary.IsFinite() {
		return invalidf("boundary", "non-finite geometry")
	}
	if req.Target != nil {
		if err := validateRegion(*req.Target); err != nil {
			return err
		}
	}
	return nil
}

func roundPoint(v Vector2D) schemas.Point {
	return schemas.Point{X: int(math.Round(v.X)), Y: int(math.Round(v.Y))}
}

func roundPoints(pts []Vector2D) []schemas.Point {
	out := make([]schemas.Point, len(pts))
	for i, p := range pts {
		out[i] = roundPoint(p)
	}
	return out
}
