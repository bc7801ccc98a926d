package schemas

import "time"

// -- Motion Schemas --

// Axis tags a trajectory with its dominant movement direction. The duration
// model assigns horizontal-dominant movements a slightly shorter time and
// vertical-dominant movements a slightly longer one.
type Axis string

const (
	AxisHorizontal Axis = "horizontal"
	AxisVertical   Axis = "vertical"
)

// Point is a cursor position in integer pixels. Coordinates are real-valued
// while a trajectory is being generated and are rounded to pixels only at
// this output boundary.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TargetRegion describes the bounding box of a movement destination. It is
// consumed by the duration model (width term) and the click-position
// sampler, and is never mutated.
type TargetRegion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Area returns the region's surface in square pixels.
func (r TargetRegion) Area() float64 { return r.W * r.H }

// Pause is an intra-movement hesitation: the caller should sleep for Delay
// after reaching the point at Index, in addition to the regular per-segment
// pacing. Pauses are annotations and carry no positional change.
type Pause struct {
	Index int           `json:"index"`
	Delay time.Duration `json:"delay_ns"`
}

// Trajectory is the full output of one movement request: an ordered point
// sequence from start to end inclusive, plus the timing profile the caller
// plays back by issuing low-level cursor moves between sleeps.
//
// The first and last points always equal the requested start and end
// exactly. A Trajectory is produced once per request and never reused.
type Trajectory struct {
	ID     string  `json:"id"`
	Points []Point `json:"points"`
	// Duration is the total movement time excluding pauses and the
	// pre-action delay.
	Duration time.Duration `json:"duration_ns"`
	// PreActionDelay is an additional pause to take after the movement
	// completes and before any click is dispatched. Zero for free moves.
	PreActionDelay time.Duration `json:"pre_action_delay_ns,omitempty"`
	Pauses         []Pause       `json:"pauses,omitempty"`
	Dominance      Axis          `json:"dominance"`
}

// SegmentDelays folds Duration and the pause annotations into one sleep
// interval per segment. The returned slice has len(Points)-1 entries; entry
// i is the time to wait after issuing the move to Points[i+1]. An empty or
// single-point trajectory yields nil.
func (t *Trajectory) SegmentDelays() []time.Duration {
	if len(t.Points) < 2 {
		return nil
	}
	segments := len(t.Points) - 1
	per := t.Duration / time.Duration(segments)
	delays := make([]time.Duration, segments)
	for i := range delays {
		delays[i] = per
	}
	for _, p := range t.Pauses {
		// A pause at index i extends the dwell after reaching point i.
		if p.Index >= 1 && p.Index <= segments {
			delays[p.Index-1] += p.Delay
		}
	}
	return delays
}

// TotalTime is the wall-clock time a faithful playback of the trajectory
// takes, including pauses and the pre-action delay.
func (t *Trajectory) TotalTime() time.Duration {
	total := t.Duration + t.PreActionDelay
	for _, p := range t.Pauses {
		total += p.Delay
	}
	return total
}
