package motion

import "math/rand"

// Config holds the tunable parameters of the trajectory engine. Ranged
// pairs (Min/Max) are sampled uniformly once per movement request, so a
// single trajectory is internally consistent while no two trajectories
// share a fixed, fingerprintable parameter set.
type Config struct {
	// Rng overrides the engine's random source. Leave nil in production;
	// tests inject a seeded source for reproducible behavior.
	Rng *rand.Rand

	// Viewport is the known screen or window geometry. The edge-proximity
	// factor of a movement is measured against it.
	ViewportWidth  float64 `mapstructure:"viewport_width" yaml:"viewport_width"`
	ViewportHeight float64 `mapstructure:"viewport_height" yaml:"viewport_height"`

	// Fitts' law coefficient ranges, in seconds. MT = a + b*ID.
	FittsAMin float64 `mapstructure:"fitts_a_min" yaml:"fitts_a_min"`
	FittsAMax float64 `mapstructure:"fitts_a_max" yaml:"fitts_a_max"`
	FittsBMin float64 `mapstructure:"fitts_b_min" yaml:"fitts_b_min"`
	FittsBMax float64 `mapstructure:"fitts_b_max" yaml:"fitts_b_max"`

	// DefaultTargetWidth stands in for the target width term on free moves
	// that have no resolved bounding box.
	DefaultTargetWidth float64 `mapstructure:"default_target_width" yaml:"default_target_width"`

	// Tremor distortion. The standard deviation is sampled per request from
	// the given range and then scaled 1x-2.5x by local velocity.
	DistortionStdDevMin float64 `mapstructure:"distortion_stddev_min" yaml:"distortion_stddev_min"`
	DistortionStdDevMax float64 `mapstructure:"distortion_stddev_max" yaml:"distortion_stddev_max"`
	DistortionFreqMin   float64 `mapstructure:"distortion_freq_min" yaml:"distortion_freq_min"`
	DistortionFreqMax   float64 `mapstructure:"distortion_freq_max" yaml:"distortion_freq_max"`

	// PerlinAmplitude scales the low-frequency 1/f drift layered under the
	// Gaussian tremor.
	PerlinAmplitude float64 `mapstructure:"perlin_amplitude" yaml:"perlin_amplitude"`

	// SteadyJitterScale is the distortion amplitude multiplier applied in
	// steady mode. Must stay above zero: steady suppresses curvature, not
	// tremor.
	SteadyJitterScale float64 `mapstructure:"steady_jitter_scale" yaml:"steady_jitter_scale"`

	// MaxOvershootProbability caps the chance of an overshoot-and-correction
	// excursion on any single trajectory.
	MaxOvershootProbability float64 `mapstructure:"max_overshoot_probability" yaml:"max_overshoot_probability"`

	// Pause annotation bounds, in milliseconds.
	PauseMinMs int `mapstructure:"pause_min_ms" yaml:"pause_min_ms"`
	PauseMaxMs int `mapstructure:"pause_max_ms" yaml:"pause_max_ms"`

	// Pre-action pause bounds (before a click), in milliseconds.
	PreActionMinMs int `mapstructure:"pre_action_min_ms" yaml:"pre_action_min_ms"`
	PreActionMaxMs int `mapstructure:"pre_action_max_ms" yaml:"pre_action_max_ms"`
}

// DefaultConfig returns the parameter set for an average user on a common
// desktop viewport.
func DefaultConfig() Config {
	return Config{
		ViewportWidth:           1920,
		ViewportHeight:          1080,
		FittsAMin:               0.08,
		FittsAMax:               0.12,
		FittsBMin:               0.12,
		FittsBMax:               0.18,
		DefaultTargetWidth:      30.0,
		DistortionStdDevMin:     0.85,
		DistortionStdDevMax:     1.10,
		DistortionFreqMin:       0.25,
		DistortionFreqMax:       0.70,
		PerlinAmplitude:         1.5,
		SteadyJitterScale:       0.35,
		MaxOvershootProbability: 0.40,
		PauseMinMs:              20,
		PauseMaxMs:              40,
		PreActionMinMs:          50,
		PreActionMaxMs:          150,
	}
}

// sanitize nudges out-of-range values back to usable defaults rather than
// failing; these are cosmetic parameters, not caller input.
func (c *Config) sanitize() {
	d := DefaultConfig()
	if c.ViewportWidth <= 0 {
		c.ViewportWidth = d.ViewportWidth
	}
	if c.ViewportHeight <= 0 {
		c.ViewportHeight = d.ViewportHeight
	}
	if c.FittsAMax < c.FittsAMin {
		c.FittsAMin, c.FittsAMax = d.FittsAMin, d.FittsAMax
	}
	if c.FittsBMax < c.FittsBMin {
		c.FittsBMin, c.FittsBMax = d.FittsBMin, d.FittsBMax
	}
	if c.DefaultTargetWidth <= 0 {
		c.DefaultTargetWidth = d.DefaultTargetWidth
	}
	if c.DistortionStdDevMax < c.DistortionStdDevMin || c.DistortionStdDevMin < 0 {
		c.DistortionStdDevMin, c.DistortionStdDevMax = d.DistortionStdDevMin, d.DistortionStdDevMax
	}
	if c.DistortionFreqMin < 0 || c.DistortionFreqMax > 1 || c.DistortionFreqMax < c.DistortionFreqMin {
		c.DistortionFreqMin, c.DistortionFreqMax = d.DistortionFreqMin, d.DistortionFreqMax
	}
	if c.SteadyJitterScale <= 0 {
		c.SteadyJitterScale = d.SteadyJitterScale
	}
	if c.MaxOvershootProbability < 0 || c.MaxOvershootProbability > 1 {
		c.MaxOvershootProbability = d.MaxOvershootProbability
	}
	if c.PauseMinMs <= 0 || c.PauseMaxMs < c.PauseMinMs {
		c.PauseMinMs, c.PauseMaxMs = d.PauseMinMs, d.PauseMaxMs
	}
	if c.PreActionMinMs <= 0 || c.PreActionMaxMs < c.PreActionMinMs {
		c.PreActionMinMs, c.PreActionMaxMs = d.PreActionMinMs, d.PreActionMaxMs
	}
}
