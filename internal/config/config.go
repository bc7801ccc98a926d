package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Engine EngineConfig `mapstructure:"engine" yaml:"engine"`
	// Generate gets its marching orders from CLI flags, not the config file.
	Generate GenerateConfig `mapstructure:"-" yaml:"-"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// EngineConfig carries the trajectory engine tunables as loaded from file.
// It mirrors the motion package's Config; cmd converts between the two so
// the engine stays decoupled from viper.
type EngineConfig struct {
	ViewportWidth  float64 `mapstructure:"viewport_width" yaml:"viewport_width"`
	ViewportHeight float64 `mapstructure:"viewport_height" yaml:"viewport_height"`

	FittsAMin float64 `mapstructure:"fitts_a_min" yaml:"fitts_a_min"`
	FittsAMax float64 `mapstructure:"fitts_a_max" yaml:"fitts_a_max"`
	FittsBMin float64 `mapstructure:"fitts_b_min" yaml:"fitts_b_min"`
	FittsBMax float64 `mapstructure:"fitts_b_max" yaml:"fitts_b_max"`

	DefaultTargetWidth float64 `mapstructure:"default_target_width" yaml:"default_target_width"`

	DistortionStdDevMin float64 `mapstructure:"distortion_stddev_min" yaml:"distortion_stddev_min"`
	DistortionStdDevMax float64 `mapstructure:"distortion_stddev_max" yaml:"distortion_stddev_max"`
	DistortionFreqMin   float64 `mapstructure:"distortion_freq_min" yaml:"distortion_freq_min"`
	DistortionFreqMax   float64 `mapstructure:"distortion_freq_max" yaml:"distortion_freq_max"`

	PerlinAmplitude         float64 `mapstructure:"perlin_amplitude" yaml:"perlin_amplitude"`
	SteadyJitterScale       float64 `mapstructure:"steady_jitter_scale" yaml:"steady_jitter_scale"`
	MaxOvershootProbability float64 `mapstructure:"max_overshoot_probability" yaml:"max_overshoot_probability"`

	PauseMinMs     int `mapstructure:"pause_min_ms" yaml:"pause_min_ms"`
	PauseMaxMs     int `mapstructure:"pause_max_ms" yaml:"pause_max_ms"`
	PreActionMinMs int `mapstructure:"pre_action_min_ms" yaml:"pre_action_min_ms"`
	PreActionMaxMs int `mapstructure:"pre_action_max_ms" yaml:"pre_action_max_ms"`
}

// GenerateConfig describes one CLI generation run.
type GenerateConfig struct {
	FromX, FromY     float64
	ToX, ToY         float64
	TargetW, TargetH float64
	Count            int
	Steady           bool
	Click            bool
	Output           string
}

// NewDefaultConfig creates a configuration populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Cannot happen with defaults only.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "humanmotion")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)

	// -- Engine --
	v.SetDefault("engine.viewport_width", 1920)
	v.SetDefault("engine.viewport_height", 1080)
	v.SetDefault("engine.fitts_a_min", 0.08)
	v.SetDefault("engine.fitts_a_max", 0.12)
	v.SetDefault("engine.fitts_b_min", 0.12)
	v.SetDefault("engine.fitts_b_max", 0.18)
	v.SetDefault("engine.default_target_width", 30.0)
	v.SetDefault("engine.distortion_stddev_min", 0.85)
	v.SetDefault("engine.distortion_stddev_max", 1.10)
	v.SetDefault("engine.distortion_freq_min", 0.25)
	v.SetDefault("engine.distortion_freq_max", 0.70)
	v.SetDefault("engine.perlin_amplitude", 1.5)
	v.SetDefault("engine.steady_jitter_scale", 0.35)
	v.SetDefault("engine.max_overshoot_probability", 0.40)
	v.SetDefault("engine.pause_min_ms", 20)
	v.SetDefault("engine.pause_max_ms", 40)
	v.SetDefault("engine.pre_action_min_ms", 50)
	v.SetDefault("engine.pre_action_max_ms", 150)
}

// NewConfigFromViper creates a configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if c.Engine.ViewportWidth <= 0 || c.Engine.ViewportHeight <= 0 {
		return fmt.Errorf("engine.viewport_width and engine.viewport_height must be positive")
	}
	if c.Engine.FittsAMax < c.Engine.FittsAMin || c.Engine.FittsBMax < c.Engine.FittsBMin {
		return fmt.Errorf("engine fitts coefficient ranges must have max >= min")
	}
	if c.Engine.MaxOvershootProbability < 0 || c.Engine.MaxOvershootProbability > 1 {
		return fmt.Errorf("engine.max_overshoot_probability must be within [0, 1]")
	}
	if c.Engine.PauseMaxMs < c.Engine.PauseMinMs || c.Engine.PreActionMaxMs < c.Engine.PreActionMinMs {
		return fmt.Errorf("engine pause ranges must have max >= min")
	}
	return nil
}
