package engine

import "github.com/pkg/errors"

// Config holds the engine's timing and capacity settings.
type Config struct {
	// FixedTimeStep is the fixed-update interval in seconds.
	FixedTimeStep float64 `yaml:"fixed_time_step"`
	// TimeScale multiplies every delta passed to Tick.
	TimeScale float64 `yaml:"time_scale"`
	// MaxFixedSteps caps fixed updates per tick. Time beyond the cap is dropped.
	MaxFixedSteps int `yaml:"max_fixed_steps"`
	// MaxHandles caps live handles. Zero means unlimited.
	MaxHandles int `yaml:"max_handles"`
}

// DefaultConfig returns a 60Hz fixed step at normal speed with no handle cap.
func DefaultConfig() Config {
	return Config{
		FixedTimeStep: 1.0 / 60.0,
		TimeScale:     1,
		MaxFixedSteps: 5,
	}
}

// Validate checks that the config can drive a scheduler.
func (c Config) Validate() error {
	if c.FixedTimeStep <= 0 {
		return errors.Errorf("fixed_time_step must be positive, got %v", c.FixedTimeStep)
	}
	if c.TimeScale < 0 {
		return errors.Errorf("time_scale must not be negative, got %v", c.TimeScale)
	}
	if c.MaxFixedSteps <= 0 {
		return errors.Errorf("max_fixed_steps must be positive, got %d", c.MaxFixedSteps)
	}
	if c.MaxHandles < 0 {
		return errors.Errorf("max_handles must not be negative, got %d", c.MaxHandles)
	}
	return nil
}
