// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Velocity   VelocityConfig   `yaml:"velocity"`
	Radius     RadiusConfig     `yaml:"radius"`
	Collision  CollisionConfig  `yaml:"collision"`
	Modes      ModesConfig      `yaml:"modes"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Workers    WorkersConfig    `yaml:"workers"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the visualizer.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the spawn area. Walls sit outside it by WallMargin.
type WorldConfig struct {
	MinX       float64 `yaml:"min_x"`
	MaxX       float64 `yaml:"max_x"`
	MinY       float64 `yaml:"min_y"`
	MaxY       float64 `yaml:"max_y"`
	WallMargin float64 `yaml:"wall_margin"` // Fraction of each bound added outward (0.1 = 10%)
}

// PopulationConfig holds entity counts.
type PopulationConfig struct {
	Total  int `yaml:"total"`
	Moving int `yaml:"moving"` // 0 = half of total
}

// VelocityConfig holds initial velocity bounds for moving circles.
type VelocityConfig struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
}

// RadiusConfig holds radius bounds.
type RadiusConfig struct {
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Fixed float64 `yaml:"fixed"` // Used when modes.random_radius is off
}

// CollisionConfig holds collision response parameters.
type CollisionConfig struct {
	Damage         int     `yaml:"damage"` // Health removed from each side per collision
	InitialHealth  int     `yaml:"initial_health"`
	BackstepFactor float64 `yaml:"backstep_factor"` // Depenetration step as a multiple of v*dt
	LabelLength    int     `yaml:"label_length"`
}

// ModesConfig holds the boolean mode switches.
type ModesConfig struct {
	Visualize       bool `yaml:"visualize"`
	Death           bool `yaml:"death"`
	DeathStationary bool `yaml:"death_stationary"`
	Walls           bool `yaml:"walls"`
	RandomRadius    bool `yaml:"random_radius"`
	LogCollisions   bool `yaml:"log_collisions"`
}

// PhysicsConfig holds stepping parameters.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"` // Fixed step used in headless mode
}

// WorkersConfig holds worker pool sizing.
type WorkersConfig struct {
	Count int `yaml:"count"` // -1 = GOMAXPROCS-1, 0 = orchestrator only
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow   int `yaml:"perf_window"`
	PerfInterval int `yaml:"perf_interval"` // Ticks between perf log lines (0 = never)
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32            float32
	MovingCount     int
	StationaryCount int
	WallMinX        float32
	WallMaxX        float32
	WallMinY        float32
	WallMaxY        float32
	Damage32        int32
	Health32        int32
	Backstep32      float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Recompute refreshes derived values after fields were changed in code.
func (c *Config) Recompute() error {
	c.computeDerived()
	return c.Validate()
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)

	moving := c.Population.Moving
	if moving == 0 {
		moving = c.Population.Total / 2
	}
	c.Derived.MovingCount = moving
	c.Derived.StationaryCount = c.Population.Total - moving

	// Walls extend each bound outward by the margin fraction of its own magnitude
	m := c.World.WallMargin
	c.Derived.WallMinX = float32(c.World.MinX + c.World.MinX*m)
	c.Derived.WallMaxX = float32(c.World.MaxX + c.World.MaxX*m)
	c.Derived.WallMinY = float32(c.World.MinY + c.World.MinY*m)
	c.Derived.WallMaxY = float32(c.World.MaxY + c.World.MaxY*m)

	c.Derived.Damage32 = int32(c.Collision.Damage)
	c.Derived.Health32 = int32(c.Collision.InitialHealth)
	c.Derived.Backstep32 = float32(c.Collision.BackstepFactor)
}

// Validate reports configuration values the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Population.Total < 0 {
		errs = append(errs, fmt.Errorf("population.total must be >= 0, got %d", c.Population.Total))
	}
	if c.Derived.MovingCount < 0 || c.Derived.StationaryCount < 0 {
		errs = append(errs, fmt.Errorf("population.moving (%d) exceeds population.total (%d)",
			c.Population.Moving, c.Population.Total))
	}
	if c.World.MinX >= c.World.MaxX || c.World.MinY >= c.World.MaxY {
		errs = append(errs, errors.New("world min bounds must be below max bounds"))
	}
	if c.Velocity.MinX > c.Velocity.MaxX || c.Velocity.MinY > c.Velocity.MaxY {
		errs = append(errs, errors.New("velocity min bounds must not exceed max bounds"))
	}
	if c.Radius.Min <= 0 || c.Radius.Min > c.Radius.Max {
		errs = append(errs, fmt.Errorf("radius bounds invalid: min=%v max=%v", c.Radius.Min, c.Radius.Max))
	}
	if c.Radius.Fixed <= 0 {
		errs = append(errs, fmt.Errorf("radius.fixed must be > 0, got %v", c.Radius.Fixed))
	}
	if c.Collision.BackstepFactor <= 1 {
		errs = append(errs, fmt.Errorf("collision.backstep_factor must be > 1, got %v", c.Collision.BackstepFactor))
	}
	if c.Collision.Damage < 0 {
		errs = append(errs, fmt.Errorf("collision.damage must be >= 0, got %d", c.Collision.Damage))
	}
	if c.Collision.LabelLength < 1 {
		errs = append(errs, fmt.Errorf("collision.label_length must be >= 1, got %d", c.Collision.LabelLength))
	}
	if c.Physics.DT <= 0 {
		errs = append(errs, fmt.Errorf("physics.dt must be > 0, got %v", c.Physics.DT))
	}
	if c.Workers.Count < -1 {
		errs = append(errs, fmt.Errorf("workers.count must be >= -1, got %d", c.Workers.Count))
	}
	return errors.Join(errs...)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
