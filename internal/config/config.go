// Package config provides YAML-based game configuration loading and
// difficulty scaling for the slicer.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// SlicerConfig contains all tunables of the slicing simulation.
type SlicerConfig struct {
	Canvas     CanvasConfig     `yaml:"canvas"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Combo      ComboConfig      `yaml:"combo"`
	Effects    EffectsConfig    `yaml:"effects"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// CanvasConfig defines the virtual canvas the simulation runs in.
// A zero Width or Height derives the size from the terminal: one cell is
// CellWidth x CellHeight canvas units.
type CanvasConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// Size returns the canvas size for a terminal of the given cell dimensions.
func (c CanvasConfig) Size(screenW, screenH int) (w, h float64) {
	w, h = c.Width, c.Height
	if w <= 0 {
		w = float64(screenW) * c.CellWidth
	}
	if h <= 0 {
		h = float64(screenH) * c.CellHeight
	}
	return w, h
}

// PhysicsConfig defines integration parameters. Units are canvas units and seconds.
type PhysicsConfig struct {
	Gravity               float64 `yaml:"gravity"`                 // Base downward acceleration
	MaxDT                 float64 `yaml:"max_dt"`                  // Upper clamp of a single step
	ParticleGravityFactor float64 `yaml:"particle_gravity_factor"` // Share of gravity applied to particles
	DespawnOffset         float64 `yaml:"despawn_offset"`          // Distance below the canvas where entities are dropped
}

// SpawnConfig defines launch timing and the launch solve.
type SpawnConfig struct {
	FirstDelay     float64 `yaml:"first_delay"`     // Interval before the first launch of a session
	SingleInterval float64 `yaml:"single_interval"` // Base interval after a single launch
	WaveInterval   float64 `yaml:"wave_interval"`   // Base interval after a wave
	WaveChance     float64 `yaml:"wave_chance"`
	WaveMin        int     `yaml:"wave_min"`
	WaveMax        int     `yaml:"wave_max"`
	WaveSpacing    float64 `yaml:"wave_spacing"` // Delay between launches of one wave
	BombBase       float64 `yaml:"bomb_base"`
	BombSlope      float64 `yaml:"bomb_slope"`
	BombCap        float64 `yaml:"bomb_cap"`
	ApexMin        float64 `yaml:"apex_min"`      // Highest apex as a fraction of canvas height
	ApexMax        float64 `yaml:"apex_max"`      // Lowest apex as a fraction of canvas height
	TargetSpread   float64 `yaml:"target_spread"` // Apex x offset from center as a fraction of width
	LaunchMargin   float64 `yaml:"launch_margin"` // Launch x keeps this fraction of width from the edges
	MaxSpin        float64 `yaml:"max_spin"`      // Rad/s at difficulty 1
}

// ComboConfig defines combo timing and points.
type ComboConfig struct {
	Window         float64 `yaml:"window"`
	BasePoints     int     `yaml:"base_points"`
	BonusPerLevel  int     `yaml:"bonus_per_level"`
	LabelScaleStep float64 `yaml:"label_scale_step"`
}

// EffectsConfig defines visual effect populations and their decay rates (life per second).
type EffectsConfig struct {
	SliceParticles  int     `yaml:"slice_particles"`
	BombParticles   int     `yaml:"bomb_particles"`
	ParticleSpeed   float64 `yaml:"particle_speed"`
	ParticleDecay   float64 `yaml:"particle_decay"`
	FragmentDecay   float64 `yaml:"fragment_decay"`
	FragmentImpulse float64 `yaml:"fragment_impulse"`
	FragmentSpin    float64 `yaml:"fragment_spin"`
	LabelDecay      float64 `yaml:"label_decay"`
	LabelRise       float64 `yaml:"label_rise"`
	LabelOffset     float64 `yaml:"label_offset"`
	FlashDecay      float64 `yaml:"flash_decay"`
	ShakeMagnitude  float64 `yaml:"shake_magnitude"`
	ShakeDuration   float64 `yaml:"shake_duration"`
}

// GameplayConfig defines session rules.
type GameplayConfig struct {
	Lives            int     `yaml:"lives"`
	TrailLength      float64 `yaml:"trail_length"`      // Sample life in 60 Hz frame-equivalents
	CollisionSamples int     `yaml:"collision_samples"` // Newest trail samples tested per projectile
	Bombs            bool    `yaml:"bombs"`
}

// DifficultyConfig defines the score-driven difficulty factor.
type DifficultyConfig struct {
	Enabled      bool    `yaml:"enabled"`
	InitialLevel float64 `yaml:"initial_level"` // Added to the factor from the first tick
	ScoreScale   float64 `yaml:"score_scale"`   // Score that raises the factor by 1
	Cap          float64 `yaml:"cap"`           // Factor never exceeds 1 + Cap
	GravityScale float64 `yaml:"gravity_scale"` // Gravity grows by this share per factor step
	SpinScale    float64 `yaml:"spin_scale"`
}

// Validate reports the first setting that would break the simulation.
func (c SlicerConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Canvas.CellWidth > 0 && c.Canvas.CellHeight > 0, "canvas: cell size must be positive")
	check(c.Physics.Gravity > 0, "physics.gravity must be positive, got %v", c.Physics.Gravity)
	check(c.Physics.MaxDT > 0, "physics.max_dt must be positive, got %v", c.Physics.MaxDT)
	check(c.Spawn.SingleInterval > 0 && c.Spawn.WaveInterval > 0, "spawn: intervals must be positive")
	check(c.Spawn.WaveMin > 0 && c.Spawn.WaveMax >= c.Spawn.WaveMin,
		"spawn: wave size range [%d, %d] is invalid", c.Spawn.WaveMin, c.Spawn.WaveMax)
	check(c.Spawn.ApexMin >= 0 && c.Spawn.ApexMax <= 1 && c.Spawn.ApexMin <= c.Spawn.ApexMax,
		"spawn: apex range [%v, %v] is invalid", c.Spawn.ApexMin, c.Spawn.ApexMax)
	check(c.Spawn.BombCap >= 0 && c.Spawn.BombCap <= 1, "spawn.bomb_cap must be in [0, 1]")
	check(c.Combo.Window > 0, "combo.window must be positive")
	check(c.Gameplay.Lives > 0, "gameplay.lives must be positive, got %d", c.Gameplay.Lives)
	check(c.Gameplay.TrailLength > 0, "gameplay.trail_length must be positive")
	check(c.Gameplay.CollisionSamples > 0, "gameplay.collision_samples must be positive")
	check(c.Difficulty.ScoreScale > 0, "difficulty.score_scale must be positive")
	check(c.Difficulty.Cap >= 0, "difficulty.cap must not be negative")

	return errors.Join(errs...)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the difficulty presets in the order menus cycle through them.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// Next returns the preset after p, wrapping around. Unknown presets go to
// the first one.
func (p DifficultyPreset) Next() DifficultyPreset {
	for i, q := range Presets {
		if q == p {
			return Presets[(i+1)%len(Presets)]
		}
	}
	return Presets[0]
}

// ParsePreset converts a user-supplied name into a preset.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name))); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}
