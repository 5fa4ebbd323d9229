package config

import "math"

// Scaler derives the difficulty factor from the running score and
// applies it to spawn and physics parameters.
//
// The factor is 1 + min(initial + score/scale, cap): it starts at 1 (or the
// preset's initial level), never decreases while the score grows, and is
// bounded by 1 + cap.
type Scaler struct {
	cfg DifficultyConfig
}

// NewScaler creates a new difficulty scaler.
func NewScaler(cfg DifficultyConfig) *Scaler {
	if cfg.ScoreScale <= 0 {
		cfg.ScoreScale = 1 // Prevent division by zero
	}
	if cfg.Cap < 0 {
		cfg.Cap = 0
	}
	return &Scaler{cfg: cfg}
}

// SetEnabled enables or disables difficulty progression.
func (s *Scaler) SetEnabled(enabled bool) {
	s.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (s *Scaler) IsEnabled() bool {
	return s.cfg.Enabled
}

// Max returns the upper bound of the factor.
func (s *Scaler) Max() float64 {
	return 1 + s.cfg.Cap
}

// Factor returns the difficulty factor for a score.
func (s *Scaler) Factor(score int) float64 {
	level := s.cfg.InitialLevel
	if s.cfg.Enabled && score > 0 {
		level += float64(score) / s.cfg.ScoreScale
	}
	return 1 + clampF(level, 0, s.cfg.Cap)
}

// BombChance returns the probability that a launch is a bomb.
func (s *Scaler) BombChance(sp SpawnConfig, d float64) float64 {
	return clampF(sp.BombBase+(d-1)*sp.BombSlope, 0, sp.BombCap)
}

// Gravity returns the scaled gravity magnitude.
func (s *Scaler) Gravity(base, d float64) float64 {
	return base * (1 + (d-1)*s.cfg.GravityScale)
}

// SpinScale returns the multiplier applied to projectile rotation speed.
func (s *Scaler) SpinScale(d float64) float64 {
	return 1 + (d-1)*s.cfg.SpinScale
}

// SpawnInterval returns the interval between launches at difficulty d.
func (s *Scaler) SpawnInterval(base, d float64) float64 {
	if d < 1 {
		d = 1
	}
	return base / d
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
