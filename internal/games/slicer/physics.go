package slicer

import (
	"math"

	"github.com/vovakirdan/tui-slicer/internal/config"
)

// ClampDT bounds a frame step to [0, max]. Negative and NaN steps become 0.
func ClampDT(dt, max float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	if dt > max {
		return max
	}
	return dt
}

// Physics integrates every moving entity with explicit Euler steps.
type Physics struct {
	cfg    config.PhysicsConfig
	height float64
}

// NewPhysics creates a simulator for a canvas of the given height.
func NewPhysics(cfg config.PhysicsConfig, height float64) *Physics {
	return &Physics{cfg: cfg, height: height}
}

// SetHeight updates the canvas height used for despawning.
func (ph *Physics) SetHeight(height float64) {
	ph.height = height
}

// ClampDT bounds dt to the configured maximum step.
func (ph *Physics) ClampDT(dt float64) float64 {
	return ClampDT(dt, ph.cfg.MaxDT)
}

// floor is the y coordinate below which entities are dropped.
func (ph *Physics) floor() float64 {
	return ph.height + ph.cfg.DespawnOffset
}

// Advance moves all projectiles, fragments and particles by dt under the
// given gravity. Projectiles falling past the floor are dropped; the number
// of fruit dropped this way is returned.
func (ph *Physics) Advance(w *World, gravity, dt float64) int {
	floor := ph.floor()

	missed := 0
	projectiles := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		p.Vel.Y += gravity * dt
		p.Rotation += p.Spin * dt
		if p.Pos.Y > floor && p.Vel.Y > 0 {
			if !p.Kind.IsBomb() {
				missed++
			}
			continue
		}
		projectiles = append(projectiles, p)
	}
	w.Projectiles = projectiles

	fragments := w.Fragments[:0]
	for _, f := range w.Fragments {
		f.Pos = f.Pos.Add(f.Vel.Scale(dt))
		f.Vel.Y += gravity * dt
		f.Rotation += f.Spin * dt
		if f.Pos.Y > floor {
			continue
		}
		fragments = append(fragments, f)
	}
	w.Fragments = fragments

	pg := gravity * ph.cfg.ParticleGravityFactor
	particles := w.Particles[:0]
	for _, p := range w.Particles {
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		p.Vel.Y += pg * dt
		if p.Pos.Y > floor {
			continue
		}
		particles = append(particles, p)
	}
	w.Particles = particles

	return missed
}
