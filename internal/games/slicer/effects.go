package slicer

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-slicer/internal/config"
	"github.com/vovakirdan/tui-slicer/internal/core"
)

// Effects spawns and ages the visual-only populations: particles, fragment
// pairs, labels, and the bomb flash and shake.
type Effects struct {
	cfg config.EffectsConfig
	rng *rand.Rand
}

// NewEffects creates an effects manager drawing from rng.
func NewEffects(cfg config.EffectsConfig, rng *rand.Rand) *Effects {
	return &Effects{cfg: cfg, rng: rng}
}

// Hit describes how a slice scored.
type Hit struct {
	Points int
	Level  int     // Combo level after the slice
	Combo  bool    // Level above 1
	Scale  float64 // Label emphasis
}

// Slice emits the juice burst, the fragment pair and the score label for a
// cut fruit.
func (e *Effects) Slice(w *World, p Projectile, cutAngle float64, hit Hit) {
	info := p.Kind.Info()

	e.burst(w, p.Pos, e.cfg.SliceParticles, info.Color)

	// Halves are pushed apart along the normal of the cut line.
	normal := core.FromAngle(cutAngle+math.Pi/2, 1)
	push := normal.Scale(e.cfg.FragmentImpulse)
	offset := normal.Scale(p.Radius * 0.3)
	w.Fragments = append(w.Fragments,
		Fragment{
			Pos:      p.Pos.Add(offset),
			Vel:      p.Vel.Add(push),
			Rotation: p.Rotation,
			Spin:     p.Spin + e.cfg.FragmentSpin,
			Kind:     p.Kind,
			CutAngle: cutAngle,
			Side:     SideFirst,
			Life:     1,
		},
		Fragment{
			Pos:      p.Pos.Sub(offset),
			Vel:      p.Vel.Sub(push),
			Rotation: p.Rotation,
			Spin:     p.Spin - e.cfg.FragmentSpin,
			Kind:     p.Kind,
			CutAngle: cutAngle,
			Side:     SideSecond,
			Life:     1,
		},
	)

	text := fmt.Sprintf("+%d", hit.Points)
	color := core.ColorBrightWhite
	if hit.Combo {
		text = fmt.Sprintf("COMBO x%d +%d", hit.Level, hit.Points)
		color = core.ColorBrightYellow
	}
	w.Labels = append(w.Labels, Label{
		Pos:   core.V(p.Pos.X, p.Pos.Y-p.Radius-e.cfg.LabelOffset),
		Vel:   core.V(0, -e.cfg.LabelRise),
		Text:  text,
		Color: color,
		Life:  1,
		Scale: hit.Scale,
	})
}

// Bomb emits the white blast burst and triggers flash and shake.
func (e *Effects) Bomb(w *World, p Projectile) {
	e.burst(w, p.Pos, e.cfg.BombParticles, core.ColorBrightWhite)
	w.Flash = 1
	w.Shake = e.cfg.ShakeMagnitude
}

func (e *Effects) burst(w *World, at core.Vec2, n int, color core.Color) {
	for range n {
		angle := e.rng.Float64() * 2 * math.Pi
		speed := e.cfg.ParticleSpeed * (0.3 + 0.7*e.rng.Float64())
		w.Particles = append(w.Particles, Particle{
			Pos:   at,
			Vel:   core.FromAngle(angle, speed),
			Life:  0.7 + 0.3*e.rng.Float64(),
			Color: color,
			Size:  1 + 2*e.rng.Float64(),
		})
	}
}

// Advance decays every effect by dt and prunes the expired ones.
func (e *Effects) Advance(w *World, dt float64) {
	particles := w.Particles[:0]
	for _, p := range w.Particles {
		p.Life -= e.cfg.ParticleDecay * dt
		if p.Life > 0 {
			particles = append(particles, p)
		}
	}
	w.Particles = particles

	fragments := w.Fragments[:0]
	for _, f := range w.Fragments {
		f.Life -= e.cfg.FragmentDecay * dt
		if f.Life > 0 {
			fragments = append(fragments, f)
		}
	}
	w.Fragments = fragments

	labels := w.Labels[:0]
	for _, l := range w.Labels {
		l.Pos = l.Pos.Add(l.Vel.Scale(dt))
		l.Life -= e.cfg.LabelDecay * dt
		if l.Life > 0 {
			labels = append(labels, l)
		}
	}
	w.Labels = labels

	e.AdvanceScreen(w, dt)
}

// AdvanceScreen decays only the full-frame flash and shake.
func (e *Effects) AdvanceScreen(w *World, dt float64) {
	w.Flash = math.Max(0, w.Flash-e.cfg.FlashDecay*dt)

	rate := e.cfg.ShakeMagnitude
	if e.cfg.ShakeDuration > 0 {
		rate /= e.cfg.ShakeDuration
	}
	w.Shake = math.Max(0, w.Shake-rate*dt)
}
