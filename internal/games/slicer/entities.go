package slicer

import (
	"math"

	"github.com/vovakirdan/tui-slicer/internal/core"
)

// Projectile is a launched fruit or bomb on a ballistic arc.
type Projectile struct {
	ID       uint64
	Pos      core.Vec2
	Vel      core.Vec2
	Rotation float64
	Spin     float64 // Rad/s
	Kind     Kind
	Radius   float64
	Resolved bool
}

// Hitbox returns the circle tested against the trail.
func (p Projectile) Hitbox() core.Circle {
	return core.Circle{Center: p.Pos, Radius: p.Radius}
}

// Side tags the two halves of a sliced fruit.
type Side uint8

const (
	SideFirst Side = iota
	SideSecond
)

// Fragment is one half of a sliced fruit.
type Fragment struct {
	Pos      core.Vec2
	Vel      core.Vec2
	Rotation float64
	Spin     float64
	Kind     Kind
	CutAngle float64
	Side     Side
	Life     float64 // [0, 1]
}

// Opacity is the remaining life.
func (f Fragment) Opacity() float64 {
	return math.Max(0, f.Life)
}

// Particle is a single dot of a burst.
type Particle struct {
	Pos   core.Vec2
	Vel   core.Vec2
	Life  float64 // (0, 1]
	Color core.Color
	Size  float64
}

// Label is floating text drifting up from an impact.
type Label struct {
	Pos   core.Vec2
	Vel   core.Vec2
	Text  string
	Color core.Color
	Life  float64 // [0, 1]
	Scale float64
}

// World holds every entity population of one session.
type World struct {
	Projectiles []Projectile
	Fragments   []Fragment
	Particles   []Particle
	Labels      []Label

	Flash float64 // Full-frame flash intensity in [0, 1]
	Shake float64 // Camera shake magnitude in canvas units
}

// Clear drops all entities and screen effects, keeping allocated storage.
func (w *World) Clear() {
	w.Projectiles = w.Projectiles[:0]
	w.Fragments = w.Fragments[:0]
	w.Particles = w.Particles[:0]
	w.Labels = w.Labels[:0]
	w.Flash = 0
	w.Shake = 0
}
