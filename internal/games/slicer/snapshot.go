package slicer

import (
	"math"

	"github.com/vovakirdan/tui-slicer/internal/core"
)

// Snapshot is an immutable copy of everything a renderer needs after a tick.
// Slices are owned by the snapshot; mutating them does not affect the session.
type Snapshot struct {
	Tick    uint64
	Elapsed float64
	Width   float64
	Height  float64

	Projectiles []Projectile
	Fragments   []Fragment
	Particles   []Particle
	Labels      []Label
	Trail       []TrailSample

	Cursor    core.Vec2
	HasCursor bool

	Shake float64
	Flash float64

	Score      int
	Lives      int
	MaxLives   int
	Combo      int
	Sliced     int
	BombsHit   int
	Missed     int
	Difficulty float64

	State    State
	Awaiting bool

	// Final is set only on the tick where the session ended.
	Final *Result
}

// Snapshot returns a copy of the current state without advancing time.
func (s *Session) Snapshot() Snapshot {
	return s.snapshot(nil)
}

func (s *Session) snapshot(final *Result) Snapshot {
	return Snapshot{
		Tick:    s.ticks,
		Elapsed: s.elapsed,
		Width:   s.width,
		Height:  s.height,

		Projectiles: append([]Projectile(nil), s.world.Projectiles...),
		Fragments:   append([]Fragment(nil), s.world.Fragments...),
		Particles:   append([]Particle(nil), s.world.Particles...),
		Labels:      append([]Label(nil), s.world.Labels...),
		Trail:       s.trail.Samples(),

		Cursor:    s.cursor,
		HasCursor: s.hasCursor,

		Shake: s.world.Shake,
		Flash: s.world.Flash,

		Score:      s.score.Score,
		Lives:      s.score.Lives,
		MaxLives:   s.score.MaxLives,
		Combo:      s.combo.Level(),
		Sliced:     s.score.Sliced,
		BombsHit:   s.score.BombsHit,
		Missed:     s.score.Missed,
		Difficulty: s.scaler.Factor(s.score.Score),

		State:    s.state,
		Awaiting: s.Awaiting(),

		Final: final,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + math.Float64bits(snap.Elapsed)
	h = h*31 + uint64(snap.Score)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Combo)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Sliced)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BombsHit) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Missed)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.State)

	for _, p := range snap.Projectiles {
		h = h*31 + p.ID
		h = h*31 + uint64(p.Kind)
		h = h*31 + math.Float64bits(p.Pos.X)
		h = h*31 + math.Float64bits(p.Pos.Y)
		h = h*31 + math.Float64bits(p.Vel.X)
		h = h*31 + math.Float64bits(p.Vel.Y)
	}

	for _, f := range snap.Fragments {
		h = h*31 + math.Float64bits(f.Pos.X)
		h = h*31 + math.Float64bits(f.Pos.Y)
		h = h*31 + uint64(f.Side)
	}

	for _, p := range snap.Particles {
		h = h*31 + math.Float64bits(p.Pos.X)
		h = h*31 + math.Float64bits(p.Pos.Y)
	}

	for _, l := range snap.Labels {
		h = h*31 + uint64(len(l.Text))
		h = h*31 + math.Float64bits(l.Pos.Y)
	}

	h = h*31 + math.Float64bits(snap.Shake)
	h = h*31 + math.Float64bits(snap.Flash)

	return h
}
