package slicer

import (
	"math"

	"github.com/vovakirdan/tui-slicer/internal/core"
)

// referenceFPS converts elapsed seconds into frame-equivalents, so the trail
// shrinks at the same wall-clock rate at any frame rate.
const referenceFPS = 60

// TrailSample is one recorded position of the tracked point.
type TrailSample struct {
	Pos  core.Vec2
	Life float64 // Frame-equivalents left
}

// Trail is the decaying recent path of the tracked point, oldest first.
type Trail struct {
	samples []TrailSample
	length  float64
}

// NewTrail creates a trail whose samples live for length frame-equivalents.
func NewTrail(length float64) *Trail {
	return &Trail{
		samples: make([]TrailSample, 0, 32),
		length:  length,
	}
}

// Ingest appends a fresh sample.
func (t *Trail) Ingest(p core.Vec2) {
	t.samples = append(t.samples, TrailSample{Pos: p, Life: t.length})
}

// Advance ages every sample by dt seconds and drops the expired ones.
func (t *Trail) Advance(dt float64) {
	decay := dt * referenceFPS
	kept := t.samples[:0]
	for _, s := range t.samples {
		s.Life -= decay
		if s.Life > 0 {
			kept = append(kept, s)
		}
	}
	t.samples = kept
}

// Recent returns up to n newest samples, oldest first.
// The result aliases the trail and is valid until the next mutation.
func (t *Trail) Recent(n int) []TrailSample {
	if n <= 0 {
		return nil
	}
	if n > len(t.samples) {
		n = len(t.samples)
	}
	return t.samples[len(t.samples)-n:]
}

// CutAngle approximates the gesture direction from the third-newest sample
// to the newest one. Zero when fewer than three samples exist.
func (t *Trail) CutAngle() float64 {
	n := len(t.samples)
	if n < 3 {
		return 0
	}
	d := t.samples[n-1].Pos.Sub(t.samples[n-3].Pos)
	return math.Atan2(d.Y, d.X)
}

// Len returns the number of live samples.
func (t *Trail) Len() int {
	return len(t.samples)
}

// Samples returns a copy of all live samples.
func (t *Trail) Samples() []TrailSample {
	out := make([]TrailSample, len(t.samples))
	copy(out, t.samples)
	return out
}

// Reset drops all samples.
func (t *Trail) Reset() {
	t.samples = t.samples[:0]
}
