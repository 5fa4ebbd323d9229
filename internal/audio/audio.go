// Package audio defines the fire-and-forget cue sink the game talks to.
// Playback lives in the synth subpackage so game logic never links a
// sound backend.
package audio

import "sync/atomic"

//go:generate go tool mockgen -destination=./mocks/sink_mock.go -package=mocks . Sink

// Sink receives gameplay cues. Calls must not block and never fail.
type Sink interface {
	Start()
	Slice(combo int)
	BombHit()
	Throw()
}

// Nop discards every cue.
type Nop struct{}

func (Nop) Start()    {}
func (Nop) Slice(int) {}
func (Nop) BombHit()  {}
func (Nop) Throw()    {}

// Switch forwards cues to a sink unless muted. Safe for concurrent use.
type Switch struct {
	sink  Sink
	muted atomic.Bool
}

// NewSwitch wraps sink. A nil sink behaves like Nop.
func NewSwitch(sink Sink, muted bool) *Switch {
	if sink == nil {
		sink = Nop{}
	}
	s := &Switch{sink: sink}
	s.muted.Store(muted)
	return s
}

// Toggle flips the mute state and returns the new one.
func (s *Switch) Toggle() bool {
	for {
		old := s.muted.Load()
		if s.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Muted reports whether cues are dropped.
func (s *Switch) Muted() bool {
	return s.muted.Load()
}

func (s *Switch) Start() {
	if !s.muted.Load() {
		s.sink.Start()
	}
}

func (s *Switch) Slice(combo int) {
	if !s.muted.Load() {
		s.sink.Slice(combo)
	}
}

func (s *Switch) BombHit() {
	if !s.muted.Load() {
		s.sink.BombHit()
	}
}

func (s *Switch) Throw() {
	if !s.muted.Load() {
		s.sink.Throw()
	}
}
