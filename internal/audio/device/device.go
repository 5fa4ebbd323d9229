// Package device plays cues through the system speaker.
package device

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-slicer/internal/audio"
	"github.com/vovakirdan/tui-slicer/internal/audio/synth"
)

// SampleRate is the speaker output rate.
const SampleRate = beep.SampleRate(44100)

// BeepSink mixes cue streamers onto the speaker. When the speaker cannot be
// opened it stays silent.
type BeepSink struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	ready  bool
}

var _ audio.Sink = (*BeepSink)(nil)

// Open initializes the speaker and returns a sink playing at volume (0..1).
// On failure the sink is silent and the error is logged, never returned to
// callers of the cue methods.
func Open(volume float64, logger *log.Logger) *BeepSink {
	s := &BeepSink{mixer: &beep.Mixer{}, volume: volume}
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		if logger != nil {
			logger.Warn("audio disabled", "err", err)
		}
		return s
	}
	speaker.Play(s.mixer)
	s.ready = true
	return s
}

// Ready reports whether cues reach the speaker.
func (s *BeepSink) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

func (s *BeepSink) Start()          { s.play(synth.StartCue(SampleRate)) }
func (s *BeepSink) Slice(level int) { s.play(synth.SliceCue(SampleRate, level)) }
func (s *BeepSink) BombHit()        { s.play(synth.BombCue(SampleRate)) }
func (s *BeepSink) Throw()          { s.play(synth.ThrowCue(SampleRate)) }

func (s *BeepSink) play(cue beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	speaker.Lock()
	s.mixer.Add(synth.WithVolume(cue, s.volume))
	speaker.Unlock()
}

// Close drops pending cues and silences the sink.
func (s *BeepSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.ready = false
}
