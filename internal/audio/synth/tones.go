// Package synth builds the gameplay cue sounds from simple oscillators.
package synth

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// tone is a fixed-length oscillator with an optional linear pitch glide.
type tone struct {
	rate     beep.SampleRate
	wave     Wave
	freq     float64
	glide    float64 // Hz per second
	phase    float64
	pos      int
	duration int
	rng      *rand.Rand
}

// Tone returns a streamer of length d at freq Hz. glide bends the pitch
// linearly over time, in Hz per second.
func Tone(rate beep.SampleRate, wave Wave, freq, glide float64, d time.Duration) beep.Streamer {
	return &tone{
		rate:     rate,
		wave:     wave,
		freq:     freq,
		glide:    glide,
		duration: rate.N(d),
		rng:      rand.New(rand.NewSource(int64(freq*1000) + 1)), //#nosec G404 -- noise only
	}
}

func (o *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.pos >= o.duration {
			return i, i > 0
		}

		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = -1
			if o.phase < 0.5 {
				v = 1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			v = o.rng.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		t := float64(o.pos) / float64(o.rate)
		f := math.Max(o.freq+o.glide*t, 1)
		o.phase += f / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *tone) Err() error { return nil }

// envelope shapes a streamer with a linear attack and release.
type envelope struct {
	s       beep.Streamer
	pos     int
	attack  int
	release int
	total   int
}

// Envelope fades s in over attack and out over the last release of d.
func Envelope(rate beep.SampleRate, s beep.Streamer, d, attack, release time.Duration) beep.Streamer {
	return &envelope{
		s:       s,
		attack:  rate.N(attack),
		release: rate.N(release),
		total:   rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	for i := 0; i < n; i++ {
		if e.pos >= e.total {
			return i, i > 0
		}
		gain := e.gainAt(e.pos)
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *envelope) gainAt(pos int) float64 {
	gain := 1.0
	if e.attack > 0 && pos < e.attack {
		gain = float64(pos) / float64(e.attack)
	}
	if start := e.total - e.release; e.release > 0 && pos >= start {
		gain = math.Min(gain, float64(e.total-pos)/float64(e.release))
	}
	return math.Max(gain, 0)
}

func (e *envelope) Err() error { return e.s.Err() }

// WithVolume scales s linearly; zero or less is silence.
func WithVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// SliceFreq is the pitch of a slice at the given combo level: a semitone
// per level above the first, capped at two octaves.
func SliceFreq(level int) float64 {
	steps := min(max(level-1, 0), 24)
	return 660 * math.Pow(2, float64(steps)/12)
}

// StartCue is a rising two-note chime.
func StartCue(rate beep.SampleRate) beep.Streamer {
	const d = 260 * time.Millisecond
	return beep.Seq(
		Envelope(rate, Tone(rate, WaveSquare, 523.25, 0, d/2), d/2, 5*time.Millisecond, 40*time.Millisecond),
		Envelope(rate, Tone(rate, WaveSquare, 783.99, 0, d/2), d/2, 5*time.Millisecond, 60*time.Millisecond),
	)
}

// SliceCue is a swish over a ping pitched by combo level.
func SliceCue(rate beep.SampleRate, level int) beep.Streamer {
	const d = 120 * time.Millisecond
	freq := SliceFreq(level)
	swish := Envelope(rate, Tone(rate, WaveNoise, freq, 0, d), d, 2*time.Millisecond, 90*time.Millisecond)
	ping := Envelope(rate, Tone(rate, WaveSine, freq, freq, d), d, 3*time.Millisecond, 80*time.Millisecond)
	return beep.Mix(WithVolume(swish, 0.35), WithVolume(ping, 0.65))
}

// BombCue is a falling rumble with a noise blast.
func BombCue(rate beep.SampleRate) beep.Streamer {
	const d = 600 * time.Millisecond
	rumble := Envelope(rate, Tone(rate, WaveSaw, 110, -120, d), d, 5*time.Millisecond, 450*time.Millisecond)
	blast := Envelope(rate, Tone(rate, WaveNoise, 1, 0, d), d, time.Millisecond, 500*time.Millisecond)
	return beep.Mix(WithVolume(rumble, 0.5), WithVolume(blast, 0.6))
}

// ThrowCue is a soft upward whoop.
func ThrowCue(rate beep.SampleRate) beep.Streamer {
	const d = 90 * time.Millisecond
	return WithVolume(Envelope(rate, Tone(rate, WaveSine, 220, 900, d), d, 10*time.Millisecond, 60*time.Millisecond), 0.25)
}
