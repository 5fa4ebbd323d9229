package slicer

import (
	"math/rand"

	"github.com/vovakirdan/tui-slicer/internal/audio"
	"github.com/vovakirdan/tui-slicer/internal/config"
	"github.com/vovakirdan/tui-slicer/internal/core"
)

// State is the top-level phase of a session.
type State uint8

const (
	StateMenu State = iota
	StatePlaying
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Session runs the slicing simulation. It owns every entity population and
// all counters; nothing survives Start except the RNG stream and entity IDs.
//
// A Session is driven by one goroutine calling Tick once per frame.
type Session struct {
	cfg    config.SlicerConfig
	width  float64
	height float64
	sink   audio.Sink

	scaler  *config.Scaler
	trail   *Trail
	spawner *Spawner
	physics *Physics
	combo   *Combo
	score   *Scoreboard
	effects *Effects
	world   World

	state     State
	awaiting  bool
	elapsed   float64 // Seconds of active play, the combo clock
	ticks     uint64
	cursor    core.Vec2
	hasCursor bool
}

// NewSession creates a session in the menu state on a width x height canvas.
// A nil sink discards audio cues.
func NewSession(cfg config.SlicerConfig, width, height float64, seed int64, sink audio.Sink) *Session {
	if sink == nil {
		sink = audio.Nop{}
	}
	rng := rand.New(rand.NewSource(seed))
	scaler := config.NewScaler(cfg.Difficulty)

	return &Session{
		cfg:     cfg,
		width:   width,
		height:  height,
		sink:    sink,
		scaler:  scaler,
		trail:   NewTrail(cfg.Gameplay.TrailLength),
		spawner: NewSpawner(cfg.Spawn, cfg.Physics.Gravity, scaler, rng, cfg.Gameplay.Bombs),
		physics: NewPhysics(cfg.Physics, height),
		combo:   NewCombo(cfg.Combo),
		score:   NewScoreboard(cfg.Gameplay.Lives),
		effects: NewEffects(cfg.Effects, rng),
		state:   StateMenu,
	}
}

// Start enters PLAYING from any state with a fresh tally. Simulation waits
// until the first tick that carries a tracked point.
func (s *Session) Start() {
	s.resetPlay()
	s.state = StatePlaying
	s.awaiting = true
	s.sink.Start()
}

// ReturnToMenu abandons the current session.
func (s *Session) ReturnToMenu() {
	s.resetPlay()
	s.state = StateMenu
	s.awaiting = false
}

func (s *Session) resetPlay() {
	s.world.Clear()
	s.trail.Reset()
	s.spawner.Reset()
	s.combo.Reset()
	s.score.Reset()
	s.elapsed = 0
}

// Resize changes the canvas size without touching session state.
func (s *Session) Resize(width, height float64) {
	s.width = width
	s.height = height
	s.physics.SetHeight(height)
}

// State returns the current phase.
func (s *Session) State() State {
	return s.state
}

// Awaiting reports whether PLAYING is paused until input shows up.
func (s *Session) Awaiting() bool {
	return s.state == StatePlaying && s.awaiting
}

// Result returns the running tally of the current or last session.
func (s *Session) Result() Result {
	return s.score.Result()
}

// Tick advances the session by dt seconds given the tracked points of this
// frame, in normalized screen space with the primary point first.
//
// Per tick: trail ingest, spawn, physics, collision, combo and scoring,
// then effects. A tick never fails; dt is clamped to [0, max_dt].
func (s *Session) Tick(dt float64, points []core.Point) Snapshot {
	dt = s.physics.ClampDT(dt)
	s.ticks++

	s.trail.Advance(dt)
	s.hasCursor = len(points) > 0
	if s.hasCursor {
		s.cursor = s.toCanvas(points[0])
		s.trail.Ingest(s.cursor)
	}

	var final *Result
	switch s.state {
	case StatePlaying:
		if s.awaiting && s.hasCursor {
			s.awaiting = false
		}
		if !s.awaiting {
			final = s.step(dt)
		}
	case StateGameOver:
		s.effects.AdvanceScreen(&s.world, dt)
	}

	return s.snapshot(final)
}

// step runs one tick of active play. It returns the final result on the
// tick that ends the session.
func (s *Session) step(dt float64) *Result {
	s.elapsed += dt
	d := s.scaler.Factor(s.score.Score)

	s.combo.Expire(s.elapsed)

	for _, p := range s.spawner.Update(dt, s.width, s.height, d) {
		s.world.Projectiles = append(s.world.Projectiles, p)
		s.sink.Throw()
	}

	gravity := s.scaler.Gravity(s.cfg.Physics.Gravity, d)
	s.score.Miss(s.physics.Advance(&s.world, gravity, dt))

	var final *Result
	outcomes := Detect(&s.world, s.trail.Recent(s.cfg.Gameplay.CollisionSamples), s.trail.CutAngle())
	for _, o := range outcomes {
		if o.Kind == OutcomeBomb {
			s.combo.Bomb()
			s.effects.Bomb(&s.world, o.Projectile)
			s.sink.BombHit()
			if s.score.Bomb() {
				s.state = StateGameOver
				r := s.score.Result()
				final = &r
				break
			}
			continue
		}

		points, combo := s.combo.Slice(s.elapsed)
		s.score.Slice(points)
		level := s.combo.Level()
		s.effects.Slice(&s.world, o.Projectile, o.CutAngle, Hit{
			Points: points,
			Level:  level,
			Combo:  combo,
			Scale:  s.combo.LabelScale(level),
		})
		s.sink.Slice(level)
	}

	s.effects.Advance(&s.world, dt)
	return final
}

// toCanvas maps a normalized point onto the canvas.
func (s *Session) toCanvas(p core.Point) core.Vec2 {
	return core.V(p.X*s.width, p.Y*s.height)
}
