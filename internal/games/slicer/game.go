// Package slicer implements the fruit slicing arcade game: projectiles are
// launched on ballistic arcs and cut by a decaying trail of tracked points.
package slicer

import (
	"sync/atomic"
	"time"

	"github.com/vovakirdan/tui-slicer/internal/audio"
	"github.com/vovakirdan/tui-slicer/internal/commentary"
	"github.com/vovakirdan/tui-slicer/internal/config"
	"github.com/vovakirdan/tui-slicer/internal/core"
	"github.com/vovakirdan/tui-slicer/internal/registry"
)

// Game mode identifiers.
const (
	IDClassic = "slicer"
	IDZen     = "slicer_zen"
)

// tuning is the config every new session starts from, set by the front-end
// after it has loaded and reported errors for it.
var tuning atomic.Pointer[config.SlicerConfig]

// UseConfig sets the tuning for sessions reset from now on.
func UseConfig(cfg config.SlicerConfig) {
	tuning.Store(&cfg)
}

// baseConfig returns the tuning set by UseConfig. Without one it reads the
// search paths, falling back to the defaults on a bad file.
func baseConfig() config.SlicerConfig {
	if cfg := tuning.Load(); cfg != nil {
		return *cfg
	}
	cfg, err := config.LoadSlicer("")
	if err != nil {
		return config.DefaultSlicerConfig()
	}
	return cfg
}

// Game adapts a Session to the registry.Game interface.
type Game struct {
	zen    bool
	preset config.DifficultyPreset

	runtime core.RuntimeConfig
	cfg     config.SlicerConfig
	session *Session
	sink    audio.Sink
	last    Snapshot

	rank    string
	message string
	notice  string
}

// New creates a classic game instance.
func New() *Game {
	return &Game{}
}

// NewZen creates a game without bombs. It never ends on its own.
func NewZen() *Game {
	return &Game{zen: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.zen {
		return IDZen
	}
	return IDClassic
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.zen {
		return "Slicer (Zen)"
	}
	return "Slicer"
}

// Mode returns the short mode name used for score storage.
func (g *Game) Mode() string {
	if g.zen {
		return "zen"
	}
	return "classic"
}

// SetDifficulty applies a difficulty preset from the next Reset on.
func (g *Game) SetDifficulty(p config.DifficultyPreset) {
	g.preset = p
}

// SetSink routes audio cues of the next Reset to sink.
func (g *Game) SetSink(sink audio.Sink) {
	g.sink = sink
}

// Reset builds a fresh session in the menu from the current tuning.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg := baseConfig()
	if g.preset != "" {
		config.ApplySlicerPreset(&cfg, g.preset)
	}
	if g.zen {
		cfg.Gameplay.Bombs = false
	}
	g.cfg = cfg

	w, h := cfg.Canvas.Size(runtime.ScreenW, runtime.ScreenH)
	g.session = NewSession(cfg, w, h, runtime.Seed, g.sink)
	g.last = g.session.Snapshot()
	g.SetVerdict("", "")
}

// Resize adapts the canvas to a new terminal size without restarting.
func (g *Game) Resize(screenW, screenH int) {
	g.runtime.ScreenW = screenW
	g.runtime.ScreenH = screenH
	if g.session == nil {
		return
	}
	g.session.Resize(g.cfg.Canvas.Size(screenW, screenH))
	g.last = g.session.Snapshot()
}

// Step handles menu actions and advances the session by one frame.
// A zero DT stands for one nominal frame at the runtime tick rate.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	switch {
	case in.Has(core.ActionBack):
		g.session.ReturnToMenu()
		g.SetVerdict("", "")
	case in.Has(core.ActionStart) && g.session.State() != StatePlaying,
		in.Has(core.ActionRestart) && g.session.State() == StateGameOver:
		g.session.Start()
		g.SetVerdict("", "")
	}

	dt := in.DT
	if dt == 0 {
		dt = g.runtime.FrameDT()
	}
	g.last = g.session.Tick(dt, in.Points)

	return core.StepResult{
		State: g.State(),
		Ended: g.last.Final != nil,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.last.Score,
		Lives:    g.last.Lives,
		GameOver: g.last.State == StateGameOver,
		Paused:   g.last.Awaiting,
		InMenu:   g.last.State == StateMenu,
	}
}

// Snapshot returns the snapshot of the last tick.
func (g *Game) Snapshot() Snapshot {
	return g.last
}

// Result returns the tally of the current or last session.
func (g *Game) Result() Result {
	return g.session.Result()
}

// RunStats summarizes the current or last run for commentary.
func (g *Game) RunStats() commentary.Stats {
	return commentary.Stats{
		Mode:     g.Mode(),
		Score:    g.last.Score,
		Sliced:   g.last.Sliced,
		BombsHit: g.last.BombsHit,
		Missed:   g.last.Missed,
		Elapsed:  time.Duration(g.last.Elapsed * float64(time.Second)),
	}
}

// SetVerdict shows a commentary rank and message on the game over screen.
func (g *Game) SetVerdict(rank, message string) {
	g.rank = rank
	g.message = message
}

// SetNotice shows a one-line status, such as a lost tracker. Empty clears it.
func (g *Game) SetNotice(text string) {
	g.notice = text
}

// Render draws the last snapshot.
func (g *Game) Render(dst *core.Screen) {
	Draw(dst, g.last, Overlay{
		Title:   g.Title(),
		Zen:     g.zen,
		Rank:    g.rank,
		Message: g.message,
		Notice:  g.notice,
	})
}

// Register the game modes with the registry
func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDZen, func() registry.Game {
		return NewZen()
	})
}
