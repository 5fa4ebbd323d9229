package tui

import (
	"github.com/vovakirdan/tui-slicer/internal/audio"
	"github.com/vovakirdan/tui-slicer/internal/commentary"
	"github.com/vovakirdan/tui-slicer/internal/config"
	"github.com/vovakirdan/tui-slicer/internal/core"
	"github.com/vovakirdan/tui-slicer/internal/registry"
)

const fakeGameID = "fake"

func init() {
	registry.Register(fakeGameID, func() registry.Game {
		return &fakeGame{}
	})
}

// frameRecord is a copy of one frame handed to Step.
type frameRecord struct {
	actions core.ActionSet
	points  []core.Point
	dt      float64
}

type fakeGame struct {
	cfg     core.RuntimeConfig
	state   core.GameState
	endNext bool
	frames  []frameRecord
	resets  int
	resized [2]int
	stats   commentary.Stats

	sink    audio.Sink
	preset  config.DifficultyPreset
	rank    string
	message string
	notice  string
}

func (g *fakeGame) ID() string    { return fakeGameID }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.resets++
	g.state = core.GameState{InMenu: true}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	rec := frameRecord{
		actions: in.Actions,
		points:  append([]core.Point(nil), in.Points...),
		dt:      in.DT,
	}
	g.frames = append(g.frames, rec)

	switch {
	case in.Has(core.ActionBack):
		g.state = core.GameState{InMenu: true}
	case in.Has(core.ActionStart) && !g.playing():
		g.state = core.GameState{Lives: 3}
	}

	ended := false
	if g.endNext {
		g.endNext = false
		g.state.GameOver = true
		ended = true
	}
	g.state.Score = g.stats.Score
	return core.StepResult{State: g.state, Ended: ended}
}

func (g *fakeGame) playing() bool {
	return !g.state.InMenu && !g.state.GameOver
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "fake")
}

func (g *fakeGame) State() core.GameState { return g.state }

func (g *fakeGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func (g *fakeGame) SetSink(s audio.Sink) { g.sink = s }

func (g *fakeGame) SetDifficulty(p config.DifficultyPreset) { g.preset = p }

func (g *fakeGame) SetVerdict(rank, message string) {
	g.rank = rank
	g.message = message
}

func (g *fakeGame) SetNotice(text string) { g.notice = text }

func (g *fakeGame) RunStats() commentary.Stats { return g.stats }
