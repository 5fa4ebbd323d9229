package tui

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-slicer/internal/audio"
	"github.com/vovakirdan/tui-slicer/internal/commentary"
	"github.com/vovakirdan/tui-slicer/internal/core"
	"github.com/vovakirdan/tui-slicer/internal/input"
	"github.com/vovakirdan/tui-slicer/internal/storage"
)

var testEpoch = time.Unix(1_700_000_000, 0)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func newTestModel(t *testing.T, g *fakeGame, opts Options) Model {
	t.Helper()
	m := NewModel(g, testConfig(), opts)
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return nm, cmd
}

func tick(t *testing.T, m Model, at time.Duration) Model {
	t.Helper()
	m, _ = update(t, m, TickMsg(testEpoch.Add(at)))
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// fakeSource is an external source that can fail.
type fakeSource struct {
	points []core.Point
	err    error
	closed int
}

func (s *fakeSource) Poll() []core.Point { return s.points }
func (s *fakeSource) Err() error         { return s.err }

func (s *fakeSource) Close() error {
	s.closed++
	return nil
}

func TestModelInitResetsPlayfield(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, Options{})

	if g.resets != 1 {
		t.Errorf("resets = %d, expected 1", g.resets)
	}
	if g.cfg.ScreenW != 80 || g.cfg.ScreenH != 23 {
		t.Errorf("game screen = %dx%d, expected 80x23", g.cfg.ScreenW, g.cfg.ScreenH)
	}
	if _, ok := g.sink.(*audio.Switch); !ok {
		t.Errorf("sink = %T, expected *audio.Switch", g.sink)
	}
	if m.screen.Height() != 23 {
		t.Errorf("screen height = %d, expected 23", m.screen.Height())
	}
}

func TestModelStartAndDT(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, Options{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = tick(t, m, 0)
	m = tick(t, m, 50*time.Millisecond)

	if len(g.frames) != 2 {
		t.Fatalf("frames = %d, expected 2", len(g.frames))
	}
	if !g.frames[0].actions.Has(core.ActionStart) {
		t.Error("first frame did not carry ActionStart")
	}
	if g.frames[1].actions.Has(core.ActionStart) {
		t.Error("ActionStart leaked into the second frame")
	}
	if got := g.frames[0].dt; got != testConfig().FrameDT() {
		t.Errorf("first dt = %v, expected nominal %v", got, testConfig().FrameDT())
	}
	if got := g.frames[1].dt; got < 0.0499 || got > 0.0501 {
		t.Errorf("second dt = %v, expected 0.05", got)
	}
	if !m.playing {
		t.Error("model does not consider the game running")
	}
}

func TestModelMouseFeedsPoints(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, Options{})

	m, _ = update(t, m, tea.MouseMsg{X: 40, Y: 11})
	tick(t, m, 0)

	pts := g.frames[0].points
	if len(pts) != 1 {
		t.Fatalf("points = %v, expected one", pts)
	}
	if pts[0].X != 40.5/80 || pts[0].Y != 11.5/23 {
		t.Errorf("point = %v, expected centre of cell (40, 11)", pts[0])
	}
}

func TestModelPrefersExternalSource(t *testing.T) {
	g := &fakeGame{}
	src := &fakeSource{points: []core.Point{{X: 0.1, Y: 0.9}}}
	m := newTestModel(t, g, Options{Source: src})

	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: 10})
	m = tick(t, m, 0)

	if pts := g.frames[0].points; len(pts) != 1 || pts[0] != src.points[0] {
		t.Errorf("points = %v, expected tracker point %v", pts, src.points[0])
	}

	// A tracker that sees nothing yields to the mouse.
	src.points = nil
	tick(t, m, 20*time.Millisecond)
	if pts := g.frames[1].points; len(pts) != 1 || pts[0].X != 10.5/80 {
		t.Errorf("points = %v, expected the mouse position", pts)
	}
}

func TestModelTrackerLossFallsBack(t *testing.T) {
	g := &fakeGame{}
	src := &fakeSource{err: errors.New("connection reset")}
	m := newTestModel(t, g, Options{Source: src})

	m = tick(t, m, 0)
	m = tick(t, m, 20*time.Millisecond)

	if src.closed != 1 {
		t.Errorf("source closed %d times, expected 1", src.closed)
	}
	if g.notice == "" {
		t.Error("no notice shown after tracker loss")
	}
	if m.source != input.Source(m.pointer) {
		t.Error("model did not fall back to the mouse")
	}
}

func TestModelQuitClosesSource(t *testing.T) {
	g := &fakeGame{}
	src := &fakeSource{}
	m := newTestModel(t, g, Options{Source: src})

	m, cmd := update(t, m, keyRune('q'))
	if !isQuit(cmd) {
		t.Error("q did not quit")
	}
	if !m.IsQuitting() {
		t.Error("IsQuitting() = false, expected true")
	}
	if src.closed != 1 {
		t.Errorf("source closed %d times, expected 1", src.closed)
	}
	if m.View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestModelBackFromMenu(t *testing.T) {
	t.Run("standalone", func(t *testing.T) {
		m := newTestModel(t, &fakeGame{}, Options{})
		m = tick(t, m, 0)
		m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		if !isQuit(cmd) || !m.BackToMenu() {
			t.Errorf("quit = %v, BackToMenu() = %v, expected both", isQuit(cmd), m.BackToMenu())
		}
	})

	t.Run("embedded", func(t *testing.T) {
		m := newTestModel(t, &fakeGame{}, Options{Embedded: true})
		m = tick(t, m, 0)
		m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		if isQuit(cmd) {
			t.Error("embedded model quit the program")
		}
		if !m.BackToMenu() {
			t.Error("BackToMenu() = false, expected true")
		}
	})

	t.Run("while playing", func(t *testing.T) {
		g := &fakeGame{}
		m := newTestModel(t, g, Options{})
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		m = tick(t, m, 0)
		m, cmd := update(t, m, keyRune('b'))
		if cmd != nil || m.BackToMenu() {
			t.Error("back during play left the game instead of returning to its menu")
		}
		tick(t, m, 20*time.Millisecond)
		if !g.frames[1].actions.Has(core.ActionBack) {
			t.Error("ActionBack was not forwarded to the game")
		}
	})
}

func TestModelSavesRunOnce(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{stats: commentary.Stats{Mode: "classic", Score: 120, Sliced: 12, BombsHit: 1}}
	m := newTestModel(t, g, Options{Store: store, Judge: commentary.Local{}})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = tick(t, m, 0)
	g.endNext = true
	m = tick(t, m, 20*time.Millisecond)
	m = tick(t, m, 40*time.Millisecond)

	runs, err := store.TopRuns(fakeGameID, 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, expected 1", len(runs))
	}
	if runs[0].Score != 120 || runs[0].Sliced != 12 || runs[0].BombsHit != 1 {
		t.Errorf("run = %+v, expected the game's stats", runs[0])
	}
	if runs[0].RunID != m.runID {
		t.Errorf("RunID = %q, expected %q", runs[0].RunID, m.runID)
	}
	if cmd := m.finishRun(); cmd != nil {
		t.Error("finishRun() ran twice for one run")
	}

	// Stale verdicts are dropped.
	m, _ = update(t, m, verdictMsg{runID: "other", verdict: commentary.Verdict{Rank: "S"}})
	if g.rank != "" {
		t.Errorf("rank = %q after stale verdict, expected empty", g.rank)
	}

	m, _ = update(t, m, verdictMsg{runID: m.runID, verdict: commentary.Verdict{Rank: "C", Message: "Warming up."}})
	if g.rank != "C" || g.message != "Warming up." {
		t.Errorf("verdict = %q %q, expected C", g.rank, g.message)
	}
	run, _ := store.RunByID(m.runID)
	if run == nil || run.Rank != "C" {
		t.Errorf("stored run = %+v, expected rank C", run)
	}
}

func TestModelRanksRunAfterRestart(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{stats: commentary.Stats{Score: 60, Sliced: 6}}
	m := newTestModel(t, g, Options{Store: store, Judge: commentary.Local{}})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = tick(t, m, 0)
	g.endNext = true
	m = tick(t, m, 20*time.Millisecond)
	finished := m.runID
	if finished == "" {
		t.Fatal("runID is empty after game over")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = tick(t, m, 40*time.Millisecond)
	if m.runID != "" {
		t.Fatalf("runID = %q after restart, expected empty", m.runID)
	}

	update(t, m, verdictMsg{runID: finished, verdict: commentary.Verdict{Rank: "C", Message: "Warming up."}})
	if g.rank != "" {
		t.Errorf("rank = %q on the new run, expected empty", g.rank)
	}
	run, err := store.RunByID(finished)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil || run.Rank != "C" {
		t.Errorf("stored run = %+v, expected rank C", run)
	}
}

func TestModelSavesAbandonedRun(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{stats: commentary.Stats{Score: 40, Sliced: 4}}
	m := newTestModel(t, g, Options{Store: store, Embedded: true})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = tick(t, m, 0)
	m, _ = update(t, m, keyRune('b'))
	tick(t, m, 20*time.Millisecond)

	runs, _ := store.TopRuns(fakeGameID, 10)
	if len(runs) != 1 || runs[0].Score != 40 {
		t.Errorf("runs = %+v, expected the abandoned run", runs)
	}
}

func TestModelSkipsEmptyAbandonedRun(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{}
	m := newTestModel(t, g, Options{Store: store})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = tick(t, m, 0)
	update(t, m, keyRune('q'))

	runs, _ := store.TopRuns(fakeGameID, 10)
	if len(runs) != 0 {
		t.Errorf("runs = %d, expected 0", len(runs))
	}
}

func TestJudgeCmd(t *testing.T) {
	stats := commentary.Stats{Score: 1500, Sliced: 100}
	msg, ok := judgeCmd(commentary.Local{}, "run-1", stats)().(verdictMsg)
	if !ok {
		t.Fatal("judgeCmd did not produce a verdictMsg")
	}
	if msg.runID != "run-1" || msg.verdict != commentary.Judge(stats) {
		t.Errorf("verdictMsg = %+v, expected local verdict for run-1", msg)
	}

	msg = judgeCmd(nil, "run-2", stats)().(verdictMsg)
	if msg.verdict != commentary.Fallback {
		t.Errorf("verdict without service = %v, expected %v", msg.verdict, commentary.Fallback)
	}
}

func TestModelMuteToggle(t *testing.T) {
	store := openStore(t)
	m := newTestModel(t, &fakeGame{}, Options{Store: store})

	m, _ = update(t, m, keyRune('m'))
	if !m.Muted() {
		t.Error("Muted() = false after m, expected true")
	}
	if v, ok, _ := store.GetSetting(storage.SettingMuted); !ok || v != "true" {
		t.Errorf("muted setting = %q, %v, expected true", v, ok)
	}

	m, _ = update(t, m, keyRune('m'))
	if m.Muted() {
		t.Error("Muted() = true after second m, expected false")
	}
}

func TestModelResizeKeepsSession(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g, Options{})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if g.resized != [2]int{100, 29} {
		t.Errorf("resized = %v, expected [100 29]", g.resized)
	}
	if g.resets != 1 {
		t.Errorf("resets = %d, expected 1", g.resets)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, expected 100x29", m.screen.Width(), m.screen.Height())
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, &fakeGame{}, Options{})
	if view := m.View(); len(view) == 0 {
		t.Error("View() is empty")
	}
}
