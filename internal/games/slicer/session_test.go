package slicer

import (
	"math"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/vovakirdan/tui-slicer/internal/audio/mocks"
	"github.com/vovakirdan/tui-slicer/internal/config"
	"github.com/vovakirdan/tui-slicer/internal/core"
)

const (
	testW = 800.0
	testH = 480.0
	frame = 1.0 / 60
)

// testSessionConfig disables automatic launches so tests place projectiles by hand.
func testSessionConfig() config.SlicerConfig {
	cfg := config.DefaultSlicerConfig()
	cfg.Spawn.FirstDelay = 1000
	return cfg
}

func norm(p core.Vec2) []core.Point {
	return []core.Point{{X: p.X / testW, Y: p.Y / testH}}
}

// startedSession returns a session that is playing and past the awaiting gate.
func startedSession(t *testing.T, cfg config.SlicerConfig, sink *mocks.MockSink) *Session {
	t.Helper()
	var s *Session
	if sink != nil {
		s = NewSession(cfg, testW, testH, 1, sink)
	} else {
		s = NewSession(cfg, testW, testH, 1, nil)
	}
	s.Start()
	s.Tick(frame, norm(core.V(20, 20)))
	if s.Awaiting() {
		t.Fatal("session still awaiting input after a tick with a point")
	}
	return s
}

func (s *Session) place(kind Kind, at core.Vec2) {
	s.world.Projectiles = append(s.world.Projectiles, Projectile{
		ID:     uint64(len(s.world.Projectiles) + 1000), //#nosec G115 -- test IDs
		Kind:   kind,
		Pos:    at,
		Radius: kind.Info().Radius,
	})
}

func TestSessionBombThenSlice(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockSink(ctrl)
	gomock.InOrder(
		sink.EXPECT().Start(),
		sink.EXPECT().BombHit(),
		sink.EXPECT().Slice(1),
	)

	s := startedSession(t, testSessionConfig(), sink)

	bomb := core.V(400, 240)
	s.place(KindBomb, bomb)
	snap := s.Tick(frame, norm(bomb))

	if snap.Lives != 2 || snap.BombsHit != 1 || snap.Score != 0 || snap.Combo != 0 {
		t.Errorf("after bomb: lives %d, bombs %d, score %d, combo %d; expected 2, 1, 0, 0",
			snap.Lives, snap.BombsHit, snap.Score, snap.Combo)
	}
	if len(snap.Fragments) != 0 {
		t.Errorf("bomb produced %d fragments, expected 0", len(snap.Fragments))
	}

	fruit := core.V(600, 100)
	s.place(KindApple, fruit)
	snap = s.Tick(frame, norm(fruit))

	if snap.Combo != 1 || snap.Score != 10 || snap.Sliced != 1 || snap.Lives != 2 {
		t.Errorf("after slice: combo %d, score %d, sliced %d, lives %d; expected 1, 10, 1, 2",
			snap.Combo, snap.Score, snap.Sliced, snap.Lives)
	}
	if len(snap.Fragments) != 2 {
		t.Errorf("slice produced %d fragments, expected 2", len(snap.Fragments))
	}
	if len(snap.Projectiles) != 0 {
		t.Errorf("hit projectiles must leave the live set, %d remain", len(snap.Projectiles))
	}
}

func TestSessionComboAcrossTicks(t *testing.T) {
	s := startedSession(t, testSessionConfig(), nil)

	a, b := core.V(200, 200), core.V(500, 200)
	s.place(KindApple, a)
	s.Tick(frame, norm(a))
	s.place(KindOrange, b)
	snap := s.Tick(frame, norm(b))

	if snap.Combo != 2 || snap.Score != 30 {
		t.Fatalf("combo %d, score %d; expected 2 and 30", snap.Combo, snap.Score)
	}
	last := snap.Labels[len(snap.Labels)-1]
	if last.Text != "COMBO x2 +20" || last.Scale <= 1 {
		t.Errorf("combo label = %q scale %f", last.Text, last.Scale)
	}

	// Let the window lapse
	for range 30 {
		snap = s.Tick(frame, nil)
	}
	if snap.Combo != 0 {
		t.Errorf("combo = %d after 0.5s without slices, expected 0", snap.Combo)
	}
}

func TestSessionAwaitingInput(t *testing.T) {
	cfg := config.DefaultSlicerConfig()
	cfg.Spawn.FirstDelay = 0.05

	s := NewSession(cfg, testW, testH, 1, nil)
	s.Start()

	for range 100 {
		snap := s.Tick(0.05, nil)
		if !snap.Awaiting || len(snap.Projectiles) != 0 || snap.Elapsed != 0 {
			t.Fatalf("simulation ran while awaiting input: %+v", snap)
		}
		if snap.HasCursor {
			t.Fatal("cursor shown without input")
		}
	}

	snap := s.Tick(0.06, norm(core.V(10, 10)))
	if snap.Awaiting {
		t.Fatal("first point should clear the awaiting state")
	}
	if snap.Elapsed != 0.06 || len(snap.Projectiles) != 1 {
		t.Errorf("simulation should run on the same tick: elapsed %f, %d projectiles", snap.Elapsed, len(snap.Projectiles))
	}
	if !snap.HasCursor {
		t.Error("cursor should be shown")
	}
}

func TestSessionGameOverOnce(t *testing.T) {
	s := startedSession(t, testSessionConfig(), nil)

	var finals int
	for i, at := range []core.Vec2{core.V(200, 200), core.V(400, 200), core.V(600, 200)} {
		s.place(KindBomb, at)
		snap := s.Tick(frame, norm(at))
		if snap.Final != nil {
			finals++
			if i != 2 {
				t.Errorf("game ended on bomb %d, expected the third", i+1)
			}
			if *snap.Final != (Result{Score: 0, Sliced: 0, BombsHit: 3}) {
				t.Errorf("Final = %+v", *snap.Final)
			}
		}
	}

	for range 10 {
		snap := s.Tick(frame, norm(core.V(600, 200)))
		if snap.Final != nil {
			finals++
		}
		if snap.State != StateGameOver || snap.Lives != 0 {
			t.Fatalf("state %v, lives %d after game over", snap.State, snap.Lives)
		}
	}

	if finals != 1 {
		t.Errorf("Final reported %d times, expected exactly once", finals)
	}
}

func TestSessionStopsOnFatalBomb(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockSink(ctrl)
	sink.EXPECT().Start()
	sink.EXPECT().BombHit().Times(1)

	cfg := testSessionConfig()
	cfg.Gameplay.Lives = 1
	s := startedSession(t, cfg, sink)

	at := core.V(400, 240)
	s.place(KindBomb, at)
	s.place(KindBomb, at.Add(core.V(5, 0)))
	s.place(KindApple, at.Add(core.V(-5, 0)))
	snap := s.Tick(frame, norm(at))

	if snap.State != StateGameOver || snap.Final == nil {
		t.Fatalf("expected game over on this tick, state %v", snap.State)
	}
	if snap.BombsHit != 1 || snap.Sliced != 0 || snap.Lives != 0 {
		t.Errorf("outcomes after the fatal bomb were applied: bombs %d, sliced %d, lives %d",
			snap.BombsHit, snap.Sliced, snap.Lives)
	}
}

func TestSessionMissCostsNothing(t *testing.T) {
	s := startedSession(t, testSessionConfig(), nil)

	s.world.Projectiles = append(s.world.Projectiles, Projectile{
		ID: 1, Kind: KindWatermelon, Pos: core.V(400, testH+100), Vel: core.V(0, 300), Radius: 40,
	})
	snap := s.Tick(frame, nil)

	if len(snap.Projectiles) != 0 {
		t.Fatal("fallen fruit should be removed")
	}
	if snap.Lives != 3 || snap.Score != 0 || snap.Missed != 1 {
		t.Errorf("lives %d, score %d, missed %d; expected 3, 0, 1", snap.Lives, snap.Score, snap.Missed)
	}
}

func TestSessionGameOverFreezesEntities(t *testing.T) {
	cfg := testSessionConfig()
	cfg.Gameplay.Lives = 1
	s := startedSession(t, cfg, nil)

	s.world.Projectiles = append(s.world.Projectiles, Projectile{
		ID: 7, Kind: KindApple, Pos: core.V(100, 100), Vel: core.V(50, 50), Radius: 26,
	})
	at := core.V(600, 300)
	s.place(KindBomb, at)
	ended := s.Tick(frame, norm(at))
	if ended.State != StateGameOver {
		t.Fatalf("state = %v, expected game over", ended.State)
	}

	later := s.Tick(frame, nil)
	if later.Projectiles[0].Pos != ended.Projectiles[0].Pos {
		t.Error("projectiles moved after game over")
	}
	if len(later.Particles) != len(ended.Particles) {
		t.Error("particles changed after game over")
	}
	if later.Flash >= ended.Flash || later.Shake >= ended.Shake {
		t.Errorf("flash/shake should keep decaying: %f -> %f, %f -> %f",
			ended.Flash, later.Flash, ended.Shake, later.Shake)
	}
}

func TestSessionThrowCue(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockSink(ctrl)
	sink.EXPECT().Start()
	sink.EXPECT().Throw().Times(1)

	cfg := config.DefaultSlicerConfig()
	cfg.Spawn.FirstDelay = 0.01
	cfg.Spawn.WaveChance = 0

	s := NewSession(cfg, testW, testH, 1, sink)
	s.Start()
	snap := s.Tick(0.02, norm(core.V(5, 5)))

	if len(snap.Projectiles) != 1 {
		t.Errorf("projectiles = %d, expected 1 launch", len(snap.Projectiles))
	}
}

func TestSessionStartAndMenu(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockSink(ctrl)
	sink.EXPECT().Start().Times(2)
	sink.EXPECT().Slice(gomock.Any()).AnyTimes()

	s := NewSession(testSessionConfig(), testW, testH, 1, sink)
	if s.State() != StateMenu {
		t.Fatalf("initial state = %v, expected menu", s.State())
	}

	s.Start()
	s.Tick(frame, norm(core.V(20, 20)))
	s.place(KindApple, core.V(300, 300))
	s.Tick(frame, norm(core.V(300, 300)))
	if s.Result().Score == 0 {
		t.Fatal("setup slice did not score")
	}

	s.ReturnToMenu()
	snap := s.Tick(frame, norm(core.V(10, 10)))
	if snap.State != StateMenu || snap.Score != 0 || len(snap.Fragments) != 0 || snap.Awaiting {
		t.Errorf("menu should hold an empty session: %+v", snap)
	}
	if !snap.HasCursor {
		t.Error("cursor should still track in the menu")
	}

	s.Start()
	if snap := s.Snapshot(); snap.State != StatePlaying || !snap.Awaiting || snap.Lives != 3 {
		t.Errorf("restart state = %v awaiting %v lives %d", snap.State, snap.Awaiting, snap.Lives)
	}
}

func TestSessionClampsDT(t *testing.T) {
	s := startedSession(t, testSessionConfig(), nil)
	before := s.Snapshot().Elapsed

	snap := s.Tick(5, nil)
	if got := snap.Elapsed - before; math.Abs(got-0.1) > 1e-9 {
		t.Errorf("a 5s stall advanced the clock by %f, expected 0.1", got)
	}

	snap = s.Tick(math.NaN(), nil)
	if math.IsNaN(snap.Elapsed) {
		t.Error("NaN dt leaked into the session clock")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s := startedSession(t, testSessionConfig(), nil)
	s.place(KindApple, core.V(300, 100))

	snap := s.Tick(frame, nil)
	snap.Projectiles[0].Pos = core.V(-1, -1)
	snap.Trail[0].Life = 0

	again := s.Snapshot()
	if again.Projectiles[0].Pos == core.V(-1, -1) || again.Trail[0].Life == 0 {
		t.Error("mutating a snapshot changed the session")
	}
}

// sweep returns a pointer path crossing the lower half of the canvas.
func sweep(i int) []core.Point {
	if i%90 > 70 {
		return nil // hand briefly lost
	}
	t := float64(i) / 60
	return []core.Point{{X: 0.5 + 0.45*math.Sin(t*2.3), Y: 0.55 + 0.3*math.Cos(t*1.7)}}
}

func TestSessionDeterminism(t *testing.T) {
	run := func(seed int64) Snapshot {
		s := NewSession(config.DefaultSlicerConfig(), testW, testH, seed, nil)
		s.Start()
		var snap Snapshot
		for i := range 1800 {
			dt := frame
			if i%7 == 0 {
				dt = 1.0 / 30 // uneven frame pacing
			}
			snap = s.Tick(dt, sweep(i))
		}
		return snap
	}

	a, b := run(12345), run(12345)
	if a.Hash() != b.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", a.Hash(), b.Hash())
	}
	if a.Score != b.Score || a.Sliced != b.Sliced || a.BombsHit != b.BombsHit {
		t.Errorf("Determinism failed: tallies differ. Run1=%+v, Run2=%+v", a.Final, b.Final)
	}

	if c := run(54321); c.Hash() == a.Hash() {
		t.Error("different seeds produced identical sessions")
	}
}

func TestSessionPopulationsStayBounded(t *testing.T) {
	s := NewSession(config.DefaultSlicerConfig(), testW, testH, 3, nil)
	s.Start()

	for i := range 6000 {
		snap := s.Tick(frame, sweep(i))
		if snap.State == StateGameOver {
			s.Start()
		}
		if n := len(snap.Particles) + len(snap.Fragments) + len(snap.Labels) + len(snap.Projectiles); n > 2000 {
			t.Fatalf("tick %d: %d live entities", i, n)
		}
		if len(snap.Trail) > 20 {
			t.Fatalf("tick %d: trail grew to %d samples", i, len(snap.Trail))
		}
	}
}
