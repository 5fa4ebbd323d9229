package slicer

import (
	"math"
	"math/rand"
	"testing"

	"pgregory.net/rapid"

	"github.com/vovakirdan/tui-slicer/internal/config"
	"github.com/vovakirdan/tui-slicer/internal/core"
)

func newTestSpawner(seed int64, mutate func(*config.SlicerConfig)) (*Spawner, config.SlicerConfig) {
	cfg := config.DefaultSlicerConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	scaler := config.NewScaler(cfg.Difficulty)
	return NewSpawner(cfg.Spawn, cfg.Physics.Gravity, scaler, rand.New(rand.NewSource(seed)), cfg.Gameplay.Bombs), cfg
}

func TestLaunchApexRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		from := core.V(rapid.Float64Range(0, 1000).Draw(t, "x0"), rapid.Float64Range(400, 700).Draw(t, "y0"))
		apex := core.V(rapid.Float64Range(0, 1000).Draw(t, "ax"), rapid.Float64Range(20, 350).Draw(t, "ay"))
		g := rapid.Float64Range(50, 3000).Draw(t, "g")

		vel := LaunchVelocity(from, apex, g)
		if vel.Y >= 0 {
			t.Fatalf("launch must go up, vy = %f", vel.Y)
		}

		got := ApexOf(from, vel, g)
		if math.Abs(got.Y-apex.Y) > 1e-6 || math.Abs(got.X-apex.X) > 1e-6 {
			t.Fatalf("apex = %v, expected %v", got, apex)
		}
	})
}

func TestSpawnOneApexInsidePlayArea(t *testing.T) {
	const w, h = 800.0, 480.0

	for seed := int64(1); seed <= 20; seed++ {
		sp, cfg := newTestSpawner(seed, nil)
		scaler := config.NewScaler(cfg.Difficulty)

		for _, d := range []float64{1, 1.7, 3} {
			p := sp.SpawnOne(w, h, d, false)
			apex := ApexOf(p.Pos, p.Vel, scaler.Gravity(cfg.Physics.Gravity, d))

			if apex.Y < cfg.Spawn.ApexMin*h-1e-6 || apex.Y > cfg.Spawn.ApexMax*h+1e-6 {
				t.Errorf("seed %d d=%.1f: apex y = %f outside [%f, %f]", seed, d, apex.Y, cfg.Spawn.ApexMin*h, cfg.Spawn.ApexMax*h)
			}
			if math.Abs(apex.X-w/2) > cfg.Spawn.TargetSpread*w+1e-6 {
				t.Errorf("seed %d d=%.1f: apex x = %f too far from center", seed, d, apex.X)
			}
			if p.Pos.Y <= h {
				t.Errorf("launch should start below the bottom edge, y = %f", p.Pos.Y)
			}
			if p.Radius <= 0 {
				t.Errorf("radius must be positive, got %f", p.Radius)
			}
		}
	}
}

func TestSpawnOneBombs(t *testing.T) {
	sp, _ := newTestSpawner(7, func(c *config.SlicerConfig) { c.Gameplay.Bombs = false })
	for range 2000 {
		if p := sp.SpawnOne(800, 480, 3, false); p.Kind.IsBomb() {
			t.Fatal("bombs disabled but a bomb was launched")
		}
	}

	if p := sp.SpawnOne(800, 480, 1, true); p.Kind != KindBomb {
		t.Errorf("forced bomb spawned %v", p.Kind)
	}

	sp, _ = newTestSpawner(7, nil)
	bombs := 0
	for range 2000 {
		if sp.SpawnOne(800, 480, 1, false).Kind.IsBomb() {
			bombs++
		}
	}
	if bombs == 0 || bombs > 400 {
		t.Errorf("bomb count at base chance = %d of 2000, expected roughly 8%%", bombs)
	}
}

func TestSpawnIDsIncrease(t *testing.T) {
	sp, _ := newTestSpawner(1, nil)
	a := sp.SpawnOne(800, 480, 1, false)
	sp.Reset()
	b := sp.SpawnOne(800, 480, 1, false)
	if b.ID <= a.ID {
		t.Errorf("IDs should keep increasing across resets: %d then %d", a.ID, b.ID)
	}
}

func TestSpawnerSingleInterval(t *testing.T) {
	sp, cfg := newTestSpawner(3, func(c *config.SlicerConfig) { c.Spawn.WaveChance = 0 })

	if got := sp.Update(cfg.Spawn.FirstDelay/2, 800, 480, 2); len(got) != 0 {
		t.Fatalf("launched %d before the first delay", len(got))
	}
	if got := sp.Update(cfg.Spawn.FirstDelay, 800, 480, 2); len(got) != 1 {
		t.Fatalf("launched %d after the first delay, expected 1", len(got))
	}
	if want := cfg.Spawn.SingleInterval / 2; math.Abs(sp.Interval()-want) > 1e-9 {
		t.Errorf("Interval() = %f, expected single interval scaled by difficulty %f", sp.Interval(), want)
	}
}

func TestSpawnerWave(t *testing.T) {
	sp, cfg := newTestSpawner(5, func(c *config.SlicerConfig) {
		c.Spawn.WaveChance = 1
		c.Spawn.WaveInterval = 10
	})

	first := sp.Update(cfg.Spawn.FirstDelay+0.01, 800, 480, 1)
	if len(first) != 1 {
		t.Fatalf("first wave launch count = %d, expected 1", len(first))
	}

	size := 1 + sp.Pending()
	if size < cfg.Spawn.WaveMin || size > cfg.Spawn.WaveMax {
		t.Fatalf("wave size = %d, expected [%d, %d]", size, cfg.Spawn.WaveMin, cfg.Spawn.WaveMax)
	}

	for i := 1; i < size; i++ {
		got := sp.Update(0.16, 800, 480, 1)
		if len(got) != 1 {
			t.Fatalf("wave step %d launched %d, expected 1", i, len(got))
		}
	}
	if sp.Pending() != 0 {
		t.Errorf("Pending() = %d after the wave drained", sp.Pending())
	}
	if math.Abs(sp.Interval()-cfg.Spawn.WaveInterval) > 1e-9 {
		t.Errorf("Interval() = %f, expected wave interval", sp.Interval())
	}
}

func TestSpawnerDeterminism(t *testing.T) {
	a, _ := newTestSpawner(99, nil)
	b, _ := newTestSpawner(99, nil)

	for i := range 300 {
		pa := a.Update(1.0/60, 800, 480, 1.5)
		pb := b.Update(1.0/60, 800, 480, 1.5)
		if len(pa) != len(pb) {
			t.Fatalf("tick %d: launch counts differ", i)
		}
		for j := range pa {
			if pa[j] != pb[j] {
				t.Fatalf("tick %d: projectiles differ: %+v vs %+v", i, pa[j], pb[j])
			}
		}
	}
}

func TestFruitTableCoversAllFruit(t *testing.T) {
	seen := map[Kind]bool{}
	for i := range 100 {
		seen[fruitFor(float64(i)/100)] = true
	}
	for k := KindApple; k < KindBomb; k++ {
		if !seen[k] {
			t.Errorf("fruit %v never selected", k)
		}
	}
	if seen[KindBomb] {
		t.Error("fruit table must not select bombs")
	}
}
