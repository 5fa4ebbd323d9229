package slicer

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-slicer/internal/config"
	"github.com/vovakirdan/tui-slicer/internal/core"
)

// pendingLaunch is a queued wave member.
type pendingLaunch struct {
	delay      float64 // Seconds until launch
	difficulty float64 // Factor when the wave was scheduled
}

// Spawner decides what to launch and when.
type Spawner struct {
	cfg     config.SpawnConfig
	gravity float64 // Base gravity before difficulty scaling
	scaler  *config.Scaler
	rng     *rand.Rand
	bombs   bool

	elapsed  float64
	interval float64
	pending  []pendingLaunch
	nextID   uint64
}

// NewSpawner creates a spawner drawing from rng. With bombs disabled only
// fruit is launched unless a bomb is forced.
func NewSpawner(cfg config.SpawnConfig, gravity float64, scaler *config.Scaler, rng *rand.Rand, bombs bool) *Spawner {
	sp := &Spawner{
		cfg:     cfg,
		gravity: gravity,
		scaler:  scaler,
		rng:     rng,
		bombs:   bombs,
		pending: make([]pendingLaunch, 0, 8),
	}
	sp.Reset()
	return sp
}

// Reset clears the schedule. IDs keep increasing across resets.
func (sp *Spawner) Reset() {
	sp.elapsed = 0
	sp.interval = sp.cfg.FirstDelay
	sp.pending = sp.pending[:0]
}

// Interval returns the current time between launches.
func (sp *Spawner) Interval() float64 {
	return sp.interval
}

// Pending returns the number of queued wave launches.
func (sp *Spawner) Pending() int {
	return len(sp.pending)
}

// Update advances the schedule by dt and returns the projectiles launched
// this tick, in launch order.
func (sp *Spawner) Update(dt, width, height, d float64) []Projectile {
	for i := range sp.pending {
		sp.pending[i].delay -= dt
	}

	var launched []Projectile

	sp.elapsed += dt
	if sp.elapsed > sp.interval {
		if sp.rng.Float64() < sp.cfg.WaveChance {
			sp.SpawnWave(d)
			sp.interval = sp.scaler.SpawnInterval(sp.cfg.WaveInterval, d)
		} else {
			launched = append(launched, sp.SpawnOne(width, height, d, false))
			sp.interval = sp.scaler.SpawnInterval(sp.cfg.SingleInterval, d)
		}
		sp.elapsed = 0
	}

	kept := sp.pending[:0]
	for _, p := range sp.pending {
		if p.delay <= 0 {
			launched = append(launched, sp.SpawnOne(width, height, p.difficulty, false))
			continue
		}
		kept = append(kept, p)
	}
	sp.pending = kept

	return launched
}

// SpawnWave queues a burst of WaveMin..WaveMax launches spaced WaveSpacing
// apart, the first one due immediately. Returns the wave size.
func (sp *Spawner) SpawnWave(d float64) int {
	n := sp.cfg.WaveMin
	if sp.cfg.WaveMax > sp.cfg.WaveMin {
		n += sp.rng.Intn(sp.cfg.WaveMax - sp.cfg.WaveMin + 1)
	}
	for i := range n {
		sp.pending = append(sp.pending, pendingLaunch{
			delay:      float64(i) * sp.cfg.WaveSpacing,
			difficulty: d,
		})
	}
	return n
}

// SpawnOne creates a projectile launched from below the bottom edge toward a
// randomized apex near the horizontal center.
func (sp *Spawner) SpawnOne(width, height, d float64, forceBomb bool) Projectile {
	kind := fruitFor(sp.rng.Float64())
	if forceBomb || (sp.bombs && sp.rng.Float64() < sp.scaler.BombChance(sp.cfg, d)) {
		kind = KindBomb
	}
	info := kind.Info()

	margin := sp.cfg.LaunchMargin * width
	from := core.V(margin+sp.rng.Float64()*(width-2*margin), height+info.Radius)
	apex := core.V(
		width/2+(sp.rng.Float64()*2-1)*sp.cfg.TargetSpread*width,
		height*(sp.cfg.ApexMin+sp.rng.Float64()*(sp.cfg.ApexMax-sp.cfg.ApexMin)),
	)

	g := sp.scaler.Gravity(sp.gravity, d)
	spin := (sp.rng.Float64()*2 - 1) * sp.cfg.MaxSpin * sp.scaler.SpinScale(d)

	sp.nextID++
	return Projectile{
		ID:     sp.nextID,
		Pos:    from,
		Vel:    LaunchVelocity(from, apex, g),
		Spin:   spin,
		Kind:   kind,
		Radius: info.Radius,
	}
}

// LaunchVelocity solves the initial velocity whose arc peaks exactly at apex
// under gravity g: vy0 = -sqrt(2*g*dy), vx = dx / (time to apex).
func LaunchVelocity(from, apex core.Vec2, g float64) core.Vec2 {
	dy := from.Y - apex.Y
	if dy <= 0 || g <= 0 {
		return core.Vec2{}
	}
	vy := -math.Sqrt(2 * g * dy)
	t := -vy / g
	return core.V((apex.X-from.X)/t, vy)
}

// ApexOf returns the highest point of the arc starting at pos with velocity
// vel under gravity g.
func ApexOf(pos, vel core.Vec2, g float64) core.Vec2 {
	if vel.Y >= 0 || g <= 0 {
		return pos
	}
	t := -vel.Y / g
	return core.V(pos.X+vel.X*t, pos.Y-vel.Y*vel.Y/(2*g))
}
