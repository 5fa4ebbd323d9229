package slicer

// OutcomeKind classifies a trail hit.
type OutcomeKind uint8

const (
	OutcomeSlice OutcomeKind = iota // Fruit cut
	OutcomeBomb                     // Bomb touched
)

// Outcome is a single projectile hit by the trail.
type Outcome struct {
	Kind       OutcomeKind
	Projectile Projectile
	CutAngle   float64 // Gesture direction at the time of the hit
}

// Detect tests each live projectile, oldest first, against the given trail
// samples. The first sample inside a projectile's hitbox resolves it; hit
// projectiles leave w.Projectiles before Detect returns.
func Detect(w *World, samples []TrailSample, cutAngle float64) []Outcome {
	if len(samples) == 0 || len(w.Projectiles) == 0 {
		return nil
	}

	var outcomes []Outcome
	kept := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		if !hitBy(p, samples) {
			kept = append(kept, p)
			continue
		}
		p.Resolved = true
		o := Outcome{Kind: OutcomeSlice, Projectile: p, CutAngle: cutAngle}
		if p.Kind.IsBomb() {
			o.Kind = OutcomeBomb
		}
		outcomes = append(outcomes, o)
	}
	w.Projectiles = kept

	return outcomes
}

func hitBy(p Projectile, samples []TrailSample) bool {
	box := p.Hitbox()
	for _, s := range samples {
		if box.Contains(s.Pos) {
			return true
		}
	}
	return false
}
