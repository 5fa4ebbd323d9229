package slicer

// Result is the final tally of a finished session.
type Result struct {
	Score    int
	Sliced   int
	BombsHit int
}

// Scoreboard owns score, lives and hit counters of one session.
type Scoreboard struct {
	Score    int
	Lives    int
	MaxLives int
	Sliced   int
	BombsHit int
	Missed   int

	ended bool
}

// NewScoreboard creates a scoreboard with full lives.
func NewScoreboard(lives int) *Scoreboard {
	sb := &Scoreboard{MaxLives: lives}
	sb.Reset()
	return sb
}

// Reset starts a fresh tally.
func (sb *Scoreboard) Reset() {
	sb.Score = 0
	sb.Lives = sb.MaxLives
	sb.Sliced = 0
	sb.BombsHit = 0
	sb.Missed = 0
	sb.ended = false
}

// Slice records a cut fruit worth points.
func (sb *Scoreboard) Slice(points int) {
	if sb.ended {
		return
	}
	sb.Sliced++
	if points > 0 {
		sb.Score += points
	}
}

// Bomb records a bomb hit. It returns true only on the call that takes the
// last life.
func (sb *Scoreboard) Bomb() bool {
	if sb.ended {
		return false
	}
	sb.BombsHit++
	if sb.Lives > 0 {
		sb.Lives--
	}
	if sb.Lives <= 0 {
		sb.ended = true
		return true
	}
	return false
}

// Miss records a fruit that fell away uncut. It costs nothing.
func (sb *Scoreboard) Miss(n int) {
	sb.Missed += n
}

// Ended reports whether the lives ran out.
func (sb *Scoreboard) Ended() bool {
	return sb.ended
}

// Result returns the current tally.
func (sb *Scoreboard) Result() Result {
	return Result{Score: sb.Score, Sliced: sb.Sliced, BombsHit: sb.BombsHit}
}
