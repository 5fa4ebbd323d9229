package input

import (
	"sync"
	"time"

	"github.com/vovakirdan/tui-slicer/internal/core"
)

// DefaultHoldTime is how long a motionless pointer still counts as tracked.
const DefaultHoldTime = 250 * time.Millisecond

// PointerSource turns terminal mouse motion into tracked points. Terminals
// only report motion, so a pointer that stops moving is dropped after the
// hold time, the same way a tracker loses a hand.
type PointerSource struct {
	mu   sync.Mutex
	hold time.Duration
	now  func() time.Time

	last  core.Point
	at    time.Time
	moved bool
}

// NewPointerSource creates a pointer source. A non-positive hold uses DefaultHoldTime.
func NewPointerSource(hold time.Duration) *PointerSource {
	if hold <= 0 {
		hold = DefaultHoldTime
	}
	return &PointerSource{hold: hold, now: time.Now}
}

// Move records a normalized pointer position.
func (p *PointerSource) Move(x, y float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = core.Point{X: x, Y: y}
	p.at = p.now()
	p.moved = true
}

// MoveCell records a pointer over the given terminal cell of a width x height screen.
func (p *PointerSource) MoveCell(col, row, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.Move((float64(col)+0.5)/float64(width), (float64(row)+0.5)/float64(height))
}

// Poll returns the latest position while it is fresh.
func (p *PointerSource) Poll() []core.Point {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.moved || p.now().Sub(p.at) > p.hold {
		return nil
	}
	return []core.Point{p.last}
}

// Close is a no-op; the terminal owns the mouse.
func (p *PointerSource) Close() error {
	return nil
}
