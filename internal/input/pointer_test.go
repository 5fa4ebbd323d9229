package input

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-slicer/internal/core"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestPointer(hold time.Duration) (*PointerSource, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	p := NewPointerSource(hold)
	p.now = clock.now
	return p, clock
}

func TestPointerEmptyBeforeMove(t *testing.T) {
	p, _ := newTestPointer(time.Second)
	if got := p.Poll(); got != nil {
		t.Errorf("Poll() = %v, expected nil", got)
	}
}

func TestPointerHoldTime(t *testing.T) {
	p, clock := newTestPointer(100 * time.Millisecond)
	p.Move(0.25, 0.75)

	got := p.Poll()
	if len(got) != 1 || got[0] != (core.Point{X: 0.25, Y: 0.75}) {
		t.Fatalf("Poll() = %v, expected [{0.25 0.75}]", got)
	}

	clock.advance(100 * time.Millisecond)
	if got := p.Poll(); len(got) != 1 {
		t.Errorf("Poll() at hold limit = %v, expected one point", got)
	}

	clock.advance(time.Millisecond)
	if got := p.Poll(); got != nil {
		t.Errorf("Poll() after hold = %v, expected nil", got)
	}

	p.Move(0.5, 0.5)
	if got := p.Poll(); len(got) != 1 || got[0].X != 0.5 {
		t.Errorf("Poll() after new move = %v, expected [{0.5 0.5}]", got)
	}
}

func TestPointerMoveCell(t *testing.T) {
	p, _ := newTestPointer(0)
	p.MoveCell(39, 11, 80, 24)

	got := p.Poll()
	if len(got) != 1 {
		t.Fatalf("Poll() = %v, expected one point", got)
	}
	if got[0].X != 39.5/80 || got[0].Y != 11.5/24 {
		t.Errorf("MoveCell point = %v, expected cell centre", got[0])
	}

	p2, _ := newTestPointer(0)
	p2.MoveCell(3, 3, 0, 24)
	if got := p2.Poll(); got != nil {
		t.Errorf("MoveCell on empty screen produced %v, expected nil", got)
	}
}

func TestPointerDefaultHold(t *testing.T) {
	p := NewPointerSource(-1)
	if p.hold != DefaultHoldTime {
		t.Errorf("hold = %v, expected %v", p.hold, DefaultHoldTime)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close() = %v, expected nil", err)
	}
}
