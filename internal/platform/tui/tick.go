// Package tui provides the Bubble Tea host for the slicer: the frame loop,
// input mapping, audio and commentary wiring, and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameClock measures real time between ticks. Tea ticks drift with load, so
// the simulation is fed the measured delta instead of the nominal interval.
type frameClock struct {
	last time.Time
}

// Delta returns seconds since the previous call, or fallback on the first
// call and when the clock runs backwards.
func (c *frameClock) Delta(now time.Time, fallback float64) float64 {
	prev := c.last
	c.last = now
	if prev.IsZero() || !now.After(prev) {
		return fallback
	}
	return now.Sub(prev).Seconds()
}
