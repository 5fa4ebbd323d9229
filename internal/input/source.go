// Package input provides per-frame sources of tracked points in normalized
// screen space: the terminal pointer and an external hand tracker.
package input

import "github.com/vovakirdan/tui-slicer/internal/core"

// Source yields the points tracked since the last poll, primary first.
// An empty result means nothing is tracked right now.
type Source interface {
	Poll() []core.Point
	Close() error
}
