// Package registry maps mode IDs to game factories. Modes register from
// init, so front-ends find them with a blank import.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-slicer/internal/core"
)

// ErrUnknownMode is returned by Create for an unregistered ID.
var ErrUnknownMode = errors.New("unknown game mode")

// Game is one playable mode. Implementations hold simulation state only;
// the host owns timing, input devices and drawing to the terminal.
type Game interface {
	// ID is the stable mode key used on the command line and in stored runs.
	ID() string
	Title() string

	// Reset starts a fresh session at the title screen.
	Reset(cfg core.RuntimeConfig)

	// Step advances one frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws into dst, which the host clears first.
	Render(dst *core.Screen)

	State() core.GameState
}

// Resizable games keep their session when the terminal is resized.
// Other games are Reset.
type Resizable interface {
	Resize(screenW, screenH int)
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory returns a new, unreset game.
type Factory func() Game

type mode struct {
	title   string
	factory Factory
}

var (
	mu    sync.RWMutex
	modes = make(map[string]mode)
)

// Register adds a mode. The title is read once from a throwaway instance.
// Registering an ID twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := modes[id]; dup {
		panic(fmt.Sprintf("registry: mode %q registered twice", id))
	}
	modes[id] = mode{title: f().Title(), factory: f}
}

// List returns every mode ordered by ID.
func List() []GameInfo {
	mu.RLock()
	infos := make([]GameInfo, 0, len(modes))
	for id, m := range modes {
		infos = append(infos, GameInfo{ID: id, Title: m.title})
	}
	mu.RUnlock()

	slices.SortFunc(infos, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return infos
}

// Create builds a new game for id.
func Create(id string) (Game, error) {
	mu.RLock()
	m, ok := modes[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: %w %q", ErrUnknownMode, id)
	}
	return m.factory(), nil
}

func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := modes[id]
	return ok
}
