package core

import "strings"

// Action is a key-level intent. The host maps keys to actions so games
// never see the terminal.
type Action uint8

const (
	ActionNone    Action = iota
	ActionStart          // begin a session from the title screen
	ActionRestart        // new session after game over
	ActionBack           // return to the title screen
	ActionQuit           // leave the program
	ActionMute           // toggle audio cues
	numActions
)

var actionNames = [numActions]string{"None", "Start", "Restart", "Back", "Quit", "Mute"}

func (a Action) String() string {
	if a < numActions {
		return actionNames[a]
	}
	return "Unknown"
}

// ActionSet is a set of actions, one bit each.
type ActionSet uint16

func (s ActionSet) Has(a Action) bool { return a < numActions && s&(1<<a) != 0 }

func (s *ActionSet) Add(a Action) {
	if a < numActions {
		*s |= 1 << a
	}
}

func (s ActionSet) String() string {
	var names []string
	for a := range numActions {
		if s.Has(a) {
			names = append(names, a.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Point is a tracked position in normalized screen space: (0,0) is the
// top-left corner and (1,1) the bottom-right.
type Point struct {
	X, Y float64
}

// InputFrame is what the host observed between two steps.
type InputFrame struct {
	Actions ActionSet

	// Points are the positions the input source reported, primary first.
	// Empty when it sees nothing.
	Points []Point

	// DT is the wall-clock seconds since the previous step.
	DT float64
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

func (f *InputFrame) Set(a Action) { f.Actions.Add(a) }

func (f InputFrame) Has(a Action) bool { return f.Actions.Has(a) }

// Primary returns the first tracked point.
func (f InputFrame) Primary() (Point, bool) {
	if len(f.Points) == 0 {
		return Point{}, false
	}
	return f.Points[0], true
}

// Clear empties the frame, keeping the point buffer.
func (f *InputFrame) Clear() {
	f.Actions = 0
	f.Points = f.Points[:0]
	f.DT = 0
}
