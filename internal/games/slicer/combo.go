package slicer

import "github.com/vovakirdan/tui-slicer/internal/config"

// Combo counts consecutive slices landing within the combo window.
type Combo struct {
	cfg       config.ComboConfig
	level     int
	lastSlice float64
}

// NewCombo creates a tracker at level 0.
func NewCombo(cfg config.ComboConfig) *Combo {
	return &Combo{cfg: cfg}
}

// Level returns the current combo level.
func (c *Combo) Level() int {
	return c.level
}

// Expire drops the combo if the last slice is older than the window.
// Called once at the start of every tick.
func (c *Combo) Expire(now float64) {
	if c.level > 0 && now-c.lastSlice > c.cfg.Window {
		c.level = 0
	}
}

// Slice registers a cut at time now and returns the points it is worth and
// whether it counts as a combo hit.
func (c *Combo) Slice(now float64) (points int, combo bool) {
	c.level++
	c.lastSlice = now

	points = c.cfg.BasePoints
	if c.level > 1 {
		points += c.level * c.cfg.BonusPerLevel
		combo = true
	}
	return points, combo
}

// Bomb breaks the combo.
func (c *Combo) Bomb() {
	c.level = 0
}

// LabelScale returns the emphasis of a label for the given level.
func (c *Combo) LabelScale(level int) float64 {
	if level <= 1 {
		return 1
	}
	return 1 + c.cfg.LabelScaleStep*float64(level-1)
}

// Reset returns the tracker to level 0.
func (c *Combo) Reset() {
	c.level = 0
	c.lastSlice = 0
}
