package slicer

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-slicer/internal/core"
)

// Overlay carries host-provided text drawn on top of a snapshot.
type Overlay struct {
	Title   string
	Zen     bool
	Rank    string // Commentary rank, empty while pending
	Message string
	Notice  string
}

// Visual characters for rendering
const (
	TrailHeadChar = '•'
	TrailTailChar = '·'
	CursorChar    = '✚'
	BodyChar      = '█'
	BombBodyChar  = '▓'
	FragmentChar  = '▒'
	FadedChar     = '░'
	HighlightChar = '•'
	HeartChar     = '♥'
	EmptyHeart    = '♡'
)

// view maps canvas coordinates to screen cells, including camera shake.
type view struct {
	sx, sy float64 // Cells per canvas unit
	dx, dy float64 // Shake offset in canvas units
}

func newView(dst *core.Screen, snap Snapshot) view {
	v := view{sx: 1, sy: 1}
	if snap.Width > 0 {
		v.sx = float64(dst.Width()) / snap.Width
	}
	if snap.Height > 0 {
		v.sy = float64(dst.Height()) / snap.Height
	}
	if snap.Shake > 0 {
		v.dx = math.Sin(snap.Elapsed*53) * snap.Shake
		v.dy = math.Cos(snap.Elapsed*47) * snap.Shake * 0.5
	}
	return v
}

func (v view) cell(p core.Vec2) (int, int) {
	return int(math.Floor((p.X + v.dx) * v.sx)), int(math.Floor((p.Y + v.dy) * v.sy))
}

// center returns the canvas point at the middle of a cell.
func (v view) center(x, y int) core.Vec2 {
	return core.V((float64(x)+0.5)/v.sx-v.dx, (float64(y)+0.5)/v.sy-v.dy)
}

// Draw renders a snapshot onto the screen.
func Draw(dst *core.Screen, snap Snapshot, ov Overlay) {
	dst.Clear()
	v := newView(dst, snap)

	drawFlash(dst, snap.Flash)

	for _, f := range snap.Fragments {
		drawFragment(dst, v, f)
	}
	for _, p := range snap.Projectiles {
		drawProjectile(dst, v, p)
	}
	for _, p := range snap.Particles {
		x, y := v.cell(p.Pos)
		ch := '.'
		if p.Size > 2 && p.Life > 0.5 {
			ch = '*'
		}
		dst.SetColored(x, y, ch, p.Color)
	}
	drawTrail(dst, v, snap.Trail)
	for _, l := range snap.Labels {
		drawLabel(dst, v, l)
	}
	if snap.HasCursor {
		x, y := v.cell(snap.Cursor)
		dst.SetColored(x, y, CursorChar, core.ColorBrightGreen)
	}

	drawHUD(dst, snap, ov)

	switch {
	case snap.State == StateMenu:
		drawMessage(dst, core.ColorBrightGreen, strings.ToUpper(ov.Title),
			"Swipe through fruit with the mouse or your hand",
			"Avoid the bombs",
			"",
			"Enter: start   M: mute   Q: quit")
	case snap.Awaiting:
		drawMessage(dst, core.ColorBrightCyan, "RAISE YOUR HAND",
			"Move the pointer to begin")
	case snap.State == StateGameOver:
		verdict := "Judging your run..."
		if ov.Rank != "" {
			verdict = fmt.Sprintf("Rank %s: %s", ov.Rank, ov.Message)
		}
		drawMessage(dst, core.ColorBrightRed, "GAME OVER",
			fmt.Sprintf("Score: %d   Sliced: %d   Bombs: %d", snap.Score, snap.Sliced, snap.BombsHit),
			verdict,
			"",
			"R: restart   B: menu   Q: quit")
	}

	if ov.Notice != "" {
		dst.DrawTextCentered(dst.Height()-1, " "+ov.Notice+" ", core.ColorBrightRed)
	}
}

func drawFlash(dst *core.Screen, flash float64) {
	switch {
	case flash > 0.6:
		dst.Fill('▒', core.ColorBrightWhite)
	case flash > 0.3:
		dst.Fill('░', core.ColorWhite)
	case flash > 0.1:
		dst.Fill('·', core.ColorGray)
	}
}

func drawProjectile(dst *core.Screen, v view, p Projectile) {
	info := p.Kind.Info()
	body := BodyChar
	if p.Kind.IsBomb() {
		body = BombBodyChar
	}

	fillDisc(dst, v, p.Pos, p.Radius, func(core.Vec2) bool { return true }, body, info.Color)

	// Rim highlight shows the spin
	x, y := v.cell(p.Pos.Add(core.FromAngle(p.Rotation, p.Radius*0.6)))
	hl := core.ColorBrightWhite
	if p.Kind.IsBomb() {
		hl = core.ColorBrightRed
	}
	dst.SetColored(x, y, HighlightChar, hl)

	cx, cy := v.cell(p.Pos)
	dst.SetColored(cx, cy, info.Glyph, info.Color)
}

func drawFragment(dst *core.Screen, v view, f Fragment) {
	info := f.Kind.Info()
	normal := core.FromAngle(f.CutAngle+f.Rotation+math.Pi/2, 1)
	sign := 1.0
	if f.Side == SideSecond {
		sign = -1
	}
	ch := FragmentChar
	if f.Opacity() < 0.35 {
		ch = FadedChar
	}
	half := func(p core.Vec2) bool {
		d := p.Sub(f.Pos)
		return sign*(d.X*normal.X+d.Y*normal.Y) >= 0
	}
	fillDisc(dst, v, f.Pos, info.Radius*0.8, half, ch, info.Color)
}

// fillDisc sets every cell whose center lies within r of c and passes keep.
// Discs smaller than a cell still occupy their center cell.
func fillDisc(dst *core.Screen, v view, c core.Vec2, r float64, keep func(core.Vec2) bool, ch rune, color core.Color) {
	x0, y0 := v.cell(c.Sub(core.V(r, r)))
	x1, y1 := v.cell(c.Add(core.V(r, r)))
	circle := core.Circle{Center: c, Radius: r}
	drawn := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := v.center(x, y)
			if circle.Contains(p) && keep(p) {
				dst.SetColored(x, y, ch, color)
				drawn = true
			}
		}
	}
	if !drawn {
		x, y := v.cell(c)
		dst.SetColored(x, y, ch, color)
	}
}

func drawTrail(dst *core.Screen, v view, trail []TrailSample) {
	for i, s := range trail {
		ch, color := TrailTailChar, core.ColorCyan
		if i >= len(trail)-3 {
			ch, color = TrailHeadChar, core.ColorBrightCyan
		}
		if i > 0 {
			drawSegment(dst, v, trail[i-1].Pos, s.Pos, ch, color)
			continue
		}
		x, y := v.cell(s.Pos)
		dst.SetColored(x, y, ch, color)
	}
}

// drawSegment plots a straight line between two canvas points.
func drawSegment(dst *core.Screen, v view, a, b core.Vec2, ch rune, color core.Color) {
	ax, ay := v.cell(a)
	bx, by := v.cell(b)
	steps := core.Max(abs(bx-ax), abs(by-ay))
	if steps == 0 {
		dst.SetColored(bx, by, ch, color)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := ax + int(math.Round(t*float64(bx-ax)))
		y := ay + int(math.Round(t*float64(by-ay)))
		dst.SetColored(x, y, ch, color)
	}
}

func drawLabel(dst *core.Screen, v view, l Label) {
	text := l.Text
	if l.Scale >= 1.4 {
		text = "» " + text + " «"
	}
	color := l.Color
	if l.Life < 0.3 {
		color = core.ColorGray
	}
	x, y := v.cell(l.Pos)
	dst.DrawTextColored(x-len([]rune(text))/2, y, text, color)
}

func drawHUD(dst *core.Screen, snap Snapshot, ov Overlay) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", snap.Score), core.ColorBrightWhite)

	if snap.Combo > 1 {
		dst.DrawTextCentered(0, fmt.Sprintf("COMBO x%d", snap.Combo), core.ColorBrightYellow)
	}

	if ov.Zen {
		dst.DrawTextColored(dst.Width()-5, 0, "ZEN", core.ColorBrightCyan)
		return
	}
	hearts := []rune(strings.Repeat(string(HeartChar), snap.Lives) +
		strings.Repeat(string(EmptyHeart), core.Max(0, snap.MaxLives-snap.Lives)))
	dst.DrawTextColored(dst.Width()-len(hearts)-1, 0, string(hearts), core.ColorBrightRed)
}

// drawMessage draws a message box in the center of the screen.
func drawMessage(dst *core.Screen, color core.Color, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 4
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)

	// Draw text
	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, color)
	for i, l := range lines {
		dst.DrawText(boxX+(boxW-len([]rune(l)))/2, boxY+3+i, l)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
