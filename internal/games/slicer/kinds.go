package slicer

import "github.com/vovakirdan/tui-slicer/internal/core"

// Kind is the category of a launched projectile.
type Kind uint8

const (
	KindApple Kind = iota
	KindOrange
	KindLemon
	KindWatermelon
	KindPineapple
	KindBomb
	kindCount // Sentinel for counting kinds
)

// KindInfo holds the fixed per-kind attributes.
type KindInfo struct {
	Name   string
	Radius float64    // Hit radius in canvas units
	Color  core.Color // Used for the body, its fragments and its juice burst
	Glyph  rune
}

var kindTable = [kindCount]KindInfo{
	KindApple:      {Name: "apple", Radius: 26, Color: core.ColorBrightRed, Glyph: '●'},
	KindOrange:     {Name: "orange", Radius: 26, Color: core.ColorOrange, Glyph: '●'},
	KindLemon:      {Name: "lemon", Radius: 22, Color: core.ColorBrightYellow, Glyph: '◖'},
	KindWatermelon: {Name: "watermelon", Radius: 40, Color: core.ColorGreen, Glyph: '◉'},
	KindPineapple:  {Name: "pineapple", Radius: 32, Color: core.ColorYellow, Glyph: '▲'},
	KindBomb:       {Name: "bomb", Radius: 26, Color: core.ColorDarkGray, Glyph: '✹'},
}

// fruitTable is the cumulative spawn probability of each fruit kind.
var fruitTable = []struct {
	kind Kind
	upTo float64
}{
	{KindApple, 0.28},
	{KindOrange, 0.52},
	{KindLemon, 0.72},
	{KindWatermelon, 0.87},
	{KindPineapple, 1.0},
}

// Info returns the attributes of the kind.
func (k Kind) Info() KindInfo {
	if k >= kindCount {
		return kindTable[KindApple]
	}
	return kindTable[k]
}

// IsBomb reports whether the kind costs a life when sliced.
func (k Kind) IsBomb() bool {
	return k == KindBomb
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k >= kindCount {
		return "unknown"
	}
	return kindTable[k].Name
}

// fruitFor maps a uniform sample in [0, 1) to a fruit kind.
func fruitFor(r float64) Kind {
	for _, f := range fruitTable {
		if r < f.upTo {
			return f.kind
		}
	}
	return fruitTable[len(fruitTable)-1].kind
}
