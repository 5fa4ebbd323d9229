package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-slicer/internal/core"
)

// palette maps screen colors to ANSI 256 codes. An empty code keeps the
// terminal's default foreground.
var palette = [...]string{
	core.ColorDefault:       "",
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorPink:          "218",
	core.ColorBrown:         "130",
	core.ColorDarkGray:      "238",
}

// Theme holds every style of the front-end, bound to one terminal. SSH
// sessions get their own so colors follow the client's terminal.
type Theme struct {
	cells [len(palette)]lipgloss.Style

	Title   lipgloss.Style
	Item    lipgloss.Style
	Cursor  lipgloss.Style
	Faint   lipgloss.Style
	Help    lipgloss.Style
	Box     lipgloss.Style
	Tab     lipgloss.Style
	TabOn   lipgloss.Style
	Empty   lipgloss.Style
	Warning lipgloss.Style
}

// NewTheme builds the styles for r. A nil renderer means the local terminal.
func NewTheme(r *lipgloss.Renderer) *Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	t := &Theme{
		Title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		Item:    r.NewStyle().Foreground(lipgloss.Color("250")),
		Cursor:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Faint:   r.NewStyle().Foreground(lipgloss.Color("245")),
		Help:    r.NewStyle().Foreground(lipgloss.Color("241")),
		Box:     r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		Tab:     r.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
		TabOn:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1),
		Empty:   r.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
		Warning: r.NewStyle().Foreground(lipgloss.Color("208")),
	}
	for c, code := range palette {
		st := r.NewStyle()
		if code != "" {
			st = st.Foreground(lipgloss.Color(code))
		}
		t.cells[c] = st
	}
	return t
}

func (t *Theme) cell(c core.Color) lipgloss.Style {
	if int(c) < len(t.cells) {
		return t.cells[c]
	}
	return t.cells[core.ColorDefault]
}

// RenderScreen converts a screen buffer to a styled string. Runs of cells
// sharing a color are styled together to keep escape sequences short.
func (t *Theme) RenderScreen(s *core.Screen) string {
	var sb, run strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(t.cell(color).Render(run.String()))
		}
	}
	return sb.String()
}
