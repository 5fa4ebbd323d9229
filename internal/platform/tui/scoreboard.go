package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-slicer/internal/registry"
	"github.com/vovakirdan/tui-slicer/internal/storage"
)

const (
	maxRuns      = 100
	allModesName = "All modes"
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Back, k.Quit}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns the default scoreboard bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// scoreTab is one page of the scoreboard. An empty mode means every mode.
type scoreTab struct {
	mode  string
	title string
}

// ScoreboardModel lists recorded runs, one tab per mode plus a combined tab.
type ScoreboardModel struct {
	tabs  []scoreTab
	tab   int
	store *storage.Store
	runs  []storage.Run
	stats storage.ModeStats
	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap
	theme *Theme

	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard showing the combined tab first.
func NewScoreboardModel(store *storage.Store, width, height int, theme *Theme) ScoreboardModel {
	if theme == nil {
		theme = NewTheme(nil)
	}

	tabs := []scoreTab{{title: allModesName}}
	for _, g := range registry.List() {
		tabs = append(tabs, scoreTab{mode: g.ID, title: g.Title})
	}

	m := ScoreboardModel{
		tabs:   tabs,
		store:  store,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		theme:  theme,
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.load()
	return m
}

func (m ScoreboardModel) current() scoreTab {
	return m.tabs[m.tab]
}

func (m *ScoreboardModel) newTable() table.Model {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(max(m.height-11, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// columns returns the table layout; the combined tab adds a mode column.
func (m ScoreboardModel) columns() []table.Column {
	cols := []table.Column{{Title: "#", Width: 4}}
	if m.current().mode == "" {
		cols = append(cols, table.Column{Title: "Mode", Width: 12})
	}
	cols = append(cols,
		table.Column{Title: "Score", Width: 8},
		table.Column{Title: "Sliced", Width: 7},
		table.Column{Title: "Bombs", Width: 6},
		table.Column{Title: "Verdict", Width: 8},
		table.Column{Title: "Date", Width: 13},
	)
	return cols
}

// load reads the runs and stats of the current tab and refills the table.
func (m *ScoreboardModel) load() {
	mode := m.current().mode
	m.runs = nil
	m.stats = storage.ModeStats{Mode: mode}

	if m.store != nil {
		if runs, err := m.store.TopRuns(mode, maxRuns); err == nil {
			m.runs = runs
		}
		m.stats = m.loadStats(mode)
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		verdict := r.Rank
		if verdict == "" {
			verdict = "-"
		}
		row := table.Row{strconv.Itoa(i + 1)}
		if mode == "" {
			row = append(row, r.Mode)
		}
		rows[i] = append(row,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Sliced),
			strconv.Itoa(r.BombsHit),
			verdict,
			r.CreatedAt.Format("Jan 02 15:04"),
		)
	}

	// Rows must never be wider than the columns, so clear them first.
	m.table.SetRows(nil)
	m.table.SetColumns(m.columns())
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// loadStats sums the per-mode stats for the combined tab.
func (m *ScoreboardModel) loadStats(mode string) storage.ModeStats {
	if mode != "" {
		if st, err := m.store.ModeStats(mode); err == nil && st != nil {
			return *st
		}
		return storage.ModeStats{Mode: mode}
	}

	total := storage.ModeStats{}
	all, err := m.store.AllModeStats()
	if err != nil {
		return total
	}
	var sum float64
	for _, st := range all {
		total.Runs += st.Runs
		total.HighScore = max(total.HighScore, st.HighScore)
		total.TotalSliced += st.TotalSliced
		total.BombsHit += st.BombsHit
		sum += st.AvgScore * float64(st.Runs)
		if st.LastPlayed.After(total.LastPlayed) {
			total.LastPlayed = st.LastPlayed
		}
	}
	if total.Runs > 0 {
		total.AvgScore = sum / float64(total.Runs)
	}
	return total
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % len(m.tabs)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + len(m.tabs) - 1) % len(m.tabs)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabLine(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Faint.Render(m.statsLine()), m.width))
	b.WriteString("\n\n")

	content := m.table.View()
	if len(m.runs) == 0 {
		content = m.theme.Empty.Render("No runs recorded yet.\nSlice something to set a high score!")
	}
	for _, line := range strings.Split(m.theme.Box.Render(content), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))
	return b.String()
}

// tabLine shows every tab, or only the current one when they do not fit.
func (m ScoreboardModel) tabLine() string {
	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.tab {
			tabs[i] = m.theme.TabOn.Render(t.title)
		} else {
			tabs[i] = m.theme.Tab.Render(t.title)
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		line = fmt.Sprintf("< %s >", m.current().title)
	}
	return line
}

// statsLine summarizes the current tab.
func (m ScoreboardModel) statsLine() string {
	if m.stats.Runs == 0 {
		return ""
	}
	return fmt.Sprintf("%d runs  best %d  avg %.0f  %d sliced  %d bombs",
		m.stats.Runs, m.stats.HighScore, m.stats.AvgScore, m.stats.TotalSliced, m.stats.BombsHit)
}

// IsGoingBack reports whether the player went back to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard on the local terminal.
// Returns true if the player wants to go back to the menu.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height, nil), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
