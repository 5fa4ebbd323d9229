package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-slicer/internal/config"
	"github.com/vovakirdan/tui-slicer/internal/core"
	"github.com/vovakirdan/tui-slicer/internal/registry"
	"github.com/vovakirdan/tui-slicer/internal/storage"
)

const menuTagline = "swipe the fruit, spare the bombs"

// MenuItem is one game mode in the picker.
type MenuItem struct {
	GameID string
	Title  string
	Best   int
}

// MenuModel is the mode picker shown before a game.
type MenuModel struct {
	items      []MenuItem
	cursor     int
	store      *storage.Store
	difficulty config.DifficultyPreset
	config     core.RuntimeConfig
	keys       MenuKeyMap
	help       help.Model
	theme      *Theme

	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel lists every registered mode with its best score. A nil theme
// renders for the local terminal.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, theme *Theme) MenuModel {
	if theme == nil {
		theme = NewTheme(nil)
	}

	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if store != nil {
			if best, err := store.HighScore(g.ID); err == nil {
				item.Best = best
			}
		}
		items = append(items, item)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return MenuModel{
		items:      items,
		store:      store,
		difficulty: StoredDifficulty(store),
		config:     cfg,
		keys:       DefaultMenuKeyMap(),
		help:       h,
		theme:      theme,
	}
}

// StoredDifficulty returns the saved difficulty preset, normal when unset.
func StoredDifficulty(store *storage.Store) config.DifficultyPreset {
	if store == nil {
		return config.DifficultyNormal
	}
	v, _, err := store.GetSetting(storage.SettingDifficulty)
	if err != nil {
		return config.DifficultyNormal
	}
	p, err := config.ParsePreset(v)
	if err != nil {
		return config.DifficultyNormal
	}
	return p
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)

	case key.Matches(msg, m.keys.Down):
		m.cursor = max(min(m.cursor+1, len(m.items)-1), 0)

	case key.Matches(msg, m.keys.Difficulty):
		m.difficulty = m.difficulty.Next()
		if m.store != nil {
			// Best effort; the choice still applies to this session.
			_ = m.store.SetSetting(storage.SettingDifficulty, string(m.difficulty))
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) == 0 {
			return m, nil
		}
		selected := m.items[m.cursor]
		m.selected = &selected
		return m, tea.Quit

	case key.Matches(msg, m.keys.Scores):
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	width := m.config.ScreenW

	lines := []string{
		m.theme.Title.Render("S L I C E R"),
		m.theme.Faint.Render(menuTagline),
		"",
	}
	for i, item := range m.items {
		line := fmt.Sprintf("%-16s best %d", item.Title, item.Best)
		if i == m.cursor {
			lines = append(lines, m.theme.Cursor.Render("> "+line))
		} else {
			lines = append(lines, m.theme.Item.Render("  "+line))
		}
	}
	lines = append(lines,
		"",
		m.theme.Faint.Render("difficulty: ")+m.theme.Warning.Render(string(m.difficulty)),
		"",
		m.theme.Help.Render(m.help.View(m.keys)),
	)

	var b strings.Builder
	if pad := (m.config.ScreenH - len(lines)) / 3; pad > 0 {
		b.WriteString(strings.Repeat("\n", pad))
	}
	for _, line := range lines {
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}
	return b.String()
}

// Selected returns the chosen mode, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Difficulty returns the preset shown in the menu.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return m.difficulty
}

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult is what the player picked.
type MenuResult struct {
	GameID          string
	Difficulty      config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the picker on the local terminal.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg, nil), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config(), Difficulty: m.Difficulty()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting(), m.Selected() == nil:
		result.Quit = true
	default:
		result.GameID = m.Selected().GameID
	}
	return result, nil
}
