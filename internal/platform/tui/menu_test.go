package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-slicer/internal/config"
	"github.com/vovakirdan/tui-slicer/internal/storage"
)

func updateMenu(t *testing.T, m MenuModel, msg tea.Msg) (MenuModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected MenuModel", next)
	}
	return nm, cmd
}

func TestMenuShowsBestScore(t *testing.T) {
	store := openStore(t)
	for _, score := range []int{30, 90} {
		if _, err := store.SaveRun(storage.Run{Mode: fakeGameID, Score: score}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	m := NewMenuModel(store, testConfig(), nil)
	if len(m.items) == 0 || m.items[0].GameID != fakeGameID {
		t.Fatalf("items = %+v, expected the fake mode", m.items)
	}
	if m.items[0].Best != 90 {
		t.Errorf("Best = %d, expected 90", m.items[0].Best)
	}
	if view := m.View(); !strings.Contains(view, "best 90") {
		t.Errorf("View() does not show the best score:\n%s", view)
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, testConfig(), nil)

	m, _ = updateMenu(t, m, keyRune('k'))
	if m.cursor != 0 {
		t.Errorf("cursor = %d after up at top, expected 0", m.cursor)
	}

	m, cmd := updateMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !isQuit(cmd) {
		t.Error("select did not leave the menu")
	}
	if m.Selected() == nil || m.Selected().GameID != m.items[m.cursor].GameID {
		t.Errorf("Selected() = %v, expected item under cursor", m.Selected())
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(nil, testConfig(), nil)

	sb, _ := updateMenu(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !sb.WantsScoreboard() {
		t.Error("WantsScoreboard() = false after tab")
	}

	q, cmd := updateMenu(t, m, keyRune('q'))
	if !q.IsQuitting() || !isQuit(cmd) {
		t.Error("q did not quit the menu")
	}
	if q.View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestMenuCyclesDifficulty(t *testing.T) {
	store := openStore(t)
	m := NewMenuModel(store, testConfig(), nil)
	if m.Difficulty() != config.DifficultyNormal {
		t.Fatalf("Difficulty() = %q, expected normal", m.Difficulty())
	}

	m, cmd := updateMenu(t, m, keyRune('d'))
	if cmd != nil {
		t.Error("cycling difficulty left the menu")
	}
	if m.Difficulty() != config.DifficultyHard {
		t.Errorf("Difficulty() = %q, expected hard", m.Difficulty())
	}
	if !strings.Contains(m.View(), "difficulty: hard") {
		t.Errorf("View() does not show the difficulty:\n%s", m.View())
	}

	if got := StoredDifficulty(store); got != config.DifficultyHard {
		t.Errorf("StoredDifficulty() = %q, expected hard", got)
	}
	if got := StoredDifficulty(nil); got != config.DifficultyNormal {
		t.Errorf("StoredDifficulty(nil) = %q, expected normal", got)
	}
}

func TestMenuResize(t *testing.T) {
	m := NewMenuModel(nil, testConfig(), nil)
	m, _ = updateMenu(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if cfg := m.Config(); cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("Config() = %dx%d, expected 120x40", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText() = %q, expected %q", got, "  ab")
	}
	if got := centerText("abcdef", 4); got != "abcdef" {
		t.Errorf("centerText() = %q, expected unchanged", got)
	}
}
