package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-slicer/internal/audio"
	"github.com/vovakirdan/tui-slicer/internal/commentary"
	"github.com/vovakirdan/tui-slicer/internal/config"
	"github.com/vovakirdan/tui-slicer/internal/core"
	"github.com/vovakirdan/tui-slicer/internal/input"
	"github.com/vovakirdan/tui-slicer/internal/registry"
	"github.com/vovakirdan/tui-slicer/internal/storage"
)

// Options wires optional services into the game host.
type Options struct {
	Store *storage.Store

	// Source is an extra point source such as a hand tracker. The mouse is
	// always available and takes over when the source reports nothing.
	Source input.Source

	Sink   audio.Sink
	Muted  bool
	Judge  commentary.Service
	Logger *log.Logger

	// Difficulty is applied to games that support presets. Empty keeps the
	// game's default.
	Difficulty config.DifficultyPreset

	// Theme renders for the player's terminal. Nil means the local one.
	Theme *Theme

	// Embedded makes Back from the game menu hand control to the caller
	// instead of quitting the program.
	Embedded bool
}

// Optional game capabilities.
type (
	sinkSetter interface {
		SetSink(audio.Sink)
	}
	difficultySetter interface {
		SetDifficulty(config.DifficultyPreset)
	}
	verdictSetter interface {
		SetVerdict(rank, message string)
	}
	noticeSetter interface {
		SetNotice(text string)
	}
	runReporter interface {
		RunStats() commentary.Stats
	}
	errReporter interface {
		Err() error
	}
)

// verdictMsg delivers the commentary for a finished run.
type verdictMsg struct {
	runID   string
	verdict commentary.Verdict
}

// Model is the Bubble Tea model hosting one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       KeyMap
	help       help.Model
	theme      *Theme
	logger     *log.Logger

	pointer *input.PointerSource
	source  input.Source
	sound   *audio.Switch
	judge   commentary.Service
	clock   frameClock

	embedded    bool
	quitting    bool
	backToMenu  bool
	playing     bool
	runSaved    bool
	runID       string
	judging     map[string]bool
	trackerLost bool
}

// NewModel creates a Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	pointer := input.NewPointerSource(0)
	var source input.Source = pointer
	if opts.Source != nil {
		source = opts.Source
	}

	sound := audio.NewSwitch(opts.Sink, opts.Muted)
	if s, ok := game.(sinkSetter); ok {
		s.SetSink(sound)
	}
	if d, ok := game.(difficultySetter); ok && opts.Difficulty != "" {
		d.SetDifficulty(opts.Difficulty)
	}

	theme := opts.Theme
	if theme == nil {
		theme = NewTheme(nil)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		store:      opts.Store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultKeyMap(),
		help:       h,
		theme:      theme,
		logger:     logger,
		pointer:    pointer,
		source:     source,
		sound:      sound,
		judge:      opts.Judge,
		judging:    make(map[string]bool),
		embedded:   opts.Embedded,
	}
}

// playHeight leaves the last terminal row to the key help line.
func playHeight(h int) int {
	return max(h-1, 1)
}

// gameConfig is the runtime config seen by the game: the playfield only.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = playHeight(cfg.ScreenH)
	return cfg
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.pointer.MoveCell(msg.X, msg.Y, m.screen.Width(), m.screen.Height())
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case verdictMsg:
		m.handleVerdict(msg)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		if m.playing {
			m.finishAbandoned()
		}
		m.quitting = true
		m.closeSource()
		return m, tea.Quit

	case core.ActionMute:
		muted := m.sound.Toggle()
		m.saveSetting(storage.SettingMuted, strconv.FormatBool(muted))

	case core.ActionBack:
		if m.gameState.InMenu {
			m.backToMenu = true
			if !m.embedded {
				m.quitting = true
				m.closeSource()
				return m, tea.Quit
			}
			return m, nil
		}
		m.inputFrame.Set(action)

	case core.ActionNone:
		if key.Matches(msg, m.keys.Screenshot) {
			m.saveScreenshot()
		}

	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events. Games that can adapt keep
// their session; others restart.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playHeight(msg.Height))
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, playHeight(msg.Height))
	} else if !m.gameState.GameOver {
		m.game.Reset(m.gameConfig())
	}

	return m, nil
}

// handleTick feeds one frame of real elapsed time and tracked points to the game.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.pollSource()
	m.inputFrame.DT = m.clock.Delta(now, m.config.FrameDT())

	wasPlaying := m.playing
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.playing = !m.gameState.InMenu && !m.gameState.GameOver

	var judge tea.Cmd
	switch {
	case result.Ended:
		judge = m.finishRun()
	case wasPlaying && m.gameState.InMenu:
		m.finishAbandoned()
	case m.playing && !wasPlaying:
		m.runSaved = false
		m.runID = ""
	}

	m.inputFrame.Clear()
	return m, tea.Batch(tickCmd(m.config.TickRate), judge)
}

// pollSource collects this frame's points. A failed tracker is replaced by
// the mouse.
func (m *Model) pollSource() {
	if er, ok := m.source.(errReporter); ok && !m.trackerLost {
		if err := er.Err(); err != nil {
			m.trackerLost = true
			m.logger.Warn("tracker lost, falling back to mouse", "err", err)
			m.notice("Tracker lost, using mouse")
			m.closeSource()
		}
	}

	points := m.source.Poll()
	if len(points) == 0 && m.source != input.Source(m.pointer) {
		points = m.pointer.Poll()
	}
	m.inputFrame.Points = append(m.inputFrame.Points, points...)
}

// closeSource releases the external source and falls back to the mouse.
func (m *Model) closeSource() {
	if m.source == input.Source(m.pointer) {
		return
	}
	if err := m.source.Close(); err != nil {
		m.logger.Warn("could not close input source", "err", err)
	}
	m.source = m.pointer
}

// runStats reports the finished run, falling back to the bare game state.
func (m *Model) runStats() commentary.Stats {
	if r, ok := m.game.(runReporter); ok {
		return r.RunStats()
	}
	return commentary.Stats{Mode: m.game.ID(), Score: m.gameState.Score}
}

// finishRun saves a run that reached game over and asks for its verdict.
// It runs at most once per run.
func (m *Model) finishRun() tea.Cmd {
	if m.runSaved {
		return nil
	}
	m.runSaved = true
	m.runID = uuid.NewString()
	stats := m.runStats()
	m.saveRun(stats)

	if _, ok := m.game.(verdictSetter); !ok {
		return nil
	}
	m.judging[m.runID] = true
	return judgeCmd(m.judge, m.runID, stats)
}

// finishAbandoned saves a run left before game over, such as a zen run.
// Empty runs are not recorded.
func (m *Model) finishAbandoned() {
	if m.runSaved {
		return
	}
	stats := m.runStats()
	if stats.Score <= 0 {
		return
	}
	m.runSaved = true
	m.runID = uuid.NewString()
	m.saveRun(stats)
}

func (m *Model) saveRun(stats commentary.Stats) {
	if m.store == nil {
		return
	}
	_, err := m.store.SaveRun(storage.Run{
		RunID:    m.runID,
		Mode:     m.game.ID(),
		Score:    stats.Score,
		Sliced:   stats.Sliced,
		BombsHit: stats.BombsHit,
	})
	if err != nil {
		m.logger.Warn("could not save run", "err", err)
	}
}

// handleVerdict ranks the judged run and shows the verdict if that run
// is still on screen. A restart before the verdict arrives keeps the rank.
func (m *Model) handleVerdict(msg verdictMsg) {
	if !m.judging[msg.runID] {
		return
	}
	delete(m.judging, msg.runID)
	if m.store != nil {
		if err := m.store.SetRunRank(msg.runID, msg.verdict.Rank); err != nil {
			m.logger.Warn("could not rank run", "err", err)
		}
	}
	if msg.runID != m.runID || !m.gameState.GameOver {
		return
	}
	if v, ok := m.game.(verdictSetter); ok {
		v.SetVerdict(msg.verdict.Rank, msg.verdict.Message)
	}
}

// judgeCmd evaluates a run off the UI goroutine.
func judgeCmd(svc commentary.Service, runID string, stats commentary.Stats) tea.Cmd {
	return func() tea.Msg {
		v := commentary.Resolve(context.Background(), svc, stats, commentary.DefaultTimeout)
		return verdictMsg{runID: runID, verdict: v}
	}
}

func (m *Model) notice(text string) {
	if n, ok := m.game.(noticeSetter); ok {
		n.SetNotice(text)
	}
}

func (m *Model) saveSetting(key, value string) {
	if m.store == nil {
		return
	}
	if err := m.store.SetSetting(key, value); err != nil {
		m.logger.Warn("could not save setting", "key", key, "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".slicer", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.theme.RenderScreen(m.screen) + "\n" + m.theme.Help.Render(m.help.View(m.keys))
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user left the game from its title menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Muted reports whether audio cues are switched off.
func (m Model) Muted() bool {
	return m.sound.Muted()
}

// Run starts the Bubble Tea program with the given game. It reports whether
// the user quit entirely rather than going back to the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (quit bool, err error) {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return true, err
	}
	m, ok := final.(Model)
	if !ok {
		return true, nil
	}
	return m.IsQuitting() && !m.BackToMenu(), nil
}
