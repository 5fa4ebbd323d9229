package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-slicer/internal/audio/device"
	"github.com/vovakirdan/tui-slicer/internal/commentary"
	"github.com/vovakirdan/tui-slicer/internal/config"
	"github.com/vovakirdan/tui-slicer/internal/core"
	"github.com/vovakirdan/tui-slicer/internal/games/slicer"
	"github.com/vovakirdan/tui-slicer/internal/input"
	"github.com/vovakirdan/tui-slicer/internal/platform/tui"
	"github.com/vovakirdan/tui-slicer/internal/storage"
)

const (
	defaultLogPath = "~/.slicer/slicer.log"
	audioVolume    = 0.6
	dialTimeout    = 5 * time.Second
)

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// openLogger returns a file logger. Bubble Tea owns the terminal, so local
// play never logs to stderr. The returned close func is never nil.
func openLogger(path string) (*log.Logger, func()) {
	discard := log.New(io.Discard)
	if path == "" {
		return discard, func() {}
	}

	path, err := expandHome(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return discard, func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return discard, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return discard, func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "slicer",
	})
	return logger, func() { f.Close() }
}

// openStore opens the runs database. The game still works without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		logger.Warn("could not open runs database", "err", err)
		return nil
	}
	return store
}

// loadTuning loads the game config from path, or the search paths when
// empty, and makes it the tuning of every game started afterwards.
func loadTuning(path string) error {
	cfg, err := config.LoadSlicer(path)
	if err != nil {
		return err
	}
	slicer.UseConfig(cfg)
	return nil
}

// mustLoadTuning is loadTuning for commands: a bad config ends the program.
func mustLoadTuning() {
	if err := loadTuning(flagConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// storedSetting reads a setting, treating a missing store as unset.
func storedSetting(store *storage.Store, key string) string {
	if store == nil {
		return ""
	}
	v, ok, err := store.GetSetting(key)
	if err != nil || !ok {
		return ""
	}
	return v
}

// playOptions holds what the player chose for a session.
type playOptions struct {
	difficulty string
	tracker    string
	mute       bool
}

// resolve fills unset choices from stored settings.
func (o playOptions) resolve(store *storage.Store) playOptions {
	if o.difficulty == "" {
		o.difficulty = storedSetting(store, storage.SettingDifficulty)
	}
	if o.tracker == "" {
		o.tracker = storedSetting(store, storage.SettingTracker)
	}
	return o
}

// session holds the collaborators of local play.
type session struct {
	store      *storage.Store
	logger     *log.Logger
	sink       *device.BeepSink
	difficulty config.DifficultyPreset
	trackerURL string
	tracker    *input.TrackerSource
}

// newSession prepares the audio device. An unknown stored difficulty falls
// back to the mode's own tuning.
func newSession(store *storage.Store, logger *log.Logger, opts playOptions) *session {
	s := &session{
		store:      store,
		logger:     logger,
		sink:       device.Open(audioVolume, logger),
		trackerURL: opts.tracker,
	}
	if opts.difficulty != "" {
		p, err := config.ParsePreset(opts.difficulty)
		if err != nil {
			logger.Warn("ignoring difficulty", "err", err)
		}
		s.difficulty = p
	}
	return s
}

// dialTracker connects a fresh tracker for the next game. The host closes
// its source when a game ends. A tracker that cannot be reached is reported
// once and play continues with the mouse.
func (s *session) dialTracker() input.Source {
	if s.trackerURL == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	src, err := input.DialTracker(ctx, s.trackerURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using mouse\n", err)
		s.logger.Warn("tracker unavailable", "url", s.trackerURL, "err", err)
		s.trackerURL = ""
		return nil
	}
	s.tracker = src
	return src
}

// options builds the host options for one game. The mute switch is re-read
// from the store so a toggle in one game carries over to the next.
func (s *session) options(forceMute bool) tui.Options {
	muted := forceMute
	if !muted {
		muted, _ = strconv.ParseBool(storedSetting(s.store, storage.SettingMuted))
	}
	return tui.Options{
		Store:      s.store,
		Source:     s.dialTracker(),
		Sink:       s.sink,
		Muted:      muted,
		Judge:      commentary.Local{},
		Logger:     s.logger,
		Difficulty: s.difficulty,
	}
}

// Close releases the last tracker and the audio device.
func (s *session) Close() {
	if s.tracker != nil {
		s.tracker.Close()
	}
	s.sink.Close()
}
