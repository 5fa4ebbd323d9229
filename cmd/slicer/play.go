package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-slicer/internal/config"
	"github.com/vovakirdan/tui-slicer/internal/games/slicer"
	"github.com/vovakirdan/tui-slicer/internal/platform/tui"
	"github.com/vovakirdan/tui-slicer/internal/registry"
)

var (
	flagMode       string
	flagConfig     string
	flagDifficulty string
	flagTracker    string
	flagMute       bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing. The mode is classic (default) or zen, given either as an
argument or with --mode.

Controls:
  Mouse        - Slice
  Enter/Space  - Start
  R            - Restart
  B/Esc        - Back to the game menu, then quit
  M            - Mute
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - 5 lives, difficulty ramps from 1.0 up to 2.0
  normal - Lives and ramp from the config (3 lives, 1.0 up to 3.0 by default)
  hard   - 2 lives, difficulty starts at 1.5
  fixed  - Config lives, difficulty stays at 1.0 whatever the score

Without --difficulty, --tracker or --mute the stored settings apply
(see 'slicer settings').

Examples:
  slicer play
  slicer play zen
  slicer play --difficulty hard
  slicer play --tracker ws://localhost:8765/points
  slicer play --config ./my-slicer.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Game mode: classic or zen")
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagTracker, "tracker", "", "Hand tracker websocket URL (ws://...)")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound off")
}

// modeAliases are the short names accepted for registry IDs.
var modeAliases = map[string]string{
	"classic": slicer.IDClassic,
	"zen":     slicer.IDZen,
}

// modeID maps an alias or registry ID to a registry ID. Empty is classic.
func modeID(name string) string {
	if name == "" {
		return slicer.IDClassic
	}
	if id, ok := modeAliases[name]; ok {
		return id
	}
	return name
}

// modeAlias returns the short name of a registry ID, or "-".
func modeAlias(id string) string {
	for alias, target := range modeAliases {
		if target == id {
			return alias
		}
	}
	return "-"
}

func runPlay(_ *cobra.Command, args []string) {
	name := flagMode
	if len(args) > 0 {
		name = args[0]
	}
	gameID := modeID(name)

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", name)
		fmt.Fprintln(os.Stderr, "Run 'slicer list' to see available modes.")
		os.Exit(1)
	}
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	mustLoadTuning()

	logger, closeLog := openLogger(flagLogPath)
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	opts := playOptions{difficulty: flagDifficulty, tracker: flagTracker, mute: flagMute}.resolve(store)
	sess := newSession(store, logger, opts)
	defer sess.Close()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting game", "mode", gameID, "difficulty", opts.difficulty, "tracker", opts.tracker)
	if _, err := tui.Run(game, runtimeConfig(), sess.options(opts.mute)); err != nil {
		logger.Error("game failed", "err", err)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
