package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-slicer/internal/platform/tui"
	"github.com/vovakirdan/tui-slicer/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode, Tab for the
scoreboard. Going back from a game returns to this menu.

Examples:
  slicer menu
  slicer menu --fps 30
  slicer menu --db ./slicer.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagTracker, "tracker", "", "Hand tracker websocket URL (ws://...)")
}

func runMenu(_ *cobra.Command, _ []string) {
	mustLoadTuning()

	logger, closeLog := openLogger(flagLogPath)
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	opts := playOptions{tracker: flagTracker}.resolve(store)
	sess := newSession(store, logger, opts)
	defer sess.Close()

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Fresh seed per game unless one was pinned.
		gameCfg := cfg
		if flagSeed == 0 {
			gameCfg.Seed = time.Now().UnixNano()
		}

		sess.difficulty = menuResult.Difficulty
		logger.Info("starting game", "mode", game.ID(), "difficulty", sess.difficulty)
		quit, err := tui.Run(game, gameCfg, sess.options(false))
		if err != nil {
			logger.Error("game failed", "err", err)
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if quit {
			return
		}
	}
}
