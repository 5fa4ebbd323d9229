// slicer is a fruit slicing arcade game for the terminal. Slices are drawn
// with the mouse or with a hand tracker streaming points over a websocket.
//
// Usage:
//
//	slicer list              - List available modes
//	slicer play [mode]       - Play a mode (classic or zen)
//	slicer menu              - Pick modes interactively
//	slicer scores [mode]     - Show recorded runs
//	slicer settings          - Show or change stored settings
//	slicer serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.slicer/slicer.db)
//	--log <path>    - Set log file (default: ~/.slicer/slicer.log)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register the slicer modes
	_ "github.com/vovakirdan/tui-slicer/internal/games/slicer"
	"github.com/vovakirdan/tui-slicer/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slicer",
	Short: "Slicer - slice flying fruit in your terminal",
	Long: `Slicer throws fruit and bombs across your terminal. Swipe through the
fruit with the mouse, or with a hand tracker, and keep away from the bombs.

Available commands:
  list      - Show all game modes
  play      - Play a mode directly
  menu      - Interactive mode picker
  scores    - View recorded runs
  settings  - Show or change stored settings
  serve     - Start SSH server for remote play

Examples:
  slicer play
  slicer play zen
  slicer play --tracker ws://localhost:8765/points
  slicer menu
  slicer serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", defaultLogPath, "Path to log file (empty disables logging)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(serveCmd)
}
