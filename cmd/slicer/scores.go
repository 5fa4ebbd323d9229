package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-slicer/internal/platform/tui"
	"github.com/vovakirdan/tui-slicer/internal/registry"
	"github.com/vovakirdan/tui-slicer/internal/storage"
)

var (
	flagInteractive bool
	flagLimit       int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show recorded runs",
	Long: `Display the best runs for a mode, or for every mode when none is given,
followed by per-mode statistics.

Examples:
  slicer scores
  slicer scores zen
  slicer scores --interactive`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse runs in the scoreboard")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := ""
	if len(args) > 0 {
		gameID = modeID(args[0])
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'slicer list' to see available modes.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagInteractive {
		cfg := runtimeConfig()
		if _, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runs, err := store.TopRuns(gameID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	title := "all modes"
	if gameID != "" {
		title = gameID
	}
	fmt.Printf("Best runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'slicer play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %-6s  %-5s  %-10s  %s\n", "#", "Mode", "Score", "Sliced", "Bombs", "Verdict", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %-6s  %-5s  %-10s  %s\n", "-", "----", "-----", "------", "-----", "-------", "----")
	for i, run := range runs {
		rank := run.Rank
		if rank == "" {
			rank = "-"
		}
		fmt.Printf("  %-4d  %-10s  %-8d  %-6d  %-5d  %-10s  %s\n",
			i+1, run.Mode, run.Score, run.Sliced, run.BombsHit, rank,
			run.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	printModeStats(store, gameID)
}

func printModeStats(store *storage.Store, gameID string) {
	var stats []*storage.ModeStats
	if gameID != "" {
		st, err := store.ModeStats(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
			return
		}
		stats = append(stats, st)
	} else {
		all, err := store.AllModeStats()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
			return
		}
		for _, st := range all {
			stats = append(stats, st)
		}
		sort.Slice(stats, func(i, j int) bool { return stats[i].Mode < stats[j].Mode })
	}

	for _, st := range stats {
		if st == nil || st.Runs == 0 {
			continue
		}
		fmt.Printf("%s: %d runs, best %d, avg %.1f, %d sliced, %d bombs hit\n",
			st.Mode, st.Runs, st.HighScore, st.AvgScore, st.TotalSliced, st.BombsHit)
	}
}
