package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-slicer/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes",
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	modes := registry.List()
	if len(modes) == 0 {
		fmt.Println("No modes registered.")
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("ID", "TITLE", "ALIAS")
	for _, m := range modes {
		t.Row(m.ID, m.Title, modeAlias(m.ID))
	}
	fmt.Println(t.Render())
	fmt.Println("Play one with 'slicer play <id or alias>'.")
}
