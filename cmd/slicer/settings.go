package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-slicer/internal/config"
	"github.com/vovakirdan/tui-slicer/internal/registry"
	"github.com/vovakirdan/tui-slicer/internal/storage"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change stored settings",
	Long: `Stored settings apply when 'slicer play' is run without the matching flag.

Keys:
  difficulty  - easy, normal, hard or fixed
  muted       - true or false (also toggled in game with M)
  tracker     - hand tracker websocket URL, empty for mouse only

Examples:
  slicer settings list
  slicer settings set difficulty hard
  slicer settings get tracker
  slicer settings unset tracker
  slicer settings clear-runs zen`,
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored settings",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		withStore(func(store *storage.Store) error {
			all, err := store.Settings()
			if err != nil {
				return err
			}
			if len(all) == 0 {
				fmt.Println("No settings stored.")
				return nil
			}
			keys := make([]string, 0, len(all))
			for k := range all {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("%s = %s\n", k, all[k])
			}
			return nil
		})
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a stored setting",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		withStore(func(store *storage.Store) error {
			v, ok, err := store.GetSetting(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("setting %q is not set", args[0])
			}
			fmt.Println(v)
			return nil
		})
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting",
	Args:  cobra.ExactArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		key, value := args[0], args[1]
		value, err := validateSetting(key, value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		withStore(func(store *storage.Store) error {
			return store.SetSetting(key, value)
		})
	},
}

var settingsUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a stored setting",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		withStore(func(store *storage.Store) error {
			return store.DeleteSetting(args[0])
		})
	},
}

var settingsClearRunsCmd = &cobra.Command{
	Use:   "clear-runs [mode]",
	Short: "Delete recorded runs of a mode, or of all modes",
	Args:  cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		mode := ""
		if len(args) > 0 {
			mode = modeID(args[0])
			if !registry.Exists(mode) {
				fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
				os.Exit(1)
			}
		}
		withStore(func(store *storage.Store) error {
			return store.ClearRuns(mode)
		})
	},
}

func init() {
	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsUnsetCmd)
	settingsCmd.AddCommand(settingsClearRunsCmd)
}

// validateSetting checks a known key's value and returns it normalized.
func validateSetting(key, value string) (string, error) {
	switch key {
	case storage.SettingDifficulty:
		p, err := config.ParsePreset(value)
		if err != nil {
			return "", err
		}
		return string(p), nil
	case storage.SettingMuted:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return "", fmt.Errorf("muted must be true or false: %w", err)
		}
		return strconv.FormatBool(b), nil
	case storage.SettingTracker:
		return value, nil
	}
	return "", fmt.Errorf("unknown setting %q", key)
}

// withStore opens the database, runs fn and exits on failure.
func withStore(fn func(*storage.Store) error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	err = fn(store)
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
