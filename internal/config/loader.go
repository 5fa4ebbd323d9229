package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the search directories.
const FileName = "slicer.yaml"

// SearchPaths lists where LoadSlicer looks when no path is given, in order:
// the user directory, then ./configs.
func SearchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".slicer", "configs", FileName))
	}
	return append(paths, filepath.Join("configs", FileName))
}

// LoadSlicer returns the slicer tuning. An explicit path must exist and be
// valid. Otherwise the first existing file of SearchPaths is used, and the
// embedded defaults when there is none. A file that exists but does not
// parse or validate is an error either way. Files are decoded over the
// defaults, so they only need the keys they change.
func LoadSlicer(path string) (SlicerConfig, error) {
	if path != "" {
		return loadFile(path)
	}
	for _, p := range SearchPaths() {
		cfg, err := loadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return cfg, err
	}
	if cfg, err := decodeSlicer(defaultSlicerYAML); err == nil && cfg.Validate() == nil {
		return cfg, nil
	}
	return DefaultSlicerConfig(), nil
}

func loadFile(path string) (SlicerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SlicerConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := decodeSlicer(data)
	if err != nil {
		return SlicerConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return SlicerConfig{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// decodeSlicer decodes data over the defaults. Unknown keys are errors so a
// typo does not silently keep the default.
func decodeSlicer(data []byte) (SlicerConfig, error) {
	cfg := DefaultSlicerConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return SlicerConfig{}, err
	}
	return cfg, nil
}

// presetTuning is what a difficulty preset changes. Zero lives or cap keep
// the configured value.
type presetTuning struct {
	progression  bool
	initialLevel float64
	lives        int
	cap          float64
}

var presetTunings = map[DifficultyPreset]presetTuning{
	DifficultyEasy:   {progression: true, lives: 5, cap: 1.0},
	DifficultyNormal: {progression: true},
	DifficultyHard:   {progression: true, initialLevel: 0.5, lives: 2},
	DifficultyFixed:  {},
}

// ApplySlicerPreset adjusts cfg for a preset. Unknown presets are ignored.
func ApplySlicerPreset(cfg *SlicerConfig, preset DifficultyPreset) {
	t, ok := presetTunings[preset]
	if !ok {
		return
	}
	cfg.Difficulty.Enabled = t.progression
	cfg.Difficulty.InitialLevel = t.initialLevel
	if t.lives > 0 {
		cfg.Gameplay.Lives = t.lives
	}
	if t.cap > 0 {
		cfg.Difficulty.Cap = t.cap
	}
}
