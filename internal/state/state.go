package state

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	configDirName = ".config"
	appDirName    = "arbor"
	stateFileName = "state.json"
)

// State represents the persisted UI state. Behavioral options live in
// the config file; this only remembers cosmetic choices across runs.
type State struct {
	// ThemeIndex is the index of the selected theme
	ThemeIndex int `json:"theme_index"`
	// LeftPanelPercent is the width percentage of the tree panel (15-60)
	LeftPanelPercent int `json:"left_panel_percent,omitempty"`
}

// DefaultState returns the default state for first run.
func DefaultState() State {
	return State{
		ThemeIndex: 0,
	}
}

// configDir returns the path to the config directory (~/.config/arbor).
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, appDirName), nil
}

// statePath returns the global path to the state file.
func statePath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, stateFileName), nil
}

// Load reads the persisted UI state.
// Returns default state if the file doesn't exist or can't be read.
func Load() State {
	path, err := statePath()
	if err != nil {
		return DefaultState()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultState()
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return DefaultState()
	}

	return s
}

// Save writes the persisted UI state.
func Save(s State) error {
	dir, err := configDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := statePath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
