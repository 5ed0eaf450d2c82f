// Package config loads the explorer configuration from the user's
// config directory, falling back to defaults when no file exists.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	configDirName  = ".config"
	appDirName     = "arbor"
	configFileName = "config.yaml"
)

// Config holds all user-tunable options.
type Config struct {
	// ShowDotfiles includes names starting with "." in the tree.
	ShowDotfiles bool `yaml:"show_dotfiles"`

	// RespectGitignore feeds the root .gitignore into the ignore filter.
	RespectGitignore bool `yaml:"respect_gitignore"`

	// Ignore lists literal names or "*.ext" wildcards to exclude.
	Ignore []string `yaml:"ignore"`

	// GroupEmptyDirs collapses single-child directory chains into one row.
	GroupEmptyDirs bool `yaml:"group_empty_dirs"`

	// GitStatus enables git status decoration of tree entries.
	GitStatus bool `yaml:"git_status"`

	// NerdFonts enables Nerd Font icons in the tree.
	NerdFonts bool `yaml:"nerd_fonts"`

	// LogLevel sets the file-logger verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		ShowDotfiles:     false,
		RespectGitignore: true,
		Ignore:           []string{".git"},
		GroupEmptyDirs:   true,
		GitStatus:        true,
		NerdFonts:        true,
		LogLevel:         "info",
	}
}

// Path returns the config file location (~/.config/arbor/config.yaml).
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, appDirName, configFileName), nil
}

// Load reads the configuration from path. A missing file yields the
// defaults without error; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads the configuration from the standard location.
func LoadDefault() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return Load(path)
}
