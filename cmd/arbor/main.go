package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/avitaltamir/arbor/internal/app"
	"github.com/avitaltamir/arbor/internal/config"
	"github.com/avitaltamir/arbor/internal/explorer"
	"github.com/avitaltamir/arbor/internal/logging"
	"github.com/avitaltamir/arbor/internal/theme"
)

var version = "dev"

var (
	flagConfig       string
	flagShowDotfiles bool
	flagNoGitignore  bool
	flagNoGroup      bool
	flagNoGit        bool
)

var rootCmd = &cobra.Command{
	Use:     "arbor [path]",
	Short:   "A lazily-expanded file tree for the terminal",
	Long:    "Arbor shows a directory hierarchy as an interactive tree with git status decorations, grouping of empty directory chains, and a syntax-highlighted preview pane.",
	Args:    cobra.MaximumNArgs(1),
	Version: version,
	RunE:    run,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "config file (default ~/.config/arbor/config.yaml)")
	rootCmd.Flags().BoolVar(&flagShowDotfiles, "show-dotfiles", false, "show entries starting with a dot")
	rootCmd.Flags().BoolVar(&flagNoGitignore, "no-gitignore", false, "do not filter entries matched by the root .gitignore")
	rootCmd.Flags().BoolVar(&flagNoGroup, "no-group", false, "do not collapse chains of single-child directories")
	rootCmd.Flags().BoolVar(&flagNoGit, "no-git", false, "disable git status decorations")
}

func run(cmd *cobra.Command, args []string) error {
	app.Version = version

	var cfg config.Config
	var err error
	if flagConfig != "" {
		cfg, err = config.Load(flagConfig)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}

	if flagShowDotfiles {
		cfg.ShowDotfiles = true
	}
	if flagNoGitignore {
		cfg.RespectGitignore = false
	}
	if flagNoGroup {
		cfg.GroupEmptyDirs = false
	}
	if flagNoGit {
		cfg.GitStatus = false
	}

	rootPath := "."
	if len(args) == 1 {
		rootPath = args[0]
	}
	rootPath, err = filepath.Abs(rootPath)
	if err != nil {
		return err
	}
	if info, err := os.Stat(rootPath); err != nil {
		return err
	} else if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", rootPath)
	}

	logFile, err := logging.Setup(cfg.LogLevel)
	if err == nil && logFile != nil {
		defer logFile.Close()
	}
	logging.L().WithField("root", rootPath).Info("starting")

	theme.CurrentTheme().UseNerdFonts = cfg.NerdFonts

	opts := explorer.Options{
		ShowDotfiles:     cfg.ShowDotfiles,
		RespectGitignore: cfg.RespectGitignore,
		Ignore:           cfg.Ignore,
		GroupEmptyDirs:   cfg.GroupEmptyDirs,
	}
	if cfg.RespectGitignore {
		if data, err := os.ReadFile(filepath.Join(rootPath, ".gitignore")); err == nil {
			opts.GitignoreContent = string(data)
		}
	}

	m := app.New(rootPath, cfg, opts)
	defer m.Close()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
