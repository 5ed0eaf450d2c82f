package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"github.com/avitaltamir/arbor/internal/components/filetree"
	"github.com/avitaltamir/arbor/internal/components/preview"
	"github.com/avitaltamir/arbor/internal/config"
	"github.com/avitaltamir/arbor/internal/explorer"
	"github.com/avitaltamir/arbor/internal/git"
	"github.com/avitaltamir/arbor/internal/layout"
	"github.com/avitaltamir/arbor/internal/logging"
	"github.com/avitaltamir/arbor/internal/state"
	"github.com/avitaltamir/arbor/internal/theme"
)

// Version is the application version, set at build time via ldflags
var Version = "dev"

// GitStatusMsg carries updated git status
type GitStatusMsg struct {
	Status *git.Status
	IsRepo bool
}

// FileChangeMsg is sent when the file system changes
type FileChangeMsg struct {
	Path string
	Op   fsnotify.Op
}

// Model is the root application model.
type Model struct {
	// Child components
	fileTree filetree.Model
	preview  preview.Model

	// Focus state
	focus     PanelID
	prevFocus PanelID
	showHelp  bool

	// Layout
	layout           layout.Layout
	leftPanelPercent int
	keys             KeyMap

	// Explorer configuration; rebuilt wholesale on option toggles
	// since the ignore filter is immutable.
	opts      explorer.Options
	cfg       config.Config
	decorator *git.Decorator

	// Git
	gitProvider    *git.ShellProvider
	gitStatus      *git.Status
	isGitRepo      bool
	rootPath       string
	gitRefreshTime time.Time

	// File watcher
	watcher              *fsnotify.Watcher
	pendingFileChanges   map[string]fsnotify.Op
	fileChangeDebouncing bool

	// Window dimensions
	width  int
	height int
	ready  bool

	// Transient status bar text (scan errors, notices)
	statusText string
}

// New creates the application model rooted at rootPath.
func New(rootPath string, cfg config.Config, opts explorer.Options) Model {
	gitProvider := git.NewShellProvider(rootPath)
	isRepo := gitProvider.IsRepo()

	decorator := git.NewDecorator(rootPath)
	var hook explorer.DecorateFunc
	if cfg.GitStatus && isRepo {
		hook = decorator.Decorate
	}

	exp := explorer.New(opts, hook)
	ft := filetree.New(exp, rootPath)
	ft = ft.Focus()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logging.L().WithError(err).Warn("file watcher unavailable")
	}

	saved := state.Load()
	theme.SetThemeIndex(saved.ThemeIndex)
	leftPanelPercent := saved.LeftPanelPercent
	if leftPanelPercent < layout.MinLeftPanelPercent || leftPanelPercent > layout.MaxLeftPanelPercent {
		leftPanelPercent = layout.DefaultLeftPanelPercent
	}

	return Model{
		fileTree:           ft,
		preview:            preview.New(),
		focus:              PanelFileTree,
		leftPanelPercent:   leftPanelPercent,
		keys:               DefaultKeyMap(),
		opts:               opts,
		cfg:                cfg,
		decorator:          decorator,
		gitProvider:        gitProvider,
		isGitRepo:          isRepo,
		rootPath:           rootPath,
		watcher:            watcher,
		pendingFileChanges: make(map[string]fsnotify.Op),
	}
}

// Init initializes the application.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.fileTree.Init(),
		m.preview.Init(),
	}

	if m.cfg.GitStatus && m.isGitRepo {
		cmds = append(cmds, m.refreshGitStatus(), gitTick())
	}

	if m.watcher != nil {
		m.addWatchRecursive(m.rootPath)
		cmds = append(cmds, m.watchFilesCmd())
	}

	return tea.Batch(cmds...)
}

// addWatchRecursive adds watches for a directory and its subdirectories
func (m Model) addWatchRecursive(root string) {
	if m.watcher == nil {
		return
	}

	skipDirs := map[string]bool{
		".git":         true,
		"node_modules": true,
		"vendor":       true,
		".venv":        true,
		"__pycache__":  true,
		".cache":       true,
		"dist":         true,
		"build":        true,
	}

	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}

		if info.IsDir() {
			name := info.Name()
			if skipDirs[name] {
				return filepath.SkipDir
			}

			// Skip hidden directories (except root)
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}

			m.watcher.Add(path)
		}
		return nil
	})

	// Note: We don't watch .git to avoid lock file conflicts. Git
	// status is refreshed periodically via ticker instead.
}

// watchFilesCmd returns a command that listens for file system changes
func (m Model) watchFilesCmd() tea.Cmd {
	return func() tea.Msg {
		if m.watcher == nil {
			return nil
		}

		for {
			select {
			case event, ok := <-m.watcher.Events:
				if !ok {
					return nil // Channel closed
				}
				return FileChangeMsg{Path: event.Name, Op: event.Op}
			case <-m.watcher.Errors:
				// Ignore errors but continue watching
				continue
			}
		}
	}
}

// gitDebounceInterval is the minimum time between git refreshes
const gitDebounceInterval = 2 * time.Second

// gitTickInterval is how often we poll git status
const gitTickInterval = 10 * time.Second

// fileChangeDebounceInterval is the minimum time between file change processing
const fileChangeDebounceInterval = 500 * time.Millisecond

// refreshGitStatus fetches the current git status
func (m Model) refreshGitStatus() tea.Cmd {
	return func() tea.Msg {
		if !m.gitProvider.IsRepo() {
			return GitStatusMsg{IsRepo: false}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		status, _ := m.gitProvider.GetStatus(ctx)
		return GitStatusMsg{Status: status, IsRepo: true}
	}
}

// refreshGitStatusDebounced only refreshes if enough time has passed since last refresh
func (m *Model) refreshGitStatusDebounced() tea.Cmd {
	now := time.Now()
	if now.Sub(m.gitRefreshTime) < gitDebounceInterval {
		return nil
	}
	m.gitRefreshTime = now
	return m.refreshGitStatus()
}

type gitTickMsg struct{}

// gitTick returns a command that sends a gitTickMsg after the tick interval
func gitTick() tea.Cmd {
	return tea.Tick(gitTickInterval, func(t time.Time) tea.Msg {
		return gitTickMsg{}
	})
}

// fileChangeDebounceMsg is sent after the debounce interval to process pending file changes
type fileChangeDebounceMsg struct{}

// scheduleFileChangeDebounce schedules processing of pending file changes
func (m *Model) scheduleFileChangeDebounce() tea.Cmd {
	if m.fileChangeDebouncing {
		return nil
	}
	m.fileChangeDebouncing = true
	return tea.Tick(fileChangeDebounceInterval, func(t time.Time) tea.Msg {
		return fileChangeDebounceMsg{}
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout = layout.Calculate(msg.Width, msg.Height, m.leftPanelPercent)
		m.ready = true
		m = m.updateSizes()
		return m, nil

	case GitStatusMsg:
		// Skip update if nothing changed (reduces flickering)
		if m.isGitRepo == msg.IsRepo && gitStatusEqual(m.gitStatus, msg.Status) {
			return m, nil
		}
		m.isGitRepo = msg.IsRepo
		m.gitStatus = msg.Status
		m.decorator.SetStatus(msg.Status)
		if m.cfg.GitStatus {
			m.fileTree.Decorate(m.decorator.Decorate)
		}
		return m, nil

	case gitTickMsg:
		nextTick := gitTick()
		if cmd := m.refreshGitStatusDebounced(); cmd != nil {
			return m, tea.Batch(cmd, nextTick)
		}
		return m, nextTick

	case FileChangeMsg:
		// Always continue watching for more events
		cmds = append(cmds, m.watchFilesCmd())

		// Skip empty messages (from error handling)
		if msg.Path == "" {
			return m, tea.Batch(cmds...)
		}

		// If a new directory was created, add a watch for it
		if msg.Op&fsnotify.Create != 0 {
			if info, err := os.Stat(msg.Path); err == nil && info.IsDir() {
				name := filepath.Base(msg.Path)
				if !strings.HasPrefix(name, ".") && name != "node_modules" && name != "vendor" {
					m.watcher.Add(msg.Path)
				}
			}
		}

		// Debounce multiple rapid changes
		m.pendingFileChanges[msg.Path] = msg.Op
		if cmd := m.scheduleFileChangeDebounce(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case fileChangeDebounceMsg:
		m.fileChangeDebouncing = false

		// Collect unique directories to refresh
		dirsToRefresh := make(map[string]bool)
		for path := range m.pendingFileChanges {
			dirsToRefresh[filepath.Dir(path)] = true
		}
		m.pendingFileChanges = make(map[string]fsnotify.Op)

		for dirPath := range dirsToRefresh {
			if cmd := m.fileTree.RefreshDir(dirPath); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}

		if m.cfg.GitStatus && m.isGitRepo {
			if cmd := m.refreshGitStatusDebounced(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.saveState()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.FocusTree):
			m = m.setFocus(PanelFileTree)
			return m, nil

		case key.Matches(msg, m.keys.FocusView):
			m = m.setFocus(PanelPreview)
			return m, nil

		case key.Matches(msg, m.keys.CycleTheme):
			theme.NextTheme()
			return m, nil

		case key.Matches(msg, m.keys.ShrinkTree):
			m.leftPanelPercent -= 5
			if m.leftPanelPercent < layout.MinLeftPanelPercent {
				m.leftPanelPercent = layout.MinLeftPanelPercent
			}
			m.layout = layout.Calculate(m.width, m.height, m.leftPanelPercent)
			m = m.updateSizes()
			return m, nil

		case key.Matches(msg, m.keys.WidenTree):
			m.leftPanelPercent += 5
			if m.leftPanelPercent > layout.MaxLeftPanelPercent {
				m.leftPanelPercent = layout.MaxLeftPanelPercent
			}
			m.layout = layout.Calculate(m.width, m.height, m.leftPanelPercent)
			m = m.updateSizes()
			return m, nil
		}

		// Any other key closes help
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

	case FocusMsg:
		m = m.setFocus(msg.Target)
		return m, nil

	case filetree.SelectMsg:
		// File selected in the tree: load it into the preview pane.
		m.statusText = ""
		return m, preview.LoadFile(msg.Path)

	case filetree.ScanErrorMsg:
		m.statusText = msg.Err.Error()
		return m, nil

	case filetree.ToggleDotfilesMsg:
		m.opts.ShowDotfiles = !m.opts.ShowDotfiles
		m = m.rebuildExplorer()
		return m, nil

	case preview.FileLoadedMsg:
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case ErrorMsg:
		m.statusText = msg.Err.Error()
		return m, nil

	case StatusMsg:
		m.statusText = msg.Text
		return m, nil

	case tea.MouseMsg:
		// Route mouse events by position so either panel can scroll
		// without holding focus.
		targetPanel := m.panelAtPosition(msg.X, msg.Y)

		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft &&
			targetPanel != PanelNone && targetPanel != m.focus {
			m = m.setFocus(targetPanel)
		}

		var cmd tea.Cmd
		switch targetPanel {
		case PanelFileTree:
			m.fileTree, cmd = m.fileTree.Update(msg)
		case PanelPreview:
			adjusted := msg
			adjusted.X = msg.X - m.layout.LeftWidth
			m.preview, cmd = m.preview.Update(adjusted)
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	// Route remaining messages to the focused component
	if cmd := m.routeToFocused(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// rebuildExplorer swaps in a fresh explorer after an option change and
// re-applies git decorations to the rebuilt tree.
func (m Model) rebuildExplorer() Model {
	var hook explorer.DecorateFunc
	if m.cfg.GitStatus && m.isGitRepo {
		hook = m.decorator.Decorate
	}
	m.fileTree.SetExplorer(explorer.New(m.opts, hook))
	return m
}

// updateSizes updates the size of all child components.
func (m Model) updateSizes() Model {
	leftWidth := m.layout.LeftWidth - 2
	rightWidth := m.layout.RightWidth - 2
	mainHeight := m.layout.MainHeight - 2

	if leftWidth < 0 {
		leftWidth = 0
	}
	if rightWidth < 0 {
		rightWidth = 0
	}
	if mainHeight < 0 {
		mainHeight = 0
	}

	m.fileTree = m.fileTree.SetSize(leftWidth, mainHeight)
	m.preview = m.preview.SetSize(rightWidth, mainHeight)

	return m
}

// routeToFocused routes a message to the focused component.
func (m *Model) routeToFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch m.focus {
	case PanelFileTree:
		m.fileTree, cmd = m.fileTree.Update(msg)
	case PanelPreview:
		m.preview, cmd = m.preview.Update(msg)
	}

	return cmd
}

// View renders the application.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	leftPanel := m.renderTreePanel()
	rightPanel := m.renderPreviewPanel()

	mainArea := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, rightPanel)
	statusBar := m.renderStatusBar()

	view := lipgloss.JoinVertical(lipgloss.Left, mainArea, statusBar)

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return view
}

// renderTreePanel renders the file tree panel.
func (m Model) renderTreePanel() string {
	focused := m.focus == PanelFileTree

	var hints string
	if focused {
		hints = "↑↓:nav  enter:open  .:dotfiles"
	}

	opts := theme.PanelTitleOptions{
		Title:         "TREE",
		ScrollPercent: -1,
		BottomHints:   hints,
	}

	return theme.RenderPanelWithTitle(
		m.fileTree.View(),
		opts,
		m.layout.LeftWidth,
		m.layout.MainHeight,
		focused,
	)
}

// renderPreviewPanel renders the preview panel.
func (m Model) renderPreviewPanel() string {
	focused := m.focus == PanelPreview

	title := "PREVIEW"
	if m.preview.Path() != "" {
		title = filepath.Base(m.preview.Path())
	}

	var hints string
	if focused {
		hints = "↑↓:scroll"
	}

	opts := theme.PanelTitleOptions{
		Title:         title,
		ScrollPercent: m.preview.ScrollPercent(),
		BottomHints:   hints,
	}

	return theme.RenderPanelWithTitle(
		m.preview.View(),
		opts,
		m.layout.RightWidth,
		m.layout.MainHeight,
		focused,
	)
}

// renderStatusBar renders the status bar.
func (m Model) renderStatusBar() string {
	style := theme.StatusBarStyle.Width(m.layout.TotalWidth)

	// Branch info
	var branch string
	if m.isGitRepo && m.gitStatus != nil && m.gitStatus.Branch != "" {
		branchIcon := lipgloss.NewStyle().
			Foreground(theme.MagentaBlaze).
			Render(theme.GitBranchIcon)
		branchName := lipgloss.NewStyle().
			Foreground(theme.CyberCyan).
			Render(" " + m.gitStatus.Branch)

		var dirty string
		if m.gitStatus.IsDirty {
			dirty = lipgloss.NewStyle().
				Foreground(theme.ElectricYellow).
				Render(" ●")
		}

		var aheadBehind string
		if m.gitStatus.Ahead > 0 {
			aheadBehind += lipgloss.NewStyle().
				Foreground(theme.MatrixGreen).
				Render(" ↑" + itoa(m.gitStatus.Ahead))
		}
		if m.gitStatus.Behind > 0 {
			aheadBehind += lipgloss.NewStyle().
				Foreground(theme.NeonRed).
				Render(" ↓" + itoa(m.gitStatus.Behind))
		}

		branch = " " + branchIcon + branchName + dirty + aheadBehind
	}

	// Transient notice (scan errors and the like)
	var notice string
	if m.statusText != "" {
		notice = lipgloss.NewStyle().
			Foreground(theme.NeonRed).
			Render(" │ " + m.statusText)
	}

	panelInfo := lipgloss.NewStyle().
		Foreground(theme.MutedLavender).
		Render(" │ " + m.focus.String())

	help := lipgloss.NewStyle().
		Foreground(theme.DimPurple).
		Render(" │ ^H help │ ^Q quit")

	themeName := lipgloss.NewStyle().
		Foreground(theme.LaserPurple).
		Render(theme.CurrentTheme().Name)

	version := lipgloss.NewStyle().
		Foreground(theme.DimPurple).
		Render(Version)

	left := branch + notice + panelInfo + help
	right := themeName + " │ " + version

	gap := m.layout.TotalWidth - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 0 {
		gap = 0
	}

	return style.Render(left + lipgloss.NewStyle().Width(gap).Render("") + right)
}

// itoa converts int to string without importing strconv
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var s string
	for n > 0 {
		s = string(rune('0'+n%10)) + s
		n /= 10
	}
	return s
}

// gitStatusEqual compares two git statuses for equality
func gitStatusEqual(a, b *git.Status) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Branch != b.Branch || a.IsDirty != b.IsDirty || a.Ahead != b.Ahead || a.Behind != b.Behind {
		return false
	}
	if len(a.Files) != len(b.Files) {
		return false
	}
	for path, statusA := range a.Files {
		statusB, ok := b.Files[path]
		if !ok || statusA != statusB {
			return false
		}
	}
	return true
}

// setFocus changes focus to the specified panel.
func (m Model) setFocus(target PanelID) Model {
	switch m.focus {
	case PanelFileTree:
		m.fileTree = m.fileTree.Blur()
	case PanelPreview:
		m.preview = m.preview.Blur()
	}

	m.prevFocus = m.focus
	m.focus = target

	switch target {
	case PanelFileTree:
		m.fileTree = m.fileTree.Focus()
	case PanelPreview:
		m.preview = m.preview.Focus()
	}

	return m
}

// Focus returns the currently focused panel.
func (m Model) Focus() PanelID {
	return m.focus
}

// panelAtPosition returns which panel contains the given screen coordinates.
func (m Model) panelAtPosition(x, y int) PanelID {
	if y >= m.layout.MainHeight {
		return PanelNone // Status bar
	}
	if x < m.layout.LeftWidth {
		return PanelFileTree
	}
	return PanelPreview
}

// renderHelpOverlay renders the help overlay.
func (m Model) renderHelpOverlay() string {
	helpLines := []string{
		"╔══════════════════════════════════════════════════╗",
		"║                   ARBOR HELP                     ║",
		"╠═════════════════════════╤════════════════════════╣",
		"║ NAVIGATION              │ TREE                   ║",
		"║   Up/k Down/j  Move     │   .       Dotfiles     ║",
		"║   Left/h      Collapse  │   R       Reload       ║",
		"║   Right/l     Expand    │   /       Filter       ║",
		"║   Enter       Open      │   Esc     Clear filter ║",
		"║   PgUp/PgDn   Page      │                        ║",
		"║   Home/g End/G Jump     │ PANELS                 ║",
		"║                         │   Alt+1   Focus tree   ║",
		"║ ACTIONS                 │   Alt+2   Focus preview║",
		"║   Alt+T  Cycle theme    │   Alt+[/] Resize       ║",
		"║   Ctrl+H Toggle help    │                        ║",
		"║   Ctrl+Q Quit           │  Press any key to close║",
		"╚═════════════════════════╧════════════════════════╝",
	}

	helpContent := lipgloss.JoinVertical(lipgloss.Left, helpLines...)

	helpStyle := lipgloss.NewStyle().
		Foreground(theme.CyberCyan).
		Bold(true).
		Padding(1, 2)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		helpStyle.Render(helpContent),
	)
}

// saveState persists cosmetic UI choices across runs.
func (m Model) saveState() {
	s := state.State{
		ThemeIndex:       theme.CurrentThemeIndex(),
		LeftPanelPercent: m.leftPanelPercent,
	}
	// State persistence is best-effort
	_ = state.Save(s)
}

// Close releases resources held by the app.
func (m Model) Close() {
	if m.watcher != nil {
		m.watcher.Close()
	}
}
