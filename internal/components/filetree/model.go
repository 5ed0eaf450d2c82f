package filetree

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avitaltamir/arbor/internal/components"
	"github.com/avitaltamir/arbor/internal/explorer"
	"github.com/avitaltamir/arbor/internal/logging"
	"github.com/avitaltamir/arbor/internal/theme"
)

// Messages
type (
	// SelectMsg is sent when a file is selected (to open it).
	SelectMsg struct {
		Path string
	}

	// ScanErrorMsg surfaces a populate/refresh diagnostic to the app.
	ScanErrorMsg struct {
		Err error
	}

	// ToggleDotfilesMsg asks the app to flip the dotfile option and
	// rebuild the tree with a fresh filter.
	ToggleDotfilesMsg struct{}
)

// KeyMap defines the key bindings for the file tree.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Enter    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Toggle   key.Binding
	Dotfiles key.Binding
	Reload   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("space"),
		),
		Dotfiles: key.NewBinding(
			key.WithKeys("."),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
		),
	}
}

// row is one visible line: a node plus its indentation depth.
type row struct {
	node  *explorer.Node
	depth int
}

// Model is the file tree component. It owns the top-level entry list
// and drives the explorer's Populate/Refresh against it; all expansion
// state beyond Open flags (which directories have ever been populated)
// lives here, not in the core.
type Model struct {
	components.Base

	exp      *explorer.Explorer
	rootPath string
	entries  []*explorer.Node

	// populated remembers which rows have had Populate run, since an
	// expanded-then-emptied directory still counts as expanded.
	populated map[*explorer.Node]bool
	rootReady bool

	visible []row
	cursor  int
	offset  int

	// Search/filter functionality
	searching   bool
	searchInput textinput.Model
	searchQuery string
	matchCount  int

	scanErr string

	keys  KeyMap
	theme *theme.Theme
}

// New creates a file tree rooted at rootPath using the given explorer.
func New(exp *explorer.Explorer, rootPath string) Model {
	ti := textinput.New()
	ti.Placeholder = "Filter files..."
	ti.CharLimit = 100

	m := Model{
		exp:         exp,
		rootPath:    rootPath,
		populated:   make(map[*explorer.Node]bool),
		keys:        DefaultKeyMap(),
		theme:       theme.DefaultTheme(),
		searchInput: ti,
	}
	m.loadRoot()
	return m
}

// Init implements tea.Model; the root listing is populated in New.
func (m Model) Init() tea.Cmd {
	return nil
}

// loadRoot populates the root entry list in place.
func (m *Model) loadRoot() {
	if m.rootReady {
		return
	}
	if err := m.exp.Populate(&m.entries, m.rootPath, nil); err != nil {
		logging.L().WithError(err).Warn("populating root")
		m.scanErr = err.Error()
		return
	}
	m.rootReady = true
	m.rebuildVisible()
}

// SetExplorer swaps the explorer (after an option change) and reloads
// the tree from scratch. Expansion state is lost by design: the ignore
// filter is immutable, so a new filter means a new tree.
func (m *Model) SetExplorer(exp *explorer.Explorer) {
	m.exp = exp
	m.entries = nil
	m.populated = make(map[*explorer.Node]bool)
	m.rootReady = false
	m.cursor = 0
	m.offset = 0
	m.loadRoot()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.Focused() {
			return m, nil
		}
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "/" {
		m.searching = true
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		return m, textinput.Blink
	}

	if msg.String() == "esc" && m.searchQuery != "" {
		m.searchQuery = ""
		m.rebuildVisible()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.PageUp):
		_, h := m.Size()
		m.moveCursor(-h / 2)

	case key.Matches(msg, m.keys.PageDown):
		_, h := m.Size()
		m.moveCursor(h / 2)

	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
		m.offset = 0

	case key.Matches(msg, m.keys.End):
		if len(m.visible) > 0 {
			m.cursor = len(m.visible) - 1
			m.ensureVisible()
		}

	case key.Matches(msg, m.keys.Enter), key.Matches(msg, m.keys.Right):
		return m.handleSelect()

	case key.Matches(msg, m.keys.Left):
		return m.handleBack()

	case key.Matches(msg, m.keys.Toggle):
		return m.handleSelect()

	case key.Matches(msg, m.keys.Dotfiles):
		return m, func() tea.Msg { return ToggleDotfilesMsg{} }

	case key.Matches(msg, m.keys.Reload):
		return m, m.RefreshDir(m.rootPath)
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.searchQuery = m.searchInput.Value()
		m.searchInput.Blur()
		m.rebuildVisible()
		if len(m.visible) > 0 {
			m.cursor = 0
			m.offset = 0
		}
		return m, nil

	case "esc":
		m.searching = false
		m.searchQuery = ""
		m.searchInput.Blur()
		m.rebuildVisible()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	m.searchQuery = m.searchInput.Value()
	m.rebuildVisible()

	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(-3)
	case tea.MouseButtonWheelDown:
		m.moveCursor(3)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			break
		}
		clickedIdx := m.offset + msg.Y - 1 // Account for the panel's top border
		if clickedIdx >= 0 && clickedIdx < len(m.visible) {
			m.cursor = clickedIdx
			return m.handleSelect()
		}
	}
	return m, nil
}

func (m Model) handleSelect() (Model, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return m, nil
	}

	n := m.visible[m.cursor].node

	if n.Navigable() {
		if n.Open {
			n.Open = false
			m.rebuildVisible()
			return m, nil
		}
		cmd := m.expand(n)
		m.rebuildVisible()
		return m, cmd
	}

	path := n.AbsolutePath
	return m, func() tea.Msg {
		return SelectMsg{Path: path}
	}
}

// expand opens a navigable row, populating or re-syncing its entries.
func (m *Model) expand(n *explorer.Node) tea.Cmd {
	n.Open = true

	var err error
	if !m.populated[n] {
		err = m.exp.Populate(&n.Entries, n.AbsolutePath, n)
		if err == nil {
			m.populated[n] = true
		}
	} else {
		// Already expanded once; re-sync against disk instead of
		// rebuilding, so nested open state survives.
		err = m.exp.Refresh(&n.Entries, n.AbsolutePath, n)
		if err == nil {
			m.prunePopulated()
		}
	}

	if err != nil {
		logging.L().WithError(err).Warn("expanding directory")
		n.Open = false
		return func() tea.Msg { return ScanErrorMsg{Err: err} }
	}
	return nil
}

func (m Model) handleBack() (Model, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return m, nil
	}

	n := m.visible[m.cursor].node

	if n.Navigable() && n.Open {
		n.Open = false
		m.rebuildVisible()
		return m, nil
	}

	// Move to the nearest shallower row above: the parent.
	depth := m.visible[m.cursor].depth
	for i := m.cursor - 1; i >= 0; i-- {
		if m.visible[i].depth < depth {
			m.cursor = i
			m.ensureVisible()
			break
		}
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	_, h := m.Size()
	viewportHeight := h - 1 // Keep a row free for the filter bar

	if viewportHeight <= 0 {
		return
	}

	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+viewportHeight {
		m.offset = m.cursor - viewportHeight + 1
	}
}

func (m *Model) rebuildVisible() {
	m.visible = m.visible[:0]
	m.matchCount = 0
	m.flattenInto(m.entries, 0)

	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) flattenInto(entries []*explorer.Node, depth int) {
	for _, n := range entries {
		if m.searchQuery != "" && !m.subtreeMatches(n) {
			continue
		}
		if m.searchQuery != "" && !n.Navigable() {
			m.matchCount++
		}
		m.visible = append(m.visible, row{node: n, depth: depth})
		if n.Navigable() && n.Open {
			m.flattenInto(n.Entries, depth+1)
		}
	}
}

// subtreeMatches reports whether a node or any cached descendant
// matches the active filter, using the precomputed match names.
func (m *Model) subtreeMatches(n *explorer.Node) bool {
	query := strings.ToLower(m.searchQuery)
	if strings.Contains(n.GroupTail().MatchName, query) || strings.Contains(n.MatchName, query) {
		return true
	}
	for _, child := range n.Entries {
		if m.subtreeMatches(child) {
			return true
		}
	}
	return false
}

// RefreshDir re-syncs the entry list owning the given directory path.
// If the path is a file, its parent directory is refreshed.
func (m *Model) RefreshDir(path string) tea.Cmd {
	if !m.rootReady {
		return nil
	}

	path = filepath.Clean(path)
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		path = filepath.Dir(path)
	}

	var err error
	if path == m.rootPath {
		err = m.exp.Refresh(&m.entries, m.rootPath, nil)
	} else {
		n := m.findOwner(m.entries, path)
		if n == nil || !m.populated[n] {
			return nil
		}
		err = m.exp.Refresh(&n.Entries, n.AbsolutePath, n)
	}

	if err != nil {
		logging.L().WithError(err).Warn("refreshing directory")
		m.scanErr = err.Error()
		return func() tea.Msg { return ScanErrorMsg{Err: err} }
	}

	m.scanErr = ""
	m.prunePopulated()
	m.rebuildVisible()
	return nil
}

// prunePopulated drops bookkeeping for nodes a refresh removed from
// the tree, so the map never accumulates dead pointers.
func (m *Model) prunePopulated() {
	live := make(map[*explorer.Node]bool, len(m.populated))
	collectLive(m.entries, live)
	for n := range m.populated {
		if !live[n] {
			delete(m.populated, n)
		}
	}
}

func collectLive(entries []*explorer.Node, live map[*explorer.Node]bool) {
	for _, n := range entries {
		for link := n; link != nil; link = link.GroupNext {
			live[link] = true
		}
		collectLive(n.Entries, live)
	}
}

// findOwner locates the row node whose scan covers the given directory:
// the node itself or any link of its grouping chain. Matching an
// intermediate link returns the owning row so Refresh runs from the
// chain top, where the continuation/sever logic lives.
func (m *Model) findOwner(entries []*explorer.Node, path string) *explorer.Node {
	for _, n := range entries {
		if !n.Navigable() {
			continue
		}
		for link := n; link != nil; link = link.GroupNext {
			if link.AbsolutePath == path {
				return n
			}
		}
		if strings.HasPrefix(path, n.AbsolutePath+string(filepath.Separator)) {
			if found := m.findOwner(n.Entries, path); found != nil {
				return found
			}
			return nil
		}
	}
	return nil
}

// View renders the file tree.
func (m Model) View() string {
	w, h := m.Size()
	if w == 0 || h == 0 {
		return ""
	}

	searchBarHeight := 0
	if m.searching || m.searchQuery != "" {
		searchBarHeight = 1
	}

	contentHeight := h - searchBarHeight

	var lines []string
	for i := m.offset; i < len(m.visible) && len(lines) < contentHeight; i++ {
		lines = append(lines, m.renderRow(m.visible[i], i == m.cursor, w-4))
	}

	for len(lines) < contentHeight {
		lines = append(lines, "")
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)

	if m.searching || m.searchQuery != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, m.renderSearchBar())
	}

	return content
}

func (m Model) renderSearchBar() string {
	if m.searching {
		return "/" + m.searchInput.View()
	}

	filterStyle := lipgloss.NewStyle().Foreground(theme.CyberCyan)
	bar := filterStyle.Render("/ " + m.searchQuery)
	if m.matchCount > 0 {
		countStyle := lipgloss.NewStyle().Foreground(theme.MutedLavender)
		bar += countStyle.Render(" (" + itoa(m.matchCount) + " matches)")
	}
	return bar
}

// itoa converts an int to string without importing strconv.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var result []byte
	for n > 0 {
		result = append([]byte{byte('0' + n%10)}, result...)
		n /= 10
	}
	return string(result)
}

func (m Model) renderRow(r row, selected bool, maxWidth int) string {
	indent := strings.Repeat("  ", r.depth)

	n := r.node
	var icon, name string
	switch {
	case n.Kind == explorer.KindDirectory || (n.Kind == explorer.KindSymlink && n.LinkDir):
		icon = m.theme.GetDirIcon(n.GroupTail().Name, n.Open)
		name = n.GroupedName() + "/"
	case n.Kind == explorer.KindSymlink:
		icon = m.theme.GetFileIcon("")
		name = n.Name + " → " + filepath.Base(n.LinkTarget)
	default:
		ext := ""
		if n.Extension != "" {
			ext = "." + n.Extension
		}
		icon = m.theme.GetFileIcon(ext)
		name = n.Name
		if n.Executable {
			name += "*"
		}
	}

	line := indent + icon + " " + name

	badge := ""
	if n.Decoration != "" {
		badge = m.renderBadge(n.Decoration)
	}

	// Truncate if too long (leave room for the badge)
	badgeWidth := lipgloss.Width(badge)
	availableWidth := maxWidth - badgeWidth - 1
	if availableWidth > 1 && lipgloss.Width(line) > availableWidth {
		line = truncateToWidth(line, availableWidth-1) + "…"
	}

	var style lipgloss.Style
	switch {
	case selected:
		style = theme.FileTreeSelected.Width(maxWidth - badgeWidth - 1)
	case n.Navigable():
		style = theme.FileTreeDir
	default:
		style = theme.FileTreeFile
	}

	result := style.Render(line)
	if badge != "" {
		result += " " + badge
	}
	return result
}

// truncateToWidth cuts a string at a rune boundary so it renders in at
// most maxWidth cells. Icon runes can be multi-byte and double-width,
// so both byte slicing and cell counting by bytes are wrong here.
func truncateToWidth(s string, maxWidth int) string {
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}

func (m Model) renderBadge(badge string) string {
	var color lipgloss.Color
	switch badge {
	case "A":
		color = theme.MatrixGreen
	case "D", "!":
		color = theme.NeonRed
	case "?":
		color = theme.LaserPurple
	default:
		color = theme.ElectricYellow
	}
	return lipgloss.NewStyle().Foreground(color).Render(badge)
}

// Root returns the root path.
func (m Model) Root() string {
	return m.rootPath
}

// Entries exposes the top-level entry list (read-only for callers).
func (m Model) Entries() []*explorer.Node {
	return m.entries
}

// SelectedPath returns the currently selected path. For a grouped row
// this is the chain tail, the directory that actually holds children.
func (m Model) SelectedPath() string {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return ""
	}
	return m.visible[m.cursor].node.GroupTail().AbsolutePath
}

// SelectedNode returns the currently selected node.
func (m Model) SelectedNode() *explorer.Node {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil
	}
	return m.visible[m.cursor].node
}

// ScanError returns the last scan diagnostic, empty when healthy.
func (m Model) ScanError() string {
	return m.scanErr
}

// Decorate re-runs the decoration hook over every populated entry
// list, after a git status update.
func (m *Model) Decorate(hook explorer.DecorateFunc) {
	if hook == nil {
		return
	}
	hook(m.entries, m.rootPath)
	m.decorateRecursive(m.entries, hook)
}

func (m *Model) decorateRecursive(entries []*explorer.Node, hook explorer.DecorateFunc) {
	for _, n := range entries {
		if len(n.Entries) > 0 {
			hook(n.Entries, n.GroupTail().AbsolutePath)
			m.decorateRecursive(n.Entries, hook)
		}
	}
}

// Focus gives focus to this component.
func (m Model) Focus() Model {
	m.Base.Focus()
	return m
}

// Blur removes focus from this component.
func (m Model) Blur() Model {
	m.Base.Blur()
	return m
}

// SetSize updates the component's dimensions.
func (m Model) SetSize(width, height int) Model {
	m.Base.SetSize(width, height)
	m.ensureVisible()
	return m
}
