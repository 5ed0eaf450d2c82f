package preview

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avitaltamir/arbor/internal/components"
	"github.com/avitaltamir/arbor/internal/theme"
)

// maxPreviewBytes caps how much of a file is loaded into the pane.
const maxPreviewBytes = 512 * 1024

// FileLoadedMsg is sent when a file has been read for preview.
type FileLoadedMsg struct {
	Path    string
	Content string
	Binary  bool
	Err     error
}

// Model is the read-only file preview pane.
type Model struct {
	components.Base

	viewport viewport.Model
	path     string
	content  string
	binary   bool
	ready    bool
	err      error
}

// New creates an empty preview pane.
func New() Model {
	return Model{}
}

// Init initializes the preview pane.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Handled by SetSize from the parent layout.
		return m, nil

	case tea.MouseMsg:
		// Wheel scrolling works even when the pane is not focused.
		if msg.Action == tea.MouseActionPress &&
			(msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown) {
			m.viewport, cmd = m.viewport.Update(msg)
		}
		return m, cmd

	case FileLoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.path = msg.Path
			m.content = ""
			m.binary = false
			m.viewport.SetContent(m.renderError(msg.Err))
			return m, nil
		}
		m.path = msg.Path
		m.content = msg.Content
		m.binary = msg.Binary
		m.err = nil
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		if !m.Focused() {
			return m, nil
		}
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.Focused() {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// View renders the preview pane.
func (m Model) View() string {
	if !m.ready || (m.path == "" && m.err == nil) {
		return m.renderPlaceholder()
	}
	return m.viewport.View()
}

func (m Model) renderPlaceholder() string {
	w, h := m.Size()
	style := lipgloss.NewStyle().
		Width(w).
		Height(h).
		Foreground(theme.MutedLavender).
		Align(lipgloss.Center, lipgloss.Center)

	return style.Render("Select a file to preview...")
}

func (m Model) renderError(err error) string {
	style := lipgloss.NewStyle().
		Foreground(theme.NeonRed).
		Bold(true)

	return style.Render("Error: " + err.Error())
}

func (m Model) renderContent() string {
	if m.binary {
		return lipgloss.NewStyle().
			Foreground(theme.MutedLavender).
			Italic(true).
			Render("(binary file)")
	}
	if m.content == "" {
		return lipgloss.NewStyle().
			Foreground(theme.MutedLavender).
			Italic(true).
			Render("(empty file)")
	}

	highlighted := m.highlightSyntax()

	lineNumStyle := lipgloss.NewStyle().Foreground(theme.DimPurple)
	sep := lipgloss.NewStyle().Foreground(theme.DimPurple).Render(" │ ")

	var result strings.Builder
	lines := strings.Split(highlighted, "\n")
	for i, line := range lines {
		result.WriteString(lineNumStyle.Render(fmt.Sprintf("%4d", i+1)))
		result.WriteString(sep)
		result.WriteString(line)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// highlightSyntax returns syntax-highlighted content.
func (m Model) highlightSyntax() string {
	var lexer chroma.Lexer
	if m.path != "" {
		lexer = lexers.Match(filepath.Base(m.path))
	}
	if lexer == nil {
		lexer = lexers.Analyse(m.content)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, m.content)
	if err != nil {
		return m.content
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return m.content
	}
	return buf.String()
}

// LoadFile reads a file for preview. Large files are truncated and
// binary content is detected rather than dumped into the terminal.
func LoadFile(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return FileLoadedMsg{Path: path, Err: err}
		}
		defer f.Close()

		buf := make([]byte, maxPreviewBytes)
		n, err := io.ReadFull(f, buf)
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return FileLoadedMsg{Path: path, Err: err}
		}
		data := buf[:n]

		if isBinary(data) {
			return FileLoadedMsg{Path: path, Binary: true}
		}
		return FileLoadedMsg{Path: path, Content: string(data)}
	}
}

// isBinary reports whether data looks like binary content. NUL bytes or
// a run of invalid UTF-8 near the start are the signal.
func isBinary(data []byte) bool {
	probe := data
	if len(probe) > 8000 {
		probe = probe[:8000]
	}
	if bytes.IndexByte(probe, 0) >= 0 {
		return true
	}
	invalid := 0
	for len(probe) > 0 {
		r, size := utf8.DecodeRune(probe)
		if r == utf8.RuneError && size == 1 {
			invalid++
			if invalid > 16 {
				return true
			}
		}
		probe = probe[size:]
	}
	return false
}

// Path returns the path of the previewed file.
func (m Model) Path() string {
	return m.path
}

// Clear empties the pane.
func (m *Model) Clear() {
	m.path = ""
	m.content = ""
	m.binary = false
	m.err = nil
	m.viewport.SetContent("")
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

	if !m.ready {
		m.viewport = viewport.New(width, height)
		m.viewport.MouseWheelEnabled = true
		m.viewport.MouseWheelDelta = 3
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = height
	}

	if m.content != "" {
		m.viewport.SetContent(m.renderContent())
	}
	return m
}

// ScrollPercent returns the scroll position as a percentage (0-100).
func (m Model) ScrollPercent() float64 {
	return m.viewport.ScrollPercent() * 100
}
