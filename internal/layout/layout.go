package layout

// Layout constants
const (
	DefaultLeftPanelPercent = 30
	MinLeftPanelPercent     = 15
	MaxLeftPanelPercent     = 60
	StatusBarHeight         = 1
	MinPanelWidth           = 20
	MinPanelHeight          = 5
)

// Layout holds calculated dimensions for the tree and preview panels.
type Layout struct {
	// Total terminal dimensions
	TotalWidth  int
	TotalHeight int

	// Panel widths
	LeftWidth  int
	RightWidth int

	// Panel height (everything above the status bar)
	MainHeight int

	// Status bar
	StatusHeight int
}

// Calculate computes the layout dimensions based on terminal size.
// leftPercent controls the width of the left panel (file tree).
func Calculate(width, height int, leftPercent int) Layout {
	l := Layout{
		TotalWidth:   width,
		TotalHeight:  height,
		StatusHeight: StatusBarHeight,
	}

	// Clamp left panel percentage to valid range
	if leftPercent < MinLeftPanelPercent {
		leftPercent = MinLeftPanelPercent
	}
	if leftPercent > MaxLeftPanelPercent {
		leftPercent = MaxLeftPanelPercent
	}

	// Calculate horizontal split
	l.LeftWidth = max(width*leftPercent/100, MinPanelWidth)
	l.RightWidth = max(width-l.LeftWidth, MinPanelWidth)

	// Ensure we don't exceed total width
	if l.LeftWidth+l.RightWidth > width {
		l.RightWidth = width - l.LeftWidth
	}

	// Reserve status bar
	l.MainHeight = height - l.StatusHeight

	return l
}

// LeftPanelBounds returns the position and size of the file tree panel.
func (l Layout) LeftPanelBounds() (x, y, width, height int) {
	return 0, 0, l.LeftWidth, l.MainHeight
}

// RightPanelBounds returns the position and size of the preview panel.
func (l Layout) RightPanelBounds() (x, y, width, height int) {
	return l.LeftWidth, 0, l.RightWidth, l.MainHeight
}

// StatusBarBounds returns the position and size of the status bar.
func (l Layout) StatusBarBounds() (x, y, width, height int) {
	return 0, l.MainHeight, l.TotalWidth, l.StatusHeight
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
