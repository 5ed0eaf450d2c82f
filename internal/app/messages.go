package app

// PanelID identifies which panel has focus.
type PanelID int

const (
	PanelFileTree PanelID = iota
	PanelPreview
	PanelNone
)

// String returns the panel name for the status bar.
func (p PanelID) String() string {
	switch p {
	case PanelFileTree:
		return "Tree"
	case PanelPreview:
		return "Preview"
	default:
		return "Unknown"
	}
}

// FocusMsg requests focus change to a specific panel.
type FocusMsg struct {
	Target PanelID
}

// ErrorMsg represents an error that should be displayed.
type ErrorMsg struct {
	Err error
}

// StatusMsg updates the status bar with a transient message.
type StatusMsg struct {
	Text string
}
