package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Available themes
var (
	themes       []*Theme
	currentIndex int
)

func init() {
	themes = []*Theme{
		DefaultTheme(),
		CanopyTheme(),
		DriftwoodTheme(),
	}
	currentIndex = 0
	ApplyTheme(themes[0])
}

// AllThemes returns all available themes.
func AllThemes() []*Theme {
	return themes
}

// CurrentTheme returns the currently active theme.
func CurrentTheme() *Theme {
	return themes[currentIndex]
}

// CurrentThemeIndex returns the index of the current theme.
func CurrentThemeIndex() int {
	return currentIndex
}

// NextTheme cycles to the next theme and applies it.
func NextTheme() *Theme {
	currentIndex = (currentIndex + 1) % len(themes)
	ApplyTheme(themes[currentIndex])
	return themes[currentIndex]
}

// SetThemeIndex sets the current theme by index and applies it.
// Returns false if index is out of bounds.
func SetThemeIndex(index int) bool {
	if index < 0 || index >= len(themes) {
		return false
	}
	currentIndex = index
	ApplyTheme(themes[currentIndex])
	return true
}

// ApplyTheme sets all the global color variables to match the theme.
func ApplyTheme(t *Theme) {
	ColorPrimary = t.Colors.Primary
	ColorSecondary = t.Colors.Secondary
	ColorFocus = t.Colors.Focus
	ColorSuccess = t.Colors.Success
	ColorError = t.Colors.Error
	ColorWarning = t.Colors.Warning
	ColorAccent = t.Colors.Accent

	BgPrimary = t.Colors.BgPrimary
	BgPanel = t.Colors.BgPanel
	BgPanelActive = t.Colors.BgPanelActive
	BgStatusBar = t.Colors.BgStatusBar

	TextPrimary = t.Colors.TextPrimary
	TextSecondary = t.Colors.TextSecondary
	TextMuted = t.Colors.TextMuted
	TextDim = t.Colors.TextDim

	// Also update the named colors for backwards compat
	MagentaBlaze = t.Colors.Primary
	CyberCyan = t.Colors.Secondary
	HotPink = t.Colors.Focus
	MatrixGreen = t.Colors.Success
	NeonRed = t.Colors.Error
	ElectricYellow = t.Colors.Warning
	LaserPurple = t.Colors.Accent

	VoidPurple = t.Colors.BgPrimary
	DeepSpace = t.Colors.BgPanel
	Twilight = t.Colors.BgPanelActive
	Abyss = t.Colors.BgStatusBar

	PureWhite = t.Colors.TextPrimary
	Silver = t.Colors.TextSecondary
	MutedLavender = t.Colors.TextMuted
	DimPurple = t.Colors.TextDim

	regenerateStyles()
}

// CanopyTheme - Greens and bark browns under forest light
func CanopyTheme() *Theme {
	return &Theme{
		Name:         "Canopy",
		UseNerdFonts: true,
		Colors: ColorPalette{
			Primary:       lipgloss.Color("#A7C957"), // Fresh leaf
			Secondary:     lipgloss.Color("#F2CC8F"), // Dappled light
			Focus:         lipgloss.Color("#E07A5F"), // Bromeliad
			Success:       lipgloss.Color("#81B29A"), // Moss
			Error:         lipgloss.Color("#BC4749"), // Berry
			Warning:       lipgloss.Color("#F4D35E"), // Pollen
			Accent:        lipgloss.Color("#EE6C4D"), // Macaw orange
			BgPrimary:     lipgloss.Color("#0B1A0F"), // Forest floor
			BgPanel:       lipgloss.Color("#132A18"), // Dense canopy
			BgPanelActive: lipgloss.Color("#1D3A22"), // Sunlit clearing
			BgStatusBar:   lipgloss.Color("#050F08"), // Undergrowth
			TextPrimary:   lipgloss.Color("#E8F5E9"), // Misty morning
			TextSecondary: lipgloss.Color("#B8D4BA"), // Filtered light
			TextMuted:     lipgloss.Color("#7A9E7E"), // Fern shadow
			TextDim:       lipgloss.Color("#4A6B4E"), // Deep shade
		},
	}
}

// DriftwoodTheme - Muted coastal tones
func DriftwoodTheme() *Theme {
	return &Theme{
		Name:         "Driftwood",
		UseNerdFonts: true,
		Colors: ColorPalette{
			Primary:       lipgloss.Color("#E63946"), // Buoy red
			Secondary:     lipgloss.Color("#5CC8E4"), // Bright ocean
			Focus:         lipgloss.Color("#F4A261"), // Dune grass
			Success:       lipgloss.Color("#2A9D8F"), // Seaweed
			Error:         lipgloss.Color("#9B2226"), // Rust
			Warning:       lipgloss.Color("#E9C46A"), // Lemon wedge
			Accent:        lipgloss.Color("#7EC8E3"), // Seafoam
			BgPrimary:     lipgloss.Color("#0A1628"), // Midnight ocean
			BgPanel:       lipgloss.Color("#132238"), // Deep sea
			BgPanelActive: lipgloss.Color("#1D3048"), // Wave crest
			BgStatusBar:   lipgloss.Color("#050D18"), // Abyss
			TextPrimary:   lipgloss.Color("#F1FAEE"), // Sea foam white
			TextSecondary: lipgloss.Color("#A8DADC"), // Pale aqua
			TextMuted:     lipgloss.Color("#6B8E9F"), // Foggy coast
			TextDim:       lipgloss.Color("#3D5A6C"), // Stormy sea
		},
	}
}
