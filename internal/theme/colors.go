package theme

import "github.com/charmbracelet/lipgloss"

// Neon Core Colors - Primary accent colors for the cyberpunk theme
var (
	MagentaBlaze   = lipgloss.Color("#FF00FF") // Primary accent
	CyberCyan      = lipgloss.Color("#00FFFF") // Secondary accent
	HotPink        = lipgloss.Color("#FF10F0") // Selections/Focus
	MatrixGreen    = lipgloss.Color("#39FF14") // Git additions/success
	NeonRed        = lipgloss.Color("#FF3131") // Git deletions/errors
	ElectricYellow = lipgloss.Color("#FFFF00") // Warnings/modified
	LaserPurple    = lipgloss.Color("#7B68EE") // Untracked/accents
)

// Background Colors - Dark backgrounds for the cyberpunk aesthetic
var (
	VoidPurple = lipgloss.Color("#0D0221") // Primary background
	DeepSpace  = lipgloss.Color("#1A0A2E") // Panel backgrounds
	Twilight   = lipgloss.Color("#2D1B4E") // Active panel background
	Abyss      = lipgloss.Color("#0A0A14") // Status bar background
)

// Text Colors - Text hierarchy from bright to dim
var (
	PureWhite     = lipgloss.Color("#FFFFFF") // Primary text
	Silver        = lipgloss.Color("#E0E0E0") // Secondary text
	MutedLavender = lipgloss.Color("#888899") // Disabled/comments
	DimPurple     = lipgloss.Color("#4A4A6A") // Line numbers
)

// Semantic Color Aliases - Use these in components for consistency
var (
	ColorPrimary   = MagentaBlaze
	ColorSecondary = CyberCyan
	ColorFocus     = HotPink
	ColorSuccess   = MatrixGreen
	ColorError     = NeonRed
	ColorWarning   = ElectricYellow
	ColorAccent    = LaserPurple

	BgPrimary     = VoidPurple
	BgPanel       = DeepSpace
	BgPanelActive = Twilight
	BgStatusBar   = Abyss

	TextPrimary   = PureWhite
	TextSecondary = Silver
	TextMuted     = MutedLavender
	TextDim       = DimPurple
)
