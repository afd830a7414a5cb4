package tui

import "github.com/charmbracelet/lipgloss"

// Color constants for the three buckets and chrome.
const (
	primaryColor = "#7C3AED" // Purple
	keepColor    = "#10B981" // Green
	maybeColor   = "#F59E0B" // Amber
	killColor    = "#EF4444" // Red
	dimColor     = "#6B7280" // Gray
	infoColor    = "#3B82F6" // Blue
)

// CardWidth is the content width of a card, padding included.
const CardWidth = 44

// Style variables for consistent TUI rendering.
var (
	// BoxStyle provides a rounded border box with primary color.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(primaryColor)).
			Padding(1, 2)

	// CardStyle draws the top card.
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(primaryColor)).
			Padding(1, 2).
			Width(CardWidth)

	// ShadowStyle draws the edge of a card waiting underneath.
	ShadowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	// TitleStyle renders titles in primary color with bold.
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// DimStyle renders dim/muted text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	// KeepStyle renders keep verdicts in green.
	KeepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(keepColor))

	// KillStyle renders kill verdicts in red.
	KillStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(killColor))

	// MaybeStyle renders maybe verdicts in amber.
	MaybeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(maybeColor))

	// InfoStyle renders in-progress notices.
	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(infoColor))

	// BadgeStyle renders the remaining-cards counter.
	BadgeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(dimColor)).
			Foreground(lipgloss.Color(dimColor)).
			Padding(0, 1)

	// BucketStyle frames one results column.
	BucketStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(18)
)

// Bucket colors exported for views.
const (
	KeepColor  = keepColor
	KillColor  = killColor
	MaybeColor = maybeColor
)
