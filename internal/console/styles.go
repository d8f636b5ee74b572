package console

import (
	"github.com/charmbracelet/lipgloss"
)

// Panel color palette
const (
	ColorBorder = lipgloss.Color("#2A3A4A")

	// Semantic colors
	ColorHealthy  = lipgloss.Color("#2ECC71") // online
	ColorWarning  = lipgloss.Color("#F1C40F") // slow
	ColorCritical = lipgloss.Color("#E74C3C") // offline / danger headers

	// Text colors
	ColorTextPrimary   = lipgloss.Color("#ECF0F1")
	ColorTextSecondary = lipgloss.Color("#95A5A6")
	ColorTextMuted     = lipgloss.Color("#5D6D7E")

	// Accent colors
	ColorAccent    = lipgloss.Color("#3498DB") // category-specific headers, selection
	ColorAccentDim = lipgloss.Color("#2471A3")
)

// Base styles for the panel
var (
	HeaderBarStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	PaneFocusedStyle = PaneStyle.
				BorderForeground(ColorAccent)

	PaneTitleStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorTextPrimary).
				Background(ColorAccentDim)

	// Connection badge styles
	ConnectedStyle = lipgloss.NewStyle().
			Foreground(ColorHealthy).
			Bold(true)

	DisconnectedStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Bold(true)

	// Health tier styles
	TierOnlineStyle  = lipgloss.NewStyle().Foreground(ColorHealthy)
	TierSlowStyle    = lipgloss.NewStyle().Foreground(ColorWarning)
	TierOfflineStyle = lipgloss.NewStyle().Foreground(ColorCritical)
	TierUnknownStyle = lipgloss.NewStyle().Foreground(ColorTextMuted)

	// Header button styles: common de-emphasized, category-specific in the
	// accent color, danger flagged red and only ever shown in the All tab.
	HeaderCommonStyle   = lipgloss.NewStyle().Foreground(ColorTextSecondary)
	HeaderSpecificStyle = lipgloss.NewStyle().Foreground(ColorAccent)
	HeaderDangerStyle   = lipgloss.NewStyle().Foreground(ColorCritical).Bold(true)

	HeaderSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorTextPrimary).
				Background(ColorAccentDim)

	// Tab bar styles
	TabActiveStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Underline(true).
			Padding(0, 1)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Padding(0, 1)

	// Dispatch result styles
	ResultOKStyle  = lipgloss.NewStyle().Foreground(ColorHealthy)
	ResultErrStyle = lipgloss.NewStyle().Foreground(ColorCritical)

	// Frame direction tags
	DirRXStyle = lipgloss.NewStyle().Foreground(ColorHealthy)
	DirTXStyle = lipgloss.NewStyle().Foreground(ColorAccent)
)

// Status indicator characters
const (
	DotOnline  = "●"
	DotSlow    = "◐"
	DotOffline = "○"
	DotUnknown = "◌"
)
