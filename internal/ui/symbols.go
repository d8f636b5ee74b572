package ui

import (
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/registry"
	"github.com/charmbracelet/lipgloss"
)

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓" // Operation succeeded
	SymbolFail    = "✗" // Operation failed
	SymbolOnline  = "●" // Device seen within the online window
	SymbolSlow    = "◐" // Device lagging
	SymbolOffline = "○" // Device silent past the offline threshold
	SymbolUnknown = "◌" // No device / not in registry
)

// TierSymbol returns the styled liveness dot for a health tier.
func TierSymbol(t registry.Tier) string {
	switch t {
	case registry.TierOnline:
		return SuccessStyle.Render(SymbolOnline)
	case registry.TierSlow:
		return WarningStyle.Render(SymbolSlow)
	case registry.TierOffline:
		return ErrorStyle.Render(SymbolOffline)
	default:
		return MutedStyle.Render(SymbolUnknown)
	}
}

// TierBadge returns the upper-case tier label in the tier's color.
func TierBadge(t registry.Tier) string {
	label := map[registry.Tier]string{
		registry.TierOnline:  "ONLINE",
		registry.TierSlow:    "SLOW",
		registry.TierOffline: "OFFLINE",
	}[t]
	if label == "" {
		label = "UNKNOWN"
	}
	switch t {
	case registry.TierOnline:
		return SuccessStyle.Render(label)
	case registry.TierSlow:
		return WarningStyle.Render(label)
	case registry.TierOffline:
		return ErrorStyle.Render(label)
	default:
		return MutedStyle.Render(label)
	}
}

// ConnBadge renders the serial connection indicator.
func ConnBadge(connected bool) string {
	if connected {
		return SuccessStyle.Render("CONNECTED")
	}
	return MutedStyle.Render("DISCONNECTED")
}

// Direction renders a frame direction tag: RX green, TX blue.
func Direction(dir string) string {
	if dir == "RX" || dir == "rx" {
		return SuccessStyle.Render("RX")
	}
	return lipgloss.NewStyle().Foreground(ColorSecondary).Render("TX")
}
