package console

import (
	"strings"
)

type helpEntry struct {
	key  string
	desc string
}

var helpSections = []struct {
	title   string
	entries []helpEntry
}{
	{
		title: "Navigation",
		entries: []helpEntry{
			{"tab", "switch between device and header panes"},
			{"↑/↓, k/j", "move cursor"},
			{"enter", "select device / send highlighted header"},
			{"1-4, [/]", "switch header tab"},
			{"/", "filter the focused pane"},
			{"d", "edit command data (hex)"},
			{"esc", "leave a filter or data field"},
		},
	},
	{
		title: "Actions",
		entries: []helpEntry{
			{"s", "scan the address range"},
			{"x", "stop a running scan"},
			{"b", "start/stop continuous bill polling"},
			{"e / E", "escrow: stack / return bill"},
			{"i", "identify device (equipment category)"},
			{"!", "emergency stop"},
			{"c / C", "connect / disconnect serial"},
			{"L", "clear the bridge frame log"},
			{"r", "refresh now"},
			{"a", "toggle auto-refresh"},
		},
	},
	{
		title: "General",
		entries: []helpEntry{
			{"?", "toggle this help"},
			{"q, ctrl+c", "quit"},
		},
	},
}

func (m Model) renderHelp(width int) string {
	var b strings.Builder
	for _, sec := range helpSections {
		b.WriteString(PaneTitleStyle.Render(sec.title))
		b.WriteString("\n")
		for _, e := range sec.entries {
			b.WriteString("  ")
			b.WriteString(ValueStyle.Render(padRight(e.key, 12)))
			b.WriteString(MutedStyle.Render(e.desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return PaneStyle.Width(width - 2).Render(strings.TrimRight(b.String(), "\n"))
}

func padRight(s string, n int) string {
	for len([]rune(s)) < n {
		s += " "
	}
	return s
}
