package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Osiakosia/Emterprise-logger-adminite/internal/api"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/headers"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/registry"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/util"
)

const minWidth = 80

// render draws the full panel: header bar, device and header panes side by
// side, the frame log, a status strip, and the key footer.
func (m Model) render() string {
	width := m.width
	if width < minWidth {
		width = minWidth
	}

	var b strings.Builder
	b.WriteString(m.renderHeaderBar(width))
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(m.renderHelp(width))
		b.WriteString("\n")
		b.WriteString(FooterStyle.Width(width).Render("? close help • q quit"))
		return b.String()
	}

	devWidth := width * 2 / 5
	hdrWidth := width - devWidth - 2

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderDevicePane(devWidth),
		m.renderHeaderPane(hdrWidth),
	)
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.renderFramesPane(width - 2))
	b.WriteString("\n")
	b.WriteString(m.renderStatusStrip(width))
	b.WriteString("\n")
	b.WriteString(m.renderFooter(width))

	return b.String()
}

func (m Model) renderHeaderBar(width int) string {
	parts := []string{
		"ccTalk Control Panel",
		connLabel(m.connOK, m.serial),
	}

	if m.counts != nil {
		parts = append(parts, fmt.Sprintf("rx %d  tx %d  err %d",
			m.counts.RX, m.counts.TX, m.counts.DecodeErrors))
	}
	if !m.lastPoll.IsZero() {
		parts = append(parts, "polled "+m.lastPoll.Format("15:04:05"))
	}
	if !m.autoRefresh {
		parts = append(parts, "auto-refresh off")
	}

	return HeaderBarStyle.Width(width).Render(strings.Join(parts, "  │  "))
}

func connLabel(ok bool, s api.SerialStatus) string {
	if !ok {
		return DisconnectedStyle.Render("◌ bridge unreachable")
	}
	if !s.Connected {
		return DisconnectedStyle.Render("○ serial closed")
	}
	label := "● " + s.Port
	if s.Baud > 0 {
		label += fmt.Sprintf(" @ %d", s.Baud)
	}
	return ConnectedStyle.Render(label)
}

func (m Model) renderDevicePane(width int) string {
	list := m.filteredDevices()

	var b strings.Builder
	b.WriteString(PaneTitleStyle.Render(fmt.Sprintf("Devices (%d)", len(list))))
	b.WriteString("\n")
	b.WriteString(m.deviceFilter.View())
	b.WriteString("\n\n")

	if len(list) == 0 {
		b.WriteString(MutedStyle.Render("no devices"))
	}

	selAddr, hasSel := m.selection.Address()
	now := m.lastPoll

	for i, d := range list {
		dot := tierDot(registry.Classify(now, d.LastSeenTS, d.Health))

		marker := "  "
		if hasSel && d.Address == selAddr {
			marker = HeaderSpecificStyle.Render("» ")
		}

		line := fmt.Sprintf("%s%s %3d  %s", marker, dot, d.Address,
			util.Truncate(registry.DisplayName(d), width-12))
		if i == m.deviceCursor && m.focus == FocusDevices {
			line = SelectedRowStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
		b.WriteString(MutedStyle.Render("       " + util.Truncate(registry.Meta(d), width-10)))
		b.WriteString("\n")
	}

	style := PaneStyle
	if m.focus == FocusDevices || m.focus == FocusDeviceFilter {
		style = PaneFocusedStyle
	}
	return style.Width(width).Render(b.String())
}

func tierDot(t registry.Tier) string {
	switch t {
	case registry.TierOnline:
		return TierOnlineStyle.Render(DotOnline)
	case registry.TierSlow:
		return TierSlowStyle.Render(DotSlow)
	case registry.TierOffline:
		return TierOfflineStyle.Render(DotOffline)
	default:
		return TierUnknownStyle.Render(DotUnknown)
	}
}

func (m Model) renderHeaderPane(width int) string {
	var b strings.Builder
	b.WriteString(m.renderTabBar())
	b.WriteString("\n")
	b.WriteString(m.tabFilters[m.activeTab].View())
	b.WriteString("\n\n")

	list := m.tabHeaders()
	switch {
	case !m.headersLoaded && m.headersErr != "":
		b.WriteString(MutedStyle.Render(m.headersErr))
	case !m.headersLoaded:
		b.WriteString(MutedStyle.Render("loading headers…"))
	case len(list) == 0:
		b.WriteString(MutedStyle.Render("no matching headers"))
	}

	for i, d := range list {
		label := util.Truncate(d.Label(), width-6)
		line := "  " + headerStyle(d).Render(label)
		if i == m.headerCursor && m.focus == FocusHeaders {
			line = "  " + HeaderSelectedStyle.Render(label)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Data "))
	b.WriteString(m.dataInput.View())
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Target "))
	b.WriteString(m.renderTarget())

	style := PaneStyle
	switch m.focus {
	case FocusHeaders, FocusTabFilter, FocusDataInput:
		style = PaneFocusedStyle
	}
	return style.Width(width).Render(b.String())
}

func headerStyle(d headers.Descriptor) lipgloss.Style {
	switch {
	case headers.IsDanger(d):
		return HeaderDangerStyle
	case headers.IsCommon(d):
		return HeaderCommonStyle
	default:
		return HeaderSpecificStyle
	}
}

func (m Model) renderTabBar() string {
	var tabs []string
	for t := Tab(0); t < tabCount; t++ {
		label := t.String()
		if t == m.activeTab {
			tabs = append(tabs, TabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, TabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderTarget() string {
	_, ok := m.selection.Address()
	if !ok {
		return MutedStyle.Render(m.selection.String())
	}
	label := m.selection.String()
	if d := m.selectedDevice(); d != nil {
		label += "  " + registry.DisplayName(*d)
	}
	return ValueStyle.Render(label)
}

// renderFramesPane shows the most recent traffic, newest first.
func (m Model) renderFramesPane(width int) string {
	var b strings.Builder
	b.WriteString(PaneTitleStyle.Render("Frames"))
	b.WriteString("\n")

	frames := m.frames
	if len(frames) > frameWindow {
		frames = frames[len(frames)-frameWindow:]
	}
	if len(frames) == 0 {
		b.WriteString(MutedStyle.Render("no traffic"))
	}

	for i := len(frames) - 1; i >= 0; i-- {
		f := frames[i]
		dir := DirRXStyle.Render("RX")
		if strings.EqualFold(f.Direction, "tx") {
			dir = DirTXStyle.Render("TX")
		}

		route := "—"
		if f.From != nil && f.To != nil {
			route = fmt.Sprintf("%d→%d", *f.From, *f.To)
		}

		line := fmt.Sprintf("%s %s %-7s %-24s %s",
			MutedStyle.Render(f.Time), dir, route,
			util.Truncate(f.Payload(), 24),
			MutedStyle.Render(util.Truncate(f.DecodedString(), width-44)))
		b.WriteString(line)
		b.WriteString("\n")
	}

	return PaneStyle.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderStatusStrip(width int) string {
	var parts []string

	if m.lastResult.Message != "" {
		style := ResultErrStyle
		if m.lastResult.OK {
			style = ResultOKStyle
		}
		parts = append(parts, style.Render(util.Truncate(m.lastResult.Message, width/2)))
	}
	if m.scanStatus != "" {
		parts = append(parts, LabelStyle.Render("scan ")+ValueStyle.Render(m.scanStatus))
	}
	if m.billPoll.Running() {
		parts = append(parts, ValueStyle.Render("bill-poll running"))
	}
	if m.actionNote != "" {
		parts = append(parts, MutedStyle.Render(m.actionNote))
	}

	return " " + util.JoinOrDefault(parts, MutedStyle.Render("ready"))
}

func (m Model) renderFooter(width int) string {
	hints := "tab panes • ↑/↓ move • enter select/send • / filter • d data • 1-4 tabs • " +
		"s scan • x stop • b bill • e/E escrow • c/C connect • r refresh • ? help • q quit"
	return FooterStyle.Width(width).Render(hints)
}
