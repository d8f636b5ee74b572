package console

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Osiakosia/Emterprise-logger-adminite/internal/api"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/headers"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/registry"
)

func TestViewRendersWithoutData(t *testing.T) {
	m := newTestModel()
	out := m.View()

	assert.Contains(t, out, "ccTalk Control Panel")
	assert.Contains(t, out, "bridge unreachable")
	assert.Contains(t, out, "no devices")
	assert.Contains(t, out, "no traffic")
}

func TestViewRendersSnapshot(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, snapshotMsg(
		api.Device{Address: 2, Name: "Coin acceptor", Kind: "coin", LastSeenTS: float64(time.Now().UnixNano()) / 1e9},
	))
	m, _ = update(t, m, headersMsg{catalog: headers.Split([]headers.Descriptor{
		{Header: 254, Name: "Simple poll"},
	})})

	out := m.View()
	assert.Contains(t, out, "/dev/ttyUSB0")
	assert.Contains(t, out, "Coin acceptor")
	assert.Contains(t, out, "Simple poll (254, 0xFE)")
	assert.Contains(t, out, "Devices (1)")
}

func TestViewQuitIsEmpty(t *testing.T) {
	m := newTestModel()
	m.quitting = true
	assert.Equal(t, "", m.View())
}

func TestViewHelpOverlay(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, keyMsg("?"))

	out := m.View()
	assert.Contains(t, out, "Navigation")
	assert.Contains(t, out, "Actions")
	assert.NotContains(t, out, "no devices", "help replaces the panes")
}

func TestRenderTabBar(t *testing.T) {
	m := newTestModel()

	// The active tab's underline styles each rune separately, so compare
	// against the stripped bar.
	bar := ansi.Strip(m.renderTabBar())
	for _, title := range []string{"Coin", "Hopper", "Recycler", "All"} {
		assert.Contains(t, bar, title)
	}

	m.activeTab = TabHopper
	assert.Contains(t, ansi.Strip(m.renderTabBar()), "Hopper")
}

func TestRenderTarget(t *testing.T) {
	m := newTestModel()
	assert.Contains(t, ansi.Strip(m.renderTarget()), "—")

	m, _ = update(t, m, snapshotMsg(
		api.Device{Address: 3, Name: "Hopper", Kind: "hopper", LastSeenTS: float64(time.Now().UnixNano()) / 1e9},
	))
	m, _ = update(t, m, keyMsg("enter"))

	target := ansi.Strip(m.renderTarget())
	assert.Contains(t, target, "3")
	assert.Contains(t, target, "Hopper")
}

func TestTierDot(t *testing.T) {
	assert.Contains(t, tierDot(registry.TierOnline), DotOnline)
	assert.Contains(t, tierDot(registry.TierSlow), DotSlow)
	assert.Contains(t, tierDot(registry.TierOffline), DotOffline)
	assert.Contains(t, tierDot(registry.TierUnknown), DotUnknown)
}

func TestConnLabel(t *testing.T) {
	tests := []struct {
		name   string
		connOK bool
		serial api.SerialStatus
		want   string
	}{
		{"bridge down", false, api.SerialStatus{}, "bridge unreachable"},
		{"serial closed", true, api.SerialStatus{Connected: false}, "serial closed"},
		{"open with baud", true, api.SerialStatus{Connected: true, Port: "COM3", Baud: 9600}, "COM3 @ 9600"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, connLabel(tt.connOK, tt.serial), tt.want)
		})
	}
}

func TestFramesPaneWindow(t *testing.T) {
	m := newTestModel()

	from, to := 1, 2
	frames := make([]api.Frame, 0, frameWindow+8)
	for i := 0; i < frameWindow+8; i++ {
		frames = append(frames, api.Frame{
			Time: "12:00:00", Direction: "tx", From: &from, To: &to, Hex: "FE",
		})
	}
	m.frames = frames

	out := m.renderFramesPane(100)
	assert.Equal(t, frameWindow, strings.Count(out, "1→2"), "only the newest window renders")
}

func TestViewDangerHeaderStyledDistinctly(t *testing.T) {
	m := newTestModel()
	m.activeTab = TabAll
	m, _ = update(t, m, headersMsg{catalog: headers.Split([]headers.Descriptor{
		{Header: 254, Name: "Simple poll"},
		{Header: 172, Name: "Emergency stop"},
	})})

	danger := headerStyle(headers.Descriptor{Header: 172, Name: "Emergency stop"})
	common := headerStyle(headers.Descriptor{Header: 254, Name: "Simple poll"})
	assert.NotEqual(t,
		danger.Render("x"), common.Render("x"),
		"danger and common headers must render differently")

	out := m.View()
	assert.Contains(t, out, "Emergency stop")
}

func TestInitReturnsCommands(t *testing.T) {
	m := newTestModel()
	cmd := m.Init()
	require.NotNil(t, cmd)
}

var _ tea.Model = Model{}
