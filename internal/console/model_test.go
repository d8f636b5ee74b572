package console

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Osiakosia/Emterprise-logger-adminite/internal/api"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/config"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/dispatch"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/headers"
)

func init() {
	// Pin the color profile so rendering assertions are deterministic
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func newTestModel() Model {
	return NewModel(api.NewClient("http://127.0.0.1:1"), config.Default())
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	panic("unhandled key " + s)
}

func snapshotMsg(devs ...api.Device) statusMsg {
	return statusMsg{
		snap: &api.StatusSnapshot{
			Serial:  api.SerialStatus{Connected: true, Port: "/dev/ttyUSB0", Baud: 9600},
			Devices: api.DeviceSet(devs),
		},
		time: time.Now(),
	}
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel()

	assert.True(t, m.autoRefresh)
	assert.Equal(t, TabCoin, m.activeTab)
	assert.Equal(t, FocusDevices, m.focus)

	_, ok := m.selection.Address()
	assert.False(t, ok, "nothing selected at startup")
}

func TestNewModelTransportDeadline(t *testing.T) {
	t.Run("default config keeps the client default", func(t *testing.T) {
		client := api.NewClient("http://127.0.0.1:1")
		NewModel(client, config.Default())
		assert.Equal(t, api.DefaultTimeout, client.Timeout())
	})

	t.Run("long poll timeout lifts the deadline", func(t *testing.T) {
		cfg := config.Default()
		cfg.Poll.Interval = 10 * time.Second
		cfg.Poll.Timeout = 8 * time.Second

		client := api.NewClient("http://127.0.0.1:1")
		NewModel(client, cfg)
		assert.Equal(t, 9*time.Second, client.Timeout())
	})
}

func TestStatusMsgSwapsSnapshot(t *testing.T) {
	m := newTestModel()
	m.polling = true

	m, _ = update(t, m, snapshotMsg(
		api.Device{Address: 40, Name: "Bill validator"},
		api.Device{Address: 2, Name: "Coin acceptor"},
	))

	assert.False(t, m.polling, "single-flight slot freed")
	assert.True(t, m.connOK)
	require.Len(t, m.devices, 2)
	assert.Equal(t, 2, m.devices[0].Address, "registry sorted by address")
	assert.Equal(t, 40, m.devices[1].Address)
}

func TestStatusMsgErrorKeepsLastSnapshot(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, snapshotMsg(api.Device{Address: 2, Name: "Coin acceptor"}))
	require.Len(t, m.devices, 1)

	m.polling = true
	m, _ = update(t, m, statusMsg{err: fmt.Errorf("connection refused"), time: time.Now()})

	assert.False(t, m.polling)
	assert.False(t, m.connOK)
	assert.Len(t, m.devices, 1, "stale registry kept until the next good poll")
}

func TestTickSingleFlight(t *testing.T) {
	m := newTestModel()

	m, cmd := update(t, m, tickMsg(time.Now()))
	assert.True(t, m.polling, "first tick claims the slot")
	assert.NotNil(t, cmd)

	// A second tick while the request is outstanding must not fetch again:
	// the slot stays claimed by the first request.
	m, cmd = update(t, m, tickMsg(time.Now()))
	assert.True(t, m.polling)
	assert.NotNil(t, cmd, "the timer keeps running")
}

func TestTickAutoRefreshOff(t *testing.T) {
	m := newTestModel()
	m.autoRefresh = false

	m, cmd := update(t, m, tickMsg(time.Now()))
	assert.False(t, m.polling, "no fetch while auto-refresh is off")
	assert.NotNil(t, cmd, "the timer keeps running for when it is re-enabled")
}

func TestHeadersMsg(t *testing.T) {
	m := newTestModel()

	m, _ = update(t, m, headersMsg{catalog: headers.Split([]headers.Descriptor{
		{Header: 254, Name: "Simple poll"},
		{Header: 210, Name: "Modify sorter paths"},
	})})

	assert.True(t, m.headersLoaded)
	list := m.tabHeaders()
	require.Len(t, list, 2, "coin tab shows common plus coin headers")
}

func TestHeadersMsgError(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, headersMsg{err: fmt.Errorf("boom")})

	assert.False(t, m.headersLoaded)
	assert.NotEmpty(t, m.headersErr)
}

func TestTabSwitching(t *testing.T) {
	m := newTestModel()

	m, _ = update(t, m, keyMsg("2"))
	assert.Equal(t, TabHopper, m.activeTab)

	m, _ = update(t, m, keyMsg("4"))
	assert.Equal(t, TabAll, m.activeTab)

	m, _ = update(t, m, keyMsg("]"))
	assert.Equal(t, TabCoin, m.activeTab, "next from the last tab wraps")

	m, _ = update(t, m, keyMsg("["))
	assert.Equal(t, TabAll, m.activeTab, "previous from the first tab wraps")
}

func TestFocusCycle(t *testing.T) {
	m := newTestModel()
	require.Equal(t, FocusDevices, m.focus)

	m, _ = update(t, m, keyMsg("tab"))
	assert.Equal(t, FocusHeaders, m.focus)

	m, _ = update(t, m, keyMsg("tab"))
	assert.Equal(t, FocusDevices, m.focus)
}

func TestDeviceFilterFocus(t *testing.T) {
	m := newTestModel()

	m, _ = update(t, m, keyMsg("/"))
	assert.Equal(t, FocusDeviceFilter, m.focus)

	// Plain letters go to the input, not the key map
	m, _ = update(t, m, keyMsg("q"))
	assert.False(t, m.quitting)
	assert.Equal(t, "q", m.deviceFilter.Value())

	m, _ = update(t, m, keyMsg("esc"))
	assert.Equal(t, FocusDevices, m.focus)
}

func TestSelectDeviceAutoTab(t *testing.T) {
	cat := 6
	m := newTestModel()
	m, _ = update(t, m, snapshotMsg(
		api.Device{Address: 3, Name: "Coin hopper", Kind: "hopper", EquipmentCategory: &cat},
	))

	m, _ = update(t, m, keyMsg("enter"))

	addr, ok := m.selection.Address()
	require.True(t, ok)
	assert.Equal(t, 3, addr)
	assert.Equal(t, TabHopper, m.activeTab, "selection focuses the matching tab")
}

func TestSelectionSurvivesDeviceVanishing(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, snapshotMsg(api.Device{Address: 2, Name: "Coin acceptor", Kind: "coin"}))
	m, _ = update(t, m, keyMsg("enter"))

	// Device disappears from the next snapshot; selection stays, resolution
	// returns nil
	m, _ = update(t, m, snapshotMsg())

	addr, ok := m.selection.Address()
	require.True(t, ok)
	assert.Equal(t, 2, addr)
	assert.Nil(t, m.selectedDevice())
}

func TestDispatchMsg(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, dispatchMsg{result: dispatch.Result{OK: true, Message: "Sent."}})

	assert.True(t, m.lastResult.OK)
	assert.Equal(t, "Sent.", m.lastResult.Message)

	// A newer result replaces the slot
	m, _ = update(t, m, dispatchMsg{result: dispatch.Result{OK: false, Message: "ERROR: timeout"}})
	assert.False(t, m.lastResult.OK)
}

func TestScanMessages(t *testing.T) {
	m := newTestModel()
	m.scanCh = make(chan string, 1)

	m, cmd := update(t, m, scanStatusMsg("Scan 3/50"))
	assert.Equal(t, "Scan 3/50", m.scanStatus)
	assert.NotNil(t, cmd, "keeps draining the progress channel")

	m, _ = update(t, m, scanDoneMsg{})
	assert.Nil(t, m.scanCh)
}

func TestActionMsg(t *testing.T) {
	m := newTestModel()

	m, _ = update(t, m, actionMsg{label: "connect"})
	assert.Equal(t, "connect: ok", m.actionNote)

	m, _ = update(t, m, actionMsg{label: "connect", err: fmt.Errorf("could not open port")})
	assert.Contains(t, m.actionNote, "could not open port")
}

func TestQuit(t *testing.T) {
	m := newTestModel()
	m, cmd := update(t, m, keyMsg("q"))
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel()

	m, _ = update(t, m, keyMsg("?"))
	assert.True(t, m.showHelp)

	m, _ = update(t, m, keyMsg("esc"))
	assert.False(t, m.showHelp)
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "Bridge unreachable", firstLine("✗ Bridge unreachable\n\n  connection refused\n"))
	assert.Equal(t, "plain", firstLine("plain"))
}
