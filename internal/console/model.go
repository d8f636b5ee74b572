package console

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Osiakosia/Emterprise-logger-adminite/internal/api"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/config"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/dispatch"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/headers"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/logger"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/registry"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/tasks"
)

// headersTimeout bounds the descriptor list fetch and one-shot actions.
const headersTimeout = 5 * time.Second

// Model is the Bubble Tea model for the control panel.
type Model struct {
	client     *api.Client
	dispatcher *dispatch.Dispatcher
	cfg        *config.Config
	log        logger.Logger

	// Snapshot state, single-writer (the poller), replaced wholesale on
	// every successful poll so renders never see a partial registry.
	serial   api.SerialStatus
	devices  []api.Device
	frames   []api.Frame
	counts   *api.Counts
	connOK   bool
	lastPoll time.Time

	polling     bool // single-flight guard: at most one snapshot request
	autoRefresh bool

	catalog       headers.Catalog
	headersLoaded bool
	headersErr    string

	selection    dispatch.Selection
	deviceCursor int
	headerCursor int
	activeTab    Tab

	deviceFilter textinput.Model
	tabFilters   [tabCount]textinput.Model
	dataInput    textinput.Model

	focus Focus

	lastResult dispatch.Result
	actionNote string

	scanner    *tasks.Scanner
	scanStatus string
	scanCh     chan string

	billPoll *tasks.Repeater

	width    int
	height   int
	quitting bool
	showHelp bool
}

// NewModel creates the panel model over a bridge client.
func NewModel(client *api.Client, cfg *config.Config) Model {
	log := logger.NewEnvLogger("[console]")
	client.SetLogger(log)

	// The transport deadline must outlive the per-poll context, or a long
	// configured poll timeout gets cut short at the HTTP layer.
	if cfg.Poll.Timeout >= api.DefaultTimeout {
		client.SetTimeout(cfg.Poll.Timeout + time.Second)
	}

	d := dispatch.New(client)
	d.SetLogger(log)

	scanner := tasks.NewScanner(d)
	scanner.Probe = cfg.Scan.Probe
	scanner.SetLogger(logger.NewEnvLogger("[scan]"))

	bill := tasks.NewRepeater("bill-poll", d)
	bill.SetLogger(logger.NewEnvLogger("[bill-poll]"))

	devFilter := textinput.New()
	devFilter.Placeholder = "filter devices"
	devFilter.CharLimit = 64
	devFilter.Width = 24

	var tabFilters [tabCount]textinput.Model
	for i := range tabFilters {
		ti := textinput.New()
		ti.Placeholder = "filter headers (name, 154, 0x9a)"
		ti.CharLimit = 64
		ti.Width = 32
		tabFilters[i] = ti
	}

	dataInput := textinput.New()
	dataInput.Placeholder = "data hex (optional)"
	dataInput.CharLimit = 64
	dataInput.Width = 24

	return Model{
		client:       client,
		dispatcher:   d,
		cfg:          cfg,
		log:          log,
		autoRefresh:  true,
		selection:    dispatch.NoSelection(),
		activeTab:    TabCoin,
		deviceFilter: devFilter,
		tabFilters:   tabFilters,
		dataInput:    dataInput,
		scanner:      scanner,
		billPoll:     bill,
	}
}

// Init starts the tick timer, the initial poll, and the catalog load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.fetchStatusCmd(),
		m.loadHeadersCmd(),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		if !m.autoRefresh {
			return m, m.tickCmd()
		}
		if m.polling {
			// Previous snapshot request still outstanding; skip this
			// tick's fetch rather than stacking requests.
			return m, m.tickCmd()
		}
		m.polling = true
		return m, tea.Batch(m.tickCmd(), m.fetchStatusCmd())

	case statusMsg:
		m.polling = false
		m.lastPoll = msg.time
		if msg.err != nil {
			m.connOK = false
			m.log.Debug("poll: %v", msg.err)
			return m, nil
		}
		m.connOK = true
		m.serial = msg.snap.Serial
		m.devices = registry.Normalize(msg.snap.Devices)
		m.frames = msg.snap.Frames
		m.counts = msg.snap.Counts
		m.clampDeviceCursor()

	case headersMsg:
		if msg.err != nil {
			m.headersErr = "headers unavailable"
			m.log.Debug("headers: %v", msg.err)
			return m, nil
		}
		m.catalog = msg.catalog
		m.headersLoaded = true
		m.headersErr = ""
		m.clampHeaderCursor()

	case dispatchMsg:
		m.lastResult = msg.result

	case scanStatusMsg:
		m.scanStatus = string(msg)
		return m, m.waitScanCmd()

	case scanDoneMsg:
		m.scanCh = nil

	case actionMsg:
		if msg.err != nil {
			m.actionNote = msg.label + ": " + firstLine(msg.err.Error())
		} else {
			m.actionNote = msg.label + ": ok"
		}
	}

	return m, nil
}

// View renders the panel.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// tickCmd schedules the next poll cycle.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.cfg.Poll.Interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchStatusCmd fetches one snapshot under the per-request bound.
func (m Model) fetchStatusCmd() tea.Cmd {
	client := m.client
	timeout := m.cfg.Poll.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		snap, err := client.Status(ctx)
		return statusMsg{snap: snap, err: err, time: time.Now()}
	}
}

// loadHeadersCmd fetches and classifies the descriptor catalog.
func (m Model) loadHeadersCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), headersTimeout)
		defer cancel()
		descs, err := client.Headers(ctx)
		if err != nil {
			return headersMsg{err: err}
		}
		return headersMsg{catalog: headers.Split(descs)}
	}
}

// dispatchCmd sends one command and feeds the last-result slot.
func (m Model) dispatchCmd(sel dispatch.Selection, header int, dataHex string) tea.Cmd {
	d := m.dispatcher
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), headersTimeout)
		defer cancel()
		result, _ := d.Dispatch(ctx, sel, header, dataHex)
		return dispatchMsg{result: result}
	}
}

// startScanCmd launches the sweep and begins draining its progress channel.
func (m *Model) startScanCmd() tea.Cmd {
	if m.scanner.Running() {
		m.actionNote = "scan: already running"
		return nil
	}

	rng := tasks.ScanRange{
		Start: m.cfg.Scan.Start,
		End:   m.cfg.Scan.End,
		Delay: m.cfg.Scan.Delay,
	}

	ch := make(chan string, 16)
	m.scanCh = ch
	scanner := m.scanner

	go func() {
		_ = scanner.Run(context.Background(), rng, func(s string) { ch <- s })
		close(ch)
	}()

	return m.waitScanCmd()
}

// waitScanCmd reads the next sweep progress message.
func (m Model) waitScanCmd() tea.Cmd {
	ch := m.scanCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return scanDoneMsg{}
		}
		return scanStatusMsg(s)
	}
}

// startBillPoll begins the continuous bill-event probe at the selected
// destination, captured now. A live handle makes this a no-op.
func (m *Model) startBillPoll() {
	dest, ok := m.selection.Address()
	if !ok {
		m.lastResult = dispatch.Result{OK: false, Message: "No device selected"}
		return
	}
	if m.billPoll.Start(dest, headers.ReadBufferedBillEvents, m.cfg.Bill.Interval) {
		m.actionNote = "bill-poll: started"
	} else {
		m.actionNote = "bill-poll: already running"
	}
}

// actionCmd runs a one-shot bridge action off the update loop.
func (m Model) actionCmd(label string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), headersTimeout)
		defer cancel()
		return actionMsg{label: label, err: fn(ctx)}
	}
}

// connectCmd opens the bridge's serial transport, preferring local config
// defaults and falling back to the bridge's stored port/baud.
func (m Model) connectCmd() tea.Cmd {
	client := m.client
	port := m.cfg.Serial.Port
	baud := m.cfg.Serial.Baud
	return m.actionCmd("connect", func(ctx context.Context) error {
		if port == "" {
			if bc, err := client.Config(ctx); err == nil {
				port = bc.Port
				if bc.Baud > 0 {
					baud = bc.Baud
				}
			}
		}
		return client.Connect(ctx, port, baud)
	})
}

// filteredDevices applies the device pane filter to the canonical registry.
func (m Model) filteredDevices() []api.Device {
	return registry.Filter(m.devices, m.deviceFilter.Value())
}

// tabHeaders is the active tab's effective list after its own filter.
func (m Model) tabHeaders() []headers.Descriptor {
	list := m.catalog.TabList(m.activeTab.Class())
	return headers.Filter(list, m.tabFilters[m.activeTab].Value())
}

// selectedDevice resolves the current selection against the registry, nil
// when nothing is selected or the address vanished from the snapshot.
func (m Model) selectedDevice() *api.Device {
	addr, ok := m.selection.Address()
	if !ok {
		return nil
	}
	return registry.Find(m.devices, addr)
}

// selectUnderCursor makes the highlighted device the active selection and
// focuses the tab matching its category.
func (m *Model) selectUnderCursor() {
	list := m.filteredDevices()
	if m.deviceCursor < 0 || m.deviceCursor >= len(list) {
		return
	}
	d := list[m.deviceCursor]
	m.selection = dispatch.Select(d.Address)
	m.autoTab(d)
}

// autoTab focuses the header tab matching the device's category: kind
// string first, then the ccTalk equipment category code (2 coin, 6 hopper,
// 1 bill).
func (m *Model) autoTab(d api.Device) {
	kind := strings.ToLower(d.Kind)
	cat := -1
	if d.EquipmentCategory != nil {
		cat = *d.EquipmentCategory
	}

	switch {
	case kind == "coin" || cat == 2:
		m.activeTab = TabCoin
	case kind == "hopper" || cat == 6:
		m.activeTab = TabHopper
	case kind == "bill" || kind == "recycler" || cat == 1:
		m.activeTab = TabRecycler
	}
	m.clampHeaderCursor()
}

// dispatchSelectedHeader sends the highlighted header to the selection,
// with the data input's payload if any.
func (m *Model) dispatchSelectedHeader() tea.Cmd {
	list := m.tabHeaders()
	if m.headerCursor < 0 || m.headerCursor >= len(list) {
		return nil
	}
	d := list[m.headerCursor]
	return m.dispatchCmd(m.selection, d.Header, m.dataInput.Value())
}

func (m *Model) clampDeviceCursor() {
	n := len(m.filteredDevices())
	if m.deviceCursor >= n {
		m.deviceCursor = n - 1
	}
	if m.deviceCursor < 0 {
		m.deviceCursor = 0
	}
}

func (m *Model) clampHeaderCursor() {
	n := len(m.tabHeaders())
	if m.headerCursor >= n {
		m.headerCursor = n - 1
	}
	if m.headerCursor < 0 {
		m.headerCursor = 0
	}
}

// Shutdown stops all recurring work. Called after the program exits.
func (m *Model) Shutdown() {
	m.scanner.Stop()
	m.billPoll.Stop()
}

func firstLine(s string) string {
	s = strings.TrimSpace(strings.TrimPrefix(s, "✗"))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
