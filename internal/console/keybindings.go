package console

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Osiakosia/Emterprise-logger-adminite/internal/dispatch"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/headers"
)

// handleKey routes key presses. When a text input has focus all keys go to
// it except esc/enter (blur) and ctrl+c (quit).
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m.quitting = true
		m.Shutdown()
		return m, tea.Quit
	}

	if m.inputFocused() {
		return m.handleInputKey(msg)
	}

	switch key {
	case "q":
		m.quitting = true
		m.Shutdown()
		return m, tea.Quit

	case "?":
		m.showHelp = !m.showHelp

	case "tab":
		if m.focus == FocusDevices {
			m.focus = FocusHeaders
		} else {
			m.focus = FocusDevices
		}

	case "/":
		if m.focus == FocusHeaders {
			m.focus = FocusTabFilter
			m.tabFilters[m.activeTab].Focus()
		} else {
			m.focus = FocusDeviceFilter
			m.deviceFilter.Focus()
		}

	case "d":
		m.focus = FocusDataInput
		m.dataInput.Focus()

	case "1", "2", "3", "4":
		m.activeTab = Tab(int(key[0] - '1'))
		m.clampHeaderCursor()

	case "[":
		m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		m.clampHeaderCursor()

	case "]":
		m.activeTab = (m.activeTab + 1) % tabCount
		m.clampHeaderCursor()

	case "up", "k":
		m.moveCursor(-1)

	case "down", "j":
		m.moveCursor(1)

	case "enter":
		if m.focus == FocusDevices {
			m.selectUnderCursor()
		} else if m.focus == FocusHeaders {
			return m, m.dispatchSelectedHeader()
		}

	case "r":
		if !m.polling {
			m.polling = true
			return m, m.fetchStatusCmd()
		}

	case "a":
		m.autoRefresh = !m.autoRefresh

	case "s":
		return m, m.startScanCmd()

	case "x":
		m.scanner.Stop()

	case "b":
		if m.billPoll.Running() {
			m.billPoll.Stop()
			m.actionNote = "bill-poll: stopped"
		} else {
			m.startBillPoll()
		}

	case "e":
		return m, m.routeBillCmd(dispatch.EscrowStackData)

	case "E":
		return m, m.routeBillCmd(dispatch.EscrowReturnData)

	case "i":
		return m, m.dispatchCmd(m.selection, headers.RequestEquipmentCat, "")

	case "!":
		return m, m.dispatchCmd(m.selection, headers.EmergencyStop, "")

	case "c":
		return m, m.connectCmd()

	case "C":
		return m, m.actionCmd("disconnect", m.client.Disconnect)

	case "L":
		return m, m.actionCmd("clear log", m.client.ClearLog)

	case "esc":
		if m.showHelp {
			m.showHelp = false
		}
	}

	return m, nil
}

// handleInputKey feeds keys to the focused text input.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.blurInputs()
		m.clampDeviceCursor()
		m.clampHeaderCursor()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case FocusDeviceFilter:
		m.deviceFilter, cmd = m.deviceFilter.Update(msg)
		m.clampDeviceCursor()
	case FocusTabFilter:
		m.tabFilters[m.activeTab], cmd = m.tabFilters[m.activeTab].Update(msg)
		m.clampHeaderCursor()
	case FocusDataInput:
		m.dataInput, cmd = m.dataInput.Update(msg)
	}
	return m, cmd
}

func (m Model) inputFocused() bool {
	switch m.focus {
	case FocusDeviceFilter, FocusTabFilter, FocusDataInput:
		return true
	}
	return false
}

func (m *Model) blurInputs() {
	m.deviceFilter.Blur()
	m.tabFilters[m.activeTab].Blur()
	m.dataInput.Blur()

	switch m.focus {
	case FocusDeviceFilter:
		m.focus = FocusDevices
	case FocusTabFilter, FocusDataInput:
		m.focus = FocusHeaders
	}
}

func (m *Model) moveCursor(delta int) {
	if m.focus == FocusDevices {
		m.deviceCursor += delta
		m.clampDeviceCursor()
		return
	}
	m.headerCursor += delta
	m.clampHeaderCursor()
}

// routeBillCmd sends a bill routing command for the escrow decision.
func (m Model) routeBillCmd(data string) tea.Cmd {
	return m.dispatchCmd(m.selection, headers.RouteBill, data)
}
