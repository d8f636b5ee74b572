package console

import (
	"time"

	"github.com/Osiakosia/Emterprise-logger-adminite/internal/api"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/dispatch"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/headers"
)

// Tab identifies one of the header tabs.
type Tab int

const (
	TabCoin Tab = iota
	TabHopper
	TabRecycler
	TabAll
)

// tabCount is the number of header tabs.
const tabCount = 4

// String returns the tab title.
func (t Tab) String() string {
	switch t {
	case TabCoin:
		return "Coin"
	case TabHopper:
		return "Hopper"
	case TabRecycler:
		return "Recycler"
	default:
		return "All"
	}
}

// Class maps a tab to its taxonomy class. TabAll maps to ClassOther,
// which Catalog.TabList treats as the full list.
func (t Tab) Class() headers.Class {
	switch t {
	case TabCoin:
		return headers.ClassCoin
	case TabHopper:
		return headers.ClassHopper
	case TabRecycler:
		return headers.ClassRecycler
	default:
		return headers.ClassOther
	}
}

// Focus identifies which part of the panel receives keystrokes.
type Focus int

const (
	FocusDevices Focus = iota
	FocusDeviceFilter
	FocusHeaders
	FocusTabFilter
	FocusDataInput
)

// frameWindow is how many recent frames are displayed, newest first.
const frameWindow = 12

// tickMsg signals a poll cycle.
type tickMsg time.Time

// statusMsg carries a snapshot fetch outcome.
type statusMsg struct {
	snap *api.StatusSnapshot
	err  error
	time time.Time
}

// headersMsg carries the descriptor catalog fetch outcome.
type headersMsg struct {
	catalog headers.Catalog
	err     error
}

// dispatchMsg carries a completed dispatch result into the last-result slot.
type dispatchMsg struct {
	result dispatch.Result
}

// scanStatusMsg is one progress update from a running sweep.
type scanStatusMsg string

// scanDoneMsg signals the sweep goroutine has exited.
type scanDoneMsg struct{}

// actionMsg carries the outcome of a connect/disconnect/clear request.
type actionMsg struct {
	label string
	err   error
}
