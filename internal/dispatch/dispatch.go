// Package dispatch validates a device selection and command parameters
// before anything touches the network, then forwards the command to the
// bridge. The validation layer exists because the wire default for a
// missing destination would be address 0 — the broadcast/master address —
// which must never receive an accidental command.
package dispatch

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/Osiakosia/Emterprise-logger-adminite/internal/api"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/errors"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/logger"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/registry"
)

// Placeholder is what the UI shows when nothing is selected. It parses as
// "no selection", never as an address.
const Placeholder = "—"

// Escrow routing payloads for the route-bill header.
const (
	EscrowStackData  = "01"
	EscrowReturnData = "00"
)

// Selection is at most one selected device address, or none.
type Selection struct {
	addr int
	ok   bool
}

// NoSelection returns the empty selection.
func NoSelection() Selection {
	return Selection{}
}

// Select returns a selection of the given address, or no selection when the
// address is out of 0-255.
func Select(addr int) Selection {
	if addr < 0 || addr > registry.MaxAddress {
		return Selection{}
	}
	return Selection{addr: addr, ok: true}
}

// ParseSelection interprets the textual selection state. Empty strings, the
// placeholder, non-decimal text, and out-of-range values all mean "no
// selection" — they are states, not errors.
func ParseSelection(text string) Selection {
	t := strings.TrimSpace(text)
	if t == "" || t == Placeholder {
		return Selection{}
	}
	addr := 0
	for _, r := range t {
		if r < '0' || r > '9' {
			return Selection{}
		}
		addr = addr*10 + int(r-'0')
		if addr > registry.MaxAddress {
			return Selection{}
		}
	}
	return Selection{addr: addr, ok: true}
}

// Address returns the selected address and whether one is selected.
func (s Selection) Address() (int, bool) {
	return s.addr, s.ok
}

// String renders the selection for display.
func (s Selection) String() string {
	if !s.ok {
		return Placeholder
	}
	return fmt.Sprintf("%d", s.addr)
}

// ValidateHeader checks the command code range.
func ValidateHeader(header int) error {
	if header < 0 || header > 255 {
		return errors.New(errors.ErrValidate,
			fmt.Sprintf("Header %d out of range", header),
			"Command headers are 0-255")
	}
	return nil
}

// HopperPayoutData builds the dispense-hopper-coins payload from a euro
// amount. The hopper pays 2-euro coins, so the amount must be even and at
// most 510 (255 coins, one payload byte).
func HopperPayoutData(amountEuro int) (string, error) {
	if amountEuro <= 0 || amountEuro%2 != 0 {
		return "", errors.New(errors.ErrValidate,
			"Amount must be a positive multiple of 2 EUR",
			"The hopper dispenses 2 EUR coins")
	}
	coins := amountEuro / 2
	if coins > 255 {
		return "", errors.New(errors.ErrValidate,
			"Max 255 coins per payout", "")
	}
	return fmt.Sprintf("%02x", coins), nil
}

// Result is the single-slot last-dispatch outcome shown in the UI.
type Result struct {
	OK      bool
	Message string
}

// Dispatcher sends validated commands through the bridge client.
type Dispatcher struct {
	client *api.Client
	log    logger.Logger
}

// New creates a dispatcher over the given client.
func New(client *api.Client) *Dispatcher {
	return &Dispatcher{client: client, log: logger.Noop()}
}

// SetLogger replaces the dispatcher's logger.
func (d *Dispatcher) SetLogger(l logger.Logger) {
	if l != nil {
		d.log = l
	}
}

// Dispatch sends header with dataHex to the selected device. The selection
// must be active and the header in range; both are refused before any
// network call. The returned Result always carries a user-facing message;
// the error mirrors it for callers that propagate instead of display.
func (d *Dispatcher) Dispatch(ctx context.Context, sel Selection, header int, dataHex string) (Result, error) {
	addr, ok := sel.Address()
	if !ok {
		err := errors.NewNoSelection()
		return Result{OK: false, Message: err.Message}, err
	}
	return d.SendTo(ctx, addr, header, dataHex)
}

// SendTo sends a command to an explicit address. Used by the sweep and
// continuous-poll tasks, which capture their destination up front.
func (d *Dispatcher) SendTo(ctx context.Context, addr, header int, dataHex string) (Result, error) {
	if addr < 0 || addr > registry.MaxAddress {
		err := errors.New(errors.ErrValidate,
			fmt.Sprintf("Address %d out of range", addr),
			"Device addresses are 0-255")
		return Result{OK: false, Message: err.Message}, err
	}
	if err := ValidateHeader(header); err != nil {
		return Result{OK: false, Message: err.(*errors.Error).Message}, err
	}

	req := api.SendRequest{
		Dest:    addr,
		Header:  header,
		DataHex: strings.TrimSpace(dataHex),
	}

	d.log.Debug("send dest=%d header=%d data=%q", req.Dest, req.Header, req.DataHex)

	res, err := d.client.Send(ctx, req)
	if err != nil {
		msg := "send failed"
		var pErr *errors.Error
		if stderrors.As(err, &pErr) && pErr.Message != "" {
			msg = pErr.Message
		}
		return Result{OK: false, Message: "ERROR: " + msg}, err
	}

	msg := "Sent."
	if res.TX != "" {
		msg = "Sent: " + res.TX
	}
	return Result{OK: true, Message: msg}, nil
}
