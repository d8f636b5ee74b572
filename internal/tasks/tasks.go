// Package tasks implements the console's recurring work as explicit
// controller objects: the address sweep and the named continuous-poll
// loops. Each controller owns its own cancellation state and handle, with
// idempotent start/stop guarantees, instead of leaking timer handles
// through shared globals.
package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/Osiakosia/Emterprise-logger-adminite/internal/dispatch"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/errors"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/headers"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/logger"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/registry"
)

// Sender is the slice of the dispatcher the tasks need.
type Sender interface {
	SendTo(ctx context.Context, addr, header int, dataHex string) (dispatch.Result, error)
}

// MinInterval is the floor for repeating-task cadence, matching the
// bridge's tolerance for back-to-back polls.
const MinInterval = 200 * time.Millisecond

// probeTimeout bounds a single fire-and-forget probe.
const probeTimeout = 2 * time.Second

// ScanRange bounds an address sweep.
type ScanRange struct {
	Start int
	End   int
	Delay time.Duration
}

// Validate checks the range invariants: start ≤ end, both within 0-255.
func (r ScanRange) Validate() error {
	if r.Start < 0 || r.End > registry.MaxAddress {
		return errors.New(errors.ErrValidate,
			"Scan range out of bounds", "Addresses are 0-255")
	}
	if r.Start > r.End {
		return errors.New(errors.ErrValidate,
			"Scan start must not exceed end", "")
	}
	return nil
}

// Scanner sweeps an address range with a fixed probe header. Scanning is
// speculative against addresses that may not exist, so probe errors are
// swallowed under the explicit IgnoreErrors policy (logged at debug).
type Scanner struct {
	sender Sender
	log    logger.Logger

	// Probe is the header sent to each address.
	Probe int
	// IgnoreErrors is the sweep's named error policy. It defaults to true;
	// when disabled the sweep aborts on the first probe failure.
	IgnoreErrors bool

	mu      sync.Mutex
	running bool
	stop    bool
}

// NewScanner creates a scanner probing with the simple-poll header.
func NewScanner(sender Sender) *Scanner {
	return &Scanner{
		sender:       sender,
		log:          logger.Noop(),
		Probe:        headers.SimplePoll,
		IgnoreErrors: true,
	}
}

// SetLogger replaces the scanner's logger.
func (s *Scanner) SetLogger(l logger.Logger) {
	if l != nil {
		s.log = l
	}
}

// Running reports whether a sweep is in progress.
func (s *Scanner) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Stop requests cooperative cancellation. The sweep exits before its next
// step without waiting for any in-flight probe.
func (s *Scanner) Stop() {
	s.mu.Lock()
	s.stop = true
	s.mu.Unlock()
}

func (s *Scanner) stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop
}

// Run sweeps the range, reporting progress through onStatus ("Scan i/end",
// then "Done" or "Stopped"). Only one sweep may run at a time; a second Run
// while one is live is refused. Context cancellation counts as a stop.
func (s *Scanner) Run(ctx context.Context, r ScanRange, onStatus func(string)) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if onStatus == nil {
		onStatus = func(string) {}
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New(errors.ErrTask, "Scan already running",
			"Stop the current scan first")
	}
	s.running = true
	s.stop = false
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	onStatus("Scanning…")

	for addr := r.Start; addr <= r.End; addr++ {
		if s.stopped() || ctx.Err() != nil {
			onStatus("Stopped")
			return nil
		}

		if err := s.probe(ctx, addr); err != nil {
			onStatus("Stopped")
			return err
		}
		onStatus(scanProgress(addr, r.End))

		if r.Delay > 0 {
			select {
			case <-time.After(r.Delay):
			case <-ctx.Done():
				onStatus("Stopped")
				return nil
			}
		}
	}

	if s.stopped() {
		onStatus("Stopped")
		return nil
	}
	onStatus("Done")
	return nil
}

// probe fires one probe. Under IgnoreErrors the send runs detached and its
// outcome only reaches the debug log; otherwise it is awaited and returned.
func (s *Scanner) probe(ctx context.Context, addr int) error {
	if !s.IgnoreErrors {
		_, err := s.sender.SendTo(ctx, addr, s.Probe, "")
		return err
	}

	go func(addr int) {
		pctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		if _, err := s.sender.SendTo(pctx, addr, s.Probe, ""); err != nil {
			s.log.Debug("scan probe %d: %v", addr, err)
		}
	}(addr)
	return nil
}

func scanProgress(addr, end int) string {
	return "Scan " + itoa(addr) + "/" + itoa(end)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [4]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// Repeater is a named repeating probe bound to one handle, e.g. the
// bill-poll loop. Starting while live is a no-op; stopping is idempotent.
// The destination is captured at start and unaffected by later selection
// changes. Per-tick errors are swallowed — only Stop ends the loop.
type Repeater struct {
	name   string
	sender Sender
	log    logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRepeater creates a repeater with a task name used in logs.
func NewRepeater(name string, sender Sender) *Repeater {
	return &Repeater{
		name:   name,
		sender: sender,
		log:    logger.Noop(),
	}
}

// SetLogger replaces the repeater's logger.
func (r *Repeater) SetLogger(l logger.Logger) {
	if l != nil {
		r.log = l
	}
}

// Running reports whether the repeater holds a live handle.
func (r *Repeater) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}

// Start begins firing header at dest every interval. Returns false without
// side effects when a handle is already live. Intervals below MinInterval
// are clamped.
func (r *Repeater) Start(dest, header int, interval time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return false
	}
	if interval < MinInterval {
		interval = MinInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done

	go r.loop(ctx, done, dest, header, interval)
	return true
}

func (r *Repeater) loop(ctx context.Context, done chan struct{}, dest, header int, interval time.Duration) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tctx, cancel := context.WithTimeout(ctx, probeTimeout)
			if _, err := r.sender.SendTo(tctx, dest, header, ""); err != nil {
				r.log.Debug("%s tick dest=%d: %v", r.name, dest, err)
			}
			cancel()
		}
	}
}

// Stop clears the handle. Stopping an already-stopped repeater is a no-op.
// Returns once the loop has exited, so a following Start cannot race the
// old loop.
func (r *Repeater) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	done := r.done
	r.cancel = nil
	r.done = nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
