package tasks

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Osiakosia/Emterprise-logger-adminite/internal/dispatch"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/errors"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/logger"
)

// fakeSender records probes and can fail on demand.
type fakeSender struct {
	mu    sync.Mutex
	calls []int
	err   error
}

func (f *fakeSender) SendTo(ctx context.Context, addr, header int, dataHex string) (dispatch.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, addr)
	if f.err != nil {
		return dispatch.Result{OK: false, Message: "ERROR: probe failed"}, f.err
	}
	return dispatch.Result{OK: true, Message: "Sent."}, nil
}

func (f *fakeSender) addrs() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int, len(f.calls))
	copy(out, f.calls)
	return out
}

func TestScanRangeValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       ScanRange
		wantErr bool
	}{
		{"full range", ScanRange{Start: 0, End: 255}, false},
		{"single address", ScanRange{Start: 40, End: 40}, false},
		{"negative start", ScanRange{Start: -1, End: 10}, true},
		{"end over 255", ScanRange{Start: 0, End: 256}, true},
		{"start past end", ScanRange{Start: 10, End: 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if tt.wantErr {
				assert.True(t, errors.IsCode(err, errors.ErrValidate))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScannerRun(t *testing.T) {
	sender := &fakeSender{}
	s := NewScanner(sender)
	s.IgnoreErrors = false // awaited probes: deterministic call counts

	var statuses []string
	err := s.Run(context.Background(), ScanRange{Start: 1, End: 3}, func(st string) {
		statuses = append(statuses, st)
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, sender.addrs())
	assert.Equal(t, []string{"Scanning…", "Scan 1/3", "Scan 2/3", "Scan 3/3", "Done"}, statuses)
	assert.False(t, s.Running())
}

func TestScannerStopMidSweep(t *testing.T) {
	sender := &fakeSender{}
	s := NewScanner(sender)
	s.IgnoreErrors = false

	var statuses []string
	err := s.Run(context.Background(), ScanRange{Start: 1, End: 100}, func(st string) {
		statuses = append(statuses, st)
		// Request a stop after the third probe completes
		if st == "Scan 3/100" {
			s.Stop()
		}
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, sender.addrs())
	assert.Equal(t, "Stopped", statuses[len(statuses)-1])
	assert.False(t, s.Running())
}

func TestScannerRefusesConcurrentRun(t *testing.T) {
	sender := &fakeSender{}
	s := NewScanner(sender)
	s.IgnoreErrors = false

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- s.Run(context.Background(), ScanRange{Start: 1, End: 2}, func(st string) {
			if st == "Scan 1/2" {
				close(started)
				<-release
			}
		})
	}()

	<-started
	err := s.Run(context.Background(), ScanRange{Start: 1, End: 2}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTask))

	close(release)
	require.NoError(t, <-done)
}

func TestScannerContextCancel(t *testing.T) {
	sender := &fakeSender{}
	s := NewScanner(sender)
	s.IgnoreErrors = false

	ctx, cancel := context.WithCancel(context.Background())

	var statuses []string
	err := s.Run(ctx, ScanRange{Start: 1, End: 50, Delay: 10 * time.Millisecond}, func(st string) {
		statuses = append(statuses, st)
		if st == "Scan 2/50" {
			cancel()
		}
	})

	require.NoError(t, err)
	assert.Equal(t, "Stopped", statuses[len(statuses)-1])
}

func TestScannerAbortsOnErrorWhenNotIgnoring(t *testing.T) {
	sender := &fakeSender{err: errors.New(errors.ErrAPI, "Bridge unreachable", "")}
	s := NewScanner(sender)
	s.IgnoreErrors = false

	var statuses []string
	err := s.Run(context.Background(), ScanRange{Start: 1, End: 10}, func(st string) {
		statuses = append(statuses, st)
	})

	require.Error(t, err)
	assert.Equal(t, []int{1}, sender.addrs())
	assert.Equal(t, "Stopped", statuses[len(statuses)-1])
}

func TestScannerIgnoreErrorsSwallowsFailures(t *testing.T) {
	sender := &fakeSender{err: errors.New(errors.ErrAPI, "Bridge unreachable", "")}
	s := NewScanner(sender)
	buf := logger.NewBufferLogger()
	s.SetLogger(buf)

	err := s.Run(context.Background(), ScanRange{Start: 1, End: 3}, nil)
	require.NoError(t, err, "probe failures must not abort the sweep")

	// Probes are fire-and-forget; wait for them to land in the debug log
	require.Eventually(t, func() bool {
		return len(sender.addrs()) == 3
	}, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		return buf.HasLevel("debug")
	}, time.Second, 5*time.Millisecond)
}

func TestScannerStopBeforeRun(t *testing.T) {
	// A leftover stop request must not poison the next sweep
	sender := &fakeSender{}
	s := NewScanner(sender)
	s.IgnoreErrors = false
	s.Stop()

	var statuses []string
	err := s.Run(context.Background(), ScanRange{Start: 1, End: 2}, func(st string) {
		statuses = append(statuses, st)
	})

	require.NoError(t, err)
	assert.Equal(t, "Done", statuses[len(statuses)-1])
}

func TestRepeater(t *testing.T) {
	t.Run("fires at the captured destination", func(t *testing.T) {
		sender := &fakeSender{}
		r := NewRepeater("bill-poll", sender)

		require.True(t, r.Start(40, 159, MinInterval))
		require.Eventually(t, func() bool {
			return len(sender.addrs()) >= 2
		}, 2*time.Second, 10*time.Millisecond)
		r.Stop()

		for _, addr := range sender.addrs() {
			assert.Equal(t, 40, addr)
		}
	})

	t.Run("start while live is a no-op", func(t *testing.T) {
		sender := &fakeSender{}
		r := NewRepeater("bill-poll", sender)

		require.True(t, r.Start(40, 159, time.Hour))
		assert.False(t, r.Start(41, 159, time.Hour), "second start must be refused")
		assert.True(t, r.Running())
		r.Stop()
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		sender := &fakeSender{}
		r := NewRepeater("bill-poll", sender)

		r.Stop() // never started
		require.True(t, r.Start(40, 159, time.Hour))
		r.Stop()
		r.Stop()
		assert.False(t, r.Running())
	})

	t.Run("errors do not end the loop", func(t *testing.T) {
		sender := &fakeSender{err: errors.New(errors.ErrAPI, "Bridge unreachable", "")}
		r := NewRepeater("bill-poll", sender)
		buf := logger.NewBufferLogger()
		r.SetLogger(buf)

		require.True(t, r.Start(40, 159, MinInterval))
		require.Eventually(t, func() bool {
			return len(sender.addrs()) >= 2
		}, 2*time.Second, 10*time.Millisecond)
		r.Stop()

		assert.True(t, buf.HasLevel("debug"))
	})

	t.Run("restart after stop", func(t *testing.T) {
		sender := &fakeSender{}
		r := NewRepeater("bill-poll", sender)

		require.True(t, r.Start(40, 159, time.Hour))
		r.Stop()
		require.True(t, r.Start(41, 159, time.Hour))
		r.Stop()
	})
}
