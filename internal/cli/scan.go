package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/Osiakosia/Emterprise-logger-adminite/internal/dispatch"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/logger"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/tasks"
)

// scanCommand sweeps the address range, printing progress on one line.
// Ctrl+C requests a stop; the sweep finishes the current address first.
func scanCommand(start, end int, delay time.Duration, probe int) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	// Flags override the configured sweep parameters
	rng := tasks.ScanRange{
		Start: cfg.Scan.Start,
		End:   cfg.Scan.End,
		Delay: cfg.Scan.Delay,
	}
	if start >= 0 {
		rng.Start = start
	}
	if end >= 0 {
		rng.End = end
	}
	if delay > 0 {
		rng.Delay = delay
	}

	d := dispatch.New(client)
	scanner := tasks.NewScanner(d)
	scanner.SetLogger(logger.NewEnvLogger("[scan]"))
	scanner.Probe = cfg.Scan.Probe
	if probe >= 0 {
		scanner.Probe = probe
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	go func() {
		<-sigCh
		scanner.Stop()
	}()

	err = scanner.Run(context.Background(), rng, func(status string) {
		fmt.Printf("\r\033[K%s", status)
	})
	fmt.Println()

	return err
}
