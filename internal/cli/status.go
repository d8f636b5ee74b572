package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Osiakosia/Emterprise-logger-adminite/internal/api"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/registry"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/ui"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/util"
)

// StatusOutput represents the JSON output for the status command.
type StatusOutput struct {
	Serial  api.SerialStatus `json:"serial"`
	Devices []DeviceStatus   `json:"devices"`
	Counts  *api.Counts      `json:"counts,omitempty"`
	Frames  []api.Frame      `json:"frames,omitempty"`
}

// DeviceStatus is a single device with its computed health tier.
type DeviceStatus struct {
	Address      int    `json:"address"`
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Product      string `json:"product,omitempty"`
	Kind         string `json:"kind,omitempty"`
	Health       string `json:"health"`
	LastSeen     string `json:"last_seen,omitempty"`
}

// statusCommand fetches one snapshot and prints it. With clear set the
// bridge's frame log is wiped first, so the snapshot reflects the reset.
func statusCommand(asJSON bool, frameCount int, clear bool) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
	defer cancel()

	if clear {
		if err := client.ClearLog(ctx); err != nil {
			return err
		}
	}

	snap, err := client.Status(ctx)
	if err != nil {
		return err
	}

	devices := registry.Normalize(snap.Devices)
	now := time.Now()

	if asJSON {
		return outputStatusJSON(snap, devices, now, frameCount)
	}
	return outputStatusText(snap, devices, now, frameCount)
}

func outputStatusJSON(snap *api.StatusSnapshot, devices []api.Device, now time.Time, frameCount int) error {
	output := StatusOutput{
		Serial:  snap.Serial,
		Devices: make([]DeviceStatus, 0, len(devices)),
		Counts:  snap.Counts,
	}

	for i := range devices {
		d := devices[i]
		output.Devices = append(output.Devices, DeviceStatus{
			Address:      d.Address,
			Name:         d.Name,
			Manufacturer: d.Manufacturer,
			Product:      d.Product,
			Kind:         d.Kind,
			Health:       registry.TierFor(now, &d).String(),
			LastSeen:     d.LastSeen,
		})
	}

	if frameCount > 0 {
		output.Frames = lastFrames(snap.Frames, frameCount)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func outputStatusText(snap *api.StatusSnapshot, devices []api.Device, now time.Time, frameCount int) error {
	fmt.Println(ui.BoldStyle.Render("Serial"))
	if snap.Serial.Connected {
		label := snap.Serial.Port
		if snap.Serial.Baud > 0 {
			label = fmt.Sprintf("%s @ %d", snap.Serial.Port, snap.Serial.Baud)
		}
		fmt.Printf("  %s %s\n", ui.ConnBadge(true), label)
	} else {
		fmt.Printf("  %s\n", ui.ConnBadge(false))
		if snap.Serial.LastError != "" {
			fmt.Printf("  %s\n", ui.MutedStyle.Render(snap.Serial.LastError))
		}
	}

	fmt.Println()
	fmt.Println(ui.BoldStyle.Render(deviceCountLabel(len(devices))))
	if len(devices) == 0 {
		fmt.Printf("  %s\n", ui.MutedStyle.Render("none"))
	}
	for i := range devices {
		d := devices[i]
		tier := registry.TierFor(now, &d)
		fmt.Printf("  %s %3d  %s\n", ui.TierSymbol(tier), d.Address, registry.DisplayName(d))
		fmt.Printf("        %s\n", ui.MutedStyle.Render(registry.Meta(d)))
	}

	if snap.Counts != nil {
		fmt.Println()
		fmt.Println(ui.BoldStyle.Render("Traffic"))
		fmt.Printf("  rx %d  tx %d  decode errors %d\n",
			snap.Counts.RX, snap.Counts.TX, snap.Counts.DecodeErrors)
	}

	if frameCount > 0 {
		frames := lastFrames(snap.Frames, frameCount)
		fmt.Println()
		fmt.Println(ui.BoldStyle.Render(fmt.Sprintf("Frames (%d)", len(frames))))
		for i := len(frames) - 1; i >= 0; i-- {
			f := frames[i]
			route := "—"
			if f.From != nil && f.To != nil {
				route = fmt.Sprintf("%d→%d", *f.From, *f.To)
			}
			fmt.Printf("  %s %s %-7s %-24s %s\n",
				ui.MutedStyle.Render(f.Time), ui.Direction(f.Direction), route,
				f.Payload(), ui.MutedStyle.Render(util.Truncate(f.DecodedString(), 48)))
		}
	}

	return nil
}

func deviceCountLabel(n int) string {
	return fmt.Sprintf("%d %s", n, util.Pluralize(n, "device", "devices"))
}

func lastFrames(frames []api.Frame, n int) []api.Frame {
	if len(frames) > n {
		return frames[len(frames)-n:]
	}
	return frames
}
