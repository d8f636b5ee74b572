// Package registry projects the bridge's raw device snapshot into the
// addressable, ordered set the console renders, and derives liveness tiers
// from traffic recency. Everything here is pure: the poller swaps whole
// snapshots, nothing is mutated in place.
package registry

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Osiakosia/Emterprise-logger-adminite/internal/api"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/util"
)

// MaxAddress is the top of the ccTalk address space.
const MaxAddress = 255

// Normalize turns a decoded device set into the canonical ordered-by-address
// slice. Entries outside 0-255 are dropped, never fatal.
func Normalize(devs api.DeviceSet) []api.Device {
	out := make([]api.Device, 0, len(devs))
	for _, d := range devs {
		if d.Address < 0 || d.Address > MaxAddress {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out
}

// Find returns the device at addr, or nil when absent from the registry.
func Find(devs []api.Device, addr int) *api.Device {
	for i := range devs {
		if devs[i].Address == addr {
			return &devs[i]
		}
	}
	return nil
}

// DisplayName joins name, manufacturer and product, falling back to
// "Device <addr>" when all are empty.
func DisplayName(d api.Device) string {
	var parts []string
	for _, p := range []string{d.Name, d.Manufacturer, d.Product} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("Device %d", d.Address)
	}
	return strings.Join(parts, " • ")
}

// Meta renders the secondary info line: kind, category code, last-seen.
func Meta(d api.Device) string {
	var parts []string
	if d.Kind != "" {
		parts = append(parts, d.Kind)
	}
	if d.EquipmentCategory != nil {
		parts = append(parts, fmt.Sprintf("cat:%d", *d.EquipmentCategory))
	}
	if d.LastSeen != "" {
		parts = append(parts, "seen:"+d.LastSeen)
	}
	return util.JoinOrNone(parts)
}

// searchLabel is the haystack the free-text filter matches against.
func searchLabel(d api.Device) string {
	return strings.ToLower(strconv.Itoa(d.Address) + " " + DisplayName(d) + " " + Meta(d))
}

// Filter returns the devices whose label contains the query,
// case-insensitive. An empty query returns the input unchanged; the
// canonical slice is never mutated.
func Filter(devs []api.Device, query string) []api.Device {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return devs
	}
	var out []api.Device
	for _, d := range devs {
		if strings.Contains(searchLabel(d), q) {
			out = append(out, d)
		}
	}
	return out
}

// Tier is the derived liveness classification of a device.
type Tier int

const (
	TierUnknown Tier = iota
	TierOnline
	TierSlow
	TierOffline
)

// String returns the lower-case tier name.
func (t Tier) String() string {
	switch t {
	case TierOnline:
		return "online"
	case TierSlow:
		return "slow"
	case TierOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// Liveness windows: traffic within 2s is online, within 5s is slow,
// anything older is offline.
const (
	OnlineWindow = 2 * time.Second
	SlowWindow   = 5 * time.Second
)

// Classify derives the tier from (now, lastSeenTS, explicit). A non-empty
// explicit tier from the server is authoritative; unrecognized explicit
// values fall back to recency.
func Classify(now time.Time, lastSeenTS float64, explicit string) Tier {
	switch strings.ToLower(strings.TrimSpace(explicit)) {
	case "online":
		return TierOnline
	case "slow":
		return TierSlow
	case "offline":
		return TierOffline
	}

	elapsed := now.Sub(time.Unix(0, int64(lastSeenTS*float64(time.Second))))
	switch {
	case elapsed < OnlineWindow:
		return TierOnline
	case elapsed < SlowWindow:
		return TierSlow
	default:
		return TierOffline
	}
}

// TierFor classifies a device reference; nil (no selection, or address not
// in the current registry) is the distinct unknown tier, not offline.
func TierFor(now time.Time, d *api.Device) Tier {
	if d == nil {
		return TierUnknown
	}
	return Classify(now, d.LastSeenTS, d.Health)
}
