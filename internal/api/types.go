package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// SerialStatus reports the bridge's serial transport state.
type SerialStatus struct {
	Connected bool   `json:"connected"`
	Port      string `json:"port"`
	Baud      int    `json:"baud"`
	LastError string `json:"last_error,omitempty"`
}

// Device is one entry of the bridge's device registry. Devices are
// transient: the whole set is replaced on every status snapshot and the
// address is the identity key.
type Device struct {
	Address           int     `json:"address"`
	Name              string  `json:"name,omitempty"`
	Manufacturer      string  `json:"manufacturer,omitempty"`
	Product           string  `json:"product,omitempty"`
	Kind              string  `json:"kind,omitempty"`
	EquipmentCategory *int    `json:"equipment_category,omitempty"`
	LastSeenTS        float64 `json:"last_seen_ts,omitempty"`
	LastSeen          string  `json:"last_seen,omitempty"`
	Health            string  `json:"health,omitempty"`
}

// rawDevice mirrors Device but keeps the address unparsed so list and map
// payloads can share one lenient decode path.
type rawDevice struct {
	Address           json.RawMessage `json:"address"`
	Name              string          `json:"name"`
	Manufacturer      string          `json:"manufacturer"`
	Product           string          `json:"product"`
	Kind              string          `json:"kind"`
	EquipmentCategory *int            `json:"equipment_category"`
	LastSeenTS        float64         `json:"last_seen_ts"`
	LastSeen          string          `json:"last_seen"`
	Health            string          `json:"health"`
}

func (r rawDevice) toDevice(addr int) Device {
	return Device{
		Address:           addr,
		Name:              r.Name,
		Manufacturer:      r.Manufacturer,
		Product:           r.Product,
		Kind:              r.Kind,
		EquipmentCategory: r.EquipmentCategory,
		LastSeenTS:        r.LastSeenTS,
		LastSeen:          r.LastSeen,
		Health:            r.Health,
	}
}

// parseAddress accepts a JSON number or a quoted decimal string.
// Returns false for anything else; the entry is dropped, not fatal.
func parseAddress(raw json.RawMessage) (int, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, false
	}
	s = strings.Trim(s, `"`)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// DeviceSet decodes the snapshot's devices field, which the bridge has
// shipped in two shapes over time: an ordered list of records, or a map
// from stringified address to record. Both normalize to a flat slice.
// Entries without a parseable address are dropped.
type DeviceSet []Device

// UnmarshalJSON implements the list-or-map decode.
func (s *DeviceSet) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*s = nil
		return nil
	}

	switch trimmed[0] {
	case '[':
		var list []rawDevice
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		out := make([]Device, 0, len(list))
		for _, r := range list {
			addr, ok := parseAddress(r.Address)
			if !ok {
				continue
			}
			out = append(out, r.toDevice(addr))
		}
		*s = out
		return nil

	case '{':
		var m map[string]rawDevice
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return err
		}
		out := make([]Device, 0, len(m))
		for key, r := range m {
			addr, ok := parseAddress(r.Address)
			if !ok {
				// Map form: the key is the address when the record omits it.
				n, err := strconv.Atoi(strings.TrimSpace(key))
				if err != nil {
					continue
				}
				addr = n
			}
			out = append(out, r.toDevice(addr))
		}
		*s = out
		return nil
	}

	var list []rawDevice
	return json.Unmarshal(trimmed, &list)
}

// Frame is one observed bus frame. The client only ever displays the most
// recent bounded window; history belongs to the bridge.
type Frame struct {
	TS        float64         `json:"ts,omitempty"`
	Time      string          `json:"time,omitempty"`
	Direction string          `json:"direction"`
	From      *int            `json:"from,omitempty"`
	To        *int            `json:"to,omitempty"`
	Hex       string          `json:"hex,omitempty"`
	RawHex    string          `json:"raw_hex,omitempty"`
	Decoded   json.RawMessage `json:"decoded,omitempty"`
}

// Payload returns the frame's hex payload regardless of which wire field
// carried it.
func (f Frame) Payload() string {
	if f.Hex != "" {
		return f.Hex
	}
	return f.RawHex
}

// DecodedString renders the decoded annotation: plain strings as-is,
// structured annotations as compact JSON, anything unparseable as empty.
func (f Frame) DecodedString() string {
	if len(f.Decoded) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(f.Decoded, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, f.Decoded); err != nil {
		return ""
	}
	out := buf.String()
	if out == "{}" || out == "null" {
		return ""
	}
	return out
}

// Counts are the bridge's traffic counters.
type Counts struct {
	RX           int `json:"rx"`
	TX           int `json:"tx"`
	DecodeErrors int `json:"decode_errors"`
}

// StatusSnapshot is the full GET status payload.
type StatusSnapshot struct {
	Serial  SerialStatus `json:"serial"`
	Devices DeviceSet    `json:"devices"`
	Frames  []Frame      `json:"frames"`
	Counts  *Counts      `json:"counts,omitempty"`
}

// statusWire tolerates the older flat shape where connected/port/baud sat
// at the top level instead of under serial.
type statusWire struct {
	Serial    *SerialStatus `json:"serial"`
	Connected *bool         `json:"connected"`
	Port      string        `json:"port"`
	Baud      int           `json:"baud"`
	LastError string        `json:"last_error"`
	Devices   DeviceSet     `json:"devices"`
	Frames    []Frame       `json:"frames"`
	Counts    *Counts       `json:"counts"`
}

// UnmarshalJSON folds both snapshot generations into one shape.
func (s *StatusSnapshot) UnmarshalJSON(data []byte) error {
	var w statusWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	if w.Serial != nil {
		s.Serial = *w.Serial
	} else if w.Connected != nil {
		s.Serial = SerialStatus{
			Connected: *w.Connected,
			Port:      w.Port,
			Baud:      w.Baud,
			LastError: w.LastError,
		}
	} else {
		s.Serial = SerialStatus{}
	}

	s.Devices = w.Devices
	s.Frames = w.Frames
	s.Counts = w.Counts
	return nil
}

// BridgeConfig carries the port/baud defaults owned by the bridge. Only the
// fields the console needs are modeled; the full schema is the backend's.
type BridgeConfig struct {
	Port             string `json:"port,omitempty"`
	Baud             int    `json:"baud,omitempty"`
	ValidateChecksum *bool  `json:"validate_checksum,omitempty"`
}

// SendRequest is the POST send body.
type SendRequest struct {
	Dest    int    `json:"dest"`
	Header  int    `json:"header"`
	DataHex string `json:"data_hex"`
}

// SendResult is the bridge's reply to a send. A false OK is an error even
// on a 2xx response.
type SendResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	TX    string `json:"tx,omitempty"`
}
