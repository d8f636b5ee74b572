// Package headers implements the command header taxonomy: classifying the
// bridge's command descriptors into the Danger/Common/per-category buckets
// that drive the console's tabs, and the text filtering applied per tab.
//
// Classification is by name keywords, normalized to tolerate the naming
// variance across vendor command sets ("Bill_Poll", "bill-poll" and
// "Bill Poll" are the same command). The package is pure: no I/O, no
// state beyond the fixed keyword sets.
package headers

import (
	"fmt"
	"strconv"
	"strings"
)

// Well-known ccTalk header codes used for probe defaults and quick actions.
const (
	SimplePoll             = 254
	RequestEquipmentCat    = 245
	ReadBufferedBillEvents = 159
	RouteBill              = 154
	EnableHopper           = 164
	DispenseHopperCoins    = 167
	EmergencyStop          = 172
)

// Descriptor is the (header, name) pair describing one command.
type Descriptor struct {
	Header int    `json:"header"`
	Name   string `json:"name"`
}

// Label renders a descriptor the way the console shows it:
// "Route bill (154, 0x9A)". Missing names default to "Header <code>".
func (d Descriptor) Label() string {
	name := d.Name
	if name == "" {
		name = fmt.Sprintf("Header %d", d.Header)
	}
	return fmt.Sprintf("%s (%d, %s)", name, d.Header, d.Hex())
}

// Hex returns the 0x-prefixed two-digit uppercase hex form of the code.
func (d Descriptor) Hex() string {
	return fmt.Sprintf("0x%02X", d.Header)
}

// Class is the taxonomy bucket a descriptor lands in. Every descriptor is
// in exactly one class, decided in strict priority order: Danger first,
// then Common, then recycler > hopper > coin, then Other.
type Class int

const (
	ClassDanger Class = iota
	ClassCommon
	ClassRecycler
	ClassHopper
	ClassCoin
	ClassOther
)

// String returns a human-readable class label.
func (c Class) String() string {
	switch c {
	case ClassDanger:
		return "danger"
	case ClassCommon:
		return "common"
	case ClassRecycler:
		return "recycler"
	case ClassHopper:
		return "hopper"
	case ClassCoin:
		return "coin"
	default:
		return "other"
	}
}

// Common headers are cross-device operations shown de-emphasized in every
// category tab: identification, polling, inhibit/credit status, addressing.
var commonKeywords = []string{
	"request software revision",
	"request serial number",
	"request database version",
	"request product code",
	"request equipment category id",
	"request manufacturer id",
	"request variable set",
	"request polling priority",

	"simple poll",
	"request comms revision",
	"request comms status variables",
	"clear comms status variables",

	"request master inhibit status",
	"modify master inhibit status",
	"request inhibit status",
	"modify inhibit status",
	"read buffered credit or error codes",

	"address random",
	"address change",
	"address clash",
	"address poll",
}

// Danger headers are destructive or irreversible operations. They are
// excluded from the per-category tabs and only visible, flagged, in the
// all-headers view.
var dangerKeywords = []string{
	"emergency stop",
	"factory set-up",
	"reset device",

	"firmware upgrade",
	"upload firmware",
	"begin firmware upgrade",
	"finish firmware upgrade",
	"store encryption code",
	"switch encryption code",
}

var coinKeywords = []string{
	"coin",
	"sorter",
	"sorter paths",
	"payout high / low status",
	"option flags",
	"credit",
}

var hopperKeywords = []string{
	"hopper",
	"dispense hopper",
	"test hopper",
	"payout",
}

var recyclerKeywords = []string{
	"recycle",
	"recycler",
	"bill",
	"route bill",
	"escrow",
	"stack",
	"stack box",
	"barcode",
	"currency",
	"bank select",
}

// NormalizeName lower-cases a command name, collapses runs of hyphen,
// underscore and whitespace to single spaces, and trims. Both names and
// keywords go through this before matching.
func NormalizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range strings.ToLower(s) {
		switch r {
		case '-', '_', ' ', '\t', '\n', '\r':
			space = true
		default:
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

// matchesAny reports whether any keyword occurs as a substring of the
// normalized name. Substring, not token: permissive on purpose.
func matchesAny(name string, keywords []string) bool {
	n := NormalizeName(name)
	for _, k := range keywords {
		if strings.Contains(n, NormalizeName(k)) {
			return true
		}
	}
	return false
}

// IsDanger reports whether the descriptor names a destructive operation.
func IsDanger(d Descriptor) bool {
	return matchesAny(d.Name, dangerKeywords)
}

// IsCommon reports whether the descriptor names a cross-device operation.
// Danger takes priority; callers assigning buckets must check IsDanger first,
// Classify does this for them.
func IsCommon(d Descriptor) bool {
	return matchesAny(d.Name, commonKeywords)
}

// Classify assigns a descriptor to exactly one class. Category keywords are
// evaluated recycler, then hopper, then coin: a name matching two sets goes
// to the higher-priority one only.
func Classify(d Descriptor) Class {
	switch {
	case IsDanger(d):
		return ClassDanger
	case IsCommon(d):
		return ClassCommon
	case matchesAny(d.Name, recyclerKeywords):
		return ClassRecycler
	case matchesAny(d.Name, hopperKeywords):
		return ClassHopper
	case matchesAny(d.Name, coinKeywords):
		return ClassCoin
	default:
		return ClassOther
	}
}

// Catalog holds the full descriptor list split into buckets, in input order
// within each bucket. It is built once from the headers endpoint and cached
// until an explicit reload.
type Catalog struct {
	All      []Descriptor
	Common   []Descriptor
	Coin     []Descriptor
	Hopper   []Descriptor
	Recycler []Descriptor
	Other    []Descriptor
}

// Split classifies every descriptor into the catalog buckets. Danger
// descriptors land in Other (the all-headers bucket); they stay visible in
// All and are recognizable there via IsDanger.
func Split(descs []Descriptor) Catalog {
	cat := Catalog{All: descs}
	for _, d := range descs {
		switch Classify(d) {
		case ClassDanger:
			cat.Other = append(cat.Other, d)
		case ClassCommon:
			cat.Common = append(cat.Common, d)
		case ClassRecycler:
			cat.Recycler = append(cat.Recycler, d)
		case ClassHopper:
			cat.Hopper = append(cat.Hopper, d)
		case ClassCoin:
			cat.Coin = append(cat.Coin, d)
		default:
			cat.Other = append(cat.Other, d)
		}
	}
	return cat
}

// TabList returns the effective list for a category tab: Common first, then
// that category's specific set, no duplicates by construction. Classes other
// than coin/hopper/recycler return the full list (the all-headers view).
func (c Catalog) TabList(class Class) []Descriptor {
	var specific []Descriptor
	switch class {
	case ClassCoin:
		specific = c.Coin
	case ClassHopper:
		specific = c.Hopper
	case ClassRecycler:
		specific = c.Recycler
	default:
		return c.All
	}
	out := make([]Descriptor, 0, len(c.Common)+len(specific))
	out = append(out, c.Common...)
	out = append(out, specific...)
	return out
}

// MatchesFilter reports whether a descriptor matches a free-text query.
// The query matches against the decimal code, the 0x-prefixed two-digit hex
// form, or the name, all case-insensitive substring. Name matching goes
// through NormalizeName on both sides, so "bill_poll" finds "Bill Poll".
// An empty query matches everything.
func MatchesFilter(d Descriptor, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	dec := strconv.Itoa(d.Header)
	hex := strings.ToLower(d.Hex())
	return strings.Contains(dec, q) ||
		strings.Contains(hex, q) ||
		strings.Contains(NormalizeName(d.Name), NormalizeName(q))
}

// Filter returns the descriptors matching the query, preserving order.
func Filter(descs []Descriptor, query string) []Descriptor {
	if strings.TrimSpace(query) == "" {
		return descs
	}
	var out []Descriptor
	for _, d := range descs {
		if MatchesFilter(d, query) {
			out = append(out, d)
		}
	}
	return out
}
