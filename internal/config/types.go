package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .ccpanel.yaml configuration file.
// Everything here is client-side defaults; the bridge owns its own
// configuration and only port/baud defaults are ever pushed to it.
type Config struct {
	Version int            `yaml:"version" mapstructure:"version"`
	Server  string         `yaml:"server" mapstructure:"server"`
	Poll    PollConfig     `yaml:"poll" mapstructure:"poll"`
	Scan    ScanConfig     `yaml:"scan" mapstructure:"scan"`
	Bill    BillPollConfig `yaml:"bill_poll" mapstructure:"bill_poll"`
	Serial  SerialConfig   `yaml:"serial" mapstructure:"serial"`
}

// PollConfig controls the status poller.
type PollConfig struct {
	// Interval between snapshot fetches.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Timeout aborts an in-flight snapshot request so a hung poll cannot
	// starve the next tick. Must be below Interval.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ScanConfig holds the address sweep defaults.
type ScanConfig struct {
	Start int           `yaml:"start" mapstructure:"start"`
	End   int           `yaml:"end" mapstructure:"end"`
	Delay time.Duration `yaml:"delay" mapstructure:"delay"`

	// Probe is the header sent to each address during a sweep.
	Probe int `yaml:"probe" mapstructure:"probe"`
}

// BillPollConfig holds the continuous bill-poll defaults.
type BillPollConfig struct {
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// SerialConfig carries port/baud defaults used when issuing connect
// requests. Empty values defer to the bridge's own configuration.
type SerialConfig struct {
	Port string `yaml:"port" mapstructure:"port"`
	Baud int    `yaml:"baud" mapstructure:"baud"`
}
