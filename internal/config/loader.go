// Package config loads and validates the .ccpanel.yaml client configuration.
package config

import (
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/Osiakosia/Emterprise-logger-adminite/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".ccpanel.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/ccpanel"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// Default returns the built-in configuration: local bridge, 1s polling
// with a 900ms request bound, a 1-50 sweep probing simple poll, and a
// 250ms bill-poll cadence.
func Default() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Server:  "http://127.0.0.1:5000",
		Poll: PollConfig{
			Interval: time.Second,
			Timeout:  900 * time.Millisecond,
		},
		Scan: ScanConfig{
			Start: 1,
			End:   50,
			Delay: 80 * time.Millisecond,
			Probe: 254,
		},
		Bill: BillPollConfig{
			Interval: 250 * time.Millisecond,
		},
		Serial: SerialConfig{
			Baud: 9600,
		},
	}
}

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'ccpanel init' to create one, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .ccpanel.yaml in current directory
// 3. .ccpanel.yaml in parent directories (stops at git root or home)
// 4. ~/.config/ccpanel/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	// Walk up to parent directories
	home, _ := os.UserHomeDir()
	dir := cwd
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		if home != "" && parent == home {
			break
		}
		dir = parent

		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		// Stop at git root
		gitPath := filepath.Join(dir, ".git")
		if _, err := os.Stat(gitPath); err == nil {
			break
		}
	}

	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads config from the found path, or returns the built-in
// defaults if no config file exists anywhere in the search path.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// parseConfig decodes the viper state over the defaults, so partial files
// only override what they mention.
func parseConfig(v *viper.Viper) (*Config, error) {
	cfg := Default()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config file structure",
			"Compare your file against 'ccpanel init' output")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants a usable config must hold.
func (c *Config) Validate() error {
	if c.Server == "" {
		return errors.New(errors.ErrConfig,
			"No server address configured",
			"Set server: in .ccpanel.yaml or pass --server")
	}
	u, err := url.Parse(c.Server)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New(errors.ErrConfig,
			"Server address is not a valid URL: "+c.Server,
			"Use the form http://host:port")
	}

	if c.Poll.Interval < 250*time.Millisecond {
		return errors.New(errors.ErrConfig,
			"Poll interval too short",
			"Minimum poll interval is 250ms")
	}
	if c.Poll.Timeout <= 0 || c.Poll.Timeout >= c.Poll.Interval {
		return errors.New(errors.ErrConfig,
			"Poll timeout must be positive and below the poll interval",
			"The request bound keeps a hung poll from starving the next tick")
	}

	if c.Scan.Start < 0 || c.Scan.End > 255 || c.Scan.Start > c.Scan.End {
		return errors.New(errors.ErrConfig,
			"Scan range must satisfy 0 ≤ start ≤ end ≤ 255", "")
	}
	if c.Scan.Probe < 0 || c.Scan.Probe > 255 {
		return errors.New(errors.ErrConfig,
			"Scan probe header must be 0-255", "")
	}

	return nil
}
