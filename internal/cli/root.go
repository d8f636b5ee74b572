package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Osiakosia/Emterprise-logger-adminite/internal/api"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/config"
)

// Global flags available to all subcommands
var (
	configFlag string
	serverFlag string
)

// rootCmd is the base command for ccpanel.
var rootCmd = &cobra.Command{
	Use:   "ccpanel",
	Short: "Control panel for a ccTalk device network",
	Long: `ccpanel is a client-side control panel for a ccTalk serial device
network, talking to a local bridge server over HTTP.

It shows the live device registry with health indicators, the recent
frame traffic, and a categorized grid of ccTalk command headers, and it
can sweep the address range or poll a bill validator continuously.

Run 'ccpanel console' for the interactive panel, or use the one-shot
subcommands (status, headers, send, scan) for scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file path (default: search for .ccpanel.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "bridge server URL (overrides config)")
}

// Execute runs the root command and exits non-zero on error. Structured
// errors already render their own suggestion block.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Config returns the --config flag value.
func Config() string {
	return configFlag
}

// loadConfig resolves the effective configuration: file (or defaults)
// with the --server flag layered on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configFlag)
	if err != nil {
		return nil, err
	}
	if serverFlag != "" {
		cfg.Server = serverFlag
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newClient builds a bridge client from the effective configuration.
func newClient() (*api.Client, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return api.NewClient(cfg.Server), cfg, nil
}
