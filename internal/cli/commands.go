package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Osiakosia/Emterprise-logger-adminite/internal/errors"
)

// Command-specific flags
var (
	statusJSONFlag    bool
	statusFramesFlag  int
	statusClearFlag   bool
	headersJSONFlag   bool
	headersTabFlag    string
	headersFilterFlag string
	scanStartFlag     int
	scanEndFlag       int
	scanDelayFlag     string
	scanProbeFlag     int
	connectPortFlag   string
	connectBaudFlag   int
	initForce         bool
)

// consoleCmd starts the interactive TUI panel
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactive control panel",
	Long: `Start the interactive control panel TUI.

Shows the device registry with health indicators, recent frame traffic,
and a categorized header grid. Sends commands to the selected device and
can run an address sweep or continuous bill polling.

Keyboard shortcuts:
  tab         Switch between device and header panes
  up/down     Move cursor
  Enter       Select device / send highlighted header
  1-4, [/]    Switch header tab
  /           Filter the focused pane
  s / x       Start / stop address sweep
  b           Start/stop continuous bill polling
  ?           Show help
  q / Ctrl+C  Quit

Examples:
  ccpanel console
  ccpanel console --server http://192.168.1.20:5000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return consoleCommand()
	},
}

// statusCmd prints a one-shot snapshot of the bridge and devices
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show bridge and device status",
	Long: `Fetch one snapshot from the bridge and print it.

Shows:
  - Serial link state (port, baud)
  - Known devices with health classification
  - Traffic counters
  - Recent frames (with --frames)

Examples:
  ccpanel status
  ccpanel status --json
  ccpanel status --frames 20
  ccpanel status --clear`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusCommand(statusJSONFlag, statusFramesFlag, statusClearFlag)
	},
}

// headersCmd lists the command header catalog
var headersCmd = &cobra.Command{
	Use:   "headers",
	Short: "List known ccTalk command headers",
	Long: `Fetch the header catalog from the bridge and print it grouped the
way the console tabs group it.

Examples:
  ccpanel headers
  ccpanel headers --tab coin
  ccpanel headers --filter 0x9a
  ccpanel headers --filter poll --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return headersCommand(headersTabFlag, headersFilterFlag, headersJSONFlag)
	},
}

// sendCmd sends a single command frame
var sendCmd = &cobra.Command{
	Use:   "send <dest> <header> [data-hex]",
	Short: "Send a single command to a device",
	Long: `Send one ccTalk command to a destination address.

The destination and header must be 0-255. The optional data argument is
a hex string (e.g. "01" to stack a bill with header 154).

Examples:
  ccpanel send 2 254
  ccpanel send 40 154 01
  ccpanel send 3 167 02`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		data := ""
		if len(args) == 3 {
			data = args[2]
		}
		return sendCommand(args[0], args[1], data)
	},
}

// payoutCmd enables a hopper and dispenses coins for a euro amount
var payoutCmd = &cobra.Command{
	Use:   "payout <dest> <euros>",
	Short: "Dispense coins from a hopper",
	Long: `Enable the hopper at the destination address and dispense coins
for a whole, even euro amount (EUR 2 coins, at most 255 of them).

Examples:
  ccpanel payout 3 2
  ccpanel payout 3 20`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return payoutCommand(args[0], args[1])
	},
}

// scanCmd sweeps the address range with a probe header
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Sweep the address range for devices",
	Long: `Probe each address in a range with a poll header so the bridge's
registry picks up responding devices. Ctrl+C stops the sweep after the
current address.

Examples:
  ccpanel scan
  ccpanel scan --start 1 --end 100
  ccpanel scan --delay 50ms`,
	RunE: func(cmd *cobra.Command, args []string) error {
		delay := time.Duration(0)
		if scanDelayFlag != "" {
			parsed, err := time.ParseDuration(scanDelayFlag)
			if err != nil {
				return errors.WrapWithCode(err, errors.ErrConfig,
					"Invalid scan delay: "+scanDelayFlag,
					"Use a duration like 50ms or 1s")
			}
			delay = parsed
		}
		return scanCommand(scanStartFlag, scanEndFlag, delay, scanProbeFlag)
	},
}

// connectCmd opens the bridge's serial transport
var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Open the bridge's serial port",
	Long: `Ask the bridge to open its serial transport.

Without flags the bridge's stored port and baud are used.

Examples:
  ccpanel connect
  ccpanel connect --port /dev/ttyUSB0 --baud 9600`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return connectCommand(connectPortFlag, connectBaudFlag)
	},
}

// disconnectCmd closes the bridge's serial transport
var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Close the bridge's serial port",
	RunE: func(cmd *cobra.Command, args []string) error {
		return disconnectCommand()
	},
}

// initCmd creates a new .ccpanel.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .ccpanel.yaml configuration",
	Long: `Initialize a new ccpanel configuration file.

Creates a .ccpanel.yaml file in the current directory with sensible
defaults, prompting for the bridge address interactively.

Examples:
  ccpanel init
  ccpanel init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForce)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for ccpanel.

Examples:
  # Bash
  ccpanel completion bash > /etc/bash_completion.d/ccpanel

  # Zsh
  ccpanel completion zsh > "${fpath[1]}/_ccpanel"

  # Fish
  ccpanel completion fish > ~/.config/fish/completions/ccpanel.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrValidate,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// status command flags
	statusCmd.Flags().BoolVar(&statusJSONFlag, "json", false, "output in JSON format")
	statusCmd.Flags().IntVar(&statusFramesFlag, "frames", 0, "include the last N frames")
	statusCmd.Flags().BoolVar(&statusClearFlag, "clear", false, "clear the bridge frame log first")

	// headers command flags
	headersCmd.Flags().BoolVar(&headersJSONFlag, "json", false, "output in JSON format")
	headersCmd.Flags().StringVar(&headersTabFlag, "tab", "", "show one tab (coin, hopper, recycler, all)")
	headersCmd.Flags().StringVar(&headersFilterFlag, "filter", "", "filter by name, decimal, or 0x hex code")

	// scan command flags
	scanCmd.Flags().IntVar(&scanStartFlag, "start", -1, "first address (default from config)")
	scanCmd.Flags().IntVar(&scanEndFlag, "end", -1, "last address (default from config)")
	scanCmd.Flags().StringVar(&scanDelayFlag, "delay", "", "delay between probes (e.g. 80ms)")
	scanCmd.Flags().IntVar(&scanProbeFlag, "probe", -1, "probe header (default from config)")

	// connect command flags
	connectCmd.Flags().StringVar(&connectPortFlag, "port", "", "serial port (default: bridge's stored port)")
	connectCmd.Flags().IntVar(&connectBaudFlag, "baud", 0, "baud rate (default: bridge's stored baud)")

	// init command flags
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")

	// Register all commands
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(headersCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(payoutCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(disconnectCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}
