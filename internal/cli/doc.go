// Package cli implements the ccpanel command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to command functions for the actual work. The general
// structure separates:
//
//   - Command definitions (cobra.Command instances)
//   - Command logic (statusCommand, sendCommand, scanCommand, ...)
//   - Implementation details (in other internal packages)
//
// # Command Structure
//
// The root command is "ccpanel" with subcommands for different operations:
//
//	ccpanel console           - Interactive control panel TUI
//	ccpanel status            - One-shot bridge/device snapshot
//	ccpanel headers           - List the known command headers
//	ccpanel send <dest> <hdr> - Send a single command
//	ccpanel scan              - Sweep the address range
//	ccpanel connect           - Open the bridge's serial port
//	ccpanel disconnect        - Close the bridge's serial port
//	ccpanel init              - Create .ccpanel.yaml config
//
// # Flag Handling
//
// Global flags (--config, --server) are defined on the root command and
// available to all subcommands. Command-specific flags like --json and
// --start/--end are defined on individual commands.
package cli
