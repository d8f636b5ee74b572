// Package console implements the interactive TUI control panel for a
// ccTalk device network behind the bridge.
//
// The package uses the Bubble Tea framework, which follows The Elm
// Architecture (Model-Update-View pattern):
//
//   - Model: Holds panel state (snapshot, selection, tabs, filters, tasks)
//   - Update: Processes messages (keystrokes, tick events, API responses)
//   - View: Renders the current state to a string for display
//
// # Message Flow
//
// The panel operates on a tick-based refresh cycle:
//
//  1. tickMsg fires at the configured interval (default 1s)
//  2. pollCmd() fetches the status snapshot with a bounded timeout
//  3. statusMsg arrives and replaces the device/frame state wholesale
//  4. View() re-renders with the new data
//
// At most one snapshot request is in flight at a time: a tick that fires
// while the previous request is still outstanding skips its fetch. A
// failed fetch flips the connection badge to DISCONNECTED and nothing
// else; the tick loop never stops.
//
// Responses are not ordered across ticks. A slow tick's snapshot landing
// after a faster later one can briefly regress the displayed state. That
// is a known property of this kind of live-telemetry view, bounded by the
// per-request timeout, not a bug to fix here.
//
// # Header Tabs
//
// The descriptor catalog is fetched once at startup and cached until an
// explicit reload. Four tabs present it: Coin, Hopper and Recycler show
// Common ∪ category-specific headers; All shows everything including
// Danger headers, flagged. Each tab owns its own text filter.
//
// # Tasks
//
// The address sweep and the bill-poll loop run as tasks.Scanner and
// tasks.Repeater controllers. Sweep progress streams back into the model
// over a channel, read one message per Bubble Tea command in the same way
// the poller consumes its responses.
package console
