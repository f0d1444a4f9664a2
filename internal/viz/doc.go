// Package viz hosts the card backdrops in the terminal.
//
// The package implements the team view using the Bubble Tea framework:
//
//   - [Model]: one card per team member, each with its own engine,
//     braille surface and runner
//   - a stats panel for the focused card with a population chart
//   - hot reload of the config file through [WaitForConfig]
//
// Every tick message is one frame. Window resizes resize the card
// surfaces and notify the shared resize hub; engines pick the new size up
// at the start of their next frame.
//
// # Key Bindings
//
//	Space - Pause/Resume frames
//	R     - Restart engines with fresh state
//	T     - Cycle color themes
//	Tab   - Focus the next card
//	?     - Show help overlay
//	Q     - Quit
package viz
