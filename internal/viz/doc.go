// Package viz plays a level in the terminal.
//
// The package implements the play view using the Bubble Tea framework:
//
//   - [Model]: ticks the world at its current tick rate and routes keys to it
//   - [Canvas]: braille canvas that samples body masks per sub-pixel
//   - [Layout]: on-screen buttons and sliders for the current phase
//   - [ReplayColors]: per-attempt colours derived from the widget colour
//
// # Key Bindings
//
//	Enter   - Ready launch in preview, launch while aiming
//	O       - Back to preview
//	R       - Reset
//	P/Space - Pause/Resume
//	Arrows  - Aim (speed up/down, angle left/right)
//	G       - Arrows change gravity instead
//	Tab/1-9 - Reuse a past attempt's velocity
//	Y/N     - Answer the level-complete prompt
//	T       - Cycle themes
//	S       - Save the canvas as an SVG in the working directory
//	?       - Show help overlay
//
// # Facts
//
// When a body's score unlocks a fact the world pauses and the fact is shown
// until it is acknowledged with Enter.
package viz
