// Package display is the layout display tool: it owns one layout, reacts to
// host events, and keeps the current scene.
//
// # Events
//
// A host (a steno engine, the HTTP server, or the replay command) drives a
// [Display] with two events:
//
//   - [Display.OnConfigChanged] when the engine's configuration changes. It
//     is ignored unless it names a system. Otherwise it takes the system's
//     number mapping, forgets the last stroke, and loads the system's
//     preferred layout file, falling back to the built-in layout.
//   - [Display.OnStroke] for every stroke. The raw keys are normalized (see
//     [steno.Normalize]) and the scene is rebuilt with them pressed.
//
// Users act through [Display.Load] (choose a layout file, remembered for
// the current system when it loads) and [Display.Reset] (forget the choice
// and return to the built-in layout).
//
// # Failure
//
// Loads report errors to the caller but never leave the display without a
// layout: a failed file load resets to the built-in layout. [Display.LoadJSON]
// is the exception and leaves the current layout in place, so a rejected
// upload changes nothing.
//
// All methods are safe for concurrent use; events are applied one at a time.
package display
