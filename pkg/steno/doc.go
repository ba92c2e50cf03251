// Package steno translates raw strokes from a stenography engine into the
// key names a layout draws.
//
// # Number keys
//
// Engines report a digit chosen with the number bar as a synthetic numeric
// key ("1-") instead of the letter key that produced it ("S-"). A layout
// only has letter keys, so [Normalize] maps every numeric key back to its
// letter and adds the system's number key ("#") so the bar lights up too:
//
//	sys := steno.EnglishStenotype()
//	active := steno.Normalize([]string{"1-", "T-"}, sys.NumericKeys(), sys.Numbers, sys.NumberKey)
//	// active == {"S-", "T-", "#"}
//
// # Systems
//
// A [System] bundles a key order, its number mapping, and its number key.
// [Registry] holds the known systems by name; English Stenotype is built in
// and further systems come from configuration.
//
// # Chords
//
// [ParseChord] reads steno in the usual dash notation ("STKPW-RBGS", "KAT",
// "-T") against a system's key order, which the terminal display uses for
// typed input.
package steno
