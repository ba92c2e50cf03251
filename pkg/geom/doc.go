// Package geom provides the small 2D geometry kernel used to draw keys.
//
// Shapes are [Path] values made of move, line, cubic and close segments in
// pixel space. Elliptical arcs are approximated with four cubic Bézier
// quarter-curves, so the same geometry always produces the same path data
// in every output format.
//
// [KeyPath] turns a key's pixel box and rounded-end flags into the key
// silhouette: a rectangle with half-ellipse caps. [Fit] computes the
// aspect-preserving transform that places a scene rect in a viewport.
package geom
