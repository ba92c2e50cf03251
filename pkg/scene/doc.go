// Package scene turns a layout and a set of pressed keys into drawable
// items.
//
// A [Renderer] keeps exactly one current [Scene]. Every call to
// [Renderer.Render] discards it and builds a new one from scratch, so
// rendering once per stroke never accumulates content:
//
//	r := scene.NewRenderer(scene.WithLogger(logger))
//	s := r.Render(l, steno.NewSet("S-", "#"))
//	t := s.Fit(geom.Size{W: 800, H: 300})
//
// For each key, in layout order, the scene holds an [Item] with the key's
// outline (see [geom.KeyPath]) and, when the key has a label, a [Label]
// centered on it. A key's fill is its pressed color while pressed, its
// normal color otherwise, and absent when the applicable color is unset.
//
// [Scene.Rect] is the union of all item and label bounds grown by the
// layout margin. It is recomputed on every render and is what viewers fit
// into their viewport, letterboxed to preserve the aspect ratio.
//
// Sinks in [github.com/matzehuels/stenoboard/pkg/render/sink] draw a scene
// as SVG, PNG, JSON or terminal output.
package scene
