// Package sink provides output format renderers for scenes.
//
// # Overview
//
// A "sink" transforms a rendered [scene.Scene] into a final output format:
//
//   - SVG: [RenderSVG]
//   - PNG: [RenderPNG], rasterized with fogleman/gg
//   - JSON: [RenderJSON], scene geometry export
//   - Terminal: [RenderTerminal], ANSI cells styled with lipgloss
//
// Basic usage:
//
//	s := renderer.Render(l, active)
//	svg := sink.RenderSVG(s, sink.WithSize(800, 300))
//	png, err := sink.RenderPNG(s, sink.WithPNGSize(800, 300))
//
// Without a size, SVG and PNG output uses the scene rect's own size (PNG
// multiplied by its scale, 2x by default).
//
// All sinks paint the layout background under the whole frame, draw key
// outlines with the scene pen (square caps, bevel joins) and center labels
// on their boxes.
//
// [scene.Scene]: github.com/matzehuels/stenoboard/pkg/scene.Scene
package sink
