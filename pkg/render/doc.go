// Package render groups the output stages that turn a scene into bytes.
//
// # Overview
//
// A [scene.Scene] is format independent: key outlines as paths, fills and
// strokes as colors, labels as centered boxes. The [sink] subpackage draws
// it in the formats stenoboard emits:
//
//   - SVG: vector output sized to a viewport, used by the HTTP surface and
//     the render command
//   - PNG: rasterized with a pure-Go 2D context, no external tools needed
//   - JSON: the scene's geometry for external viewers
//   - Terminal: ANSI-colored cells for the watch command
//
// Every sink letterboxes the scene rect into the requested size with the
// same transform ([scene.Scene.Fit]), so all formats show the same frame.
//
// [scene.Scene]: github.com/matzehuels/stenoboard/pkg/scene.Scene
// [scene.Scene.Fit]: github.com/matzehuels/stenoboard/pkg/scene.Scene.Fit
// [sink]: github.com/matzehuels/stenoboard/pkg/render/sink
package render
