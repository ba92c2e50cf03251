// Package pkg provides the libraries behind stenoboard, a steno keyboard
// layout display.
//
// # Overview
//
// Stenoboard draws a steno keyboard from a JSON layout and lights up the
// keys of the most recent stroke. The pkg directory is organized by stage:
//
//  1. [layout] - Layout documents: schema validation, defaults, the model
//  2. [geom] - Geometry: rects, cubic key outlines, viewport fit
//  3. [scene] - The drawable scene rebuilt from a layout and a stroke
//  4. [render/sink] - SVG, PNG, JSON and terminal output of a scene
//  5. [steno] - Steno systems and stroke normalization
//  6. [display] - The display tool tying the stages to engine events
//
// Around them sit [prefs] (per-system preferred layouts), [host] (engine
// event streams), [server] (HTTP), [config], [cache] and [observability].
//
// # Architecture
//
// The data flow for one stroke:
//
//	engine event {"type":"stroke","keys":["1-","-9"]}
//	         ↓
//	    [steno] normalize (digits → letters, add "#")
//	         ↓
//	    [scene] rebuild from the current [layout]
//	         ↓
//	    [render/sink] SVG / PNG / JSON / terminal
//
// # Quick Start
//
// Show the built-in layout with a stroke pressed:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/stenoboard/pkg/display"
//	    "github.com/matzehuels/stenoboard/pkg/render/sink"
//	    "github.com/matzehuels/stenoboard/pkg/steno"
//	)
//
//	ctx := context.Background()
//	d := display.New()
//	d.OnConfigChanged(ctx, display.ConfigFor(steno.EnglishStenotype()))
//	sc := d.OnStroke(ctx, []string{"S-", "T-", "-F"})
//	svg := sink.RenderSVG(sc, sink.WithSize(800, 300))
//
// [layout]: https://pkg.go.dev/github.com/matzehuels/stenoboard/pkg/layout
// [geom]: https://pkg.go.dev/github.com/matzehuels/stenoboard/pkg/geom
// [scene]: https://pkg.go.dev/github.com/matzehuels/stenoboard/pkg/scene
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/stenoboard/pkg/render/sink
// [steno]: https://pkg.go.dev/github.com/matzehuels/stenoboard/pkg/steno
// [display]: https://pkg.go.dev/github.com/matzehuels/stenoboard/pkg/display
// [prefs]: https://pkg.go.dev/github.com/matzehuels/stenoboard/pkg/prefs
// [host]: https://pkg.go.dev/github.com/matzehuels/stenoboard/pkg/host
// [server]: https://pkg.go.dev/github.com/matzehuels/stenoboard/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/stenoboard/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/stenoboard/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/stenoboard/pkg/observability
package pkg
