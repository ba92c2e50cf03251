// Package layout is the in-memory model of a steno keyboard layout.
//
// A [Layout] is read from a JSON document (see the schema package for the
// format), checked against the bundled schema, and then built with every
// absent field replaced by its documented default in one place, [Parse].
//
// A [Model] owns the current layout of one display. Loads are atomic: a
// load either replaces the layout wholesale or fails and leaves the
// previous layout untouched.
//
//	m := layout.NewModel(logger)
//	if err := m.LoadFile(path); err != nil {
//	    _ = m.LoadResource(resources.Default)
//	}
//	for _, k := range m.Layout().Keys {
//	    fmt.Println(k.Name, k.Label)
//	}
//
// # Key names
//
// A key without a name gets the decimal index it was appended at during
// the load ("0", "1", ...). Host key names never look like that, so such
// keys never light up. The behavior is kept for compatibility with
// existing layout files.
package layout
