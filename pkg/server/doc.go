// Package server exposes layout displays over HTTP.
//
// Each display is created with POST /displays and addressed by its id.
// Engine events are posted to it and the current scene is fetched as a
// frame:
//
//	POST   /displays                      create a display
//	GET    /displays/{id}                 system, layout and active keys
//	POST   /displays/{id}/config          {"system_name":...,"numbers":{...},"number_key":...}
//	POST   /displays/{id}/stroke          {"keys":["S-","T-"]}
//	PUT    /displays/{id}/layout          raw layout document
//	POST   /displays/{id}/reset
//	GET    /displays/{id}/frame.{format}  svg, png or json; ?width=&height=
//	GET    /displays/{id}/live            websocket of JSON frames; accepts events
//	DELETE /displays/{id}
//	GET    /healthz
//
// Events for one display are applied one at a time. PNG frames are
// cached by scene content when a frame cache is configured.
package server
