// Package server exposes a workspace over HTTP so a front end, or curl,
// can drive drags remotely.
//
// # Endpoints
//
//	GET  /state          current preview and block positions
//	GET  /events         structural history
//	GET  /graph.dot      block graph as Graphviz DOT (?detailed for labels)
//	GET  /graph.svg      block graph rendered to SVG
//	GET  /snapshot.png   raster snapshot with previews
//	GET  /live           websocket pushing the /state body after every change
//	POST /reset          rebuild the workspace from the scenario
//	POST /drag/begin     {"blockId": "b"}
//	POST /drag/move      {"dx": 0, "dy": -150, "over": "trash"}
//	POST /drag/end
//	POST /drag/cancel
//
// Drag endpoints answer with the same body as GET /state. Errors are
// {"error": "...", "code": "..."} with status 400 for bad input, 404 for
// unknown blocks or areas and 409 for a drag that broke an engine
// invariant; such a drag is cancelled.
package server
