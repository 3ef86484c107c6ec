package clientdist

import _ "embed"

// StickyJS is the browser hook that observes sticky triggers.
//
// It is served at "/client.js".
//go:embed sticky.js
var StickyJS []byte
