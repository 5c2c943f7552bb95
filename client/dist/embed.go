package clientdist

import _ "embed"

// RegformJS is the thin client that forwards form events to the server.
//
// It is served at "/_regform/client.js".
//
//go:embed regform.js
var RegformJS []byte
