// Package protocol defines the JSON frames exchanged between the thin
// client and a regform page session over WebSocket.
//
// Every frame is a JSON object with a "type" member:
//
//	client → server  {"type":"event","event":"blur","role":"email","value":"a@b","checked":false}
//	client → server  {"type":"ping","seq":3}
//	server → client  {"type":"patch","html":"<form>…</form>"}
//	server → client  {"type":"toast","level":"success","message":"…"}
//	server → client  {"type":"pong","seq":3}
//	server → client  {"type":"error","code":"E200","message":"…"}
//
// Decode validates an incoming frame. Malformed frames produce errors that
// wrap ErrMalformedFrame, ErrUnknownFrame or ErrUnknownEvent; NewErrorFrame
// turns any of them into the error frame sent back to the client.
package protocol
