// Package server serves the registration page over HTTP and drives it
// over WebSocket.
//
// GET / renders the form on the server. The thin client served at
// /_regform/client.js opens a WebSocket to /_regform/ws and forwards
// blur, input, change and submit events as JSON frames. Each connection
// gets a Session with its own form tree and controller. After every event
// the session renders the form and sends it back as a patch frame if it
// changed, followed by any toasts the submitter emitted.
//
//	srv := server.New(&server.ServerConfig{
//	    Address: ":8080",
//	    SubmitMiddleware: []submit.Middleware{submit.Logged(logger)},
//	})
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// Frames of one session are handled sequentially; sessions run
// concurrently.
package server
