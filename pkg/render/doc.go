// Package render serialises dom trees to HTML.
//
// It is used for the first server-side render of the registration page and
// for every patch sent back over the WebSocket after an event.
//
//   - Text and attribute values are escaped
//   - Void elements (input, br...) have no closing tag
//   - Boolean attributes (checked, disabled...) are rendered bare
//   - Attributes are sorted for deterministic output
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(form)
//
// # Full Page Rendering
//
//	err := renderer.RenderPage(w, render.PageData{
//	    Title:        "Регистрация",
//	    Body:         root,
//	    ClientScript: "/_regform/client.js",
//	})
package render
