// Package dom provides a small mutable element tree for server-driven forms.
//
// Unlike a virtual DOM that is rebuilt on every render, a dom tree lives for
// the whole page session. Handlers mutate it in place (append an element,
// toggle a class) and the tree is serialised back to the page afterwards.
//
// # Building
//
//	form := dom.Form(dom.Class("reg"),
//	    dom.Div(dom.Class("form_input"),
//	        dom.Input(dom.Type("email"), dom.Name("email")),
//	    ),
//	)
//
// # Querying
//
// QuerySelector, QuerySelectorAll, Matches and Closest accept a subset of
// CSS selectors: type, #id, .class, [attr], [attr="value"], the descendant
// and child combinators, and comma-separated groups.
//
// # Events
//
// On registers a listener for an event type on a node; Dispatch runs the
// listeners of that node in registration order. Events do not bubble.
//
// # Parsing
//
// ParseHTML turns external markup into a tree. Sanitize strips anything
// outside the set of elements and attributes a form needs.
package dom
