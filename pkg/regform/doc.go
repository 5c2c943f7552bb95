// Package regform binds the registration rules in package validate to a
// form held in a dom tree.
//
// A Controller is created with Bind. It locates the form by selector,
// resolves every field role through a caller-supplied Bindings map and
// registers submit, blur, input and change listeners on the bound nodes.
// From then on the form is driven by events:
//
//	root := regform.DefaultMarkup()
//	c := regform.Bind(root, ".reg_form_block form",
//	    regform.WithSubmitter(submit.Acknowledge(session)),
//	)
//	c.HandleEvent(ctx, regform.Event{Type: dom.EventBlur, Role: regform.Email, Value: "bad"})
//
// Errors are rendered as a div.error-message appended to the field's
// container, and the container gets the has-error class. Showing an error
// always clears the previous one first, so a field never carries more than
// one annotation.
//
// If the form is not found the controller is inert: every method is a
// no-op and ValidateAll reports true.
//
// A Controller is not safe for concurrent use. Each page session owns one
// and feeds it events sequentially.
package regform
