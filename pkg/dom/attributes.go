package dom

import "strings"

func attr(key, value string) Attr { return Attr{Key: key, Value: value} }

func splitClasses(s string) []string { return strings.Fields(s) }

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class adds classes to the class list.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data creates a data-* attribute.
// Example: Data("role", "email") → data-role="email"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// AttrOf sets an arbitrary attribute.
func AttrOf(key, value string) Attr { return attr(key, value) }

// Link and form attributes

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Action sets the form action attribute.
func Action(url string) Attr { return attr("action", url) }

// Method sets the form method attribute.
func Method(m string) Attr { return attr("method", m) }

// For sets the label for attribute.
func For(id string) Attr { return attr("for", id) }

// Form input attributes

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Value sets the value attribute.
func Value(value string) Attr { return attr("value", value) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// Autocomplete sets the autocomplete attribute.
func Autocomplete(value string) Attr { return attr("autocomplete", value) }

// Form state attributes

// Checked sets or clears the checked attribute.
func Checked(checked bool) Attr { return Attr{Key: "checked", Remove: !checked} }

// Disabled sets the disabled attribute.
func Disabled() Attr { return attr("disabled", "") }

// Required sets the required attribute.
func Required() Attr { return attr("required", "") }

// NoValidate sets the novalidate attribute.
func NoValidate() Attr { return attr("novalidate", "") }
