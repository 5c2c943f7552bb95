// Package validate provides the pure validation rules of the registration form.
//
// Nothing in this package touches an element tree. A rule takes a snapshot
// of the form's values and reports pass or fail; the message attached to a
// rule is fixed and is exactly what the form renders next to the field.
//
// # Rules
//
// Rules run in a fixed order, which is also the order errors are displayed:
//
//   - email: non-empty, local@domain.tld, no whitespace
//   - password: at least 6 characters (UTF-16 code units)
//   - confirmPassword: equal to the raw password
//   - checkbox: consent must be given
//   - fullName: optional, letters (Latin or Cyrillic) and spaces only
//
// # Usage
//
//	v := validate.Values{Email: " user@site.ru ", Password: "secret1"}
//	for _, r := range validate.Rules() {
//	    if !r.Check(v) {
//	        // show r.Message next to r.Field
//	    }
//	}
//
// Whitespace follows the browser's definition (see IsSpace), and lengths
// are counted in UTF-16 code units.
//
// The building blocks (Required, MinLength, Pattern, EqualTo...) are
// exported so callers can compose rules of their own.
package validate
