// Package errors provides structured, actionable error messages for regform.
//
// Infrastructure failures (configuration, wire frames, command-line usage)
// are reported as *RegformError values carrying a registered code, a
// category, a short message, and optional detail and suggestion text.
//
// Field validation failures are not errors in this sense. They are recorded
// as role to message entries by the form controller and rendered inline.
//
// # Error Codes
//
//   - E1xx: configuration
//   - E2xx: wire protocol
//   - E3xx: command line
//
// # Usage
//
//	err := errors.New("E101").
//	    WithDetail("unexpected token in regform.json").
//	    WithSuggestion("Check that regform.json is valid JSON")
//
//	fmt.Println(err.Format())
package errors
