package validate

import (
	"strings"
	"unicode"
)

// spaceClass is the whitespace set used by the browser's \s and
// String.prototype.trim: ASCII tab, line feed, vertical tab, form feed,
// carriage return, space, every Unicode space separator and U+FEFF.
// U+0085 is not whitespace here, unlike in unicode.IsSpace.
const spaceClass = `\t\n\v\f\r \p{Z}\x{FEFF}`

// IsSpace reports whether r belongs to the form's whitespace set.
func IsSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\ufeff':
		return true
	}
	return unicode.Is(unicode.Z, r)
}

// Trim removes leading and trailing whitespace as defined by IsSpace.
func Trim(s string) string {
	return strings.TrimFunc(s, IsSpace)
}
