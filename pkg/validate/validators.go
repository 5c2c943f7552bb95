package validate

import (
	"fmt"
	"regexp"
	"unicode/utf16"
)

// Validator is an interface for form field validation.
type Validator interface {
	// Validate checks if the value is valid.
	// Returns nil if valid, or an error with a message if invalid.
	Validate(value any) error
}

// ValidatorFunc is a function that implements Validator.
type ValidatorFunc func(value any) error

func (f ValidatorFunc) Validate(value any) error {
	return f(value)
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   Field
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// ----------------------------------------------------------------------------
// String Validators
// ----------------------------------------------------------------------------

// Required validates that the value is non-empty.
func Required(msg string) Validator {
	if msg == "" {
		msg = "This field is required"
	}
	return ValidatorFunc(func(value any) error {
		if isEmpty(value) {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// MinLength validates that a string has at least n characters.
// Length is counted in UTF-16 code units, as a browser counts it, so a
// character outside the Basic Multilingual Plane counts twice.
func MinLength(n int, msg string) Validator {
	if msg == "" {
		msg = fmt.Sprintf("Must be at least %d characters", n)
	}
	return ValidatorFunc(func(value any) error {
		s := toString(value)
		if s == "" {
			return nil // Let Required handle empty values
		}
		if utf16Len(s) < n {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// Pattern validates that a non-empty string matches re.
func Pattern(re *regexp.Regexp, msg string) Validator {
	if msg == "" {
		msg = "Invalid format"
	}
	return ValidatorFunc(func(value any) error {
		s := toString(value)
		if s == "" {
			return nil
		}
		if !re.MatchString(s) {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// emailPattern requires one @, no whitespace, and a dot after the domain.
var emailPattern = regexp.MustCompile(`^[^` + spaceClass + `@]+@[^` + spaceClass + `@]+\.[^` + spaceClass + `@]+$`)

// Email validates that the value looks like local@domain.tld.
func Email(msg string) Validator {
	if msg == "" {
		msg = "Invalid email address"
	}
	return Pattern(emailPattern, msg)
}

// ----------------------------------------------------------------------------
// Boolean Validators
// ----------------------------------------------------------------------------

// Checked validates that a boolean value is true.
func Checked(msg string) Validator {
	if msg == "" {
		msg = "This box must be checked"
	}
	return ValidatorFunc(func(value any) error {
		if b, ok := value.(bool); ok && b {
			return nil
		}
		return ValidationError{Message: msg}
	})
}

// ----------------------------------------------------------------------------
// Cross-field Validators
// ----------------------------------------------------------------------------

// EqualTo validates that the value equals the one returned by other.
// Strings are compared exactly, without trimming.
func EqualTo(other func() string, msg string) Validator {
	if msg == "" {
		msg = "Values do not match"
	}
	return ValidatorFunc(func(value any) error {
		if toString(value) != other() {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// ----------------------------------------------------------------------------
// Combinators
// ----------------------------------------------------------------------------

// All runs validators in order and returns the first failure.
func All(validators ...Validator) Validator {
	return ValidatorFunc(func(value any) error {
		for _, v := range validators {
			if err := v.Validate(value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Optional skips v when the value is empty after trimming.
func Optional(v Validator) Validator {
	return ValidatorFunc(func(value any) error {
		if Trim(toString(value)) == "" {
			return nil
		}
		return v.Validate(value)
	})
}

// ----------------------------------------------------------------------------
// Helpers
// ----------------------------------------------------------------------------

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	default:
		return false
	}
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		// Ranging yields U+FFFD for invalid bytes, never a surrogate.
		n += len(utf16.Encode([]rune{r}))
	}
	return n
}

func toString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
