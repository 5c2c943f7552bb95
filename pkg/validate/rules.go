package validate

import (
	"regexp"

	"golang.org/x/text/unicode/norm"
)

// Field is the logical role of a form input, independent of its label.
type Field string

const (
	FieldEmail           Field = "email"
	FieldOrganization    Field = "organization"
	FieldFullName        Field = "fullName"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
	FieldConsent         Field = "checkbox"
)

// String returns the field key.
func (f Field) String() string { return string(f) }

// Fixed messages shown next to invalid fields.
const (
	MessageEmail           = "Введите корректный email адрес"
	MessagePassword        = "Пароль должен содержать минимум 6 символов"
	MessageConfirmPassword = "Пароли не совпадают"
	MessageConsent         = "Необходимо дать согласие на обработку персональных данных"
	MessageFullName        = "ФИО должно содержать только буквы и пробелы"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// Values is a snapshot of the form's current values.
// Strings are raw; rules trim where they need to.
type Values struct {
	Email           string
	Organization    string
	FullName        string
	Password        string
	ConfirmPassword string
	Consent         bool
}

var (
	emailValidator    = All(Required(MessageEmail), Email(MessageEmail))
	passwordValidator = All(Required(MessagePassword), MinLength(MinPasswordLength, MessagePassword))
	consentValidator  = Checked(MessageConsent)
	fullNameValidator = Optional(Pattern(fullNamePattern, MessageFullName))
)

var fullNamePattern = regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ` + spaceClass + `]+$`)

// IsEmail reports whether an already trimmed value is a valid email.
func IsEmail(s string) bool {
	return emailValidator.Validate(s) == nil
}

// IsPassword reports whether the password is non-empty and long enough.
func IsPassword(s string) bool {
	return passwordValidator.Validate(s) == nil
}

// PasswordsMatch reports whether the confirmation equals the password exactly.
func PasswordsMatch(password, confirm string) bool {
	return EqualTo(func() string { return password }, MessageConfirmPassword).Validate(confirm) == nil
}

// IsConsent reports whether consent was given.
func IsConsent(checked bool) bool {
	return consentValidator.Validate(checked) == nil
}

// IsFullName reports whether an already trimmed full name is acceptable.
// The empty string passes: the field is optional.
func IsFullName(s string) bool {
	return fullNameValidator.Validate(norm.NFC.String(s)) == nil
}

// Rule is a pure predicate over the form values with a fixed message.
type Rule struct {
	Field   Field
	Message string
	Check   func(Values) bool
}

// rules lists every rule in validation and display order.
var rules = []Rule{
	{
		Field:   FieldEmail,
		Message: MessageEmail,
		Check:   func(v Values) bool { return IsEmail(Trim(v.Email)) },
	},
	{
		Field:   FieldPassword,
		Message: MessagePassword,
		Check:   func(v Values) bool { return IsPassword(v.Password) },
	},
	{
		Field:   FieldConfirmPassword,
		Message: MessageConfirmPassword,
		Check:   func(v Values) bool { return PasswordsMatch(v.Password, v.ConfirmPassword) },
	},
	{
		Field:   FieldConsent,
		Message: MessageConsent,
		Check:   func(v Values) bool { return IsConsent(v.Consent) },
	},
	{
		Field:   FieldFullName,
		Message: MessageFullName,
		Check:   func(v Values) bool { return IsFullName(Trim(v.FullName)) },
	},
}

// Rules returns the rules in order. The slice is a copy.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// RuleFor returns the rule for a field. Organization has none.
func RuleFor(field Field) (Rule, bool) {
	for _, r := range rules {
		if r.Field == field {
			return r, true
		}
	}
	return Rule{}, false
}
