package regform

import "github.com/vango-dev/regform/pkg/validate"

// Role is the logical purpose of a form input.
type Role = validate.Field

const (
	Email           = validate.FieldEmail
	Organization    = validate.FieldOrganization
	FullName        = validate.FieldFullName
	Password        = validate.FieldPassword
	ConfirmPassword = validate.FieldConfirmPassword
	Consent         = validate.FieldConsent
)

// AllRoles lists every role in form order.
var AllRoles = []Role{Email, Organization, FullName, Password, ConfirmPassword, Consent}

// ParseRole maps a role key to a Role. "consent" is accepted as an alias
// of the checkbox key.
func ParseRole(s string) (Role, bool) {
	if s == "consent" {
		return Consent, true
	}
	for _, r := range AllRoles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Record is the data collected from an accepted form.
// Email, Organization and FullName are trimmed; Password is raw.
type Record struct {
	Email        string `json:"email"`
	Organization string `json:"organization"`
	FullName     string `json:"fullName"`
	Password     string `json:"password"`
}

// Bindings maps each role to a selector relative to the form element.
type Bindings map[Role]string

// DefaultBindings binds roles by input name, as produced by DefaultMarkup.
func DefaultBindings() Bindings {
	return Bindings{
		Email:           `input[name="email"]`,
		Organization:    `input[name="organization"]`,
		FullName:        `input[name="fullName"]`,
		Password:        `input[name="password"]`,
		ConfirmPassword: `input[name="confirmPassword"]`,
		Consent:         `input[name="checkbox"]`,
	}
}

// PlaceholderBindings binds roles by the placeholder texts of the legacy
// registration page.
func PlaceholderBindings() Bindings {
	return Bindings{
		Email:           `input[placeholder="E-mail*"]`,
		Organization:    `input[placeholder="Название организации"]`,
		FullName:        `input[placeholder="ФИО"]`,
		Password:        `input[placeholder="Пароль"]`,
		ConfirmPassword: `input[placeholder="Подтверждение пароля"]`,
		Consent:         `input[type="checkbox"]`,
	}
}

// Merge returns a copy of b with the entries of other applied on top.
// Empty selectors in other are ignored.
func (b Bindings) Merge(other Bindings) Bindings {
	out := make(Bindings, len(b)+len(other))
	for k, v := range b {
		out[k] = v
	}
	for k, v := range other {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
