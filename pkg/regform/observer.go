package regform

import "github.com/vango-dev/regform/pkg/validate"

// Observer is notified of validation and submission results.
// Implementations must not mutate the controller.
type Observer interface {
	FieldValidated(role Role, ok bool)
	FormValidated(ok bool, failures []validate.ValidationError)
	Submitted(outcome Outcome)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) FieldValidated(Role, bool)                      {}
func (NopObserver) FormValidated(bool, []validate.ValidationError) {}
func (NopObserver) Submitted(Outcome)                              {}

// multiObserver fans out to several observers.
type multiObserver []Observer

// Observers combines observers into one. Nil entries are dropped.
func Observers(obs ...Observer) Observer {
	var m multiObserver
	for _, o := range obs {
		if o != nil {
			m = append(m, o)
		}
	}
	if len(m) == 1 {
		return m[0]
	}
	return m
}

func (m multiObserver) FieldValidated(role Role, ok bool) {
	for _, o := range m {
		o.FieldValidated(role, ok)
	}
}

func (m multiObserver) FormValidated(ok bool, failures []validate.ValidationError) {
	for _, o := range m {
		o.FormValidated(ok, failures)
	}
}

func (m multiObserver) Submitted(outcome Outcome) {
	for _, o := range m {
		o.Submitted(outcome)
	}
}
