package regform

import (
	"context"
	"errors"
	"fmt"

	"github.com/vango-dev/regform/pkg/dom"
	"github.com/vango-dev/regform/pkg/validate"
)

var (
	// ErrUnknownEvent is returned for event types the form does not handle.
	ErrUnknownEvent = errors.New("regform: unknown event type")

	// ErrUnknownRole is returned for events naming a role that is not bound.
	ErrUnknownRole = errors.New("regform: unknown field role")
)

// Event is a browser event forwarded to the controller.
type Event struct {
	// Type is one of dom.EventBlur, dom.EventInput, dom.EventChange or
	// dom.EventSubmit.
	Type string

	// Role names the field the event fired on. Ignored for submit.
	Role Role

	// Value is the field's value at the time of the event.
	Value string

	// Checked is the checkbox state at the time of the event.
	Checked bool
}

// HandleEvent applies a browser event to the tree and dispatches it to the
// bound listeners. For field events the value (or checked state, for the
// consent checkbox) is written to the node before the listeners run. The
// returned Outcome is set only for submit events.
func (c *Controller) HandleEvent(ctx context.Context, ev Event) (*Outcome, error) {
	if c.Inert() {
		return nil, nil
	}

	c.ctx = ctx
	defer func() { c.ctx = nil }()

	switch ev.Type {
	case dom.EventSubmit:
		c.last = nil
		c.form.Dispatch(dom.EventSubmit)
		out := c.last
		c.last = nil
		return out, nil

	case dom.EventBlur, dom.EventInput, dom.EventChange:
		node := c.fields[ev.Role]
		if node == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRole, ev.Role)
		}
		if ev.Role == Consent {
			node.SetChecked(ev.Checked)
		} else {
			node.SetValue(ev.Value)
		}
		node.Dispatch(ev.Type)
		return nil, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
}

// SetValues writes v into the bound fields without dispatching events.
// Adapters that collect every value up front use it before Submit.
func (c *Controller) SetValues(v validate.Values) {
	set := func(role Role, value string) {
		if n := c.fields[role]; n != nil {
			n.SetValue(value)
		}
	}
	set(Email, v.Email)
	set(Organization, v.Organization)
	set(FullName, v.FullName)
	set(Password, v.Password)
	set(ConfirmPassword, v.ConfirmPassword)
	if n := c.fields[Consent]; n != nil {
		n.SetChecked(v.Consent)
	}
}
