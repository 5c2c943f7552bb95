package protocol

import (
	"fmt"
	"unicode/utf8"

	"github.com/vango-dev/regform/pkg/dom"
	"github.com/vango-dev/regform/pkg/regform"
)

// EventFrame carries a browser event from the thin client.
type EventFrame struct {
	Type    FrameType `json:"type"`
	Event   string    `json:"event"`
	Role    string    `json:"role,omitempty"`
	Value   string    `json:"value,omitempty"`
	Checked bool      `json:"checked,omitempty"`
}

// Validate checks the event type, the role and the value size.
func (f *EventFrame) Validate() error {
	switch f.Event {
	case dom.EventSubmit:
		return nil
	case dom.EventBlur, dom.EventInput, dom.EventChange:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, f.Event)
	}

	if f.Role == "" {
		return fmt.Errorf("%w: %s event without role", ErrMalformedFrame, f.Event)
	}
	if len(f.Value) > MaxValueLength {
		return fmt.Errorf("%w: value exceeds %d bytes", ErrFrameTooLarge, MaxValueLength)
	}
	if !utf8.ValidString(f.Value) {
		return fmt.Errorf("%w: value is not valid UTF-8", ErrMalformedFrame)
	}
	return nil
}

// ToEvent converts the frame to a controller event. Unknown roles are
// passed through; the controller rejects them.
func (f *EventFrame) ToEvent() regform.Event {
	role, ok := regform.ParseRole(f.Role)
	if !ok {
		role = regform.Role(f.Role)
	}
	return regform.Event{
		Type:    f.Event,
		Role:    role,
		Value:   f.Value,
		Checked: f.Checked,
	}
}
