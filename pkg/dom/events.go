package dom

// Event types dispatched on form nodes.
const (
	EventSubmit = "submit"
	EventBlur   = "blur"
	EventInput  = "input"
	EventChange = "change"
)

// Event is delivered to listeners by Dispatch.
type Event struct {
	Type   string
	Target *Node

	defaultPrevented bool
}

// PreventDefault marks the event's default action as cancelled.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Listener handles an event.
type Listener func(*Event)

// On registers a listener for the event type.
func (n *Node) On(eventType string, l Listener) {
	if l == nil {
		return
	}
	if n.listeners == nil {
		n.listeners = make(map[string][]Listener)
	}
	n.listeners[eventType] = append(n.listeners[eventType], l)
}

// HasListener reports whether any listener is registered for the event type.
func (n *Node) HasListener(eventType string) bool {
	return len(n.listeners[eventType]) > 0
}

// Dispatch runs the node's listeners for the event type in registration
// order and returns the event.
func (n *Node) Dispatch(eventType string) *Event {
	ev := &Event{Type: eventType, Target: n}
	for _, l := range n.listeners[eventType] {
		l(ev)
	}
	return ev
}
