package dom

import "testing"

func TestDispatchOrderAndPreventDefault(t *testing.T) {
	n := Form()
	var calls []string

	n.On(EventSubmit, func(e *Event) {
		calls = append(calls, "first")
		e.PreventDefault()
	})
	n.On(EventSubmit, func(e *Event) {
		if e.Target != n {
			t.Error("target mismatch")
		}
		calls = append(calls, "second")
	})
	n.On(EventSubmit, nil)

	ev := n.Dispatch(EventSubmit)
	if !ev.DefaultPrevented() {
		t.Error("PreventDefault not recorded")
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("calls = %v", calls)
	}
}

func TestDispatchWithoutListeners(t *testing.T) {
	n := Input()
	if n.HasListener(EventBlur) {
		t.Error("no listener registered")
	}
	ev := n.Dispatch(EventBlur)
	if ev.DefaultPrevented() {
		t.Error("default should not be prevented")
	}
}

func TestEventsDoNotBubble(t *testing.T) {
	child := Input()
	parent := Div(child)
	fired := false
	parent.On(EventInput, func(*Event) { fired = true })

	child.Dispatch(EventInput)
	if fired {
		t.Error("events must not bubble to the parent")
	}
}
