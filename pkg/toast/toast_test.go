package toast_test

import (
	"testing"

	"github.com/vango-dev/regform/pkg/toast"
)

// recorder captures emitted events for verification.
type recorder struct {
	events []emittedEvent
}

type emittedEvent struct {
	name   string
	detail map[string]any
}

func (r *recorder) Emit(name string, detail map[string]any) {
	r.events = append(r.events, emittedEvent{name, detail})
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name  string
		show  func(toast.Emitter, string)
		level toast.Type
	}{
		{"success", toast.Success, toast.TypeSuccess},
		{"error", toast.Error, toast.TypeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			tt.show(rec, "Форма успешно отправлена!")

			if len(rec.events) != 1 {
				t.Fatalf("expected 1 event, got %d", len(rec.events))
			}
			event := rec.events[0]
			if event.name != toast.EventName {
				t.Errorf("expected event name %q, got %q", toast.EventName, event.name)
			}
			level, message, ok := toast.Level(event.detail)
			if !ok {
				t.Fatalf("detail is not a toast: %v", event.detail)
			}
			if level != tt.level {
				t.Errorf("expected level %q, got %q", tt.level, level)
			}
			if message != "Форма успешно отправлена!" {
				t.Errorf("unexpected message %q", message)
			}
		})
	}
}

func TestNilEmitter(t *testing.T) {
	// Must not panic.
	toast.Success(nil, "ignored")
	toast.Error(nil, "ignored")
}

func TestEmitterFunc(t *testing.T) {
	var got string
	e := toast.EmitterFunc(func(event string, detail map[string]any) {
		got = event
	})
	toast.Error(e, "x")
	if got != toast.EventName {
		t.Errorf("got %q", got)
	}
}

func TestLevelRejectsForeignDetail(t *testing.T) {
	if _, _, ok := toast.Level(map[string]any{"level": 1}); ok {
		t.Error("expected ok=false")
	}
}
