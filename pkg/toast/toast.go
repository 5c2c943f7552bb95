package toast

// EventName is the event name dispatched for toasts.
// The thin client listens for this event on window.
const EventName = "regform:toast"

// Type represents the toast notification type.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
)

// Emitter delivers a named custom event to whatever surface is showing the
// form: a WebSocket session, a terminal, or a test recorder.
type Emitter interface {
	Emit(event string, detail map[string]any)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(event string, detail map[string]any)

// Emit calls f(event, detail).
func (f EmitterFunc) Emit(event string, detail map[string]any) { f(event, detail) }

// Show displays a toast notification to the user.
//
// The client receives a CustomEvent with:
//   - event.type = "regform:toast"
//   - event.detail = { level: "success|error", message: "..." }
func Show(e Emitter, level Type, message string) {
	if e == nil {
		return
	}
	e.Emit(EventName, map[string]any{
		"level":   string(level),
		"message": message,
	})
}

// Success shows a success toast.
//
//	toast.Success(session, "Форма успешно отправлена!")
func Success(e Emitter, message string) {
	Show(e, TypeSuccess, message)
}

// Error shows an error toast.
func Error(e Emitter, message string) {
	Show(e, TypeError, message)
}

// Level extracts the level and message from an emitted toast detail.
// ok is false when detail is not a toast payload.
func Level(detail map[string]any) (level Type, message string, ok bool) {
	l, ok1 := detail["level"].(string)
	m, ok2 := detail["message"].(string)
	if !ok1 || !ok2 {
		return "", "", false
	}
	return Type(l), m, true
}
