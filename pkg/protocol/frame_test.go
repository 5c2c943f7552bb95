package protocol

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/regform/pkg/regform"
)

func TestDecodeEvent(t *testing.T) {
	frame, err := Decode([]byte(`{"type":"event","event":"blur","role":"email","value":"bad"}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	ev, ok := frame.(*EventFrame)
	if !ok {
		t.Fatalf("Decode() = %T, want *EventFrame", frame)
	}

	want := regform.Event{Type: "blur", Role: regform.Email, Value: "bad"}
	if diff := cmp.Diff(want, ev.ToEvent()); diff != "" {
		t.Errorf("event mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeConsentAlias(t *testing.T) {
	frame, err := Decode([]byte(`{"type":"event","event":"change","role":"consent","checked":true}`))
	if err != nil {
		t.Fatal(err)
	}
	ev := frame.(*EventFrame).ToEvent()
	if ev.Role != regform.Consent || !ev.Checked {
		t.Errorf("event = %+v", ev)
	}
}

func TestDecodeSubmitWithoutRole(t *testing.T) {
	if _, err := Decode([]byte(`{"type":"event","event":"submit"}`)); err != nil {
		t.Errorf("submit frame rejected: %v", err)
	}
}

func TestDecodePing(t *testing.T) {
	frame, err := Decode([]byte(`{"type":"ping","seq":7}`))
	if err != nil {
		t.Fatal(err)
	}
	pong := NewPong(frame.(*PingFrame))
	if pong.Seq != 7 || pong.Type != FramePong {
		t.Errorf("pong = %+v", pong)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"not json", `{`, ErrMalformedFrame},
		{"missing type", `{}`, ErrMalformedFrame},
		{"unknown type", `{"type":"navigate"}`, ErrUnknownFrame},
		{"unknown event", `{"type":"event","event":"keydown","role":"email"}`, ErrUnknownEvent},
		{"missing role", `{"type":"event","event":"blur"}`, ErrMalformedFrame},
		{"unknown field", `{"type":"event","event":"submit","extra":1}`, ErrMalformedFrame},
		{"long value", `{"type":"event","event":"input","role":"email","value":"` + strings.Repeat("a", MaxValueLength+1) + `"}`, ErrFrameTooLarge},
		{"huge frame", strings.Repeat(" ", MaxFrameSize+1), ErrFrameTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewErrorFrameCodes(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{ErrMalformedFrame, "E200"},
		{ErrUnknownFrame, "E201"},
		{ErrUnknownEvent, "E202"},
		{regform.ErrUnknownEvent, "E202"},
		{regform.ErrUnknownRole, "E203"},
	}
	for _, tt := range tests {
		f := NewErrorFrame(tt.err)
		if f.Code != tt.code || f.Type != FrameError {
			t.Errorf("NewErrorFrame(%v) = %+v, want code %s", tt.err, f, tt.code)
		}
		if !strings.HasPrefix(f.Message, tt.code+": ") {
			t.Errorf("message %q lacks code prefix", f.Message)
		}
	}
}

func TestServerFramesJSON(t *testing.T) {
	toastFrame, ok := NewToast(map[string]any{"level": "success", "message": "Форма успешно отправлена!"})
	if !ok {
		t.Fatal("NewToast rejected a toast detail")
	}

	tests := []struct {
		name  string
		frame any
		want  string
	}{
		{"patch", NewPatch("<form></form>"), `{"type":"patch","html":"\u003cform\u003e\u003c/form\u003e"}`},
		{"toast", toastFrame, `{"type":"toast","level":"success","message":"Форма успешно отправлена!"}`},
		{"pong", PongFrame{Type: FramePong}, `{"type":"pong"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.frame)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewToastRejectsForeignDetail(t *testing.T) {
	if _, ok := NewToast(map[string]any{"foo": "bar"}); ok {
		t.Error("expected ok=false")
	}
}
