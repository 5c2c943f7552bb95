package protocol

import (
	"errors"

	rferrors "github.com/vango-dev/regform/internal/errors"
	"github.com/vango-dev/regform/pkg/regform"
	"github.com/vango-dev/regform/pkg/toast"
)

// PatchFrame replaces the client's form with HTML.
type PatchFrame struct {
	Type FrameType `json:"type"`
	HTML string    `json:"html"`
}

// NewPatch returns a patch frame carrying the form's outer HTML.
func NewPatch(html string) PatchFrame {
	return PatchFrame{Type: FramePatch, HTML: html}
}

// ToastFrame asks the client to show a notification.
type ToastFrame struct {
	Type    FrameType `json:"type"`
	Level   string    `json:"level"`
	Title   string    `json:"title,omitempty"`
	Message string    `json:"message"`
}

// NewToast converts a toast event detail. ok is false when detail is not a
// toast payload.
func NewToast(detail map[string]any) (ToastFrame, bool) {
	level, message, ok := toast.Level(detail)
	if !ok {
		return ToastFrame{}, false
	}
	title, _ := detail["title"].(string)
	return ToastFrame{Type: FrameToast, Level: string(level), Title: title, Message: message}, true
}

// ErrorFrame reports a rejected frame. The session stays open.
type ErrorFrame struct {
	Type    FrameType `json:"type"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

// NewErrorFrame maps err to a coded error frame.
func NewErrorFrame(err error) ErrorFrame {
	code := "E200"
	switch {
	case errors.Is(err, ErrUnknownFrame):
		code = "E201"
	case errors.Is(err, ErrUnknownEvent), errors.Is(err, regform.ErrUnknownEvent):
		code = "E202"
	case errors.Is(err, regform.ErrUnknownRole):
		code = "E203"
	}
	return ErrorFrame{
		Type:    FrameError,
		Code:    code,
		Message: rferrors.New(code).Wrap(err).Error(),
	}
}
