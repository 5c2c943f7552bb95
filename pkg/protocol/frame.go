package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// FrameType identifies the type of frame.
type FrameType string

const (
	FrameEvent FrameType = "event" // Client → Server field or submit event
	FramePing  FrameType = "ping"  // Client → Server keepalive
	FramePatch FrameType = "patch" // Server → Client form HTML
	FrameToast FrameType = "toast" // Server → Client notification
	FramePong  FrameType = "pong"  // Server → Client keepalive reply
	FrameError FrameType = "error" // Server → Client error
)

// MaxFrameSize is the largest frame the server reads.
const MaxFrameSize = 64 * 1024

// MaxValueLength bounds the value carried by an event frame, in bytes.
const MaxValueLength = 4096

// Frame errors.
var (
	ErrMalformedFrame = errors.New("protocol: malformed frame")
	ErrUnknownFrame   = errors.New("protocol: unknown frame type")
	ErrUnknownEvent   = errors.New("protocol: unknown event type")
	ErrFrameTooLarge  = errors.New("protocol: frame too large")
)

// envelope reads only the type of an incoming frame.
type envelope struct {
	Type FrameType `json:"type"`
}

// Decode parses one client frame. The result is an *EventFrame or a
// *PingFrame.
func Decode(data []byte) (any, error) {
	if len(data) > MaxFrameSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(data))
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}

	switch env.Type {
	case FrameEvent:
		var ev EventFrame
		if err := decodeStrict(data, &ev); err != nil {
			return nil, err
		}
		if err := ev.Validate(); err != nil {
			return nil, err
		}
		return &ev, nil
	case FramePing:
		var p PingFrame
		if err := decodeStrict(data, &p); err != nil {
			return nil, err
		}
		return &p, nil
	case "":
		return nil, fmt.Errorf("%w: missing type", ErrMalformedFrame)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFrame, env.Type)
	}
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	return nil
}

// PingFrame is a client keepalive.
type PingFrame struct {
	Type FrameType `json:"type"`
	Seq  uint64    `json:"seq,omitempty"`
}

// PongFrame answers a PingFrame with the same sequence number.
type PongFrame struct {
	Type FrameType `json:"type"`
	Seq  uint64    `json:"seq,omitempty"`
}

// NewPong returns the reply to p.
func NewPong(p *PingFrame) PongFrame {
	return PongFrame{Type: FramePong, Seq: p.Seq}
}
