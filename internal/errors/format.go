package errors

import (
	stderrors "errors"
	"os"
	"strings"
)

// ANSI escape sequences used by Format.
const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiDim    = "\033[2m"
	ansiBold   = "\033[1m"
)

// colorEnabled is false when NO_COLOR is set (https://no-color.org).
var colorEnabled = os.Getenv("NO_COLOR") == ""

// DisableColors turns off ANSI sequences in Format, Red and Green.
func DisableColors() { colorEnabled = false }

// EnableColors turns ANSI sequences back on.
func EnableColors() { colorEnabled = true }

// Red colours text red unless colours are disabled.
func Red(text string) string { return paint(ansiRed, text) }

// Green colours text green unless colours are disabled.
func Green(text string) string { return paint(ansiGreen, text) }

func paint(seq, text string) string {
	if !colorEnabled || text == "" {
		return text
	}
	return seq + text + ansiReset
}

// Format renders the error for a terminal:
//
//	✗ E103 [config] Invalid configuration value
//	  server.port must be between 0 and 65535
//	  caused by: ...
//	  hint: ...
//	  docs: https://...
//
// Each wrapped cause gets its own line, outermost first.
func (e *RegformError) Format() string {
	var b strings.Builder

	header := "✗"
	if e.Code != "" {
		header += " " + e.Code
	}
	if e.Category != "" {
		header += " [" + string(e.Category) + "]"
	}
	b.WriteString(paint(ansiRed+ansiBold, header))
	b.WriteString(" ")
	b.WriteString(e.Message)
	b.WriteByte('\n')

	line := func(label, text, seq string) {
		b.WriteString("  ")
		if label != "" {
			b.WriteString(paint(seq, label+":"))
			b.WriteByte(' ')
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}

	if e.Detail != "" {
		line("", e.Detail, "")
	}
	for _, cause := range causes(e.Wrapped) {
		line("caused by", cause, ansiDim)
	}
	if e.Suggestion != "" {
		line("hint", e.Suggestion, ansiYellow)
	}
	if e.DocURL != "" {
		line("docs", paint(ansiDim, e.DocURL), ansiDim)
	}
	return b.String()
}

// causes flattens an error chain into one message per level, dropping the
// text each level repeats from the one below it.
func causes(err error) []string {
	var out []string
	for err != nil {
		msg := err.Error()
		next := stderrors.Unwrap(err)
		if next != nil {
			msg = strings.TrimSuffix(strings.TrimSuffix(msg, next.Error()), ": ")
		}
		if msg != "" {
			out = append(out, msg)
		}
		err = next
	}
	return out
}
