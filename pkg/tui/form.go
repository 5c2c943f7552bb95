// Package tui runs the registration form in a terminal.
//
// Every answer is fed to a regform.Controller as an input event followed by
// a blur, exactly as a browser would, so the terminal shows the same
// messages as the page and enforces the same rules.
package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vango-dev/regform/pkg/dom"
	"github.com/vango-dev/regform/pkg/regform"
	"github.com/vango-dev/regform/pkg/submit"
	"github.com/vango-dev/regform/pkg/toast"
)

// DefaultMaxAttempts is how often a field is asked before moving on.
const DefaultMaxAttempts = 3

// field describes one prompt.
type field struct {
	role     regform.Role
	message  string
	password bool
}

var fields = []field{
	{role: regform.Email, message: "E-mail*"},
	{role: regform.Organization, message: "Название организации"},
	{role: regform.FullName, message: "ФИО"},
	{role: regform.Password, message: "Пароль", password: true},
	{role: regform.ConfirmPassword, message: "Подтверждение пароля", password: true},
}

const consentMessage = "Я даю согласие на обработку персональных данных"

// Form prompts for every field and submits the result.
type Form struct {
	driver      PromptDriver
	submitter   func(toast.Emitter) regform.Submitter
	observer    regform.Observer
	maxAttempts int
	logger      *slog.Logger
}

// Option configures a Form.
type Option func(*Form)

// WithSubmitter sets the side effect for the accepted record. It receives
// an emitter that prints toasts through the driver.
// Default: submit.Acknowledge.
func WithSubmitter(fn func(toast.Emitter) regform.Submitter) Option {
	return func(f *Form) {
		if fn != nil {
			f.submitter = fn
		}
	}
}

// WithObserver attaches an observer to the controller.
func WithObserver(o regform.Observer) Option {
	return func(f *Form) { f.observer = o }
}

// WithMaxAttempts sets how often an invalid field is asked again.
func WithMaxAttempts(n int) Option {
	return func(f *Form) {
		if n > 0 {
			f.maxAttempts = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewForm returns a Form using driver.
func NewForm(driver PromptDriver, opts ...Option) *Form {
	f := &Form{
		driver:      driver,
		submitter:   submit.Acknowledge,
		maxAttempts: DefaultMaxAttempts,
		logger:      slog.Default().With("component", "tui"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run asks for every field, then submits. Invalid answers are reported and
// asked again up to the attempt limit; the final submit still validates
// everything, so an exhausted field yields a rejected Outcome.
func (f *Form) Run(ctx context.Context) (regform.Outcome, error) {
	emitter := driverEmitter{ctx: ctx, driver: f.driver}
	opts := []regform.Option{
		regform.WithSubmitter(f.submitter(emitter)),
		regform.WithLogger(f.logger),
	}
	if f.observer != nil {
		opts = append(opts, regform.WithObserver(f.observer))
	}
	c := regform.Bind(regform.DefaultMarkup(), regform.DefaultSelector, opts...)

	for _, fd := range fields {
		if err := f.ask(ctx, c, fd); err != nil {
			return regform.Outcome{}, err
		}
	}
	if err := f.askConsent(ctx, c); err != nil {
		return regform.Outcome{}, err
	}

	out, err := c.HandleEvent(ctx, regform.Event{Type: dom.EventSubmit})
	if err != nil {
		return regform.Outcome{}, err
	}
	if !out.Accepted() {
		for _, failure := range out.Failures {
			if err := f.driver.Info(ctx, "✗ "+failure.Message); err != nil {
				return *out, err
			}
		}
	}
	return *out, nil
}

func (f *Form) ask(ctx context.Context, c *regform.Controller, fd field) error {
	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		cfg := InputConfig{Message: fd.message, Default: c.Field(fd.role).Value()}
		var (
			value string
			err   error
		)
		if fd.password {
			cfg.Default = ""
			value, err = f.driver.Password(ctx, cfg)
		} else {
			value, err = f.driver.Input(ctx, cfg)
		}
		if err != nil {
			return fmt.Errorf("tui: %s: %w", fd.role, err)
		}

		if _, err := c.HandleEvent(ctx, regform.Event{Type: dom.EventInput, Role: fd.role, Value: value}); err != nil {
			return err
		}
		if _, err := c.HandleEvent(ctx, regform.Event{Type: dom.EventBlur, Role: fd.role, Value: value}); err != nil {
			return err
		}

		msg, invalid := c.Error(fd.role)
		if !invalid {
			return nil
		}
		if err := f.driver.Info(ctx, "✗ "+msg); err != nil {
			return err
		}
	}
	return nil
}

func (f *Form) askConsent(ctx context.Context, c *regform.Controller) error {
	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		ok, err := f.driver.Confirm(ctx, ConfirmConfig{Message: consentMessage})
		if err != nil {
			return fmt.Errorf("tui: consent: %w", err)
		}
		if _, err := c.HandleEvent(ctx, regform.Event{Type: dom.EventChange, Role: regform.Consent, Checked: ok}); err != nil {
			return err
		}
		if c.ValidateField(regform.Consent) {
			return nil
		}
		msg, _ := c.Error(regform.Consent)
		if err := f.driver.Info(ctx, "✗ "+msg); err != nil {
			return err
		}
	}
	return nil
}

// driverEmitter prints toasts through the prompt driver.
type driverEmitter struct {
	ctx    context.Context
	driver PromptDriver
}

func (e driverEmitter) Emit(_ string, detail map[string]any) {
	level, message, ok := toast.Level(detail)
	if !ok {
		return
	}
	prefix := "•"
	switch level {
	case toast.TypeSuccess:
		prefix = "✓"
	case toast.TypeError:
		prefix = "✗"
	}
	_ = e.driver.Info(e.ctx, prefix+" "+message)
}
