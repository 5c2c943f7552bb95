package regform

import (
	"context"
	"log/slog"

	"github.com/vango-dev/regform/pkg/dom"
	"github.com/vango-dev/regform/pkg/validate"
)

// Annotation rendering.
const (
	ErrorClass    = "error-message"
	HasErrorClass = "has-error"

	// RoleAttr is set on every bound field so clients can report the role
	// of inputs that carry no name.
	RoleAttr = "data-role"
)

// Controller validates a bound registration form and renders its errors.
type Controller struct {
	form       *dom.Node
	fields     map[Role]*dom.Node
	bindings   Bindings
	containers []string
	errors     map[Role]string
	state      State

	submitter Submitter
	observer  Observer
	logger    *slog.Logger

	// ctx is the context of the event being dispatched.
	ctx  context.Context
	last *Outcome
}

// Option configures a Controller.
type Option func(*Controller)

// WithBindings sets the role to selector map. Roles missing from b keep
// their default binding.
func WithBindings(b Bindings) Option {
	return func(c *Controller) {
		c.bindings = c.bindings.Merge(b)
	}
}

// WithSubmitter sets the side effect run for an accepted form.
func WithSubmitter(s Submitter) Option {
	return func(c *Controller) {
		if s != nil {
			c.submitter = s
		}
	}
}

// WithObserver registers an observer for validation results.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithContainers sets the selectors tried, in order, to find a field's
// annotation container.
func WithContainers(selectors ...string) Option {
	return func(c *Controller) {
		if len(selectors) > 0 {
			c.containers = append([]string(nil), selectors...)
		}
	}
}

// Bind locates the form matching selector under root and attaches the
// controller's listeners. If no form matches, the returned controller is
// inert.
func Bind(root *dom.Node, selector string, opts ...Option) *Controller {
	c := &Controller{
		fields:     make(map[Role]*dom.Node),
		bindings:   DefaultBindings(),
		containers: append([]string(nil), DefaultContainers...),
		errors:     make(map[Role]string),
		submitter:  SubmitterFunc(func(context.Context, Record) error { return nil }),
		observer:   NopObserver{},
		logger:     slog.Default().With("component", "regform"),
	}
	for _, opt := range opts {
		opt(c)
	}

	if root != nil {
		if root.Matches(selector) {
			c.form = root
		} else {
			c.form = root.QuerySelector(selector)
		}
	}
	if c.form == nil {
		c.logger.Warn("form not found, controller inert", "selector", selector)
		return c
	}

	c.form.On(dom.EventSubmit, func(ev *dom.Event) {
		ev.PreventDefault()
		out := c.Submit(c.eventContext())
		c.last = &out
	})

	for _, role := range AllRoles {
		sel, ok := c.bindings[role]
		if !ok || sel == "" {
			continue
		}
		node := c.form.QuerySelector(sel)
		if node == nil {
			c.logger.Warn("field not found, its rule is skipped", "role", string(role), "selector", sel)
			continue
		}
		node.SetAttr(RoleAttr, string(role))
		c.fields[role] = node
		c.attach(role, node)
	}
	return c
}

func (c *Controller) attach(role Role, node *dom.Node) {
	switch role {
	case Consent:
		node.On(dom.EventChange, func(*dom.Event) { c.ClearError(role) })
		node.On(dom.EventInput, func(*dom.Event) { c.ClearError(role) })
		node.On(dom.EventBlur, func(*dom.Event) { c.ClearError(role) })
	case Organization:
		node.On(dom.EventInput, func(*dom.Event) { c.ClearError(role) })
		node.On(dom.EventBlur, func(*dom.Event) { c.ClearError(role) })
	default:
		node.On(dom.EventBlur, func(*dom.Event) { c.ValidateField(role) })
		node.On(dom.EventInput, func(*dom.Event) { c.ClearError(role) })
	}
}

func (c *Controller) eventContext() context.Context {
	if c.ctx != nil {
		return c.ctx
	}
	return context.Background()
}

// Inert reports whether no form was found at bind time.
func (c *Controller) Inert() bool { return c.form == nil }

// Form returns the bound form element, or nil when inert.
func (c *Controller) Form() *dom.Node { return c.form }

// Field returns the node bound to role, or nil.
func (c *Controller) Field(role Role) *dom.Node { return c.fields[role] }

// State returns the submit state. Between events it is always StateIdle.
func (c *Controller) State() State { return c.state }

// Values reads the current values of the bound fields. Unbound fields read
// as empty.
func (c *Controller) Values() validate.Values {
	return validate.Values{
		Email:           c.value(Email),
		Organization:    c.value(Organization),
		FullName:        c.value(FullName),
		Password:        c.value(Password),
		ConfirmPassword: c.value(ConfirmPassword),
		Consent:         c.checked(Consent),
	}
}

func (c *Controller) value(role Role) string {
	if n := c.fields[role]; n != nil {
		return n.Value()
	}
	return ""
}

func (c *Controller) checked(role Role) bool {
	if n := c.fields[role]; n != nil {
		return n.IsChecked()
	}
	return false
}

// Record collects the trimmed email, organization and full name and the
// raw password.
func (c *Controller) Record() Record {
	v := c.Values()
	return Record{
		Email:        validate.Trim(v.Email),
		Organization: validate.Trim(v.Organization),
		FullName:     validate.Trim(v.FullName),
		Password:     v.Password,
	}
}

// Errors returns a copy of the current error mapping.
func (c *Controller) Errors() map[Role]string {
	out := make(map[Role]string, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// Error returns the current message for role.
func (c *Controller) Error(role Role) (string, bool) {
	msg, ok := c.errors[role]
	return msg, ok
}

// ValidateAll runs every rule whose field is bound, in rule order, and
// records each failure in the error mapping. Passing rules remove their
// entry. Annotations are not touched.
func (c *Controller) ValidateAll() bool {
	if c.Inert() {
		return true
	}

	values := c.Values()
	var failures []validate.ValidationError
	for _, rule := range validate.Rules() {
		if c.fields[rule.Field] == nil {
			continue
		}
		if rule.Check(values) {
			delete(c.errors, rule.Field)
			continue
		}
		c.errors[rule.Field] = rule.Message
		failures = append(failures, validate.ValidationError{Field: rule.Field, Message: rule.Message})
	}

	ok := len(failures) == 0
	c.observer.FormValidated(ok, failures)
	return ok
}

// ValidateField re-runs the rule for one role and shows or clears its
// error. Roles without a rule or without a bound field are valid.
func (c *Controller) ValidateField(role Role) bool {
	if c.Inert() || c.fields[role] == nil {
		return true
	}
	rule, ok := validate.RuleFor(role)
	if !ok {
		return true
	}

	c.ClearError(role)
	valid := rule.Check(c.Values())
	if !valid {
		c.ShowError(role, rule.Message)
	}
	c.observer.FieldValidated(role, valid)
	return valid
}

// ShowError records message for role and renders its annotation. Any
// previous annotation for the field is removed first.
func (c *Controller) ShowError(role Role, message string) {
	if c.Inert() {
		return
	}
	c.ClearError(role)
	c.errors[role] = message

	container := c.container(role)
	if container == nil {
		return
	}
	annotation := dom.Div(dom.Class(ErrorClass), dom.Text(message))
	annotation.SetStyle("color", "#ff0000")
	annotation.SetStyle("font-size", "12px")
	annotation.SetStyle("margin-top", "5px")
	container.AppendChild(annotation)
	container.AddClass(HasErrorClass)
}

// ClearError removes role's entry, its annotation and the container's
// error class. Clearing a field without an error does nothing.
func (c *Controller) ClearError(role Role) {
	if c.Inert() {
		return
	}
	delete(c.errors, role)

	container := c.container(role)
	if container == nil {
		return
	}
	removeAnnotations(container)
	container.RemoveClass(HasErrorClass)
}

// ClearAll empties the error mapping and removes every annotation and
// error class inside the form.
func (c *Controller) ClearAll() {
	if c.Inert() {
		return
	}
	for k := range c.errors {
		delete(c.errors, k)
	}
	for _, n := range c.form.QuerySelectorAll("." + ErrorClass) {
		n.Remove()
	}
	for _, n := range c.form.QuerySelectorAll("." + HasErrorClass) {
		n.RemoveClass(HasErrorClass)
	}
}

// DisplayErrors renders every recorded error in rule order.
func (c *Controller) DisplayErrors() {
	if c.Inert() {
		return
	}
	for _, rule := range validate.Rules() {
		if msg, ok := c.errors[rule.Field]; ok {
			c.ShowError(rule.Field, msg)
		}
	}
}

// Submit runs the submit flow: clear, validate, then either hand the
// record to the submitter or render the errors. An inert controller
// returns an Outcome in StateIdle and submits nothing.
func (c *Controller) Submit(ctx context.Context) Outcome {
	if c.Inert() {
		return Outcome{State: StateIdle}
	}

	c.state = StateValidating
	c.ClearAll()
	ok := c.ValidateAll()

	var out Outcome
	if ok {
		out = Outcome{State: StateAccepted, Record: c.Record()}
		if err := c.submitter.Submit(ctx, out.Record); err != nil {
			out.Err = err
			c.logger.Error("submission failed", "error", err)
		}
	} else {
		out = Outcome{State: StateRejected, Failures: c.failures()}
		c.DisplayErrors()
		c.logger.Debug("form rejected", "failures", len(out.Failures))
	}

	c.observer.Submitted(out)
	c.state = StateIdle
	return out
}

func (c *Controller) failures() []validate.ValidationError {
	var out []validate.ValidationError
	for _, rule := range validate.Rules() {
		if msg, ok := c.errors[rule.Field]; ok {
			out = append(out, validate.ValidationError{Field: rule.Field, Message: msg})
		}
	}
	return out
}

// container returns the first enclosing element matching the container
// selectors, trying each selector in order.
func (c *Controller) container(role Role) *dom.Node {
	node := c.fields[role]
	if node == nil {
		return nil
	}
	for _, sel := range c.containers {
		if found := node.Closest(sel); found != nil {
			return found
		}
	}
	return nil
}

func removeAnnotations(container *dom.Node) {
	for _, child := range append([]*dom.Node(nil), container.Children...) {
		if child.HasClass(ErrorClass) {
			child.Remove()
		}
	}
}
