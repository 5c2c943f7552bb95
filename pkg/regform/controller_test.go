package regform

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vango-dev/regform/pkg/dom"
	"github.com/vango-dev/regform/pkg/validate"
)

type recordingSubmitter struct {
	calls []Record
	err   error
}

func (s *recordingSubmitter) Submit(_ context.Context, rec Record) error {
	s.calls = append(s.calls, rec)
	return s.err
}

func newController(t *testing.T, opts ...Option) (*Controller, *dom.Node) {
	t.Helper()
	root := DefaultMarkup()
	c := Bind(root, DefaultSelector, opts...)
	if c.Inert() {
		t.Fatal("controller should bind to the default markup")
	}
	return c, root
}

func annotations(root *dom.Node) []string {
	var out []string
	for _, n := range root.QuerySelectorAll("." + ErrorClass) {
		out = append(out, n.TextContent())
	}
	return out
}

func TestValidateAllRejectsBadInput(t *testing.T) {
	c, _ := newController(t)
	c.SetValues(validate.Values{
		Email:           "bad-email",
		Password:        "12345",
		ConfirmPassword: "12345",
		Consent:         false,
	})

	if c.ValidateAll() {
		t.Fatal("ValidateAll() = true, want false")
	}

	want := map[Role]string{
		Email:    validate.MessageEmail,
		Password: validate.MessagePassword,
		Consent:  validate.MessageConsent,
	}
	if diff := cmp.Diff(want, c.Errors()); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitAcceptsValidInput(t *testing.T) {
	sub := &recordingSubmitter{}
	c, root := newController(t, WithSubmitter(sub))
	c.SetValues(validate.Values{
		Email:           "  user@site.ru ",
		Organization:    " ООО Ромашка ",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Consent:         true,
		FullName:        "",
	})

	out := c.Submit(context.Background())
	if !out.Accepted() {
		t.Fatalf("outcome = %v, want accepted", out.State)
	}

	want := []Record{{
		Email:        "user@site.ru",
		Organization: "ООО Ромашка",
		FullName:     "",
		Password:     "secret1",
	}}
	if diff := cmp.Diff(want, sub.calls); diff != "" {
		t.Errorf("submitted records mismatch (-want +got):\n%s", diff)
	}
	if got := annotations(root); len(got) != 0 {
		t.Errorf("accepted form has annotations: %v", got)
	}
	if c.State() != StateIdle {
		t.Errorf("state = %v, want idle", c.State())
	}
}

func TestRecordTrimsBrowserWhitespace(t *testing.T) {
	c, _ := newController(t)
	c.SetValues(validate.Values{
		Email:        "\ufeffuser@site.ru\v",
		Organization: "\u00a0ООО Ромашка\u3000",
		FullName:     "\u0085Иван",
		Password:     " secret1 ",
	})

	want := Record{
		Email:        "user@site.ru",
		Organization: "ООО Ромашка",
		FullName:     "\u0085Иван",
		Password:     " secret1 ",
	}
	if diff := cmp.Diff(want, c.Record()); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitRejectedDisplaysInRuleOrder(t *testing.T) {
	sub := &recordingSubmitter{}
	c, root := newController(t, WithSubmitter(sub))
	c.SetValues(validate.Values{
		Email:           "nope",
		Password:        "123",
		ConfirmPassword: "1234",
		FullName:        "R2-D2",
	})

	out := c.Submit(context.Background())
	if out.State != StateRejected {
		t.Fatalf("state = %v, want rejected", out.State)
	}
	if len(sub.calls) != 0 {
		t.Fatalf("submitter called on rejected form: %v", sub.calls)
	}

	want := []string{
		validate.MessageEmail,
		validate.MessagePassword,
		validate.MessageConfirmPassword,
		validate.MessageConsent,
		validate.MessageFullName,
	}
	var gotFailures []string
	for _, f := range out.Failures {
		gotFailures = append(gotFailures, f.Message)
	}
	if diff := cmp.Diff(want, gotFailures); diff != "" {
		t.Errorf("failures mismatch (-want +got):\n%s", diff)
	}
	if got := len(annotations(root)); got != len(want) {
		t.Errorf("annotations = %d, want %d", got, len(want))
	}
}

func TestSubmitClearsPreviousErrors(t *testing.T) {
	c, root := newController(t)
	c.SetValues(validate.Values{Email: "bad"})
	c.Submit(context.Background())

	c.SetValues(validate.Values{
		Email:           "user@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Consent:         true,
	})
	out := c.Submit(context.Background())
	if !out.Accepted() {
		t.Fatalf("second submit rejected: %v", out.Failures)
	}
	if got := annotations(root); len(got) != 0 {
		t.Errorf("stale annotations: %v", got)
	}
	if got := root.QuerySelectorAll("." + HasErrorClass); len(got) != 0 {
		t.Errorf("stale has-error containers: %d", len(got))
	}
	if len(c.Errors()) != 0 {
		t.Errorf("stale errors: %v", c.Errors())
	}
}

func TestSubmitterErrorIsCarried(t *testing.T) {
	boom := errors.New("boom")
	c, _ := newController(t, WithSubmitter(&recordingSubmitter{err: boom}))
	c.SetValues(validate.Values{
		Email:           "user@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Consent:         true,
	})

	out := c.Submit(context.Background())
	if !out.Accepted() {
		t.Fatal("validation should accept")
	}
	if !errors.Is(out.Err, boom) {
		t.Errorf("Err = %v, want boom", out.Err)
	}
	if len(c.Errors()) != 0 {
		t.Errorf("submitter failure must not add field errors: %v", c.Errors())
	}
}

func TestShowErrorIsIdempotent(t *testing.T) {
	c, _ := newController(t)

	c.ShowError(Email, validate.MessageEmail)
	c.ShowError(Email, validate.MessageEmail)

	container := c.Field(Email).Parent
	var count int
	for _, child := range container.Children {
		if child.HasClass(ErrorClass) {
			count++
		}
	}
	if count != 1 {
		t.Errorf("annotations = %d, want 1", count)
	}
	if !container.HasClass(HasErrorClass) {
		t.Error("container missing has-error class")
	}

	annotation := container.LastChild()
	if annotation.TextContent() != validate.MessageEmail {
		t.Errorf("annotation text = %q", annotation.TextContent())
	}
	if got := annotation.Style("color"); got != "#ff0000" {
		t.Errorf("color = %q", got)
	}
	if got := annotation.Style("font-size"); got != "12px" {
		t.Errorf("font-size = %q", got)
	}
	if got := annotation.Style("margin-top"); got != "5px" {
		t.Errorf("margin-top = %q", got)
	}
}

func TestClearErrorTwiceIsNoop(t *testing.T) {
	c, _ := newController(t)
	c.ShowError(Password, validate.MessagePassword)

	c.ClearError(Password)
	c.ClearError(Password)

	container := c.Field(Password).Parent
	if container.HasClass(HasErrorClass) {
		t.Error("has-error left behind")
	}
	if _, ok := container.GetAttr("class"); !ok {
		t.Error("container lost its own classes")
	}
	if _, ok := c.Error(Password); ok {
		t.Error("error entry left behind")
	}
}

func TestConsentAnnotationGoesToLabel(t *testing.T) {
	c, _ := newController(t)
	c.ShowError(Consent, validate.MessageConsent)

	label := c.Field(Consent).Closest(".b-label")
	if label == nil || !label.HasClass(HasErrorClass) {
		t.Fatal("consent label not marked")
	}
	if !label.LastChild().HasClass(ErrorClass) {
		t.Error("annotation is not the label's last child")
	}
}

func TestFieldWithoutContainerRecordsError(t *testing.T) {
	root := dom.Form(dom.Input(dom.Name("email")))
	c := Bind(root, "form")

	c.ShowError(Email, validate.MessageEmail)

	if _, ok := c.Error(Email); !ok {
		t.Error("entry not recorded")
	}
	if got := annotations(root); len(got) != 0 {
		t.Errorf("annotation rendered without container: %v", got)
	}
}

func TestValidateField(t *testing.T) {
	tests := []struct {
		name   string
		role   Role
		values validate.Values
		want   bool
	}{
		{"valid email", Email, validate.Values{Email: " user@example.com "}, true},
		{"invalid email", Email, validate.Values{Email: "user@example"}, false},
		{"short password", Password, validate.Values{Password: "12345"}, false},
		{"long password", Password, validate.Values{Password: "      "}, true},
		{"mismatched confirmation", ConfirmPassword, validate.Values{Password: "a", ConfirmPassword: "b"}, false},
		{"empty confirmation pair", ConfirmPassword, validate.Values{}, true},
		{"consent unchecked", Consent, validate.Values{}, false},
		{"empty full name", FullName, validate.Values{FullName: "   "}, true},
		{"full name with digits", FullName, validate.Values{FullName: "Иван 2"}, false},
		{"organization has no rule", Organization, validate.Values{Organization: "!!!"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newController(t)
			c.SetValues(tt.values)

			if got := c.ValidateField(tt.role); got != tt.want {
				t.Errorf("ValidateField(%s) = %v, want %v", tt.role, got, tt.want)
			}
			_, hasErr := c.Error(tt.role)
			if hasErr == tt.want {
				t.Errorf("error entry present = %v, want %v", hasErr, !tt.want)
			}
		})
	}
}

func TestPasswordBlurDoesNotRecheckConfirmation(t *testing.T) {
	c, _ := newController(t)
	c.SetValues(validate.Values{Password: "secret1", ConfirmPassword: "secret1"})
	c.ValidateField(ConfirmPassword)

	c.SetValues(validate.Values{Password: "secret2", ConfirmPassword: "secret1"})
	c.ValidateField(Password)

	if _, ok := c.Error(ConfirmPassword); ok {
		t.Error("password blur re-checked the confirmation")
	}
}

func TestInertController(t *testing.T) {
	sub := &recordingSubmitter{}
	root := dom.Div(dom.Class("elsewhere"))
	c := Bind(root, DefaultSelector, WithSubmitter(sub))

	if !c.Inert() {
		t.Fatal("controller should be inert")
	}
	if !c.ValidateAll() {
		t.Error("inert ValidateAll() = false")
	}
	if !c.ValidateField(Email) {
		t.Error("inert ValidateField() = false")
	}
	c.ShowError(Email, "x")
	c.ClearError(Email)
	c.ClearAll()
	if out := c.Submit(context.Background()); out.State != StateIdle {
		t.Errorf("inert Submit state = %v", out.State)
	}
	if out, err := c.HandleEvent(context.Background(), Event{Type: dom.EventSubmit}); out != nil || err != nil {
		t.Errorf("inert HandleEvent = %v, %v", out, err)
	}
	if len(sub.calls) != 0 || len(c.Errors()) != 0 {
		t.Error("inert controller did work")
	}
}

func TestMissingFieldIsSkipped(t *testing.T) {
	root := DefaultMarkup()
	c := Bind(root, DefaultSelector, WithBindings(Bindings{Email: `input[name="nowhere"]`}))
	c.SetValues(validate.Values{Password: "secret1", ConfirmPassword: "secret1", Consent: true})

	if !c.ValidateAll() {
		t.Errorf("missing email should be skipped, got %v", c.Errors())
	}
}

func TestPlaceholderBindings(t *testing.T) {
	root := DefaultMarkup()
	c := Bind(root, DefaultSelector, WithBindings(PlaceholderBindings()))

	for _, role := range AllRoles {
		if c.Field(role) == nil {
			t.Errorf("role %s not bound by placeholder", role)
		}
	}
}

type recordingObserver struct {
	fields []Role
	forms  []bool
	subs   []State
}

func (o *recordingObserver) FieldValidated(role Role, _ bool) { o.fields = append(o.fields, role) }
func (o *recordingObserver) FormValidated(ok bool, _ []validate.ValidationError) {
	o.forms = append(o.forms, ok)
}
func (o *recordingObserver) Submitted(out Outcome) { o.subs = append(o.subs, out.State) }

func TestObserver(t *testing.T) {
	obs := &recordingObserver{}
	c, _ := newController(t, WithObserver(obs))

	c.ValidateField(Email)
	c.Submit(context.Background())

	if diff := cmp.Diff([]Role{Email}, obs.fields); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{false}, obs.forms); diff != "" {
		t.Errorf("forms (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]State{StateRejected}, obs.subs); diff != "" {
		t.Errorf("submits (-want +got):\n%s", diff)
	}
}
