package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{Kind(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestElBuildsTree(t *testing.T) {
	n := Div(Class("a", "b"), ID("main"),
		Span(Text("x")),
		"tail",
		nil,
	)

	if n.Tag != "div" || n.Kind != KindElement {
		t.Fatalf("got %s %s", n.Kind, n.Tag)
	}
	if diff := cmp.Diff([]string{"a", "b"}, n.Classes()); diff != "" {
		t.Errorf("classes (-want +got):\n%s", diff)
	}
	if n.ID() != "main" {
		t.Errorf("ID = %q", n.ID())
	}
	if len(n.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(n.Children))
	}
	for _, c := range n.Children {
		if c.Parent != n {
			t.Error("child parent not set")
		}
	}
	if n.TextContent() != "xtail" {
		t.Errorf("TextContent = %q", n.TextContent())
	}
}

func TestElPanicsOnUnsupportedArg(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Div(42)
}

func TestClassList(t *testing.T) {
	n := Div(Class("form_input"))

	n.AddClass("has-error")
	n.AddClass("has-error")
	if diff := cmp.Diff([]string{"form_input", "has-error"}, n.Classes()); diff != "" {
		t.Errorf("after add (-want +got):\n%s", diff)
	}

	n.RemoveClass("has-error")
	n.RemoveClass("has-error")
	if n.HasClass("has-error") {
		t.Error("class still present")
	}
	if !n.HasClass("form_input") {
		t.Error("unrelated class removed")
	}

	n.RemoveClass("form_input")
	if _, ok := n.GetAttr("class"); ok {
		t.Error("empty class attribute should be removed")
	}
}

func TestValueAndChecked(t *testing.T) {
	in := Input(Type("checkbox"), Checked(false))
	if in.IsChecked() {
		t.Error("Checked(false) should not set the attribute")
	}
	in.SetChecked(true)
	if !in.IsChecked() {
		t.Error("SetChecked(true) failed")
	}
	in.SetChecked(false)
	if in.IsChecked() {
		t.Error("SetChecked(false) failed")
	}

	text := Input(Value(" a "))
	if text.Value() != " a " {
		t.Errorf("Value = %q", text.Value())
	}
	text.SetValue("b")
	if text.Value() != "b" {
		t.Errorf("Value = %q", text.Value())
	}
}

func TestSetStyle(t *testing.T) {
	n := Div()
	n.SetStyle("color", "#ff0000")
	n.SetStyle("font-size", "12px")
	n.SetStyle("color", "blue")

	got, _ := n.GetAttr("style")
	if got != "color: blue; font-size: 12px" {
		t.Errorf("style = %q", got)
	}
	if n.Style("font-size") != "12px" {
		t.Errorf("Style(font-size) = %q", n.Style("font-size"))
	}
	if n.Style("margin") != "" {
		t.Error("missing property should be empty")
	}
}

func TestAppendAndRemove(t *testing.T) {
	a := Div()
	b := Div()
	c := Span()

	a.AppendChild(c)
	b.AppendChild(c)
	if len(a.Children) != 0 || c.Parent != b {
		t.Error("AppendChild should move the node")
	}
	if b.LastChild() != c {
		t.Error("LastChild mismatch")
	}

	c.Remove()
	c.Remove()
	if len(b.Children) != 0 || c.Parent != nil {
		t.Error("Remove failed")
	}
	if b.RemoveChild(c) {
		t.Error("RemoveChild of a detached node should report false")
	}
}

func TestWalkAllowsRemoval(t *testing.T) {
	root := Div(Span(Class("x")), Span(Class("x")), P())
	root.Walk(func(n *Node) bool {
		if n.HasClass("x") {
			n.Remove()
		}
		return true
	})
	if len(root.Children) != 1 || root.Children[0].Tag != "p" {
		t.Errorf("unexpected children after walk: %d", len(root.Children))
	}
}

func TestClone(t *testing.T) {
	orig := Div(Class("a"), Span(Text("x")))
	orig.On(EventBlur, func(*Event) {})

	c := orig.Clone()
	c.AddClass("b")
	c.Children[0].Children[0].Text = "y"

	if orig.HasClass("b") || orig.TextContent() != "x" {
		t.Error("clone shares state with original")
	}
	if c.HasListener(EventBlur) {
		t.Error("clone should not copy listeners")
	}
	if c.Children[0].Parent != c {
		t.Error("clone children should point at the clone")
	}
}
