package dom

import "fmt"

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, *Node, []*Node, string (text).
func El(tag string, args ...any) *Node {
	node := &Node{
		Kind:  KindElement,
		Tag:   tag,
		Attrs: make(map[string]string),
	}
	applyArgs(node, args)
	return node
}

func applyArgs(node *Node, args []any) {
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue
		case Attr:
			applyAttr(node, v)
		case []Attr:
			for _, a := range v {
				applyAttr(node, a)
			}
		case *Node:
			if v != nil {
				node.AppendChild(v)
			}
		case []*Node:
			for _, c := range v {
				if c != nil {
					node.AppendChild(c)
				}
			}
		case string:
			node.AppendChild(Text(v))
		default:
			panic(fmt.Sprintf("dom: unsupported argument type %T", arg))
		}
	}
}

func applyAttr(node *Node, a Attr) {
	if a.Key == "" {
		return
	}
	if a.Remove {
		node.RemoveAttr(a.Key)
		return
	}
	if a.Key == "class" {
		for _, c := range splitClasses(a.Value) {
			node.AddClass(c)
		}
		return
	}
	node.SetAttr(a.Key, a.Value)
}

// Text creates a text node.
func Text(content string) *Node {
	return &Node{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *Node {
	return Text(fmt.Sprintf(format, args...))
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *Node {
	node := &Node{Kind: KindFragment}
	applyArgs(node, children)
	return node
}

// Document structure

func Body(args ...any) *Node { return El("body", args...) }
func Main(args ...any) *Node { return El("main", args...) }

// Sectioning and text

func Div(args ...any) *Node  { return El("div", args...) }
func Span(args ...any) *Node { return El("span", args...) }
func P(args ...any) *Node    { return El("p", args...) }
func H1(args ...any) *Node   { return El("h1", args...) }
func H2(args ...any) *Node   { return El("h2", args...) }
func A(args ...any) *Node    { return El("a", args...) }

// Forms

func Form(args ...any) *Node     { return El("form", args...) }
func Label(args ...any) *Node    { return El("label", args...) }
func Input(args ...any) *Node    { return El("input", args...) }
func Button(args ...any) *Node   { return El("button", args...) }
func Textarea(args ...any) *Node { return El("textarea", args...) }
func Fieldset(args ...any) *Node { return El("fieldset", args...) }
