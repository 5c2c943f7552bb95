package dom

import (
	"sort"
	"strings"
)

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement  Kind = iota // <div>, <input>, etc.
	KindText                 // Plain text node
	KindFragment             // Grouping without wrapper
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// Node is an element, text or fragment in the tree.
type Node struct {
	Kind     Kind
	Tag      string
	Attrs    map[string]string
	Children []*Node
	Parent   *Node
	Text     string

	listeners map[string][]Listener
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value string
	// Remove marks boolean attributes that should be absent.
	Remove bool
}

// IsElement reports whether n is an element with the given tag.
// An empty tag matches any element.
func (n *Node) IsElement(tag string) bool {
	return n != nil && n.Kind == KindElement && (tag == "" || n.Tag == tag)
}

// GetAttr returns the attribute value and whether it is present.
func (n *Node) GetAttr(key string) (string, bool) {
	if n == nil || n.Attrs == nil {
		return "", false
	}
	v, ok := n.Attrs[key]
	return v, ok
}

// SetAttr sets an attribute. Boolean attributes use an empty value.
func (n *Node) SetAttr(key, value string) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
}

// RemoveAttr deletes an attribute. Removing a missing attribute is a no-op.
func (n *Node) RemoveAttr(key string) {
	delete(n.Attrs, key)
}

// AttrKeys returns the attribute names in sorted order.
func (n *Node) AttrKeys() []string {
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ID returns the id attribute.
func (n *Node) ID() string {
	v, _ := n.GetAttr("id")
	return v
}

// Classes returns the class list.
func (n *Node) Classes() []string {
	v, _ := n.GetAttr("class")
	return strings.Fields(v)
}

// HasClass reports whether the class list contains name.
func (n *Node) HasClass(name string) bool {
	for _, c := range n.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass appends name to the class list if absent.
func (n *Node) AddClass(name string) {
	if n.HasClass(name) {
		return
	}
	n.SetAttr("class", strings.Join(append(n.Classes(), name), " "))
}

// RemoveClass removes every occurrence of name from the class list.
func (n *Node) RemoveClass(name string) {
	classes := n.Classes()
	kept := classes[:0]
	for _, c := range classes {
		if c != name {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		n.RemoveAttr("class")
		return
	}
	n.SetAttr("class", strings.Join(kept, " "))
}

// Value returns the value attribute of an input.
func (n *Node) Value() string {
	v, _ := n.GetAttr("value")
	return v
}

// SetValue sets the value attribute of an input.
func (n *Node) SetValue(value string) {
	n.SetAttr("value", value)
}

// IsChecked reports whether the checked attribute is present.
func (n *Node) IsChecked() bool {
	_, ok := n.GetAttr("checked")
	return ok
}

// SetChecked adds or removes the checked attribute.
func (n *Node) SetChecked(checked bool) {
	if checked {
		n.SetAttr("checked", "")
		return
	}
	n.RemoveAttr("checked")
}

// SetStyle sets one inline style property, keeping the others.
func (n *Node) SetStyle(property, value string) {
	raw, _ := n.GetAttr("style")
	var decls []string
	replaced := false
	for _, decl := range strings.Split(raw, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		name, _, _ := strings.Cut(decl, ":")
		if strings.TrimSpace(name) == property {
			decls = append(decls, property+": "+value)
			replaced = true
			continue
		}
		decls = append(decls, decl)
	}
	if !replaced {
		decls = append(decls, property+": "+value)
	}
	n.SetAttr("style", strings.Join(decls, "; "))
}

// Style returns the value of one inline style property.
func (n *Node) Style(property string) string {
	raw, _ := n.GetAttr("style")
	for _, decl := range strings.Split(raw, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(name) == property {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	if n.Kind == KindText {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// AppendChild adds child as the last child of n, detaching it from any
// previous parent first.
func (n *Node) AppendChild(child *Node) {
	if child == nil {
		return
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// RemoveChild detaches child from n. It reports whether child was found.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i:i], n.Children[i+1:]...)
			child.Parent = nil
			return true
		}
	}
	return false
}

// Remove detaches n from its parent. A detached node is left as is.
func (n *Node) Remove() {
	if n == nil || n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// LastChild returns the last child or nil.
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// Walk visits n and its descendants depth-first in document order.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	// Copy so fn may detach nodes while walking.
	children := append([]*Node(nil), n.Children...)
	for _, c := range children {
		c.Walk(fn)
	}
}

// Clone returns a deep copy of n without parent or listeners.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Kind: n.Kind, Tag: n.Tag, Text: n.Text}
	if n.Attrs != nil {
		c.Attrs = make(map[string]string, len(n.Attrs))
		for k, v := range n.Attrs {
			c.Attrs[k] = v
		}
	}
	for _, child := range n.Children {
		c.AppendChild(child.Clone())
	}
	return c
}
