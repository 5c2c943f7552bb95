package dom

import (
	"fmt"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Selector is a compiled CSS selector group.
type Selector struct {
	raw   string
	group cascadia.SelectorGroup
}

// String returns the source text of the selector.
func (s *Selector) String() string { return s.raw }

// Compile parses a selector group such as `form > .b-label input, textarea`.
func Compile(sel string) (*Selector, error) {
	group, err := cascadia.ParseGroup(sel)
	if err != nil {
		return nil, fmt.Errorf("dom: selector %q: %w", sel, err)
	}
	return &Selector{raw: sel, group: group}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(sel string) *Selector {
	s, err := Compile(sel)
	if err != nil {
		panic(err)
	}
	return s
}

var (
	selectorCacheMu sync.Mutex
	selectorCache   = make(map[string]*Selector)
)

// compileCached compiles sel once per process. Invalid selectors are not cached.
func compileCached(sel string) (*Selector, error) {
	selectorCacheMu.Lock()
	defer selectorCacheMu.Unlock()
	if s, ok := selectorCache[sel]; ok {
		return s, nil
	}
	s, err := Compile(sel)
	if err != nil {
		return nil, err
	}
	selectorCache[sel] = s
	return s, nil
}

// Match reports whether n matches the selector. Ancestors of n take part in
// descendant and child combinators.
func (s *Selector) Match(n *Node) bool {
	if !n.IsElement("") {
		return false
	}
	return s.match(viewOf(n), n)
}

func (s *Selector) match(v *htmlView, n *Node) bool {
	hn, ok := v.nodes[n]
	return ok && n.IsElement("") && s.group.Match(hn)
}

// QuerySelectorAll returns every descendant of n matching sel in document
// order. An invalid selector matches nothing.
func (n *Node) QuerySelectorAll(sel string) []*Node {
	s, err := compileCached(sel)
	if err != nil {
		return nil
	}
	return n.QueryAll(s)
}

// QuerySelector returns the first descendant of n matching sel, or nil.
func (n *Node) QuerySelector(sel string) *Node {
	s, err := compileCached(sel)
	if err != nil {
		return nil
	}
	return n.Query(s)
}

// QueryAll is QuerySelectorAll for a compiled selector.
func (n *Node) QueryAll(s *Selector) []*Node {
	v := viewOf(n)
	var out []*Node
	for _, c := range n.Children {
		c.Walk(func(d *Node) bool {
			if s.match(v, d) {
				out = append(out, d)
			}
			return true
		})
	}
	return out
}

// Query is QuerySelector for a compiled selector.
func (n *Node) Query(s *Selector) *Node {
	v := viewOf(n)
	var found *Node
	for _, c := range n.Children {
		c.Walk(func(d *Node) bool {
			if found != nil {
				return false
			}
			if s.match(v, d) {
				found = d
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// Matches reports whether n matches sel.
func (n *Node) Matches(sel string) bool {
	s, err := compileCached(sel)
	if err != nil {
		return false
	}
	return s.Match(n)
}

// Closest returns n or its nearest ancestor matching sel, or nil.
func (n *Node) Closest(sel string) *Node {
	s, err := compileCached(sel)
	if err != nil {
		return nil
	}
	v := viewOf(n)
	for p := n; p != nil; p = p.Parent {
		if s.match(v, p) {
			return p
		}
	}
	return nil
}

// htmlView mirrors a whole tree as x/net/html nodes so cascadia can match
// against it. Fragments are transparent: their children hang off the
// fragment's parent, and a fragment at the root becomes the document node.
type htmlView struct {
	nodes map[*Node]*html.Node
}

func viewOf(n *Node) *htmlView {
	root := n
	for root.Parent != nil {
		root = root.Parent
	}
	v := &htmlView{nodes: make(map[*Node]*html.Node)}
	if root.Kind == KindFragment {
		doc := &html.Node{Type: html.DocumentNode}
		v.nodes[root] = doc
		v.appendChildren(doc, root)
	} else {
		v.convert(root)
	}
	return v
}

func (v *htmlView) appendChildren(parent *html.Node, n *Node) {
	for _, c := range n.Children {
		if c.Kind == KindFragment {
			v.appendChildren(parent, c)
			continue
		}
		parent.AppendChild(v.convert(c))
	}
}

func (v *htmlView) convert(n *Node) *html.Node {
	var hn *html.Node
	if n.Kind == KindText {
		hn = &html.Node{Type: html.TextNode, Data: n.Text}
	} else {
		hn = &html.Node{Type: html.ElementNode, Data: n.Tag, DataAtom: atom.Lookup([]byte(n.Tag))}
		for _, k := range n.AttrKeys() {
			hn.Attr = append(hn.Attr, html.Attribute{Key: k, Val: n.Attrs[k]})
		}
		v.appendChildren(hn, n)
	}
	v.nodes[n] = hn
	return hn
}
