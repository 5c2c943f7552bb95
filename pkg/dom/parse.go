package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseHTML parses an HTML fragment into a fragment node whose children are
// the top-level nodes of the markup. Comments and doctypes are dropped and
// whitespace-only text between elements is discarded.
func ParseHTML(r io.Reader) (*Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, fmt.Errorf("dom: parse html: %w", err)
	}
	root := &Node{Kind: KindFragment}
	for _, hn := range nodes {
		if n := convert(hn); n != nil {
			root.AppendChild(n)
		}
	}
	return root, nil
}

// ParseHTMLString is ParseHTML over a string.
func ParseHTMLString(s string) (*Node, error) {
	return ParseHTML(strings.NewReader(s))
}

func convert(hn *html.Node) *Node {
	switch hn.Type {
	case html.TextNode:
		if strings.TrimSpace(hn.Data) == "" {
			return nil
		}
		return Text(hn.Data)
	case html.ElementNode:
		n := &Node{
			Kind:  KindElement,
			Tag:   hn.Data,
			Attrs: make(map[string]string, len(hn.Attr)),
		}
		for _, a := range hn.Attr {
			if a.Namespace != "" {
				continue
			}
			n.Attrs[a.Key] = a.Val
		}
		for c := hn.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(c); child != nil {
				n.AppendChild(child)
			}
		}
		return n
	default:
		return nil
	}
}
