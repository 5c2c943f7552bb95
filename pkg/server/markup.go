package server

import (
	"fmt"
	"os"

	"github.com/vango-dev/regform/pkg/dom"
)

// StaticMarkup returns a ServerConfig.Markup function that parses html for
// every page view. When sanitize is set the HTML is passed through
// dom.Sanitize once, up front.
func StaticMarkup(html string, sanitize bool) func() (*dom.Node, error) {
	if sanitize {
		html = dom.Sanitize(html)
	}
	return func() (*dom.Node, error) {
		return dom.ParseHTMLString(html)
	}
}

// FileMarkup reads the markup file once and serves it like StaticMarkup.
func FileMarkup(path string, sanitize bool) (func() (*dom.Node, error), error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("server: read markup: %w", err)
	}
	markup := StaticMarkup(string(data), sanitize)
	if _, err := markup(); err != nil {
		return nil, fmt.Errorf("server: parse markup %s: %w", path, err)
	}
	return markup, nil
}
