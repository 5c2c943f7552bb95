package render

import (
	"fmt"
	"io"

	"github.com/vango-dev/regform/pkg/dom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the root node for the page content.
	Body *dom.Node

	// Title is the page title.
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "ru" if not specified.
	Lang string

	// StyleSheets contains paths to external stylesheets.
	StyleSheets []string

	// Styles contains inline CSS blocks.
	Styles []string

	// ClientScript is the path to the thin client JavaScript.
	// No script tag is written when empty.
	ClientScript string

	// SocketPath is exposed to the client as data-regform-socket on <body>.
	SocketPath string
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "ru"
	}

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "<html lang=\"%s\">\n", escapeAttr(lang)); err != nil {
		return err
	}

	if err := r.renderHead(w, page); err != nil {
		return err
	}

	if page.SocketPath != "" {
		if _, err := fmt.Fprintf(w, "<body data-regform-socket=\"%s\">\n", escapeAttr(page.SocketPath)); err != nil {
			return err
		}
	} else if _, err := io.WriteString(w, "<body>\n"); err != nil {
		return err
	}

	if err := r.RenderToWriter(w, page.Body); err != nil {
		return err
	}

	if page.ClientScript != "" {
		if _, err := fmt.Fprintf(w, "\n<script src=\"%s\" defer></script>\n", escapeAttr(page.ClientScript)); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<head>\n<meta charset=\"utf-8\">\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n"); err != nil {
		return err
	}
	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "<title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}
	for _, href := range page.StyleSheets {
		if _, err := fmt.Fprintf(w, "<link rel=\"stylesheet\" href=\"%s\">\n", escapeAttr(href)); err != nil {
			return err
		}
	}
	for _, css := range page.Styles {
		// CSS is trusted configuration; only the closing tag is neutralised.
		if _, err := fmt.Fprintf(w, "<style>%s</style>\n", neutraliseStyleClose(css)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</head>\n")
	return err
}

func neutraliseStyleClose(css string) string {
	out := []byte(css)
	for i := 0; i+1 < len(out); i++ {
		if out[i] == '<' && out[i+1] == '/' {
			out[i] = ' '
		}
	}
	return string(out)
}
