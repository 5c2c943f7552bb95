package dom

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	formPolicyOnce sync.Once
	formPolicy     *bluemonday.Policy
)

// Sanitize strips markup down to the elements and attributes a registration
// form needs. Scripts, styles, event handler attributes and unknown elements
// are removed.
func Sanitize(markup string) string {
	trimmed := strings.TrimSpace(markup)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(formSanitizer().Sanitize(trimmed))
}

func formSanitizer() *bluemonday.Policy {
	formPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements(
			"form", "fieldset", "legend", "div", "span", "p", "label",
			"input", "button", "textarea", "h1", "h2", "h3", "a", "br",
			"section", "main",
		)

		policy.AllowNoAttrs().OnElements("form", "label", "input", "legend", "main", "section", "a")
		policy.AllowAttrs("id", "class", "title").Globally()
		policy.AllowDataAttributes()

		policy.AllowAttrs("action", "method", "novalidate", "autocomplete", "name").OnElements("form")
		policy.AllowAttrs(
			"type", "name", "value", "placeholder", "checked", "required",
			"disabled", "autocomplete", "maxlength", "minlength",
		).OnElements("input")
		policy.AllowAttrs("name", "placeholder", "required", "rows").OnElements("textarea")
		policy.AllowAttrs("for").OnElements("label")
		policy.AllowAttrs("type", "name", "value", "disabled").OnElements("button")

		policy.AllowStandardURLs()
		policy.AllowAttrs("href").OnElements("a")

		formPolicy = policy
	})
	return formPolicy
}
