package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (E100-E199)
	// ============================================

	"E100": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		DocURL:   "https://vango.dev/docs/regform/errors/E100",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		DocURL:   "https://vango.dev/docs/regform/errors/E101",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid environment override",
		DocURL:   "https://vango.dev/docs/regform/errors/E102",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		DocURL:   "https://vango.dev/docs/regform/errors/E103",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Form markup could not be loaded",
		DocURL:   "https://vango.dev/docs/regform/errors/E104",
	},

	// ============================================
	// Protocol Errors (E200-E299)
	// ============================================

	"E200": {
		Category: CategoryProtocol,
		Message:  "Malformed frame",
		DocURL:   "https://vango.dev/docs/regform/errors/E200",
	},
	"E201": {
		Category: CategoryProtocol,
		Message:  "Unknown frame type",
		DocURL:   "https://vango.dev/docs/regform/errors/E201",
	},
	"E202": {
		Category: CategoryProtocol,
		Message:  "Unknown event type",
		DocURL:   "https://vango.dev/docs/regform/errors/E202",
	},
	"E203": {
		Category: CategoryProtocol,
		Message:  "Unknown field role",
		DocURL:   "https://vango.dev/docs/regform/errors/E203",
	},

	// ============================================
	// CLI Errors (E300-E399)
	// ============================================

	"E300": {
		Category: CategoryCLI,
		Message:  "Registration rejected",
		DocURL:   "https://vango.dev/docs/regform/errors/E300",
	},
	"E301": {
		Category: CategoryCLI,
		Message:  "Prompt aborted",
		DocURL:   "https://vango.dev/docs/regform/errors/E301",
	},
	"E302": {
		Category: CategorySubmit,
		Message:  "Submission failed",
		DocURL:   "https://vango.dev/docs/regform/errors/E302",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns every registered code in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
