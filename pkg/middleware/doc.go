// Package middleware provides observability for regform servers.
//
// # Prometheus Metrics
//
// Metrics implements regform.Observer, so the same value is attached to
// every page controller, and also counts sessions, frames and HTTP
// requests:
//
//	m := middleware.NewMetrics(middleware.WithNamespace("regform"))
//	c := regform.Bind(root, sel, regform.WithObserver(m))
//	router.Use(m.Handler)
//
// Metrics collected:
//   - regform_form_validations_total: whole-form validations by result
//   - regform_rule_failures_total: failed rules by role
//   - regform_submissions_total: submit outcomes
//   - regform_active_sessions: open page sessions
//
// # OpenTelemetry
//
// OpenTelemetry is submit middleware that opens a span around each
// submission. EventTracer does the same for browser events handled by the
// server.
//
//	s := submit.Wrap(submit.Acknowledge(session), middleware.OpenTelemetry())
package middleware
