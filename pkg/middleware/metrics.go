package middleware

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/regform/pkg/regform"
	"github.com/vango-dev/regform/pkg/validate"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "regform").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "regform",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics collects form, session and HTTP metrics. It implements
// regform.Observer so it can be attached to every page controller.
type Metrics struct {
	fieldValidations *prometheus.CounterVec
	formValidations  *prometheus.CounterVec
	ruleFailures     *prometheus.CounterVec
	submissions      *prometheus.CounterVec
	framesReceived   *prometheus.CounterVec
	patchesSent      prometheus.Counter
	activeSessions   prometheus.Gauge
	wsErrors         *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

var _ regform.Observer = (*Metrics)(nil)

// NewMetrics registers the metrics with the configured registry.
//
// Metrics collected:
//   - regform_field_validations_total: blur validations by role and result
//   - regform_form_validations_total: whole-form validations by result
//   - regform_rule_failures_total: failed rules by role
//   - regform_submissions_total: submit outcomes by state and submitter status
//   - regform_frames_received_total: WebSocket frames by type
//   - regform_patches_sent_total: form patches sent to clients
//   - regform_active_sessions: open page sessions
//   - regform_websocket_errors_total: WebSocket errors by type
//   - regform_http_requests_total / regform_http_request_duration_seconds
//
// Registering twice against the same registry panics, as promauto does.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}, labels)
	}

	return &Metrics{
		fieldValidations: counter("field_validations_total", "Single-field validations by role and result", "role", "result"),
		formValidations:  counter("form_validations_total", "Whole-form validations by result", "result"),
		ruleFailures:     counter("rule_failures_total", "Failed validation rules by role", "role"),
		submissions:      counter("submissions_total", "Submit outcomes by state and submitter status", "state", "status"),
		framesReceived:   counter("frames_received_total", "WebSocket frames received by type", "type"),
		wsErrors:         counter("websocket_errors_total", "Total WebSocket errors by type", "type"),
		httpRequests:     counter("http_requests_total", "HTTP requests by route and status code", "route", "code"),

		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_sent_total",
			Help:        "Total number of form patches sent to clients",
			ConstLabels: config.ConstLabels,
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of open page sessions",
			ConstLabels: config.ConstLabels,
		}),

		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),
	}
}

// FieldValidated implements regform.Observer.
func (m *Metrics) FieldValidated(role regform.Role, ok bool) {
	m.fieldValidations.WithLabelValues(string(role), result(ok)).Inc()
}

// FormValidated implements regform.Observer.
func (m *Metrics) FormValidated(ok bool, failures []validate.ValidationError) {
	m.formValidations.WithLabelValues(result(ok)).Inc()
	for _, f := range failures {
		m.ruleFailures.WithLabelValues(string(f.Field)).Inc()
	}
}

// Submitted implements regform.Observer.
func (m *Metrics) Submitted(out regform.Outcome) {
	status := "none"
	if out.Accepted() {
		status = "ok"
		if out.Err != nil {
			status = categorizeError(out.Err)
		}
	}
	m.submissions.WithLabelValues(out.State.String(), status).Inc()
}

// FrameReceived counts one incoming WebSocket frame.
func (m *Metrics) FrameReceived(frameType string) {
	m.framesReceived.WithLabelValues(frameType).Inc()
}

// PatchSent counts one outgoing form patch.
func (m *Metrics) PatchSent() {
	m.patchesSent.Inc()
}

// SessionOpened records a new page session.
func (m *Metrics) SessionOpened() {
	m.activeSessions.Inc()
}

// SessionClosed records the end of a page session.
func (m *Metrics) SessionClosed() {
	m.activeSessions.Dec()
}

// WebSocketError records a WebSocket error.
func (m *Metrics) WebSocketError(errorType string) {
	m.wsErrors.WithLabelValues(errorType).Inc()
}

// Handler wraps next and records request counts and durations labelled by
// the matched chi route pattern.
func (m *Metrics) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		m.httpRequests.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack passes through to the underlying writer so WebSocket upgrades
// work behind the metrics handler.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("middleware: %T does not support hijacking", w.ResponseWriter)
	}
	w.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func result(ok bool) string {
	if ok {
		return "pass"
	}
	return "fail"
}

// categorizeError returns a category for the error type.
// This prevents high-cardinality labels from error messages.
func categorizeError(err error) string {
	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "timeout"), strings.Contains(errStr, "deadline"):
		return "timeout"
	case strings.Contains(errStr, "canceled"):
		return "canceled"
	case strings.Contains(errStr, "rate limit"):
		return "rate_limit"
	case strings.Contains(errStr, "unauthorized"):
		return "unauthorized"
	default:
		return "error"
	}
}
