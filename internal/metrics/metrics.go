package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so several servers can live in one
// process (tests).
type Metrics struct {
	Registry *prometheus.Registry

	httpLatency     *prometheus.HistogramVec
	logins          *prometheus.CounterVec
	workoutsCreated *prometheus.CounterVec
	testsRecorded   *prometheus.CounterVec
	uploadedBytes   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_requests_latency_seconds",
				Help:    "Latency of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fitcoach_logins_total",
				Help: "Login attempts by outcome.",
			},
			[]string{"outcome"},
		),
		workoutsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fitcoach_workouts_created_total",
				Help: "Workouts created, by source.",
			},
			[]string{"source"}, // manual|csv
		),
		testsRecorded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fitcoach_physical_tests_recorded_total",
				Help: "Physical test results recorded, by test type.",
			},
			[]string{"test_type"}, // strength|plyometrics|max_force|speed|endurance|mobility|other
		),
		uploadedBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fitcoach_uploaded_bytes_total",
				Help: "Bytes stored through the upload endpoint.",
			},
			[]string{"content_type"},
		),
	}
	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpLatency,
		m.logins,
		m.workoutsCreated,
		m.testsRecorded,
		m.uploadedBytes,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Login(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) WorkoutsCreated(source string, n int) {
	m.workoutsCreated.WithLabelValues(source).Add(float64(n))
}

// Test types and content types are free-form input, so both labels are
// folded onto a fixed set.
var (
	testTypeLabels = map[string]bool{
		"strength":    true,
		"plyometrics": true,
		"max_force":   true,
		"speed":       true,
		"endurance":   true,
		"mobility":    true,
	}
	contentTypeLabels = map[string]bool{
		"image/png":  true,
		"image/jpeg": true,
		"image/gif":  true,
		"image/webp": true,
	}
)

func boundedLabel(value string, known map[string]bool) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if known[value] {
		return value
	}
	return "other"
}

func (m *Metrics) TestRecorded(testType string) {
	m.testsRecorded.WithLabelValues(boundedLabel(testType, testTypeLabels)).Inc()
}

func (m *Metrics) FileUploaded(contentType string, size int64) {
	if base, _, ok := strings.Cut(contentType, ";"); ok {
		contentType = base
	}
	m.uploadedBytes.WithLabelValues(boundedLabel(contentType, contentTypeLabels)).Add(float64(size))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// HTTPMetrics observes request latency labelled by chi route pattern.
func (m *Metrics) HTTPMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		m.httpLatency.WithLabelValues(r.Method, routePattern(r), strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if patt := rc.RoutePattern(); patt != "" {
			return patt
		}
	}
	return "unmatched"
}
