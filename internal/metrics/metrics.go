// Package metrics defines the Prometheus collectors of the portal.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the portal's counters and histograms.
type Metrics struct {
	Submissions  *prometheus.CounterVec
	AIGradings   *prometheus.CounterVec
	Assignments  prometheus.Counter
	CustomExams  prometheus.Counter
	HTTPRequests *prometheus.HistogramVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Submissions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "examcloud",
			Name:      "submissions_total",
			Help:      "Graded exam submissions by exam kind.",
		}, []string{"kind"}),
		AIGradings: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "examcloud",
			Name:      "ai_gradings_total",
			Help:      "LLM grading calls by outcome.",
		}, []string{"outcome"}),
		Assignments: f.NewCounter(prometheus.CounterOpts{
			Namespace: "examcloud",
			Name:      "assignments_created_total",
			Help:      "Assignments created.",
		}),
		CustomExams: f.NewCounter(prometheus.CounterOpts{
			Namespace: "examcloud",
			Name:      "custom_exams_created_total",
			Help:      "Custom exams built from the question bank.",
		}),
		HTTPRequests: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "examcloud",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// Middleware observes every request under its chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}
