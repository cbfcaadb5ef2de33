package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ramotsav",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ramotsav",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ramotsav",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	aiAnswers = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ramotsav",
			Subsystem: "ai",
			Name:      "answers_total",
			Help:      "AI answers by assistant and outcome.",
		},
		[]string{"assistant", "outcome"},
	)

	reminderRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ramotsav",
			Subsystem: "reminders",
			Name:      "notifications_sent_total",
			Help:      "Push notifications delivered by reminder jobs.",
		},
		[]string{"job"},
	)

	jaapCompletions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ramotsav",
			Subsystem: "jaap",
			Name:      "malas_completed_total",
			Help:      "Number of times a daily count reached one full mala.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		aiAnswers,
		reminderRuns,
		jaapCompletions,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func InFlight(delta float64) {
	httpInFlight.Add(delta)
}

func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAIAnswer counts one answer; outcome is "streamed", "fallback" or
// "failed".
func RecordAIAnswer(assistant, outcome string) {
	aiAnswers.WithLabelValues(assistant, outcome).Inc()
}

func RecordReminderSent(job string, n int) {
	reminderRuns.WithLabelValues(job).Add(float64(n))
}

func RecordJaapCompletion() {
	jaapCompletions.Inc()
}
