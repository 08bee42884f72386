package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "exercise_tracker"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by route and status.",
	}, []string{"method", "route", "status"})

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Handler duration for HTTP requests.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "route"})

	UsersCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Users successfully created.",
	})

	ExercisesLoggedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exercises_logged_total",
		Help:      "Exercises successfully stored.",
	})

	// Ошибки валидации и поиска, по причине
	RejectedRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rejected_requests_total",
		Help:      "Requests answered with an error message, by reason.",
	}, []string{"reason"})

	EventPublishFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_publish_failures_total",
		Help:      "Exercise-logged events that could not be published.",
	})

	ExercisesArchivedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exercises_archived_total",
		Help:      "Exercise-logged events written to object storage by the worker.",
	})
)

func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		UsersCreatedTotal,
		ExercisesLoggedTotal,
		RejectedRequestsTotal,
		EventPublishFailuresTotal,
		ExercisesArchivedTotal,
	)
}
