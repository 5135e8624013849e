package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resolutionOutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_resolution_outcomes_total",
		Help: "Total number of remote reference resolutions grouped by kind and outcome.",
	}, []string{"kind", "outcome"})
	resolutionDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orders_resolution_duration_seconds",
		Help:    "Duration of remote reference resolutions in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
	}, []string{"kind"})
	httpRequestDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orders_http_request_duration_seconds",
		Help:    "Duration of handled HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "code"})
	ordersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of successfully created orders.",
	})
	ordersRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_rejected_total",
		Help: "Total number of rejected order creations grouped by reason.",
	}, []string{"reason"})
	eventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_events_published_total",
		Help: "Total number of order lifecycle events published grouped by result.",
	}, []string{"result"})
)

// Kind перечисляет виды внешних ссылок для метрик резолюции.
const (
	KindUser    = "user"
	KindProduct = "product"
)

// Причины отказа на создании заказа.
const (
	ReasonInvalidInput    = "invalid_input"
	ReasonUserNotFound    = "user_not_found"
	ReasonProductNotFound = "product_not_found"
	ReasonStoreFailure    = "store_failure"
)

// ObserveResolution фиксирует исход и длительность одной резолюции.
// Здесь — единственное место, где not_found и unreachable различимы снаружи.
func ObserveResolution(kind, outcome string, elapsed time.Duration) {
	resolutionOutcomesTotal.WithLabelValues(kind, outcome).Inc()
	resolutionDurationSeconds.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// ObserveHTTPRequest фиксирует длительность обработанного HTTP-запроса.
func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	httpRequestDurationSeconds.
		WithLabelValues(method, route, strconv.Itoa(status)).
		Observe(elapsed.Seconds())
}

// RecordOrderCreated фиксирует успешное создание заказа.
func RecordOrderCreated() {
	ordersCreatedTotal.Inc()
}

// RecordOrderRejected фиксирует отказ на создании с указанием причины.
func RecordOrderRejected(reason string) {
	ordersRejectedTotal.WithLabelValues(reason).Inc()
}

// RecordEventPublish фиксирует результат публикации события ("ok" | "error").
func RecordEventPublish(result string) {
	eventsPublishedTotal.WithLabelValues(result).Inc()
}
