package metrics

import "github.com/prometheus/client_golang/prometheus"

// Classifier Prometheus metrics.
var (
	ClassifierRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dishcovery",
			Name:      "classifier_requests_total",
			Help:      "Total number of image classification requests",
		},
		[]string{"provider", "model", "status"},
	)

	ClassifierRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dishcovery",
			Name:      "classifier_request_duration_seconds",
			Help:      "Image classification request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "model"},
	)

	ClassifierErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dishcovery",
			Name:      "classifier_errors_total",
			Help:      "Total image classification errors",
		},
		[]string{"provider", "model", "error_type"},
	)
)

var classifierMetricsRegistered bool

// RegisterClassifierMetrics registers Prometheus classifier metrics. Must be called once from main.
func RegisterClassifierMetrics() {
	if classifierMetricsRegistered {
		return
	}
	prometheus.MustRegister(ClassifierRequestsTotal)
	prometheus.MustRegister(ClassifierRequestDuration)
	prometheus.MustRegister(ClassifierErrorsTotal)
	classifierMetricsRegistered = true
}
