package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
}

// InitMetrics initializes the Prometheus metrics exporter.
// Returns the MeterProvider and an HTTP handler for the /metrics endpoint.
func InitMetrics(_ MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	return provider, promhttp.Handler(), nil
}

// RouterMetrics carries the router pipeline instruments. The counters and
// durations mirror the stage failures and timings the clearing SLA is
// monitored against.
type RouterMetrics struct {
	XSDFailures       prometheus.Counter
	TransformFailures prometheus.Counter
	ValidateDuration  prometheus.Histogram
	TransformDuration prometheus.Histogram
	PublishDuration   prometheus.Histogram
}

// NewRouterMetrics registers the router instruments on the given registerer.
func NewRouterMetrics(reg prometheus.Registerer) *RouterMetrics {
	factory := promauto.With(reg)
	return &RouterMetrics{
		XSDFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "router_xsd_fail_total",
			Help: "Inbound messages that failed XSD validation.",
		}),
		TransformFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "router_transform_fail_total",
			Help: "Inbound messages that failed canonical transformation.",
		}),
		ValidateDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "router_xsd_validate_seconds",
			Help:    "Duration of XSD validation per inbound message.",
			Buckets: prometheus.DefBuckets,
		}),
		TransformDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "router_transform_seconds",
			Help:    "Duration of XML to canonical JSON transformation.",
			Buckets: prometheus.DefBuckets,
		}),
		PublishDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "router_publish_seconds",
			Help:    "Duration of valid-topic publishes.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// SenderMetrics carries the pacs.002 delivery instruments.
type SenderMetrics struct {
	SendSuccess prometheus.Counter
	SendFailure prometheus.Counter
}

// NewSenderMetrics registers the sender instruments on the given registerer.
func NewSenderMetrics(reg prometheus.Registerer) *SenderMetrics {
	factory := promauto.With(reg)
	return &SenderMetrics{
		SendSuccess: factory.NewCounter(prometheus.CounterOpts{
			Name: "sender_pacs002_send_success_total",
			Help: "pacs.002 reports delivered to the outbound queue.",
		}),
		SendFailure: factory.NewCounter(prometheus.CounterOpts{
			Name: "sender_pacs002_send_failure_total",
			Help: "pacs.002 delivery attempts that exhausted all retries.",
		}),
	}
}
