package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	Requests      *prometheus.CounterVec
	LatencyMS     *prometheus.HistogramVec
	WhatsAppSends *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewServerMetrics registers the storefront collectors on reg and serves
// /metrics from gatherer. A *prometheus.Registry is usually both.
func NewServerMetrics(reg prometheus.Registerer, gatherer prometheus.Gatherer) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sparkmeals",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sparkmeals",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})
	sends := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sparkmeals",
		Name:      "whatsapp_sends_total",
		Help:      "WhatsApp confirmations by outcome.",
	}, []string{"outcome"})

	reg.MustRegister(requests, latency, sends)
	return &ServerMetrics{Requests: requests, LatencyMS: latency, WhatsAppSends: sends, gatherer: gatherer}
}

func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
