package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestHandlerExposesCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewServerMetrics(reg, reg)
	m.Requests.WithLabelValues("send", "200").Inc()
	m.WhatsAppSends.WithLabelValues("ok").Inc()
	m.LatencyMS.WithLabelValues("send").Observe(12)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`sparkmeals_http_requests_total{handler="send",status="200"} 1`,
		`sparkmeals_whatsapp_sends_total{outcome="ok"} 1`,
		`sparkmeals_http_request_duration_ms_count{handler="send"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestSeparateRegistererAndGatherer(t *testing.T) {
	reg := prometheus.NewRegistry()
	wrapped := prometheus.WrapRegistererWith(prometheus.Labels{"instance": "a"}, reg)
	m := NewServerMetrics(wrapped, reg)
	m.WhatsAppSends.WithLabelValues("ok").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if want := `sparkmeals_whatsapp_sends_total{instance="a",outcome="ok"} 1`; !strings.Contains(string(body), want) {
		t.Errorf("metrics output missing %q", want)
	}
}
