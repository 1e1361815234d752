package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	goSession "github.com/MrEthical07/goSession"
)

type stubSource struct {
	snapshot goSession.MetricsSnapshot
	dropped  uint64
}

func (s *stubSource) MetricsSnapshot() goSession.MetricsSnapshot {
	return s.snapshot
}

func (s *stubSource) AuditDropped() uint64 {
	return s.dropped
}

func TestRenderCounters(t *testing.T) {
	source := &stubSource{
		snapshot: goSession.MetricsSnapshot{
			Counters: map[goSession.MetricID]uint64{
				goSession.MetricLoginSuccess:  3,
				goSession.MetricLogout:        1,
				goSession.MetricGateRender:    7,
			},
			Histograms: map[goSession.MetricID][]uint64{},
		},
		dropped: 2,
	}

	output := NewPrometheusExporterFromSource(source).Render()

	for _, want := range []string{
		"# TYPE gosession_login_success_total counter",
		"gosession_login_success_total 3",
		"gosession_logout_total 1",
		"gosession_gate_render_total 7",
		"gosession_audit_dropped_total 2",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q:\n%s", want, output)
		}
	}
}

func TestRenderHistogramCumulative(t *testing.T) {
	source := &stubSource{
		snapshot: goSession.MetricsSnapshot{
			Counters: map[goSession.MetricID]uint64{goSession.MetricLoginSuccess: 1},
			Histograms: map[goSession.MetricID][]uint64{
				goSession.MetricLoginLatency: {2, 1, 0, 0, 0, 0, 0, 1},
			},
		},
	}

	output := NewPrometheusExporterFromSource(source).Render()

	for _, want := range []string{
		`gosession_login_latency_seconds_bucket{le="0.005"} 2`,
		`gosession_login_latency_seconds_bucket{le="0.01"} 3`,
		`gosession_login_latency_seconds_bucket{le="+Inf"} 4`,
		"gosession_login_latency_seconds_count 4",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q:\n%s", want, output)
		}
	}
}

func TestRenderEmptySource(t *testing.T) {
	if out := NewPrometheusExporterFromSource(nil).Render(); out != "" {
		t.Fatalf("nil source rendered %q", out)
	}

	empty := &stubSource{snapshot: goSession.MetricsSnapshot{
		Counters:   map[goSession.MetricID]uint64{},
		Histograms: map[goSession.MetricID][]uint64{},
	}}
	if out := NewPrometheusExporterFromSource(empty).Render(); out != "" {
		t.Fatalf("empty source rendered %q", out)
	}
}

func TestHandlerContentType(t *testing.T) {
	source := &stubSource{
		snapshot: goSession.MetricsSnapshot{
			Counters:   map[goSession.MetricID]uint64{goSession.MetricLoginSuccess: 1},
			Histograms: map[goSession.MetricID][]uint64{},
		},
	}

	rec := httptest.NewRecorder()
	NewPrometheusExporterFromSource(source).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/plain") {
		t.Fatalf("Content-Type = %q", got)
	}
	if !strings.Contains(rec.Body.String(), "gosession_login_success_total 1") {
		t.Fatalf("body missing counter:\n%s", rec.Body.String())
	}
}
