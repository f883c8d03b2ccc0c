package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/x", "200", time.Millisecond)
	m.ObserveAggregateOperation("op", "success", time.Millisecond)
	m.ObserveDownload("txt", "ok")
	m.IncRateLimited("download")
	if err := m.WritePrometheus(&bytes.Buffer{}); err != nil {
		t.Fatalf("WritePrometheus on nil: %v", err)
	}
}

func TestWritePrometheusIsSortedAndLabelled(t *testing.T) {
	m := newMetrics(0.5)
	m.ObserveAPI("GET", "/b", "200", 10*time.Millisecond)
	m.ObserveAPI("GET", "/a", "500", 10*time.Millisecond)
	m.ObserveDownload("pdf", "ok")

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	a := strings.Index(out, `fg_api_requests_total{method="GET",route="/a",status="500"}`)
	b := strings.Index(out, `fg_api_requests_total{method="GET",route="/b",status="200"}`)
	if a < 0 || b < 0 || a > b {
		t.Fatalf("expected sorted api series, got:\n%s", out)
	}
	if !strings.Contains(out, `fg_shopping_list_downloads_total{format="pdf",status="ok"} 1.000000`) {
		t.Fatalf("missing download series:\n%s", out)
	}
	if m.apiReqError.Value() != 1 {
		t.Fatalf("expected one server error, got %v", m.apiReqError.Value())
	}
}

func TestSLOEvaluatorBurnRate(t *testing.T) {
	m := newMetrics(0.5)
	e := newSLOEvaluator(m, nil)
	for i := 0; i < 99; i++ {
		m.ObserveAPI("GET", "/x", "200", time.Millisecond)
	}
	m.ObserveAPI("GET", "/x", "503", time.Millisecond)
	e.evaluate()

	var buf bytes.Buffer
	_ = m.sloCompliance.WritePrometheus(&buf)
	if !strings.Contains(buf.String(), `slo="api_availability"`) || !strings.Contains(buf.String(), "0.990000") {
		t.Fatalf("unexpected compliance gauge:\n%s", buf.String())
	}
}

func TestFormatWindowLabel(t *testing.T) {
	if got := formatWindowLabel(720 * time.Hour); got != "30d" {
		t.Fatalf("720h: got %s", got)
	}
	if got := formatWindowLabel(36 * time.Hour); got != "36h" {
		t.Fatalf("36h: got %s", got)
	}
}
