package metrics

import (
	"testing"
	"time"

	"github.com/janasethu/civic-api/internal/observability/statsd"
)

type recordingSink struct {
	counts  []recordedMetric
	timings []recordedMetric
}

type recordedMetric struct {
	name string
	tags map[string]string
}

func (r *recordingSink) Count(name string, _ int64, tags map[string]string) {
	r.counts = append(r.counts, recordedMetric{name: name, tags: tags})
}

func (r *recordingSink) Gauge(string, float64, map[string]string) {}

func (r *recordingSink) Timing(name string, _ time.Duration, tags map[string]string) {
	r.timings = append(r.timings, recordedMetric{name: name, tags: tags})
}

var _ statsd.Sink = (*recordingSink)(nil)

func TestEmitHTTPRequest(t *testing.T) {
	sink := &recordingSink{}

	EmitHTTPRequest(sink, HTTPMetric{
		Method:   "POST",
		Path:     "/api/complaints",
		Status:   201,
		Duration: 12 * time.Millisecond,
	})

	if len(sink.counts) != 1 {
		t.Fatalf("expected 1 count, got %d", len(sink.counts))
	}
	if sink.counts[0].name != "http.request" {
		t.Errorf("unexpected count name %q", sink.counts[0].name)
	}
	if sink.counts[0].tags["status"] != "201" {
		t.Errorf("unexpected status tag %q", sink.counts[0].tags["status"])
	}
	if len(sink.timings) != 1 {
		t.Fatalf("expected 1 timing, got %d", len(sink.timings))
	}
}

func TestEmitHTTPRequest_NilSinkAndZeroDuration(t *testing.T) {
	EmitHTTPRequest(nil, HTTPMetric{Method: "GET", Status: 200})

	sink := &recordingSink{}
	EmitHTTPRequest(sink, HTTPMetric{Method: "GET", Status: 200})
	if len(sink.timings) != 0 {
		t.Fatalf("expected no timing for zero duration, got %d", len(sink.timings))
	}
}

func TestCloneTags(t *testing.T) {
	if CloneTags(nil) != nil {
		t.Fatal("expected nil for empty input")
	}

	src := map[string]string{"a": "1", "": "drop"}
	out := CloneTags(src)
	if len(out) != 1 || out["a"] != "1" {
		t.Fatalf("unexpected clone: %v", out)
	}
}
