package metrics

import (
	"strconv"
	"time"

	"github.com/janasethu/civic-api/internal/observability/statsd"
)

// HTTPMetric captures details about one handled HTTP request.
type HTTPMetric struct {
	Method   string
	Path     string
	Status   int
	Duration time.Duration
}

// EmitHTTPRequest emits standardised request metrics.
func EmitHTTPRequest(sink statsd.Sink, in HTTPMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"method": in.Method,
		"status": strconv.Itoa(in.Status),
	}
	if in.Path != "" {
		tags["path"] = in.Path
	}

	sink.Count("http.request", 1, tags)

	if in.Duration > 0 {
		sink.Timing("http.duration", in.Duration, CloneTags(tags))
	}
}

// CloneTags creates a shallow copy of a tag map, filtering out empty keys.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		if k == "" {
			continue
		}
		out[k] = v
	}
	return out
}
