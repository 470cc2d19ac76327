package httpx

import (
	"fmt"
	"net/http"
	"time"

	"github.com/janasethu/civic-api/internal/domain/realtime"
)

// streamHeartbeat is how often a comment line is sent to keep idle
// connections from being reaped by proxies.
const streamHeartbeat = 25 * time.Second

// StreamHandlers serves server-sent event streams of realtime change events.
type StreamHandlers struct {
	Notifier realtime.Notifier
}

// Stream subscribes the client to one topic and relays events as SSE frames
// until the client disconnects.
// GET /api/stream/{topic}.
func (h *StreamHandlers) Stream(w http.ResponseWriter, r *http.Request) {
	topic := realtime.Topic(r.PathValue("topic"))
	if !topic.Valid() {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "unknown_topic"})
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "streaming_unsupported"})
		return
	}

	unsub, ch := h.Notifier.Subscribe(topic)
	defer unsub()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case payload, open := <-ch:
			if !open {
				return
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
