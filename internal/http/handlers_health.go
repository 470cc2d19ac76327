package httpx

import (
	"context"
	"io"
	"net/http"
	"time"
)

const healthResponse = `{"status":"ok"}`

// healthHandler returns a simple 200 OK status for liveness checks.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.WriteString(w, healthResponse); err != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}

// readinessTimeout bounds each dependency ping.
const readinessTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to the Pinger interface.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandlers serves the readiness endpoint. Nil pingers are reported
// as skipped rather than failing the check.
type HealthHandlers struct {
	DB    Pinger
	Redis Pinger
}

// Ready reports whether the backing stores answer a ping.
// GET /health/ready.
func (h *HealthHandlers) Ready(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	status := http.StatusOK

	deps := map[string]Pinger{
		"database": h.DB,
		"redis":    h.Redis,
	}
	for name, pinger := range deps {
		if pinger == nil {
			checks[name] = "skipped"
			continue
		}
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		err := pinger.Ping(ctx)
		cancel()
		if err != nil {
			checks[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "unavailable"
	}
	WriteJSON(w, status, map[string]any{
		"status": state,
		"checks": checks,
	})
}
