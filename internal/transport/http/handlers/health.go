package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobtrackr/auth-service/internal/transport/http/response"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness plus the reachability of each attached
// dependency. Optional dependencies (nil pingers) are skipped.
type HealthHandler struct {
	deps map[string]Pinger
	log  zerolog.Logger
}

func NewHealthHandler(log zerolog.Logger) *HealthHandler {
	return &HealthHandler{deps: make(map[string]Pinger), log: log}
}

func (h *HealthHandler) Attach(name string, p Pinger) {
	if p != nil {
		h.deps[name] = p
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{"service": "ok"}
	code := http.StatusOK
	for name, p := range h.deps {
		if err := p.Ping(ctx); err != nil {
			h.log.Warn().Err(err).Str("dependency", name).Msg("health check failed")
			status[name] = "unavailable"
			code = http.StatusServiceUnavailable
			continue
		}
		status[name] = "ok"
	}

	response.Write(w, r, code, status)
}
