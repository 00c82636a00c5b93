package api

import (
	"net/http"
	"time"

	"github.com/snarg/captiond/internal/store"
)

type HealthResponse struct {
	Status        string            `json:"status"`
	Version       string            `json:"version"`
	UptimeSeconds int64             `json:"uptime_seconds"`
	Checks        map[string]string `json:"checks"`
}

type HealthHandler struct {
	archive   *store.Store
	version   string
	startTime time.Time
}

func NewHealthHandler(archive *store.Store, version string, startTime time.Time) *HealthHandler {
	return &HealthHandler{archive: archive, version: version, startTime: startTime}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:        "ok",
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Checks:        map[string]string{},
	}

	if h.archive == nil {
		resp.Checks["archive"] = "disabled"
	} else if err := h.archive.HealthCheck(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Checks["archive"] = err.Error()
	} else {
		resp.Checks["archive"] = "ok"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	WriteJSON(w, status, resp)
}
