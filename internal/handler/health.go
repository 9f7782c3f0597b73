package handler

import (
	"encoding/json"
	"net/http"
	"time"
)

type HealthHandler struct {
	serviceName string
	startTime   time.Time
}

func NewHealthHandler(serviceName string) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, startTime: time.Now()}
}

// Health is a liveness probe.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":         "ok",
		"service":        h.serviceName,
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
	})
}
