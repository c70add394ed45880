package handler

import (
	"context"
	"net/http"
	"time"

	"salonbook/internal/calendar"
	httputil "salonbook/pkg/http"
	"salonbook/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Calendar string `json:"calendar,omitempty"`
}

// HealthHandler probes the calendar gateway for readiness with a bounded
// one-minute listing against the probe calendar (the first configured staff
// member).
type HealthHandler struct {
	gateway         calendar.Gateway
	probeCalendarID string
	log             *logger.Logger
}

func NewHealthHandler(gateway calendar.Gateway, probeCalendarID string, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		gateway:         gateway,
		probeCalendarID: probeCalendarID,
		log:             log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	now := time.Now()
	if _, err := h.gateway.ListEvents(ctx, h.probeCalendarID, now, now.Add(time.Minute)); err != nil {
		h.log.Error("Calendar readiness check failed", "error", err)
		if writeErr := httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unavailable",
			Calendar: "error",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Ready", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:   "ready",
		Calendar: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
