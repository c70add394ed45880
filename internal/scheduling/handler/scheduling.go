package handler

import (
	"encoding/json"
	"net/http"

	"salonbook/internal/scheduling"
	httputil "salonbook/pkg/http"
	"salonbook/pkg/logger"
	"salonbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type SchedulingHandler struct {
	service scheduling.SchedulingService
	log     *logger.Logger
}

func NewSchedulingHandler(service scheduling.SchedulingService, log *logger.Logger) *SchedulingHandler {
	return &SchedulingHandler{
		service: service,
		log:     log,
	}
}

func (h *SchedulingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.AvailabilityRequest
	if !h.decode(w, r, &req, "CheckAvailability") {
		return
	}

	availability, err := h.service.CheckAvailability(r.Context(), &req)
	if err != nil {
		h.writeError(w, "CheckAvailability", err)
		return
	}

	if err := httputil.WriteSuccess(w, availability); err != nil {
		h.log.Error("failed to write success response", "handler", "CheckAvailability", "error", err)
	}
}

func (h *SchedulingHandler) FreeSlotsForDay(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.DaySlotsRequest
	if !h.decode(w, r, &req, "FreeSlotsForDay") {
		return
	}

	slots, err := h.service.FreeSlotsForDay(r.Context(), &req)
	if err != nil {
		h.writeError(w, "FreeSlotsForDay", err)
		return
	}

	if err := httputil.WriteSuccess(w, slots); err != nil {
		h.log.Error("failed to write success response", "handler", "FreeSlotsForDay", "error", err)
	}
}

func (h *SchedulingHandler) NextFreeSlots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.NextSlotsRequest
	if !h.decode(w, r, &req, "NextFreeSlots") {
		return
	}

	slots, err := h.service.NextFreeSlots(r.Context(), &req)
	if err != nil {
		h.writeError(w, "NextFreeSlots", err)
		return
	}

	if err := httputil.WriteSuccess(w, slots); err != nil {
		h.log.Error("failed to write success response", "handler", "NextFreeSlots", "error", err)
	}
}

func (h *SchedulingHandler) Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if !h.decode(w, r, &req, "Book") {
		return
	}

	confirmation, err := h.service.Book(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Book", err)
		return
	}

	if err := httputil.WriteCreated(w, confirmation); err != nil {
		h.log.Error("failed to write created response", "handler", "Book", "error", err)
	}
}

func (h *SchedulingHandler) Cancel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CancellationRequest
	if !h.decode(w, r, &req, "Cancel") {
		return
	}

	cancellation, err := h.service.Cancel(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	if err := httputil.WriteSuccess(w, cancellation); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "error", err)
	}
}

func (h *SchedulingHandler) decode(w http.ResponseWriter, r *http.Request, into any, handlerName string) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", handlerName, "error", writeErr)
		}
		return false
	}
	return true
}

func (h *SchedulingHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *SchedulingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/availability", h.CheckAvailability)
	router.POST("/api/v1/slots/day", h.FreeSlotsForDay)
	router.POST("/api/v1/slots/next", h.NextFreeSlots)
	router.POST("/api/v1/bookings", h.Book)
	router.POST("/api/v1/bookings/cancel", h.Cancel)
}
