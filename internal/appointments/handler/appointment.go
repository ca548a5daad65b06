package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"medq/internal/appointments/service"
	"medq/internal/appointments/slip"
	httputil "medq/pkg/http"
	"medq/pkg/logger"
	"medq/pkg/model"
)

type AppointmentHandler struct {
	service service.AppointmentService
	log     *logger.Logger
}

func NewAppointmentHandler(service service.AppointmentService, log *logger.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
		log:     log,
	}
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.AppointmentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	appt, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, appt); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *AppointmentHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	views, err := h.service.GetAll(r.Context())
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WriteList(w, views, len(views)); err != nil {
		h.log.Error("failed to write list response", "handler", "GetAll", "operation", "WriteList", "error", err)
	}
}

func (h *AppointmentHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	view, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AppointmentHandler) WaitTime(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	estimate, err := h.service.WaitTime(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "WaitTime", err)
		return
	}

	if err := httputil.WriteSuccess(w, estimate); err != nil {
		h.log.Error("failed to write success response", "handler", "WaitTime", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AppointmentHandler) Prediction(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	prediction, err := h.service.Prediction(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Prediction", err)
		return
	}

	if err := httputil.WriteSuccess(w, prediction); err != nil {
		h.log.Error("failed to write success response", "handler", "Prediction", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AppointmentHandler) Slip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	body, appt, err := h.service.Slip(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Slip", err)
		return
	}

	if err := httputil.WriteFile(w, slip.ContentType, slip.Filename(*appt), body); err != nil {
		h.log.Error("failed to write file response", "handler", "Slip", "operation", "WriteFile", "error", err)
	}
}

func (h *AppointmentHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *AppointmentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/appointments", h.Create)
	router.GET("/api/v1/appointments", h.GetAll)
	router.GET("/api/v1/appointments/id/:id", h.GetByID)
	router.GET("/api/v1/appointments/id/:id/wait-time", h.WaitTime)
	router.GET("/api/v1/appointments/id/:id/prediction", h.Prediction)
	router.GET("/api/v1/appointments/id/:id/slip", h.Slip)
}
