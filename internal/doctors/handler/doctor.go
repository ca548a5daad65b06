package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"medq/internal/doctors/service"
	httputil "medq/pkg/http"
	"medq/pkg/logger"
)

type DoctorHandler struct {
	service service.DoctorService
	log     *logger.Logger
}

func NewDoctorHandler(service service.DoctorService, log *logger.Logger) *DoctorHandler {
	return &DoctorHandler{
		service: service,
		log:     log,
	}
}

func (h *DoctorHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	doctors := h.service.Search(r.Context(), httputil.QueryParam(r, "q"))

	if err := httputil.WriteList(w, doctors, len(doctors)); err != nil {
		h.log.Error("failed to write list response", "handler", "Search", "operation", "WriteList", "error", err)
	}
}

func (h *DoctorHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	doctor, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, doctor); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DoctorHandler) Specialties(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, h.service.Specialties(r.Context())); err != nil {
		h.log.Error("failed to write success response", "handler", "Specialties", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DoctorHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/doctors", h.Search)
	router.GET("/api/v1/doctors/id/:id", h.GetByID)
	router.GET("/api/v1/doctors/specialties", h.Specialties)
}
