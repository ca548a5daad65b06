package handler

import (
	"net/http"
	"strings"

	"medq/internal/queue/service"
	httputil "medq/pkg/http"
	"medq/pkg/logger"
	"medq/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type QueueHandler struct {
	service service.QueueService
	log     *logger.Logger
}

func NewQueueHandler(service service.QueueService, log *logger.Logger) *QueueHandler {
	return &QueueHandler{
		service: service,
		log:     log,
	}
}

func (h *QueueHandler) State(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	state, err := h.service.State(r.Context(), strings.TrimSpace(ps.ByName("doctor_id")), strings.TrimSpace(ps.ByName("date")))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "State", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, state); err != nil {
		h.log.Error("failed to write success response", "handler", "State", "operation", "WriteSuccess", "error", err)
	}
}

func (h *QueueHandler) Advance(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req model.AdvanceQueueRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Advance", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	state, err := h.service.Advance(r.Context(), strings.TrimSpace(ps.ByName("doctor_id")), strings.TrimSpace(ps.ByName("date")), req.NowServing)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Advance", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, state); err != nil {
		h.log.Error("failed to write success response", "handler", "Advance", "operation", "WriteSuccess", "error", err)
	}
}

func (h *QueueHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/queues/:doctor_id/:date", h.State)
	router.POST("/api/v1/queues/:doctor_id/:date/advance", h.Advance)
}
