package handler

import (
	"net/http"

	"hotelbooking/internal/rooms/service"
	"hotelbooking/internal/rooms/validator"
	"hotelbooking/pkg/contracts"
	httputil "hotelbooking/pkg/http"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type RoomHandler struct {
	service service.RoomService
	log     *logger.Logger
}

func NewRoomHandler(service service.RoomService, log *logger.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		log:     log,
	}
}

func (h *RoomHandler) RegisterRoutes(router *httprouter.Router, guard contracts.Guard) {
	router.GET("/api/rooms", h.GetAll)
	router.GET("/api/rooms/:id", h.GetByID)
	router.POST("/api/rooms", guard(h.Create))
	router.PUT("/api/rooms/:id", guard(h.Update))
	router.DELETE("/api/rooms/:id", guard(h.Delete))
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.RoomCreate
	if err := httputil.DecodeBody(r, &input, validator.Messages); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	room, err := h.service.Create(r.Context(), &input)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteResource(w, http.StatusOK, "room", room); err != nil {
		h.log.Error("failed to write resource response", "handler", "Create", "operation", "WriteResource", "error", err)
	}
}

func (h *RoomHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.PathID(ps, "Room")
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	room, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteResource(w, http.StatusOK, "room", room); err != nil {
		h.log.Error("failed to write resource response", "handler", "GetByID", "operation", "WriteResource", "error", err)
	}
}

func (h *RoomHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	rooms, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	w.Header().Set(httputil.TotalCountHeader, httputil.FormatCount(total))
	if err := httputil.WriteResource(w, http.StatusOK, "rooms", rooms); err != nil {
		h.log.Error("failed to write resource response", "handler", "GetAll", "operation", "WriteResource", "error", err)
	}
}

func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.PathID(ps, "Room")
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	var input model.RoomUpdate
	if err := httputil.DecodeBody(r, &input, validator.Messages); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	room, err := h.service.Update(r.Context(), id, &input)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteResource(w, http.StatusOK, "room", room); err != nil {
		h.log.Error("failed to write resource response", "handler", "Update", "operation", "WriteResource", "error", err)
	}
}

func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.PathID(ps, "Room")
	if err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *RoomHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
