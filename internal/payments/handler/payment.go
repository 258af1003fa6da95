package handler

import (
	"net/http"

	"hotelbooking/internal/payments/service"
	"hotelbooking/internal/payments/validator"
	"hotelbooking/pkg/contracts"
	httputil "hotelbooking/pkg/http"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type PaymentHandler struct {
	service service.PaymentService
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router, guard contracts.Guard) {
	router.GET("/api/payments", h.GetAll)
	router.GET("/api/payments/:id", h.GetByID)
	router.POST("/api/payments", guard(h.Create))
	router.PUT("/api/payments/:id", guard(h.Update))
	router.DELETE("/api/payments/:id", guard(h.Delete))
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.PaymentCreate
	if err := httputil.DecodeBody(r, &input, validator.Messages); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	payment, err := h.service.Create(r.Context(), &input)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteResource(w, http.StatusOK, "payment", payment); err != nil {
		h.log.Error("failed to write resource response", "handler", "Create", "operation", "WriteResource", "error", err)
	}
}

func (h *PaymentHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.PathID(ps, "Payment")
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	payment, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteResource(w, http.StatusOK, "payment", payment); err != nil {
		h.log.Error("failed to write resource response", "handler", "GetByID", "operation", "WriteResource", "error", err)
	}
}

func (h *PaymentHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	payments, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	w.Header().Set(httputil.TotalCountHeader, httputil.FormatCount(total))
	if err := httputil.WriteResource(w, http.StatusOK, "payments", payments); err != nil {
		h.log.Error("failed to write resource response", "handler", "GetAll", "operation", "WriteResource", "error", err)
	}
}

func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.PathID(ps, "Payment")
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	var input model.PaymentUpdate
	if err := httputil.DecodeBody(r, &input, validator.Messages); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	payment, err := h.service.Update(r.Context(), id, &input)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteResource(w, http.StatusOK, "payment", payment); err != nil {
		h.log.Error("failed to write resource response", "handler", "Update", "operation", "WriteResource", "error", err)
	}
}

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.PathID(ps, "Payment")
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

func (h *PaymentHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
