package handler

import (
	"net/http"

	"hotelbooking/internal/customers/service"
	"hotelbooking/internal/customers/validator"
	"hotelbooking/pkg/contracts"
	httputil "hotelbooking/pkg/http"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type CustomerHandler struct {
	service service.CustomerService
	log     *logger.Logger
}

func NewCustomerHandler(service service.CustomerService, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		log:     log,
	}
}

func (h *CustomerHandler) RegisterRoutes(router *httprouter.Router, guard contracts.Guard) {
	router.GET("/api/customers", h.GetAll)
	router.GET("/api/customers/:id", h.GetByID)
	router.POST("/api/customers", guard(h.Create))
	router.PUT("/api/customers/:id", guard(h.Update))
	router.DELETE("/api/customers/:id", guard(h.Delete))
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input model.CustomerCreate
	if err := httputil.DecodeBody(r, &input, validator.Messages); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	customer, err := h.service.Create(r.Context(), &input)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteResource(w, http.StatusOK, "customer", customer); err != nil {
		h.log.Error("failed to write resource response", "handler", "Create", "operation", "WriteResource", "error", err)
	}
}

func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.PathID(ps, "Customer")
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	customer, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteResource(w, http.StatusOK, "customer", customer); err != nil {
		h.log.Error("failed to write resource response", "handler", "GetByID", "operation", "WriteResource", "error", err)
	}
}

func (h *CustomerHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	customers, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	w.Header().Set(httputil.TotalCountHeader, httputil.FormatCount(total))
	if err := httputil.WriteResource(w, http.StatusOK, "customers", customers); err != nil {
		h.log.Error("failed to write resource response", "handler", "GetAll", "operation", "WriteResource", "error", err)
	}
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.PathID(ps, "Customer")
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	var input model.CustomerUpdate
	if err := httputil.DecodeBody(r, &input, validator.Messages); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	customer, err := h.service.Update(r.Context(), id, &input)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteResource(w, http.StatusOK, "customer", customer); err != nil {
		h.log.Error("failed to write resource response", "handler", "Update", "operation", "WriteResource", "error", err)
	}
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.PathID(ps, "Customer")
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

func (h *CustomerHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
