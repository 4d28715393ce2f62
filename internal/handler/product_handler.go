package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"fastnic/internal/model"
	"fastnic/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// Collection handles GET and POST /api/products requests.
func (h *ProductHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getAll(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

// Item handles GET, PATCH and DELETE /api/products/{id} requests.
func (h *ProductHandler) Item(w http.ResponseWriter, r *http.Request) {
	productID := strings.TrimPrefix(r.URL.Path, "/api/products/")
	if productID == "" || strings.Contains(productID, "/") {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getByID(w, r, productID)
	case http.MethodPatch:
		h.update(w, r, productID)
	case http.MethodDelete:
		h.delete(w, r, productID)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *ProductHandler) getAll(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	limit := 10 // default
	if limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit parameter", h.logger)
			return
		}
	}

	offset := 0 // default
	if offsetStr != "" {
		var err error
		offset, err = strconv.Atoi(offsetStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid offset parameter", h.logger)
			return
		}
	}

	products, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if products == nil {
		products = []model.Product{}
	}

	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) getByID(w http.ResponseWriter, r *http.Request, productID string) {
	product, err := h.service.GetByID(r.Context(), productID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) create(w http.ResponseWriter, r *http.Request) {
	var req model.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid JSON body", h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if _, ok := err.(*model.DomainError); ok {
			writeDomainError(w, err, h.logger)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) update(w http.ResponseWriter, r *http.Request, productID string) {
	var req model.ProductUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid JSON body", h.logger)
		return
	}

	product, err := h.service.Update(r.Context(), productID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) delete(w http.ResponseWriter, r *http.Request, productID string) {
	if err := h.service.Delete(r.Context(), productID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
