package handler

import (
	"encoding/json"
	"net/http"

	"fastnic/internal/model"
	"fastnic/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order placement requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests: every ingredient of every
// named recipe is pushed into the shopping cart.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid JSON body", h.logger)
		return
	}

	if len(req.Recipes) == 0 {
		writeErrorCode(w, http.StatusBadRequest, model.ErrCodeMissingField, "order must name at least one recipe", h.logger)
		return
	}

	ordered, err := h.service.PlaceOrder(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, ordered)
}
