package handler

import (
	"encoding/json"
	"net/http"

	"fastnic/internal/dealicious"
	"fastnic/internal/model"

	"github.com/rs/zerolog"
)

// DealiciousHandler exposes the discount optimizer over HTTP.
type DealiciousHandler struct {
	service dealicious.Service
	logger  zerolog.Logger
}

// NewDealiciousHandler creates a new discount handler.
func NewDealiciousHandler(service dealicious.Service, logger zerolog.Logger) *DealiciousHandler {
	return &DealiciousHandler{
		service: service,
		logger:  logger.With().Str("handler", "dealicious").Logger(),
	}
}

// Combine handles POST /api/dealicious/combine requests. The operation
// mutates the cart in place and returns no body.
func (h *DealiciousHandler) Combine(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if err := h.service.Combine(r.Context()); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

// Promo handles GET and POST /api/dealicious/promo requests: GET lists
// the cart items carrying a promotional offer, POST takes a list of
// candidates and tops each up to its promo threshold.
func (h *DealiciousHandler) Promo(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.findPromos(w, r)
	case http.MethodPost:
		h.applyPromos(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *DealiciousHandler) findPromos(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.service.FindPromos(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if candidates == nil {
		candidates = []dealicious.PromoCandidate{}
	}

	writeJSON(w, http.StatusOK, candidates)
}

func (h *DealiciousHandler) applyPromos(w http.ResponseWriter, r *http.Request) {
	var candidates []dealicious.PromoCandidate
	if err := json.NewDecoder(r.Body).Decode(&candidates); err != nil {
		writeErrorCode(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid JSON body", h.logger)
		return
	}

	if err := h.service.ApplyPromos(r.Context(), candidates); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if candidates == nil {
		candidates = []dealicious.PromoCandidate{}
	}

	writeJSON(w, http.StatusOK, candidates)
}
