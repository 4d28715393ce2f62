package handler

import (
	"net/http"

	"fastnic/internal/picnic"

	"github.com/rs/zerolog"
)

// HealthHandler reports service liveness and cart service connectivity.
type HealthHandler struct {
	cart   picnic.Client
	logger zerolog.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(cart picnic.Client, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		cart:   cart,
		logger: logger.With().Str("handler", "health").Logger(),
	}
}

// Live handles GET /health requests.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Picnic handles GET /health/picnic requests by probing the cart service
// session.
func (h *HealthHandler) Picnic(w http.ResponseWriter, r *http.Request) {
	loggedIn, err := h.cart.LoggedIn(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("cart service probe failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":    "unhealthy",
			"logged_in": false,
		})
		return
	}

	status := "healthy"
	code := http.StatusOK
	if !loggedIn {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]any{
		"status":    status,
		"logged_in": loggedIn,
	})
}
