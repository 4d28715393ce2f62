package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"fastnic/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// writeErrorCode writes an error response carrying a stable API code
// alongside the human-readable message.
func writeErrorCode(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Int("status", status).Msg(message)
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeDomainError maps a service error onto the HTTP surface. Domain
// errors keep their stable code; anything unrecognised becomes a 500.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var precondition *model.PreconditionFailedError
	if errors.As(err, &precondition) {
		logger.Warn().Strs("unavailable", precondition.Unavailable).Msg("cart precondition failed")
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Error:   model.ErrCodeUnavailableInCart,
			Message: precondition.Error(),
		})
		return
	}

	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := statusForCode(domainErr.Code)
		logger.Error().Str("code", domainErr.Code).Int("status", status).Msg(domainErr.Message)
		writeJSON(w, status, model.ErrorResponse{Error: domainErr.Code, Message: domainErr.Message})
		return
	}

	logger.Error().Err(err).Msg("handler error")
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
		Error:   model.ErrCodeInternalError,
		Message: "internal server error",
	})
}

// statusForCode maps domain error codes to HTTP status codes.
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeRecipeNotFound, model.ErrCodeProductNotFound:
		return http.StatusNotFound
	case model.ErrCodeTooManyMatches:
		return http.StatusNotAcceptable
	case model.ErrCodeInvalidQuantity, model.ErrCodeAmbiguousProduct, model.ErrCodeNoPackCombination:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
