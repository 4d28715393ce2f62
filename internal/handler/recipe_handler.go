package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"fastnic/internal/model"
	"fastnic/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RecipeHandler handles recipe-related HTTP requests.
type RecipeHandler struct {
	service service.RecipeService
	logger  zerolog.Logger
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(service service.RecipeService, logger zerolog.Logger) *RecipeHandler {
	return &RecipeHandler{
		service: service,
		logger:  logger.With().Str("handler", "recipe").Logger(),
	}
}

// Collection handles GET and POST /api/recipes requests.
func (h *RecipeHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getAll(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

// Item handles GET, PATCH and DELETE /api/recipes/{id} requests.
func (h *RecipeHandler) Item(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/recipes/")
	recipeID, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid recipe ID", h.logger)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getByID(w, r, recipeID)
	case http.MethodPatch:
		h.update(w, r, recipeID)
	case http.MethodDelete:
		h.delete(w, r, recipeID)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *RecipeHandler) getAll(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.service.GetAll(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if recipes == nil {
		recipes = []model.Recipe{}
	}

	writeJSON(w, http.StatusOK, recipes)
}

func (h *RecipeHandler) getByID(w http.ResponseWriter, r *http.Request, recipeID uuid.UUID) {
	recipe, err := h.service.GetByID(r.Context(), recipeID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) create(w http.ResponseWriter, r *http.Request) {
	var req model.RecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid JSON body", h.logger)
		return
	}

	recipe, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if _, ok := err.(*model.DomainError); ok {
			writeDomainError(w, err, h.logger)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, recipe)
}

func (h *RecipeHandler) update(w http.ResponseWriter, r *http.Request, recipeID uuid.UUID) {
	var req model.RecipeUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid JSON body", h.logger)
		return
	}

	recipe, err := h.service.Update(r.Context(), recipeID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) delete(w http.ResponseWriter, r *http.Request, recipeID uuid.UUID) {
	if err := h.service.Delete(r.Context(), recipeID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
