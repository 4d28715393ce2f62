package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fastnic/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRecipeService is a mock implementation of RecipeService.
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) GetAll(ctx context.Context) ([]model.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeService) GetByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) Create(ctx context.Context, req *model.RecipeRequest) (*model.Recipe, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) Update(ctx context.Context, id uuid.UUID, req *model.RecipeUpdateRequest) (*model.Recipe, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func sampleRecipe() *model.Recipe {
	recipeID := uuid.New()
	now := time.Now()
	return &model.Recipe{
		ID:        recipeID,
		Name:      "Spaghetti",
		Category:  "dinner",
		CreatedAt: now,
		UpdatedAt: now,
		Ingredients: []model.Ingredient{
			{ID: uuid.New(), RecipeID: recipeID, ProductID: "P001", Name: "Pasta", Quantity: 2},
		},
	}
}

func TestRecipeHandler_GetAll(t *testing.T) {
	mockService := new(MockRecipeService)
	mockService.On("GetAll", mock.Anything).Return([]model.Recipe{*sampleRecipe()}, nil)

	h := NewRecipeHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/recipes", nil)
	rec := httptest.NewRecorder()

	h.Collection(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []model.Recipe
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 1)
	assert.Equal(t, "Spaghetti", got[0].Name)
}

func TestRecipeHandler_GetAll_Empty(t *testing.T) {
	mockService := new(MockRecipeService)
	mockService.On("GetAll", mock.Anything).Return(nil, nil)

	h := NewRecipeHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/recipes", nil)
	rec := httptest.NewRecorder()

	h.Collection(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRecipeHandler_Create(t *testing.T) {
	recipe := sampleRecipe()

	mockService := new(MockRecipeService)
	mockService.On("Create", mock.Anything, mock.MatchedBy(func(r *model.RecipeRequest) bool {
		return r.Name == "Spaghetti" && len(r.Ingredients) == 1
	})).Return(recipe, nil)

	h := NewRecipeHandler(mockService, zerolog.Nop())

	body := `{"name": "Spaghetti", "category": "dinner",
		"ingredients": [{"productId": "P001", "name": "Pasta", "quantity": 2}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/recipes", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Collection(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	mockService.AssertExpectations(t)
}

func TestRecipeHandler_Create_Errors(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockError      error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Invalid JSON",
			body:           `{"name": `,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidJSON,
		},
		{
			name:           "Unknown product",
			body:           `{"name": "Spaghetti", "ingredients": [{"productId": "ghost", "quantity": 1}]}`,
			mockError:      model.ErrProductNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Invalid quantity",
			body:           `{"name": "Spaghetti", "ingredients": [{"productId": "P001", "quantity": 0}]}`,
			mockError:      model.ErrInvalidQuantity,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService := new(MockRecipeService)
			if tc.mockError != nil {
				mockService.On("Create", mock.Anything, mock.Anything).Return(nil, tc.mockError)
			}

			h := NewRecipeHandler(mockService, zerolog.Nop())

			req := httptest.NewRequest(http.MethodPost, "/api/recipes", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			h.Collection(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedCode != "" {
				var resp model.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tc.expectedCode, resp.Error)
			}
		})
	}
}

func TestRecipeHandler_Item_GetByID(t *testing.T) {
	recipe := sampleRecipe()

	mockService := new(MockRecipeService)
	mockService.On("GetByID", mock.Anything, recipe.ID).Return(recipe, nil)

	h := NewRecipeHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/recipes/"+recipe.ID.String(), nil)
	rec := httptest.NewRecorder()

	h.Item(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Recipe
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, recipe.ID, got.ID)
}

func TestRecipeHandler_Item_InvalidID(t *testing.T) {
	h := NewRecipeHandler(new(MockRecipeService), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/recipes/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	h.Item(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecipeHandler_Item_NotFound(t *testing.T) {
	id := uuid.New()

	mockService := new(MockRecipeService)
	mockService.On("GetByID", mock.Anything, id).Return(nil, model.ErrRecipeNotFound)

	h := NewRecipeHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/recipes/"+id.String(), nil)
	rec := httptest.NewRecorder()

	h.Item(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.ErrCodeRecipeNotFound, resp.Error)
}

func TestRecipeHandler_Item_Delete(t *testing.T) {
	id := uuid.New()

	mockService := new(MockRecipeService)
	mockService.On("Delete", mock.Anything, id).Return(nil)

	h := NewRecipeHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodDelete, "/api/recipes/"+id.String(), nil)
	rec := httptest.NewRecorder()

	h.Item(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	mockService.AssertExpectations(t)
}
