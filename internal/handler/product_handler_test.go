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

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id string, req *model.ProductUpdateRequest) (*model.Product, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestProductHandler_Collection_GetAll(t *testing.T) {
	products := []model.Product{
		{ID: "P001", Name: "Pasta", Category: "pantry", CreatedAt: time.Now()},
		{ID: "P002", Name: "Tomato", Category: "produce", CreatedAt: time.Now()},
	}

	tests := []struct {
		name           string
		queryParams    string
		expectedStatus int
		limit          int
		offset         int
		expectService  bool
	}{
		{
			name:           "Default pagination",
			queryParams:    "",
			expectedStatus: http.StatusOK,
			limit:          10,
			offset:         0,
			expectService:  true,
		},
		{
			name:           "Custom pagination",
			queryParams:    "?limit=5&offset=10",
			expectedStatus: http.StatusOK,
			limit:          5,
			offset:         10,
			expectService:  true,
		},
		{
			name:           "Invalid limit",
			queryParams:    "?limit=abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid offset",
			queryParams:    "?offset=x",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService := new(MockProductService)
			if tc.expectService {
				mockService.On("GetAll", mock.Anything, tc.limit, tc.offset).Return(products, nil)
			}

			h := NewProductHandler(mockService, zerolog.Nop())

			req := httptest.NewRequest(http.MethodGet, "/api/products"+tc.queryParams, nil)
			rec := httptest.NewRecorder()

			h.Collection(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_Collection_Create(t *testing.T) {
	product := &model.Product{ID: "P042", Name: "Olive oil", Category: "pantry"}

	mockService := new(MockProductService)
	mockService.On("Create", mock.Anything, mock.MatchedBy(func(r *model.ProductRequest) bool {
		return r.ID == "P042" && r.Name == "Olive oil"
	})).Return(product, nil)

	h := NewProductHandler(mockService, zerolog.Nop())

	body := `{"id": "P042", "name": "Olive oil", "category": "pantry"}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Collection(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	mockService.AssertExpectations(t)
}

func TestProductHandler_Item_GetByID(t *testing.T) {
	product := &model.Product{ID: "P001", Name: "Pasta"}

	mockService := new(MockProductService)
	mockService.On("GetByID", mock.Anything, "P001").Return(product, nil)

	h := NewProductHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/products/P001", nil)
	rec := httptest.NewRecorder()

	h.Item(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "P001", got.ID)
}

func TestProductHandler_Item_NotFound(t *testing.T) {
	mockService := new(MockProductService)
	mockService.On("GetByID", mock.Anything, "missing").Return(nil, model.ErrProductNotFound)

	h := NewProductHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/products/missing", nil)
	rec := httptest.NewRecorder()

	h.Item(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandler_Item_UpdateAndDelete(t *testing.T) {
	product := &model.Product{ID: "P001", Name: "Penne"}

	mockService := new(MockProductService)
	mockService.On("Update", mock.Anything, "P001", mock.Anything).Return(product, nil)
	mockService.On("Delete", mock.Anything, "P001").Return(nil)

	h := NewProductHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPatch, "/api/products/P001", strings.NewReader(`{"name": "Penne"}`))
	rec := httptest.NewRecorder()
	h.Item(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/products/P001", nil)
	rec = httptest.NewRecorder()
	h.Item(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	mockService.AssertExpectations(t)
}
