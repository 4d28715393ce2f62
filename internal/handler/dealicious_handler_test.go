package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fastnic/internal/dealicious"
	"fastnic/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDealiciousService is a mock implementation of dealicious.Service.
type MockDealiciousService struct {
	mock.Mock
}

func (m *MockDealiciousService) Combine(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDealiciousService) FindPromos(ctx context.Context) ([]dealicious.PromoCandidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dealicious.PromoCandidate), args.Error(1)
}

func (m *MockDealiciousService) ApplyPromos(ctx context.Context, candidates []dealicious.PromoCandidate) error {
	args := m.Called(ctx, candidates)
	return args.Error(0)
}

func TestDealiciousHandler_Combine(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		mockError      error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Success",
			method:         http.MethodPost,
			mockError:      nil,
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Unavailable item fails closed",
			method:         http.MethodPost,
			mockError:      &model.PreconditionFailedError{Unavailable: []string{"Milk"}},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeUnavailableInCart,
		},
		{
			name:           "No pack combination",
			method:         http.MethodPost,
			mockError:      model.ErrNoPackCombination,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeNoPackCombination,
		},
		{
			name:           "Ambiguous product",
			method:         http.MethodPost,
			mockError:      model.ErrAmbiguousProduct,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeAmbiguousProduct,
		},
		{
			name:           "Cart service failure",
			method:         http.MethodPost,
			mockError:      errors.New("connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   model.ErrCodeInternalError,
		},
		{
			name:           "Wrong method",
			method:         http.MethodGet,
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService := new(MockDealiciousService)
			if tc.method == http.MethodPost {
				mockService.On("Combine", mock.Anything).Return(tc.mockError)
			}

			h := NewDealiciousHandler(mockService, zerolog.Nop())

			req := httptest.NewRequest(tc.method, "/api/dealicious/combine", nil)
			rec := httptest.NewRecorder()

			h.Combine(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedCode != "" {
				var resp model.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tc.expectedCode, resp.Error)
			}
		})
	}
}

func TestDealiciousHandler_Promo_Get(t *testing.T) {
	candidates := []dealicious.PromoCandidate{
		{Name: "Milk", ID: "P1", Quantity: 2, PromoText: "3 voor 2"},
	}

	mockService := new(MockDealiciousService)
	mockService.On("FindPromos", mock.Anything).Return(candidates, nil)

	h := NewDealiciousHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/dealicious/promo", nil)
	rec := httptest.NewRecorder()

	h.Promo(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []dealicious.PromoCandidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, candidates, got)
}

func TestDealiciousHandler_Promo_Get_Empty(t *testing.T) {
	mockService := new(MockDealiciousService)
	mockService.On("FindPromos", mock.Anything).Return(nil, nil)

	h := NewDealiciousHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/dealicious/promo", nil)
	rec := httptest.NewRecorder()

	h.Promo(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestDealiciousHandler_Promo_Post(t *testing.T) {
	candidates := []dealicious.PromoCandidate{
		{Name: "Milk", ID: "P1", Quantity: 2, PromoText: "3 voor 2"},
	}

	mockService := new(MockDealiciousService)
	mockService.On("ApplyPromos", mock.Anything, candidates).Return(nil)

	h := NewDealiciousHandler(mockService, zerolog.Nop())

	body := `[{"name": "Milk", "id": "P1", "quantity": 2, "promo_text": "3 voor 2"}]`
	req := httptest.NewRequest(http.MethodPost, "/api/dealicious/promo", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Promo(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
	// The posted list is authoritative; no fresh scan replaces it.
	mockService.AssertNotCalled(t, "FindPromos", mock.Anything)
}

func TestDealiciousHandler_Promo_Post_AppliesOnlyPostedCandidates(t *testing.T) {
	// A client that GETs the full promo list and prunes it before
	// POSTing must see exactly the pruned list redeemed.
	kept := []dealicious.PromoCandidate{
		{Name: "Milk", ID: "P1", Quantity: 2, PromoText: "3 voor 2"},
	}

	mockService := new(MockDealiciousService)
	mockService.On("ApplyPromos", mock.Anything, kept).Return(nil)

	h := NewDealiciousHandler(mockService, zerolog.Nop())

	body, err := json.Marshal(kept)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/dealicious/promo", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Promo(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []dealicious.PromoCandidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, kept, got)
	mockService.AssertExpectations(t)
	mockService.AssertNotCalled(t, "FindPromos", mock.Anything)
}

func TestDealiciousHandler_Promo_Post_InvalidJSON(t *testing.T) {
	mockService := new(MockDealiciousService)

	h := NewDealiciousHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/dealicious/promo", strings.NewReader(`{"not": "a list"`))
	rec := httptest.NewRecorder()

	h.Promo(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.ErrCodeInvalidJSON, resp.Error)
	mockService.AssertNotCalled(t, "ApplyPromos", mock.Anything, mock.Anything)
}

func TestDealiciousHandler_Promo_Post_InvalidQuantity(t *testing.T) {
	candidates := []dealicious.PromoCandidate{
		{Name: "Milk", ID: "P1", Quantity: 9, PromoText: "3 voor 2"},
	}

	mockService := new(MockDealiciousService)
	mockService.On("ApplyPromos", mock.Anything, candidates).Return(model.ErrInvalidQuantity)

	h := NewDealiciousHandler(mockService, zerolog.Nop())

	body := `[{"name": "Milk", "id": "P1", "quantity": 9, "promo_text": "3 voor 2"}]`
	req := httptest.NewRequest(http.MethodPost, "/api/dealicious/promo", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Promo(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.ErrCodeInvalidQuantity, resp.Error)
}

func TestDealiciousHandler_Promo_Unavailable(t *testing.T) {
	mockService := new(MockDealiciousService)
	mockService.On("FindPromos", mock.Anything).
		Return(nil, &model.PreconditionFailedError{Unavailable: []string{"Milk", "Eggs"}})

	h := NewDealiciousHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/dealicious/promo", nil)
	rec := httptest.NewRecorder()

	h.Promo(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.ErrCodeUnavailableInCart, resp.Error)
	assert.Contains(t, resp.Message, "Milk")
	assert.Contains(t, resp.Message, "Eggs")
}
