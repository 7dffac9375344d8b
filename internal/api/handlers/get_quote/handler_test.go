package get_quote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	getQuote "github.com/m04kA/SMC-PetCareService/internal/usecase/get_quote"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getQuote.Request) (*getQuote.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getQuote.Response), args.Error(1)
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(body)))
	return w
}

func TestHandler_BoardingQuote(t *testing.T) {
	uc := &mockUseCase{}
	h := NewHandler(uc, logger.NewNop())

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *getQuote.Request) bool {
		return req.Category == domain.CategoryBoarding &&
			req.Species == domain.SpeciesCat &&
			req.StartDate != nil && req.StartDate.Equal(start) &&
			req.EndDate == nil
	})).Return(&getQuote.Response{
		ServiceName: "3 Days",
		Amount:      90,
		UnitLabel:   "per stay",
		TotalAmount: 90,
		Stay:        &getQuote.Stay{Enabled: true, EndDate: &end, Nights: ptr.Ptr(2)},
	}, nil)

	w := post(h, `{"category":"Boarding","species":"Cat","serviceId":"3-days","startDate":"2026-06-01"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp QuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 90.0, resp.TotalAmount)
	require.NotNil(t, resp.Stay)
	assert.False(t, resp.Stay.Editable)
	require.NotNil(t, resp.Stay.EndDate)
	assert.Equal(t, "2026-06-03", *resp.Stay.EndDate)
	assert.Equal(t, 2, *resp.Stay.Nights)
	uc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		ucErr      error
		wantStatus int
	}{
		{"broken json", `{"category":`, nil, http.StatusBadRequest},
		{"missing service id", `{"category":"Grooming","species":"dog"}`, nil, http.StatusBadRequest},
		{"unknown size", `{"category":"Grooming","species":"dog","serviceId":"x","size":"huge"}`, nil, http.StatusBadRequest},
		{"unknown species", `{"category":"Grooming","species":"parrot","serviceId":"x"}`, nil, http.StatusBadRequest},
		{"bad date", `{"category":"Boarding","species":"dog","serviceId":"x","startDate":"01.06.2026"}`, nil, http.StatusBadRequest},
		{"service not found", `{"category":"Grooming","species":"dog","serviceId":"x"}`, getQuote.ErrServiceNotFound, http.StatusNotFound},
		{"invalid price", `{"category":"Grooming","species":"dog","serviceId":"x"}`, getQuote.ErrInvalidPrice, http.StatusUnprocessableEntity},
		{"invalid input", `{"category":"Grooming","species":"dog","serviceId":"x"}`, getQuote.ErrInvalidInput, http.StatusBadRequest},
		{"internal", `{"category":"Grooming","species":"dog","serviceId":"x"}`, getQuote.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			h := NewHandler(uc, logger.NewNop())
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}

			w := post(h, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.ucErr == nil {
				uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
			}
		})
	}
}
