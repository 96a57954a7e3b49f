package updatestatus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/avdeevalex/gameshop/internal/models"
	"github.com/avdeevalex/gameshop/internal/services"
)

// MockService реализует интерфейс updatestatus.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) UpdateStatus(ctx context.Context, id int64, status, comment string) (*models.Purchase, error) {
	args := m.Called(ctx, id, status, comment)
	if res := args.Get(0); res != nil {
		return res.(*models.Purchase), args.Error(1)
	}
	return nil, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestUpdateStatusHandler_ServeHTTP(t *testing.T) {
	logger := newNoopLogger()

	tests := []struct {
		name           string
		urlID          string
		requestBody    interface{}
		mockPurchase   *models.Purchase
		mockErr        error
		callsService   bool
		wantStatusCode int
		wantStatus     string
		wantError      string
	}{
		{
			name:        "успешная смена статуса",
			urlID:       "15",
			requestBody: models.UpdateOrderStatusRequest{Status: models.StatusPaid, Comment: "оплачено переводом"},
			mockPurchase: &models.Purchase{
				ID:           15,
				Status:       models.StatusPaid,
				AdminComment: "оплачено переводом",
			},
			callsService:   true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "некорректный id в URL",
			urlID:          "abc",
			requestBody:    models.UpdateOrderStatusRequest{Status: models.StatusPaid},
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "Error",
			wantError:      "invalid id",
		},
		{
			name:           "некорректный json",
			urlID:          "15",
			requestBody:    "{bad",
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "Error",
			wantError:      "invalid request body",
		},
		{
			name:           "ошибка валидации - недопустимый статус",
			urlID:          "15",
			requestBody:    models.UpdateOrderStatusRequest{Status: "shipped"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantStatus:     "Error",
			wantError:      "field Status must be one of the allowed values",
		},
		{
			name:           "заказ не найден",
			urlID:          "777",
			requestBody:    models.UpdateOrderStatusRequest{Status: models.StatusCancelled},
			mockErr:        services.ErrNotFound,
			callsService:   true,
			wantStatusCode: http.StatusNotFound,
			wantStatus:     "Error",
			wantError:      "order not found",
		},
		{
			name:           "заказ уже в терминальном статусе",
			urlID:          "15",
			requestBody:    models.UpdateOrderStatusRequest{Status: models.StatusPaid},
			mockErr:        services.ErrNotPending,
			callsService:   true,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantStatus:     "Error",
			wantError:      "order is not pending",
		},
		{
			name:           "внутренняя ошибка",
			urlID:          "15",
			requestBody:    models.UpdateOrderStatusRequest{Status: models.StatusPaid},
			mockErr:        errors.New("db error"),
			callsService:   true,
			wantStatusCode: http.StatusInternalServerError,
			wantStatus:     "Error",
			wantError:      "could not update order status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			if tt.callsService {
				mockService.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(tt.mockPurchase, tt.mockErr).Once()
			}

			handler := New(logger, mockService)

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/admin/orders/"+tt.urlID+"/status", bytes.NewReader(bodyBytes))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.urlID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			} else {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				order, ok := data["order"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, models.StatusPaid, order["Status"])
			}

			mockService.AssertExpectations(t)
		})
	}
}
