package create

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

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/avdeevalex/gameshop/internal/http/middlewarectx"
	"github.com/avdeevalex/gameshop/internal/models"
	"github.com/avdeevalex/gameshop/internal/services"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, userID int64, req models.CreateOrderRequest) (*models.Purchase, error) {
	args := m.Called(ctx, userID, req)
	if res := args.Get(0); res != nil {
		return res.(*models.Purchase), args.Error(1)
	}
	return nil, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCreateHandler_ServeHTTP(t *testing.T) {
	logger := newNoopLogger()
	user := &models.User{ID: 7, Username: "buyer", Role: models.RoleUser}

	validBody := models.CreateOrderRequest{
		ProductID:     3,
		TgUsername:    "@buyer",
		CustomerEmail: "buyer@example.com",
		CustomerName:  "Buyer",
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		withUser       bool
		mockPurchase   *models.Purchase
		mockErr        error
		callsService   bool
		wantStatusCode int
		wantStatus     string
		wantError      string
	}{
		{
			name:        "успешное создание заказа",
			requestBody: validBody,
			withUser:    true,
			mockPurchase: &models.Purchase{
				ID:         11,
				UserID:     7,
				ProductID:  3,
				Status:     models.StatusPending,
				OrderToken: "order-token",
			},
			callsService:   true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "некорректный json",
			requestBody:    "{bad",
			withUser:       true,
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "Error",
			wantError:      "invalid request body",
		},
		{
			name: "ошибка валидации - нет товара",
			requestBody: models.CreateOrderRequest{
				TgUsername:    "@buyer",
				CustomerEmail: "buyer@example.com",
				CustomerName:  "Buyer",
			},
			withUser:       true,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantStatus:     "Error",
			wantError:      "field ProductID is a required field",
		},
		{
			name:           "нет пользователя в контексте",
			requestBody:    validBody,
			withUser:       false,
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     "Error",
			wantError:      "unauthorized",
		},
		{
			name:           "товар не найден",
			requestBody:    validBody,
			withUser:       true,
			mockErr:        services.ErrNotFound,
			callsService:   true,
			wantStatusCode: http.StatusNotFound,
			wantStatus:     "Error",
			wantError:      "product not found",
		},
		{
			name:           "внутренняя ошибка",
			requestBody:    validBody,
			withUser:       true,
			mockErr:        errors.New("db error"),
			callsService:   true,
			wantStatusCode: http.StatusInternalServerError,
			wantStatus:     "Error",
			wantError:      "could not create order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			if tt.callsService {
				mockService.On("Create", mock.Anything, user.ID, mock.Anything).
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

			req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.withUser {
				ctx = context.WithValue(ctx, middlewarectx.User, user)
			}
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
				assert.Equal(t, models.StatusPending, order["Status"])
				assert.Equal(t, "order-token", order["OrderToken"])
			}

			mockService.AssertExpectations(t)
		})
	}
}
