package remove

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/avdeevalex/gameshop/internal/services"
)

// MockService реализует интерфейс remove.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Remove(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		urlID          string
		setupMock      func(*MockService)
		wantStatusCode int
		wantBody       string
	}{
		{
			name:  "успешное удаление новости",
			urlID: "9",
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, int64(9)).Return(nil)
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"status":"OK"}`,
		},
		{
			name:           "некорректный id в URL",
			urlID:          "abc",
			setupMock:      func(_ *MockService) {},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `{"status":"Error","error":"invalid id"}`,
		},
		{
			name:  "новость не найдена",
			urlID: "777",
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, int64(777)).Return(services.ErrNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantBody:       `{"status":"Error","error":"news not found"}`,
		},
		{
			name:  "ошибка сервиса удаления",
			urlID: "9",
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, int64(9)).Return(errors.New("db error"))
			},
			wantStatusCode: http.StatusInternalServerError,
			wantBody:       `{"status":"Error","error":"could not remove news"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodDelete, "/admin/news/"+tt.urlID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.urlID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatusCode, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.wantBody),
				"response body should contain %s, got %s", tt.wantBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
