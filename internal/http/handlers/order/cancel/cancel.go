// Package cancel реализует HTTP-обработчик отмены заказа его владельцем.
//
// Заказ ищется по токену только среди заказов текущего пользователя;
// отменить можно только заказ в статусе pending.
package cancel

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/avdeevalex/gameshop/internal/http/middlewarectx"
	"github.com/avdeevalex/gameshop/internal/http/response"
	"github.com/avdeevalex/gameshop/internal/lib/sl"
	"github.com/avdeevalex/gameshop/internal/models"
	"github.com/avdeevalex/gameshop/internal/services"
)

// Handler управляет HTTP-запросами на отмену заказа.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики заказов
}

// Service описывает интерфейс бизнес-логики отмены заказа.
type Service interface {
	CancelOwn(ctx context.Context, userID int64, orderToken string) (*models.Purchase, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отменить свой заказ
// @Description Отменяет pending-заказ текущего пользователя по токену заказа.
// @Tags Orders
// @Produce  json
// @Security BearerAuth
// @Param token path string true "Токен заказа"
// @Success 200 {object} map[string]any "Отменённый заказ"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Заказ не найден"
// @Failure 422 {object} response.ErrorResponse "Заказ нельзя отменить"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /orders/{token}/cancel [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.cancel"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	orderToken := chi.URLParam(r, "token")
	if orderToken == "" {
		log.Error("empty order token")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid order token"))
		return
	}

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	purchase, err := h.service.CancelOwn(r.Context(), user.ID, orderToken)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			log.Error("order not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("order not found"))
		case errors.Is(err, services.ErrNotPending):
			log.Error("order cannot be cancelled")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("cannot cancel this order"))
		default:
			log.Error("failed to cancel order", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not cancel order"))
		}
		return
	}

	log.Info("cancelled order", slog.Int64("id", purchase.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"order": purchase,
	}))
}
