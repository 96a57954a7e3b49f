// Package profile реализует HTTP-обработчик личного кабинета.
//
// Handler возвращает данные текущего пользователя и его заказы.
// Хэш пароля в ответ не попадает.
package profile

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/avdeevalex/gameshop/internal/http/middlewarectx"
	"github.com/avdeevalex/gameshop/internal/http/response"
	"github.com/avdeevalex/gameshop/internal/lib/sl"
	"github.com/avdeevalex/gameshop/internal/models"
)

// Handler управляет HTTP-запросами на просмотр личного кабинета.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики заказов
}

// Service описывает интерфейс бизнес-логики заказов пользователя.
type Service interface {
	ListOwn(ctx context.Context, userID int64) ([]*models.Purchase, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Личный кабинет
// @Description Возвращает учётные данные текущего пользователя и его заказы.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Пользователь и его заказы"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.profile"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	purchases, err := h.service.ListOwn(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to list orders", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load profile"))
		return
	}

	log.Info("loaded profile", slog.String("username", user.Username))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"user": map[string]any{
			"id":         user.ID,
			"username":   user.Username,
			"email":      user.Email,
			"role":       user.Role,
			"created_at": user.CreatedAt,
		},
		"orders": purchases,
		"count":  len(purchases),
	}))
}
