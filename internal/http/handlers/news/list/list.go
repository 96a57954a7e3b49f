// Package list реализует HTTP-обработчик публичной ленты новостей.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/avdeevalex/gameshop/internal/http/response"
	"github.com/avdeevalex/gameshop/internal/lib/sl"
	"github.com/avdeevalex/gameshop/internal/models"
)

// Handler управляет HTTP-запросами на просмотр ленты новостей.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики новостей
}

// Service описывает интерфейс бизнес-логики ленты новостей.
type Service interface {
	ListPublished(ctx context.Context) ([]*models.News, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Лента новостей
// @Description Возвращает опубликованные новости от новых к старым.
// @Tags News
// @Produce  json
// @Success 200 {object} map[string]any "Список новостей"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /news [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.news.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	items, err := h.service.ListPublished(r.Context())
	if err != nil {
		log.Error("failed to list news", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list news"))
		return
	}

	log.Info("listed news", slog.Int("count", len(items)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"news":  items,
		"count": len(items),
	}))
}
