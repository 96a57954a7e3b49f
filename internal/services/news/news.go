// Package services содержит бизнес-логику новостей магазина.
package services

import (
	"context"
	"log/slog"

	"github.com/avdeevalex/gameshop/internal/models"
	"github.com/avdeevalex/gameshop/internal/services"
)

// NewsRepository определяет методы для работы с новостями в хранилище.
type NewsRepository interface {
	// CreateNews добавляет новую новость и возвращает её ID.
	CreateNews(ctx context.Context, news models.News) (int64, error)
	// ListPublishedNews возвращает опубликованные новости от новых к старым.
	ListPublishedNews(ctx context.Context) ([]*models.News, error)
	// RemoveNews удаляет новость по ID и возвращает количество удалённых строк.
	RemoveNews(ctx context.Context, id int64) (int64, error)
}

// NewsService реализует бизнес-логику новостей.
type NewsService struct {
	repo NewsRepository
	log  *slog.Logger
}

// NewNewsService создает новый экземпляр NewsService.
func NewNewsService(repo NewsRepository, log *slog.Logger) *NewsService {
	return &NewsService{
		repo: repo,
		log:  log,
	}
}

// Publish создаёт опубликованную новость от имени автора и возвращает её ID.
func (s *NewsService) Publish(ctx context.Context, author string, req models.CreateNewsRequest) (int64, error) {
	news := models.News{
		Title:       req.Title,
		Content:     req.Content,
		Author:      author,
		IsPublished: true,
	}
	id, err := s.repo.CreateNews(ctx, news)
	if err != nil {
		return 0, err
	}
	s.log.Info("published news", slog.Int64("id", id), slog.String("author", author))
	return id, nil
}

// ListPublished возвращает опубликованные новости от новых к старым.
func (s *NewsService) ListPublished(ctx context.Context) ([]*models.News, error) {
	return s.repo.ListPublishedNews(ctx)
}

// Remove удаляет новость по ID. Отсутствующая новость даёт ErrNotFound.
func (s *NewsService) Remove(ctx context.Context, id int64) error {
	rows, err := s.repo.RemoveNews(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return services.ErrNotFound
	}
	s.log.Info("removed news", slog.Int64("id", id))
	return nil
}
