package repository

import (
	"context"
	"fmt"

	"github.com/avdeevalex/gameshop/internal/models"
)

// CreateNews вставляет новую новость и возвращает её ID.
func (s *Storage) CreateNews(ctx context.Context, news models.News) (int64, error) {
	const op = "storage.CreateNews"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO news (title, content, author, is_published)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		news.Title, news.Content, news.Author, news.IsPublished).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListPublishedNews возвращает опубликованные новости от новых к старым.
func (s *Storage) ListPublishedNews(ctx context.Context) ([]*models.News, error) {
	const op = "storage.ListPublishedNews"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, content, author, is_published, created_at
			  FROM news
			  WHERE is_published = true
			  ORDER BY created_at DESC, id DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.News
	for rows.Next() {
		var item models.News
		if err := rows.Scan(&item.ID, &item.Title, &item.Content, &item.Author,
			&item.IsPublished, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveNews удаляет новость по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveNews(ctx context.Context, id int64) (int64, error) {
	const op = "storage.RemoveNews"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM news WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}
