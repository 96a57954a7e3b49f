// Package models содержит доменную модель новости.
package models

import "time"

// News представляет новость магазина. Независимая сущность без связей.
type News struct {
	ID          int64     // Уникальный идентификатор новости
	Title       string    // Заголовок
	Content     string    // Текст новости
	Author      string    // Имя автора (username администратора)
	IsPublished bool      // Признак публикации
	CreatedAt   time.Time // Дата публикации
}

// CreateNewsRequest используется для приёма данных новой новости из JSON-запроса.
type CreateNewsRequest struct {
	Title   string `json:"title" validate:"required,max=200"` // Заголовок
	Content string `json:"content" validate:"required"`       // Текст новости
}
