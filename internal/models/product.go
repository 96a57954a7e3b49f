// Package models содержит доменную модель товара каталога
// и вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Категории товаров каталога.
const (
	CategoryGame         = "game"
	CategorySubscription = "subscription"
	CategoryService      = "service"
)

// Product представляет товар каталога.
// Деактивированный товар (IsActive == false) не попадает в витрину,
// но остаётся доступным по прямому идентификатору.
type Product struct {
	ID          int64     // Уникальный идентификатор товара
	Name        string    // Название товара
	Description string    // Описание товара
	Price       float64   // Цена, неотрицательная
	Category    string    // Категория: game, subscription или service
	ImageURL    string    // Ссылка на изображение (опционально)
	IsActive    bool      // Признак активности товара
	CreatedAt   time.Time // Дата добавления
}

// CreateProductRequest используется для приёма данных нового товара из JSON-запроса.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`                              // Название
	Description string   `json:"description" validate:"required"`                               // Описание
	Price       *float64 `json:"price" validate:"required,gte=0"`                               // Цена (>= 0)
	Category    string   `json:"category" validate:"required,oneof=game subscription service"` // Категория
	ImageURL    string   `json:"image_url" validate:"omitempty,max=200"`                        // Ссылка на изображение
}
