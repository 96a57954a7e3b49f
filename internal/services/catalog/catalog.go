// Package services содержит бизнес-логику каталога товаров с кешированием витрины.
package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/avdeevalex/gameshop/internal/models"
	"github.com/avdeevalex/gameshop/internal/services"
)

// activeProductsKey ключ кеша для списка активных товаров витрины.
const activeProductsKey = "products:active"

// ProductRepository определяет методы для работы с товарами в хранилище.
type ProductRepository interface {
	// CreateProduct добавляет новый товар и возвращает его ID.
	CreateProduct(ctx context.Context, product models.Product) (int64, error)
	// GetProduct возвращает товар по ID независимо от активности.
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	// ListActiveProducts возвращает активные товары витрины.
	ListActiveProducts(ctx context.Context) ([]*models.Product, error)
	// DeactivateProduct снимает товар с витрины.
	DeactivateProduct(ctx context.Context, id int64) (int64, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// CatalogService реализует бизнес-логику каталога, включая кеширование витрины.
type CatalogService struct {
	repo  ProductRepository
	cache Cache
	log   *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo ProductRepository, cache Cache, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// ListActive возвращает активные товары витрины, используя кеш или репозиторий.
func (s *CatalogService) ListActive(ctx context.Context) ([]*models.Product, error) {
	var result []*models.Product
	found, err := s.cache.Get(activeProductsKey, &result)
	if err != nil {
		s.log.Warn("failed to read products cache", slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListActiveProducts(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(activeProductsKey, result, 5*time.Minute); err != nil {
		s.log.Warn("failed to cache products", slog.String("key", activeProductsKey), slog.Any("err", err))
	}
	return result, nil
}

// Read возвращает товар по ID. Деактивированный товар остаётся доступным
// по прямому идентификатору, хотя и не попадает в витрину.
func (s *CatalogService) Read(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

// Add добавляет новый активный товар и инвалидирует кеш витрины.
func (s *CatalogService) Add(ctx context.Context, req models.CreateProductRequest) (int64, error) {
	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	id, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new product", slog.Int64("id", id))

	if err := s.cache.Invalidate(activeProductsKey); err != nil {
		s.log.Warn("failed to invalidate products cache", slog.Any("err", err))
	}
	return id, nil
}

// Deactivate снимает товар с витрины и инвалидирует кеш. Сам товар остаётся
// в базе и доступен по прямому идентификатору.
func (s *CatalogService) Deactivate(ctx context.Context, id int64) error {
	rows, err := s.repo.DeactivateProduct(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return services.ErrNotFound
	}
	s.log.Info("deactivated product", slog.Int64("id", id))

	if err := s.cache.Invalidate(activeProductsKey); err != nil {
		s.log.Warn("failed to invalidate products cache", slog.Any("err", err))
	}
	return nil
}
