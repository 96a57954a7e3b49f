package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/avdeevalex/gameshop/internal/models"
	"github.com/avdeevalex/gameshop/internal/services"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateProduct(ctx context.Context, product models.Product) (int64, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}
func (m *RepoMock) ListActiveProducts(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}
func (m *RepoMock) DeactivateProduct(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCatalogService_ListActive(t *testing.T) {
	products := []*models.Product{
		{ID: 1, Name: "Cyber Quest", Price: 1999, Category: models.CategoryGame, IsActive: true},
		{ID: 2, Name: "Cloud Plus", Price: 299, Category: models.CategorySubscription, IsActive: true},
	}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		wantCount  int
		wantErr    bool
	}{
		{
			name: "витрина из кеша",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "products:active", mock.Anything).
					Run(func(args mock.Arguments) {
						out := args.Get(1).(*[]*models.Product)
						*out = products
					}).Return(true, nil).Once()
			},
			wantCount: 2,
		},
		{
			name: "промах кеша, чтение из базы",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "products:active", mock.Anything).Return(false, nil).Once()
				r.On("ListActiveProducts", mock.Anything).Return(products, nil).Once()
				c.On("Set", "products:active", mock.Anything, 5*time.Minute).Return(nil).Once()
			},
			wantCount: 2,
		},
		{
			name: "ошибка базы",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "products:active", mock.Anything).Return(false, nil).Once()
				r.On("ListActiveProducts", mock.Anything).Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			tt.setupMocks(repo, cache)

			svc := NewCatalogService(repo, cache, newNoopLogger())

			got, err := svc.ListActive(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, got, tt.wantCount)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestCatalogService_Read(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name: "товар найден",
			setupMocks: func(r *RepoMock) {
				r.On("GetProduct", mock.Anything, int64(5)).
					Return(&models.Product{ID: 5, Name: "Cyber Quest"}, nil).Once()
			},
		},
		{
			name: "товар не найден",
			setupMocks: func(r *RepoMock) {
				r.On("GetProduct", mock.Anything, int64(5)).Return(nil, sql.ErrNoRows).Once()
			},
			wantErr: services.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)

			svc := NewCatalogService(repo, new(CacheMock), newNoopLogger())

			got, err := svc.Read(context.Background(), 5)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(5), got.ID)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestCatalogService_Add(t *testing.T) {
	price := 1999.0
	req := models.CreateProductRequest{
		Name:        "Cyber Quest",
		Description: "Приключенческая игра",
		Price:       &price,
		Category:    models.CategoryGame,
	}

	repo := new(RepoMock)
	cache := new(CacheMock)

	repo.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p models.Product) bool {
		return p.Name == req.Name && p.Price == price && p.IsActive
	})).Return(int64(42), nil).Once()
	cache.On("Invalidate", "products:active").Return(nil).Once()

	svc := NewCatalogService(repo, cache, newNoopLogger())

	id, err := svc.Add(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCatalogService_Deactivate(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		wantErr    error
	}{
		{
			name: "успешное снятие с витрины",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("DeactivateProduct", mock.Anything, int64(5)).Return(int64(1), nil).Once()
				c.On("Invalidate", "products:active").Return(nil).Once()
			},
		},
		{
			name: "товар не найден",
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("DeactivateProduct", mock.Anything, int64(5)).Return(int64(0), nil).Once()
			},
			wantErr: services.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			tt.setupMocks(repo, cache)

			svc := NewCatalogService(repo, cache, newNoopLogger())

			err := svc.Deactivate(context.Background(), 5)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}
