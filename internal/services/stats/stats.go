// Package services содержит агрегацию показателей для панели администратора.
package services

import (
	"context"

	"github.com/avdeevalex/gameshop/internal/models"
)

// StatsRepository определяет счётные методы хранилища для панели администратора.
type StatsRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	CountPurchases(ctx context.Context) (int64, error)
	CountPendingPurchases(ctx context.Context) (int64, error)
}

// StatsService собирает агрегированные показатели магазина.
type StatsService struct {
	repo StatsRepository
}

// NewStatsService создает новый экземпляр StatsService.
func NewStatsService(repo StatsRepository) *StatsService {
	return &StatsService{repo: repo}
}

// Collect возвращает показатели для панели администратора.
func (s *StatsService) Collect(ctx context.Context) (*models.DashboardStats, error) {
	users, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.CountPurchases(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.repo.CountPendingPurchases(ctx)
	if err != nil {
		return nil, err
	}
	return &models.DashboardStats{
		TotalUsers:    users,
		TotalProducts: products,
		TotalOrders:   orders,
		PendingOrders: pending,
	}, nil
}
