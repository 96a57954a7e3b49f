// Package services содержит бизнес-логику жизненного цикла заказов.
//
// Заказ создаётся в статусе pending и может перейти только в paid или
// cancelled. Оба статуса терминальные: дальнейшие переходы запрещены,
// в том числе повторное применение уже применённого статуса.
package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/avdeevalex/gameshop/internal/lib/rabbitmq"
	"github.com/avdeevalex/gameshop/internal/lib/sl"
	"github.com/avdeevalex/gameshop/internal/metrics"
	"github.com/avdeevalex/gameshop/internal/models"
	"github.com/avdeevalex/gameshop/internal/services"
)

// PurchaseRepository определяет методы для работы с заказами в хранилище.
type PurchaseRepository interface {
	// CreatePurchase добавляет новый заказ и возвращает его ID.
	CreatePurchase(ctx context.Context, purchase models.Purchase) (int64, error)
	// GetPurchase возвращает заказ по ID.
	GetPurchase(ctx context.Context, id int64) (*models.Purchase, error)
	// GetPurchaseByTokenAndUser возвращает заказ по токену и владельцу.
	GetPurchaseByTokenAndUser(ctx context.Context, orderToken string, userID int64) (*models.Purchase, error)
	// UpdateStatusIfPending переводит pending-заказ в новый статус.
	UpdateStatusIfPending(ctx context.Context, id int64, status, comment string) (int64, error)
	// CancelPurchaseIfPending отменяет pending-заказ по токену и владельцу.
	CancelPurchaseIfPending(ctx context.Context, orderToken string, userID int64) (int64, error)
	// ListPurchasesByUser возвращает заказы пользователя от новых к старым.
	ListPurchasesByUser(ctx context.Context, userID int64) ([]*models.Purchase, error)
	// ListAllPurchases возвращает все заказы от новых к старым.
	ListAllPurchases(ctx context.Context) ([]*models.Purchase, error)
}

// ProductReader возвращает товар по ID для проверки существования при заказе.
type ProductReader interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
}

// EventPublisher публикует события жизненного цикла заказов.
type EventPublisher interface {
	PublishOrderEvent(event rabbitmq.OrderEvent) error
}

// OrderService реализует бизнес-логику заказов.
type OrderService struct {
	repo     PurchaseRepository
	products ProductReader
	events   EventPublisher
	log      *slog.Logger
}

// NewOrderService создает новый экземпляр OrderService.
// events может быть nil, тогда события не публикуются.
func NewOrderService(repo PurchaseRepository, products ProductReader, events EventPublisher, log *slog.Logger) *OrderService {
	return &OrderService{
		repo:     repo,
		products: products,
		events:   events,
		log:      log,
	}
}

// Create создает новый заказ пользователя на товар в статусе pending
// с новым уникальным токеном. Товар обязан существовать; признак активности
// не проверяется: снятый с витрины товар остаётся доступным по прямой ссылке.
func (s *OrderService) Create(ctx context.Context, userID int64, req models.CreateOrderRequest) (*models.Purchase, error) {
	if _, err := s.products.GetProduct(ctx, req.ProductID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}

	purchase := models.Purchase{
		UserID:        userID,
		ProductID:     req.ProductID,
		Status:        models.StatusPending,
		TgUsername:    req.TgUsername,
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		OrderToken:    uuid.NewString(),
	}
	id, err := s.repo.CreatePurchase(ctx, purchase)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.GetPurchase(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Info("created new order", slog.Int64("id", id), slog.Int64("user_id", userID))
	metrics.OrdersCreatedTotal.Inc()
	s.publish(rabbitmq.OrderEvent{
		Event:      rabbitmq.EventOrderCreated,
		OrderID:    created.ID,
		OrderToken: created.OrderToken,
		UserID:     created.UserID,
		ProductID:  created.ProductID,
		Status:     created.Status,
		OccurredAt: time.Now().UTC(),
	})
	return created, nil
}

// UpdateStatus переводит заказ из pending в paid или cancelled и сохраняет
// комментарий администратора. Переход из терминального статуса запрещён:
// такие запросы отклоняются без изменения заказа.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status, comment string) (*models.Purchase, error) {
	if status != models.StatusPaid && status != models.StatusCancelled {
		return nil, services.ErrUnknownStatus
	}

	rows, err := s.repo.UpdateStatusIfPending(ctx, id, status, comment)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		if _, err := s.repo.GetPurchase(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, services.ErrNotFound
			}
			return nil, err
		}
		return nil, services.ErrNotPending
	}

	updated, err := s.repo.GetPurchase(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated order status", slog.Int64("id", id), slog.String("status", status))
	metrics.OrderStatusChangesTotal.WithLabelValues(status).Inc()
	s.publish(rabbitmq.OrderEvent{
		Event:      rabbitmq.EventOrderStatusChanged,
		OrderID:    updated.ID,
		OrderToken: updated.OrderToken,
		UserID:     updated.UserID,
		Status:     updated.Status,
		OccurredAt: time.Now().UTC(),
	})
	return updated, nil
}

// CancelOwn отменяет pending-заказ по токену от имени его владельца.
// Токен ищется только среди заказов запрашивающего пользователя,
// поэтому чужой заказ не отменить даже с угаданным токеном.
// Заказ не в статусе pending отменить нельзя.
func (s *OrderService) CancelOwn(ctx context.Context, userID int64, orderToken string) (*models.Purchase, error) {
	rows, err := s.repo.CancelPurchaseIfPending(ctx, orderToken, userID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		if _, err := s.repo.GetPurchaseByTokenAndUser(ctx, orderToken, userID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, services.ErrNotFound
			}
			return nil, err
		}
		return nil, services.ErrNotPending
	}

	cancelled, err := s.repo.GetPurchaseByTokenAndUser(ctx, orderToken, userID)
	if err != nil {
		return nil, err
	}
	s.log.Info("cancelled order", slog.Int64("id", cancelled.ID), slog.Int64("user_id", userID))
	metrics.OrderStatusChangesTotal.WithLabelValues(models.StatusCancelled).Inc()
	s.publish(rabbitmq.OrderEvent{
		Event:      rabbitmq.EventOrderStatusChanged,
		OrderID:    cancelled.ID,
		OrderToken: cancelled.OrderToken,
		UserID:     cancelled.UserID,
		Status:     cancelled.Status,
		OccurredAt: time.Now().UTC(),
	})
	return cancelled, nil
}

// ListOwn возвращает заказы пользователя от новых к старым.
func (s *OrderService) ListOwn(ctx context.Context, userID int64) ([]*models.Purchase, error) {
	return s.repo.ListPurchasesByUser(ctx, userID)
}

// ListAll возвращает все заказы от новых к старым. Доступ ограничивается
// администратором на уровне маршрутов.
func (s *OrderService) ListAll(ctx context.Context) ([]*models.Purchase, error) {
	return s.repo.ListAllPurchases(ctx)
}

// publish отправляет событие заказа, если публикация настроена.
// Ошибка брокера не влияет на результат операции: запись в базе уже сделана.
func (s *OrderService) publish(event rabbitmq.OrderEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishOrderEvent(event); err != nil {
		s.log.Warn("failed to publish order event", slog.String("event", event.Event), sl.Err(err))
	}
}
