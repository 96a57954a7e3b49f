package repository

import (
	"context"
	"fmt"

	"github.com/avdeevalex/gameshop/internal/models"
)

// CreatePurchase вставляет новый заказ и возвращает его ID.
// При коллизии order_token возвращает ErrOrderTokenExists.
func (s *Storage) CreatePurchase(ctx context.Context, purchase models.Purchase) (int64, error) {
	const op = "storage.CreatePurchase"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO purchases (user_id, product_id, status, tg_username,
			      customer_email, customer_name, admin_comment, order_token)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		purchase.UserID, purchase.ProductID, purchase.Status, purchase.TgUsername,
		purchase.CustomerEmail, purchase.CustomerName, purchase.AdminComment,
		purchase.OrderToken).Scan(&newID)
	if err != nil {
		if uerr := uniqueViolation(err); uerr != nil {
			return 0, fmt.Errorf("%s: %w", op, uerr)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetPurchase возвращает заказ по его ID.
func (s *Storage) GetPurchase(ctx context.Context, id int64) (*models.Purchase, error) {
	const op = "storage.GetPurchase"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, product_id, status, tg_username, customer_email,
			      customer_name, admin_comment, order_token, created_at
			  FROM purchases
			  WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Purchase
	if err := row.Scan(&result.ID, &result.UserID, &result.ProductID, &result.Status,
		&result.TgUsername, &result.CustomerEmail, &result.CustomerName,
		&result.AdminComment, &result.OrderToken, &result.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// GetPurchaseByTokenAndUser возвращает заказ по токену, принадлежащий данному
// пользователю. Чужой или несуществующий токен ведёт к sql.ErrNoRows,
// так что токены не раскрывают чужие заказы.
func (s *Storage) GetPurchaseByTokenAndUser(ctx context.Context, orderToken string, userID int64) (*models.Purchase, error) {
	const op = "storage.GetPurchaseByTokenAndUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, product_id, status, tg_username, customer_email,
			      customer_name, admin_comment, order_token, created_at
			  FROM purchases
			  WHERE order_token = $1 AND user_id = $2`
	row := s.DB.QueryRowContext(ctx, query, orderToken, userID)

	var result models.Purchase
	if err := row.Scan(&result.ID, &result.UserID, &result.ProductID, &result.Status,
		&result.TgUsername, &result.CustomerEmail, &result.CustomerName,
		&result.AdminComment, &result.OrderToken, &result.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateStatusIfPending переводит заказ из pending в новый статус и сохраняет
// комментарий администратора. Условие по статусу входит в сам UPDATE,
// поэтому гонка двух обновлений не выведет заказ из терминального статуса.
// Возвращает количество изменённых строк.
func (s *Storage) UpdateStatusIfPending(ctx context.Context, id int64, status, comment string) (int64, error) {
	const op = "storage.UpdateStatusIfPending"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE purchases
			  SET status = $1, admin_comment = $2
			  WHERE id = $3 AND status = $4`
	result, err := s.DB.ExecContext(ctx, query, status, comment, id, models.StatusPending)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// CancelPurchaseIfPending отменяет pending-заказ по токену и владельцу.
// Возвращает количество изменённых строк.
func (s *Storage) CancelPurchaseIfPending(ctx context.Context, orderToken string, userID int64) (int64, error) {
	const op = "storage.CancelPurchaseIfPending"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE purchases
			  SET status = $1
			  WHERE order_token = $2 AND user_id = $3 AND status = $4`
	result, err := s.DB.ExecContext(ctx, query,
		models.StatusCancelled, orderToken, userID, models.StatusPending)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// ListPurchasesByUser возвращает заказы пользователя от новых к старым.
func (s *Storage) ListPurchasesByUser(ctx context.Context, userID int64) ([]*models.Purchase, error) {
	const op = "storage.ListPurchasesByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, product_id, status, tg_username, customer_email,
			      customer_name, admin_comment, order_token, created_at
			  FROM purchases
			  WHERE user_id = $1
			  ORDER BY created_at DESC, id DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Purchase
	for rows.Next() {
		var item models.Purchase
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Status,
			&item.TgUsername, &item.CustomerEmail, &item.CustomerName,
			&item.AdminComment, &item.OrderToken, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllPurchases возвращает все заказы от новых к старым.
func (s *Storage) ListAllPurchases(ctx context.Context) ([]*models.Purchase, error) {
	const op = "storage.ListAllPurchases"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, product_id, status, tg_username, customer_email,
			      customer_name, admin_comment, order_token, created_at
			  FROM purchases
			  ORDER BY created_at DESC, id DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Purchase
	for rows.Next() {
		var item models.Purchase
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Status,
			&item.TgUsername, &item.CustomerEmail, &item.CustomerName,
			&item.AdminComment, &item.OrderToken, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountPurchases возвращает общее число заказов.
func (s *Storage) CountPurchases(ctx context.Context) (int64, error) {
	const op = "storage.CountPurchases"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total int64
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM purchases`).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// CountPendingPurchases возвращает число заказов в статусе pending.
func (s *Storage) CountPendingPurchases(ctx context.Context) (int64, error) {
	const op = "storage.CountPendingPurchases"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total int64
	query := `SELECT COUNT(*) FROM purchases WHERE status = $1`
	if err := s.DB.QueryRowContext(ctx, query, models.StatusPending).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
