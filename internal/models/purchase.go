// Package models содержит доменную модель заказа (покупки)
// и вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Статусы заказа. Заказ создаётся в статусе pending,
// paid и cancelled — терминальные статусы.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

// Purchase представляет заказ пользователя на товар.
// OrderToken — уникальный непрозрачный токен заказа, по нему владелец
// отменяет заказ без раскрытия последовательных идентификаторов.
type Purchase struct {
	ID            int64     // Уникальный идентификатор заказа
	UserID        int64     // Идентификатор пользователя-владельца
	ProductID     int64     // Идентификатор товара
	Status        string    // Статус: pending, paid или cancelled
	TgUsername    string    // Телеграм для связи
	CustomerEmail string    // Почта покупателя
	CustomerName  string    // Имя покупателя
	AdminComment  string    // Комментарий администратора
	OrderToken    string    // Уникальный токен заказа
	CreatedAt     time.Time // Дата создания заказа
}

// IsTerminal сообщает, находится ли заказ в терминальном статусе,
// из которого переходы запрещены.
func (p *Purchase) IsTerminal() bool {
	return p.Status == StatusPaid || p.Status == StatusCancelled
}

// CreateOrderRequest используется для приёма данных нового заказа из JSON-запроса.
type CreateOrderRequest struct {
	ProductID     int64  `json:"product_id" validate:"required,gt=0"`             // Идентификатор товара
	TgUsername    string `json:"tg_username" validate:"required,max=100"`         // Телеграм для связи
	CustomerEmail string `json:"customer_email" validate:"required,email,max=120"` // Почта покупателя
	CustomerName  string `json:"customer_name" validate:"required,max=100"`       // Имя покупателя
}

// UpdateOrderStatusRequest используется для приёма нового статуса заказа
// из JSON-запроса администратора.
type UpdateOrderStatusRequest struct {
	Status  string `json:"status" validate:"required,oneof=paid cancelled"` // Новый статус
	Comment string `json:"comment" validate:"omitempty"`                    // Комментарий администратора
}

// DashboardStats агрегированные показатели для панели администратора.
type DashboardStats struct {
	TotalUsers    int64 `json:"total_users"`    // Всего пользователей
	TotalProducts int64 `json:"total_products"` // Всего товаров
	TotalOrders   int64 `json:"total_orders"`   // Всего заказов
	PendingOrders int64 `json:"pending_orders"` // Заказов в ожидании
}
