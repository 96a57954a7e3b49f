// Package models содержит доменную модель пользователя магазина,
// включающую данные учётной записи, хэш пароля и дату создания.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Роли пользователей системы.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя магазина.
type User struct {
	ID           int64     // Уникальный идентификатор пользователя
	Username     string    // Имя пользователя (уникальное)
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // Хэш пароля пользователя
	Role         string    // Роль пользователя, admin или user
	CreatedAt    time.Time // Дата регистрации
}

// IsAdmin сообщает, обладает ли пользователь правами администратора.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RegisterRequest используется для приёма данных регистрации из JSON-запроса.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,max=50"`     // Имя пользователя
	Email           string `json:"email" validate:"required,email,max=120"` // Электронная почта
	Password        string `json:"password" validate:"required"`            // Пароль
	ConfirmPassword string `json:"confirm_password" validate:"required"`    // Подтверждение пароля
}

// LoginRequest используется для приёма данных входа из JSON-запроса.
// Remember продлевает время жизни сессии.
type LoginRequest struct {
	Username string `json:"username" validate:"required"` // Имя пользователя
	Password string `json:"password" validate:"required"` // Пароль
	Remember bool   `json:"remember"`                     // Запомнить меня
}
