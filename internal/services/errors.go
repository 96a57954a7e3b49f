// Package services содержит общие ошибки бизнес-уровня.
// Обработчики сопоставляют их с HTTP-статусами через errors.Is.
package services

import "errors"

var (
	// ErrUsernameTaken имя пользователя уже занято.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken электронная почта уже занята.
	ErrEmailTaken = errors.New("email already taken")
	// ErrPasswordMismatch пароль и подтверждение не совпадают.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrWeakPassword пароль не удовлетворяет политике сложности.
	ErrWeakPassword = errors.New("password does not meet strength policy")
	// ErrInvalidCredentials неверное имя пользователя или пароль.
	// Единая ошибка для обоих случаев, чтобы не раскрывать существование пользователя.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrNotFound запрошенная сущность не найдена.
	ErrNotFound = errors.New("not found")
	// ErrUnknownStatus недопустимый целевой статус заказа.
	ErrUnknownStatus = errors.New("unknown order status")
	// ErrNotPending заказ не в статусе pending, переход запрещён.
	ErrNotPending = errors.New("order is not pending")
)
