package domain

import "errors"

// Ошибки доменного уровня. Хранилища и usecase возвращают именно их,
// HTTP-слой маппит их в статус-коды (404 / 409).
var (
	ErrUserNotFound = errors.New("пользователь не найден")
	ErrEmailTaken   = errors.New("email уже используется")
)
