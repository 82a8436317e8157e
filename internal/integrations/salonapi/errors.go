package salonapi

import "errors"

var (
	// ErrNotFound возвращается, когда salon API ответил 404
	ErrNotFound = errors.New("salonapi client: entity not found")

	// ErrInternal возвращается при внутренних ошибках клиента (сборка запроса, сериализация)
	ErrInternal = errors.New("salonapi client: internal error")

	// ErrInvalidResponse возвращается, когда тело успешного ответа не удалось разобрать
	ErrInvalidResponse = errors.New("salonapi client: invalid response")
)
