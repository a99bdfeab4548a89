package service

import "errors"

// Ошибки бизнес-логики для обработки в handlers
// Все ошибки типизированы: операция либо успешна, либо
// завершается одной из них, частичных результатов нет
var (
	ErrInvalidInput       = errors.New("invalid sweet data")
	ErrDuplicateName      = errors.New("sweet name already exists")
	ErrSweetNotFound      = errors.New("sweet not found")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
