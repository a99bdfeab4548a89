package util

import (
	"context"
	"time"

	"sweetshop/internal/app/inventory/entity"
)

// SweetCache интерфейс для работы с Redis кешем списка сладостей
// Используется для dependency injection и упрощения тестирования
type SweetCache interface {
	SetSweets(ctx context.Context, sweets []entity.Sweet, ttl time.Duration) error
	GetSweets(ctx context.Context) ([]entity.Sweet, error)
	DeleteSweets(ctx context.Context) error
	Close() error
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
