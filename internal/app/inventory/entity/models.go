package entity

import (
	"time"

	"github.com/google/uuid"
)

// Sweet представляет сладость в каталоге
// Имя уникально на уровне БД, остаток не может уходить в минус
type Sweet struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name          string    `json:"name" gorm:"uniqueIndex;not null"`
	Category      string    `json:"category" gorm:"not null"`
	PricePerKilo  float64   `json:"price_per_kilo" gorm:"not null"` // Цена за 1 кг
	StockQuantity float64   `json:"stock_quantity" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Purchase представляет запись журнала покупок (append-only)
// После записи никогда не изменяется и не удаляется сервисом
type Purchase struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	BuyerID      uuid.UUID `json:"buyer_id" gorm:"type:uuid;not null;index"`
	BuyerName    string    `json:"buyer_name"` // Снимок имени покупателя на момент покупки
	SweetID      uuid.UUID `json:"sweet_id" gorm:"type:uuid;not null;index"`
	Quantity     float64   `json:"quantity" gorm:"not null"`
	PricePerKilo float64   `json:"price_per_kilo" gorm:"not null"` // Цена на момент покупки, не пересчитывается
	TotalPrice   float64   `json:"total_price" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// PurchaseReport содержит запись журнала с присоединёнными данными о сладости
// Для удалённых сладостей имя и категория остаются пустыми - запись остаётся валидной историей
type PurchaseReport struct {
	ID            uuid.UUID `json:"id"`
	BuyerID       uuid.UUID `json:"buyer_id"`
	BuyerName     string    `json:"buyer_name"`
	SweetID       uuid.UUID `json:"sweet_id"`
	SweetName     string    `json:"sweet_name"`
	SweetCategory string    `json:"sweet_category"`
	Quantity      float64   `json:"quantity"`
	PricePerKilo  float64   `json:"price_per_kilo"`
	TotalPrice    float64   `json:"total_price"`
	CreatedAt     time.Time `json:"created_at"`
}

// CallerContext - идентичность вызывающего, извлечённая из JWT на границе
// Сервис доверяет переданной роли и сам аутентификацию не выполняет
type CallerContext struct {
	ID   uuid.UUID
	Name string
	Role string
}

// Типы событий инвентаря для Kafka
const (
	EventSweetCreated   = "SWEET_CREATED"
	EventSweetUpdated   = "SWEET_UPDATED"
	EventSweetDeleted   = "SWEET_DELETED"
	EventSweetPurchased = "SWEET_PURCHASED"
	EventSweetRestocked = "SWEET_RESTOCKED"
	EventSweetLowStock  = "SWEET_LOW_STOCK"
)

// SweetEvent представляет событие изменения инвентаря для Kafka
type SweetEvent struct {
	EventType     string    `json:"event_type"`
	SweetID       uuid.UUID `json:"sweet_id"`
	Name          string    `json:"name"`
	PricePerKilo  float64   `json:"price_per_kilo"`
	StockQuantity float64   `json:"stock_quantity"`
	Quantity      float64   `json:"quantity,omitempty"` // Количество в операции purchase/restock
	Timestamp     time.Time `json:"timestamp"`
}
