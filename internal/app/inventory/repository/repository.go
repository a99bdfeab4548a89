package repository

import (
	"context"
	"errors"

	"sweetshop/internal/app/inventory/entity"

	"github.com/google/uuid"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrSweetNotFound     = errors.New("sweet not found")
	ErrDuplicateName     = errors.New("sweet name already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// SweetRepository - хранилище каталога сладостей
// Уникальность имени обеспечивается constraint'ом БД, а не проверкой в коде:
// проверка перед вставкой сама по себе не закрывает гонку create/create
type SweetRepository interface {
	Create(ctx context.Context, sweet *entity.Sweet) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sweet, error)
	GetAll(ctx context.Context) ([]entity.Sweet, error)
	FindByName(ctx context.Context, name string, excludeID uuid.UUID) (*entity.Sweet, error)
	Search(ctx context.Context, filters *entity.SearchFilters) ([]entity.Sweet, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementStock выполняет проверку остатка и списание одним условным UPDATE:
	// stock_quantity = stock_quantity - qty WHERE stock_quantity >= qty.
	// Возвращает ErrInsufficientStock, если остатка не хватает
	DecrementStock(ctx context.Context, id uuid.UUID, quantity float64) error

	// IncrementStock атомарно увеличивает остаток без верхней границы
	IncrementStock(ctx context.Context, id uuid.UUID, quantity float64) error

	FindBelowStock(ctx context.Context, threshold float64) ([]entity.Sweet, error)
}

// PurchaseRepository - append-only журнал покупок
// Методов обновления и удаления нет намеренно
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetAll(ctx context.Context) ([]entity.PurchaseReport, error)
	GetByBuyer(ctx context.Context, buyerID uuid.UUID) ([]entity.PurchaseReport, error)
	GetBySweet(ctx context.Context, sweetID uuid.UUID) ([]entity.PurchaseReport, error)
}
