package repository

import (
	"context"
	"errors"
	"time"

	"sweetshop/internal/app/inventory/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Код ошибки PostgreSQL для нарушения unique constraint
const pgUniqueViolation = "23505"

type sweetRepository struct {
	db *gorm.DB
}

// NewSweetRepository создает новый репозиторий сладостей
func NewSweetRepository(db *gorm.DB) SweetRepository {
	return &sweetRepository{db: db}
}

// Create создает новую сладость
// Конфликт по имени ловится через unique constraint БД
func (r *sweetRepository) Create(ctx context.Context, sweet *entity.Sweet) error {
	result := r.db.WithContext(ctx).Create(sweet)
	if isUniqueViolation(result.Error) {
		return ErrDuplicateName
	}
	return result.Error
}

// GetByID получает сладость по ID
func (r *sweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sweet, error) {
	var sweet entity.Sweet
	result := r.db.WithContext(ctx).First(&sweet, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSweetNotFound
		}
		return nil, result.Error
	}

	return &sweet, nil
}

// GetAll получает все сладости, новые первыми
func (r *sweetRepository) GetAll(ctx context.Context) ([]entity.Sweet, error) {
	var sweets []entity.Sweet
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&sweets)

	if result.Error != nil {
		return nil, result.Error
	}

	return sweets, nil
}

// FindByName ищет сладость по точному имени, исключая указанный ID
// Используется для проверки уникальности при смене имени
func (r *sweetRepository) FindByName(ctx context.Context, name string, excludeID uuid.UUID) (*entity.Sweet, error) {
	var sweet entity.Sweet
	query := r.db.WithContext(ctx).Where("name = ?", name)
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}

	result := query.First(&sweet)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSweetNotFound
		}
		return nil, result.Error
	}

	return &sweet, nil
}

// Search ищет сладости по фильтрам, объединённым по AND
// Имя - подстрока с учётом регистра, категория - точное совпадение,
// границы цены включительные
func (r *sweetRepository) Search(ctx context.Context, filters *entity.SearchFilters) ([]entity.Sweet, error) {
	query := r.db.WithContext(ctx).Model(&entity.Sweet{})

	if filters.Name != "" {
		query = query.Where("name LIKE ?", "%"+filters.Name+"%")
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.MinPrice != nil {
		query = query.Where("price_per_kilo >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("price_per_kilo <= ?", *filters.MaxPrice)
	}

	var sweets []entity.Sweet
	result := query.Order("created_at DESC").Find(&sweets)
	if result.Error != nil {
		return nil, result.Error
	}

	return sweets, nil
}

// Update обновляет переданные поля сладости
// updated_at обновляется при каждой мутации
func (r *sweetRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).Model(&entity.Sweet{}).
		Where("id = ?", id).
		Updates(fields)

	if isUniqueViolation(result.Error) {
		return ErrDuplicateName
	}
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrSweetNotFound
	}

	return nil
}

// Delete удаляет сладость
// Записи журнала покупок не трогаются - остаются валидной историей
func (r *sweetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Sweet{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrSweetNotFound
	}

	return nil
}

// DecrementStock списывает остаток одним условным UPDATE
// Проверка и списание неразделимы: конкурентные покупки не могут
// увести остаток в минус. При нулевом RowsAffected перечитываем запись,
// чтобы отличить отсутствие сладости от нехватки остатка
func (r *sweetRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity float64) error {
	result := r.db.WithContext(ctx).Model(&entity.Sweet{}).
		Where("id = ? AND stock_quantity >= ?", id, quantity).
		Updates(map[string]interface{}{
			"stock_quantity": gorm.Expr("stock_quantity - ?", quantity),
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrInsufficientStock
	}

	return nil
}

// IncrementStock атомарно увеличивает остаток
func (r *sweetRepository) IncrementStock(ctx context.Context, id uuid.UUID, quantity float64) error {
	result := r.db.WithContext(ctx).Model(&entity.Sweet{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock_quantity": gorm.Expr("stock_quantity + ?", quantity),
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrSweetNotFound
	}

	return nil
}

// FindBelowStock возвращает сладости с остатком ниже порога
// Используется фоновым обходом остатков
func (r *sweetRepository) FindBelowStock(ctx context.Context, threshold float64) ([]entity.Sweet, error) {
	var sweets []entity.Sweet
	result := r.db.WithContext(ctx).
		Where("stock_quantity < ?", threshold).
		Order("stock_quantity ASC").
		Find(&sweets)

	if result.Error != nil {
		return nil, result.Error
	}

	return sweets, nil
}

// isUniqueViolation проверяет, является ли ошибка нарушением
// unique constraint PostgreSQL (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
