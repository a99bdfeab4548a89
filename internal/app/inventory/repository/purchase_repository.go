package repository

import (
	"context"

	"sweetshop/internal/app/inventory/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository создает новый репозиторий журнала покупок
func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

// Create добавляет запись в журнал покупок
// Журнал append-only: записи никогда не обновляются и не удаляются
func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	result := r.db.WithContext(ctx).Create(purchase)
	return result.Error
}

// Выборка журнала с присоединёнными данными о сладости
// LEFT JOIN: записи для удалённых сладостей остаются в отчёте
// с пустыми name/category
const reportSelect = `purchases.id, purchases.buyer_id, purchases.buyer_name,
purchases.sweet_id, COALESCE(sweets.name, '') AS sweet_name,
COALESCE(sweets.category, '') AS sweet_category, purchases.quantity,
purchases.price_per_kilo, purchases.total_price, purchases.created_at`

// GetAll возвращает весь журнал покупок, новые первыми
func (r *purchaseRepository) GetAll(ctx context.Context) ([]entity.PurchaseReport, error) {
	var reports []entity.PurchaseReport
	result := r.db.WithContext(ctx).Model(&entity.Purchase{}).
		Select(reportSelect).
		Joins("LEFT JOIN sweets ON sweets.id = purchases.sweet_id").
		Order("purchases.created_at DESC").
		Scan(&reports)

	if result.Error != nil {
		return nil, result.Error
	}

	return reports, nil
}

// GetByBuyer возвращает покупки одного покупателя
func (r *purchaseRepository) GetByBuyer(ctx context.Context, buyerID uuid.UUID) ([]entity.PurchaseReport, error) {
	var reports []entity.PurchaseReport
	result := r.db.WithContext(ctx).Model(&entity.Purchase{}).
		Select(reportSelect).
		Joins("LEFT JOIN sweets ON sweets.id = purchases.sweet_id").
		Where("purchases.buyer_id = ?", buyerID).
		Order("purchases.created_at DESC").
		Scan(&reports)

	if result.Error != nil {
		return nil, result.Error
	}

	return reports, nil
}

// GetBySweet возвращает покупки одной сладости
func (r *purchaseRepository) GetBySweet(ctx context.Context, sweetID uuid.UUID) ([]entity.PurchaseReport, error) {
	var reports []entity.PurchaseReport
	result := r.db.WithContext(ctx).Model(&entity.Purchase{}).
		Select(reportSelect).
		Joins("LEFT JOIN sweets ON sweets.id = purchases.sweet_id").
		Where("purchases.sweet_id = ?", sweetID).
		Order("purchases.created_at DESC").
		Scan(&reports)

	if result.Error != nil {
		return nil, result.Error
	}

	return reports, nil
}
