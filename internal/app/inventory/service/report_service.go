package service

import (
	"context"
	"fmt"

	"sweetshop/internal/app/inventory/entity"
	"sweetshop/internal/app/inventory/repository"

	"github.com/google/uuid"
)

// ReportService - read-only проекции журнала покупок для отчётности
// Суммы округляются до валютной точности здесь, на границе представления
type ReportService struct {
	purchaseRepo repository.PurchaseRepository
}

// NewReportService создает новый сервис отчётов
func NewReportService(purchaseRepo repository.PurchaseRepository) *ReportService {
	return &ReportService{purchaseRepo: purchaseRepo}
}

// AllPurchases возвращает весь журнал покупок, новые первыми
// Доступ ограничен ролью admin на уровне маршрутов
func (s *ReportService) AllPurchases(ctx context.Context) ([]entity.PurchaseReport, error) {
	reports, err := s.purchaseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return roundReports(reports), nil
}

// PurchasesForBuyer возвращает покупки одного покупателя
func (s *ReportService) PurchasesForBuyer(ctx context.Context, buyerID uuid.UUID) ([]entity.PurchaseReport, error) {
	reports, err := s.purchaseRepo.GetByBuyer(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return roundReports(reports), nil
}

// PurchasesForSweet возвращает покупки одной сладости
func (s *ReportService) PurchasesForSweet(ctx context.Context, sweetID uuid.UUID) ([]entity.PurchaseReport, error) {
	reports, err := s.purchaseRepo.GetBySweet(ctx, sweetID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return roundReports(reports), nil
}

// roundReports округляет суммы до валютной точности
// В журнале хранится полная точность, отчёты показывают валютную
func roundReports(reports []entity.PurchaseReport) []entity.PurchaseReport {
	for i := range reports {
		reports[i].TotalPrice = RoundCurrency(reports[i].TotalPrice)
	}
	return reports
}
