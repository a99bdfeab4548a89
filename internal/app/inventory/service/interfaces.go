package service

import (
	"context"

	"sweetshop/internal/app/inventory/entity"

	"github.com/google/uuid"
)

type InventoryServiceInterface interface {
	CreateSweet(ctx context.Context, req *entity.CreateSweetRequest) (*entity.Sweet, error)
	GetSweet(ctx context.Context, id uuid.UUID) (*entity.Sweet, error)
	GetAllSweets(ctx context.Context) ([]entity.Sweet, error)
	SearchSweets(ctx context.Context, filters *entity.SearchFilters) ([]entity.Sweet, error)
	UpdateSweet(ctx context.Context, id uuid.UUID, req *entity.UpdateSweetRequest) (*entity.Sweet, error)
	DeleteSweet(ctx context.Context, id uuid.UUID) error
	Purchase(ctx context.Context, caller entity.CallerContext, id uuid.UUID, quantity float64) (*PurchaseOutcome, error)
	Restock(ctx context.Context, id uuid.UUID, quantity float64) (*entity.Sweet, error)
	LowStockSweets(ctx context.Context, threshold float64) ([]entity.Sweet, error)
}

type ReportServiceInterface interface {
	AllPurchases(ctx context.Context) ([]entity.PurchaseReport, error)
	PurchasesForBuyer(ctx context.Context, buyerID uuid.UUID) ([]entity.PurchaseReport, error)
	PurchasesForSweet(ctx context.Context, sweetID uuid.UUID) ([]entity.PurchaseReport, error)
}
