package mocks

import (
	"context"
	"time"

	"sweetshop/internal/app/inventory/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockSweetRepository мок для SweetRepository
type MockSweetRepository struct {
	mock.Mock
}

func (m *MockSweetRepository) Create(ctx context.Context, sweet *entity.Sweet) error {
	args := m.Called(ctx, sweet)
	return args.Error(0)
}

func (m *MockSweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sweet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Sweet), args.Error(1)
}

func (m *MockSweetRepository) GetAll(ctx context.Context) ([]entity.Sweet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Sweet), args.Error(1)
}

func (m *MockSweetRepository) FindByName(ctx context.Context, name string, excludeID uuid.UUID) (*entity.Sweet, error) {
	args := m.Called(ctx, name, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Sweet), args.Error(1)
}

func (m *MockSweetRepository) Search(ctx context.Context, filters *entity.SearchFilters) ([]entity.Sweet, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Sweet), args.Error(1)
}

func (m *MockSweetRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockSweetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSweetRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity float64) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockSweetRepository) IncrementStock(ctx context.Context, id uuid.UUID, quantity float64) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockSweetRepository) FindBelowStock(ctx context.Context, threshold float64) ([]entity.Sweet, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Sweet), args.Error(1)
}

// MockPurchaseRepository мок для PurchaseRepository
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) GetAll(ctx context.Context) ([]entity.PurchaseReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PurchaseReport), args.Error(1)
}

func (m *MockPurchaseRepository) GetByBuyer(ctx context.Context, buyerID uuid.UUID) ([]entity.PurchaseReport, error) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PurchaseReport), args.Error(1)
}

func (m *MockPurchaseRepository) GetBySweet(ctx context.Context, sweetID uuid.UUID) ([]entity.PurchaseReport, error) {
	args := m.Called(ctx, sweetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PurchaseReport), args.Error(1)
}

// MockSweetCache мок для SweetCache
type MockSweetCache struct {
	mock.Mock
}

func (m *MockSweetCache) SetSweets(ctx context.Context, sweets []entity.Sweet, ttl time.Duration) error {
	args := m.Called(ctx, sweets, ttl)
	return args.Error(0)
}

func (m *MockSweetCache) GetSweets(ctx context.Context) ([]entity.Sweet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Sweet), args.Error(1)
}

func (m *MockSweetCache) DeleteSweets(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSweetCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockMessagePublisher мок для MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
