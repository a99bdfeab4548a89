package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sweetshop/internal/app/inventory/entity"
	"sweetshop/internal/app/inventory/repository"
	"sweetshop/internal/app/inventory/util"
	"sweetshop/pkg/logger"
	"sweetshop/pkg/metrics"

	"github.com/google/uuid"
)

const (
	serviceName   = "inventory"
	sweetCacheTTL = time.Hour
)

// InventoryService обрабатывает бизнес-логику каталога сладостей:
// CRUD, поиск, атомарные purchase/restock и запись журнала покупок.
// Координирует работу репозиториев, Redis кеша и Kafka producer
type InventoryService struct {
	sweetRepo    repository.SweetRepository
	purchaseRepo repository.PurchaseRepository
	cache        util.SweetCache
	publisher    util.MessagePublisher
}

// PurchaseOutcome - результат завершённой покупки
// LedgerRecorded=false означает, что списание прошло, но запись
// в журнал не удалась; покупка при этом считается завершённой
type PurchaseOutcome struct {
	Sweet          *entity.Sweet
	Record         *entity.Purchase
	LedgerRecorded bool
}

// NewInventoryService создает новый сервис инвентаря с внедрением зависимостей
func NewInventoryService(
	sweetRepo repository.SweetRepository,
	purchaseRepo repository.PurchaseRepository,
	cache util.SweetCache,
	publisher util.MessagePublisher,
) *InventoryService {
	return &InventoryService{
		sweetRepo:    sweetRepo,
		purchaseRepo: purchaseRepo,
		cache:        cache,
		publisher:    publisher,
	}
}

// CreateSweet создает новую сладость
// Имя и категория обязательны, цена и начальный остаток неотрицательны.
// Уникальность имени обеспечивает constraint БД: конкурентные create
// с одинаковым именем не могут пройти оба
func (s *InventoryService) CreateSweet(ctx context.Context, req *entity.CreateSweetRequest) (*entity.Sweet, error) {
	pricePerKilo, err := resolvePricePerKilo(req)
	if err != nil {
		return nil, err
	}

	if req.Name == "" || req.Category == "" || pricePerKilo < 0 || req.StockQuantity < 0 {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	sweet := &entity.Sweet{
		ID:            uuid.New(),
		Name:          req.Name,
		Category:      req.Category,
		PricePerKilo:  pricePerKilo,
		StockQuantity: req.StockQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.sweetRepo.Create(ctx, sweet); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create sweet: %w", err)
	}

	s.invalidateCache(ctx)
	s.publishSweetEvent(ctx, sweet, entity.EventSweetCreated, 0)

	return sweet, nil
}

// GetSweet получает сладость по ID
func (s *InventoryService) GetSweet(ctx context.Context, id uuid.UUID) (*entity.Sweet, error) {
	sweet, err := s.sweetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSweetNotFound) {
			return nil, ErrSweetNotFound
		}
		return nil, fmt.Errorf("failed to get sweet: %w", err)
	}

	return sweet, nil
}

// GetAllSweets получает все сладости с кешированием в Redis
// Сначала проверяет кеш, если нет - загружает из БД и кеширует
func (s *InventoryService) GetAllSweets(ctx context.Context) ([]entity.Sweet, error) {
	sweets, err := s.cache.GetSweets(ctx)
	if err == nil && len(sweets) > 0 {
		metrics.RecordCacheHit(serviceName, "sweets")
		return sweets, nil
	}
	metrics.RecordCacheMiss(serviceName, "sweets")

	sweets, err = s.sweetRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get sweets: %w", err)
	}

	if err := s.cache.SetSweets(ctx, sweets, sweetCacheTTL); err != nil {
		// Данные получены из БД, проблемы с кешем не критичны
		logger.Warn().Err(err).Msg("failed to cache sweets")
	}

	return sweets, nil
}

// SearchSweets ищет сладости по фильтрам
// Пустой набор фильтров возвращает полный каталог в порядке list()
func (s *InventoryService) SearchSweets(ctx context.Context, filters *entity.SearchFilters) ([]entity.Sweet, error) {
	sweets, err := s.sweetRepo.Search(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to search sweets: %w", err)
	}

	return sweets, nil
}

// UpdateSweet выполняет частичное обновление сладости
// Пустой набор полей возвращает сладость без изменений.
// Смена имени проверяется на уникальность; constraint БД
// закрывает гонку update/create
func (s *InventoryService) UpdateSweet(ctx context.Context, id uuid.UUID, req *entity.UpdateSweetRequest) (*entity.Sweet, error) {
	sweet, err := s.GetSweet(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})

	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrInvalidInput
		}
		if *req.Name != sweet.Name {
			if _, err := s.sweetRepo.FindByName(ctx, *req.Name, id); err == nil {
				return nil, ErrDuplicateName
			} else if !errors.Is(err, repository.ErrSweetNotFound) {
				return nil, fmt.Errorf("failed to check sweet name: %w", err)
			}
		}
		fields["name"] = *req.Name
	}
	if req.Category != nil {
		if *req.Category == "" {
			return nil, ErrInvalidInput
		}
		fields["category"] = *req.Category
	}
	if req.PricePerKilo != nil {
		if *req.PricePerKilo < 0 {
			return nil, ErrInvalidInput
		}
		fields["price_per_kilo"] = *req.PricePerKilo
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return nil, ErrInvalidInput
		}
		fields["stock_quantity"] = *req.StockQuantity
	}

	if len(fields) == 0 {
		return sweet, nil
	}

	if err := s.sweetRepo.Update(ctx, id, fields); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrDuplicateName
		}
		if errors.Is(err, repository.ErrSweetNotFound) {
			return nil, ErrSweetNotFound
		}
		return nil, fmt.Errorf("failed to update sweet: %w", err)
	}

	updated, err := s.GetSweet(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	s.publishSweetEvent(ctx, updated, entity.EventSweetUpdated, 0)

	return updated, nil
}

// DeleteSweet удаляет сладость
// Записи журнала покупок остаются валидной историей
func (s *InventoryService) DeleteSweet(ctx context.Context, id uuid.UUID) error {
	sweet, err := s.GetSweet(ctx, id)
	if err != nil {
		return err
	}

	if err := s.sweetRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSweetNotFound) {
			return ErrSweetNotFound
		}
		return fmt.Errorf("failed to delete sweet: %w", err)
	}

	s.invalidateCache(ctx)
	s.publishSweetEvent(ctx, sweet, entity.EventSweetDeleted, 0)

	return nil
}

// Purchase выполняет покупку одной из фиксированных фасовок
// Проверка остатка и списание выполняются одним условным UPDATE
// в репозитории, поэтому конкурентные покупки не могут продать
// больше, чем есть на складе.
// Ошибка записи в журнал НЕ откатывает списание: покупка считается
// завершённой, а сбой журнала возвращается как предупреждение
func (s *InventoryService) Purchase(ctx context.Context, caller entity.CallerContext, id uuid.UUID, quantity float64) (*PurchaseOutcome, error) {
	if quantity <= 0 || !IsPurchaseTier(quantity) {
		metrics.PurchasesRejected.WithLabelValues("invalid_quantity").Inc()
		return nil, ErrInvalidQuantity
	}

	if err := s.sweetRepo.DecrementStock(ctx, id, quantity); err != nil {
		if errors.Is(err, repository.ErrSweetNotFound) {
			metrics.PurchasesRejected.WithLabelValues("not_found").Inc()
			return nil, ErrSweetNotFound
		}
		if errors.Is(err, repository.ErrInsufficientStock) {
			metrics.PurchasesRejected.WithLabelValues("insufficient_stock").Inc()
			return nil, ErrInsufficientStock
		}
		return nil, fmt.Errorf("failed to decrement stock: %w", err)
	}

	sweet, err := s.GetSweet(ctx, id)
	if err != nil {
		return nil, err
	}

	totalPrice := TotalPrice(sweet.PricePerKilo, quantity)

	record := &entity.Purchase{
		ID:           uuid.New(),
		BuyerID:      caller.ID,
		BuyerName:    caller.Name,
		SweetID:      sweet.ID,
		Quantity:     quantity,
		PricePerKilo: sweet.PricePerKilo,
		TotalPrice:   totalPrice,
		CreatedAt:    time.Now(),
	}

	outcome := &PurchaseOutcome{
		Sweet:          sweet,
		Record:         record,
		LedgerRecorded: true,
	}

	if err := s.purchaseRepo.Create(ctx, record); err != nil {
		// Списание уже прошло и не откатывается: журнал best-effort,
		// окно несогласованности принято осознанно
		logger.Warn().
			Err(err).
			Str("sweet_id", sweet.ID.String()).
			Str("buyer_id", caller.ID.String()).
			Msg("purchase completed but ledger append failed")
		metrics.LedgerAppendFailures.Inc()
		outcome.LedgerRecorded = false
	}

	s.invalidateCache(ctx)
	s.publishSweetEvent(ctx, sweet, entity.EventSweetPurchased, quantity)

	metrics.PurchasesTotal.Inc()
	metrics.PurchasesAmount.Add(totalPrice)

	return outcome, nil
}

// Restock атомарно пополняет остаток сладости
// Количество произвольное положительное, верхней границы нет
func (s *InventoryService) Restock(ctx context.Context, id uuid.UUID, quantity float64) (*entity.Sweet, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	if err := s.sweetRepo.IncrementStock(ctx, id, quantity); err != nil {
		if errors.Is(err, repository.ErrSweetNotFound) {
			return nil, ErrSweetNotFound
		}
		return nil, fmt.Errorf("failed to increment stock: %w", err)
	}

	sweet, err := s.GetSweet(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	s.publishSweetEvent(ctx, sweet, entity.EventSweetRestocked, quantity)
	metrics.RestocksTotal.Inc()

	return sweet, nil
}

// LowStockSweets возвращает сладости с остатком ниже порога
// Используется фоновым обходом остатков
func (s *InventoryService) LowStockSweets(ctx context.Context, threshold float64) ([]entity.Sweet, error) {
	sweets, err := s.sweetRepo.FindBelowStock(ctx, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to find low stock sweets: %w", err)
	}

	return sweets, nil
}

// invalidateCache сбрасывает кеш списка сладостей после мутации
// Ошибка кеша не прерывает операцию
func (s *InventoryService) invalidateCache(ctx context.Context) {
	if err := s.cache.DeleteSweets(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate sweets cache")
	}
}

// publishSweetEvent отправляет событие инвентаря в Kafka
// Key - это SweetID для сохранения порядка событий одной сладости.
// Ошибка отправки логируется, но операцию не прерывает
func (s *InventoryService) publishSweetEvent(ctx context.Context, sweet *entity.Sweet, eventType string, quantity float64) {
	event := entity.SweetEvent{
		EventType:     eventType,
		SweetID:       sweet.ID,
		Name:          sweet.Name,
		PricePerKilo:  sweet.PricePerKilo,
		StockQuantity: sweet.StockQuantity,
		Quantity:      quantity,
		Timestamp:     time.Now(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal sweet event")
		return
	}

	if err := s.publisher.PublishMessage(ctx, event.SweetID.String(), eventData); err != nil {
		logger.Warn().Err(err).Str("event_type", eventType).Msg("failed to publish sweet event")
	}
}

// resolvePricePerKilo извлекает каноничную цену из запроса
// Legacy-поле price принимается только при отсутствии price_per_kilo
func resolvePricePerKilo(req *entity.CreateSweetRequest) (float64, error) {
	if req.PricePerKilo != nil {
		return *req.PricePerKilo, nil
	}
	if req.Price != nil {
		return *req.Price, nil
	}
	return 0, ErrInvalidInput
}
