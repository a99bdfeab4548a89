package processor

import (
	"context"
	"encoding/json"
	"time"

	"sweetshop/internal/app/inventory/entity"
	"sweetshop/internal/app/inventory/service"
	"sweetshop/internal/app/inventory/util"
	"sweetshop/pkg/logger"
	"sweetshop/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// LowStockScheduler периодически обходит каталог и публикует
// события о сладостях с остатком ниже порога
type LowStockScheduler struct {
	cron      *cron.Cron
	inventory service.InventoryServiceInterface
	publisher util.MessagePublisher
	threshold float64
}

func NewLowStockScheduler(inventory service.InventoryServiceInterface, publisher util.MessagePublisher, threshold float64) *LowStockScheduler {
	return &LowStockScheduler{
		cron:      cron.New(),
		inventory: inventory,
		publisher: publisher,
		threshold: threshold,
	}
}

// Start запускает планировщик и выполняет первый обход сразу
func (s *LowStockScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Float64("threshold", s.threshold).Msg("Starting low stock scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		s.Sweep(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()

	// Первый обход при старте, чтобы не ждать расписания
	s.Sweep(ctx)

	return nil
}

// Sweep выполняет один обход остатков
func (s *LowStockScheduler) Sweep(ctx context.Context) {
	sweets, err := s.inventory.LowStockSweets(ctx, s.threshold)
	if err != nil {
		logger.Error().Err(err).Msg("low stock sweep failed")
		return
	}

	metrics.LowStockSweets.Set(float64(len(sweets)))

	for _, sweet := range sweets {
		logger.Warn().
			Str("sweet_id", sweet.ID.String()).
			Str("name", sweet.Name).
			Float64("stock_quantity", sweet.StockQuantity).
			Msg("sweet is running low on stock")

		event := entity.SweetEvent{
			EventType:     entity.EventSweetLowStock,
			SweetID:       sweet.ID,
			Name:          sweet.Name,
			PricePerKilo:  sweet.PricePerKilo,
			StockQuantity: sweet.StockQuantity,
			Timestamp:     time.Now(),
		}

		eventData, err := json.Marshal(event)
		if err != nil {
			logger.Error().Err(err).Msg("failed to marshal low stock event")
			continue
		}

		if err := s.publisher.PublishMessage(ctx, sweet.ID.String(), eventData); err != nil {
			logger.Warn().Err(err).Msg("failed to publish low stock event")
		}
	}
}

// Stop останавливает планировщик, дожидаясь завершения текущего обхода
func (s *LowStockScheduler) Stop() {
	logger.Info().Msg("Stopping low stock scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
}
